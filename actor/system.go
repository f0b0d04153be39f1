package actor

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/getong/stateright"
)

// Network is the multiset of envelopes currently in flight. It is kept in a
// canonical order so that value-equal networks always fingerprint equally,
// regardless of the order messages were sent in.
type Network[M any] []Envelope[M]

func (n Network[M]) String() string {
	parts := make([]string, len(n))
	for i, e := range n {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// SystemState is the checkable snapshot of an actor system: every actor's
// state plus the in-flight network.
type SystemState[M, S any] struct {
	ActorStates []S
	Network     Network[M]
}

func (s SystemState[M, S]) String() string {
	return fmt.Sprintf("{actors: %v, network: %v}", s.ActorStates, s.Network)
}

// ActionKind distinguishes the two things that can happen to an in-flight
// envelope.
type ActionKind int

const (
	// Deliver the envelope to its destination actor.
	Deliver ActionKind = iota
	// Drop the envelope silently. Only enabled on a lossy network.
	Drop
)

// SystemAction is one nondeterministic step of the actor system.
//
// Loss is modeled as an alternative action rather than randomization, so
// exploration covers every possible network behavior instead of a sampled
// one.
type SystemAction[M any] struct {
	Kind ActionKind
	Env  Envelope[M]
}

func (a SystemAction[M]) String() string {
	switch a.Kind {
	case Drop:
		return fmt.Sprintf("drop %v", a.Env)
	default:
		return fmt.Sprintf("deliver %v", a.Env)
	}
}

// System presents a collection of actors and an in-flight message multiset as
// a checkable Model.
type System[M, S any] struct {
	Actors       []Actor[M, S]
	InitNetwork  []Envelope[M]
	LossyNetwork bool

	// The properties to verify over the system's states.
	Props []stateright.Property[SystemState[M, S]]
}

var _ stateright.Model[SystemState[int, int], SystemAction[int]] = System[int, int]{}

// InitStates returns the single state combining every actor's Start result,
// with the network seeded from InitNetwork plus any messages the actors
// emitted on startup.
func (sys System[M, S]) InitStates() []SystemState[M, S] {
	states := make([]S, len(sys.Actors))
	network := slices.Clone(sys.InitNetwork)
	for i, a := range sys.Actors {
		res := a.Start()
		states[i] = res.State
		network = appendOutputs(network, Id(i), res.Outputs)
	}
	return []SystemState[M, S]{newSystemState(states, network)}
}

// Actions returns one deliver action per in-flight envelope addressed to a
// reachable destination, plus one drop action per envelope when the network
// is lossy.
func (sys System[M, S]) Actions(state SystemState[M, S]) []SystemAction[M] {
	var acts []SystemAction[M]
	for _, env := range state.Network {
		if int(env.Dst) >= 0 && int(env.Dst) < len(sys.Actors) {
			acts = append(acts, SystemAction[M]{Kind: Deliver, Env: env})
		}
		if sys.LossyNetwork {
			acts = append(acts, SystemAction[M]{Kind: Drop, Env: env})
		}
	}
	return acts
}

// NextState applies one action.
//
// A deliver action invokes the destination actor's Advance; if the actor
// declines the delivery the action produces no successor. A drop action
// removes the envelope with no other effect. Either way the consumed envelope
// leaves the network.
func (sys System[M, S]) NextState(state SystemState[M, S], action SystemAction[M]) (SystemState[M, S], bool) {
	var zero SystemState[M, S]
	idx := indexOfEnvelope(state.Network, action.Env)
	if idx < 0 {
		// The envelope is no longer in flight: the action does not apply.
		return zero, false
	}

	switch action.Kind {
	case Drop:
		if !sys.LossyNetwork {
			return zero, false
		}
		return newSystemState(slices.Clone(state.ActorStates), removeEnvelope(state.Network, idx)), true

	case Deliver:
		dst := int(action.Env.Dst)
		if dst < 0 || dst >= len(sys.Actors) {
			return zero, false
		}
		res, ok := sys.Actors[dst].Advance(state.ActorStates[dst], Input[M]{Src: action.Env.Src, Msg: action.Env.Msg})
		if !ok {
			// The actor ignored the message: no transition.
			return zero, false
		}
		states := slices.Clone(state.ActorStates)
		states[dst] = res.State
		network := removeEnvelope(state.Network, idx)
		network = appendOutputs(network, action.Env.Dst, res.Outputs)
		return newSystemState(states, network), true
	}
	return zero, false
}

func (sys System[M, S]) Properties() []stateright.Property[SystemState[M, S]] {
	return sys.Props
}

// Build a state with the network in canonical order.
func newSystemState[M, S any](states []S, network []Envelope[M]) SystemState[M, S] {
	slices.SortFunc(network, func(a, b Envelope[M]) bool {
		return envelopeKey(a) < envelopeKey(b)
	})
	return SystemState[M, S]{ActorStates: states, Network: network}
}

// A deterministic total order over envelopes, usable for any message type.
func envelopeKey[M any](e Envelope[M]) string {
	return fmt.Sprintf("%v|%v|%#v", e.Src, e.Dst, e.Msg)
}

func indexOfEnvelope[M any](network Network[M], env Envelope[M]) int {
	key := envelopeKey(env)
	return slices.IndexFunc(network, func(e Envelope[M]) bool {
		return envelopeKey(e) == key
	})
}

func removeEnvelope[M any](network Network[M], idx int) []Envelope[M] {
	out := make([]Envelope[M], 0, len(network)-1)
	out = append(out, network[:idx]...)
	return append(out, network[idx+1:]...)
}

func appendOutputs[M any](network []Envelope[M], src Id, outputs []Output[M]) []Envelope[M] {
	for _, out := range outputs {
		network = append(network, Envelope[M]{Src: src, Dst: out.Dst, Msg: out.Msg})
	}
	return network
}
