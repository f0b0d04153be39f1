// Package explore exposes interactive state-space introspection: enumerate a
// state's legal actions, apply one action to obtain a successor, walk a
// state's successors, and query the discovered-state count.
//
// All operations are idempotent and side-effect free except that they drive
// further exploration on demand: every state an operation touches is
// registered, so its fingerprint addresses it in later calls.
package explore

import (
	"sync"

	"github.com/getong/stateright"
)

// An Explorer holds the states discovered while interactively stepping
// through a model's state space.
type Explorer[S, A any] struct {
	model stateright.Model[S, A]

	mu     sync.Mutex
	states map[stateright.Fingerprint]S
}

func New[S, A any](m stateright.Model[S, A]) *Explorer[S, A] {
	return &Explorer[S, A]{
		model:  m,
		states: make(map[stateright.Fingerprint]S),
	}
}

// Init returns the model's initial states, registering each of them.
func (e *Explorer[S, A]) Init() []S {
	states := e.model.InitStates()
	for _, s := range states {
		e.register(s)
	}
	return states
}

// Count returns the number of distinct states discovered so far.
func (e *Explorer[S, A]) Count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.states)
}

// State returns the registered state with the given fingerprint.
func (e *Explorer[S, A]) State(fp stateright.Fingerprint) (S, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.states[fp]
	return s, ok
}

// Actions lists the actions legal in the state. Purely a query; nothing is
// registered.
func (e *Explorer[S, A]) Actions(state S) []A {
	return e.model.Actions(state)
}

// Apply takes the i-th legal action in the state and returns the successor,
// registering it. Returns false if the index is out of range or the action
// turns out not to apply.
func (e *Explorer[S, A]) Apply(state S, i int) (S, bool) {
	var zero S
	actions := e.model.Actions(state)
	if i < 0 || i >= len(actions) {
		return zero, false
	}
	succ, ok := e.model.NextState(state, actions[i])
	if !ok {
		return zero, false
	}
	e.register(succ)
	return succ, true
}

// Successors applies every legal action in the state and returns the distinct
// successor states, registering each of them. Inapplicable actions contribute
// no successor.
func (e *Explorer[S, A]) Successors(state S) []S {
	var out []S
	seen := make(map[stateright.Fingerprint]bool)
	for _, a := range e.model.Actions(state) {
		succ, ok := e.model.NextState(state, a)
		if !ok {
			continue
		}
		fp := e.register(succ)
		if seen[fp] {
			continue
		}
		seen[fp] = true
		out = append(out, succ)
	}
	return out
}

func (e *Explorer[S, A]) register(s S) stateright.Fingerprint {
	fp := stateright.FingerprintOf(s)
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.states[fp]; !ok {
		e.states[fp] = s
	}
	return fp
}
