// Package actor models a system of message-passing actors as a checkable
// state machine.
//
// Actors are pure step functions: delivery is invoked synchronously by the
// checker during state expansion, so every possible interleaving of message
// deliveries (and losses, on a lossy network) becomes its own explored state.
// There is no runtime scheduler involved.
package actor

import "fmt"

// Id identifies an actor within a system. Actors are addressed by their index
// in the system's actor slice.
type Id int

// Input is an event an actor can respond to. The only input today is the
// delivery of a message; timers would be a second input kind.
type Input[M any] struct {
	Src Id
	Msg M
}

// Envelope is an immutable message in flight, with an explicit source and
// destination.
//
// Envelopes are linear resources: created when an actor emits an output (or
// by initial-network seeding) and consumed exactly once, by delivery or by a
// lossy-network drop.
type Envelope[M any] struct {
	Src Id
	Dst Id
	Msg M
}

func (e Envelope[M]) String() string {
	return fmt.Sprintf("{%v->%v: %v}", e.Src, e.Dst, e.Msg)
}

// Output is a message emitted by an actor step. The source is implicit: it is
// the actor taking the step.
type Output[M any] struct {
	Dst Id
	Msg M
}

// Outbox collects the outputs of one actor step.
type Outbox[M any] struct {
	outputs []Output[M]
}

// Send queues a message for the destination actor.
func (o *Outbox[M]) Send(dst Id, msg M) {
	o.outputs = append(o.outputs, Output[M]{Dst: dst, Msg: msg})
}

// Broadcast queues the message for each of the destinations.
func (o *Outbox[M]) Broadcast(dsts []Id, msg M) {
	for _, dst := range dsts {
		o.Send(dst, msg)
	}
}

// Outputs returns the queued messages in send order.
func (o *Outbox[M]) Outputs() []Output[M] {
	return o.outputs
}

// Result is the value an actor step produces: the actor's next state and the
// messages it emitted.
type Result[M, S any] struct {
	State   S
	Outputs []Output[M]
}

// An Actor initializes its state, optionally emitting messages, and then
// responds to delivered inputs by producing a new state and more messages.
//
// M is the message type and S the actor's state type. Both the state and the
// inputs must be treated as immutable: Advance always builds a fresh state.
type Actor[M, S any] interface {
	// The actor's initial state and any messages it sends on startup.
	Start() Result[M, S]

	// The actor's response to an input.
	//
	// The boolean is false if the actor ignores the input (for example a
	// stale message), in which case the delivery produces no transition.
	Advance(state S, in Input[M]) (Result[M, S], bool)
}
