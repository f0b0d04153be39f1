package stateright

// A Model describes a state machine to be checked.
//
// S is the state type and A the action type. States are treated as immutable
// values: a transition must always produce a fresh state and never mutate its
// input. The checker is generic over this interface and never depends on a
// concrete model.
type Model[S, A any] interface {
	// The states the system may start in.
	InitStates() []S

	// The actions that are legal in the provided state.
	//
	// Returning an action that later turns out not to apply is not an error.
	// The checker detects it by NextState declining and skips the action.
	Actions(state S) []A

	// The successor state reached by taking the action in the provided state.
	//
	// The boolean is false if the action does not apply, in which case the
	// checker treats the pair as a missing edge in the state graph.
	NextState(state S, action A) (S, bool)

	// The properties to verify during exploration.
	Properties() []Property[S]
}

// The kind of a property.
//
// Always properties are safety conditions that must hold in every reachable
// state. Sometimes properties are existential conditions that must be
// witnessed by at least one reachable state.
type PropertyKind int

const (
	Always PropertyKind = iota
	Sometimes
)

func (k PropertyKind) String() string {
	switch k {
	case Always:
		return "always"
	case Sometimes:
		return "sometimes"
	}
	return "unknown"
}

// A condition that is verified while the state space is explored.
//
// The predicate must be a pure function of the state. Models that need access
// to their own parameters capture the model value in the closure.
type Property[S any] struct {
	Name      string
	Kind      PropertyKind
	Predicate func(state S) bool
}
