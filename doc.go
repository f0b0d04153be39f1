// Package stateright is an explicit-state model checker: it exhaustively (or
// boundedly) explores the reachable state space of a user-supplied state
// machine and verifies its safety and reachability properties, producing a
// concrete counterexample path when a property fails.
//
// A user describes a system by implementing Model, builds a Checker for it,
// and runs it:
//
//	res := stateright.NewChecker[MyState, MyAction](
//		myModel,
//		stateright.WithStrategy(stateright.BFS),
//		stateright.WithWorkers(4),
//	).Run()
//	res.Report(os.Stdout)
//
// Exploration is parallelized over worker goroutines sharing one fingerprint
// registry; each distinct state is expanded at most once. The actor
// subpackage presents message-passing actor systems as checkable models, and
// the explore subpackage exposes interactive state-space introspection.
package stateright
