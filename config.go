package stateright

import "github.com/rs/zerolog"

// A CheckerOption configures a Checker.
//
// All configuration is explicit per checker instance. There is no ambient
// global state, so multiple independent checks can run in the same process.
type CheckerOption interface{}

type strategyOption struct{ strategy Strategy }

// WithStrategy selects the traversal order.
//
// Default value is BFS.
func WithStrategy(strategy Strategy) CheckerOption {
	return strategyOption{strategy: strategy}
}

type workersOption struct{ n int }

// WithWorkers configures the number of worker goroutines expanding states.
//
// Default value is GOMAXPROCS. A run with a single worker expands states in
// exactly the sequential BFS or DFS order and is fully deterministic.
func WithWorkers(n int) CheckerOption {
	return workersOption{n: n}
}

type maxStatesOption struct{ n int }

// WithMaxStates bounds the number of states generated by the run.
//
// When the bound is reached the run stops and is reported as bounded rather
// than exhausted. Default value is 0, meaning unbounded.
//
// Note that a checker without a bound does not terminate on models with an
// infinite state space.
func WithMaxStates(n int) CheckerOption {
	return maxStatesOption{n: n}
}

type failFastOption struct{}

// WithFailFast stops the run at the first Always violation instead of
// continuing to resolve the remaining properties.
func WithFailFast() CheckerOption {
	return failFastOption{}
}

type loggerOption struct{ log zerolog.Logger }

// WithLogger configures the structured logger used by the checker.
//
// Default value is a disabled logger, so library use produces no output.
func WithLogger(log zerolog.Logger) CheckerOption {
	return loggerOption{log: log}
}
