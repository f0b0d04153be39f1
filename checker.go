package stateright

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// A Checker explores the reachable state space of a Model and verifies its
// properties.
//
// The exploration runs on a pool of workers sharing one fingerprint registry
// and one frontier. Each distinct state is expanded at most once: the worker
// whose registry insert first adds a fingerprint owns that state. Workers
// never share state values, each operates on the values it discovered itself,
// so the registry is the only synchronized structure.
type Checker[S, A any] struct {
	model Model[S, A]

	strategy  Strategy
	workers   int
	maxStates int
	failFast  bool
	log       zerolog.Logger
}

// NewChecker creates a Checker for the model. See the CheckerOption
// constructors for the available configuration.
func NewChecker[S, A any](m Model[S, A], opts ...CheckerOption) *Checker[S, A] {
	c := &Checker[S, A]{
		model:    m,
		strategy: BFS,
		workers:  runtime.GOMAXPROCS(0),
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		switch t := opt.(type) {
		case strategyOption:
			c.strategy = t.strategy
		case workersOption:
			c.workers = t.n
		case maxStatesOption:
			c.maxStates = t.n
		case failFastOption:
			c.failFast = true
		case loggerOption:
			c.log = t.log
		}
	}
	if c.workers < 1 {
		c.workers = 1
	}
	return c
}

// Shared mutable state of one run.
type run[S, A any] struct {
	reg      *registry[A]
	frontier *frontier[S]
	eval     *evaluator[S]

	generated atomic.Int64
	bounded   atomic.Bool
	stopped   atomic.Bool
}

// Stop the run early after a fail-fast violation.
func (r *run[S, A]) failStop() {
	r.stopped.Store(true)
	r.frontier.stop()
}

// Run explores the state space until it is exhausted, the state bound is
// reached, or a fail-fast violation stops the search. It returns the verdict
// for every declared property together with the generated state count.
func (c *Checker[S, A]) Run() CheckResult[S, A] {
	start := time.Now()
	runID := uuid.NewString()
	log := c.log.With().
		Str("run", runID).
		Stringer("strategy", c.strategy).
		Int("workers", c.workers).
		Logger()
	log.Info().Int("maxStates", c.maxStates).Msg("starting check")

	r := &run[S, A]{
		reg:      newRegistry[A](),
		frontier: newFrontier[S](c.strategy),
		eval:     newEvaluator(c.model.Properties()),
	}

	// Seed the frontier with the initial states. Init states are discovered
	// states like any other: they are registered, evaluated and expanded.
	for _, s := range c.model.InitStates() {
		fp := FingerprintOf(s)
		if !r.reg.insert(fp, trace[A]{init: true}) {
			continue
		}
		r.generated.Add(1)
		if r.eval.evaluate(s, fp) && c.failFast {
			r.failStop()
		}
		r.frontier.push(job[S]{state: s, fp: fp})
	}

	var wg sync.WaitGroup
	for i := 0; i < c.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.worker(r)
		}()
	}
	wg.Wait()

	res := c.collect(r, runID)
	log.Info().
		Int("generated", res.Generated).
		Stringer("status", res.Status).
		Dur("elapsed", time.Since(start)).
		Msg("check finished")
	return res
}

// The expansion loop executed by each worker goroutine.
func (c *Checker[S, A]) worker(r *run[S, A]) {
	for {
		j, ok := r.frontier.pop()
		if !ok {
			return
		}
		for _, a := range c.model.Actions(j.state) {
			succ, ok := c.model.NextState(j.state, a)
			if !ok {
				// Inapplicable action: no edge, not an error.
				continue
			}
			fp := FingerprintOf(succ)
			if !r.reg.insert(fp, trace[A]{prev: j.fp, action: a}) {
				// Duplicate discovery, another worker owns this state.
				continue
			}
			n := r.generated.Add(1)
			if r.eval.evaluate(succ, fp) && c.failFast {
				r.failStop()
			}
			if c.maxStates > 0 && n >= int64(c.maxStates) {
				r.bounded.Store(true)
				r.frontier.stop()
				continue
			}
			r.frontier.push(job[S]{state: succ, fp: fp})
		}
		r.frontier.done()
	}
}

// Assemble the result of a finished run, reconstructing a path for every
// resolved property.
func (c *Checker[S, A]) collect(r *run[S, A], runID string) CheckResult[S, A] {
	status := Exhausted
	if r.bounded.Load() {
		status = Bounded
	}
	if r.stopped.Load() {
		status = Stopped
	}

	res := CheckResult[S, A]{
		RunID:     runID,
		Strategy:  c.strategy,
		Status:    status,
		Generated: r.reg.len(),
	}
	for _, ps := range r.eval.props {
		pr := PropertyResult[S, A]{
			Name: ps.prop.Name,
			Kind: ps.prop.Kind,
		}
		resolved := ps.resolved.Load()
		switch ps.prop.Kind {
		case Always:
			if resolved {
				pr.Verdict = Violated
			} else {
				pr.Verdict = Passed
			}
		case Sometimes:
			if resolved {
				pr.Verdict = Witnessed
			} else {
				pr.Verdict = NotWitnessed
			}
		}
		if resolved {
			p, err := reconstructPath(c.model, r.reg, ps.fp)
			if err != nil {
				// The recorded references must replay; a failure here is an
				// internal inconsistency surfaced on the result, never a
				// panic.
				pr.Err = err
			} else {
				pr.Path = p
			}
		}
		res.Properties = append(res.Properties, pr)
	}
	return res
}
