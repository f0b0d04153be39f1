package stateright

import (
	"sync"
	"sync/atomic"
)

// Tracks the resolution of one property across a run.
//
// An Always property resolves when some state falsifies its predicate. A
// Sometimes property resolves when some state witnesses it. In both cases the
// first worker to resolve the property records the fingerprint; duplicate
// resolutions from other workers are discarded.
type propertyStatus[S any] struct {
	prop     Property[S]
	resolved atomic.Bool

	mu sync.Mutex
	fp Fingerprint
}

// Record the fingerprint that resolved the property. The first caller wins.
func (ps *propertyStatus[S]) record(fp Fingerprint) bool {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if ps.resolved.Load() {
		return false
	}
	ps.fp = fp
	ps.resolved.Store(true)
	return true
}

// The evaluator runs every unresolved property against each state as it is
// discovered.
type evaluator[S any] struct {
	props []*propertyStatus[S]
}

func newEvaluator[S any](props []Property[S]) *evaluator[S] {
	e := &evaluator[S]{}
	for _, p := range props {
		e.props = append(e.props, &propertyStatus[S]{prop: p})
	}
	return e
}

// Evaluate the state against all unresolved properties.
//
// Returns true if the state newly violated an Always property, so the caller
// can stop the run when configured to fail fast.
func (e *evaluator[S]) evaluate(state S, fp Fingerprint) bool {
	violated := false
	for _, ps := range e.props {
		if ps.resolved.Load() {
			continue
		}
		switch ps.prop.Kind {
		case Always:
			if !ps.prop.Predicate(state) && ps.record(fp) {
				violated = true
			}
		case Sometimes:
			if ps.prop.Predicate(state) {
				ps.record(fp)
			}
		}
	}
	return violated
}
