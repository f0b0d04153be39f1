package stateright

import (
	"errors"
	"fmt"
)

// ErrNoPath is returned when no path to the requested state can be
// reconstructed, for example because the recorded back references no longer
// replay through the model.
var ErrNoPath = errors.New("stateright: no path to state")

// One transition of a reconstructed path: the action taken and the state it
// produced.
type Step[S, A any] struct {
	Action A
	State  S
}

// A Path is a concrete route from an initial state to a target state,
// reconstructed on demand from the registry back references. Paths are only
// built for reported property resolutions, never for every discovered state.
type Path[S, A any] struct {
	Init  S
	Steps []Step[S, A]
}

// The state the path ends in.
func (p *Path[S, A]) Final() S {
	if len(p.Steps) == 0 {
		return p.Init
	}
	return p.Steps[len(p.Steps)-1].State
}

// The number of transitions in the path.
func (p *Path[S, A]) Len() int {
	return len(p.Steps)
}

// Reconstruct the path from an initial state of the model to the state with
// the target fingerprint.
//
// The recorded back references only store fingerprints and actions, so the
// path is replayed forward through the model's NextState and every transition
// is re-validated before it is reported. A replay mismatch means the recorded
// references are inconsistent with the model and is returned as an error
// wrapping ErrNoPath.
func reconstructPath[S, A any](m Model[S, A], reg *registry[A], target Fingerprint) (*Path[S, A], error) {
	// Walk back references to an initial state, collecting actions.
	var actions []A
	fp := target
	for {
		tr, ok := reg.lookup(fp)
		if !ok {
			return nil, fmt.Errorf("missing back reference for %v: %w", fp, ErrNoPath)
		}
		if tr.init {
			break
		}
		actions = append(actions, tr.action)
		fp = tr.prev
	}
	for i, j := 0, len(actions)-1; i < j; i, j = i+1, j-1 {
		actions[i], actions[j] = actions[j], actions[i]
	}

	var start S
	found := false
	for _, s := range m.InitStates() {
		if FingerprintOf(s) == fp {
			start = s
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("no initial state with fingerprint %v: %w", fp, ErrNoPath)
	}

	p := &Path[S, A]{Init: start}
	cur := start
	for _, a := range actions {
		succ, ok := m.NextState(cur, a)
		if !ok {
			return nil, fmt.Errorf("recorded action %v does not apply during replay: %w", a, ErrNoPath)
		}
		p.Steps = append(p.Steps, Step[S, A]{Action: a, State: succ})
		cur = succ
	}
	if FingerprintOf(cur) != target {
		return nil, fmt.Errorf("replayed path ends in %v, want %v: %w", FingerprintOf(cur), target, ErrNoPath)
	}
	return p, nil
}
