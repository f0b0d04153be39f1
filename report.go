package stateright

import (
	"fmt"
	"io"
)

// RunStatus describes how a run ended.
type RunStatus int

const (
	// The frontier emptied: the reachable state space was fully enumerated.
	Exhausted RunStatus = iota
	// The generated-state bound was reached before full enumeration.
	Bounded
	// The run was stopped early by a fail-fast violation.
	Stopped
)

func (s RunStatus) String() string {
	switch s {
	case Exhausted:
		return "exhausted"
	case Bounded:
		return "bounded"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}

// PropertyVerdict is the outcome of one property after a run.
type PropertyVerdict int

const (
	// An Always property that no explored state falsified.
	Passed PropertyVerdict = iota
	// An Always property falsified by some reachable state.
	Violated
	// A Sometimes property witnessed by some reachable state.
	Witnessed
	// A Sometimes property not witnessed by any explored state. This refutes
	// the property only when the run exhausted the state space; on a bounded
	// or stopped run it is inconclusive.
	NotWitnessed
)

func (v PropertyVerdict) String() string {
	switch v {
	case Passed:
		return "passed"
	case Violated:
		return "violated"
	case Witnessed:
		return "witnessed"
	case NotWitnessed:
		return "not witnessed"
	}
	return "unknown"
}

// PropertyResult is the verdict for one property, with the reconstructed path
// to the violating state (Violated) or the witnessing state (Witnessed).
type PropertyResult[S, A any] struct {
	Name    string
	Kind    PropertyKind
	Verdict PropertyVerdict
	Path    *Path[S, A]

	// Set instead of Path if the recorded back references failed to replay.
	Err error
}

// CheckResult is the outcome of one checker run.
type CheckResult[S, A any] struct {
	RunID      string
	Strategy   Strategy
	Status     RunStatus
	Generated  int
	Properties []PropertyResult[S, A]
}

// Ok reports whether every Always property passed and every Sometimes
// property was witnessed. An unwitnessed Sometimes property on a bounded run
// counts as not ok even though it is inconclusive.
func (r CheckResult[S, A]) Ok() bool {
	for _, pr := range r.Properties {
		switch pr.Verdict {
		case Violated, NotWitnessed:
			return false
		}
	}
	return true
}

// Report writes a human readable account of the run: the generated state
// count, the run status and one line per property, followed by the
// reconstructed path for every resolved property.
func (r CheckResult[S, A]) Report(w io.Writer) {
	fmt.Fprintf(w, "run %v (%v): generated %v states, %v\n", r.RunID, r.Strategy, r.Generated, r.Status)
	for _, pr := range r.Properties {
		fmt.Fprintf(w, "property %q (%v): %v%s\n", pr.Name, pr.Kind, pr.Verdict, qualifier(pr, r.Status))
		if pr.Err != nil {
			fmt.Fprintf(w, "  path reconstruction failed: %v\n", pr.Err)
			continue
		}
		if pr.Path == nil {
			continue
		}
		fmt.Fprintf(w, "  %v\n", pr.Path.Init)
		for _, step := range pr.Path.Steps {
			fmt.Fprintf(w, "  -> %v\n", step.Action)
			fmt.Fprintf(w, "     %v\n", step.State)
		}
	}
}

func qualifier[S, A any](pr PropertyResult[S, A], status RunStatus) string {
	if pr.Verdict != NotWitnessed && pr.Verdict != Passed {
		return ""
	}
	if status == Exhausted {
		return ""
	}
	// The state space was not fully enumerated, so the verdict is only about
	// the explored part.
	return " within bound"
}
