package stateright

import (
	"strings"
	"testing"
)

func TestCheckExhaustsStateSpace(t *testing.T) {
	for _, strategy := range []Strategy{BFS, DFS} {
		res := NewChecker[gridState, gridMove](gridModel{size: 3}, WithStrategy(strategy)).Run()
		if res.Generated != 16 {
			t.Errorf("%v: Unexpected number of generated states. Got %v. Expected %v.", strategy, res.Generated, 16)
		}
		if res.Status != Exhausted {
			t.Errorf("%v: Unexpected run status. Got %v. Expected %v.", strategy, res.Status, Exhausted)
		}
		if !res.Ok() {
			t.Errorf("%v: Expected a run without properties to be ok", strategy)
		}
	}
}

func TestSingleWorkerRunsAreDeterministic(t *testing.T) {
	for _, strategy := range []Strategy{BFS, DFS} {
		var counts []int
		for i := 0; i < 3; i++ {
			res := NewChecker[gridState, gridMove](
				gridModel{size: 4},
				WithStrategy(strategy),
				WithWorkers(1),
			).Run()
			counts = append(counts, res.Generated)
		}
		for _, n := range counts {
			if n != 25 {
				t.Errorf("%v: Unexpected generated count across repeated runs. Got %v. Expected %v.", strategy, counts, 25)
				break
			}
		}
	}
}

func TestEachStateExpandedAtMostOnce(t *testing.T) {
	// The grid has many converging paths, so most states are discovered
	// several times while being owned by only one worker.
	m := newCountingModel(gridModel{size: 6})
	res := NewChecker[gridState, gridMove](m, WithWorkers(8)).Run()
	if res.Generated != 49 {
		t.Errorf("Unexpected number of generated states. Got %v. Expected %v.", res.Generated, 49)
	}
	if len(m.expansions) != 49 {
		t.Errorf("Unexpected number of expanded states. Got %v. Expected %v.", len(m.expansions), 49)
	}
	for fp, n := range m.expansions {
		if n != 1 {
			t.Errorf("State %v expanded %v times. Expected exactly 1.", fp, n)
		}
	}
}

func TestAlwaysPassIsSoundOverExploredStates(t *testing.T) {
	pred := func(s gridState) bool { return s.X+s.Y < 100 }
	m := newCountingModel(gridModel{
		size: 4,
		props: []Property[gridState]{
			{Name: "small", Kind: Always, Predicate: pred},
		},
	})
	res := NewChecker[gridState, gridMove](m).Run()
	if res.Properties[0].Verdict != Passed {
		t.Fatalf("Unexpected verdict. Got %v. Expected %v.", res.Properties[0].Verdict, Passed)
	}
	// A passing Always property must hold in every state that was expanded.
	for _, s := range m.states {
		if !pred(s) {
			t.Errorf("Explored state %v does not satisfy a property reported as passing", s)
		}
	}
}

func TestBFSCounterexampleIsShortest(t *testing.T) {
	m := gridModel{
		size: 4,
		props: []Property[gridState]{
			{
				Name:      "avoids (2,1)",
				Kind:      Always,
				Predicate: func(s gridState) bool { return s != gridState{X: 2, Y: 1} },
			},
		},
	}
	res := NewChecker[gridState, gridMove](m, WithStrategy(BFS), WithWorkers(1)).Run()

	pr := res.Properties[0]
	if pr.Verdict != Violated {
		t.Fatalf("Unexpected verdict. Got %v. Expected %v.", pr.Verdict, Violated)
	}
	if pr.Err != nil {
		t.Fatalf("Unexpected path reconstruction error: %v", pr.Err)
	}
	if pr.Path.Len() != 3 {
		t.Errorf("Unexpected counterexample length. Got %v. Expected %v.", pr.Path.Len(), 3)
	}
	if pr.Path.Final() != (gridState{X: 2, Y: 1}) {
		t.Errorf("Unexpected final state. Got %v. Expected %v.", pr.Path.Final(), gridState{X: 2, Y: 1})
	}
}

func TestCounterexampleReplaysThroughModel(t *testing.T) {
	m := gridModel{
		size: 5,
		props: []Property[gridState]{
			{
				Name:      "avoids (3,3)",
				Kind:      Always,
				Predicate: func(s gridState) bool { return s != gridState{X: 3, Y: 3} },
			},
		},
	}
	res := NewChecker[gridState, gridMove](m, WithWorkers(4)).Run()

	pr := res.Properties[0]
	if pr.Verdict != Violated {
		t.Fatalf("Unexpected verdict. Got %v. Expected %v.", pr.Verdict, Violated)
	}
	if pr.Err != nil {
		t.Fatalf("Unexpected path reconstruction error: %v", pr.Err)
	}

	// Replay the reported path independently and verify it reproduces the
	// violating state.
	cur := pr.Path.Init
	for _, step := range pr.Path.Steps {
		succ, ok := m.NextState(cur, step.Action)
		if !ok {
			t.Fatalf("Reported action %v does not apply in state %v", step.Action, cur)
		}
		if FingerprintOf(succ) != FingerprintOf(step.State) {
			t.Fatalf("Replayed state %v differs from reported state %v", succ, step.State)
		}
		cur = succ
	}
	if cur != (gridState{X: 3, Y: 3}) {
		t.Errorf("Replayed path ends in %v. Expected %v.", cur, gridState{X: 3, Y: 3})
	}
}

func TestSometimesProperties(t *testing.T) {
	m := gridModel{
		size: 2,
		props: []Property[gridState]{
			{
				Name:      "reaches corner",
				Kind:      Sometimes,
				Predicate: func(s gridState) bool { return s == gridState{X: 2, Y: 2} },
			},
			{
				Name:      "reaches (5,5)",
				Kind:      Sometimes,
				Predicate: func(s gridState) bool { return s == gridState{X: 5, Y: 5} },
			},
		},
	}
	res := NewChecker[gridState, gridMove](m).Run()

	if res.Properties[0].Verdict != Witnessed {
		t.Errorf("Unexpected verdict. Got %v. Expected %v.", res.Properties[0].Verdict, Witnessed)
	}
	if got := res.Properties[0].Path.Final(); got != (gridState{X: 2, Y: 2}) {
		t.Errorf("Unexpected witness state. Got %v.", got)
	}
	if res.Properties[1].Verdict != NotWitnessed {
		t.Errorf("Unexpected verdict. Got %v. Expected %v.", res.Properties[1].Verdict, NotWitnessed)
	}
	if res.Status != Exhausted {
		t.Errorf("Unexpected run status. Got %v. Expected %v.", res.Status, Exhausted)
	}
	if res.Ok() {
		t.Errorf("Expected an unwitnessed Sometimes property to make the run not ok")
	}
}

func TestBoundedRunIsReportedAsBounded(t *testing.T) {
	m := gridModel{
		size: 50,
		props: []Property[gridState]{
			{
				Name:      "reaches far corner",
				Kind:      Sometimes,
				Predicate: func(s gridState) bool { return s == gridState{X: 50, Y: 50} },
			},
		},
	}
	res := NewChecker[gridState, gridMove](m, WithMaxStates(20)).Run()

	if res.Status != Bounded {
		t.Errorf("Unexpected run status. Got %v. Expected %v.", res.Status, Bounded)
	}
	if res.Generated < 20 {
		t.Errorf("Unexpected generated count. Got %v. Expected at least %v.", res.Generated, 20)
	}
	if res.Properties[0].Verdict != NotWitnessed {
		t.Errorf("Unexpected verdict. Got %v. Expected %v.", res.Properties[0].Verdict, NotWitnessed)
	}
}

func TestFailFastStopsTheRun(t *testing.T) {
	m := gridModel{
		size: 50,
		props: []Property[gridState]{
			{
				Name:      "avoids (1,0)",
				Kind:      Always,
				Predicate: func(s gridState) bool { return s != gridState{X: 1, Y: 0} },
			},
		},
	}
	res := NewChecker[gridState, gridMove](m, WithFailFast(), WithWorkers(2)).Run()

	if res.Status != Stopped {
		t.Errorf("Unexpected run status. Got %v. Expected %v.", res.Status, Stopped)
	}
	if res.Properties[0].Verdict != Violated {
		t.Errorf("Unexpected verdict. Got %v. Expected %v.", res.Properties[0].Verdict, Violated)
	}
	if res.Generated >= 51*51 {
		t.Errorf("Expected the run to stop before exhausting the state space, generated %v states", res.Generated)
	}
}

func TestReportRendersVerdictsAndPaths(t *testing.T) {
	m := gridModel{
		size: 3,
		props: []Property[gridState]{
			{
				Name:      "avoids (1,1)",
				Kind:      Always,
				Predicate: func(s gridState) bool { return s != gridState{X: 1, Y: 1} },
			},
			{
				Name:      "reaches origin",
				Kind:      Sometimes,
				Predicate: func(s gridState) bool { return s == gridState{X: 0, Y: 0} },
			},
		},
	}
	res := NewChecker[gridState, gridMove](m, WithWorkers(1)).Run()

	var out strings.Builder
	res.Report(&out)
	report := out.String()
	for _, want := range []string{
		`property "avoids (1,1)" (always): violated`,
		`property "reaches origin" (sometimes): witnessed`,
		"->",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("Report is missing %q:\n%s", want, report)
		}
	}
}
