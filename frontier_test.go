package stateright

import (
	"testing"
	"time"
)

func TestFrontierOrder(t *testing.T) {
	tests := []struct {
		strategy Strategy
		expected []int
	}{
		{BFS, []int{1, 2, 3}},
		{DFS, []int{3, 2, 1}},
	}
	for _, test := range tests {
		f := newFrontier[int](test.strategy)
		for _, n := range []int{1, 2, 3} {
			f.push(job[int]{state: n})
		}
		for i, expected := range test.expected {
			j, ok := f.pop()
			if !ok {
				t.Fatalf("%v: Pop %v unexpectedly failed", test.strategy, i)
			}
			if j.state != expected {
				t.Errorf("%v: Unexpected pop order. Got %v. Expected %v.", test.strategy, j.state, expected)
			}
			f.done()
		}
	}
}

func TestFrontierExhaustionReleasesBlockedPop(t *testing.T) {
	f := newFrontier[int](BFS)
	f.push(job[int]{state: 1})
	if _, ok := f.pop(); !ok {
		t.Fatalf("Pop of a non-empty frontier failed")
	}

	// A second worker blocks: the frontier is empty but the first worker is
	// still expanding and may produce more work.
	popped := make(chan bool)
	go func() {
		_, ok := f.pop()
		popped <- ok
	}()

	select {
	case <-popped:
		t.Fatalf("Pop returned while another worker was still expanding")
	case <-time.After(10 * time.Millisecond):
	}

	// The first worker finishes without producing work: exhaustion.
	f.done()
	select {
	case ok := <-popped:
		if ok {
			t.Errorf("Expected pop to report exhaustion")
		}
	case <-time.After(time.Second):
		t.Fatalf("Pop still blocked after the last worker went idle")
	}
}

func TestFrontierStopReleasesBlockedPop(t *testing.T) {
	f := newFrontier[int](DFS)
	f.push(job[int]{state: 1})
	if _, ok := f.pop(); !ok {
		t.Fatalf("Pop of a non-empty frontier failed")
	}

	popped := make(chan bool)
	go func() {
		_, ok := f.pop()
		popped <- ok
	}()

	f.stop()
	select {
	case ok := <-popped:
		if ok {
			t.Errorf("Expected pop to fail after stop")
		}
	case <-time.After(time.Second):
		t.Fatalf("Pop still blocked after stop")
	}

	// Work pushed after a stop is never handed out.
	f.push(job[int]{state: 2})
	if _, ok := f.pop(); ok {
		t.Errorf("Expected pop to keep failing after stop")
	}
}
