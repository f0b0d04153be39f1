package stateright

import "sync"

// Strategy selects the traversal order of the search.
//
// BFS yields the shortest counterexamples. DFS reaches deep states faster but
// produces longer witnesses. With more than one worker the order is only
// approximately breadth or depth first; each reachable state is still
// expanded exactly once.
type Strategy int

const (
	BFS Strategy = iota
	DFS
)

func (s Strategy) String() string {
	switch s {
	case BFS:
		return "bfs"
	case DFS:
		return "dfs"
	}
	return "unknown"
}

// A unit of work: a discovered state waiting to be expanded.
type job[S any] struct {
	state S
	fp    Fingerprint
}

// The frontier holds discovered but not yet expanded states, shared between
// all workers of a run.
//
// It acts as a FIFO queue under BFS and as a LIFO stack under DFS. A pop on
// an empty frontier blocks only while some other worker is still expanding a
// state and may produce more work. Once the frontier is empty and no worker
// is expanding, all blocked pops return false: the state space is exhausted.
// A stop signal releases all blocked pops immediately.
type frontier[S any] struct {
	cond     *sync.Cond
	jobs     []job[S]
	strategy Strategy

	// Number of workers currently expanding a popped state.
	expanding int
	stopped   bool
}

func newFrontier[S any](strategy Strategy) *frontier[S] {
	return &frontier[S]{
		cond:     sync.NewCond(new(sync.Mutex)),
		strategy: strategy,
	}
}

// Add a discovered state to the frontier.
func (f *frontier[S]) push(j job[S]) {
	f.cond.L.Lock()
	defer f.cond.L.Unlock()

	f.jobs = append(f.jobs, j)
	f.cond.Broadcast()
}

// Remove one state from the frontier for expansion.
//
// Blocks while the frontier is empty but work may still appear. Returns false
// when the run is stopped or the state space is exhausted. A successful pop
// must be paired with a call to done once the expansion is complete.
func (f *frontier[S]) pop() (job[S], bool) {
	f.cond.L.Lock()
	defer f.cond.L.Unlock()

	for len(f.jobs) == 0 && f.expanding > 0 && !f.stopped {
		f.cond.Wait()
	}
	if f.stopped || len(f.jobs) == 0 {
		var zero job[S]
		return zero, false
	}

	var j job[S]
	switch f.strategy {
	case DFS:
		j = f.jobs[len(f.jobs)-1]
		f.jobs = f.jobs[:len(f.jobs)-1]
	default:
		j = f.jobs[0]
		f.jobs = f.jobs[1:]
	}
	f.expanding++
	return j, true
}

// Signal that the expansion of a previously popped state is complete.
func (f *frontier[S]) done() {
	f.cond.L.Lock()
	defer f.cond.L.Unlock()

	f.expanding--
	if f.expanding == 0 {
		// The last active worker may just have exhausted the search.
		f.cond.Broadcast()
	}
}

// Stop the run. All blocked and future pops return false.
func (f *frontier[S]) stop() {
	f.cond.L.Lock()
	defer f.cond.L.Unlock()

	f.stopped = true
	f.cond.Broadcast()
}
