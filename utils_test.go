package stateright

import "sync"

// Create some dummy models for use when testing.

// A walk on a bounded grid starting in the origin. Both moves are always
// enumerated; NextState declines the ones that would leave the grid, so the
// inapplicable-action path is exercised on every border state. The reachable
// state count is (size+1)^2 and the corner (size, size) is 2*size steps away.
type gridState struct {
	X, Y int
}

type gridMove string

const (
	moveRight gridMove = "right"
	moveUp    gridMove = "up"
)

type gridModel struct {
	size  int
	props []Property[gridState]
}

func (m gridModel) InitStates() []gridState {
	return []gridState{{X: 0, Y: 0}}
}

func (m gridModel) Actions(s gridState) []gridMove {
	return []gridMove{moveRight, moveUp}
}

func (m gridModel) NextState(s gridState, a gridMove) (gridState, bool) {
	switch a {
	case moveRight:
		if s.X < m.size {
			return gridState{X: s.X + 1, Y: s.Y}, true
		}
	case moveUp:
		if s.Y < m.size {
			return gridState{X: s.X, Y: s.Y + 1}, true
		}
	}
	return gridState{}, false
}

func (m gridModel) Properties() []Property[gridState] {
	return m.props
}

// Wraps a model, recording how often each state is expanded. Actions is
// called exactly once per expansion, so the counts expose duplicate
// expansions.
type countingModel struct {
	Model[gridState, gridMove]

	mu         sync.Mutex
	expansions map[Fingerprint]int
	states     []gridState
}

func newCountingModel(inner Model[gridState, gridMove]) *countingModel {
	return &countingModel{
		Model:      inner,
		expansions: make(map[Fingerprint]int),
	}
}

func (c *countingModel) Actions(s gridState) []gridMove {
	c.mu.Lock()
	c.expansions[FingerprintOf(s)]++
	c.states = append(c.states, s)
	c.mu.Unlock()
	return c.Model.Actions(s)
}
