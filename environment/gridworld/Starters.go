package gridworld

import (
	"fmt"

	"github.com/samuelfneumann/tabular/environment"
	ts "github.com/samuelfneumann/tabular/timestep"
)

// SingleStart always starts episodes in the same gridworld cell
type SingleStart struct {
	state ts.State
}

// NewSingleStart returns a starter which always starts at (x, y) in a
// gridworld with r rows and c columns
func NewSingleStart(x, y, r, c int) (environment.Starter, error) {
	if x < 0 || x >= c {
		return nil, fmt.Errorf("newSingleStart: x = %d outside cols = %d",
			x, c)
	} else if y < 0 || y >= r {
		return nil, fmt.Errorf("newSingleStart: y = %d outside rows = %d",
			y, r)
	}

	return &SingleStart{cToInd(x, y, c)}, nil
}

// Start returns the starting state
func (s *SingleStart) Start() ts.State {
	return s.state
}
