package environment

import (
	"fmt"

	"golang.org/x/exp/rand"

	ts "github.com/samuelfneumann/tabular/timestep"
	"gonum.org/v1/gonum/stat/distuv"
)

// CategoricalStarter returns starting states sampled from a categorical
// distribution over a fixed set of states.
type CategoricalStarter struct {
	states []ts.State
	seed   uint64
	rand   distuv.Categorical
}

// NewCategoricalStarter returns a new CategoricalStarter which samples
// states[i] with probability proportional to weights[i]
func NewCategoricalStarter(states []ts.State, weights []float64,
	seed uint64) (*CategoricalStarter, error) {
	if len(states) == 0 {
		return nil, fmt.Errorf("newCategoricalStarter: at least one start " +
			"state is required")
	}
	if len(states) != len(weights) {
		return nil, fmt.Errorf("newCategoricalStarter: %d states but %d "+
			"weights", len(states), len(weights))
	}

	source := rand.NewSource(seed)
	dist := distuv.NewCategorical(weights, source)

	s := make([]ts.State, len(states))
	copy(s, states)

	return &CategoricalStarter{s, seed, dist}, nil
}

// NewUniformStarter returns a new CategoricalStarter which samples
// each of the argument states with equal probability
func NewUniformStarter(states []ts.State,
	seed uint64) (*CategoricalStarter, error) {
	weights := make([]float64, len(states))
	for i := range weights {
		weights[i] = 1.0 / float64(len(weights))
	}

	return NewCategoricalStarter(states, weights, seed)
}

// Start returns a starting state
func (c *CategoricalStarter) Start() ts.State {
	return c.states[int(c.rand.Rand())]
}

// States returns the states that the CategoricalStarter samples from
func (c *CategoricalStarter) States() []ts.State {
	s := make([]ts.State, len(c.states))
	copy(s, c.states)
	return s
}
