// Package bandit implements a single-state, always-terminal
// environment: a contextless multi-armed bandit with deterministic
// rewards
package bandit

import (
	"fmt"
	"io"

	env "github.com/samuelfneumann/tabular/environment"
	ts "github.com/samuelfneumann/tabular/timestep"
	"gonum.org/v1/gonum/floats"
)

// State is the single state of the Bandit
const State ts.State = 0

// Bandit is an environment with a single state in which every action
// ends the episode. Taking action a yields reward rewards[a].
type Bandit struct {
	rewards     []float64
	currentStep ts.TimeStep
	lastAction  int
}

// New returns a new Bandit with one action per reward
func New(rewards []float64) (*Bandit, ts.TimeStep, error) {
	if len(rewards) == 0 {
		return nil, ts.TimeStep{}, fmt.Errorf("new: at least one action " +
			"is required")
	}

	r := make([]float64, len(rewards))
	copy(r, rewards)

	b := &Bandit{rewards: r, lastAction: -1}
	step, err := b.Reset()
	return b, step, err
}

// Reset resets the environment and returns the first TimeStep
func (b *Bandit) Reset() (ts.TimeStep, error) {
	b.currentStep = ts.New(ts.First, 0, 1.0, State, 0)
	b.lastAction = -1
	return b.currentStep, nil
}

// Step takes one environmental step given action a. Every step ends
// the episode in a terminal state.
func (b *Bandit) Step(a int) (ts.TimeStep, bool, error) {
	if a < 0 || a >= len(b.rewards) {
		return ts.TimeStep{}, false, fmt.Errorf("step: illegal action %d "+
			"∉ [0, %d)", a, len(b.rewards))
	}

	step := ts.New(ts.Last, b.rewards[a], 1.0, State,
		b.currentStep.Number+1)
	step.SetEnd(ts.TerminalStateReached)

	b.currentStep = step
	b.lastAction = a
	return step, true, nil
}

// Render writes the last action and reward to w
func (b *Bandit) Render(w io.Writer) error {
	if b.lastAction < 0 {
		_, err := fmt.Fprintf(w, "Bandit | arms: %d\n", len(b.rewards))
		return err
	}
	_, err := fmt.Fprintf(w, "Bandit | arms: %d | pulled: %d | reward: %v\n",
		len(b.rewards), b.lastAction, b.currentStep.Reward)
	return err
}

// ActionSpec returns the action specification of the environment
func (b *Bandit) ActionSpec() env.Spec {
	return env.NewDiscreteSpec(env.Action, len(b.rewards))
}

// ObservationSpec returns the observation specification of the
// environment
func (b *Bandit) ObservationSpec() env.Spec {
	return env.NewDiscreteSpec(env.Observation, 1)
}

// DiscountSpec returns the discount specification of the environment
func (b *Bandit) DiscountSpec() env.Spec {
	return env.NewDiscountSpec(1.0)
}

// Min returns the minimum reward attainable in the environment
func (b *Bandit) Min() float64 {
	return floats.Min(b.rewards)
}

// Max returns the maximum reward attainable in the environment
func (b *Bandit) Max() float64 {
	return floats.Max(b.rewards)
}

func (b *Bandit) String() string {
	return fmt.Sprintf("Bandit | Rewards: %v", b.rewards)
}
