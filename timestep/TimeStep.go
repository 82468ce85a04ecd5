// Package timestep implements timesteps of the agent-environment interaction
package timestep

import (
	"fmt"
)

// State is a discrete environment state. States are used directly as
// keys into tabular value functions, so each distinct environment
// configuration must map to a distinct State.
type State int

// Terminal is the sentinel State standing in for the successor of a
// transition into a terminal state. Learners do not bootstrap from
// Terminal.
const Terminal State = -1

// StepType denotes the type of step that a TimeStep can be, either  first
// environmental step, a middle step, or a last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// EndType describes how an episode ended
type EndType int

const (
	// Nil denotes an episode that has not ended
	Nil EndType = iota

	// TerminalStateReached denotes an episode that ended by
	// transitioning into a terminal state
	TerminalStateReached

	// Timeout denotes an episode that was cut off by a step limit. The
	// state at the cutoff is not terminal.
	Timeout
)

func (e EndType) String() string {
	switch e {
	case TerminalStateReached:
		return "TerminalStateReached"
	case Timeout:
		return "Timeout"
	default:
		return "Nil"
	}
}

// TimeStep packages together a single timestep in an environment
type TimeStep struct {
	StepType
	Reward      float64
	Discount    float64
	Observation State
	Number      int
	end         EndType
}

// New returns a new TimeStep
func New(t StepType, r, d float64, o State, n int) TimeStep {
	return TimeStep{StepType: t, Reward: r, Discount: d, Observation: o,
		Number: n}
}

// First returns whether a TimeStep is the first in an environment
func (t TimeStep) First() bool {
	return t.StepType == First
}

// Mid returns whether a TimeStep is a middle step in an environment
func (t TimeStep) Mid() bool {
	return t.StepType == Mid
}

// Last returns whether a TimeStep is the last step in an environment
func (t TimeStep) Last() bool {
	return t.StepType == Last
}

// SetEnd sets the way in which the episode ended. SetEnd does not
// change the StepType of the TimeStep; callers ending an episode should
// also set the StepType to Last.
func (t *TimeStep) SetEnd(e EndType) {
	t.end = e
}

// EndType returns the way in which the episode ended. If the TimeStep
// is not the last in its episode, Nil is returned.
func (t TimeStep) EndType() EndType {
	if !t.Last() {
		return Nil
	}
	return t.end
}

// NextState returns the State a learner should bootstrap from after
// transitioning into this TimeStep. If the episode ended in a terminal
// state, Terminal is returned. Otherwise, including when the episode
// was cut off by a step limit, the observation is returned.
func (t TimeStep) NextState() State {
	if t.EndType() == TerminalStateReached {
		return Terminal
	}
	return t.Observation
}

func (t TimeStep) String() string {
	str := "TimeStep | Type: %v  |  Reward:  %.2f  |  Discount: %.2f  |  " +
		"State: %v  |  Step Number:  %v"

	return fmt.Sprintf(str, t.StepType, t.Reward, t.Discount, t.Observation,
		t.Number)
}
