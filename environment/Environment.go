// Package environment outlines the interfaces and structs needed to
// implement concrete discrete environments
package environment

import (
	"image"
	"io"

	ts "github.com/samuelfneumann/tabular/timestep"
)

// Starter implements a distribution of starting states and samples starting
// states for environments
type Starter interface {
	Start() ts.State
}

// Ender determines when episodes should end
type Ender interface {
	// End returns whether the episode should end on the argument
	// TimeStep. If so, End modifies the TimeStep so that its StepType
	// is timestep.Last and its EndType records why the episode ended.
	End(*ts.TimeStep) bool
}

// Task implements the reward scheme for taking actions in some
// environment, together with the start state distribution and the
// conditions under which episodes end
type Task interface {
	Starter
	Ender

	// GetReward returns the reward for taking action in state and
	// transitioning to nextState
	GetReward(state ts.State, action int, nextState ts.State) float64

	// AtGoal returns whether state is a goal state of the Task
	AtGoal(state ts.State) bool

	// Min and Max return the minimum and maximum rewards attainable in
	// the Task
	Min() float64
	Max() float64
}

// Environment implements a simulated discrete environment. Environments
// start ready to use.
type Environment interface {
	// Reset resets the environment between episodes and returns the
	// first TimeStep of the new episode
	Reset() (ts.TimeStep, error)

	// Step takes one environmental step given an action and returns
	// the next TimeStep as well as whether or not the episode ended.
	// Actions outside the action specification result in an error.
	Step(action int) (ts.TimeStep, bool, error)

	// Render writes a human readable representation of the current
	// environment state to w
	Render(w io.Writer) error

	ObservationSpec() Spec
	ActionSpec() Spec
	DiscountSpec() Spec
}

// Imager is an Environment which can draw its current state as an image
type Imager interface {
	Environment
	Image() image.Image
}
