// Package agent defines an agent interface
package agent

import (
	ts "github.com/samuelfneumann/tabular/timestep"
)

// Agent determines the implementation details of an agent or algorithm
//
// An Agent is composed of a Learner, which learns action values, and a
// Policy which chooses actions in each state. The Policy chooses which
// actions are taken, and the Learner uses these actions to update the
// Policy. For a given agent, the Policy and Learner should share the
// same value table so that any changes the learner makes are reflected
// in the actions the Policy chooses.
type Agent interface {
	Learner
	Policy
}

// Learner implements a learning algorithm that defines how action
// values are updated.
type Learner interface {
	// Step performs a single update given the transition
	// (state, action, reward, next). The next state is timestep.Terminal
	// when the transition entered a terminal state. done denotes that
	// the transition was the last of its episode.
	Step(state ts.State, action int, reward float64, next ts.State,
		done bool)
}

// TdErrorer is a Learner that can return the TD error of some
// transition
type TdErrorer interface {
	Learner

	// TdError returns the TD error on a transition without updating
	TdError(state ts.State, action int, reward float64,
		next ts.State) float64
}

// Policy represents a policy that an agent can have.
//
// Policies determine how agents select actions. Agents usually have a
// target and behaviour policy.
type Policy interface {
	SelectAction(state ts.State) int
}

// Explorer is a Policy with an exploration rate
type Explorer interface {
	Policy
	Epsilon() float64
}
