// Package qlearning implements the tabular Q-Learning algorithm with an
// ε-greedy behaviour policy whose ε is annealed at the end of each
// episode.
package qlearning

import (
	"fmt"

	"github.com/samuelfneumann/tabular/agent"
	"github.com/samuelfneumann/tabular/agent/tabular/policy"
	"github.com/samuelfneumann/tabular/agent/tabular/valuetable"
	ts "github.com/samuelfneumann/tabular/timestep"
)

// QLearning implements the Q-Learning algorithm. The learner, the
// behaviour policy, and the greedy target policy share a single value
// table.
//
// QLearning is not safe for concurrent use.
type QLearning struct {
	*QLearner
	behaviour *policy.EGreedy
	target    *policy.EGreedy
	decay     float64
	seed      uint64
}

// New creates a new QLearning agent from a Config
func New(c Config, seed uint64) (*QLearning, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}

	table, err := valuetable.New(c.NA)
	if err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}

	behaviour := policy.NewEGreedy(c.Epsilon, seed, table)
	target := policy.NewGreedy(seed, table)
	learner := NewQLearner(table, c.Gamma, c.Alpha)

	return &QLearning{learner, behaviour, target, c.Decay, seed}, nil
}

// SelectAction selects an action in state using the ε-greedy behaviour
// policy
func (q *QLearning) SelectAction(state ts.State) int {
	return q.behaviour.SelectAction(state)
}

// Step performs a Q-Learning update on the transition (state, action,
// reward, next). If done, ε is multiplied by the decay factor once.
func (q *QLearning) Step(state ts.State, action int, reward float64,
	next ts.State, done bool) {
	q.QLearner.Step(state, action, reward, next, done)

	if done {
		q.behaviour.SetEpsilon(q.behaviour.Epsilon() * q.decay)
	}
}

// Epsilon returns the current exploration rate of the behaviour policy
func (q *QLearning) Epsilon() float64 {
	return q.behaviour.Epsilon()
}

// Table returns the value table shared by the learner and policies
func (q *QLearning) Table() *valuetable.Table {
	return q.behaviour.Table()
}

// Greedy returns the greedy target policy, which shares the agent's
// value table
func (q *QLearning) Greedy() agent.Policy {
	return q.target
}

// Seed returns the seed used to construct the agent
func (q *QLearning) Seed() uint64 {
	return q.seed
}
