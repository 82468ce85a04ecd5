package qlearning

import (
	"github.com/samuelfneumann/tabular/agent/tabular/valuetable"
	ts "github.com/samuelfneumann/tabular/timestep"
)

// QLearner implements the update functionality for the Q-Learning
// algorithm.
type QLearner struct {
	table        *valuetable.Table
	discount     float64
	learningRate float64
}

// NewQLearner creates a new QLearner struct
//
// table is the value table of the policy to learn
func NewQLearner(table *valuetable.Table, discount,
	learningRate float64) *QLearner {
	return &QLearner{table, discount, learningRate}
}

// TdError returns the TD error of the transition (state, action,
// reward, next) without updating the value table
func (q *QLearner) TdError(state ts.State, action int, reward float64,
	next ts.State) float64 {
	return q.target(reward, next) - q.table.Value(state, action)
}

// Step updates the value of action in state toward the Q-Learning
// target. The done flag is ignored by the learner.
func (q *QLearner) Step(state ts.State, action int, reward float64,
	next ts.State, _ bool) {
	target := q.target(reward, next)

	row := q.table.GetOrCreateRow(state)
	current := row.AtVec(action)
	row.SetVec(action, current+q.learningRate*(target-current))
}

// target returns the update target for a transition. No bootstrapping
// is done from the terminal state.
func (q *QLearner) target(reward float64, next ts.State) float64 {
	var bootstrap float64
	if next != ts.Terminal {
		bootstrap = q.table.Max(next)
	}
	return reward + q.discount*bootstrap
}
