package gridworld

import (
	"fmt"

	"github.com/samuelfneumann/tabular/environment"
	ts "github.com/samuelfneumann/tabular/timestep"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Goal represents the task of reaching goal states in a GridWorld.
// Each transition into a goal state yields the goal reward and ends the
// episode; every other transition yields the timestep reward.
type Goal struct {
	environment.Starter
	goalEnder *environment.FunctionEnder
	stepLimit environment.StepLimit

	goals          *mat.Dense // (x, y) coordinates of goals, one per row
	r, c           int        // total rows and columns in environment
	timeStepReward float64
	goalReward     float64
}

// NewGoal creates and returns a new goal task with goals at positions
// (x[i], y[i]), given that the gridworld has r rows and c columns.
// Episodes are cut off after cutoff steps; a cutoff of 0 or less never
// cuts episodes off.
func NewGoal(s environment.Starter, x, y []int, r, c int, tr, gr float64,
	cutoff int) (*Goal, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("newGoal: x length (%d) != y length (%d)",
			len(x), len(y))
	}
	if len(x) == 0 {
		return nil, fmt.Errorf("newGoal: at least one goal is required")
	}

	coords := make([]float64, 0, 2*len(x))
	for i := range x {
		// Ensure that the goal is within the proper bounds
		if x[i] < 0 || x[i] >= c {
			return nil, fmt.Errorf("newGoal: x[%d] = %d outside cols = %d",
				i, x[i], c)
		} else if y[i] < 0 || y[i] >= r {
			return nil, fmt.Errorf("newGoal: y[%d] = %d outside rows = %d",
				i, y[i], r)
		}
		coords = append(coords, float64(x[i]), float64(y[i]))
	}
	goals := mat.NewDense(len(x), 2, coords)

	g := &Goal{
		Starter:        s,
		stepLimit:      environment.NewStepLimit(cutoff),
		goals:          goals,
		r:              r,
		c:              c,
		timeStepReward: tr,
		goalReward:     gr,
	}
	g.goalEnder = environment.NewFunctionEnder(g.AtGoal,
		ts.TerminalStateReached)
	return g, nil
}

// GetReward returns the reward for transitioning to nextState
func (g *Goal) GetReward(_ ts.State, _ int, nextState ts.State) float64 {
	if g.AtGoal(nextState) {
		return g.goalReward
	}
	return g.timeStepReward
}

// AtGoal represents if the goal state has been reached or not
func (g *Goal) AtGoal(state ts.State) bool {
	x, y := indToC(int(state), g.c)

	numGoals, _ := g.goals.Dims()
	for i := 0; i < numGoals; i++ {
		goal := g.goals.RawRowView(i)
		if x == int(goal[0]) && y == int(goal[1]) {
			return true
		}
	}
	return false
}

// End ends episodes which reach a goal state or the step limit
func (g *Goal) End(t *ts.TimeStep) bool {
	if g.goalEnder.End(t) {
		return true
	}
	return g.stepLimit.End(t)
}

// Cutoff returns the number of steps after which episodes are cut off
func (g *Goal) Cutoff() int {
	return g.stepLimit.Limit()
}

// Min returns the minimum reward attainable in the Task
func (g *Goal) Min() float64 {
	return floats.Min([]float64{g.timeStepReward, g.goalReward})
}

// Max returns the maximum reward attainable in the Task
func (g *Goal) Max() float64 {
	return floats.Max([]float64{g.timeStepReward, g.goalReward})
}

// String returns the Goal as a string
func (g *Goal) String() string {
	fa := mat.Formatted(g.goals, mat.Prefix(""), mat.Squeeze())
	return fmt.Sprintf("%v", fa)
}
