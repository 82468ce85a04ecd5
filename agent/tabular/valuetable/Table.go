// Package valuetable implements tabular action-value functions
package valuetable

import (
	"fmt"
	"sort"

	ts "github.com/samuelfneumann/tabular/timestep"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Table maps discrete states to one action value per action. Rows are
// created on first access, zero-initialized, and never removed.
type Table struct {
	rows       map[ts.State]*mat.VecDense
	numActions int
}

// New returns a new, empty Table with nA actions in each row
func New(nA int) (*Table, error) {
	if nA <= 0 {
		return nil, fmt.Errorf("new: number of actions must be positive, "+
			"got %d", nA)
	}
	return &Table{rows: make(map[ts.State]*mat.VecDense), numActions: nA}, nil
}

// GetOrCreateRow returns the row of action values for state s,
// inserting a zero row if s has not been seen before. The same row is
// returned on every later call, so writes to it are visible to all
// readers of the Table.
func (t *Table) GetOrCreateRow(s ts.State) *mat.VecDense {
	row, ok := t.rows[s]
	if !ok {
		row = mat.NewVecDense(t.numActions, nil)
		t.rows[s] = row
	}
	return row
}

// Value returns the value of action a in state s
func (t *Table) Value(s ts.State, a int) float64 {
	return t.GetOrCreateRow(s).AtVec(a)
}

// ArgMax returns the action with the largest value in state s. Ties are
// broken by the lowest action index.
func (t *Table) ArgMax(s ts.State) int {
	return floats.MaxIdx(t.GetOrCreateRow(s).RawVector().Data)
}

// Max returns the largest action value in state s
func (t *Table) Max(s ts.State) float64 {
	return floats.Max(t.GetOrCreateRow(s).RawVector().Data)
}

// NumActions returns the number of actions in each row
func (t *Table) NumActions() int {
	return t.numActions
}

// Len returns the number of states with a row in the Table
func (t *Table) Len() int {
	return len(t.rows)
}

// States returns the states with a row in the Table in increasing order
func (t *Table) States() []ts.State {
	states := make([]ts.State, 0, len(t.rows))
	for s := range t.rows {
		states = append(states, s)
	}
	sort.Slice(states, func(i, j int) bool { return states[i] < states[j] })
	return states
}
