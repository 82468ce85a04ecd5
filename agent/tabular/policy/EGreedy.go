// Package policy implements policies over tabular action values
package policy

import (
	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/tabular/agent/tabular/valuetable"
	ts "github.com/samuelfneumann/tabular/timestep"
	"gonum.org/v1/gonum/stat/distuv"
)

// EGreedy implements an ε-greedy policy over a value table
type EGreedy struct {
	table   *valuetable.Table
	explore distuv.Bernoulli // Draws 1 with probability ε
	rng     *rand.Rand
}

// NewEGreedy constructs a new EGreedy policy, where e=epsilon is the
// probability with which a random action is selected. The policy reads
// action values from table, so any updates to table are reflected in
// the actions the policy chooses.
func NewEGreedy(e float64, seed uint64, table *valuetable.Table) *EGreedy {
	source := rand.NewSource(seed)

	return &EGreedy{
		table:   table,
		explore: distuv.Bernoulli{P: e, Src: source},
		rng:     rand.New(source),
	}
}

// SelectAction selects an action from the ε-greedy policy. With
// probability 1 - ε the greedy action is selected, with ties broken by
// the lowest action index. Otherwise, an action is selected uniformly
// at random. The row of state is created in the table if needed.
func (p *EGreedy) SelectAction(state ts.State) int {
	greedy := p.table.ArgMax(state)
	if p.explore.P <= 0 || p.explore.Rand() == 0 {
		return greedy
	}
	return p.rng.Intn(p.table.NumActions())
}

// SetEpsilon sets the probability of selecting a random action
func (p *EGreedy) SetEpsilon(e float64) {
	p.explore.P = e
}

// Epsilon returns the probability of selecting a random action
func (p *EGreedy) Epsilon() float64 {
	return p.explore.P
}

// Table returns the value table of the policy
func (p *EGreedy) Table() *valuetable.Table {
	return p.table
}
