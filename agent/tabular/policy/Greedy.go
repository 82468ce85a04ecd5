package policy

import "github.com/samuelfneumann/tabular/agent/tabular/valuetable"

// NewGreedy creates a new Greedy policy
func NewGreedy(seed uint64, table *valuetable.Table) *EGreedy {
	return NewEGreedy(0.0, seed, table)
}
