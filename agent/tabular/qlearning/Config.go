package qlearning

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samuelfneumann/tabular/environment"
)

// Default hyperparameters
const (
	DefaultEpsilon = 1.0
	DefaultDecay   = 0.999
	DefaultGamma   = 1.0
	DefaultAlpha   = 0.1
)

// Config represents a configuration for the QLearning agent
type Config struct {
	NA      int     `mapstructure:"n_actions" json:"n_actions"`
	Epsilon float64 `mapstructure:"epsilon" json:"epsilon"` // initial ε of behaviour policy
	Decay   float64 `mapstructure:"decay" json:"decay"`     // per-episode ε multiplier
	Gamma   float64 `mapstructure:"gamma" json:"gamma"`
	Alpha   float64 `mapstructure:"alpha" json:"alpha"`
}

// DefaultConfig returns the default Config for an environment with nA
// actions
func DefaultConfig(nA int) Config {
	return Config{
		NA:      nA,
		Epsilon: DefaultEpsilon,
		Decay:   DefaultDecay,
		Gamma:   DefaultGamma,
		Alpha:   DefaultAlpha,
	}
}

// CreateAgent creates the agent from the Config. If the number of
// actions is not set, it is taken from the environment's action
// specification. Action values are always initialized to zero.
func (c Config) CreateAgent(env environment.Environment,
	seed uint64) (*QLearning, error) {
	if c.NA == 0 {
		c.NA = env.ActionSpec().Len()
	}

	q, err := New(c, seed)
	if err != nil {
		return nil, fmt.Errorf("createAgent: %w", err)
	}
	return q, nil
}

// Validate ensures that the Config is valid. Only the number of actions
// is checked; ε and its decay are used as given.
func (c Config) Validate() error {
	var errs []string

	if c.NA <= 0 {
		errs = append(errs, fmt.Sprintf("n_actions must be positive, got %d",
			c.NA))
	}

	if len(errs) > 0 {
		return errors.New("invalid agent config: " + strings.Join(errs, "; "))
	}
	return nil
}
