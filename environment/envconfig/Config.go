// Package envconfig provides configuration structs for configuring
// environments with default parameters and tasks. Environment
// configurations in this package are JSON serializable.
package envconfig

import (
	"fmt"

	env "github.com/samuelfneumann/tabular/environment"
	"github.com/samuelfneumann/tabular/environment/bandit"
	"github.com/samuelfneumann/tabular/environment/gridworld"
	"github.com/samuelfneumann/tabular/environment/taxi"
	ts "github.com/samuelfneumann/tabular/timestep"
)

// EnvName stores the name of environments that can be configured with
// this package
type EnvName string

// Environments available for configuration
const (
	Taxi      EnvName = "Taxi"
	GridWorld EnvName = "GridWorld"
	Bandit    EnvName = "Bandit"
)

// Default gridworld rewards
const (
	GridWorldStepReward float64 = -0.1
	GridWorldGoalReward float64 = 1.0
)

// Config implements a specific configuration of a specific environment.
// Rows and Cols are only used by GridWorld, which starts in the bottom
// left corner and has a single goal in the top right corner. Rewards
// holds the per-action rewards of a Bandit.
type Config struct {
	Environment   EnvName   `json:"environment" mapstructure:"name"`
	EpisodeCutoff uint      `json:"episode_cutoff" mapstructure:"episode_cutoff"`
	Discount      float64   `json:"discount" mapstructure:"discount"`
	Rows          int       `json:"rows" mapstructure:"rows"`
	Cols          int       `json:"cols" mapstructure:"cols"`
	Rewards       []float64 `json:"rewards" mapstructure:"rewards"`
}

// NewConfig returns a new environment Config
func NewConfig(envName EnvName, episodeCutoff uint, discount float64) Config {
	return Config{
		Environment:   envName,
		EpisodeCutoff: episodeCutoff,
		Discount:      discount,
	}
}

// Create returns the environment described by the Config as well as
// the first timestep of the environment.
func (c Config) Create(seed uint64) (env.Environment, ts.TimeStep, error) {
	switch c.Environment {
	case Taxi:
		return CreateTaxi(int(c.EpisodeCutoff), seed)

	case GridWorld:
		return CreateGridWorld(c.Rows, c.Cols, int(c.EpisodeCutoff),
			c.Discount)

	case Bandit:
		return CreateBandit(c.Rewards)
	}

	return nil, ts.TimeStep{}, fmt.Errorf("create: cannot create "+
		"environment %v, no such environment", c.Environment)
}

// CreateTaxi is a factory for creating the Taxi environment
func CreateTaxi(cutoff int, seed uint64) (env.Environment, ts.TimeStep,
	error) {
	e, step, err := taxi.New(seed, cutoff)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("createTaxi: %w", err)
	}
	return e, step, nil
}

// CreateGridWorld is a factory for creating a gridworld with r rows and
// c columns, starting in the bottom left corner with a goal in the top
// right corner and default rewards
func CreateGridWorld(r, c, cutoff int, discount float64) (env.Environment,
	ts.TimeStep, error) {
	s, err := gridworld.NewSingleStart(0, 0, r, c)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("createGridWorld: %w", err)
	}

	task, err := gridworld.NewGoal(s, []int{c - 1}, []int{r - 1}, r, c,
		GridWorldStepReward, GridWorldGoalReward, cutoff)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("createGridWorld: %w", err)
	}

	e, step, err := gridworld.New(r, c, task, discount)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("createGridWorld: %w", err)
	}
	return e, step, nil
}

// CreateBandit is a factory for creating a bandit with the argument
// per-action rewards
func CreateBandit(rewards []float64) (env.Environment, ts.TimeStep, error) {
	e, step, err := bandit.New(rewards)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("createBandit: %w", err)
	}
	return e, step, nil
}
