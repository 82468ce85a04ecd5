// Package experiment implements functionality for running an experiment
package experiment

import (
	"errors"
	"fmt"
	"strings"
)

// Experiment outlines structs that can run experiments. The Run()
// method runs all episodes until the episode limit is reached, or some
// other ending condition is reached. The RunEpisode() method runs a
// single episode.
//
// Experiments notify Observers at the start of each episode, after
// each environmental step, and at the end of each episode. New
// Observers can be registered with an Experiment through the
// constructor or through an Experiment's Register() method.
type Experiment interface {
	Run() (Result, error)

	// RunEpisode runs episode i and returns its return
	RunEpisode(i int) (float64, error)

	// Register adds a new Observer to the (possibly already running)
	// experiment. Useful if you want to observe data only after a
	// specified event.
	Register(o Observer)
}

// Defaults of the episodic experiment
const (
	DefaultNumEpisodes     = 20000
	DefaultWindow          = 100
	DefaultWarmUp          = 100
	DefaultSolvedThreshold = 9.7
)

// Config represents a configuration of an episodic experiment.
//
// The moving average of the last Window episodic returns is tracked
// starting at episode WarmUp. If EarlyStop is set, the experiment ends
// once the best moving average reaches SolvedThreshold.
type Config struct {
	NumEpisodes     int     `mapstructure:"num_episodes" json:"num_episodes"`
	Window          int     `mapstructure:"window" json:"window"`
	WarmUp          int     `mapstructure:"warm_up" json:"warm_up"`
	EarlyStop       bool    `mapstructure:"early_stop" json:"early_stop"`
	SolvedThreshold float64 `mapstructure:"solved_threshold" json:"solved_threshold"`
}

// DefaultConfig returns the default experiment Config
func DefaultConfig() Config {
	return Config{
		NumEpisodes:     DefaultNumEpisodes,
		Window:          DefaultWindow,
		WarmUp:          DefaultWarmUp,
		EarlyStop:       false,
		SolvedThreshold: DefaultSolvedThreshold,
	}
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	var errs []string

	if c.NumEpisodes <= 0 {
		errs = append(errs, fmt.Sprintf("num_episodes must be positive, "+
			"got %d", c.NumEpisodes))
	}
	if c.Window <= 0 {
		errs = append(errs, fmt.Sprintf("window must be positive, got %d",
			c.Window))
	}
	if c.WarmUp < 0 {
		errs = append(errs, fmt.Sprintf("warm_up cannot be negative, got %d",
			c.WarmUp))
	}

	if len(errs) > 0 {
		return errors.New("invalid experiment config: " +
			strings.Join(errs, "; "))
	}
	return nil
}
