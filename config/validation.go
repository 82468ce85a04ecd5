package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samuelfneumann/tabular/environment/envconfig"
	"github.com/sirupsen/logrus"
)

// Validate validates the configuration, reporting all problems at once
func (c *Config) Validate() error {
	var errs []string

	if c.Agent.NA < 0 {
		errs = append(errs, fmt.Sprintf("agent.n_actions cannot be "+
			"negative, got %d", c.Agent.NA))
	}

	if err := c.Monitor.Validate(); err != nil {
		errs = append(errs, err.Error())
	}

	switch c.Environment.Environment {
	case envconfig.Taxi:
	case envconfig.GridWorld:
		if c.Environment.Rows <= 0 || c.Environment.Cols <= 0 {
			errs = append(errs, fmt.Sprintf("environment: gridworld must "+
				"have positive dimensions, got (%d, %d)",
				c.Environment.Rows, c.Environment.Cols))
		}
	case envconfig.Bandit:
		if len(c.Environment.Rewards) == 0 {
			errs = append(errs, "environment: bandit requires rewards")
		}
	default:
		errs = append(errs, fmt.Sprintf("environment: unknown environment "+
			"%q", c.Environment.Environment))
	}

	if _, err := logrus.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Sprintf("logging.level: %v", err))
	}
	if c.Logging.Format != "json" && c.Logging.Format != "text" {
		errs = append(errs, fmt.Sprintf("logging.format must be json or "+
			"text, got %q", c.Logging.Format))
	}

	if c.Metrics.Enabled {
		if c.Metrics.Addr == "" {
			errs = append(errs, "metrics.addr is required when metrics "+
				"are enabled")
		}
		if !strings.HasPrefix(c.Metrics.Path, "/") {
			errs = append(errs, fmt.Sprintf("metrics.path must start with "+
				"/, got %q", c.Metrics.Path))
		}
	}

	if c.Progress.Bar && c.Progress.BarWidth <= 0 {
		errs = append(errs, fmt.Sprintf("progress.bar_width must be "+
			"positive, got %d", c.Progress.BarWidth))
	}

	if len(errs) > 0 {
		return errors.New("invalid config: " + strings.Join(errs, "; "))
	}
	return nil
}
