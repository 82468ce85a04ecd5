// Package config loads the configuration of a training run from a file
// and environment variables
package config

import (
	"fmt"
	"strings"

	"github.com/samuelfneumann/tabular/agent/tabular/qlearning"
	"github.com/samuelfneumann/tabular/environment/envconfig"
	"github.com/samuelfneumann/tabular/experiment"
	"github.com/samuelfneumann/tabular/experiment/display"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables overriding the
// configuration, e.g. TABULAR_AGENT_EPSILON
const EnvPrefix = "TABULAR"

// Config holds the configuration of a training run
type Config struct {
	Seed        uint64            `mapstructure:"seed"`
	Agent       qlearning.Config  `mapstructure:"agent"`
	Monitor     experiment.Config `mapstructure:"monitor"`
	Environment envconfig.Config  `mapstructure:"environment"`
	Display     DisplayConfig     `mapstructure:"display"`
	Progress    ProgressConfig    `mapstructure:"progress"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
	Output      OutputConfig      `mapstructure:"output"`
}

// DisplayConfig contains settings of the frame display
type DisplayConfig struct {
	Enabled        bool `mapstructure:"enabled"`
	display.Config `mapstructure:",squash"`
}

// ProgressConfig contains settings of progress reporting
type ProgressConfig struct {
	LogEvery int  `mapstructure:"log_every"`
	Bar      bool `mapstructure:"bar"`
	BarWidth int  `mapstructure:"bar_width"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// MetricsConfig contains metrics collection settings
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Addr      string `mapstructure:"addr"`
	Path      string `mapstructure:"path"`
	Namespace string `mapstructure:"namespace"`
}

// OutputConfig contains the locations of saved experiment data. Empty
// locations are not saved.
type OutputConfig struct {
	Returns string `mapstructure:"returns"`
	Lengths string `mapstructure:"lengths"`
	Chart   string `mapstructure:"chart"`
}

// Load loads the configuration from the file at path, if given, and
// from TABULAR_* environment variables, on top of the defaults
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("load: failed to read config file: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("load: failed to unmarshal config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	return &c, nil
}

// Default returns the default configuration
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		panic(fmt.Sprintf("default: %v", err))
	}
	return &c
}
