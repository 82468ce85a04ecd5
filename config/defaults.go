package config

import (
	"github.com/samuelfneumann/tabular/agent/tabular/qlearning"
	"github.com/samuelfneumann/tabular/environment/envconfig"
	"github.com/samuelfneumann/tabular/environment/taxi"
	"github.com/samuelfneumann/tabular/experiment"
	"github.com/samuelfneumann/tabular/experiment/display"
	"github.com/spf13/viper"
)

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("seed", 0)

	// Agent defaults; the number of actions is taken from the
	// environment when 0
	v.SetDefault("agent.n_actions", 0)
	v.SetDefault("agent.epsilon", qlearning.DefaultEpsilon)
	v.SetDefault("agent.decay", qlearning.DefaultDecay)
	v.SetDefault("agent.gamma", qlearning.DefaultGamma)
	v.SetDefault("agent.alpha", qlearning.DefaultAlpha)

	// Monitor defaults
	v.SetDefault("monitor.num_episodes", experiment.DefaultNumEpisodes)
	v.SetDefault("monitor.window", experiment.DefaultWindow)
	v.SetDefault("monitor.warm_up", experiment.DefaultWarmUp)
	v.SetDefault("monitor.early_stop", false)
	v.SetDefault("monitor.solved_threshold", experiment.DefaultSolvedThreshold)

	// Environment defaults
	v.SetDefault("environment.name", string(envconfig.Taxi))
	v.SetDefault("environment.episode_cutoff", taxi.DefaultCutoff)
	v.SetDefault("environment.discount", 1.0)
	v.SetDefault("environment.rows", 5)
	v.SetDefault("environment.cols", 5)
	v.SetDefault("environment.rewards", []float64{1, 0})

	// Display defaults
	v.SetDefault("display.enabled", true)
	v.SetDefault("display.episodes", display.DefaultEpisodes)
	v.SetDefault("display.success_reward", taxi.SuccessReward)
	v.SetDefault("display.frame_dir", "")
	v.SetDefault("display.color", true)

	// Progress defaults
	v.SetDefault("progress.log_every", 1000)
	v.SetDefault("progress.bar", false)
	v.SetDefault("progress.bar_width", 40)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.output", "stderr")

	// Metrics defaults
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.addr", ":9090")
	v.SetDefault("metrics.path", "/metrics")
	v.SetDefault("metrics.namespace", "tabular")

	// Output defaults
	v.SetDefault("output.returns", "")
	v.SetDefault("output.lengths", "")
	v.SetDefault("output.chart", "")
}
