// Package progress implements experiment.Observers which report the
// progress of an experiment through a logger or a terminal progress bar
package progress

import (
	"github.com/samuelfneumann/tabular/experiment"
	ts "github.com/samuelfneumann/tabular/timestep"
	"github.com/sirupsen/logrus"
)

// Logger logs the progress of an experiment every few episodes
type Logger struct {
	log   logrus.FieldLogger
	every int
}

// NewLogger returns a new Logger which logs after every episode whose
// number is a multiple of every, as well as after the last episode. An
// every of 0 or less logs only the last episode.
func NewLogger(log logrus.FieldLogger, every int) *Logger {
	return &Logger{log: log, every: every}
}

// EpisodeStart implements the experiment.Observer interface
func (l *Logger) EpisodeStart(int, ts.TimeStep) {}

// Step implements the experiment.Observer interface
func (l *Logger) Step(int, int, ts.TimeStep, float64) {}

// EpisodeEnd logs the progress of the experiment
func (l *Logger) EpisodeEnd(e experiment.Episode) {
	last := e.Number == e.NumEpisodes
	if !last && (l.every <= 0 || e.Number%l.every != 0) {
		return
	}

	fields := logrus.Fields{
		"episode":      e.Number,
		"num_episodes": e.NumEpisodes,
		"return":       e.Return,
		"epsilon":      e.Epsilon,
	}
	if e.Tracked {
		fields["avg_reward"] = e.AvgReward
		fields["best_avg_reward"] = e.BestAvgReward
	}
	l.log.WithFields(fields).Info("progress")
}
