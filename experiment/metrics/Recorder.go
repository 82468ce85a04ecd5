// Package metrics implements an experiment.Observer which exports the
// progress of an experiment as Prometheus metrics
package metrics

import (
	"math"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/samuelfneumann/tabular/experiment"
	ts "github.com/samuelfneumann/tabular/timestep"
)

// Recorder records experiment metrics with Prometheus
type Recorder struct {
	// Counters
	episodes  prometheus.Counter
	steps     prometheus.Counter
	timeouts  prometheus.Counter
	terminals prometheus.Counter

	// Gauges
	lastReturn    prometheus.Gauge
	avgReward     prometheus.Gauge
	bestAvgReward prometheus.Gauge
	epsilon       prometheus.Gauge

	// Histograms
	episodeLength prometheus.Histogram
}

// NewRecorder creates a new Recorder whose metrics are registered with
// reg. Metric names are prefixed with namespace.
func NewRecorder(reg prometheus.Registerer, namespace string) *Recorder {
	factory := promauto.With(reg)

	return &Recorder{
		episodes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "episodes_total",
			Help:      "Total number of finished episodes",
		}),
		steps: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "steps_total",
			Help:      "Total number of environmental steps",
		}),
		timeouts: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "episodes_timeout_total",
			Help:      "Total number of episodes cut off at the step limit",
		}),
		terminals: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "episodes_terminal_total",
			Help:      "Total number of episodes ending in a terminal state",
		}),
		lastReturn: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "episode_return",
			Help:      "Return of the last finished episode",
		}),
		avgReward: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "avg_reward",
			Help:      "Moving average of episodic returns",
		}),
		bestAvgReward: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "best_avg_reward",
			Help:      "Best moving average of episodic returns",
		}),
		epsilon: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "epsilon",
			Help:      "Exploration rate of the agent",
		}),
		episodeLength: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "episode_length_steps",
			Help:      "Number of steps in each episode",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
	}
}

// EpisodeStart implements the experiment.Observer interface
func (r *Recorder) EpisodeStart(int, ts.TimeStep) {}

// Step counts environmental steps
func (r *Recorder) Step(int, int, ts.TimeStep, float64) {
	r.steps.Inc()
}

// EpisodeEnd records the summary of a finished episode
func (r *Recorder) EpisodeEnd(e experiment.Episode) {
	r.episodes.Inc()
	r.lastReturn.Set(e.Return)
	r.epsilon.Set(e.Epsilon)
	r.episodeLength.Observe(float64(e.Length))

	switch e.EndType {
	case ts.Timeout:
		r.timeouts.Inc()
	case ts.TerminalStateReached:
		r.terminals.Inc()
	}

	if e.Tracked && !math.IsInf(e.BestAvgReward, -1) {
		r.avgReward.Set(e.AvgReward)
		r.bestAvgReward.Set(e.BestAvgReward)
	}
}
