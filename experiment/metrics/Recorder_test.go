package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/samuelfneumann/tabular/experiment"
	ts "github.com/samuelfneumann/tabular/timestep"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg, "tabular")

	step := ts.New(ts.Mid, -1, 1, 0, 1)
	for i := 0; i < 3; i++ {
		r.Step(1, 0, step, -1)
	}
	r.EpisodeEnd(experiment.Episode{Number: 1, Return: -3, Length: 3,
		EndType: ts.Timeout, Epsilon: 0.9, BestAvgReward: -1})
	r.EpisodeEnd(experiment.Episode{Number: 2, Return: 5, Length: 1,
		EndType: ts.TerminalStateReached, Epsilon: 0.8, Tracked: true,
		AvgReward: 1, BestAvgReward: 1.5})

	tests := []struct {
		name      string
		collector prometheus.Collector
		want      float64
	}{
		{"episodes", r.episodes, 2},
		{"steps", r.steps, 3},
		{"timeouts", r.timeouts, 1},
		{"terminals", r.terminals, 1},
		{"return", r.lastReturn, 5},
		{"avg", r.avgReward, 1},
		{"best", r.bestAvgReward, 1.5},
		{"epsilon", r.epsilon, 0.8},
	}
	for _, test := range tests {
		if got := testutil.ToFloat64(test.collector); got != test.want {
			t.Errorf("%v: got %v, want %v", test.name, got, test.want)
		}
	}

	if n, err := testutil.GatherAndCount(reg); err != nil || n != 9 {
		t.Errorf("registry: got %d metrics (err %v), want 9", n, err)
	}
}
