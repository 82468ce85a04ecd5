package experiment

import (
	"errors"
	"fmt"
	"io"
	"math"
	"testing"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/tabular/agent/tabular/qlearning"
	env "github.com/samuelfneumann/tabular/environment"
	"github.com/samuelfneumann/tabular/environment/bandit"
	ts "github.com/samuelfneumann/tabular/timestep"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

var errBroken = errors.New("broken environment")

// scripted is an environment whose episodes last length steps, with the
// reward of each step of episode i given by rewards(i). Episodes end in
// a terminal state unless timeout is set.
type scripted struct {
	rewards   func(i int) float64
	length    int
	timeout   bool
	failAt    int // episode at which Step fails, 0 to never fail
	episode   int
	current   ts.TimeStep
	nextState ts.State
}

func (s *scripted) Reset() (ts.TimeStep, error) {
	s.episode++
	s.current = ts.New(ts.First, 0, 1, 0, 0)
	return s.current, nil
}

func (s *scripted) Step(a int) (ts.TimeStep, bool, error) {
	if s.failAt > 0 && s.episode == s.failAt {
		return ts.TimeStep{}, false, errBroken
	}
	n := s.current.Number + 1
	step := ts.New(ts.Mid, s.rewards(s.episode), 1, ts.State(n), n)
	if n >= s.length {
		step.StepType = ts.Last
		if s.timeout {
			step.SetEnd(ts.Timeout)
		} else {
			step.SetEnd(ts.TerminalStateReached)
		}
	}
	s.current = step
	return step, step.Last(), nil
}

func (s *scripted) Render(w io.Writer) error {
	_, err := fmt.Fprintf(w, "episode %d step %d\n", s.episode,
		s.current.Number)
	return err
}

func (s *scripted) ObservationSpec() env.Spec {
	return env.NewDiscreteSpec(env.Observation, s.length+1)
}

func (s *scripted) ActionSpec() env.Spec {
	return env.NewDiscreteSpec(env.Action, 1)
}

func (s *scripted) DiscountSpec() env.Spec {
	return env.NewDiscountSpec(1)
}

// recorder is an agent which always selects action 0 and records the
// transitions it is given
type recorder struct {
	next []ts.State
	done []bool
}

func (r *recorder) SelectAction(ts.State) int { return 0 }

func (r *recorder) Step(_ ts.State, _ int, _ float64, next ts.State,
	done bool) {
	r.next = append(r.next, next)
	r.done = append(r.done, done)
}

// counter counts observer notifications
type counter struct {
	starts, steps int
	episodes      []Episode
}

func (c *counter) EpisodeStart(int, ts.TimeStep)       { c.starts++ }
func (c *counter) Step(int, int, ts.TimeStep, float64) { c.steps++ }
func (c *counter) EpisodeEnd(e Episode)                { c.episodes = append(c.episodes, e) }

func TestMovingAverage(t *testing.T) {
	e := &scripted{rewards: func(i int) float64 { return float64(i) },
		length: 1}
	c := DefaultConfig()
	c.NumEpisodes = 101

	exp, err := NewEpisodic(e, &recorder{}, c)
	if err != nil {
		t.Fatal(err)
	}
	result, err := exp.Run()
	if err != nil {
		t.Fatal(err)
	}

	// Episode 100 averages returns 1..100, episode 101 returns 2..101
	want := []float64{50.5, 51.5}
	if len(result.AvgRewards) != len(want) {
		t.Fatalf("run: got %d averages, want %d", len(result.AvgRewards),
			len(want))
	}
	for i := range want {
		if result.AvgRewards[i] != want[i] {
			t.Errorf("run: average %d got %v, want %v", i,
				result.AvgRewards[i], want[i])
		}
	}
	if result.BestAvgReward != 51.5 {
		t.Errorf("run: best average got %v, want 51.5", result.BestAvgReward)
	}
	if result.Episodes != 101 || result.Solved {
		t.Errorf("run: got %d episodes solved=%v", result.Episodes,
			result.Solved)
	}
}

func TestBestAverageMonotone(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	e := &scripted{rewards: func(int) float64 { return rng.NormFloat64() },
		length: 3}
	c := Config{NumEpisodes: 400, Window: 20, WarmUp: 100}
	obs := &counter{}

	exp, err := NewEpisodic(e, &recorder{}, c, obs)
	if err != nil {
		t.Fatal(err)
	}
	result, err := exp.Run()
	if err != nil {
		t.Fatal(err)
	}

	best := math.Inf(-1)
	for _, ep := range obs.episodes {
		if ep.Number < c.WarmUp {
			if ep.Tracked || !math.IsInf(ep.BestAvgReward, -1) {
				t.Fatalf("episode %d: tracked before warm-up", ep.Number)
			}
			continue
		}
		if ep.BestAvgReward < best {
			t.Fatalf("episode %d: best average decreased from %v to %v",
				ep.Number, best, ep.BestAvgReward)
		}
		best = ep.BestAvgReward
	}

	maxAvg := math.Inf(-1)
	for _, avg := range result.AvgRewards {
		maxAvg = math.Max(maxAvg, avg)
	}
	if result.BestAvgReward != maxAvg || best != maxAvg {
		t.Errorf("run: best average %v does not match maximum average %v",
			result.BestAvgReward, maxAvg)
	}
	if n := c.NumEpisodes - c.WarmUp + 1; len(result.AvgRewards) != n {
		t.Errorf("run: got %d averages, want %d", len(result.AvgRewards), n)
	}
}

func TestEarlyStop(t *testing.T) {
	e := &scripted{rewards: func(int) float64 { return 10 }, length: 1}
	c := DefaultConfig()
	c.NumEpisodes = 500
	c.EarlyStop = true

	logger, hook := test.NewNullLogger()
	exp, err := NewEpisodic(e, &recorder{}, c)
	if err != nil {
		t.Fatal(err)
	}
	exp.SetLogger(logger)

	result, err := exp.Run()
	if err != nil {
		t.Fatal(err)
	}
	if !result.Solved || result.Episodes != c.WarmUp {
		t.Errorf("run: got solved=%v after %d episodes, want solved after "+
			"%d", result.Solved, result.Episodes, c.WarmUp)
	}

	solved := false
	for _, entry := range hook.AllEntries() {
		if entry.Message == "environment solved" {
			solved = true
			if entry.Level != logrus.InfoLevel {
				t.Errorf("run: solved logged at level %v", entry.Level)
			}
		}
	}
	if !solved {
		t.Error("run: solved event not logged")
	}

	// Without early stopping all episodes are run
	c.EarlyStop = false
	e.episode = 0
	exp, _ = NewEpisodic(e, &recorder{}, c)
	result, _ = exp.Run()
	if result.Solved || result.Episodes != c.NumEpisodes {
		t.Errorf("run: got solved=%v after %d episodes without early stop",
			result.Solved, result.Episodes)
	}
}

func TestNextState(t *testing.T) {
	tests := []struct {
		name    string
		timeout bool
		want    ts.State
	}{
		{"terminal", false, ts.Terminal},
		{"timeout", true, ts.State(3)},
	}

	for _, test := range tests {
		e := &scripted{rewards: func(int) float64 { return 0 }, length: 3,
			timeout: test.timeout}
		a := &recorder{}
		exp, _ := NewEpisodic(e, a, Config{NumEpisodes: 1, Window: 1})
		if _, err := exp.RunEpisode(1); err != nil {
			t.Fatal(err)
		}

		if len(a.next) != 3 {
			t.Fatalf("%v: agent stepped %d times, want 3", test.name,
				len(a.next))
		}
		if a.next[2] != test.want || !a.done[2] {
			t.Errorf("%v: last transition got next=%v done=%v", test.name,
				a.next[2], a.done[2])
		}
		if a.next[0] != 1 || a.done[0] {
			t.Errorf("%v: first transition got next=%v done=%v", test.name,
				a.next[0], a.done[0])
		}
	}
}

func TestObservers(t *testing.T) {
	e := &scripted{rewards: func(int) float64 { return 1 }, length: 4}
	obs := &counter{}
	exp, _ := NewEpisodic(e, &recorder{}, Config{NumEpisodes: 5, Window: 2,
		WarmUp: 1})
	exp.Register(obs)

	if _, err := exp.Run(); err != nil {
		t.Fatal(err)
	}
	if obs.starts != 5 || obs.steps != 20 || len(obs.episodes) != 5 {
		t.Errorf("observers: got %d starts %d steps %d ends", obs.starts,
			obs.steps, len(obs.episodes))
	}
	last := obs.episodes[4]
	if last.Return != 4 || last.Length != 4 ||
		last.EndType != ts.TerminalStateReached || last.NumEpisodes != 5 {
		t.Errorf("observers: unexpected episode summary %+v", last)
	}
}

func TestObserversDoNotChangeResults(t *testing.T) {
	run := func(observers ...Observer) Result {
		e, _, err := bandit.New([]float64{1, 0.5, 0})
		if err != nil {
			t.Fatal(err)
		}
		a, err := qlearning.New(qlearning.DefaultConfig(3), 11)
		if err != nil {
			t.Fatal(err)
		}
		exp, err := NewEpisodic(e, a, Config{NumEpisodes: 300, Window: 50,
			WarmUp: 100}, observers...)
		if err != nil {
			t.Fatal(err)
		}
		result, err := exp.Run()
		if err != nil {
			t.Fatal(err)
		}
		return result
	}

	plain := run()
	observed := run(&counter{}, &counter{})
	if plain.BestAvgReward != observed.BestAvgReward {
		t.Errorf("observers: best average changed from %v to %v",
			plain.BestAvgReward, observed.BestAvgReward)
	}
	for i := range plain.AvgRewards {
		if plain.AvgRewards[i] != observed.AvgRewards[i] {
			t.Fatalf("observers: average %d changed from %v to %v", i,
				plain.AvgRewards[i], observed.AvgRewards[i])
		}
	}
}

func TestErrorPropagation(t *testing.T) {
	e := &scripted{rewards: func(int) float64 { return 1 }, length: 1,
		failAt: 3}
	exp, _ := NewEpisodic(e, &recorder{}, Config{NumEpisodes: 10, Window: 1,
		WarmUp: 1})

	result, err := exp.Run()
	if !errors.Is(err, errBroken) {
		t.Fatalf("run: got error %v, want %v", err, errBroken)
	}
	if result.Episodes != 2 || len(result.AvgRewards) != 2 {
		t.Errorf("run: got %d episodes and %d averages before the error",
			result.Episodes, len(result.AvgRewards))
	}
}

func TestIllegalAction(t *testing.T) {
	e, _, _ := bandit.New([]float64{1})
	a, _ := qlearning.New(qlearning.DefaultConfig(2), 1)

	// The agent believes there are two actions, so it eventually
	// selects the action which the environment does not have
	_, _, err := Interact(e, a, 1000, 10)
	if err == nil {
		t.Error("interact: expected error for illegal action")
	}
}

func TestInteract(t *testing.T) {
	e, _, _ := bandit.New([]float64{1, 0})
	a, _ := qlearning.New(qlearning.DefaultConfig(2), 7)

	avg, best, err := Interact(e, a, 2000, 100)
	if err != nil {
		t.Fatal(err)
	}
	if len(avg) != 2000-DefaultWarmUp+1 {
		t.Errorf("interact: got %d averages, want %d", len(avg),
			2000-DefaultWarmUp+1)
	}
	if best < 0.8 || best > 1 {
		t.Errorf("interact: got best average %v", best)
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("validate: default config: %v", err)
	}

	bad := Config{NumEpisodes: 0, Window: -1, WarmUp: -1}
	if _, err := NewEpisodic(&scripted{}, &recorder{}, bad); err == nil {
		t.Error("newEpisodic: expected error for invalid config")
	}
}
