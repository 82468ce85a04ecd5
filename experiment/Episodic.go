package experiment

import (
	"fmt"
	"io"
	"math"

	"github.com/samuelfneumann/tabular/agent"
	env "github.com/samuelfneumann/tabular/environment"
	"github.com/sirupsen/logrus"
)

// Result holds the outcome of an episodic experiment
type Result struct {
	// AvgRewards is the moving average of episodic returns for each
	// episode after the warm-up, in episode order
	AvgRewards []float64

	// BestAvgReward is the largest value in AvgRewards, or -Inf if no
	// moving average was computed
	BestAvgReward float64

	Episodes int  // Number of episodes run
	Solved   bool // Whether the run ended early on reaching the threshold
}

// Episodic is an Experiment that runs an agent online for a fixed
// number of episodes, tracking the moving average of episodic returns
// over a bounded window and the best such average.
type Episodic struct {
	env.Environment
	agent.Agent
	config    Config
	observers Observers
	log       logrus.FieldLogger

	returns       *window
	avgRewards    []float64
	bestAvgReward float64
	episodes      int
	solved        bool
}

// NewEpisodic creates and returns a new episodic experiment on a given
// environment with a given agent. The observers are notified of the
// progress of the experiment in the order given.
func NewEpisodic(e env.Environment, a agent.Agent, c Config,
	observers ...Observer) (*Episodic, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("newEpisodic: %w", err)
	}

	discard := logrus.New()
	discard.SetOutput(io.Discard)

	return &Episodic{
		Environment:   e,
		Agent:         a,
		config:        c,
		observers:     observers,
		log:           discard,
		returns:       newWindow(c.Window),
		avgRewards:    make([]float64, 0, c.NumEpisodes),
		bestAvgReward: math.Inf(-1),
	}, nil
}

// SetLogger sets the logger used to report the progress of the
// experiment
func (e *Episodic) SetLogger(l logrus.FieldLogger) {
	e.log = l
}

// Register registers an Observer with the experiment
func (e *Episodic) Register(o Observer) {
	e.observers = append(e.observers, o)
}

// RunEpisode runs episode i of the experiment and returns its return.
// Errors from the environment are returned immediately, leaving the
// moving average untouched.
func (e *Episodic) RunEpisode(i int) (float64, error) {
	step, err := e.Environment.Reset()
	if err != nil {
		return 0, fmt.Errorf("runEpisode: episode %d: reset: %w", i, err)
	}
	e.observers.EpisodeStart(i, step)

	var episodeReturn float64
	for done := false; !done; {
		state := step.Observation
		action := e.Agent.SelectAction(state)

		next, last, err := e.Environment.Step(action)
		if err != nil {
			return episodeReturn, fmt.Errorf("runEpisode: episode %d: "+
				"step %d: %w", i, step.Number+1, err)
		}

		e.Agent.Step(state, action, next.Reward, next.NextState(), last)
		episodeReturn += next.Reward
		e.observers.Step(i, action, next, episodeReturn)

		step, done = next, last
	}

	e.episodes = i
	e.returns.push(episodeReturn)

	episode := Episode{
		Number:        i,
		NumEpisodes:   e.config.NumEpisodes,
		Return:        episodeReturn,
		Length:        step.Number,
		EndType:       step.EndType(),
		BestAvgReward: e.bestAvgReward,
	}

	if i >= e.config.WarmUp {
		avg := e.returns.mean()
		e.avgRewards = append(e.avgRewards, avg)
		e.bestAvgReward = math.Max(e.bestAvgReward, avg)

		episode.Tracked = true
		episode.AvgReward = avg
		episode.BestAvgReward = e.bestAvgReward
	}
	if explorer, ok := e.Agent.(agent.Explorer); ok {
		episode.Epsilon = explorer.Epsilon()
	}

	e.log.WithFields(logrus.Fields{
		"episode":         i,
		"num_episodes":    e.config.NumEpisodes,
		"return":          episodeReturn,
		"length":          episode.Length,
		"best_avg_reward": e.bestAvgReward,
	}).Debug("episode finished")

	e.observers.EpisodeEnd(episode)
	return episodeReturn, nil
}

// Run runs the entire experiment for all episodes, or until the best
// moving average reaches the solved threshold if early stopping is
// enabled
func (e *Episodic) Run() (Result, error) {
	e.log.WithFields(logrus.Fields{
		"num_episodes": e.config.NumEpisodes,
		"window":       e.config.Window,
		"warm_up":      e.config.WarmUp,
		"early_stop":   e.config.EarlyStop,
	}).Info("starting experiment")

	for i := e.episodes + 1; i <= e.config.NumEpisodes; i++ {
		if _, err := e.RunEpisode(i); err != nil {
			return e.Result(), fmt.Errorf("run: %w", err)
		}

		if e.config.EarlyStop && e.bestAvgReward >= e.config.SolvedThreshold {
			e.solved = true
			e.log.WithFields(logrus.Fields{
				"episode":         i,
				"best_avg_reward": e.bestAvgReward,
			}).Info("environment solved")
			break
		}
	}

	e.log.WithFields(logrus.Fields{
		"episodes":        e.episodes,
		"best_avg_reward": e.bestAvgReward,
	}).Info("experiment finished")
	return e.Result(), nil
}

// Result returns the results of the experiment so far
func (e *Episodic) Result() Result {
	avg := make([]float64, len(e.avgRewards))
	copy(avg, e.avgRewards)

	return Result{
		AvgRewards:    avg,
		BestAvgReward: e.bestAvgReward,
		Episodes:      e.episodes,
		Solved:        e.solved,
	}
}

// Interact runs agent a on environment e for numEpisodes episodes and
// returns the moving average of the last window episodic returns for
// each episode after the default warm-up, along with the best moving
// average.
func Interact(e env.Environment, a agent.Agent, numEpisodes,
	window int) ([]float64, float64, error) {
	c := DefaultConfig()
	c.NumEpisodes = numEpisodes
	c.Window = window

	exp, err := NewEpisodic(e, a, c)
	if err != nil {
		return nil, math.Inf(-1), fmt.Errorf("interact: %w", err)
	}

	result, err := exp.Run()
	if err != nil {
		return result.AvgRewards, result.BestAvgReward,
			fmt.Errorf("interact: %w", err)
	}
	return result.AvgRewards, result.BestAvgReward, nil
}
