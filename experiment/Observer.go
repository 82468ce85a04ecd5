package experiment

import ts "github.com/samuelfneumann/tabular/timestep"

// Observer observes an experiment as it runs. Observers are notified at
// the start of each episode, after each environmental step, and at the
// end of each episode. Observers cannot change the agent or the results
// of the experiment.
type Observer interface {
	// EpisodeStart is called with the first TimeStep of episode i
	EpisodeStart(i int, step ts.TimeStep)

	// Step is called after each environmental step of episode i with
	// the action taken, the resulting TimeStep, and the return so far
	Step(i int, action int, step ts.TimeStep, episodeReturn float64)

	// EpisodeEnd is called once an episode has finished and the moving
	// average has been updated
	EpisodeEnd(e Episode)
}

// Episode summarizes a finished episode
type Episode struct {
	Number      int // 1-based index of the episode
	NumEpisodes int // Total number of episodes in the experiment
	Return      float64
	Length      int // Number of environmental steps taken
	EndType     ts.EndType

	// Tracked denotes whether the moving average was computed for this
	// episode. Before the warm-up ends, AvgReward is 0 and
	// BestAvgReward is -Inf.
	Tracked       bool
	AvgReward     float64
	BestAvgReward float64

	// Epsilon is the agent's exploration rate after the episode, or 0
	// if the agent does not explore
	Epsilon float64
}

// Observers fans out notifications to a number of Observers in order
type Observers []Observer

// EpisodeStart implements the Observer interface
func (o Observers) EpisodeStart(i int, step ts.TimeStep) {
	for _, obs := range o {
		obs.EpisodeStart(i, step)
	}
}

// Step implements the Observer interface
func (o Observers) Step(i int, action int, step ts.TimeStep, ret float64) {
	for _, obs := range o {
		obs.Step(i, action, step, ret)
	}
}

// EpisodeEnd implements the Observer interface
func (o Observers) EpisodeEnd(e Episode) {
	for _, obs := range o {
		obs.EpisodeEnd(e)
	}
}
