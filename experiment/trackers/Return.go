package trackers

import (
	"fmt"

	"github.com/samuelfneumann/tabular/experiment"
	ts "github.com/samuelfneumann/tabular/timestep"
)

// Return tracks and saves the episodic return in an experiment. The
// reward of each TimeStep is accumulated into the return of the current
// episode, which is cached when the episode ends.
//
// Note: An episode must finish for this Tracker to save its data.
// If the last episode in an experiment does not finish, that episode's
// return will not be saved.
type Return struct {
	lastTimeStep   int
	currentReturn  float64
	episodeReturns []float64
	filename       string
}

// NewReturn creates and returns a new *Return Tracker
func NewReturn(filename string) *Return {
	return &Return{lastTimeStep: -1, filename: filename}
}

// EpisodeStart starts accumulating the return of a new episode
func (r *Return) EpisodeStart(_ int, step ts.TimeStep) {
	r.currentReturn = 0
	r.lastTimeStep = step.Number
}

// Step tracks the reward seen on a timestep.
//
// Step panics if it is called for non-sequential timesteps
func (r *Return) Step(_ int, _ int, step ts.TimeStep, _ float64) {
	if r.lastTimeStep+1 != step.Number {
		msg := fmt.Sprintf("step: last two timesteps tracked are not "+
			"sequential: timestep %v --> timestep %v were tracked",
			r.lastTimeStep, step.Number)
		panic(msg)
	}

	r.currentReturn += step.Reward
	r.lastTimeStep = step.Number
}

// EpisodeEnd caches the return of the finished episode
func (r *Return) EpisodeEnd(experiment.Episode) {
	r.episodeReturns = append(r.episodeReturns, r.currentReturn)
	r.currentReturn = 0
	r.lastTimeStep = -1
}

// Data returns the episodic returns tracked so far
func (r *Return) Data() []float64 {
	data := make([]float64, len(r.episodeReturns))
	copy(data, r.episodeReturns)
	return data
}

// Save saves the data tracked by the Return Tracker to disk.
func (r *Return) Save() error {
	if err := save(r.filename, r.episodeReturns); err != nil {
		return fmt.Errorf("save: online return data: %w", err)
	}
	return nil
}
