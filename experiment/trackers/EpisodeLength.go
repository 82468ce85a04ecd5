package trackers

import (
	"fmt"

	"github.com/samuelfneumann/tabular/experiment"
	ts "github.com/samuelfneumann/tabular/timestep"
)

// EpisodeLength tracks and saves the lengths of episodes in an
// experiment.
// Note that an episode must finish for this Tracker to save its data.
// If the last episode in an experiment does not finish, that episode's
// length will not be saved.
type EpisodeLength struct {
	episodeLengths []int
	filename       string
}

// NewEpisodeLength returns a new EpisodeLength Tracker which will save
// its data at the specified location filename
func NewEpisodeLength(filename string) *EpisodeLength {
	return &EpisodeLength{filename: filename}
}

// EpisodeStart implements the experiment.Observer interface
func (e *EpisodeLength) EpisodeStart(int, ts.TimeStep) {}

// Step implements the experiment.Observer interface
func (e *EpisodeLength) Step(int, int, ts.TimeStep, float64) {}

// EpisodeEnd caches the length of the finished episode
func (e *EpisodeLength) EpisodeEnd(ep experiment.Episode) {
	e.episodeLengths = append(e.episodeLengths, ep.Length)
}

// Data returns the episode lengths tracked so far
func (e *EpisodeLength) Data() []int {
	data := make([]int, len(e.episodeLengths))
	copy(data, e.episodeLengths)
	return data
}

// Save saves the data tracked by the EpisodeLength Tracker to disk.
func (e *EpisodeLength) Save() error {
	if err := save(e.filename, e.episodeLengths); err != nil {
		return fmt.Errorf("save: episode length data: %w", err)
	}
	return nil
}
