package progress

import (
	"fmt"
	"io"

	"github.com/samuelfneumann/tabular/experiment"
	ts "github.com/samuelfneumann/tabular/timestep"
	"github.com/samuelfneumann/tabular/utils/progressbar"
)

// Bar displays a terminal progress bar which advances once per episode
// and shows the best moving average so far
type Bar struct {
	bar   *progressbar.ManualProgressBar
	every int
	err   error
}

// NewBar returns a new Bar which writes to out and redraws after every
// every episodes
func NewBar(out io.Writer, width, numEpisodes, every int) *Bar {
	if every <= 0 {
		every = 1
	}
	return &Bar{
		bar:   progressbar.NewManualProgressBar(out, width, numEpisodes),
		every: every,
	}
}

// EpisodeStart implements the experiment.Observer interface
func (b *Bar) EpisodeStart(int, ts.TimeStep) {}

// Step implements the experiment.Observer interface
func (b *Bar) Step(int, int, ts.TimeStep, float64) {}

// EpisodeEnd advances the progress bar
func (b *Bar) EpisodeEnd(e experiment.Episode) {
	b.bar.Increment()
	if e.Number%b.every != 0 && e.Number != e.NumEpisodes {
		return
	}

	b.bar.SetStatus(fmt.Sprintf("Episode %d/%d || Best average reward %v",
		e.Number, e.NumEpisodes, e.BestAvgReward))
	if err := b.bar.Display(); err != nil && b.err == nil {
		b.err = fmt.Errorf("episodeEnd: %w", err)
	}
}

// Close ends the line of the progress bar
func (b *Bar) Close() error {
	if b.err != nil {
		return b.err
	}
	return b.bar.Close()
}
