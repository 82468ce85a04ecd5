// Package display implements an experiment.Observer which renders
// selected episodes of an experiment to a terminal, frame by frame.
package display

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fogleman/gg"
	"github.com/logrusorgru/aurora"
	"github.com/samuelfneumann/tabular/environment"
	"github.com/samuelfneumann/tabular/experiment"
	ts "github.com/samuelfneumann/tabular/timestep"
)

// Delays between frames
const (
	BannerDelay  = 2 * time.Second
	MessageDelay = 1 * time.Second
	FastDelay    = 1 * time.Millisecond
	MediumDelay  = 100 * time.Millisecond
	SlowDelay    = 300 * time.Millisecond
)

// Status messages
const (
	FailMessage    = "FAIL: the episode was cut off at the step limit."
	SuccessMessage = "SUCCESS: the episode was completed successfully!"
)

const bannerWidth = 30

// DefaultEpisodes are the episodes displayed by default
var DefaultEpisodes = []int{1, 500, 20000}

// Config configures which episodes are displayed and how
type Config struct {
	Episodes      []int   `mapstructure:"episodes"`
	SuccessReward float64 `mapstructure:"success_reward"`
	FrameDir      string  `mapstructure:"frame_dir"`
	Color         bool    `mapstructure:"color"`
}

// Frames displays each step of selected episodes. The first frame of
// each displayed episode is preceded by a banner. Frames of the last
// displayed episode are shown slowest, so that the behaviour of the
// trained agent can be watched.
//
// If a frame directory is set and the environment is an
// environment.Imager, each frame is also saved as a PNG image.
type Frames struct {
	env           environment.Environment
	out           io.Writer
	au            aurora.Aurora
	episodes      []int
	successReward float64
	frameDir      string

	sleep func(time.Duration)
	clear func(io.Writer)
	err   error
}

// New returns a new Frames which renders env to out
func New(env environment.Environment, out io.Writer, c Config) *Frames {
	episodes := c.Episodes
	if episodes == nil {
		episodes = DefaultEpisodes
	}

	return &Frames{
		env:           env,
		out:           out,
		au:            aurora.NewAurora(c.Color),
		episodes:      append([]int(nil), episodes...),
		successReward: c.SuccessReward,
		frameDir:      c.FrameDir,
		sleep:         time.Sleep,
		clear:         clearScreen,
	}
}

// SetSleep sets the function used to wait between frames
func (f *Frames) SetSleep(sleep func(time.Duration)) {
	f.sleep = sleep
}

// SetClear sets the function used to clear the screen between frames
func (f *Frames) SetClear(clear func(io.Writer)) {
	f.clear = clear
}

// Err returns the first error encountered while displaying frames
func (f *Frames) Err() error {
	return f.err
}

// EpisodeStart displays the banner and first frame of shown episodes
func (f *Frames) EpisodeStart(i int, step ts.TimeStep) {
	if !f.shown(i) {
		return
	}

	f.clear(f.out)
	border := strings.Repeat("+", bannerWidth+2)
	title := fmt.Sprintf("Episode: %d", i)
	pad := bannerWidth - len(title)
	left := pad / 2
	f.printf("%v\n+%v%v%v+\n%v\n", border, strings.Repeat(" ", left), title,
		strings.Repeat(" ", pad-left), border)
	f.sleep(BannerDelay)

	f.frame(i, step, 0)
}

// Step displays the frame after each step of shown episodes
func (f *Frames) Step(i int, _ int, step ts.TimeStep, episodeReturn float64) {
	if f.shown(i) {
		f.frame(i, step, episodeReturn)
	}
}

// EpisodeEnd implements the experiment.Observer interface
func (f *Frames) EpisodeEnd(experiment.Episode) {}

// frame displays a single frame and waits before the next one
func (f *Frames) frame(i int, step ts.TimeStep, episodeReturn float64) {
	statement, delay := "", f.delay(i)
	switch {
	case step.EndType() == ts.Timeout:
		statement = f.au.Red(FailMessage).String()
		delay = MessageDelay

	case step.Number > 0 && step.Reward == f.successReward:
		statement = f.au.Bold(f.au.Green(SuccessMessage)).String()
		delay = MessageDelay
	}

	f.clear(f.out)
	f.printf("Reward for step %d: %v\n", step.Number, step.Reward)
	f.printf("Cumulative reward for episode: %v\n\n", episodeReturn)
	if err := f.env.Render(f.out); err != nil {
		f.setErr(fmt.Errorf("frame: render: %w", err))
	}
	f.printf("\n%v\n", statement)

	if f.frameDir != "" {
		f.savePNG(i, step.Number)
	}
	f.sleep(delay)
}

// delay returns the delay between frames of episode i. The third last
// displayed episode is shown fastest, the second last a little slower,
// and any other episode slowest.
func (f *Frames) delay(i int) time.Duration {
	n := len(f.episodes)
	switch {
	case n >= 3 && i == f.episodes[n-3]:
		return FastDelay
	case n >= 2 && i == f.episodes[n-2]:
		return MediumDelay
	default:
		return SlowDelay
	}
}

func (f *Frames) savePNG(i, n int) {
	imager, ok := f.env.(environment.Imager)
	if !ok {
		return
	}

	if err := os.MkdirAll(f.frameDir, 0o755); err != nil {
		f.setErr(fmt.Errorf("savePNG: %w", err))
		return
	}
	name := filepath.Join(f.frameDir,
		fmt.Sprintf("episode-%06d-step-%04d.png", i, n))
	if err := gg.SavePNG(name, imager.Image()); err != nil {
		f.setErr(fmt.Errorf("savePNG: %w", err))
	}
}

func (f *Frames) shown(i int) bool {
	for _, e := range f.episodes {
		if e == i {
			return true
		}
	}
	return false
}

func (f *Frames) printf(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(f.out, format, args...); err != nil {
		f.setErr(fmt.Errorf("printf: %w", err))
	}
}

func (f *Frames) setErr(err error) {
	if f.err == nil {
		f.err = err
	}
}

// clearScreen clears a terminal using ANSI escape codes
func clearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}
