// Package gridworld implements 2D gridworld environments
package gridworld

import (
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/fogleman/gg"
	"github.com/logrusorgru/aurora"
	"github.com/samuelfneumann/tabular/environment"
	ts "github.com/samuelfneumann/tabular/timestep"
)

// Actions in the gridworld
const (
	Left int = iota
	Right
	Up
	Down

	// NumActions is the number of actions in a gridworld
	NumActions
)

// CellPixels is the width and height in pixels of a single cell when
// drawing the gridworld with Image()
const CellPixels = 40

// GridWorld represents a gridworld environment
//
// The agent's position (x, y) is encoded as the discrete state
// y * cols + x. Moving into a wall or off the edge of the grid leaves
// the agent in place. Rows are numbered from the bottom, so that Up
// increases y.
type GridWorld struct {
	environment.Task
	r, c     int
	position ts.State
	walls    map[ts.State]bool

	discount    float64
	currentStep ts.TimeStep
	au          aurora.Aurora
}

// New creates a new gridworld with r rows and c columns, task t, and
// discount factor d. The starting position is sampled from the task.
func New(r, c int, t environment.Task, d float64) (*GridWorld,
	ts.TimeStep, error) {
	if r <= 0 || c <= 0 {
		return nil, ts.TimeStep{}, fmt.Errorf("new: gridworld must have "+
			"positive dimensions, got (%d, %d)", r, c)
	}

	g := &GridWorld{
		Task:     t,
		r:        r,
		c:        c,
		walls:    make(map[ts.State]bool),
		discount: d,
		au:       aurora.NewAurora(true),
	}

	step, err := g.Reset()
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: %w", err)
	}
	return g, step, nil
}

// SetWall places a wall at (x, y). Walls cannot be placed on the
// current position of the agent or on goal states.
func (g *GridWorld) SetWall(x, y int) error {
	if x < 0 || x >= g.c || y < 0 || y >= g.r {
		return fmt.Errorf("setWall: (%d, %d) outside bounds (%d, %d)", x, y,
			g.c, g.r)
	}

	ind := cToInd(x, y, g.c)
	if g.AtGoal(ind) {
		return fmt.Errorf("setWall: (%d, %d) is a goal state", x, y)
	}
	if ind == g.position {
		return fmt.Errorf("setWall: (%d, %d) is the agent position", x, y)
	}

	g.walls[ind] = true
	return nil
}

// SetColor enables or disables coloured output in Render
func (g *GridWorld) SetColor(enabled bool) {
	g.au = aurora.NewAurora(enabled)
}

// Dims gets the rows and columns of the GridWorld
func (g *GridWorld) Dims() (r, c int) {
	return g.r, g.c
}

// Coordinates returns the current (x, y) position of the agent
func (g *GridWorld) Coordinates() (int, int) {
	return indToC(int(g.position), g.c)
}

// Reset resets the environment to a starting state drawn from the task
func (g *GridWorld) Reset() (ts.TimeStep, error) {
	start := g.Start()
	if int(start) < 0 || int(start) >= g.r*g.c {
		return ts.TimeStep{}, fmt.Errorf("reset: start state %d outside "+
			"gridworld of size %d", start, g.r*g.c)
	}
	if g.walls[start] {
		return ts.TimeStep{}, fmt.Errorf("reset: start state %d is a wall",
			start)
	}
	g.position = start

	step := ts.New(ts.First, 0, g.discount, start, 0)
	g.currentStep = step
	return step, nil
}

// Step takes one environmental step given action a and returns the next
// TimeStep as well as whether the episode ended
func (g *GridWorld) Step(a int) (ts.TimeStep, bool, error) {
	if a < 0 || a >= NumActions {
		return ts.TimeStep{}, false, fmt.Errorf("step: illegal action %d "+
			"∉ [0, %d)", a, NumActions)
	}

	x, y := g.Coordinates()
	switch a {
	case Left:
		x--
	case Right:
		x++
	case Up:
		y++
	case Down:
		y--
	}

	// Moving off the grid or into a wall leaves the agent in place
	next := g.position
	if x >= 0 && x < g.c && y >= 0 && y < g.r {
		if ind := cToInd(x, y, g.c); !g.walls[ind] {
			next = ind
		}
	}

	reward := g.GetReward(g.position, a, next)
	g.position = next

	step := ts.New(ts.Mid, reward, g.discount, next,
		g.currentStep.Number+1)
	last := g.End(&step)

	g.currentStep = step
	return step, last, nil
}

// CurrentTimeStep returns the current time step in the environment
func (g *GridWorld) CurrentTimeStep() ts.TimeStep {
	return g.currentStep
}

// Render writes the gridworld to w, one row per line with the top row
// first. The agent is drawn as A, goals as G, and walls as #.
func (g *GridWorld) Render(w io.Writer) error {
	var b strings.Builder
	border := "+" + strings.Repeat("-", 2*g.c+1) + "+\n"

	b.WriteString(border)
	for y := g.r - 1; y >= 0; y-- {
		b.WriteString("| ")
		for x := 0; x < g.c; x++ {
			ind := cToInd(x, y, g.c)
			switch {
			case ind == g.position:
				b.WriteString(g.au.Bold(g.au.Cyan("A")).String())
			case g.AtGoal(ind):
				b.WriteString(g.au.Green("G").String())
			case g.walls[ind]:
				b.WriteString(g.au.White("#").String())
			default:
				b.WriteString(".")
			}
			b.WriteString(" ")
		}
		b.WriteString("|\n")
	}
	b.WriteString(border)

	_, err := io.WriteString(w, b.String())
	return err
}

// Image draws the gridworld
func (g *GridWorld) Image() image.Image {
	dc := gg.NewContext(g.c*CellPixels, g.r*CellPixels)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	for y := 0; y < g.r; y++ {
		for x := 0; x < g.c; x++ {
			ind := cToInd(x, y, g.c)
			px := float64(x * CellPixels)
			py := float64((g.r - 1 - y) * CellPixels)

			switch {
			case g.walls[ind]:
				dc.SetRGB(0.2, 0.2, 0.2)
			case g.AtGoal(ind):
				dc.SetRGB(0.3, 0.8, 0.3)
			default:
				dc.SetRGB(0.95, 0.95, 0.95)
			}
			dc.DrawRectangle(px, py, CellPixels, CellPixels)
			dc.FillPreserve()
			dc.SetRGB(0.6, 0.6, 0.6)
			dc.SetLineWidth(1)
			dc.Stroke()
		}
	}

	x, y := g.Coordinates()
	half := float64(CellPixels) / 2
	dc.DrawCircle(float64(x*CellPixels)+half,
		float64((g.r-1-y)*CellPixels)+half, float64(CellPixels)/3)
	dc.SetRGB(0.2, 0.4, 0.9)
	dc.Fill()

	return dc.Image()
}

// ActionSpec returns the action specification of the environment
func (g *GridWorld) ActionSpec() environment.Spec {
	return environment.NewDiscreteSpec(environment.Action, NumActions)
}

// ObservationSpec returns the observation specification of the
// environment
func (g *GridWorld) ObservationSpec() environment.Spec {
	return environment.NewDiscreteSpec(environment.Observation, g.r*g.c)
}

// DiscountSpec returns the discount specification of the environment
func (g *GridWorld) DiscountSpec() environment.Spec {
	return environment.NewDiscountSpec(g.discount)
}

func (g *GridWorld) String() string {
	str := "GridWorld | At: %v  |   Goal: %v  |  Bounds: (%d, %d)"
	x, y := g.Coordinates()

	return fmt.Sprintf(str, [2]int{x, y}, g.Task, g.r, g.c)
}

// cToInd converts coordinates (x, y) to a state index
func cToInd(x, y, c int) ts.State {
	return ts.State(y*c + x)
}

// indToC converts a state index to (x, y) coordinates
func indToC(ind, c int) (int, int) {
	y := ind / c
	x := ind - (y * c)
	return x, y
}
