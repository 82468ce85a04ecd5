// Package taxi implements the Taxi environment, a 5x5 gridworld in
// which a taxi must pick up a passenger at one of four landmarks and
// drop them off at another.
//
// The map of the environment is:
//
//	+---------+
//	|R: | : :G|
//	| : | : : |
//	| : : : : |
//	| | : | : |
//	|Y| : |B: |
//	+---------+
//
// where the vertical bars denote walls which the taxi cannot drive
// through. States encode the taxi row and column, the passenger
// location (one of the four landmarks or inside the taxi), and the
// destination landmark, for a total of 500 discrete states.
//
// Actions are discrete in (0, 1, ..., 5):
//
//	Action	Meaning
//	  0		Drive south
//	  1		Drive north
//	  2		Drive east
//	  3		Drive west
//	  4		Pick up passenger
//	  5		Drop off passenger
//
// Each step yields a reward of -1, except for successfully dropping off
// the passenger, which yields +20 and ends the episode, and illegal
// pick up or drop off actions, which yield -10.
package taxi

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

// Actions in the Taxi environment
const (
	South int = iota
	North
	East
	West
	Pickup
	Dropoff

	// NumActions is the number of actions in the environment
	NumActions
)

// Dimensions of the environment
const (
	Rows          = 5
	Cols          = 5
	NumStates     = Rows * Cols * (len(landmarks) + 1) * len(landmarks)
	InTaxi    int = len(landmarks) // passenger location when in the taxi
)

// Rewards of the environment
const (
	StepReward    float64 = -1.0
	SuccessReward float64 = 20.0
	IllegalReward float64 = -10.0
)

// DefaultCutoff is the default number of steps after which episodes are
// cut off
const DefaultCutoff = 200

var actionNames = [NumActions]string{"South", "North", "East", "West",
	"Pickup", "Dropoff"}

// landmarks are the (row, col) positions of the R, G, Y, and B
// landmarks
var landmarks = [4][2]int{{0, 0}, {0, 4}, {4, 0}, {4, 3}}

var landmarkNames = [4]string{"R", "G", "Y", "B"}

// layout is the map of the environment. The cell at (row, col) is at
// layout[row+1][2*col+1]; a '|' to either side of a cell is a wall.
var layout = [...]string{
	"+---------+",
	"|R: | : :G|",
	"| : | : : |",
	"| : : : : |",
	"| | : | : |",
	"|Y| : |B: |",
	"+---------+",
}

// ActionName returns the name of an action
func ActionName(a int) string {
	if a < 0 || a >= NumActions {
		return fmt.Sprintf("Action(%d)", a)
	}
	return actionNames[a]
}

// Encode encodes the taxi position, passenger location, and destination
// into a discrete State
func Encode(row, col, passenger, destination int) ts.State {
	i := row
	i *= Cols
	i += col
	i *= len(landmarks) + 1
	i += passenger
	i *= len(landmarks)
	i += destination
	return ts.State(i)
}

// Decode decodes a State into the taxi position, passenger location,
// and destination
func Decode(s ts.State) (row, col, passenger, destination int) {
	i := int(s)
	destination = i % len(landmarks)
	i /= len(landmarks)
	passenger = i % (len(landmarks) + 1)
	i /= len(landmarks) + 1
	col = i % Cols
	i /= Cols
	row = i
	return
}

// StartStates returns all states in which an episode may start: the
// passenger waits at a landmark which is not the destination, and the
// taxi may be anywhere.
func StartStates() []ts.State {
	states := make([]ts.State, 0, Rows*Cols*len(landmarks)*
		(len(landmarks)-1))
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			for pass := 0; pass < len(landmarks); pass++ {
				for dest := 0; dest < len(landmarks); dest++ {
					if pass != dest {
						states = append(states, Encode(row, col, pass, dest))
					}
				}
			}
		}
	}
	return states
}

// NewStarter returns a starter which samples uniformly from
// StartStates()
func NewStarter(seed uint64) (environment.Starter, error) {
	return environment.NewUniformStarter(StartStates(), seed)
}

// transition returns the next state, reward, and whether a terminal
// state was reached after taking action a in state s
func transition(s ts.State, a int) (ts.State, float64, bool) {
	row, col, pass, dest := Decode(s)
	reward := StepReward
	terminal := false

	switch a {
	case South:
		row = min(row+1, Rows-1)

	case North:
		row = max(row-1, 0)

	case East:
		if layout[row+1][2*col+2] == ':' {
			col++
		}

	case West:
		if layout[row+1][2*col] == ':' {
			col--
		}

	case Pickup:
		if pass < InTaxi && landmarks[pass] == [2]int{row, col} {
			pass = InTaxi
		} else {
			reward = IllegalReward
		}

	case Dropoff:
		at := landmarkAt(row, col)
		switch {
		case pass == InTaxi && at == dest:
			pass = dest
			terminal = true
			reward = SuccessReward
		case pass == InTaxi && at >= 0:
			pass = at
		default:
			reward = IllegalReward
		}
	}

	return Encode(row, col, pass, dest), reward, terminal
}

// landmarkAt returns the index of the landmark at (row, col), or -1 if
// there is no landmark there
func landmarkAt(row, col int) int {
	for i, l := range landmarks {
		if l == [2]int{row, col} {
			return i
		}
	}
	return -1
}

// Taxi implements the Taxi environment
type Taxi struct {
	environment.Starter
	stepLimit environment.StepLimit

	state       ts.State
	lastAction  int
	discount    float64
	currentStep ts.TimeStep
	au          aurora.Aurora
}

// New creates a new Taxi environment with episodes starting in states
// drawn uniformly from StartStates(). Episodes are cut off after cutoff
// steps; a cutoff of 0 or less never cuts episodes off.
func New(seed uint64, cutoff int) (*Taxi, ts.TimeStep, error) {
	starter, err := NewStarter(seed)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: %w", err)
	}

	t := &Taxi{
		Starter:    starter,
		stepLimit:  environment.NewStepLimit(cutoff),
		lastAction: -1,
		discount:   1.0,
		au:         aurora.NewAurora(true),
	}

	step, err := t.Reset()
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: %w", err)
	}
	return t, step, nil
}

// SetColor enables or disables coloured output in Render
func (t *Taxi) SetColor(enabled bool) {
	t.au = aurora.NewAurora(enabled)
}

// State returns the current state of the environment
func (t *Taxi) State() ts.State {
	return t.state
}

// Reset resets the environment to a starting state
func (t *Taxi) Reset() (ts.TimeStep, error) {
	start := t.Start()
	if start < 0 || int(start) >= NumStates {
		return ts.TimeStep{}, fmt.Errorf("reset: start state %d ∉ [0, %d)",
			start, NumStates)
	}
	t.state = start
	t.lastAction = -1

	step := ts.New(ts.First, 0, t.discount, start, 0)
	t.currentStep = step
	return step, nil
}

// Step takes one environmental step given action a and returns the next
// TimeStep as well as whether the episode ended
func (t *Taxi) Step(a int) (ts.TimeStep, bool, error) {
	if a < 0 || a >= NumActions {
		return ts.TimeStep{}, false, fmt.Errorf("step: illegal action %d "+
			"∉ [0, %d)", a, NumActions)
	}

	next, reward, terminal := transition(t.state, a)
	t.state = next
	t.lastAction = a

	step := ts.New(ts.Mid, reward, t.discount, next, t.currentStep.Number+1)
	var last bool
	if terminal {
		step.StepType = ts.Last
		step.SetEnd(ts.TerminalStateReached)
		last = true
	} else {
		last = t.stepLimit.End(&step)
	}

	t.currentStep = step
	return step, last, nil
}

// CurrentTimeStep returns the current time step in the environment
func (t *Taxi) CurrentTimeStep() ts.TimeStep {
	return t.currentStep
}

// Cutoff returns the number of steps after which episodes are cut off
func (t *Taxi) Cutoff() int {
	return t.stepLimit.Limit()
}

// Render writes the map to w. The passenger's landmark is drawn in
// blue and the destination in magenta. The taxi is yellow when empty
// and green when carrying the passenger. The last action taken is
// written below the map.
func (t *Taxi) Render(w io.Writer) error {
	row, col, pass, dest := Decode(t.state)

	cells := make([][]string, len(layout))
	for i, line := range layout {
		cells[i] = make([]string, len(line))
		for j, r := range line {
			cells[i][j] = string(r)
		}
	}

	if pass < InTaxi {
		pr, pc := landmarks[pass][0], landmarks[pass][1]
		cells[pr+1][2*pc+1] = t.au.Blue(landmarkNames[pass]).String()
	}
	dr, dc := landmarks[dest][0], landmarks[dest][1]
	cells[dr+1][2*dc+1] = t.au.Magenta(landmarkNames[dest]).String()

	taxi := layout[row+1][2*col+1 : 2*col+2]
	if taxi == " " {
		taxi = "_"
	}
	if pass == InTaxi {
		cells[row+1][2*col+1] = t.au.BgGreen(taxi).String()
	} else {
		cells[row+1][2*col+1] = t.au.BgYellow(taxi).String()
	}

	var b strings.Builder
	for _, line := range cells {
		b.WriteString(strings.Join(line, ""))
		b.WriteString("\n")
	}
	if t.lastAction >= 0 {
		fmt.Fprintf(&b, "  (%v)\n", ActionName(t.lastAction))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// CellPixels is the width and height in pixels of a single cell when
// drawing the map with Image()
const CellPixels = 40

// Image draws the map
func (t *Taxi) Image() image.Image {
	dc := gg.NewContext(Cols*CellPixels, Rows*CellPixels)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	row, col, pass, dest := Decode(t.state)
	half := float64(CellPixels) / 2

	for i, l := range landmarks {
		x, y := float64(l[1]*CellPixels), float64(l[0]*CellPixels)
		switch {
		case i == dest:
			dc.SetRGB(0.8, 0.3, 0.8)
		case i == pass:
			dc.SetRGB(0.3, 0.4, 0.9)
		default:
			dc.SetRGB(0.85, 0.85, 0.85)
		}
		dc.DrawRectangle(x, y, CellPixels, CellPixels)
		dc.Fill()
		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(landmarkNames[i], x+half, y+half, 0.5, 0.5)
	}

	// Grid lines, then walls
	dc.SetRGB(0.7, 0.7, 0.7)
	dc.SetLineWidth(1)
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			dc.DrawRectangle(float64(c*CellPixels), float64(r*CellPixels),
				CellPixels, CellPixels)
			dc.Stroke()
		}
	}
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(4)
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols-1; c++ {
			if layout[r+1][2*c+2] == '|' {
				x := float64((c + 1) * CellPixels)
				dc.DrawLine(x, float64(r*CellPixels), x,
					float64((r+1)*CellPixels))
				dc.Stroke()
			}
		}
	}

	if pass == InTaxi {
		dc.SetRGB(0.2, 0.7, 0.2)
	} else {
		dc.SetRGB(0.9, 0.8, 0.1)
	}
	dc.DrawCircle(float64(col*CellPixels)+half, float64(row*CellPixels)+half,
		float64(CellPixels)/3)
	dc.Fill()

	return dc.Image()
}

// ActionSpec returns the action specification of the environment
func (t *Taxi) ActionSpec() environment.Spec {
	return environment.NewDiscreteSpec(environment.Action, NumActions)
}

// ObservationSpec returns the observation specification of the
// environment
func (t *Taxi) ObservationSpec() environment.Spec {
	return environment.NewDiscreteSpec(environment.Observation, NumStates)
}

// DiscountSpec returns the discount specification of the environment
func (t *Taxi) DiscountSpec() environment.Spec {
	return environment.NewDiscountSpec(t.discount)
}

// Min returns the minimum reward attainable in the environment
func (t *Taxi) Min() float64 {
	return IllegalReward
}

// Max returns the maximum reward attainable in the environment
func (t *Taxi) Max() float64 {
	return SuccessReward
}

func (t *Taxi) String() string {
	row, col, pass, dest := Decode(t.state)
	passenger := "Taxi"
	if pass < InTaxi {
		passenger = landmarkNames[pass]
	}
	return fmt.Sprintf("Taxi | At: %v  |  Passenger: %v  |  Destination: %v",
		[2]int{row, col}, passenger, landmarkNames[dest])
}
