package gridworld

import (
	"bytes"
	"strings"
	"testing"

	ts "github.com/samuelfneumann/tabular/timestep"
)

func newGridWorld(t *testing.T, cutoff int) *GridWorld {
	t.Helper()

	r, c := 3, 4
	starter, err := NewSingleStart(0, 0, r, c)
	if err != nil {
		t.Fatal(err)
	}
	goal, err := NewGoal(starter, []int{3}, []int{2}, r, c, -1, 10, cutoff)
	if err != nil {
		t.Fatal(err)
	}
	g, _, err := New(r, c, goal, 0.9)
	if err != nil {
		t.Fatal(err)
	}
	g.SetColor(false)
	return g
}

func TestStepMovement(t *testing.T) {
	g := newGridWorld(t, 0)

	tests := []struct {
		action int
		x, y   int
	}{
		{Left, 0, 0}, // bump into the edge
		{Down, 0, 0},
		{Right, 1, 0},
		{Up, 1, 1},
		{Left, 0, 1},
		{Down, 0, 0},
	}

	for i, test := range tests {
		step, done, err := g.Step(test.action)
		if err != nil {
			t.Fatal(err)
		}
		if done {
			t.Fatalf("step %d: episode ended early", i)
		}
		x, y := g.Coordinates()
		if x != test.x || y != test.y {
			t.Errorf("step %d: got (%d, %d), want (%d, %d)", i, x, y,
				test.x, test.y)
		}
		if step.Observation != cToInd(test.x, test.y, 4) {
			t.Errorf("step %d: observation %v does not match position", i,
				step.Observation)
		}
		if step.Reward != -1 {
			t.Errorf("step %d: reward got %v, want -1", i, step.Reward)
		}
		if step.Number != i+1 {
			t.Errorf("step %d: number got %v, want %v", i, step.Number, i+1)
		}
	}
}

func TestReachGoal(t *testing.T) {
	g := newGridWorld(t, 0)

	actions := []int{Right, Right, Right, Up, Up}
	var (
		step ts.TimeStep
		done bool
		err  error
	)
	for _, a := range actions {
		step, done, err = g.Step(a)
		if err != nil {
			t.Fatal(err)
		}
	}

	if !done || !step.Last() {
		t.Fatal("step: reaching the goal should end the episode")
	}
	if step.Reward != 10 {
		t.Errorf("step: goal reward got %v, want 10", step.Reward)
	}
	if step.EndType() != ts.TerminalStateReached {
		t.Errorf("step: end type got %v, want TerminalStateReached",
			step.EndType())
	}
	if step.NextState() != ts.Terminal {
		t.Errorf("step: next state got %v, want Terminal", step.NextState())
	}
}

func TestCutoff(t *testing.T) {
	g := newGridWorld(t, 2)

	step, done, _ := g.Step(Left)
	if done {
		t.Fatal("step: episode ended before cutoff")
	}
	step, done, _ = g.Step(Left)
	if !done || step.EndType() != ts.Timeout {
		t.Fatalf("step: episode should time out, got done=%v end=%v", done,
			step.EndType())
	}
	if step.NextState() != step.Observation {
		t.Error("step: truncated episodes should bootstrap from the " +
			"observation")
	}
}

func TestWalls(t *testing.T) {
	g := newGridWorld(t, 0)
	if err := g.SetWall(1, 0); err != nil {
		t.Fatal(err)
	}
	if err := g.SetWall(3, 2); err == nil {
		t.Error("setWall: expected error for wall on goal")
	}
	if err := g.SetWall(0, 0); err == nil {
		t.Error("setWall: expected error for wall on agent")
	}
	if err := g.SetWall(9, 9); err == nil {
		t.Error("setWall: expected error for wall out of bounds")
	}

	g.Step(Right)
	if x, y := g.Coordinates(); x != 0 || y != 0 {
		t.Errorf("step: moved into wall, now at (%d, %d)", x, y)
	}
}

func TestIllegalAction(t *testing.T) {
	g := newGridWorld(t, 0)
	if _, _, err := g.Step(NumActions); err == nil {
		t.Error("step: expected error for illegal action")
	}
}

func TestRenderAndImage(t *testing.T) {
	g := newGridWorld(t, 0)
	g.SetWall(1, 1)

	var buf bytes.Buffer
	if err := g.Render(&buf); err != nil {
		t.Fatal(err)
	}
	want := "+---------+\n" +
		"| . . . G |\n" +
		"| . # . . |\n" +
		"| A . . . |\n" +
		"+---------+\n"
	if buf.String() != want {
		t.Errorf("render: got\n%v\nwant\n%v", buf.String(), want)
	}

	img := g.Image()
	bounds := img.Bounds()
	if bounds.Dx() != 4*CellPixels || bounds.Dy() != 3*CellPixels {
		t.Errorf("image: got bounds %v", bounds)
	}
	if !strings.Contains(g.String(), "GridWorld") {
		t.Errorf("string: unexpected %q", g.String())
	}
}
