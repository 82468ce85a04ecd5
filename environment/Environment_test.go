package environment

import (
	"testing"

	ts "github.com/samuelfneumann/tabular/timestep"
)

func TestStepLimit(t *testing.T) {
	limit := NewStepLimit(3)

	step := ts.New(ts.Mid, -1, 1, 5, 2)
	if limit.End(&step) {
		t.Error("end: episode ended before the step limit")
	}
	if !step.Mid() {
		t.Errorf("end: step type changed to %v", step.StepType)
	}

	step = ts.New(ts.Mid, -1, 1, 5, 3)
	if !limit.End(&step) {
		t.Error("end: episode did not end at the step limit")
	}
	if !step.Last() || step.EndType() != ts.Timeout {
		t.Errorf("end: want Last/Timeout, got %v/%v", step.StepType,
			step.EndType())
	}

	unlimited := NewStepLimit(0)
	step = ts.New(ts.Mid, -1, 1, 5, 1_000_000)
	if unlimited.End(&step) {
		t.Error("end: zero step limit should never end episodes")
	}
}

func TestCategoricalStarter(t *testing.T) {
	states := []ts.State{3, 8, 11}
	starter, err := NewCategoricalStarter(states, []float64{0, 1, 0}, 42)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 50; i++ {
		if s := starter.Start(); s != 8 {
			t.Fatalf("start: got state %v, want 8", s)
		}
	}

	uniform, err := NewUniformStarter(states, 42)
	if err != nil {
		t.Fatal(err)
	}
	counts := make(map[ts.State]int)
	for i := 0; i < 3000; i++ {
		counts[uniform.Start()]++
	}
	for _, s := range states {
		if counts[s] < 800 {
			t.Errorf("start: state %v sampled %d/3000 times", s, counts[s])
		}
	}
}

func TestCategoricalStarterErrors(t *testing.T) {
	if _, err := NewCategoricalStarter(nil, nil, 1); err == nil {
		t.Error("newCategoricalStarter: expected error for no states")
	}
	if _, err := NewCategoricalStarter([]ts.State{1, 2}, []float64{1}, 1); err == nil {
		t.Error("newCategoricalStarter: expected error for mismatched " +
			"weights")
	}
}

func TestDiscreteSpec(t *testing.T) {
	spec := NewDiscreteSpec(Action, 6)
	if spec.Len() != 6 {
		t.Errorf("len: got %d, want 6", spec.Len())
	}
	if !spec.Contains(0) || !spec.Contains(5) {
		t.Error("contains: bounds should be inclusive")
	}
	if spec.Contains(-1) || spec.Contains(6) {
		t.Error("contains: values outside bounds reported as contained")
	}

	discount := NewDiscountSpec(0.9)
	if discount.Len() != 0 {
		t.Errorf("len: continuous spec should have length 0, got %d",
			discount.Len())
	}
}

func TestFunctionEnder(t *testing.T) {
	ender := NewFunctionEnder(func(s ts.State) bool { return s == 4 },
		ts.TerminalStateReached)

	step := ts.New(ts.Mid, 0, 1, 3, 1)
	if ender.End(&step) || step.Last() {
		t.Error("end: episode ended in a non-ending state")
	}

	step = ts.New(ts.Mid, 0, 1, 4, 2)
	if !ender.End(&step) || !step.Last() {
		t.Fatal("end: episode did not end in an ending state")
	}
	if step.EndType() != ts.TerminalStateReached {
		t.Errorf("end: got end type %v, want TerminalStateReached",
			step.EndType())
	}
}
