package timestep

import "testing"

func TestNextState(t *testing.T) {
	tests := []struct {
		name string
		step func() TimeStep
		want State
	}{
		{
			name: "mid",
			step: func() TimeStep { return New(Mid, -1, 1, 7, 3) },
			want: 7,
		},
		{
			name: "terminal",
			step: func() TimeStep {
				s := New(Last, 20, 1, 7, 3)
				s.SetEnd(TerminalStateReached)
				return s
			},
			want: Terminal,
		},
		{
			name: "timeout",
			step: func() TimeStep {
				s := New(Last, -1, 1, 7, 200)
				s.SetEnd(Timeout)
				return s
			},
			want: 7,
		},
		{
			name: "end set on mid step is ignored",
			step: func() TimeStep {
				s := New(Mid, -1, 1, 4, 1)
				s.SetEnd(TerminalStateReached)
				return s
			},
			want: 4,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.step().NextState(); got != test.want {
				t.Errorf("NextState: got %v, want %v", got, test.want)
			}
		})
	}
}

func TestEndType(t *testing.T) {
	s := New(Mid, 0, 1, 0, 1)
	s.SetEnd(Timeout)
	if s.EndType() != Nil {
		t.Errorf("mid step should have end type Nil, got %v", s.EndType())
	}

	s.StepType = Last
	if s.EndType() != Timeout {
		t.Errorf("last step should have end type Timeout, got %v",
			s.EndType())
	}
}
