package experiment

import "gonum.org/v1/gonum/stat"

// window is a bounded FIFO of the most recent episodic returns
type window struct {
	values   []float64
	capacity int
}

func newWindow(capacity int) *window {
	return &window{values: make([]float64, 0, capacity), capacity: capacity}
}

// push adds v to the window, evicting the oldest value if at capacity
func (w *window) push(v float64) {
	if len(w.values) == w.capacity {
		copy(w.values, w.values[1:])
		w.values = w.values[:len(w.values)-1]
	}
	w.values = append(w.values, v)
}

// mean returns the arithmetic mean of the values in the window
func (w *window) mean() float64 {
	return stat.Mean(w.values, nil)
}
