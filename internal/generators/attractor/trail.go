package attractor

import "github.com/san-kum/genlab/internal/dynamo"

// Trail is a bounded ring of recent states.
type Trail struct {
	buf   []dynamo.State
	start int
	n     int
}

func NewTrail(capacity int) *Trail {
	return &Trail{buf: make([]dynamo.State, max(1, capacity))}
}

func (t *Trail) Cap() int { return len(t.buf) }
func (t *Trail) Len() int { return t.n }

func (t *Trail) Push(s dynamo.State) {
	if t.n < len(t.buf) {
		t.buf[(t.start+t.n)%len(t.buf)] = s
		t.n++
		return
	}
	t.buf[t.start] = s
	t.start = (t.start + 1) % len(t.buf)
}

// Points returns the states oldest first.
func (t *Trail) Points() []dynamo.State {
	out := make([]dynamo.State, t.n)
	for i := range out {
		out[i] = t.buf[(t.start+i)%len(t.buf)]
	}
	return out
}

// Resize changes the capacity, keeping the newest states.
func (t *Trail) Resize(capacity int) {
	pts := t.Points()
	capacity = max(1, capacity)
	if len(pts) > capacity {
		pts = pts[len(pts)-capacity:]
	}
	t.buf = make([]dynamo.State, capacity)
	copy(t.buf, pts)
	t.start, t.n = 0, len(pts)
}

func (t *Trail) Clear() {
	clear(t.buf)
	t.start, t.n = 0, 0
}
