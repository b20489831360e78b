package automaton

// History is a bounded ring of rows. Once full, pushing discards the oldest.
type History struct {
	rows  [][]uint8
	start int
	n     int
}

func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{rows: make([][]uint8, capacity)}
}

func (h *History) Cap() int { return len(h.rows) }
func (h *History) Len() int { return h.n }

func (h *History) Push(row []uint8) {
	if h.n < len(h.rows) {
		h.rows[(h.start+h.n)%len(h.rows)] = row
		h.n++
		return
	}
	h.rows[h.start] = row
	h.start = (h.start + 1) % len(h.rows)
}

// At returns the i-th row, oldest first.
func (h *History) At(i int) []uint8 {
	return h.rows[(h.start+i)%len(h.rows)]
}

// Last returns the newest row, or nil when empty.
func (h *History) Last() []uint8 {
	if h.n == 0 {
		return nil
	}
	return h.At(h.n - 1)
}

func (h *History) Clear() {
	for i := range h.rows {
		h.rows[i] = nil
	}
	h.start, h.n = 0, 0
}
