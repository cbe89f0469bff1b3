package arena

// Span addresses Len values starting at Off inside an Arena.
type Span struct {
	Off int
	Len int
}

// End returns the offset one past the span.
func (s Span) End() int { return s.Off + s.Len }

// Arena is a bump allocator over one contiguous []float64.
type Arena struct {
	data []float64
	used int
}

// New returns an empty arena with at least capacity values reserved.
func New(capacity int) *Arena {
	if capacity < 0 {
		capacity = 0
	}
	return &Arena{data: make([]float64, 0, capacity)}
}

// Alloc reserves n zeroed values and returns their span.
func (a *Arena) Alloc(n int) Span {
	if n < 0 {
		n = 0
	}
	a.grow(a.used + n)
	s := Span{Off: a.used, Len: n}
	a.used += n
	a.data = a.data[:a.used]
	clear(a.data[s.Off:s.End()])
	return s
}

// Slice resolves s to a view of the arena. The view is invalidated by the
// next Alloc that grows the arena.
func (a *Arena) Slice(s Span) []float64 {
	return a.data[s.Off:s.End():s.End()]
}

// Mark returns the current allocation offset.
func (a *Arena) Mark() int { return a.used }

// Rewind frees every allocation made after mark.
func (a *Arena) Rewind(mark int) {
	if mark < 0 {
		mark = 0
	}
	if mark >= a.used {
		return
	}
	a.used = mark
	a.data = a.data[:mark]
}

// Reset frees all allocations while keeping the capacity.
func (a *Arena) Reset() {
	a.used = 0
	a.data = a.data[:0]
}

// Used returns the number of allocated values.
func (a *Arena) Used() int { return a.used }

// Cap returns the reserved capacity.
func (a *Arena) Cap() int { return cap(a.data) }

func (a *Arena) grow(n int) {
	if n <= cap(a.data) {
		return
	}
	c := 2 * cap(a.data)
	if c < n {
		c = n
	}
	grown := make([]float64, a.used, c)
	copy(grown, a.data[:a.used])
	a.data = grown
}
