package gesture

// Edge is the transition reported by a Latch update.
type Edge int

const (
	// EdgeNone means the input did not change.
	EdgeNone Edge = iota
	// EdgeRise means the input went from false to true.
	EdgeRise
	// EdgeFall means the input went from true to false.
	EdgeFall
)

func (e Edge) String() string {
	switch e {
	case EdgeRise:
		return "rise"
	case EdgeFall:
		return "fall"
	default:
		return "none"
	}
}

// Latch converts a continuous boolean into single rise and fall events.
// A rise is reported at most once per contiguous run of true inputs.
type Latch struct {
	active bool
}

// Update feeds the current classifier value and returns the resulting edge.
func (l *Latch) Update(value bool) Edge {
	switch {
	case value && !l.active:
		l.active = true
		return EdgeRise
	case !value && l.active:
		l.active = false
		return EdgeFall
	default:
		return EdgeNone
	}
}

// Active reports whether the latch is currently held.
func (l *Latch) Active() bool {
	return l.active
}

// Reset releases the latch without reporting an edge.
func (l *Latch) Reset() {
	l.active = false
}
