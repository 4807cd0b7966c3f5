package finance

// memo is a lazily computed scalar: the zero value is "not computed".
// A computed entry keeps its error too, so a failed solve is not retried
// until the series changes.
type memo struct {
	computed bool
	value    float64
	err      error
}

func (m *memo) get(compute func() (float64, error)) (float64, error) {
	if !m.computed {
		m.value, m.err = compute()
		m.computed = true
	}
	return m.value, m.err
}

// analytics holds every derived result of a series. It is reset as a
// whole on any mutation.
type analytics struct {
	payback           memo
	discountedPayback memo
	npv               memo
	irr               memo
	mirr              memo
}
