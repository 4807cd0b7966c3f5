package finance

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by every package that consumes the engine.
// Callers should test with errors.Is; returned errors carry the failing
// operation as a prefix.
var (
	// ErrDomain marks invalid mathematical input: a log of a non-positive
	// value, a zero present value for the closed-form rate, no payback
	// within the series, an unsupported schedule length.
	ErrDomain = errors.New("domain error")

	// ErrNonConvergence marks an iterative solve that stopped without
	// reaching its tolerance.
	ErrNonConvergence = errors.New("no convergence")

	// ErrIndexOutOfRange marks access past the end of a series or schedule.
	ErrIndexOutOfRange = errors.New("index out of range")
)

var (
	// ErrNoPayback is returned when the running net never changes sign.
	ErrNoPayback = fmt.Errorf("%w: no payback within series", ErrDomain)

	// ErrDivergent is returned together with a +Inf rate when the IRR
	// iteration runs past the divergence ceiling.
	ErrDivergent = fmt.Errorf("%w: rate diverged", ErrNonConvergence)
)
