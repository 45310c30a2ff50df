package fill

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/holefill/grid"
)

// Sentinel errors for fill operations.
var (
	// ErrDegenerateWeight indicates a weight denominator summed to zero.
	ErrDegenerateWeight = errors.New("fill: degenerate weight")
	// ErrNilInput indicates a nil grid, hole or kernel.
	ErrNilInput = errors.New("fill: nil grid, hole or weight function")
	// ErrHoleMismatch indicates the hole was not traced on this grid.
	ErrHoleMismatch = errors.New("fill: hole does not match grid")
	// ErrOptionViolation indicates an invalid Option was supplied.
	ErrOptionViolation = errors.New("fill: invalid option supplied")
	// ErrUnknownStrategy indicates a Strategy other than BoundaryWide or NeighborLocal.
	ErrUnknownStrategy = errors.New("fill: unknown strategy")
)

// Strategy names a reconstruction strategy.
type Strategy int

const (
	// BoundaryWide averages over the whole hole boundary.
	BoundaryWide Strategy = iota
	// NeighborLocal averages over direct neighbors in BFS order.
	NeighborLocal
)

// String returns "boundary" or "neighbor".
func (s Strategy) String() string {
	switch s {
	case BoundaryWide:
		return "boundary"
	case NeighborLocal:
		return "neighbor"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// Policy selects how a degenerate cell is handled.
type Policy int

const (
	// Reject aborts on the first degenerate cell.
	Reject Policy = iota
	// Skip leaves degenerate cells missing and continues.
	Skip
	// Fallback widens the search to the nearest boundary cells.
	Fallback
)

// String returns "reject", "skip" or "fallback".
func (p Policy) String() string {
	switch p {
	case Reject:
		return "reject"
	case Skip:
		return "skip"
	case Fallback:
		return "fallback"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// DefaultFallbackK is the number of nearest boundary cells used by Fallback.
const DefaultFallbackK = 8

// DegenerateError reports a cell whose weights summed to zero.
// errors.Is(err, ErrDegenerateWeight) holds for every *DegenerateError.
type DegenerateError struct {
	Cell     grid.Coord
	Strategy Strategy
}

// Error implements error.
func (e *DegenerateError) Error() string {
	return fmt.Sprintf("fill: %s fill at %s: zero weight denominator", e.Strategy, e.Cell)
}

// Unwrap exposes ErrDegenerateWeight to errors.Is.
func (e *DegenerateError) Unwrap() error {
	return ErrDegenerateWeight
}

// Result holds the outcome of a fill.
//   - Grid: the working copy with reconstructed values written in.
//   - Filled: number of interior cells that received a value.
//   - Fallbacks: how many of those came from the Fallback search.
//   - Unfilled: interior cells left missing (Skip/Fallback only), in processing order.
//   - Degenerate: one error per cell that hit a zero denominator, in processing order.
type Result struct {
	Grid       *grid.Grid
	Filled     int
	Fallbacks  int
	Unfilled   []grid.Coord
	Degenerate []*DegenerateError
}

// Complete reports whether every interior cell was filled.
func (r *Result) Complete() bool {
	return len(r.Unfilled) == 0
}

// Option configures a fill via functional arguments. An invalid value is
// recorded and surfaced as ErrOptionViolation when the fill runs.
type Option func(*Options)

// Options holds fill parameters.
type Options struct {
	// Policy decides the fate of degenerate cells.
	Policy Policy
	// Workers bounds the goroutines used by Boundary. 1 runs inline.
	Workers int
	// FallbackK is the neighbor count for the Fallback search.
	FallbackK int

	err error
}

// DefaultOptions returns Policy=Reject, Workers=1, FallbackK=DefaultFallbackK.
func DefaultOptions() Options {
	return Options{
		Policy:    Reject,
		Workers:   1,
		FallbackK: DefaultFallbackK,
	}
}

// WithPolicy sets the degenerate-cell policy.
func WithPolicy(p Policy) Option {
	return func(o *Options) {
		if p < Reject || p > Fallback {
			o.err = fmt.Errorf("%w: unknown policy %d", ErrOptionViolation, int(p))
			return
		}
		o.Policy = p
	}
}

// WithWorkers sets the number of goroutines for Boundary. n must be ≥ 1.
// Neighbor ignores it: its result depends on write order.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: workers must be >= 1 (%d)", ErrOptionViolation, n)
			return
		}
		o.Workers = n
	}
}

// WithFallbackK sets how many nearest boundary cells Fallback averages. k must be ≥ 1.
func WithFallbackK(k int) Option {
	return func(o *Options) {
		if k < 1 {
			o.err = fmt.Errorf("%w: fallback k must be >= 1 (%d)", ErrOptionViolation, k)
			return
		}
		o.FallbackK = k
	}
}

func resolve(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o, o.err
}
