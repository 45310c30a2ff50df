// Package weight provides the distance-based interpolation kernels used by
// the hole filler.
//
// The filler consumes a Kernel: a weight plus its logarithm. Any plain Func
// of two coordinates is a Kernel, so alternative kernels need no change to
// the filler. Power, the inverse-power kernel, is pure and strictly
// positive for distinct coordinates at any finite z; its LogWeight stays
// exact after the weight itself leaves float64 range.
package weight

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/holefill/grid"
)

// Kernel is the weight capability the filler consumes.
//
// Weight returns the interpolation weight of b as seen from a. LogWeight
// returns its natural logarithm and must stay finite wherever the weight is
// positive, even when Weight itself is too small to represent; the filler
// switches to it when plain weights underflow.
type Kernel interface {
	Weight(a, b grid.Coord) float64
	LogWeight(a, b grid.Coord) float64
}

// Func maps a pair of distinct coordinates to a positive interpolation
// weight. Callers never invoke a Func with a == b. Func implements Kernel,
// so any function of this shape can be handed to the filler.
type Func func(a, b grid.Coord) float64

// Weight calls f.
func (f Func) Weight(a, b grid.Coord) float64 { return f(a, b) }

// LogWeight returns log f(a,b).
func (f Func) LogWeight(a, b grid.Coord) float64 { return math.Log(f(a, b)) }

// Metric measures the distance between two coordinates.
type Metric func(a, b grid.Coord) float64

// distance computes the L-norm distance via gonum/floats.
func distance(a, b grid.Coord, l float64) float64 {
	pa := [2]float64{float64(a.X), float64(a.Y)}
	pb := [2]float64{float64(b.X), float64(b.Y)}
	return floats.Distance(pa[:], pb[:], l)
}

// Euclidean is the L2 distance. Symmetric.
func Euclidean(a, b grid.Coord) float64 {
	return distance(a, b, 2)
}

// Manhattan is the L1 distance. Symmetric.
func Manhattan(a, b grid.Coord) float64 {
	return distance(a, b, 1)
}

// Chebyshev is the L∞ distance. Symmetric.
func Chebyshev(a, b grid.Coord) float64 {
	return distance(a, b, math.Inf(1))
}

// Power is the inverse-power kernel w(a,b) = 1 / (metric(a,b)^z + eps).
// Build it with InversePower or Default.
type Power struct {
	metric Metric
	z      float64
	eps    float64
	logEps float64
}

// InversePower returns the kernel
//
//	w(a,b) = 1 / (metric(a,b)^z + eps)
//
// z controls how fast influence falls off with distance; eps keeps the
// denominator away from zero. The kernel is symmetric iff metric is.
// Panics if metric is nil, z is NaN or ±Inf, or eps is not a finite
// positive number.
// Complexity: O(1) per evaluation.
func InversePower(metric Metric, z, eps float64) *Power {
	if metric == nil {
		panic("weight: InversePower(nil metric)")
	}
	if math.IsNaN(z) || math.IsInf(z, 0) {
		panic(fmt.Sprintf("weight: InversePower: z must be finite, got %g", z))
	}
	if !(eps > 0) || math.IsInf(eps, 1) {
		panic(fmt.Sprintf("weight: InversePower: eps must be > 0 and finite, got %g", eps))
	}

	return &Power{metric: metric, z: z, eps: eps, logEps: math.Log(eps)}
}

// Default returns the Euclidean inverse-power kernel
//
//	w(a,b) = 1 / (‖a−b‖^z + eps)
//
// Panics under the same conditions as InversePower.
func Default(z, eps float64) *Power {
	return InversePower(Euclidean, z, eps)
}

// Weight evaluates the kernel. For distinct coordinates the result is never
// below math.SmallestNonzeroFloat64: a weight too small for float64 is
// clamped there, and LogWeight keeps its true magnitude.
func (p *Power) Weight(a, b grid.Coord) float64 {
	return math.Max(1/(math.Pow(p.metric(a, b), p.z)+p.eps), math.SmallestNonzeroFloat64)
}

// LogWeight returns −log(metric(a,b)^z + eps), computed without forming
// metric(a,b)^z when that power overflows. Finite for every finite distance.
func (p *Power) LogWeight(a, b grid.Coord) float64 {
	d := p.metric(a, b)
	pw := math.Pow(d, p.z)
	var logPow float64
	switch {
	case pw > 0 && !math.IsInf(pw, 1):
		logPow = math.Log(pw)
	case pw == 0:
		logPow = math.Inf(-1)
	case d == 0:
		// 0^z with z < 0.
		return math.Inf(-1)
	default:
		logPow = p.z * math.Log(d)
	}
	return -logAddExp(logPow, p.logEps)
}

// logAddExp returns log(e^x + e^y) for y finite.
func logAddExp(x, y float64) float64 {
	hi, lo := math.Max(x, y), math.Min(x, y)
	return hi + math.Log1p(math.Exp(lo-hi))
}
