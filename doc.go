// Package holefill reconstructs missing regions of 2-D grayscale grids.
//
// What is holefill?
//
//	A small toolkit that finds a connected region of missing samples and
//	fills it by inverse-distance weighting of the known samples around it:
//		• grid: dense row-major grid with a missing-value sentinel
//		• hole: BFS hole detection (4- or 8-connectivity) and boundary tracing
//		• weight: distance kernels, default 1/(‖a−b‖^z + ε)
//		• fill: boundary-wide and neighbor-local interpolation
//		• carve: synthetic holes for demos and tests
//		• imageio: image ↔ grid conversion, masks
//		• config: argument validation and YAML parameters
//
// The holefill command in cmd/holefill ties them together:
//
//	holefill <image_path> <epsilon> <z> <connectivity> [flags]
//
// Quick ASCII example (4-connectivity, _ = missing, b = boundary):
//
//	. b . .
//	b _ b .
//	. b . .
//
// Every filled value is a convex combination of known samples, so it stays
// within the range of the boundary.
package holefill
