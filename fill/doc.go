// Package fill reconstructs the missing cells of a traced hole by weighted
// averaging of known samples.
//
// What:
//
//   - Boundary: every interior cell becomes the weighted average of ALL
//     boundary cells of the hole, read from the caller's unmodified grid.
//     Results are independent of processing order, so WithWorkers may spread
//     the work over goroutines.
//   - Neighbor: interior cells are visited strictly in the hole's BFS
//     discovery order. Each becomes the weighted average of its direct
//     neighbors (same adjacency as the hole) that hold a known value in the
//     working grid at that moment, so earlier writes feed later cells.
//     This is one forward pass; it never iterates to convergence.
//
// Both strategies write to a clone of the input grid and return it in
// Result.Grid. The input grid is never modified.
//
// Degenerate weights:
//
// A cell whose weight denominator sums to zero (or whose average is NaN/Inf)
// yields a *DegenerateError that matches ErrDegenerateWeight. Policy decides
// what happens next:
//
//   - Reject   (default): stop at the first such cell and return the error.
//   - Skip:      leave the cell missing, record it in Result.Unfilled and
//     Result.Degenerate, continue with the next cell.
//   - Fallback:  Neighbor only. Average over the FallbackK boundary cells
//     nearest to the cell (kd-tree search); if that too is degenerate the
//     cell is handled as under Skip. Boundary treats Fallback as Skip since
//     the whole boundary is already the widest search.
//
// Complexity:
//
//   - Boundary: O(|interior|×|boundary|) kernel evaluations, O(rows×cols) memory.
//   - Neighbor: O(|interior|×d) kernel evaluations; a Fallback adds an
//     O(|boundary| log |boundary|) kd-tree build once and O(k log |boundary|)
//     per fallback cell.
package fill
