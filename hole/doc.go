// Package hole locates missing regions ("holes") in a grid.Grid and traces
// each one into its interior cells and its boundary cells.
//
// What:
//
//   - LocateFirstMissing scans row-major for the first sentinel cell.
//   - Trace runs a breadth-first traversal from a missing seed and splits the
//     cells it touches into Interior (sentinel, connected to the seed) and
//     Boundary (non-sentinel, adjacent to at least one interior cell).
//   - Detect chains the two; DetectAll returns every hole in the grid.
//
// Ordering:
//
//   - Interior is in BFS discovery order starting at the seed. The neighbor-local
//     filler depends on this order.
//   - Boundary holds each coordinate once, in first-discovery order.
//
// Complexity:
//
//   - LocateFirstMissing: O(rows×cols) worst case, O(1) memory.
//   - Trace:              O(rows×cols×d) time, O(rows×cols) memory for the visited marker.
//   - DetectAll:          O(rows×cols×d) time overall.
//
// Errors:
//
//   - ErrNoMissingPixel: the grid holds no sentinel cell.
//   - ErrSeedNotMissing: Trace was given a seed that is not a sentinel cell.
//   - grid.ErrOutOfRange, grid.ErrBadConnectivity: bad seed or adjacency mode.
package hole
