// Package grid provides the rectangular sample buffer that the hole
// detector and the hole filler operate on.
//
// What:
//
//   - Grid wraps a gonum *mat.Dense of float64 samples, rows × cols.
//   - A reserved sentinel value (MissingValue, −1 by default) marks a cell as missing.
//   - Coord addresses a cell: X is the row index, Y is the column index.
//   - Connectivity selects 4-neighbor (Conn4) or 8-neighbor (Conn8) adjacency.
//
// Why:
//
//   - Image inpainting: the detector traces missing regions, the filler rewrites them.
//   - Any raster with dropouts (elevation tiles, sensor grids) fits the same model.
//
// Complexity:
//
//   - At, Set, IsMissing, InBounds: O(1).
//   - Neighbors:                    O(d), d = 4 or 8.
//   - Clone, MissingCount:          O(rows×cols) time, Clone O(rows×cols) memory.
//
// Errors:
//
//   - ErrEmptyGrid: zero rows or zero columns.
//   - ErrNonRectangular: rows of differing lengths in FromRows.
//   - ErrOutOfRange: a coordinate outside [0,rows)×[0,cols).
//   - ErrBadConnectivity: a Connectivity other than Conn4 or Conn8.
package grid
