package grid

import "github.com/cellgl/cellgl/cell"

// CellUpdate is one positional write accepted by UpdateCells, batching
// several update_cell calls (§6.2) into a single validated pass.
type CellUpdate struct {
	X, Y int
	Cell cell.Cell
}
