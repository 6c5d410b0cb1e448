package grid

import "fmt"

// InvalidCoordinateError is returned when a cell operation addresses a
// coordinate outside the current grid dimensions (§7).
type InvalidCoordinateError struct {
	X, Y       int
	Cols, Rows int
}

func (e *InvalidCoordinateError) Error() string {
	return fmt.Sprintf("grid: coordinate (%d,%d) outside %dx%d grid", e.X, e.Y, e.Cols, e.Rows)
}
