// Package grid implements the Grid component (§4.6): the host-side master
// copy of every cell's packed data, dirty-range tracking between frames,
// and the accumulator API callers build a frame through (§6.3).
package grid

import (
	"github.com/cellgl/cellgl/cell"
)

// fullUploadThreshold is the fraction of the buffer above which flush
// re-uploads everything in one call instead of the dirty sub-range,
// trading bandwidth for fewer GL calls (§6.2 step "flush()").
const fullUploadThreshold = 0.5

// Renderer is the GPU-facing capability Grid drives. *gpu.Resources
// satisfies it; tests substitute a fake to exercise Grid's bookkeeping
// without an OpenGL context.
type Renderer interface {
	ResizeGrid(cols, rows int)
	UpdateCellData(firstCell int, data []byte)
	Draw()
}

// Grid is the host-side cell buffer plus its GPU-facing counterpart.
// Not safe for concurrent use (§5).
type Grid struct {
	cols, rows int
	cells      []cell.Cell

	dirtyMin, dirtyMax int // [dirtyMin, dirtyMax) of g.cells; dirtyMin == -1 means clean

	res Renderer
}

// New builds a Grid of cols x rows cells backed by res.
func New(res Renderer, cols, rows int) *Grid {
	g := &Grid{res: res}
	g.Resize(cols, rows)
	return g
}

// Resize recreates the cell buffer (and the GPU-side position buffer) for
// a new cols x rows grid (§4.6). Existing cell contents do not carry
// over: a resize is a fresh grid.
func (g *Grid) Resize(cols, rows int) {
	g.cols, g.rows = cols, rows
	g.cells = make([]cell.Cell, cols*rows)
	g.res.ResizeGrid(cols, rows)
	g.markAllDirty()
}

// Rebind attaches g to a newly (re)created Renderer without touching the
// host-side cell buffer, then marks every cell dirty so the next Flush
// re-uploads it in full (§9 context-loss recovery: GPU state is rebuilt
// from the surviving host-side master copy, not from scratch).
func (g *Grid) Rebind(res Renderer) {
	g.res = res
	g.res.ResizeGrid(g.cols, g.rows)
	g.markAllDirty()
}

func (g *Grid) Cols() int { return g.cols }
func (g *Grid) Rows() int { return g.rows }

// CellAt returns the current value of the cell at (x,y).
func (g *Grid) CellAt(x, y int) (cell.Cell, error) {
	if x < 0 || x >= g.cols || y < 0 || y >= g.rows {
		return cell.Cell{}, &InvalidCoordinateError{X: x, Y: y, Cols: g.cols, Rows: g.rows}
	}
	return g.cells[cell.Index(x, y, g.cols)], nil
}

// UpdateCell writes one cell's packed data at (x,y) (§6.2 update_cell).
func (g *Grid) UpdateCell(x, y int, c cell.Cell) error {
	if x < 0 || x >= g.cols || y < 0 || y >= g.rows {
		return &InvalidCoordinateError{X: x, Y: y, Cols: g.cols, Rows: g.rows}
	}
	idx := cell.Index(x, y, g.cols)
	g.cells[idx] = c
	g.markDirty(idx)
	return nil
}

// UpdateCells applies a batch of writes, stopping at the first invalid
// coordinate.
func (g *Grid) UpdateCells(updates []CellUpdate) error {
	for _, u := range updates {
		if err := g.UpdateCell(u.X, u.Y, u.Cell); err != nil {
			return err
		}
	}
	return nil
}

// Clear writes every cell to (space glyph, fg, bg) (§6.2 clear(bg)).
// spaceID is the resolved glyph id for the active atlas's space
// character — callers obtain it from their glyphsource.Source.
func (g *Grid) Clear(spaceID cell.GlyphID, fg, bg cell.RGB) {
	blank := cell.Cell{Glyph: spaceID, Fg: fg, Bg: bg}
	for i := range g.cells {
		g.cells[i] = blank
	}
	g.markAllDirty()
}

func (g *Grid) markDirty(idx int) {
	if g.dirtyMin == -1 {
		g.dirtyMin, g.dirtyMax = idx, idx+1
		return
	}
	if idx < g.dirtyMin {
		g.dirtyMin = idx
	}
	if idx+1 > g.dirtyMax {
		g.dirtyMax = idx + 1
	}
}

func (g *Grid) markAllDirty() {
	if len(g.cells) == 0 {
		g.dirtyMin, g.dirtyMax = -1, -1
		return
	}
	g.dirtyMin, g.dirtyMax = 0, len(g.cells)
}

// Flush uploads the dirty range to the GPU buffer, or the whole buffer if
// the dirty range exceeds fullUploadThreshold of the grid (§6.2 flush()).
func (g *Grid) Flush() {
	if g.dirtyMin == -1 {
		return
	}

	dirtyCount := g.dirtyMax - g.dirtyMin
	first, count := g.dirtyMin, dirtyCount
	if float64(dirtyCount) > fullUploadThreshold*float64(len(g.cells)) {
		first, count = 0, len(g.cells)
	}

	// The GPU instance buffer uses the wider uvec3 layout (cell.GPUInstanceSize),
	// not the compact §3.2 wire record — see cell.EncodeGPU.
	buf := make([]byte, count*cell.GPUInstanceSize)
	for i := 0; i < count; i++ {
		g.cells[first+i].EncodeGPU(buf[i*cell.GPUInstanceSize : (i+1)*cell.GPUInstanceSize])
	}
	g.res.UpdateCellData(first, buf)

	g.dirtyMin, g.dirtyMax = -1, -1
}

// RenderFrame flushes pending cell writes and issues the draw call
// (§6.2 render_frame()).
func (g *Grid) RenderFrame() {
	g.Flush()
	g.res.Draw()
}
