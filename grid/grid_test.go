package grid_test

import (
	"testing"

	"github.com/cellgl/cellgl/cell"
	"github.com/cellgl/cellgl/glyphsource"
	"github.com/cellgl/cellgl/grid"
	"github.com/cellgl/cellgl/style"
)

func Check[T comparable](t *testing.T, expected, got T) {
	if got != expected {
		t.Fatalf("Expected %v but got %v\n", expected, got)
	}
}

type updateCall struct {
	first int
	data  []byte
}

type fakeRenderer struct {
	resizeCalls []struct{ cols, rows int }
	updates     []updateCall
	draws       int
}

func (f *fakeRenderer) ResizeGrid(cols, rows int) {
	f.resizeCalls = append(f.resizeCalls, struct{ cols, rows int }{cols, rows})
}

func (f *fakeRenderer) UpdateCellData(firstCell int, data []byte) {
	cp := append([]byte(nil), data...)
	f.updates = append(f.updates, updateCall{first: firstCell, data: cp})
}

func (f *fakeRenderer) Draw() {
	f.draws++
}

// stubSource resolves ASCII graphemes by direct bit composition and
// never produces uploads, enough to exercise Grid/Batch without a real
// atlas or font.
type stubSource struct{}

func (stubSource) Resolve(grapheme string, s style.Style) cell.GlyphID {
	if len(grapheme) == 1 {
		return s.ApplyDecorations(cell.Compose(grapheme[0], s.Base()))
	}
	return 0
}
func (stubSource) Commit(q []glyphsource.Upload) []glyphsource.Upload { return q }
func (stubSource) TextureDims() (int, int, int)                       { return 32 * 10, 10, 1 }
func (stubSource) CellSize() (int, int)                               { return 8, 16 }
func (stubSource) AtlasMask() cell.GlyphID                            { return cell.StaticAtlasMask }
func (stubSource) LineMetrics() glyphsource.LineMetrics               { return glyphsource.LineMetrics{} }

var _ glyphsource.Source = stubSource{}

// Scenario 1 ("Hello"): grid 10x1, clear(black), text("hello", white on
// black); cells 0..4 hold the letters, cells 5..9 remain space.
func TestHelloScenario(t *testing.T) {

	r := &fakeRenderer{}
	g := grid.New(r, 10, 1)
	b := grid.NewBatch(g, stubSource{})

	white := cell.RGB{R: 0xFF, G: 0xFF, B: 0xFF}
	black := cell.RGB{}

	b.Clear(black)
	if err := b.Text(0, 0, "hello", grid.TextStyle{Fg: white, Bg: black}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b.Flush()

	want := "hello"
	for i, ch := range want {
		id, err := cellAt(g, i, 0)
		if err != nil {
			t.Fatalf("cellAt: %v", err)
		}
		Check(t, cell.Compose(byte(ch), cell.StyleNormal), id.Glyph)
		Check(t, white, id.Fg)
		Check(t, black, id.Bg)
	}

	for x := 5; x < 10; x++ {
		id, err := cellAt(g, x, 0)
		if err != nil {
			t.Fatalf("cellAt: %v", err)
		}
		Check(t, cell.Compose(' ', cell.StyleNormal), id.Glyph)
	}

	if len(r.updates) == 0 {
		t.Fatalf("expected at least one GPU update")
	}
	if r.draws != 0 {
		t.Fatalf("Flush should not issue a draw call, got %d", r.draws)
	}
}

func cellAt(g *grid.Grid, x, y int) (cell.Cell, error) {
	return g.CellAt(x, y)
}

// Scenario 2 ("Resize shrink"): shrinking the grid drops out-of-range
// cells and the new cell buffer starts fully dirty.
func TestResizeShrink(t *testing.T) {

	r := &fakeRenderer{}
	g := grid.New(r, 10, 1)
	b := grid.NewBatch(g, stubSource{})

	b.Clear(cell.RGB{})
	b.Text(0, 0, "hello", grid.TextStyle{})
	b.Flush()

	g.Resize(3, 1)
	Check(t, 3, g.Cols())
	Check(t, 1, g.Rows())

	id, err := g.CellAt(0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	Check(t, cell.GlyphID(0), id.Glyph)

	if _, err := g.CellAt(3, 0); err == nil {
		t.Fatalf("expected InvalidCoordinateError for the shrunk-away column")
	}
}

// P6: resizing to the same dimensions twice in a row is idempotent —
// the grid ends up in the same (empty) state either way.
func TestResizeIdempotent(t *testing.T) {

	r := &fakeRenderer{}
	g := grid.New(r, 4, 2)
	g.Resize(4, 2)
	g.Resize(4, 2)

	Check(t, 4, g.Cols())
	Check(t, 2, g.Rows())
	Check(t, 3, len(r.resizeCalls))
}

// Flushing a small dirty range after a prior full upload re-uploads only
// the dirty sub-range, not the whole buffer.
func TestFlushUsesDirtySubrangeUnderThreshold(t *testing.T) {

	r := &fakeRenderer{}
	g := grid.New(r, 100, 1)
	g.Flush() // drain the initial full-grid dirty mark from New/Resize

	if err := g.UpdateCell(5, 0, cell.Cell{Glyph: 42}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g.Flush()

	last := r.updates[len(r.updates)-1]
	Check(t, 5, last.first)
	Check(t, cell.GPUInstanceSize, len(last.data))
}

// Exceeding the dirty-range threshold falls back to a full-buffer upload.
func TestFlushFallsBackToFullBufferOverThreshold(t *testing.T) {

	r := &fakeRenderer{}
	g := grid.New(r, 10, 1)
	g.Flush()

	if err := g.UpdateCell(0, 0, cell.Cell{Glyph: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.UpdateCell(9, 0, cell.Cell{Glyph: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g.Flush()

	last := r.updates[len(r.updates)-1]
	Check(t, 0, last.first)
	Check(t, 10*cell.GPUInstanceSize, len(last.data))
}

func TestUpdateCellOutOfRange(t *testing.T) {
	r := &fakeRenderer{}
	g := grid.New(r, 5, 5)

	err := g.UpdateCell(5, 0, cell.Cell{})
	if _, ok := err.(*grid.InvalidCoordinateError); !ok {
		t.Fatalf("expected InvalidCoordinateError, got %v", err)
	}
}
