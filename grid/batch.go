package grid

import (
	"github.com/cellgl/cellgl/cell"
	"github.com/cellgl/cellgl/dynatlas"
	"github.com/cellgl/cellgl/glyphsource"
	"github.com/cellgl/cellgl/style"
)

// TextStyle bundles the style flags and the two cell colors a run of text
// is drawn with (§6.3's `style_struct`): one parameter instead of four,
// matching `text(x,y,str,style_struct)`.
type TextStyle struct {
	style.Style
	Fg, Bg cell.RGB
}

// Batch is the accumulator callers build one frame through (§6.3):
// clear/text/cell write directly into the backing Grid; Flush hands the
// dirty range to the GPU.
type Batch struct {
	grid *Grid
	src  glyphsource.Source
}

// NewBatch returns an accumulator over g, resolving graphemes against src.
func NewBatch(g *Grid, src glyphsource.Source) *Batch {
	return &Batch{grid: g, src: src}
}

// Clear writes every cell to the space glyph with the given background
// (§6.3 clear(bg)).
func (b *Batch) Clear(bg cell.RGB) {
	spaceID := b.src.Resolve(" ", style.Style{})
	b.grid.Clear(spaceID, cell.RGB{}, bg)
}

// Cell writes one cell directly from an already-resolved glyph id
// (§6.3 cell(x,y,glyph_id,fg,bg)).
func (b *Batch) Cell(x, y int, id cell.GlyphID, fg, bg cell.RGB) error {
	return b.grid.UpdateCell(x, y, cell.Cell{Glyph: id, Fg: fg, Bg: bg})
}

// Text resolves and writes each rune of text as its own grapheme starting
// at (x,y), advancing two columns for wide graphemes and writing their
// right-half companion id into the following cell (§6.3
// text(x,y,str,style_struct); §8 scenario 4 "Emoji pair"). Multi-rune
// graphemes (combining marks, ZWJ sequences) are not segmented: each rune
// takes its own cell.
func (b *Batch) Text(x, y int, text string, ts TextStyle) error {

	col := x
	for _, r := range text {
		g := string(r)

		id := b.src.Resolve(g, ts.Style)
		if err := b.Cell(col, y, id, ts.Fg, ts.Bg); err != nil {
			return err
		}

		if dynatlas.IsWide(g) {
			rightID := dynatlas.WideRightID(id)
			if err := b.Cell(col+1, y, rightID, ts.Fg, ts.Bg); err != nil {
				return err
			}
			col += 2
		} else {
			col++
		}
	}

	return nil
}

// Flush applies every accumulated write to the backing grid's GPU buffer
// (§6.3 flush()).
func (b *Batch) Flush() {
	b.grid.Flush()
}
