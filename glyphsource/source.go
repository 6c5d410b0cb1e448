// Package glyphsource defines the capability both the static and the
// dynamic atlas implement (spec §4.2). It is a contract, not a type: a
// sealed pair of implementations rather than an open-ended plugin
// interface, so callers can switch on concrete type where that helps the
// compiler.
package glyphsource

import (
	"github.com/cellgl/cellgl/cell"
	"github.com/cellgl/cellgl/style"
)

// Upload describes one pending texture-array sub-region upload: RGBA
// pixels for the single glyph slot FirstSlot. A wide glyph is queued as
// two uploads, one per half.
type Upload struct {
	FirstSlot int
	// Width/Height are the pixel dimensions of Pixels (cell_w by cell_h).
	Width, Height int
	// Pixels is tightly packed RGBA8, row-major.
	Pixels []byte
}

// LineMetrics carries the underline/strikethrough placement fractions
// from §3.4, each expressed as a fraction of cell height in [0,1].
type LineMetrics struct {
	UnderlinePos        float32
	UnderlineThickness  float32
	StrikethroughPos    float32
	StrikethroughThickness float32
}

// Source is the Glyph Source capability (§4.2). Both atlas.Static and
// dynatlas.DynamicAtlas implement it.
type Source interface {
	// Resolve returns the GlyphID to embed in a cell for the given
	// grapheme and style. It may trigger rasterization (dynamic) or a
	// hash lookup (static, only for non-ASCII input).
	Resolve(grapheme string, s style.Style) cell.GlyphID

	// Commit drains any pending texture-subregion uploads produced since
	// the last Commit into queue, returning the (possibly extended) slice.
	// Always empty for the static atlas.
	Commit(queue []Upload) []Upload

	TextureDims() (width, height, layers int)
	CellSize() (w, h int)
	AtlasMask() cell.GlyphID
	LineMetrics() LineMetrics
}
