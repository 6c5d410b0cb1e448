// Package atlas implements the font-atlas data model (§3.4): an immutable,
// in-memory representation of a pre-rasterized glyph texture array, its
// binary (de)serialization (§6.2), and the Static adapter that
// exposes it through the Glyph Source contract (§4.2).
package atlas

import (
	"github.com/cellgl/cellgl/cell"
	"github.com/cellgl/cellgl/glyphsource"
)

// GlyphRecord is one glyph's placement metadata (§3.4).
type GlyphRecord struct {
	ID      cell.GlyphID
	Style   cell.Style
	IsEmoji bool
	// PixelX/PixelY is the glyph's top-left texel position within its
	// layer (not used for addressing at draw time — that's computed
	// arithmetically from ID — but needed to reproduce the source pixels
	// byte-for-byte on round trip, §8 P5).
	PixelX, PixelY int32
	Symbol         string
}

// Data is the immutable atlas value described by §3.4. Construct it via
// Decode (§6.2); there is no live mutation path — a new Data value
// replaces the old one wholesale on atlas swap (§9 "Cyclic ownership").
type Data struct {
	FontName string
	FontSize float32

	CellW, CellH int
	TexWidth     int
	TexHeight    int
	TexLayers    int

	Metrics glyphsource.LineMetrics

	Glyphs []GlyphRecord

	// Pixels is the decompressed RGBA8 texture payload, row-major, all
	// layers concatenated (§6.2).
	Pixels []byte

	// symbolIndex maps non-ASCII grapheme strings to their glyph ID,
	// built once at construction time for O(1) expected lookup (§4.1).
	symbolIndex map[string]cell.GlyphID

	// fallbackID/hasFallback implement "unknown symbols resolve to a
	// designated fallback ID" (§4.1) while still letting
	// AtlasCapacityExceeded be reachable when no fallback exists (§7).
	fallbackID  cell.GlyphID
	hasFallback bool
}

// New builds a Data value from decoded parts and indexes it. Called by
// Decode after parsing the binary format (§6.2).
func New(fontName string, fontSize float32, cellW, cellH, texW, texH, texLayers int, metrics glyphsource.LineMetrics, glyphs []GlyphRecord, pixels []byte) *Data {

	d := &Data{
		FontName:  fontName,
		FontSize:  fontSize,
		CellW:     cellW,
		CellH:     cellH,
		TexWidth:  texW,
		TexHeight: texH,
		TexLayers: texLayers,
		Metrics:   metrics,
		Glyphs:    glyphs,
		Pixels:    pixels,
	}
	d.reindex()
	return d
}

func (d *Data) reindex() {

	d.symbolIndex = make(map[string]cell.GlyphID, len(d.Glyphs))
	for _, g := range d.Glyphs {

		if g.Symbol == " " && g.Style == cell.StyleNormal {
			d.fallbackID = g.ID
			d.hasFallback = true
		}

		// ASCII single-rune symbols are resolved by direct bit
		// composition (§4.1/P2) and never need a hash entry.
		if len(g.Symbol) == 1 && g.Symbol[0] >= 0x20 && g.Symbol[0] <= 0x7E && !g.IsEmoji {
			continue
		}

		d.symbolIndex[symbolKey(g.Symbol, g.Style)] = g.ID
	}

	// No implicit fallback is synthesized: an atlas that never lists an
	// explicit Normal-style space glyph has no fallback, and resolving an
	// unknown grapheme against it surfaces atlas.ErrCapacityExceeded (§7).
}

func symbolKey(symbol string, s cell.Style) string {
	return string(rune(s)) + symbol
}

// CellSize returns the unpadded glyph cell size in pixels (§3.4).
func (d *Data) CellSize() (w, h int) { return d.CellW, d.CellH }

// TextureDims returns the texture array dimensions (§3.4):
// width = 32*(cw+2), height = 1*(ch+2), layers = ceil(max_index/32).
func (d *Data) TextureDims() (width, height, layers int) {
	return d.TexWidth, d.TexHeight, d.TexLayers
}

// LineMetrics returns the underline/strikethrough placement fractions.
func (d *Data) LineMetrics() glyphsource.LineMetrics { return d.Metrics }

// GlyphIter returns every glyph record (§4.1 glyph_iter()).
func (d *Data) GlyphIter() []GlyphRecord { return d.Glyphs }

// SymbolToID resolves a grapheme+style pair to a GlyphID. ASCII runs in
// O(1) via direct bit composition; everything else is an O(1)-expected
// hash lookup. ok is false only when the grapheme is unknown AND no
// fallback is defined, surfaced by callers as AtlasCapacityExceeded (§7).
func (d *Data) SymbolToID(symbol string, s cell.Style) (id cell.GlyphID, ok bool) {

	if len(symbol) == 1 && symbol[0] >= 0x20 && symbol[0] <= 0x7E {
		return cell.Compose(symbol[0], s), true
	}

	if id, found := d.symbolIndex[symbolKey(symbol, s)]; found {
		return id, true
	}

	if d.hasFallback {
		return d.fallbackID, true
	}

	return 0, false
}
