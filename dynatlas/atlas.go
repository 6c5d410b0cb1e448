// Package dynatlas implements the Dynamic Atlas component (§3.5, §4.3):
// a glyph cache that rasterizes graphemes on demand into a fixed
// 4096-slot texture-array index space and evicts least-recently-used
// entries once a region fills. It implements the same Glyph Source
// contract as package atlas's Static, so the Terminal Facade can swap
// between them without caring which is active.
package dynatlas

import (
	"github.com/cellgl/cellgl/cell"
	"github.com/cellgl/cellgl/glyphsource"
	"github.com/cellgl/cellgl/style"
)

// DynamicAtlas caches rasterized glyphs behind an LRU eviction policy
// (§4.3). It is not safe for concurrent use — like every component in
// this module, callers run it from a single thread per frame (§5).
type DynamicAtlas struct {
	fonts        *FontStack
	cellW, cellH int
	slots        *slotTable
	pending      []glyphsource.Upload
	metrics      glyphsource.LineMetrics
}

var _ glyphsource.Source = (*DynamicAtlas)(nil)

// New builds a dynamic atlas over fontData (an ordered font-family
// fallback list, each entry the raw bytes of a TTF/OTF file) rasterized
// at sizePx (§6.3 Dynamic(font_family_list, font_size_px)). The cell's
// pixel dimensions are derived from the primary family's metrics at that
// size. The printable ASCII range is preloaded immediately in Normal
// style (§4.3 "Preload"); the returned atlas's first Commit drains those
// uploads.
func New(fontData [][]byte, sizePx float64) (*DynamicAtlas, error) {

	fs, err := NewFontStack(fontData, sizePx)
	if err != nil {
		return nil, err
	}

	cellW, cellH := fs.cellMetrics()
	up, ut, sp, st := fs.lineMetricFractions()

	d := &DynamicAtlas{
		fonts: fs,
		cellW: cellW,
		cellH: cellH,
		slots: newSlotTable(),
		metrics: glyphsource.LineMetrics{
			UnderlinePos:           up,
			UnderlineThickness:     ut,
			StrikethroughPos:       sp,
			StrikethroughThickness: st,
		},
	}

	d.preloadASCII()
	return d, nil
}

func (d *DynamicAtlas) preloadASCII() {
	for c := byte(0x20); c <= 0x7E; c++ {
		slot := int(c) - 0x20
		pixels := rasterizeGrapheme(d.fonts, string(rune(c)), d.cellW, d.cellH, false)
		d.pending = append(d.pending, glyphsource.Upload{
			FirstSlot: slot,
			Width:     d.cellW,
			Height:    d.cellH,
			Pixels:    pixels,
		})
	}
}

func isAsciiPrintable(grapheme string) bool {
	return len(grapheme) == 1 && grapheme[0] >= 0x20 && grapheme[0] <= 0x7E
}

// Resolve implements glyphsource.Source (§4.3 admission algorithm):
// plain-style ASCII resolves arithmetically against the permanent region;
// everything else is looked up in, or admitted into, the LRU-managed
// Normal or Wide region depending on display width.
func (d *DynamicAtlas) Resolve(grapheme string, st style.Style) cell.GlyphID {

	base := st.Base()

	if base == cell.StyleNormal && isAsciiPrintable(grapheme) {
		// The permanent region is a flat slot space (§3.5), not the
		// static atlas's style-composed index (§3.1/P2): slot = codepoint
		// - 0x20, matching preloadASCII's upload placement exactly, so
		// space lands on slot 0 as §4.3 "Preload" requires.
		return st.ApplyDecorations(cell.GlyphID(grapheme[0] - 0x20))
	}

	key := slotKey{grapheme: grapheme, style: base}

	if e, ok := d.slots.lookup(key); ok {
		d.slots.touch(e)
		return st.ApplyDecorations(d.composeID(e))
	}

	wide := IsWide(grapheme)

	var entry *slotEntry
	if wide {
		entry, _, _ = d.slots.admitWide(key)
	} else {
		entry, _, _ = d.slots.admitNormal(key)
	}
	entry.colorGlyf = wide && IsColorEmoji(grapheme)

	pixels := rasterizeGrapheme(d.fonts, grapheme, d.cellW, d.cellH, wide)
	d.queueUpload(entry, pixels, wide)

	return st.ApplyDecorations(d.composeID(entry))
}

// RequeueAll re-queues a texture upload for the permanent ASCII region
// plus every slot currently backing a live (grapheme, style) mapping.
// Used after a GPU context-loss rebuild (§4.4/§9): the texture array
// comes back empty, but the slot table's mappings survive in host
// memory, so every previously-resolved glyph must be re-rasterized into
// the fresh texture instead of silently rendering blank.
func (d *DynamicAtlas) RequeueAll() {
	d.preloadASCII()
	for key, e := range d.slots.entries {
		pixels := rasterizeGrapheme(d.fonts, key.grapheme, d.cellW, d.cellH, e.wide)
		d.queueUpload(e, pixels, e.wide)
	}
}

func (d *DynamicAtlas) composeID(e *slotEntry) cell.GlyphID {
	id := cell.GlyphID(e.slot)
	if e.colorGlyf {
		id |= cell.EmojiBit
	}
	return id
}

func (d *DynamicAtlas) queueUpload(e *slotEntry, pixels []byte, wide bool) {

	if !wide {
		d.pending = append(d.pending, glyphsource.Upload{
			FirstSlot: e.slot,
			Width:     d.cellW,
			Height:    d.cellH,
			Pixels:    pixels,
		})
		return
	}

	left, right := splitWidePixels(pixels, d.cellW, d.cellH)
	d.pending = append(d.pending,
		glyphsource.Upload{FirstSlot: e.slot, Width: d.cellW, Height: d.cellH, Pixels: left},
		glyphsource.Upload{FirstSlot: e.slot + 1, Width: d.cellW, Height: d.cellH, Pixels: right},
	)
}

// splitWidePixels splits a 2*cellW-wide RGBA buffer into its left and
// right cellW-wide halves, each still row-major RGBA8.
func splitWidePixels(pixels []byte, cellW, cellH int) (left, right []byte) {

	const bpp = 4
	fullStride := 2 * cellW * bpp
	halfStride := cellW * bpp

	left = make([]byte, cellH*halfStride)
	right = make([]byte, cellH*halfStride)

	for row := 0; row < cellH; row++ {
		srcRow := pixels[row*fullStride : (row+1)*fullStride]
		copy(left[row*halfStride:(row+1)*halfStride], srcRow[:halfStride])
		copy(right[row*halfStride:(row+1)*halfStride], srcRow[halfStride:])
	}

	return left, right
}

// WideRightID returns the GlyphID of the right half of a wide pair whose
// left half resolved to leftID, preserving leftID's decoration bits.
func WideRightID(leftID cell.GlyphID) cell.GlyphID {
	return leftID + 1
}

// Commit implements glyphsource.Source: it drains every upload queued by
// Resolve calls since the previous Commit.
func (d *DynamicAtlas) Commit(queue []glyphsource.Upload) []glyphsource.Upload {
	queue = append(queue, d.pending...)
	d.pending = d.pending[:0]
	return queue
}

func (d *DynamicAtlas) TextureDims() (width, height, layers int) {
	const totalSlots = 4096
	width = int(cell.SlotsPerLayer) * (d.cellW + 2)
	height = d.cellH + 2
	layers = (totalSlots + int(cell.SlotsPerLayer) - 1) / int(cell.SlotsPerLayer)
	return
}

func (d *DynamicAtlas) CellSize() (w, h int) { return d.cellW, d.cellH }

func (d *DynamicAtlas) AtlasMask() cell.GlyphID { return cell.DynamicAtlasMask }

func (d *DynamicAtlas) LineMetrics() glyphsource.LineMetrics { return d.metrics }
