package dynatlas

import (
	"fmt"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// FontStack is a caller-supplied, ordered list of font families plus a
// fixed rasterization size (§6.3 Dynamic(font_family_list, font_size_px)).
// Resolution tries each family in turn and uses the first that defines
// the requested rune.
type FontStack struct {
	fonts  []*truetype.Font
	faces  []font.Face
	sizePx float64
}

// NewFontStack parses each font file's raw bytes and builds a fixed-size
// face for each. fontData must contain at least one entry; the first
// (primary) entry acts as the stack's fallback for runes no family
// defines.
func NewFontStack(fontData [][]byte, sizePx float64) (*FontStack, error) {

	if len(fontData) == 0 {
		return nil, fmt.Errorf("dynatlas: at least one font family is required")
	}

	fs := &FontStack{sizePx: sizePx}
	opts := &truetype.Options{Size: sizePx, DPI: 72, Hinting: font.HintingFull}

	for i, data := range fontData {
		f, err := truetype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("dynatlas: parsing font family %d: %w", i, err)
		}
		fs.fonts = append(fs.fonts, f)
		fs.faces = append(fs.faces, truetype.NewFace(f, opts))
	}

	return fs, nil
}

// faceFor returns the face of the first family that defines r, falling
// back to the primary (first) family's face if none do.
func (fs *FontStack) faceFor(r rune) font.Face {
	for i, f := range fs.fonts {
		if f.Index(r) != 0 {
			return fs.faces[i]
		}
	}
	return fs.faces[0]
}

// cellMetrics derives a fixed monospace cell size in pixels from the
// primary family's advance width and line height.
func (fs *FontStack) cellMetrics() (cellW, cellH int) {

	face := fs.faces[0]

	advFixed, ok := face.GlyphAdvance('M')
	if !ok {
		advFixed = fixed.I(int(fs.sizePx))
	}

	m := face.Metrics()
	return advFixed.Ceil(), m.Height.Ceil()
}

// lineMetricFractions derives the underline/strikethrough line placement from the
// primary family's face metrics, expressed as fractions of cell height
// (§3.4 Metrics).
func (fs *FontStack) lineMetricFractions() (underlinePos, underlineThickness, strikePos, strikeThickness float32) {

	m := fs.faces[0].Metrics()
	height := float32(m.Height.Ceil())
	if height <= 0 {
		return 0.85, 0.08, 0.5, 0.08
	}

	ascent := float32(m.Ascent.Ceil())
	underlinePos = (ascent + float32(m.Descent.Ceil())*0.5) / height
	underlineThickness = 0.08
	strikePos = ascent * 0.55 / height
	strikeThickness = 0.08
	return
}
