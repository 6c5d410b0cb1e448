package dynatlas

import (
	"image"
	"image/draw"

	"github.com/cellgl/cellgl/gllog"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// rasterize.go implements the host-canvas rasterization step of §4.3
// step 3 using image.RGBA plus golang.org/x/image/font.Drawer, one
// grapheme at a time.

// rasterizeGrapheme draws grapheme into an RGBA buffer cellW (or 2*cellW
// for wide graphemes) by cellH pixels. The background is left fully
// transparent; the fragment shader alpha-blends the glyph's coverage with
// the cell's foreground color (§4.5), except for color-emoji glyphs which
// the caller samples as RGB directly.
func rasterizeGrapheme(fs *FontStack, grapheme string, cellW, cellH int, wide bool) []byte {

	widthPx := cellW
	if wide {
		widthPx = cellW * 2
	}

	img := image.NewRGBA(image.Rect(0, 0, widthPx, cellH))
	draw.Draw(img, img.Bounds(), image.Transparent, image.Point{}, draw.Src)

	r := firstRune(grapheme)
	if r == 0 {
		gllog.Warn("dynatlas: empty grapheme rasterized to blank cell", "grapheme", grapheme)
		return img.Pix
	}

	face := fs.faceFor(r)
	m := face.Metrics()

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(0, m.Ascent.Ceil()),
	}
	drawer.DrawString(grapheme)

	return img.Pix
}
