package cell_test

import (
	"testing"

	"github.com/cellgl/cellgl/cell"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {

	c := cell.Cell{
		Glyph: cell.Compose('h', cell.StyleNormal),
		Fg:    cell.RGB{R: 0xFF, G: 0xFF, B: 0xFF},
		Bg:    cell.RGB{R: 0x00, G: 0x00, B: 0x00},
	}

	buf := make([]byte, cell.Size)
	c.Encode(buf)

	got := cell.Decode(buf)
	Check(t, c, got)
}

func TestByteOffset(t *testing.T) {

	// Hello scenario (spec §8): cell (x,y) lives at byte 8*(y*cols+x).
	Check(t, 0, cell.ByteOffset(0, 0, 10))
	Check(t, 8, cell.ByteOffset(1, 0, 10))
	Check(t, 80, cell.ByteOffset(0, 1, 10))
	Check(t, 88, cell.ByteOffset(1, 1, 10))
}
