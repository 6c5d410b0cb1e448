package dynatlas

import (
	"testing"

	"github.com/cellgl/cellgl/cell"
)

func TestSplitWidePixels(t *testing.T) {

	const cw, ch = 2, 2
	// 2*cw x ch RGBA buffer, byte value == linear pixel index for
	// traceability.
	pixels := make([]byte, 2*cw*ch*4)
	for i := range pixels {
		pixels[i] = byte(i)
	}

	left, right := splitWidePixels(pixels, cw, ch)
	Check(t, cw*ch*4, len(left))
	Check(t, cw*ch*4, len(right))

	// Row 0 of the source is [left px0][left px1][right px0][right px1].
	wantLeftRow0 := pixels[0 : cw*4]
	wantRightRow0 := pixels[cw*4 : 2*cw*4]

	for i, b := range wantLeftRow0 {
		if left[i] != b {
			t.Fatalf("left row 0 byte %d: got %d want %d", i, left[i], b)
		}
	}
	for i, b := range wantRightRow0 {
		if right[i] != b {
			t.Fatalf("right row 0 byte %d: got %d want %d", i, right[i], b)
		}
	}
}

func TestComposeIDAndWideRightID(t *testing.T) {

	e := &slotEntry{slot: WideSlotStart, colorGlyf: true}
	d := &DynamicAtlas{}

	leftID := d.composeID(e)
	if leftID&cell.EmojiBit == 0 {
		t.Fatalf("expected emoji bit set for color glyph")
	}
	Check(t, cell.GlyphID(WideSlotStart)|cell.EmojiBit, leftID)

	rightID := WideRightID(leftID)
	Check(t, leftID+1, rightID)
	if rightID&cell.EmojiBit == 0 {
		t.Fatalf("expected right half to retain emoji bit")
	}
}

func TestComposeIDMonochrome(t *testing.T) {

	e := &slotEntry{slot: 200, colorGlyf: false}
	d := &DynamicAtlas{}

	id := d.composeID(e)
	Check(t, cell.GlyphID(200), id)
}

func TestTextureDimsCoverAllSlots(t *testing.T) {

	d := &DynamicAtlas{cellW: 8, cellH: 16}
	width, height, layers := d.TextureDims()

	Check(t, 32*(8+2), width)
	Check(t, 16+2, height)
	Check(t, 128, layers)
	if layers*32 < 4096 {
		t.Fatalf("texture layers too small to cover 4096 slots: %d", layers*32)
	}
}
