package atlas_test

import (
	"testing"

	"github.com/cellgl/cellgl/atlas"
	"github.com/cellgl/cellgl/cell"
	"github.com/cellgl/cellgl/glyphsource"
)

// buildMiniAtlas constructs a minimal 2-glyph, 1-layer atlas, matching
// scenario 6 from spec §8.
func buildMiniAtlas() *atlas.Data {

	const cw, ch = 8, 16
	texW, texH, layers := 32*(cw+2), 1*(ch+2), 1

	pixels := make([]byte, texW*texH*layers*4)
	for i := range pixels {
		pixels[i] = byte(i % 251)
	}

	glyphs := []atlas.GlyphRecord{
		{ID: cell.Compose(' ', cell.StyleNormal), Style: cell.StyleNormal, Symbol: " ", PixelX: 0, PixelY: 0},
		{ID: cell.Compose('A', cell.StyleNormal), Style: cell.StyleNormal, Symbol: "A", PixelX: int32(cw + 2), PixelY: 0},
	}

	metrics := glyphsource.LineMetrics{
		UnderlinePos:           0.8,
		UnderlineThickness:     0.05,
		StrikethroughPos:       0.5,
		StrikethroughThickness: 0.05,
	}

	return atlas.New("mini", 12.0, cw, ch, texW, texH, layers, metrics, glyphs, pixels)
}

func TestAtlasRoundTrip(t *testing.T) {

	orig := buildMiniAtlas()

	encoded := atlas.Encode(orig)
	decoded, err := atlas.Decode(encoded)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if decoded.FontName != orig.FontName {
		t.Fatalf("font name mismatch: %q != %q", decoded.FontName, orig.FontName)
	}
	if decoded.FontSize != orig.FontSize {
		t.Fatalf("font size mismatch")
	}

	gotW, gotH, gotL := decoded.TextureDims()
	wantW, wantH, wantL := orig.TextureDims()
	if gotW != wantW || gotH != wantH || gotL != wantL {
		t.Fatalf("texture dims mismatch: got (%d,%d,%d) want (%d,%d,%d)", gotW, gotH, gotL, wantW, wantH, wantL)
	}

	if decoded.LineMetrics() != orig.LineMetrics() {
		t.Fatalf("line metrics mismatch")
	}

	gotGlyphs := decoded.GlyphIter()
	wantGlyphs := orig.GlyphIter()
	if len(gotGlyphs) != len(wantGlyphs) {
		t.Fatalf("glyph count mismatch: %d != %d", len(gotGlyphs), len(wantGlyphs))
	}
	for i := range wantGlyphs {
		if gotGlyphs[i] != wantGlyphs[i] {
			t.Fatalf("glyph %d mismatch: got %+v want %+v", i, gotGlyphs[i], wantGlyphs[i])
		}
	}

	if len(decoded.Pixels) != len(orig.Pixels) {
		t.Fatalf("pixel buffer length mismatch")
	}
	for i := range orig.Pixels {
		if decoded.Pixels[i] != orig.Pixels[i] {
			t.Fatalf("pixel buffer mismatch at byte %d", i)
		}
	}
}

func TestDecodeInvalidMagic(t *testing.T) {

	_, err := atlas.Decode([]byte{0, 0, 0, 0, 1})
	de, ok := err.(*atlas.DecodeError)
	if !ok || de.Reason != atlas.ReasonInvalidMagic {
		t.Fatalf("expected InvalidMagic, got %v", err)
	}
}

func TestDecodeUnsupportedVersion(t *testing.T) {

	raw := append(append([]byte{}, atlas.Magic[:]...), 0x99)
	_, err := atlas.Decode(raw)
	de, ok := err.(*atlas.DecodeError)
	if !ok || de.Reason != atlas.ReasonUnsupportedVersion {
		t.Fatalf("expected UnsupportedVersion, got %v", err)
	}
}

func TestDecodeTruncated(t *testing.T) {

	orig := buildMiniAtlas()
	encoded := atlas.Encode(orig)

	_, err := atlas.Decode(encoded[:len(encoded)-10])
	de, ok := err.(*atlas.DecodeError)
	if !ok || de.Reason != atlas.ReasonTruncatedSection {
		t.Fatalf("expected TruncatedSection, got %v", err)
	}
}

func TestStaticResolveASCII(t *testing.T) {

	orig := buildMiniAtlas()
	s := atlas.NewStatic(orig)

	id, err := s.TryResolve("A", styleNormal())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != cell.Compose('A', cell.StyleNormal) {
		t.Fatalf("expected direct bit composition for ASCII, got %v", id)
	}
}

func TestStaticResolveUnknownFallsBackToSpace(t *testing.T) {

	orig := buildMiniAtlas()
	s := atlas.NewStatic(orig)

	id, err := s.TryResolve("中", styleNormal())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != cell.Compose(' ', cell.StyleNormal) {
		t.Fatalf("expected fallback to space glyph, got %v", id)
	}
}
