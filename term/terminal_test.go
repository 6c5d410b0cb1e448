package term

import (
	"testing"

	"github.com/cellgl/cellgl/atlas"
	"github.com/cellgl/cellgl/cell"
	"github.com/cellgl/cellgl/glyphsource"
	"github.com/cellgl/cellgl/style"
)

func buildMiniAtlas() *atlas.Data {

	const cw, ch = 8, 16
	texW, texH, layers := 32*(cw+2), 1*(ch+2), 1
	pixels := make([]byte, texW*texH*layers*4)

	glyphs := []atlas.GlyphRecord{
		{ID: cell.Compose(' ', cell.StyleNormal), Style: cell.StyleNormal, Symbol: " "},
		{ID: cell.Compose('A', cell.StyleNormal), Style: cell.StyleNormal, Symbol: "A"},
	}

	return atlas.New("mini", 12.0, cw, ch, texW, texH, layers, glyphsource.LineMetrics{}, glyphs, pixels)
}

// The static atlas's built-in fallback-to-space means ResolveStrict never
// surfaces AtlasCapacityExceededError when a space glyph is defined.
func TestResolveStrictFallsBackToSpace(t *testing.T) {

	term := &Terminal{src: atlas.NewStatic(buildMiniAtlas())}

	id, err := term.ResolveStrict("中", style.Style{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	Check(t, cell.Compose(' ', cell.StyleNormal), id)
}

// An atlas with no fallback surfaces AtlasCapacityExceededError for an
// unresolvable grapheme instead of silently drawing glyph 0 (§7).
func TestResolveStrictSurfacesCapacityExceeded(t *testing.T) {

	const cw, ch = 8, 16
	texW, texH, layers := 32*(cw+2), 1*(ch+2), 1
	pixels := make([]byte, texW*texH*layers*4)

	// No space glyph defined: no fallback exists.
	glyphs := []atlas.GlyphRecord{
		{ID: cell.Compose('A', cell.StyleNormal), Style: cell.StyleNormal, Symbol: "A"},
	}
	data := atlas.New("mini", 12.0, cw, ch, texW, texH, layers, glyphsource.LineMetrics{}, glyphs, pixels)

	term := &Terminal{src: atlas.NewStatic(data)}

	_, err := term.ResolveStrict("中", style.Style{})
	if _, ok := err.(*AtlasCapacityExceededError); !ok {
		t.Fatalf("expected AtlasCapacityExceededError, got %v", err)
	}
}

func TestResolveStrictASCIIDirect(t *testing.T) {

	term := &Terminal{src: atlas.NewStatic(buildMiniAtlas())}

	id, err := term.ResolveStrict("A", style.Style{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	Check(t, cell.Compose('A', cell.StyleNormal), id)
}
