package atlas

import (
	"github.com/cellgl/cellgl/cell"
	"github.com/cellgl/cellgl/gllog"
	"github.com/cellgl/cellgl/glyphsource"
	"github.com/cellgl/cellgl/style"
)

// Static adapts a Data value to the Glyph Source contract (§4.2). It never
// rasterizes and never produces uploads — the whole texture array is
// uploaded once, at construction, by the GPU Resources layer.
type Static struct {
	data *Data
}

var _ glyphsource.Source = (*Static)(nil)

// NewStatic wraps d for rendering.
func NewStatic(d *Data) *Static {
	return &Static{data: d}
}

// Data returns the underlying immutable atlas value (e.g. for GPU texture
// upload).
func (s *Static) Data() *Data { return s.data }

// Resolve implements glyphsource.Source. On an unresolvable grapheme with
// no fallback defined it logs and returns GlyphID 0; callers that need the
// AtlasCapacityExceeded error should use TryResolve instead.
func (s *Static) Resolve(grapheme string, st style.Style) cell.GlyphID {
	id, err := s.TryResolve(grapheme, st)
	if err != nil {
		gllog.Warn("atlas: grapheme not in static atlas, falling back to glyph 0", "grapheme", grapheme)
	}
	return st.ApplyDecorations(id)
}

// TryResolve is the error-returning form used by the Terminal Facade to
// surface AtlasCapacityExceeded (§7) instead of silently drawing glyph 0.
func (s *Static) TryResolve(grapheme string, st style.Style) (cell.GlyphID, error) {

	id, ok := s.data.SymbolToID(grapheme, st.Base())
	if !ok {
		return 0, ErrCapacityExceeded
	}
	return id, nil
}

// Commit implements glyphsource.Source: the static atlas never has
// pending uploads.
func (s *Static) Commit(queue []glyphsource.Upload) []glyphsource.Upload {
	return queue
}

func (s *Static) TextureDims() (width, height, layers int) { return s.data.TextureDims() }
func (s *Static) CellSize() (w, h int)                     { return s.data.CellSize() }
func (s *Static) AtlasMask() cell.GlyphID                  { return cell.StaticAtlasMask }
func (s *Static) LineMetrics() glyphsource.LineMetrics     { return s.data.LineMetrics() }
