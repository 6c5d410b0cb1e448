// Package term provides the Terminal Facade (§4.6/§6.3): the public
// construction point that wires a Glyph Source, the GPU Resources, and
// the Grid together, and the one type most callers of this module ever
// touch directly.
package term

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/cellgl/cellgl/atlas"
	"github.com/cellgl/cellgl/cell"
	"github.com/cellgl/cellgl/dynatlas"
	"github.com/cellgl/cellgl/glyphsource"
	"github.com/cellgl/cellgl/gpu"
	"github.com/cellgl/cellgl/grid"
	"github.com/cellgl/cellgl/style"
)

// Terminal is the public entry point: a grid of cells rendered through a
// swappable Glyph Source. Not safe for concurrent use (§5) — every method
// is expected to run on the caller's single render thread.
type Terminal struct {
	res  *gpu.Resources
	loss gpu.LossState

	src glyphsource.Source
	g   *grid.Grid
}

// New builds a Terminal over a cols x rows grid, resolving graphemes
// against the Glyph Source described by src.
func New(cols, rows int, src AtlasSource) (*Terminal, error) {

	res, err := gpu.New()
	if err != nil {
		return nil, ErrResourceUnavailable
	}

	t := &Terminal{res: res}
	if err := t.swapSource(src); err != nil {
		res.Destroy()
		return nil, err
	}

	t.g = grid.New(res, cols, rows)
	return t, nil
}

func buildSource(src AtlasSource) (glyphsource.Source, error) {
	if src.isStatic() {
		data, err := atlas.Decode(src.static)
		if err != nil {
			return nil, err
		}
		return atlas.NewStatic(data), nil
	}
	return dynatlas.New(src.fontData, src.fontSizePx)
}

// swapSource builds a new Glyph Source from src, uploads its texture
// array wholesale (static) or allocates storage and drains its initial
// preload uploads (dynamic), and makes it the active source (§9 "Cyclic
// ownership": the old source's GPU texture is replaced wholesale, never
// patched in place).
func (t *Terminal) swapSource(src AtlasSource) error {

	newSrc, err := buildSource(src)
	if err != nil {
		return err
	}

	texW, texH, texL := newSrc.TextureDims()

	if staticSrc, ok := newSrc.(*atlas.Static); ok {
		t.res.UploadAtlas(texW, texH, texL, staticSrc.Data().Pixels)
	} else {
		t.res.UploadAtlas(texW, texH, texL, nil)
		t.res.CommitUploads(newSrc)
	}

	t.src = newSrc
	return nil
}

// ReplaceAtlasStatic swaps in a pre-baked binary atlas (§6.2) at runtime.
func (t *Terminal) ReplaceAtlasStatic(encodedAtlas []byte) error {
	return t.swapSource(StaticAtlasFrom(encodedAtlas))
}

// ReplaceAtlasDynamic swaps in a dynamic, on-demand rasterizing atlas at
// runtime.
func (t *Terminal) ReplaceAtlasDynamic(fontData [][]byte, fontSizePx float64) error {
	return t.swapSource(DynamicAtlasFrom(fontData, fontSizePx))
}

// Resize changes the terminal's cell grid dimensions (§4.6). Existing
// cell contents do not carry over into the new grid.
func (t *Terminal) Resize(cols, rows int) {
	t.g.Resize(cols, rows)
}

// Batch returns a fresh accumulator over the current grid and Glyph
// Source (§6.3).
func (t *Terminal) Batch() *grid.Batch {
	return grid.NewBatch(t.g, t.src)
}

// ResolveStrict resolves grapheme the way Batch.Text does, but surfaces
// AtlasCapacityExceededError instead of silently drawing glyph 0 when the
// active atlas is Static and has no fallback (§7). It type-switches on
// the sealed Source variants rather than widening the Source interface
// with an error return every implementation would have to support.
func (t *Terminal) ResolveStrict(grapheme string, st style.Style) (cell.GlyphID, error) {
	if s, ok := t.src.(*atlas.Static); ok {
		id, err := s.TryResolve(grapheme, st)
		if err != nil {
			return 0, &AtlasCapacityExceededError{Grapheme: grapheme}
		}
		return st.ApplyDecorations(id), nil
	}
	return t.src.Resolve(grapheme, st), nil
}

// RenderFrame commits any pending glyph-texture uploads, refreshes the
// uniform state, flushes the dirty cell range, and issues the draw call
// (§6.2 render_frame()). It returns ErrContextLost if the GL context is
// currently lost and has not been rebuilt.
func (t *Terminal) RenderFrame(viewportW, viewportH float32) error {

	if t.loss.IsLost() {
		return ErrContextLost
	}

	t.res.CommitUploads(t.src)

	cellW, cellH := t.src.CellSize()
	t.res.SetGridUniforms(gglm.Vec4{Data: [4]float32{float32(cellW), float32(cellH), viewportW, viewportH}})

	lm := t.src.LineMetrics()
	t.res.SetAtlasUniforms(uint32(t.src.AtlasMask()), lm.UnderlinePos, lm.UnderlineThickness, lm.StrikethroughPos, lm.StrikethroughThickness)

	t.g.RenderFrame()
	return nil
}

// NotifyContextLost records that the underlying GL context signaled a
// loss event (§9). The next RenderFrame call after RebuildAfterLoss
// succeeds resumes drawing.
func (t *Terminal) NotifyContextLost() {
	t.loss.MarkLost()
}

// RebuildAfterLoss recreates every GPU object and re-uploads the active
// atlas and grid state, clearing the lost/pending-rebuild flags on
// success (§9).
func (t *Terminal) RebuildAfterLoss() error {
	return t.loss.Rebuild(func() error {
		res, err := gpu.New()
		if err != nil {
			return ErrResourceUnavailable
		}

		texW, texH, texL := t.src.TextureDims()
		if staticSrc, ok := t.src.(*atlas.Static); ok {
			res.UploadAtlas(texW, texH, texL, staticSrc.Data().Pixels)
		} else {
			res.UploadAtlas(texW, texH, texL, nil)
			if dynSrc, ok := t.src.(*dynatlas.DynamicAtlas); ok {
				// The slot table's (grapheme, style) mappings survived
				// the context loss, but the fresh texture array did not
				// (§4.4/§9): re-rasterize every live slot before the
				// first post-rebuild frame draws from it.
				dynSrc.RequeueAll()
			}
			res.CommitUploads(t.src)
		}

		t.res.Destroy()
		t.res = res
		t.g.Rebind(res)
		return nil
	})
}

// CellSize returns the active atlas's cell pixel dimensions.
func (t *Terminal) CellSize() (w, h int) { return t.src.CellSize() }

// TerminalSize returns the current grid dimensions in cells.
func (t *Terminal) TerminalSize() (cols, rows int) { return t.g.Cols(), t.g.Rows() }

// Close releases every GPU object this Terminal owns.
func (t *Terminal) Close() {
	t.res.Destroy()
}
