package gpu

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/cellgl/cellgl/glyphsource"
)

// UploadAtlas (re)creates the glyph texture array for width x height x
// layers texels and uploads pixels wholesale. This is the only place the
// texture's storage is ever allocated (functionally-immutable storage,
// §9): later per-glyph updates go through UploadSub's TexSubImage3D path.
// Uses the same CLAMP_TO_EDGE/NEAREST sampler parameters a single-layer
// TEXTURE_2D glyph atlas would, generalized to TEXTURE_2D_ARRAY.
func (r *Resources) UploadAtlas(width, height, layers int, pixels []byte) {

	if r.texArray != 0 {
		gl.DeleteTextures(1, &r.texArray)
	}

	gl.GenTextures(1, &r.texArray)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, r.texArray)

	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MAG_FILTER, gl.NEAREST)

	var pixPtr unsafe.Pointer
	if len(pixels) > 0 {
		pixPtr = gl.Ptr(pixels)
	}
	gl.TexImage3D(gl.TEXTURE_2D_ARRAY, 0, gl.RGBA8, int32(width), int32(height), int32(layers), 0, gl.RGBA, gl.UNSIGNED_BYTE, pixPtr)

	gl.BindTexture(gl.TEXTURE_2D_ARRAY, 0)

	r.texWidth, r.texHeight, r.texLayers = width, height, layers
}

// UploadSub patches a single glyph slot's worth of texels into an
// already-allocated texture array (§4.3 Commit path): cellW x cellH
// pixels at the slot's (layer, column) address, derived the same way the
// fragment shader derives it.
func (r *Resources) UploadSub(u glyphsource.Upload, cellW, cellH int, slotsPerLayer int) {

	layer := u.FirstSlot / slotsPerLayer
	col := u.FirstSlot % slotsPerLayer

	gl.BindTexture(gl.TEXTURE_2D_ARRAY, r.texArray)
	gl.TexSubImage3D(
		gl.TEXTURE_2D_ARRAY, 0,
		int32(col*(cellW+2)), 0, int32(layer),
		int32(u.Width), int32(u.Height), 1,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(u.Pixels),
	)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, 0)
}

// CommitUploads drains every pending upload from src into the live
// texture array (§4.3's "Commit" step of the Glyph Source contract).
func (r *Resources) CommitUploads(src glyphsource.Source) {

	cellW, cellH := src.CellSize()

	uploads := src.Commit(nil)
	for _, u := range uploads {
		r.UploadSub(u, cellW, cellH, 32)
	}
}
