package cell

import "encoding/binary"

// Size is the packed byte size of one cell's instance data (§3.2):
// glyph_id:u16 little-endian, fg_r/g/b:u8, bg_r/g/b:u8. Alpha is discarded.
const Size = 8

// RGB is an opaque-alpha color triple; the renderer never reads an alpha
// channel from instance data (§3.2).
type RGB struct {
	R, G, B uint8
}

// Cell is the logical, unpacked form of one grid position's instance data.
type Cell struct {
	Glyph GlyphID
	Fg    RGB
	Bg    RGB
}

// Encode packs c into dst[0:8] per §3.2. dst must have length >= 8.
func (c Cell) Encode(dst []byte) {
	binary.LittleEndian.PutUint16(dst[0:2], uint16(c.Glyph))
	dst[2] = c.Fg.R
	dst[3] = c.Fg.G
	dst[4] = c.Fg.B
	dst[5] = c.Bg.R
	dst[6] = c.Bg.G
	dst[7] = c.Bg.B
}

// Decode unpacks 8 bytes of instance data per §3.2.
func Decode(src []byte) Cell {
	return Cell{
		Glyph: GlyphID(binary.LittleEndian.Uint16(src[0:2])),
		Fg:    RGB{src[2], src[3], src[4]},
		Bg:    RGB{src[5], src[6], src[7]},
	}
}

// GPUInstanceSize is the per-cell byte stride of the instanced vertex
// attribute the shader reads (§4.5), distinct from the compact 8-byte
// §3.2 wire record: a uvec3 of (glyph_id, fg packed 0x00RRGGBB, bg packed
// 0x00RRGGBB), one 32-bit word per field, per the Open Questions decision
// to standardize on the full-word layout rather than sub-word byte
// extraction in the vertex shader.
const GPUInstanceSize = 12

// EncodeGPU packs c into dst[0:12] in the GPU instance-attribute layout
// the vertex shader consumes: glyph_id as a little-endian uint32, then fg
// and bg each as a little-endian 0x00RRGGBB uint32. dst must have length
// >= 12.
func (c Cell) EncodeGPU(dst []byte) {
	binary.LittleEndian.PutUint32(dst[0:4], uint32(c.Glyph))
	binary.LittleEndian.PutUint32(dst[4:8], uint32(c.Fg.R)<<16|uint32(c.Fg.G)<<8|uint32(c.Fg.B))
	binary.LittleEndian.PutUint32(dst[8:12], uint32(c.Bg.R)<<16|uint32(c.Bg.G)<<8|uint32(c.Bg.B))
}

// Index returns the linear row-major index of cell (x,y) in a grid of the
// given column count: y*cols + x (§3.3).
func Index(x, y, cols int) int {
	return y*cols + x
}

// ByteOffset returns the byte offset of cell (x,y)'s packed data within the
// grid's dynamic buffer: 8*(y*cols+x) (§4.6 update_cell).
func ByteOffset(x, y, cols int) int {
	return Size * Index(x, y, cols)
}
