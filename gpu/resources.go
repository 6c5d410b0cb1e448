// Package gpu owns every live GPU object backing a terminal's rendering:
// the compiled program, vertex layout, per-cell instance buffers, uniform
// buffers, and the glyph texture array (§4.4, §4.5). It talks to OpenGL
// through github.com/go-gl/gl/v4.1-core/gl, a desktop-core-profile
// binding with texture arrays, instancing, and uniform buffer objects,
// the three capabilities this package exercises.
package gpu

import (
	"strings"
	"unsafe"

	"github.com/bloeys/gglm/gglm"
	"github.com/cellgl/cellgl/cell"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// quadVerts is the unit quad every cell instance stretches and positions
// (§4.4): two triangles, UV-space corners in [0,1].
var quadVerts = []float32{
	0, 0,
	1, 0,
	1, 1,
	0, 1,
}

var quadIndices = []uint32{0, 1, 2, 2, 3, 0}

// Resources is every GPU handle a Terminal needs to draw one frame.
// Not safe for concurrent use (§5) — every method runs on the caller's
// single render thread.
type Resources struct {
	Program uint32

	vao        uint32
	quadVBO    uint32
	quadEBO    uint32
	cellPosVBO uint32
	cellDataVBO uint32

	gridUBO  uint32
	atlasUBO uint32

	texArray                        uint32
	texWidth, texHeight, texLayers int

	cols, rows int
}

// New compiles the cell shader program and allocates the fixed (non
// grid-sized) GPU objects: the VAO, the static quad buffers, and the two
// uniform buffer objects. Call ResizeGrid before the first draw and
// UploadAtlas before the first frame that references glyph ids.
func New() (*Resources, error) {

	program, err := newProgram(cellVertSrc, cellFragSrc)
	if err != nil {
		return nil, err
	}

	r := &Resources{Program: program}

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.quadVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVerts)*4, gl.Ptr(quadVerts), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 0, nil)

	gl.GenBuffers(1, &r.quadEBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.quadEBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(quadIndices)*4, gl.Ptr(quadIndices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &r.gridUBO)
	gl.BindBuffer(gl.UNIFORM_BUFFER, r.gridUBO)
	gl.BufferData(gl.UNIFORM_BUFFER, 4*4, nil, gl.DYNAMIC_DRAW) // vec2 cellSizePx + vec2 viewportPx
	gl.BindBufferBase(gl.UNIFORM_BUFFER, 0, r.gridUBO)

	gl.GenBuffers(1, &r.atlasUBO)
	gl.BindBuffer(gl.UNIFORM_BUFFER, r.atlasUBO)
	gl.BufferData(gl.UNIFORM_BUFFER, 5*4, nil, gl.DYNAMIC_DRAW) // uint mask + 4 floats
	gl.BindBufferBase(gl.UNIFORM_BUFFER, 1, r.atlasUBO)

	gl.BindVertexArray(0)

	if err := checkGLError("gpu.New"); err != nil {
		return nil, err
	}

	return r, nil
}

// ResizeGrid recreates the per-cell position buffer for a cols x rows
// grid (§4.6 resize semantics): tears down and rebuilds GPU storage on
// resize rather than growing it in place.
func (r *Resources) ResizeGrid(cols, rows int) {

	r.cols, r.rows = cols, rows
	count := cols * rows

	positions := make([]float32, 0, count*2)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			positions = append(positions, float32(x), float32(y))
		}
	}

	gl.BindVertexArray(r.vao)

	if r.cellPosVBO != 0 {
		gl.DeleteBuffers(1, &r.cellPosVBO)
	}
	gl.GenBuffers(1, &r.cellPosVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.cellPosVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(positions)*4, gl.Ptr(positions), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 0, nil)
	gl.VertexAttribDivisor(1, 1)

	if r.cellDataVBO != 0 {
		gl.DeleteBuffers(1, &r.cellDataVBO)
	}
	gl.GenBuffers(1, &r.cellDataVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.cellDataVBO)
	gl.BufferData(gl.ARRAY_BUFFER, count*cell.GPUInstanceSize, nil, gl.DYNAMIC_DRAW)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribIPointer(2, 3, gl.UNSIGNED_INT, 0, nil)
	gl.VertexAttribDivisor(2, 1)

	gl.BindVertexArray(0)
}

// UpdateCellData uploads packed per-cell instance data (cell.EncodeGPU's
// uvec3 layout, §4.5) for the cells in
// [firstCell, firstCell+len(data)/cell.GPUInstanceSize).
func (r *Resources) UpdateCellData(firstCell int, data []byte) {
	gl.BindBuffer(gl.ARRAY_BUFFER, r.cellDataVBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, firstCell*cell.GPUInstanceSize, len(data), gl.Ptr(&data[0]))
}

// SetGridUniforms uploads the cell size and viewport dimensions the
// vertex shader needs to place each instance (§4.5). dims packs
// (cellW, cellH, viewportW, viewportH) into a gglm.Vec4, a fixed-size
// float block headed to a uniform buffer.
func (r *Resources) SetGridUniforms(dims gglm.Vec4) {
	gl.BindBuffer(gl.UNIFORM_BUFFER, r.gridUBO)
	gl.BufferSubData(gl.UNIFORM_BUFFER, 0, 4*4, unsafe.Pointer(&dims.Data[0]))
}

// SetAtlasUniforms uploads the active atlas's index mask and decoration
// line-placement fractions (§3.4, §4.5).
func (r *Resources) SetAtlasUniforms(mask uint32, underlinePos, underlineThickness, strikethroughPos, strikethroughThickness float32) {
	buf := struct {
		mask                                                                   uint32
		underlinePos, underlineThickness, strikethroughPos, strikethroughThickness float32
	}{mask, underlinePos, underlineThickness, strikethroughPos, strikethroughThickness}

	gl.BindBuffer(gl.UNIFORM_BUFFER, r.atlasUBO)
	gl.BufferSubData(gl.UNIFORM_BUFFER, 0, int(unsafe.Sizeof(buf)), unsafe.Pointer(&buf))
}

// Draw issues one instanced draw call covering every cell in the current
// grid (§4.4 "draw call").
func (r *Resources) Draw() {
	gl.UseProgram(r.Program)
	gl.BindVertexArray(r.vao)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, r.texArray)
	gl.DrawElementsInstanced(gl.TRIANGLES, int32(len(quadIndices)), gl.UNSIGNED_INT, nil, int32(r.cols*r.rows))
	gl.BindVertexArray(0)
}

// Destroy releases every GPU object this Resources owns.
func (r *Resources) Destroy() {
	gl.DeleteVertexArrays(1, &r.vao)
	gl.DeleteBuffers(1, &r.quadVBO)
	gl.DeleteBuffers(1, &r.quadEBO)
	if r.cellPosVBO != 0 {
		gl.DeleteBuffers(1, &r.cellPosVBO)
	}
	if r.cellDataVBO != 0 {
		gl.DeleteBuffers(1, &r.cellDataVBO)
	}
	gl.DeleteBuffers(1, &r.gridUBO)
	gl.DeleteBuffers(1, &r.atlasUBO)
	if r.texArray != 0 {
		gl.DeleteTextures(1, &r.texArray)
	}
	gl.DeleteProgram(r.Program)
}

func newProgram(vertexSrc, fragmentSrc string) (uint32, error) {

	vs, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	fs, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		return 0, &ShaderCompilationError{Stage: "link", Log: log}
	}

	gl.DeleteShader(vs)
	gl.DeleteShader(fs)
	return program, nil
}

func compileShader(source string, shaderType uint32, stage string) (uint32, error) {

	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		return 0, &ShaderCompilationError{Stage: stage, Log: log}
	}

	return shader, nil
}
