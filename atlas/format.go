package atlas

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"io"
	"strconv"

	"github.com/cellgl/cellgl/cell"
	"github.com/cellgl/cellgl/glyphsource"
)

// Magic and version per §6.2.
var Magic = [4]byte{0xBA, 0xB1, 0xF0, 0xA7}

const FormatVersion = 0x01

// Encode serializes d into the little-endian binary atlas format (§6.2).
func Encode(d *Data) []byte {

	buf := &bytes.Buffer{}

	buf.Write(Magic[:])
	buf.WriteByte(FormatVersion)

	writeLenPrefixedString(buf, d.FontName)
	writeF32(buf, d.FontSize)
	writeI32(buf, int32(d.TexWidth))
	writeI32(buf, int32(d.TexHeight))
	writeI32(buf, int32(d.TexLayers))
	writeI32(buf, int32(d.CellW))
	writeI32(buf, int32(d.CellH))
	writeF32(buf, d.Metrics.UnderlinePos)
	writeF32(buf, d.Metrics.UnderlineThickness)
	writeF32(buf, d.Metrics.StrikethroughPos)
	writeF32(buf, d.Metrics.StrikethroughThickness)

	binary.Write(buf, binary.LittleEndian, uint16(len(d.Glyphs)))

	for _, g := range d.Glyphs {

		binary.Write(buf, binary.LittleEndian, uint16(g.ID))
		buf.WriteByte(byte(g.Style))

		if g.IsEmoji {
			buf.WriteByte(1)
		} else {
			buf.WriteByte(0)
		}

		writeI32(buf, g.PixelX)
		writeI32(buf, g.PixelY)
		writeLenPrefixedString(buf, g.Symbol)
	}

	compressed := &bytes.Buffer{}
	zw := zlib.NewWriter(compressed)
	zw.Write(d.Pixels)
	zw.Close()

	binary.Write(buf, binary.LittleEndian, uint32(compressed.Len()))
	buf.Write(compressed.Bytes())

	return buf.Bytes()
}

// Decode parses the little-endian binary atlas format (§6.2) and returns
// an indexed, immutable Data value. Errors are always *DecodeError.
func Decode(raw []byte) (*Data, error) {

	r := bytes.NewReader(raw)

	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, &DecodeError{Reason: ReasonTruncatedSection, Detail: "header"}
	}
	if magic != Magic {
		return nil, &DecodeError{Reason: ReasonInvalidMagic}
	}

	version, err := r.ReadByte()
	if err != nil {
		return nil, &DecodeError{Reason: ReasonTruncatedSection, Detail: "version"}
	}
	if version != FormatVersion {
		return nil, &DecodeError{Reason: ReasonUnsupportedVersion, Detail: versionString(version)}
	}

	fontName, err := readLenPrefixedString(r)
	if err != nil {
		return nil, &DecodeError{Reason: ReasonTruncatedSection, Detail: "font_name"}
	}

	var fontSize float32
	var texW, texH, texLayers, cellW, cellH int32
	var ulPos, ulThick, stPos, stThick float32

	fields := []any{&fontSize, &texW, &texH, &texLayers, &cellW, &cellH, &ulPos, &ulThick, &stPos, &stThick}
	for _, f := range fields {
		if err := binary.Read(r, binary.LittleEndian, f); err != nil {
			return nil, &DecodeError{Reason: ReasonTruncatedSection, Detail: "metadata"}
		}
	}

	var glyphCount uint16
	if err := binary.Read(r, binary.LittleEndian, &glyphCount); err != nil {
		return nil, &DecodeError{Reason: ReasonTruncatedSection, Detail: "glyph_count"}
	}

	glyphs := make([]GlyphRecord, 0, glyphCount)
	for i := uint16(0); i < glyphCount; i++ {

		var id uint16
		if err := binary.Read(r, binary.LittleEndian, &id); err != nil {
			return nil, &DecodeError{Reason: ReasonTruncatedSection, Detail: "glyph id"}
		}

		styleByte, err := r.ReadByte()
		if err != nil {
			return nil, &DecodeError{Reason: ReasonTruncatedSection, Detail: "glyph style"}
		}

		emojiByte, err := r.ReadByte()
		if err != nil {
			return nil, &DecodeError{Reason: ReasonTruncatedSection, Detail: "glyph is_emoji"}
		}

		var px, py int32
		if err := binary.Read(r, binary.LittleEndian, &px); err != nil {
			return nil, &DecodeError{Reason: ReasonTruncatedSection, Detail: "glyph pixel_x"}
		}
		if err := binary.Read(r, binary.LittleEndian, &py); err != nil {
			return nil, &DecodeError{Reason: ReasonTruncatedSection, Detail: "glyph pixel_y"}
		}

		symbol, err := readLenPrefixedString(r)
		if err != nil {
			return nil, &DecodeError{Reason: ReasonTruncatedSection, Detail: "glyph symbol"}
		}

		glyphs = append(glyphs, GlyphRecord{
			ID:      cell.GlyphID(id),
			Style:   cell.Style(styleByte),
			IsEmoji: emojiByte != 0,
			PixelX:  px,
			PixelY:  py,
			Symbol:  symbol,
		})
	}

	var dataLen uint32
	if err := binary.Read(r, binary.LittleEndian, &dataLen); err != nil {
		return nil, &DecodeError{Reason: ReasonTruncatedSection, Detail: "texture data_len"}
	}

	compressed := make([]byte, dataLen)
	if _, err := io.ReadFull(r, compressed); err != nil {
		return nil, &DecodeError{Reason: ReasonTruncatedSection, Detail: "texture data"}
	}

	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, &DecodeError{Reason: ReasonDecompressionFailed, Detail: err.Error()}
	}
	pixels, err := io.ReadAll(zr)
	zr.Close()
	if err != nil {
		return nil, &DecodeError{Reason: ReasonDecompressionFailed, Detail: err.Error()}
	}

	wantLen := int(texW) * int(texH) * int(texLayers) * 4
	if len(pixels) != wantLen {
		return nil, &DecodeError{Reason: ReasonTextureSizeMismatch}
	}

	metrics := glyphsource.LineMetrics{
		UnderlinePos:           ulPos,
		UnderlineThickness:     ulThick,
		StrikethroughPos:       stPos,
		StrikethroughThickness: stThick,
	}

	return New(fontName, fontSize, int(cellW), int(cellH), int(texW), int(texH), int(texLayers), metrics, glyphs, pixels), nil
}

func writeLenPrefixedString(buf *bytes.Buffer, s string) {
	if len(s) > 255 {
		s = s[:255]
	}
	buf.WriteByte(byte(len(s)))
	buf.WriteString(s)
}

func readLenPrefixedString(r *bytes.Reader) (string, error) {
	n, err := r.ReadByte()
	if err != nil {
		return "", err
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", err
	}
	return string(b), nil
}

func writeF32(buf *bytes.Buffer, f float32) {
	binary.Write(buf, binary.LittleEndian, f)
}

func writeI32(buf *bytes.Buffer, i int32) {
	binary.Write(buf, binary.LittleEndian, i)
}

func versionString(v byte) string {
	return strconv.Itoa(int(v))
}
