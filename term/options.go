package term

// AtlasSource selects which Glyph Source backs a Terminal at construction
// or atlas-swap time (§6.3 Dynamic(font_family_list, font_size_px) /
// Static(atlas_bytes)).
type AtlasSource struct {
	static     []byte
	fontData   [][]byte
	fontSizePx float64
}

// StaticAtlasFrom selects the pre-baked binary atlas format (§6.2) as the
// Glyph Source.
func StaticAtlasFrom(encodedAtlas []byte) AtlasSource {
	return AtlasSource{static: encodedAtlas}
}

// DynamicAtlasFrom selects the on-demand rasterizing atlas (§4.3),
// trying each font family in fontData in order and rasterizing at
// fontSizePx.
func DynamicAtlasFrom(fontData [][]byte, fontSizePx float64) AtlasSource {
	return AtlasSource{fontData: fontData, fontSizePx: fontSizePx}
}

func (a AtlasSource) isStatic() bool { return a.static != nil }
