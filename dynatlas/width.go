package dynatlas

// width.go classifies a grapheme's display width (normal vs. double) using
// the Unicode East Asian Width property plus the common emoji blocks,
// per §4.3 step 1, via hand-rolled rune-range tables.

// firstRune returns the first rune of a grapheme string. Combining marks
// and joiners that may follow are display-width invisible and do not
// change the base rune's width class.
func firstRune(grapheme string) rune {
	for _, r := range grapheme {
		return r
	}
	return 0
}

// IsWide reports whether grapheme should occupy two consecutive cells:
// East-Asian Wide/Fullwidth codepoints, or a codepoint in a block commonly
// used for color emoji/regional indicators (§4.3 step 1).
func IsWide(grapheme string) bool {
	r := firstRune(grapheme)
	return isEastAsianWide(r) || isEmojiPresentation(r)
}

// IsColorEmoji reports whether grapheme should be drawn by sourcing RGB
// directly from the atlas texture rather than alpha-blending into the
// foreground color (§4.5's bit-12 "emoji" path). Every color-emoji
// grapheme is also wide, but not every wide grapheme is a color emoji
// (e.g. fullwidth CJK punctuation is wide but monochrome).
func IsColorEmoji(grapheme string) bool {
	return isEmojiPresentation(firstRune(grapheme))
}

// isEastAsianWide implements the Wide (W) and Fullwidth (F) categories of
// UAX #11 as contiguous rune ranges. Ambiguous-width characters are
// treated as narrow, matching the common terminal convention.
func isEastAsianWide(r rune) bool {

	switch {
	case r >= 0x1100 && r <= 0x115F: // Hangul Jamo
		return true
	case r == 0x2329 || r == 0x232A:
		return true
	case r >= 0x2E80 && r <= 0x303E: // CJK Radicals, Kangxi, CJK Symbols and Punctuation
		return true
	case r >= 0x3041 && r <= 0x33FF: // Hiragana .. CJK Compatibility
		return true
	case r >= 0x3400 && r <= 0x4DBF: // CJK Unified Ideographs Extension A
		return true
	case r >= 0x4E00 && r <= 0x9FFF: // CJK Unified Ideographs
		return true
	case r >= 0xA000 && r <= 0xA4CF: // Yi Syllables, Yi Radicals
		return true
	case r >= 0xAC00 && r <= 0xD7A3: // Hangul Syllables
		return true
	case r >= 0xF900 && r <= 0xFAFF: // CJK Compatibility Ideographs
		return true
	case r >= 0xFE30 && r <= 0xFE4F: // CJK Compatibility Forms
		return true
	case r >= 0xFF00 && r <= 0xFF60: // Fullwidth Forms
		return true
	case r >= 0xFFE0 && r <= 0xFFE6: // Fullwidth Signs
		return true
	case r >= 0x1F300 && r <= 0x1FAFF: // emoji/symbol blocks are wide on terminals
		return true
	case r >= 0x20000 && r <= 0x3FFFD: // CJK Extensions B..
		return true
	default:
		return false
	}
}

// isEmojiPresentation covers the blocks that terminals conventionally
// render as color emoji glyphs (as opposed to monochrome CJK/symbol
// glyphs that also happen to be double-width).
func isEmojiPresentation(r rune) bool {

	switch {
	case r >= 0x1F300 && r <= 0x1F5FF: // Misc Symbols and Pictographs
		return true
	case r >= 0x1F600 && r <= 0x1F64F: // Emoticons
		return true
	case r >= 0x1F680 && r <= 0x1F6FF: // Transport and Map
		return true
	case r >= 0x1F900 && r <= 0x1F9FF: // Supplemental Symbols and Pictographs
		return true
	case r >= 0x1FA70 && r <= 0x1FAFF: // Symbols and Pictographs Extended-A
		return true
	case r >= 0x2600 && r <= 0x27BF: // Misc Symbols, Dingbats
		return true
	case r >= 0x1F1E6 && r <= 0x1F1FF: // Regional indicators (flags)
		return true
	default:
		return false
	}
}
