// Package style holds the per-cell style flags (§3.1) and the ARGB color
// parameter type used by the public batch API (§6.3).
package style

import "github.com/cellgl/cellgl/cell"

// Style is the set of render-time flags a caller can request for a run of
// text: the two atlas-selecting style bits plus the two decoration bits
// that never affect atlas lookup (§3.1).
type Style struct {
	Bold          bool
	Italic        bool
	Underline     bool
	Strikethrough bool
}

// Base returns the cell.Style (atlas-region selector) for s, ignoring the
// decoration flags.
func (s Style) Base() cell.Style {
	switch {
	case s.Bold && s.Italic:
		return cell.StyleBoldItalic
	case s.Bold:
		return cell.StyleBold
	case s.Italic:
		return cell.StyleItalic
	default:
		return cell.StyleNormal
	}
}

// ApplyDecorations sets/clears the underline and strikethrough bits on id
// according to s, leaving the atlas index untouched.
func (s Style) ApplyDecorations(id cell.GlyphID) cell.GlyphID {
	return id.WithUnderline(s.Underline).WithStrikethrough(s.Strikethrough)
}

// ARGB is a 32-bit color parameter as accepted by the public API (§6.3).
// The alpha byte is always ignored — the fragment shader writes opaque RGB.
type ARGB uint32

// RGB extracts the opaque color triple from an ARGB value.
func (c ARGB) RGB() cell.RGB {
	return cell.RGB{
		R: uint8(c >> 16),
		G: uint8(c >> 8),
		B: uint8(c),
	}
}

// NewARGB packs r,g,b (alpha forced to 0xFF, though it is discarded
// downstream regardless) into an ARGB value.
func NewARGB(r, g, b uint8) ARGB {
	return ARGB(0xFF)<<24 | ARGB(r)<<16 | ARGB(g)<<8 | ARGB(b)
}
