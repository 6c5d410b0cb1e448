package term

import (
	"errors"
	"fmt"
)

// ErrResourceUnavailable is returned when a GPU resource (shader program,
// buffer, texture array) could not be created at all — distinct from
// ErrContextLost, which covers resources that existed and then stopped
// being valid (§7).
var ErrResourceUnavailable = errors.New("term: GPU resource unavailable")

// ErrContextLost is returned by RenderFrame while the
// underlying GL context is lost and has not yet been rebuilt (§7, §9).
var ErrContextLost = errors.New("term: GPU context lost, awaiting rebuild")

// AtlasCapacityExceededError is returned when a grapheme cannot be
// resolved against the active atlas and no fallback glyph is defined
// (§7). The static atlas raises this through Terminal.ResolveStrict; the
// dynamic atlas never raises it; Resolve always admits or evicts.
type AtlasCapacityExceededError struct {
	Grapheme string
}

func (e *AtlasCapacityExceededError) Error() string {
	return fmt.Sprintf("term: no glyph for %q and no fallback defined", e.Grapheme)
}
