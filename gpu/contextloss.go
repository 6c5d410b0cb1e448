package gpu

import "github.com/cellgl/cellgl/gllog"

// LossState tracks the WebGL2/GL context-loss recovery state machine
// (§9 "Cyclic ownership" / §7): losing the context invalidates every
// handle in Resources, but the host-side master copies (the active
// Glyph Source's Data, the grid's cell buffer) survive, so the next
// frame can rebuild GPU state from them instead of failing permanently.
type LossState struct {
	lost         bool
	needsRebuild bool
}

// MarkLost records that the underlying context signaled a loss event.
// Every GPU handle this Resources held is now invalid; no further GL
// calls should be issued until Rebuild succeeds.
func (s *LossState) MarkLost() {
	gllog.Info("gpu: context lost, frame aborted until rebuild")
	s.lost = true
	s.needsRebuild = true
}

// IsLost reports whether the context is currently known to be lost.
func (s *LossState) IsLost() bool { return s.lost }

// NeedsRebuild reports whether GPU state must be recreated before the
// next draw call.
func (s *LossState) NeedsRebuild() bool { return s.needsRebuild }

// Rebuild runs rebuild (typically Resources.New plus a full re-upload of
// the active atlas and grid) if a rebuild is pending, and clears the
// pending/lost flags on success. A failed rebuild leaves the state
// unchanged so the caller can retry on a later frame.
func (s *LossState) Rebuild(rebuild func() error) error {
	if !s.needsRebuild {
		return nil
	}
	if err := rebuild(); err != nil {
		return err
	}
	gllog.Info("gpu: context restored, GPU resources rebuilt")
	s.needsRebuild = false
	s.lost = false
	return nil
}
