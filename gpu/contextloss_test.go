package gpu

import (
	"errors"
	"testing"
)

func Check[T comparable](t *testing.T, expected, got T) {
	if got != expected {
		t.Fatalf("Expected %v but got %v\n", expected, got)
	}
}

func TestLossStateMarksRebuildPending(t *testing.T) {
	var s LossState
	Check(t, false, s.IsLost())
	Check(t, false, s.NeedsRebuild())

	s.MarkLost()
	Check(t, true, s.IsLost())
	Check(t, true, s.NeedsRebuild())
}

func TestRebuildClearsStateOnSuccess(t *testing.T) {
	var s LossState
	s.MarkLost()

	calls := 0
	err := s.Rebuild(func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	Check(t, 1, calls)
	Check(t, false, s.IsLost())
	Check(t, false, s.NeedsRebuild())
}

func TestRebuildLeavesStatePendingOnFailure(t *testing.T) {
	var s LossState
	s.MarkLost()

	wantErr := errors.New("device unavailable")
	err := s.Rebuild(func() error {
		return wantErr
	})
	if err != wantErr {
		t.Fatalf("expected rebuild error to propagate, got %v", err)
	}
	Check(t, true, s.NeedsRebuild())
}

func TestRebuildNoopWhenNotPending(t *testing.T) {
	var s LossState
	calls := 0
	err := s.Rebuild(func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	Check(t, 0, calls)
}
