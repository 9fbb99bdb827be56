package storage

import (
	"context"
	"testing"
	"time"

	"github.com/xvierd/pomo-cli/internal/domain"
	"github.com/xvierd/pomo-cli/internal/ports"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenMemory()
	if err != nil {
		t.Fatalf("failed to open in-memory store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSettingsRoundTrip(t *testing.T) {
	store := newTestStore(t)

	t.Run("missing key returns an error", func(t *testing.T) {
		if _, err := store.Get(ports.KeyTotalSessions); err == nil {
			t.Error("expected an error for a missing key")
		}
	})

	t.Run("set then get", func(t *testing.T) {
		if err := store.Set(ports.KeyTotalSessions, "12"); err != nil {
			t.Fatalf("set: %v", err)
		}
		got, err := store.Get(ports.KeyTotalSessions)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got != "12" {
			t.Errorf("got %q, want 12", got)
		}
	})

	t.Run("set overwrites", func(t *testing.T) {
		if err := store.Set(ports.KeyTotalSessions, "13"); err != nil {
			t.Fatalf("set: %v", err)
		}
		got, _ := store.Get(ports.KeyTotalSessions)
		if got != "13" {
			t.Errorf("got %q, want 13", got)
		}
	})

	t.Run("delete removes the key", func(t *testing.T) {
		if err := store.Delete(ports.KeyTotalSessions); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if _, err := store.Get(ports.KeyTotalSessions); err == nil {
			t.Error("expected an error after delete")
		}
	})
}

func TestSessionLog(t *testing.T) {
	store := newTestStore(t)
	log := store.Sessions()
	ctx := context.Background()

	base := time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		end := base.Add(time.Duration(i) * time.Hour)
		s := domain.NewFocusSession(end.Add(-25*time.Minute), end, 1500)
		if i == 2 {
			s.GitBranch = "main"
			s.GitCommit = "0123456789abcdef"
		}
		if err := log.Append(ctx, s); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	t.Run("recent returns newest first", func(t *testing.T) {
		sessions, err := log.Recent(ctx, 10)
		if err != nil {
			t.Fatalf("recent: %v", err)
		}
		if len(sessions) != 3 {
			t.Fatalf("expected 3 sessions, got %d", len(sessions))
		}
		if !sessions[0].EndedAt.After(sessions[1].EndedAt) {
			t.Error("sessions not ordered newest first")
		}
		if sessions[0].GitBranch != "main" || sessions[0].ShortCommit() != "0123456" {
			t.Errorf("git context not preserved: %q %q", sessions[0].GitBranch, sessions[0].GitCommit)
		}
		if sessions[1].GitBranch != "" {
			t.Errorf("expected empty branch, got %q", sessions[1].GitBranch)
		}
	})

	t.Run("recent honors the limit", func(t *testing.T) {
		sessions, err := log.Recent(ctx, 2)
		if err != nil {
			t.Fatalf("recent: %v", err)
		}
		if len(sessions) != 2 {
			t.Errorf("expected 2 sessions, got %d", len(sessions))
		}
	})

	t.Run("clear removes everything", func(t *testing.T) {
		if err := log.Clear(ctx); err != nil {
			t.Fatalf("clear: %v", err)
		}
		sessions, err := log.Recent(ctx, 10)
		if err != nil {
			t.Fatalf("recent: %v", err)
		}
		if len(sessions) != 0 {
			t.Errorf("expected empty log, got %d", len(sessions))
		}
	})
}

func TestStorePersistsTimestampsUTC(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	loc := time.FixedZone("UTC+2", 2*60*60)
	end := time.Date(2026, 8, 25, 11, 0, 0, 0, loc)
	s := domain.NewFocusSession(end.Add(-25*time.Minute), end, 1500)
	if err := store.Sessions().Append(ctx, s); err != nil {
		t.Fatalf("append: %v", err)
	}

	sessions, err := store.Sessions().Recent(ctx, 1)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if !sessions[0].EndedAt.Equal(end) {
		t.Errorf("round-tripped time %v != %v", sessions[0].EndedAt, end)
	}
}
