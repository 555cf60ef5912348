package snapshot

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/marqs-app/marqs/internal/domain"
	"github.com/marqs-app/marqs/internal/kv/memory"
	"github.com/marqs-app/marqs/internal/logger"
)

func writeState(t *testing.T, store *memory.Store, savedAt int64) {
	t.Helper()
	state := domain.State{
		Categories: domain.DefaultCategories(),
		Bookmarks:  []domain.Bookmark{},
		Theme:      domain.ThemeLight,
		SavedAt:    savedAt,
	}
	data, err := json.Marshal(state)
	if err != nil {
		t.Fatalf("marshal state failed: %v", err)
	}
	if err := store.Set(context.Background(), domain.StateKey, string(data)); err != nil {
		t.Fatalf("set state failed: %v", err)
	}
}

func TestCaptureWithoutState(t *testing.T) {
	store := memory.New()
	m := NewManager(store, logger.Nop(), nil)

	if err := m.Capture(context.Background()); err != nil {
		t.Fatalf("Capture() without state = %v, want nil", err)
	}
	entries, err := m.List(context.Background())
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("List() = %d entries, want 0", len(entries))
	}
}

func TestCapturePrependsNewest(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	ts := int64(0)
	m := NewManager(store, logger.Nop(), func() time.Time {
		ts++
		return time.UnixMilli(ts)
	})

	writeState(t, store, 1)
	if err := m.Capture(ctx); err != nil {
		t.Fatalf("Capture() failed: %v", err)
	}
	writeState(t, store, 2)
	if err := m.Capture(ctx); err != nil {
		t.Fatalf("Capture() failed: %v", err)
	}

	entries, err := m.List(ctx)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("List() = %d entries, want 2", len(entries))
	}
	if entries[0].At <= entries[1].At {
		t.Errorf("entries not newest-first: %d then %d", entries[0].At, entries[1].At)
	}
	if entries[0].Data.SavedAt != 2 {
		t.Errorf("newest entry holds state savedAt=%d, want 2", entries[0].Data.SavedAt)
	}
}

func TestCaptureBoundedToMaxEntries(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	ts := int64(0)
	m := NewManager(store, logger.Nop(), func() time.Time {
		ts++
		return time.UnixMilli(ts)
	})

	for i := 1; i <= 20; i++ {
		writeState(t, store, int64(i))
		if err := m.Capture(ctx); err != nil {
			t.Fatalf("Capture() #%d failed: %v", i, err)
		}
	}

	entries, err := m.List(ctx)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(entries) != MaxEntries {
		t.Fatalf("List() = %d entries, want exactly %d", len(entries), MaxEntries)
	}
	if entries[0].At != 20 {
		t.Errorf("newest entry at = %d, want timestamp of the 20th capture", entries[0].At)
	}
	if entries[0].Data.SavedAt != 20 {
		t.Errorf("newest entry data savedAt = %d, want 20", entries[0].Data.SavedAt)
	}
}

func TestCaptureRecoversFromCorruptBackupList(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	writeState(t, store, 1)
	if err := store.Set(ctx, domain.BackupKey, "{corrupt"); err != nil {
		t.Fatalf("set corrupt backups failed: %v", err)
	}

	m := NewManager(store, logger.Nop(), nil)
	if err := m.Capture(ctx); err != nil {
		t.Fatalf("Capture() over corrupt backups = %v, want nil", err)
	}

	entries, err := m.List(ctx)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("List() = %d entries, want 1 (fresh list)", len(entries))
	}
}

func TestRestore(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	m := NewManager(store, logger.Nop(), nil)

	writeState(t, store, 42)
	if err := m.Capture(ctx); err != nil {
		t.Fatalf("Capture() failed: %v", err)
	}

	// Clobber the live state, then restore
	writeState(t, store, 99)
	state, err := m.Restore(ctx, 0)
	if err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}
	if state.SavedAt != 42 {
		t.Errorf("Restore() savedAt = %d, want 42", state.SavedAt)
	}

	raw, err := store.Get(ctx, domain.StateKey)
	if err != nil {
		t.Fatalf("get state failed: %v", err)
	}
	var live domain.State
	if err := json.Unmarshal([]byte(raw), &live); err != nil {
		t.Fatalf("unmarshal restored state failed: %v", err)
	}
	if live.SavedAt != 42 {
		t.Errorf("persisted state savedAt = %d, want restored 42", live.SavedAt)
	}

	if _, err := m.Restore(ctx, 7); err == nil {
		t.Error("Restore() with out-of-range index should fail")
	}
}
