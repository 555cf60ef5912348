// Package snapshot keeps a rolling, newest-first history of full store
// states for disaster recovery.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/marqs-app/marqs/internal/domain"
	"github.com/marqs-app/marqs/internal/kv"
	"github.com/marqs-app/marqs/internal/logger"
)

// MaxEntries bounds the backup list. It is a wire-format constant: previous
// versions wrote at most 8 entries and readers rely on that.
const MaxEntries = 8

// Manager captures and lists backups of the persisted store state.
type Manager struct {
	kv  kv.Store
	log logger.Logger
	now func() time.Time
}

// NewManager creates a snapshot manager. A nil clock means time.Now.
func NewManager(store kv.Store, log logger.Logger, now func() time.Time) *Manager {
	if log == nil {
		log = logger.Nop()
	}
	if now == nil {
		now = time.Now
	}
	return &Manager{kv: store, log: log, now: now}
}

// Capture reads the currently persisted store state and prepends it to the
// backup list, truncated to MaxEntries. A missing or unreadable state is
// skipped, and an unreadable backup list is treated as empty: capture is a
// safety net and must never take the store down.
func (m *Manager) Capture(ctx context.Context) error {
	raw, err := m.kv.Get(ctx, domain.StateKey)
	if err != nil {
		if err == kv.ErrNotFound {
			m.log.Debug("no persisted state yet, skipping snapshot")
			return nil
		}
		return fmt.Errorf("failed to read state for snapshot: %w", err)
	}

	var state domain.State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		m.log.Warn("persisted state unreadable, skipping snapshot", logger.Error(err))
		return nil
	}

	entries := m.loadEntries(ctx)
	entries = append([]domain.BackupEntry{{At: m.now().UnixMilli(), Data: state}}, entries...)
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal backups: %w", err)
	}
	if err := m.kv.Set(ctx, domain.BackupKey, string(data)); err != nil {
		return fmt.Errorf("failed to persist backups: %w", err)
	}
	return nil
}

// List returns the backup entries, newest first.
func (m *Manager) List(ctx context.Context) ([]domain.BackupEntry, error) {
	raw, err := m.kv.Get(ctx, domain.BackupKey)
	if err != nil {
		if err == kv.ErrNotFound {
			return []domain.BackupEntry{}, nil
		}
		return nil, fmt.Errorf("failed to read backups: %w", err)
	}

	var entries []domain.BackupEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, &domain.ParseError{Reason: "backup list unreadable", Err: err}
	}
	return entries, nil
}

// Restore writes backup entry index back to the primary state key. This is
// the operator recovery hook; callers reload their store afterwards.
func (m *Manager) Restore(ctx context.Context, index int) (domain.State, error) {
	entries, err := m.List(ctx)
	if err != nil {
		return domain.State{}, err
	}
	if index < 0 || index >= len(entries) {
		return domain.State{}, fmt.Errorf("backup index %d out of range (have %d)", index, len(entries))
	}

	state := entries[index].Data
	data, err := json.Marshal(state)
	if err != nil {
		return domain.State{}, fmt.Errorf("failed to marshal backup state: %w", err)
	}
	if err := m.kv.Set(ctx, domain.StateKey, string(data)); err != nil {
		return domain.State{}, fmt.Errorf("failed to restore state: %w", err)
	}

	m.log.Info("restored state from backup",
		logger.Int("index", index),
		logger.Int64("captured_at", entries[index].At))
	return state, nil
}

// loadEntries reads the existing backup list, falling back to empty on any
// failure.
func (m *Manager) loadEntries(ctx context.Context) []domain.BackupEntry {
	raw, err := m.kv.Get(ctx, domain.BackupKey)
	if err != nil {
		if err != kv.ErrNotFound {
			m.log.Warn("failed to read existing backups, starting fresh", logger.Error(err))
		}
		return nil
	}

	var entries []domain.BackupEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		m.log.Warn("existing backups unreadable, starting fresh", logger.Error(err))
		return nil
	}
	return entries
}
