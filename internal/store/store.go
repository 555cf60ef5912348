// Package store holds the authoritative bookmark collection and category
// list. Every mutation normalizes its input, applies the change in memory,
// writes the full state through to the persistence adapter and then triggers
// a snapshot capture, all under one lock, so no caller ever observes a
// half-applied operation.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/marqs-app/marqs/internal/domain"
	"github.com/marqs-app/marqs/internal/kv"
	"github.com/marqs-app/marqs/internal/logger"
	"github.com/marqs-app/marqs/internal/merge"
)

// Snapshotter is notified after every mutating operation has persisted.
type Snapshotter interface {
	Capture(ctx context.Context) error
}

// Draft carries the caller-editable fields of a bookmark.
type Draft struct {
	Title    string
	URL      string
	Category string
	Tags     []string
	Notes    string
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(log logger.Logger) Option {
	return func(s *Store) { s.log = log }
}

// WithClock injects the time source. Tests use a deterministic clock.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator injects the id source. Tests use deterministic ids.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// WithSnapshotter wires the snapshot manager capture hook.
func WithSnapshotter(snaps Snapshotter) Option {
	return func(s *Store) { s.snaps = snaps }
}

// Store is the in-memory collection plus its write-through persistence.
type Store struct {
	mu    sync.Mutex
	kv    kv.Store
	log   logger.Logger
	now   func() time.Time
	newID func() string
	snaps Snapshotter

	state domain.State
}

// New creates a store over the given persistence adapter. Call Load before
// anything else.
func New(adapter kv.Store, opts ...Option) *Store {
	s := &Store{
		kv:    adapter,
		log:   logger.Nop(),
		now:   time.Now,
		newID: DefaultIDGenerator(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) nowMillis() int64 {
	return s.now().UnixMilli()
}

// Load reads the persisted state. An absent key initializes the default
// state and persists it. A present state has every bookmark normalized
// (missing ids, categories, tags and timestamps filled in) and is written
// back in normalized form. A state that fails to parse is replaced by the
// default state: availability wins over crash propagation here, and the
// hazard is deliberate — the unreadable blob is abandoned. The backup list
// may still hold a usable copy.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.kv.Get(ctx, domain.StateKey)
	if err != nil {
		if err == kv.ErrNotFound {
			return s.initDefaultsLocked(ctx)
		}
		return fmt.Errorf("failed to load state: %w", err)
	}

	var state domain.State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		s.log.Warn("persisted state unreadable, starting from defaults", logger.Error(err))
		return s.initDefaultsLocked(ctx)
	}

	if state.Categories == nil {
		state.Categories = domain.DefaultCategories()
	}
	if state.Theme == "" {
		state.Theme = domain.ThemeLight
	}
	if state.Bookmarks == nil {
		state.Bookmarks = []domain.Bookmark{}
	}
	now := s.nowMillis()
	for i := range state.Bookmarks {
		domain.Normalize(&state.Bookmarks[i], s.newID, now)
	}

	s.state = state
	// Rewrite so the normalized form is what future loads see
	return s.persistLocked(ctx)
}

func (s *Store) initDefaultsLocked(ctx context.Context) error {
	s.state = domain.State{
		Categories: domain.DefaultCategories(),
		Bookmarks:  []domain.Bookmark{},
		Theme:      domain.ThemeLight,
	}
	return s.persistLocked(ctx)
}

// persistLocked writes the full state through to the adapter. Callers hold
// the lock.
func (s *Store) persistLocked(ctx context.Context) error {
	s.state.SavedAt = s.nowMillis()
	data, err := json.Marshal(s.state)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	if err := s.kv.Set(ctx, domain.StateKey, string(data)); err != nil {
		return fmt.Errorf("failed to persist state: %w", err)
	}
	return nil
}

// commitLocked persists and then captures a snapshot. Capture failures are
// logged, never propagated: the primary write already succeeded and the
// mutation must not be reported as failed.
func (s *Store) commitLocked(ctx context.Context) error {
	if err := s.persistLocked(ctx); err != nil {
		return err
	}
	if s.snaps != nil {
		if err := s.snaps.Capture(ctx); err != nil {
			s.log.Warn("snapshot capture failed", logger.Error(err))
		}
	}
	return nil
}

// Create adds a new bookmark. The URL is required and normalized; a live
// bookmark with the same normalized URL in the same category is rejected.
func (s *Store) Create(ctx context.Context, d Draft) (domain.Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	url := domain.NormalizeURL(strings.TrimSpace(d.URL))
	if url == "" {
		return domain.Bookmark{}, &domain.ValidationError{Field: "url", Reason: "must not be empty"}
	}
	category := strings.TrimSpace(d.Category)
	if category == "" {
		category = domain.CategoryAll
	}
	if s.duplicateExistsLocked(url, category) {
		return domain.Bookmark{}, &domain.DuplicateError{URL: url, Category: category}
	}
	s.ensureCategoryLocked(category)

	now := s.nowMillis()
	title := strings.TrimSpace(d.Title)
	if title == "" {
		title = url
	}

	b := domain.Bookmark{
		ID:       s.newID(),
		Title:    title,
		URL:      url,
		Category: category,
		Tags:     cleanTags(d.Tags),
		Notes:    strings.TrimSpace(d.Notes),
		Created:  now,
		Updated:  now,
	}
	s.state.Bookmarks = append(s.state.Bookmarks, b)

	if err := s.commitLocked(ctx); err != nil {
		return domain.Bookmark{}, err
	}
	s.log.Debug("bookmark created", logger.String("id", b.ID), logger.String("url", b.URL))
	return b.Clone(), nil
}

// Update edits an existing bookmark. The duplicate check only runs when the
// normalized URL or the category actually changes.
func (s *Store) Update(ctx context.Context, id string, d Draft) (domain.Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfLocked(id)
	if idx < 0 {
		return domain.Bookmark{}, &domain.NotFoundError{ID: id}
	}
	b := &s.state.Bookmarks[idx]

	url := domain.NormalizeURL(strings.TrimSpace(d.URL))
	if url == "" {
		return domain.Bookmark{}, &domain.ValidationError{Field: "url", Reason: "must not be empty"}
	}
	category := strings.TrimSpace(d.Category)
	if category == "" {
		category = domain.CategoryAll
	}
	if (url != b.URL || category != b.Category) && s.duplicateExistsLocked(url, category) {
		return domain.Bookmark{}, &domain.DuplicateError{URL: url, Category: category}
	}
	s.ensureCategoryLocked(category)

	title := strings.TrimSpace(d.Title)
	if title == "" {
		title = url
	}

	b.Title = title
	b.URL = url
	b.Category = category
	b.Tags = cleanTags(d.Tags)
	b.Notes = strings.TrimSpace(d.Notes)
	b.Updated = s.nowMillis()

	if err := s.commitLocked(ctx); err != nil {
		return domain.Bookmark{}, err
	}
	return b.Clone(), nil
}

// Trash soft-deletes a bookmark.
func (s *Store) Trash(ctx context.Context, id string) error {
	return s.setTrashed(ctx, id, true)
}

// Restore brings a trashed bookmark back.
func (s *Store) Restore(ctx context.Context, id string) error {
	return s.setTrashed(ctx, id, false)
}

func (s *Store) setTrashed(ctx context.Context, id string, trashed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfLocked(id)
	if idx < 0 {
		return &domain.NotFoundError{ID: id}
	}
	s.state.Bookmarks[idx].Trashed = trashed
	s.state.Bookmarks[idx].Updated = s.nowMillis()
	return s.commitLocked(ctx)
}

// PermanentDelete physically removes a bookmark. Irreversible; the id is
// never reused.
func (s *Store) PermanentDelete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfLocked(id)
	if idx < 0 {
		return &domain.NotFoundError{ID: id}
	}
	s.state.Bookmarks = append(s.state.Bookmarks[:idx], s.state.Bookmarks[idx+1:]...)
	return s.commitLocked(ctx)
}

// TogglePin flips the pinned flag and returns the new value.
func (s *Store) TogglePin(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfLocked(id)
	if idx < 0 {
		return false, &domain.NotFoundError{ID: id}
	}
	b := &s.state.Bookmarks[idx]
	b.Pinned = !b.Pinned
	b.Updated = s.nowMillis()
	if err := s.commitLocked(ctx); err != nil {
		return false, err
	}
	return b.Pinned, nil
}

// Reorder moves fromID to the position toID occupied before the move. Both
// positions are resolved first, then the record is lifted out and reinserted
// at the resolved target index; ordering is purely a property of sequence
// position.
func (s *Store) Reorder(ctx context.Context, fromID, toID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idxFrom := s.indexOfLocked(fromID)
	if idxFrom < 0 {
		return &domain.NotFoundError{ID: fromID}
	}
	idxTo := s.indexOfLocked(toID)
	if idxTo < 0 {
		return &domain.NotFoundError{ID: toID}
	}
	if idxFrom == idxTo {
		return nil
	}

	item := s.state.Bookmarks[idxFrom]
	item.Updated = s.nowMillis()
	rest := append(s.state.Bookmarks[:idxFrom], s.state.Bookmarks[idxFrom+1:]...)
	rest = append(rest, domain.Bookmark{})
	copy(rest[idxTo+1:], rest[idxTo:])
	rest[idxTo] = item
	s.state.Bookmarks = rest

	return s.commitLocked(ctx)
}

// AddCategory appends a new category name. The set is append-only: existing
// names keep their positions forever.
func (s *Store) AddCategory(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return &domain.ValidationError{Field: "category", Reason: "must not be empty"}
	}
	for _, c := range s.state.Categories {
		if c == name {
			return &domain.DuplicateError{Category: name}
		}
	}
	s.state.Categories = append(s.state.Categories, name)
	return s.commitLocked(ctx)
}

// SetTheme persists the presentation theme. Not a content mutation, so no
// snapshot is captured.
func (s *Store) SetTheme(ctx context.Context, theme string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if theme == "" {
		return &domain.ValidationError{Field: "theme", Reason: "must not be empty"}
	}
	s.state.Theme = theme
	return s.persistLocked(ctx)
}

// MarkOpened records usage. It persists but bumps neither Updated nor the
// snapshot history: opening a link is not an edit.
func (s *Store) MarkOpened(ctx context.Context, id string) (domain.Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfLocked(id)
	if idx < 0 {
		return domain.Bookmark{}, &domain.NotFoundError{ID: id}
	}
	s.state.Bookmarks[idx].LastOpened = s.nowMillis()
	if err := s.persistLocked(ctx); err != nil {
		return domain.Bookmark{}, err
	}
	return s.state.Bookmarks[idx].Clone(), nil
}

// MergeImport folds an import payload into the collection under the store
// lock, so the read-merge-write cycle is atomic with respect to other
// operations. Returns the number of bookmarks added.
func (s *Store) MergeImport(ctx context.Context, payload domain.Payload, opts merge.Options) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := merge.Fold(&s.state, payload, opts, s.newID, s.nowMillis())
	if err := s.commitLocked(ctx); err != nil {
		return 0, err
	}
	s.log.Info("import merged",
		logger.Int("added", added),
		logger.Int("total", len(s.state.Bookmarks)))
	return added, nil
}

// ExportPayload snapshots the collection for export. The copy is taken under
// the lock; encryption can then run without holding up other operations.
func (s *Store) ExportPayload() domain.Payload {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.state.Clone()
	return domain.Payload{
		Categories: state.Categories,
		Bookmarks:  state.Bookmarks,
		ExportedAt: s.nowMillis(),
	}
}

// Get returns a copy of one bookmark.
func (s *Store) Get(id string) (domain.Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfLocked(id)
	if idx < 0 {
		return domain.Bookmark{}, &domain.NotFoundError{ID: id}
	}
	return s.state.Bookmarks[idx].Clone(), nil
}

// Bookmarks returns a copy of the whole collection in storage order.
func (s *Store) Bookmarks() []domain.Bookmark {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Bookmark, len(s.state.Bookmarks))
	for i, b := range s.state.Bookmarks {
		out[i] = b.Clone()
	}
	return out
}

// Categories returns a copy of the category list in order.
func (s *Store) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.state.Categories))
	copy(out, s.state.Categories)
	return out
}

// Theme returns the persisted theme.
func (s *Store) Theme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Theme
}

func (s *Store) indexOfLocked(id string) int {
	for i, b := range s.state.Bookmarks {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// duplicateExistsLocked implements the duplicate key: exact normalized URL
// plus category, live records only.
func (s *Store) duplicateExistsLocked(url, category string) bool {
	for _, b := range s.state.Bookmarks {
		if !b.Trashed && b.URL == url && b.Category == category {
			return true
		}
	}
	return false
}

// ensureCategoryLocked appends an unknown category rather than rejecting it,
// matching the lenient referential policy of imports.
func (s *Store) ensureCategoryLocked(name string) {
	for _, c := range s.state.Categories {
		if c == name {
			return
		}
	}
	s.state.Categories = append(s.state.Categories, name)
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
