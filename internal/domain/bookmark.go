package domain

// Storage keys and fixed names. These are wire-format constants shared with
// every previously written store and export file. Never change them.
const (
	// StateKey is the persistence key holding the full store state.
	StateKey = "bookmark_pro_v1"

	// BackupKey is the persistence key holding the rolling backup list.
	BackupKey = "bookmark_pro_snapshots"

	// CategoryAll is the fallback category every bookmark lands in when
	// no category is given.
	CategoryAll = "All"

	// CategoryImported is the category assigned to browser-HTML imports.
	CategoryImported = "Imported"

	// ThemeLight and ThemeDark are the two persisted theme values.
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// DefaultCategories returns the category set a fresh store starts with.
func DefaultCategories() []string {
	return []string{"Work", "Tools", CategoryAll}
}

// Bookmark is a single saved link.
// All timestamps are epoch milliseconds, matching the persisted JSON form.
type Bookmark struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the canonical unique identifier, generated at creation.
	// IDs are never reused, not even after permanent deletion.
	ID string `json:"id"`

	// ─────────────────────────────
	// Content
	// ─────────────────────────────

	// Title defaults to the URL when left blank at creation.
	Title string `json:"title"`

	// URL always carries an explicit scheme (see NormalizeURL).
	URL string `json:"url"`

	// Category references an entry of the store's category set.
	Category string `json:"category"`

	// Tags is an ordered list, never nil in persisted form.
	Tags []string `json:"tags"`

	Notes string `json:"notes"`

	// ─────────────────────────────
	// Metadata
	// ─────────────────────────────

	// Created is set once at creation time.
	Created int64 `json:"created"`

	// Updated is bumped on every edit. Invariant: Updated >= Created.
	Updated int64 `json:"updated"`

	Pinned bool `json:"pinned"`

	// Trashed marks a bookmark as soft-deleted. The record stays in the
	// collection and can be restored.
	Trashed bool `json:"trashed"`

	// LastOpened tracks usage without counting as an edit.
	LastOpened int64 `json:"lastOpened,omitempty"`
}

// Clone returns a deep copy of the bookmark.
func (b Bookmark) Clone() Bookmark {
	c := b
	if b.Tags != nil {
		c.Tags = make([]string, len(b.Tags))
		copy(c.Tags, b.Tags)
	}
	return c
}

// State is the persisted form of the whole store, written as one JSON
// document under StateKey.
type State struct {
	Categories []string   `json:"categories"`
	Bookmarks  []Bookmark `json:"bookmarks"`
	Theme      string     `json:"theme"`
	SavedAt    int64      `json:"savedAt"`
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	c := s
	c.Categories = make([]string, len(s.Categories))
	copy(c.Categories, s.Categories)
	c.Bookmarks = make([]Bookmark, len(s.Bookmarks))
	for i, b := range s.Bookmarks {
		c.Bookmarks[i] = b.Clone()
	}
	return c
}

// Payload is the import/export form. Plain exports serialize it directly;
// encrypted exports carry it as the ciphertext plaintext. Imports accept the
// same shape, treating every bookmark as a partial descriptor.
type Payload struct {
	Categories []string   `json:"categories"`
	Bookmarks  []Bookmark `json:"bookmarks"`
	ExportedAt int64      `json:"exportedAt"`
}

// BackupEntry is one element of the rolling backup list under BackupKey,
// newest first.
type BackupEntry struct {
	At   int64 `json:"at"`
	Data State `json:"data"`
}
