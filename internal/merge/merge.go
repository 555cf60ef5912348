// Package merge folds external bookmark sets into a store state without
// creating duplicates and without touching existing records.
package merge

import (
	"encoding/json"
	"strings"

	"github.com/marqs-app/marqs/internal/domain"
)

// Options tune the duplicate key used while folding.
type Options struct {
	// DedupeByURLOnly drops the category from the duplicate key. Used by
	// paste-import, which has no category concept.
	DedupeByURLOnly bool
}

// Fold merges payload into state and returns the number of bookmarks
// actually added. Incoming category names unknown to the state are appended
// in order; existing categories keep their positions. Incoming bookmarks
// matching a live (non-trashed) record on the duplicate key are skipped
// entirely: the existing record stays authoritative, first write wins.
//
// Folding is idempotent: replaying the same payload adds nothing, because
// the duplicate key is (url, category), never the id. Duplicates inside the
// payload itself collapse too, since each added bookmark is visible to the
// checks that follow it.
func Fold(state *domain.State, payload domain.Payload, opts Options, newID func() string, now int64) int {
	for _, name := range payload.Categories {
		if name == "" {
			continue
		}
		if !containsCategory(state.Categories, name) {
			state.Categories = append(state.Categories, name)
		}
	}

	added := 0
	for _, in := range payload.Bookmarks {
		if in.URL == "" {
			continue
		}
		category := in.Category
		if category == "" {
			category = domain.CategoryAll
		}
		if hasLiveMatch(state.Bookmarks, in.URL, category, opts.DedupeByURLOnly) {
			continue
		}

		title := in.Title
		if title == "" {
			title = in.URL
		}
		tags := in.Tags
		if tags == nil {
			tags = []string{}
		}
		created := in.Created
		if created == 0 {
			created = now
		}

		state.Bookmarks = append(state.Bookmarks, domain.Bookmark{
			ID:       newID(),
			Title:    title,
			URL:      in.URL,
			Category: category,
			Tags:     tags,
			Notes:    in.Notes,
			Created:  created,
			Updated:  now,
			Pinned:   in.Pinned,
			Trashed:  in.Trashed,
		})
		added++
	}
	return added
}

func containsCategory(categories []string, name string) bool {
	for _, c := range categories {
		if c == name {
			return true
		}
	}
	return false
}

func hasLiveMatch(bookmarks []domain.Bookmark, url, category string, urlOnly bool) bool {
	for _, b := range bookmarks {
		if b.Trashed || b.URL != url {
			continue
		}
		if urlOnly || b.Category == category {
			return true
		}
	}
	return false
}

// ParsePayload decodes a plain export file.
func ParsePayload(data []byte) (domain.Payload, error) {
	var p domain.Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return domain.Payload{}, &domain.ParseError{Reason: "not a bookmark export", Err: err}
	}
	return p, nil
}

// PayloadFromLines builds a payload from newline-delimited URLs: lines are
// trimmed, blank lines dropped, every URL normalized, category fixed to
// "All". Feed the result to Fold with DedupeByURLOnly.
func PayloadFromLines(text string) domain.Payload {
	var p domain.Payload
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		url := domain.NormalizeURL(line)
		p.Bookmarks = append(p.Bookmarks, domain.Bookmark{
			Title:    url,
			URL:      url,
			Category: domain.CategoryAll,
		})
	}
	return p
}
