package store

import (
	"net/url"
	"sort"
	"strings"

	"github.com/marqs-app/marqs/internal/domain"
)

// Sort orders accepted by Query.
const (
	SortManual  = "manual"
	SortNewest  = "newest"
	SortOldest  = "oldest"
	SortTitle   = "title"
	SortUpdated = "updated"
)

// Query selects and orders a view over the collection. The zero value means
// everything live, in manual order.
type Query struct {
	// Filter is a category name, "all" (any case) for every category,
	// "pinned"/"unpinned" for pin state, or "trash" for the trash view.
	Filter string
	// Search is a free-text query; every whitespace-separated token must
	// match title, URL, notes or a tag, case-insensitively.
	Search string
	// Sort is one of the Sort constants. Unknown values fall back to manual.
	Sort string
}

// View filters beyond category names.
const (
	FilterTrash    = "trash"
	FilterPinned   = "pinned"
	FilterUnpinned = "unpinned"
)

// List returns a filtered, searched and sorted copy of the collection.
// Pinned bookmarks float to the front within every sort order.
func (s *Store) List(q Query) []domain.Bookmark {
	s.mu.Lock()
	defer s.mu.Unlock()

	trashView := strings.EqualFold(q.Filter, FilterTrash)
	pinnedView := strings.EqualFold(q.Filter, FilterPinned)
	unpinnedView := strings.EqualFold(q.Filter, FilterUnpinned)
	allView := q.Filter == "" || strings.EqualFold(q.Filter, domain.CategoryAll) ||
		pinnedView || unpinnedView

	out := make([]domain.Bookmark, 0, len(s.state.Bookmarks))
	for _, b := range s.state.Bookmarks {
		if b.Trashed != trashView {
			continue
		}
		if pinnedView && !b.Pinned {
			continue
		}
		if unpinnedView && b.Pinned {
			continue
		}
		if !trashView && !allView && b.Category != q.Filter {
			continue
		}
		if !matchesSearch(b, q.Search) {
			continue
		}
		out = append(out, b.Clone())
	}

	sortBookmarks(out, q.Sort)
	return out
}

func matchesSearch(b domain.Bookmark, search string) bool {
	search = strings.TrimSpace(strings.ToLower(search))
	if search == "" {
		return true
	}
	haystack := strings.ToLower(b.Title + " " + b.URL + " " + b.Notes + " " + strings.Join(b.Tags, " "))
	for _, token := range strings.Fields(search) {
		if !strings.Contains(haystack, token) {
			return false
		}
	}
	return true
}

func sortBookmarks(list []domain.Bookmark, order string) {
	var less func(a, b domain.Bookmark) bool
	switch order {
	case SortNewest:
		less = func(a, b domain.Bookmark) bool { return a.Created > b.Created }
	case SortOldest:
		less = func(a, b domain.Bookmark) bool { return a.Created < b.Created }
	case SortTitle:
		less = func(a, b domain.Bookmark) bool {
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		}
	case SortUpdated:
		less = func(a, b domain.Bookmark) bool { return a.Updated > b.Updated }
	default:
		// Manual order is the stored sequence
		less = nil
	}

	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Pinned != list[j].Pinned {
			return list[i].Pinned
		}
		if less == nil {
			return false
		}
		return less(list[i], list[j])
	})
}

// Stats summarizes the collection.
type Stats struct {
	Total      int
	Live       int
	Trashed    int
	Pinned     int
	ByCategory map[string]int
	ByDomain   map[string]int
}

// Stats computes collection counts. Host grouping strips a leading "www."
// so www and bare variants count together.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Stats{
		ByCategory: map[string]int{},
		ByDomain:   map[string]int{},
	}
	for _, b := range s.state.Bookmarks {
		st.Total++
		if b.Trashed {
			st.Trashed++
			continue
		}
		st.Live++
		if b.Pinned {
			st.Pinned++
		}
		st.ByCategory[b.Category]++
		if host := hostOf(b.URL); host != "" {
			st.ByDomain[host]++
		}
	}
	return st
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	return strings.TrimPrefix(host, "www.")
}
