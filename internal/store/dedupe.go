package store

import (
	"context"

	"github.com/marqs-app/marqs/internal/domain"
)

// DuplicateGroup collects the live bookmarks sharing one normalized URL,
// in storage order.
type DuplicateGroup struct {
	URL       string
	Bookmarks []domain.Bookmark
}

// FindDuplicates groups live bookmarks by exact normalized URL across all
// categories and returns the groups with more than one member, ordered by
// first appearance.
func (s *Store) FindDuplicates() []DuplicateGroup {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findDuplicatesLocked()
}

func (s *Store) findDuplicatesLocked() []DuplicateGroup {
	byURL := map[string][]domain.Bookmark{}
	order := []string{}
	for _, b := range s.state.Bookmarks {
		if b.Trashed {
			continue
		}
		if _, seen := byURL[b.URL]; !seen {
			order = append(order, b.URL)
		}
		byURL[b.URL] = append(byURL[b.URL], b.Clone())
	}

	groups := []DuplicateGroup{}
	for _, url := range order {
		if len(byURL[url]) > 1 {
			groups = append(groups, DuplicateGroup{URL: url, Bookmarks: byURL[url]})
		}
	}
	return groups
}

// ResolveDuplicates trashes every group member except the first occurrence.
// The survivors and the trashed copies keep their Updated timestamps: the
// records themselves were not edited, only their visibility. Returns the
// number of bookmarks trashed.
func (s *Store) ResolveDuplicates(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trashed := 0
	for _, group := range s.findDuplicatesLocked() {
		for _, dup := range group.Bookmarks[1:] {
			if idx := s.indexOfLocked(dup.ID); idx >= 0 {
				s.state.Bookmarks[idx].Trashed = true
				trashed++
			}
		}
	}
	if trashed == 0 {
		return 0, nil
	}
	if err := s.commitLocked(ctx); err != nil {
		return 0, err
	}
	return trashed, nil
}
