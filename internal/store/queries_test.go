package store

import (
	"context"
	"errors"
	"testing"

	"github.com/marqs-app/marqs/internal/domain"
)

func seedStore(t *testing.T) *Store {
	t.Helper()
	s, _ := newTestStore(t)
	ctx := context.Background()

	drafts := []Draft{
		{Title: "Go Packages", URL: "https://pkg.go.dev", Category: "Tools", Tags: []string{"go", "docs"}},
		{Title: "GitHub", URL: "https://github.com", Category: "Work", Notes: "code hosting"},
		{Title: "Hacker News", URL: "https://news.ycombinator.com", Category: "Work"},
		{Title: "Wiki", URL: "https://en.wikipedia.org", Category: "Tools"},
	}
	for _, d := range drafts {
		if _, err := s.Create(ctx, d); err != nil {
			t.Fatalf("Create(%q) failed: %v", d.URL, err)
		}
	}
	return s
}

func TestListFilterByCategory(t *testing.T) {
	s := seedStore(t)

	got := s.List(Query{Filter: "Work"})
	if len(got) != 2 {
		t.Fatalf("List(Work) = %d, want 2", len(got))
	}
	for _, b := range got {
		if b.Category != "Work" {
			t.Errorf("List(Work) returned %q record", b.Category)
		}
	}
}

func TestListAllFilterIsCaseInsensitive(t *testing.T) {
	s := seedStore(t)

	for _, filter := range []string{"", "All", "all", "ALL"} {
		if got := s.List(Query{Filter: filter}); len(got) != 4 {
			t.Errorf("List(%q) = %d, want all 4", filter, len(got))
		}
	}
}

func TestListSearchTokensMustAllMatch(t *testing.T) {
	s := seedStore(t)

	if got := s.List(Query{Search: "go docs"}); len(got) != 1 || got[0].Title != "Go Packages" {
		t.Errorf("List(search go docs) = %v, want only Go Packages", orderOf(got))
	}
	// Tokens match across different fields: title and notes
	if got := s.List(Query{Search: "github hosting"}); len(got) != 1 {
		t.Errorf("List(search github hosting) = %d, want 1", len(got))
	}
	if got := s.List(Query{Search: "go zebra"}); len(got) != 0 {
		t.Errorf("List(search go zebra) = %d, want 0", len(got))
	}
}

func TestListSortOrders(t *testing.T) {
	s := seedStore(t)

	got := s.List(Query{Sort: SortNewest})
	if got[0].Title != "Wiki" {
		t.Errorf("newest first = %q, want Wiki", got[0].Title)
	}
	got = s.List(Query{Sort: SortOldest})
	if got[0].Title != "Go Packages" {
		t.Errorf("oldest first = %q, want Go Packages", got[0].Title)
	}
	got = s.List(Query{Sort: SortTitle})
	if got[0].Title != "GitHub" {
		t.Errorf("title order first = %q, want GitHub", got[0].Title)
	}
}

func TestListPinnedFloatFirst(t *testing.T) {
	s := seedStore(t)
	ctx := context.Background()

	var wikiID string
	for _, b := range s.Bookmarks() {
		if b.Title == "Wiki" {
			wikiID = b.ID
		}
	}
	if _, err := s.TogglePin(ctx, wikiID); err != nil {
		t.Fatalf("TogglePin() failed: %v", err)
	}

	got := s.List(Query{Sort: SortOldest})
	if got[0].Title != "Wiki" {
		t.Errorf("pinned record = position of %q, want Wiki first regardless of sort", got[0].Title)
	}
}

func TestListPinFilters(t *testing.T) {
	s := seedStore(t)
	ctx := context.Background()

	got := s.List(Query{Filter: "Work"})
	if _, err := s.TogglePin(ctx, got[0].ID); err != nil {
		t.Fatalf("TogglePin() failed: %v", err)
	}

	if got := s.List(Query{Filter: FilterPinned}); len(got) != 1 {
		t.Errorf("List(pinned) = %d, want 1", len(got))
	}
	if got := s.List(Query{Filter: FilterUnpinned}); len(got) != 3 {
		t.Errorf("List(unpinned) = %d, want 3", len(got))
	}
}

func TestListExcludesTrashed(t *testing.T) {
	s := seedStore(t)
	ctx := context.Background()

	got := s.List(Query{Filter: "Work"})
	if err := s.Trash(ctx, got[0].ID); err != nil {
		t.Fatalf("Trash() failed: %v", err)
	}

	if got := s.List(Query{Filter: "Work"}); len(got) != 1 {
		t.Errorf("List(Work) after trash = %d, want 1", len(got))
	}
	if got := s.List(Query{Filter: FilterTrash}); len(got) != 1 {
		t.Errorf("List(trash) = %d, want 1", len(got))
	}
}

func TestStats(t *testing.T) {
	s := seedStore(t)
	ctx := context.Background()

	// One extra www record so domain grouping can merge it
	if _, err := s.Create(ctx, Draft{URL: "https://www.github.com/explore", Category: "Tools"}); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	trash := s.List(Query{Filter: "Tools"})
	if err := s.Trash(ctx, trash[0].ID); err != nil {
		t.Fatalf("Trash() failed: %v", err)
	}

	st := s.Stats()
	if st.Total != 5 || st.Live != 4 || st.Trashed != 1 {
		t.Errorf("Stats counts = %+v, want total 5, live 4, trashed 1", st)
	}
	if st.ByDomain["github.com"] != 2 {
		t.Errorf("ByDomain[github.com] = %d, want www and bare merged to 2", st.ByDomain["github.com"])
	}
}

func TestFindDuplicatesGroupsAcrossCategories(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	first, err := s.Create(ctx, Draft{URL: "https://dup.com", Category: "Work"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if _, err := s.Create(ctx, Draft{URL: "https://dup.com", Category: "Tools"}); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if _, err := s.Create(ctx, Draft{URL: "https://solo.com"}); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	groups := s.FindDuplicates()
	if len(groups) != 1 {
		t.Fatalf("FindDuplicates() = %d groups, want 1", len(groups))
	}
	g := groups[0]
	if g.URL != "https://dup.com" || len(g.Bookmarks) != 2 {
		t.Fatalf("group = %+v, want both dup.com records", g)
	}
	if g.Bookmarks[0].ID != first.ID {
		t.Errorf("group order = %s first, want earliest occurrence %s", g.Bookmarks[0].ID, first.ID)
	}
}

func TestResolveDuplicatesKeepsFirst(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	first, err := s.Create(ctx, Draft{URL: "https://dup.com", Category: "Work"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	second, err := s.Create(ctx, Draft{URL: "https://dup.com", Category: "Tools"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	trashed, err := s.ResolveDuplicates(ctx)
	if err != nil {
		t.Fatalf("ResolveDuplicates() failed: %v", err)
	}
	if trashed != 1 {
		t.Errorf("ResolveDuplicates() = %d, want 1", trashed)
	}

	kept, err := s.Get(first.ID)
	if err != nil || kept.Trashed {
		t.Errorf("first occurrence trashed, want kept")
	}
	gone, err := s.Get(second.ID)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if !gone.Trashed {
		t.Error("later duplicate should be trashed, not deleted")
	}
	if gone.Updated != second.Updated {
		t.Errorf("resolution changed Updated from %d to %d, want untouched", second.Updated, gone.Updated)
	}

	// Second pass finds nothing
	trashed, err = s.ResolveDuplicates(ctx)
	if err != nil || trashed != 0 {
		t.Errorf("ResolveDuplicates() repeat = %d, %v, want 0, nil", trashed, err)
	}
}

func TestGetUnknownID(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Get("b_missing")
	var nferr *domain.NotFoundError
	if !errors.As(err, &nferr) {
		t.Fatalf("Get() = %v, want NotFoundError", err)
	}
}
