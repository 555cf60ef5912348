package domain

import "testing"

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"example.com", "https://example.com"},
		{"example.com/path?q=1", "https://example.com/path?q=1"},
		{"https://example.com", "https://example.com"},
		{"http://example.com", "http://example.com"},
		{"ftp://files.example.com", "ftp://files.example.com"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeURL(tt.in); got != tt.want {
			t.Errorf("NormalizeURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeFillsMissingFields(t *testing.T) {
	ids := 0
	newID := func() string {
		ids++
		return "gen_1"
	}

	b := Bookmark{URL: "https://example.com"}
	Normalize(&b, newID, 1000)

	if b.ID != "gen_1" {
		t.Errorf("Normalize() id = %q, want generated id", b.ID)
	}
	if b.Category != CategoryAll {
		t.Errorf("Normalize() category = %q, want %q", b.Category, CategoryAll)
	}
	if b.Tags == nil {
		t.Error("Normalize() should replace nil tags with empty slice")
	}
	if b.Created != 1000 || b.Updated != 1000 {
		t.Errorf("Normalize() timestamps = %d/%d, want 1000/1000", b.Created, b.Updated)
	}
}

func TestNormalizeKeepsExistingFields(t *testing.T) {
	b := Bookmark{
		ID:       "b_keep",
		Title:    "Docs",
		URL:      "https://docs.example.com",
		Category: "Work",
		Tags:     []string{"go"},
		Created:  500,
		Updated:  800,
	}
	Normalize(&b, func() string { return "gen" }, 1000)

	if b.ID != "b_keep" || b.Category != "Work" || b.Created != 500 || b.Updated != 800 {
		t.Errorf("Normalize() changed fields that were already set: %+v", b)
	}
}

func TestNormalizeRepairsUpdatedBeforeCreated(t *testing.T) {
	b := Bookmark{ID: "b_x", URL: "https://x.com", Created: 900, Updated: 100}
	Normalize(&b, func() string { return "gen" }, 1000)

	if b.Updated != b.Created {
		t.Errorf("Normalize() updated = %d, want clamped to created %d", b.Updated, b.Created)
	}
}
