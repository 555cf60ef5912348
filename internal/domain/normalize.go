package domain

import "regexp"

// schemePattern matches a leading "scheme://" prefix.
var schemePattern = regexp.MustCompile(`^[a-zA-Z]+://`)

// NormalizeURL guarantees an explicit scheme prefix, defaulting to https.
// The empty string normalizes to the empty string; callers must reject it
// before use.
func NormalizeURL(raw string) string {
	if raw == "" {
		return ""
	}
	if !schemePattern.MatchString(raw) {
		return "https://" + raw
	}
	return raw
}

// Normalize fills any missing field of a loaded bookmark with a generated
// default. Records written by older versions may lack ids, categories, tags
// or timestamps; after this call the bookmark satisfies every model
// invariant, including Updated >= Created.
func Normalize(b *Bookmark, newID func() string, now int64) {
	if b.ID == "" {
		b.ID = newID()
	}
	if b.Category == "" {
		b.Category = CategoryAll
	}
	if b.Tags == nil {
		b.Tags = []string{}
	}
	if b.Created == 0 {
		b.Created = now
	}
	if b.Updated == 0 {
		b.Updated = now
	}
	if b.Updated < b.Created {
		b.Updated = b.Created
	}
}
