// Package browser extracts bookmarks from browser-exported HTML. The
// extraction is deliberately naive: every anchor's href and visible text
// become a bookmark, nothing else in the file is interpreted.
package browser

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/marqs-app/marqs/internal/domain"
)

// Payload walks the HTML and returns an import payload with every anchor as
// a bookmark under the "Imported" category. The tokenizer is tolerant of the
// broken markup browser exports tend to contain; input that yields no
// anchors simply produces an empty payload.
func Payload(htmlText string) domain.Payload {
	p := domain.Payload{Categories: []string{domain.CategoryImported}}

	tokenizer := html.NewTokenizer(strings.NewReader(htmlText))
	var href string
	var text strings.Builder
	inAnchor := false

	flush := func() {
		if href == "" {
			return
		}
		p.Bookmarks = append(p.Bookmarks, domain.Bookmark{
			Title:    strings.TrimSpace(text.String()),
			URL:      domain.NormalizeURL(href),
			Category: domain.CategoryImported,
		})
	}

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			if inAnchor {
				flush()
			}
			return p

		case html.StartTagToken:
			token := tokenizer.Token()
			if token.Data != "a" {
				continue
			}
			if inAnchor {
				// Unclosed anchor, emit what we have
				flush()
			}
			inAnchor = true
			href = ""
			text.Reset()
			for _, attr := range token.Attr {
				if attr.Key == "href" {
					href = attr.Val
					break
				}
			}

		case html.TextToken:
			if inAnchor {
				text.Write(tokenizer.Text())
			}

		case html.EndTagToken:
			token := tokenizer.Token()
			if token.Data == "a" && inAnchor {
				flush()
				inAnchor = false
			}
		}
	}
}

// Looks reports whether a pasted blob is probably HTML rather than a URL
// list, so callers can pick the right import path.
func Looks(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), "<")
}
