// Package homepage imports bookmarks from a Homepage-style bookmarks.yaml,
// so an existing dashboard file can seed the store.
package homepage

import (
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/marqs-app/marqs/internal/domain"
)

// templateVarPattern matches Homepage template variables ({{HOMEPAGE_VAR_...}}).
var templateVarPattern = regexp.MustCompile(`\{\{[^}]+\}\}`)

// Loader handles loading and parsing of a Homepage bookmarks.yaml
type Loader struct {
	filePath string
}

// NewLoader creates a new Homepage bookmark loader
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Load reads and parses the bookmarks.yaml file
func (l *Loader) Load() (FileConfig, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, &domain.ParseError{Reason: "failed to read bookmarks file", Err: err}
	}
	return Parse(data)
}

// Parse decodes bookmarks.yaml content. Homepage template variables are
// stripped first; they carry secrets the import has no use for.
func Parse(data []byte) (FileConfig, error) {
	data = templateVarPattern.ReplaceAll(data, []byte(`""`))

	var config FileConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, &domain.ParseError{Reason: "failed to parse bookmarks yaml", Err: err}
	}
	return config, nil
}

// Payload converts a parsed config into an import payload. Each YAML
// category becomes a store category; titles prefer the explicit abbr and
// fall back to the bookmark name; entries without an href are skipped.
func (c FileConfig) Payload() domain.Payload {
	var p domain.Payload

	for _, category := range c {
		for categoryName, bookmarkList := range category {
			if categoryName != "" {
				p.Categories = append(p.Categories, categoryName)
			}
			for _, bookmarkMap := range bookmarkList {
				for bookmarkName, entryList := range bookmarkMap {
					if len(entryList) == 0 {
						continue
					}
					// Each bookmark has a list with a single entry
					entry := entryList[0]
					if entry.Href == "" {
						continue
					}

					title := entry.Abbr
					if title == "" {
						title = bookmarkName
					}

					p.Bookmarks = append(p.Bookmarks, domain.Bookmark{
						Title:    title,
						URL:      domain.NormalizeURL(entry.Href),
						Category: categoryName,
					})
				}
			}
		}
	}
	return p
}
