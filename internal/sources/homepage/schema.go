package homepage

// Entry represents a single bookmark entry in the YAML
type Entry struct {
	Icon string `yaml:"icon"`
	Abbr string `yaml:"abbr"`
	Href string `yaml:"href"`
}

// Category represents a category with its bookmarks
// The YAML structure is: - CategoryName: { - BookmarkName: [{ icon, abbr, href }] }
// Each bookmark name maps to a list (array) with a single entry containing the properties
type Category map[string][]map[string][]Entry

// FileConfig is the root structure for bookmarks.yaml
type FileConfig []Category
