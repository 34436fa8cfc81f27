// Package category holds the fixed catalog of news categories shown in the
// dashboard. The list is static and not user-extensible.
package category

import "github.com/charmbracelet/lipgloss"

// Category describes one entry of the catalog: a stable id, a display name,
// an icon glyph, and the accent color used by the filter bar.
type Category struct {
	ID    string
	Name  string
	Icon  string
	Color lipgloss.AdaptiveColor
}

var catalog = []Category{
	{ID: "technology", Name: "Technology", Icon: "⚙", Color: lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#3B82F6"}},
	{ID: "business", Name: "Business", Icon: "$", Color: lipgloss.AdaptiveColor{Light: "#16A34A", Dark: "#22C55E"}},
	{ID: "science", Name: "Science", Icon: "⚛", Color: lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A855F7"}},
	{ID: "health", Name: "Health", Icon: "♥", Color: lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"}},
	{ID: "sports", Name: "Sports", Icon: "⚑", Color: lipgloss.AdaptiveColor{Light: "#EA580C", Dark: "#F97316"}},
	{ID: "entertainment", Name: "Entertainment", Icon: "♬", Color: lipgloss.AdaptiveColor{Light: "#DB2777", Dark: "#EC4899"}},
	{ID: "world", Name: "World News", Icon: "◉", Color: lipgloss.AdaptiveColor{Light: "#4F46E5", Dark: "#6366F1"}},
	{ID: "politics", Name: "Politics", Icon: "⚖", Color: lipgloss.AdaptiveColor{Light: "#4B5563", Dark: "#9CA3AF"}},
}

// All returns the catalog in display order.
func All() []Category {
	out := make([]Category, len(catalog))
	copy(out, catalog)
	return out
}

// IDs returns the category ids in display order.
func IDs() []string {
	ids := make([]string, len(catalog))
	for i, c := range catalog {
		ids[i] = c.ID
	}
	return ids
}

// ByID looks up a catalog entry.
func ByID(id string) (Category, bool) {
	for _, c := range catalog {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// Valid reports whether id names a catalog entry.
func Valid(id string) bool {
	_, ok := ByID(id)
	return ok
}
