package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vikash893/newsdigest/internal/category"
)

// categoryBar renders the fixed category catalog as toggleable tabs.
type categoryBar struct {
	categories   []category.Category
	active       map[string]bool
	filterMode   bool
	filterCursor int
}

func newCategoryBar(saved []string) categoryBar {
	bar := categoryBar{
		categories: category.All(),
		active:     make(map[string]bool),
	}
	for _, id := range saved {
		if category.Valid(id) {
			bar.active[id] = true
		}
	}
	return bar
}

func (b *categoryBar) toggle(id string) {
	if b.active[id] {
		delete(b.active, id)
	} else {
		b.active[id] = true
	}
}

func (b *categoryBar) toggleCurrent() {
	if b.filterCursor < len(b.categories) {
		b.toggle(b.categories[b.filterCursor].ID)
	}
}

func (b *categoryBar) clear() {
	b.active = make(map[string]bool)
}

// selected returns the active category ids in catalog order, or nil when no
// category is selected.
func (b *categoryBar) selected() []string {
	if len(b.active) == 0 {
		return nil
	}
	var out []string
	for _, c := range b.categories {
		if b.active[c.ID] {
			out = append(out, c.ID)
		}
	}
	return out
}

func (b *categoryBar) activeLabel() string {
	if len(b.active) == 0 {
		return "All"
	}
	var names []string
	for _, c := range b.categories {
		if b.active[c.ID] {
			names = append(names, c.Name)
		}
	}
	return strings.Join(names, ", ")
}

func (b *categoryBar) render(width int) string {
	sep := tabSeparatorStyle.Render(" · ")
	var parts []string

	// "All" tab lights up when nothing is selected
	if len(b.active) == 0 {
		parts = append(parts, activeTabStyle(colorPrimary).Render("All"))
	} else {
		parts = append(parts, tabInactiveStyle.Render("All"))
	}

	for i, c := range b.categories {
		label := c.Icon + " " + c.Name
		if b.filterMode && i == b.filterCursor {
			label = "[" + label + "]"
		}
		if b.active[c.ID] {
			parts = append(parts, activeTabStyle(c.Color).Render(label))
		} else {
			parts = append(parts, tabInactiveStyle.Render(label))
		}
	}

	// Build row with · separators, stopping when we'd exceed width
	var row string
	for i, part := range parts {
		candidate := row
		if i > 0 {
			candidate += sep
		}
		candidate += part
		if lipgloss.Width(candidate) > width && row != "" {
			break
		}
		row = candidate
	}

	barStyle := lipgloss.NewStyle().
		Width(width).
		PaddingLeft(1)
	return barStyle.Render(row)
}

func activeTabStyle(color lipgloss.AdaptiveColor) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(color).
		Padding(0, 1).
		Bold(true)
}
