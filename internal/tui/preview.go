package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vikash893/newsdigest/internal/category"
	"github.com/vikash893/newsdigest/internal/news"
)

func renderPreview(article *news.Article, width, height, scroll int) string {
	if article == nil {
		return centerText("Select an article", width, height)
	}

	contentWidth := width - 2
	if contentWidth < 10 {
		contentWidth = 10
	}

	title := previewTitleStyle.Width(contentWidth).Render(article.Title)

	categoryLabel := article.Category
	if c, ok := category.ByID(article.Category); ok {
		categoryLabel = c.Icon + " " + c.Name
	}
	byline := previewBylineStyle.Render(fmt.Sprintf("%s · %s", article.Source, categoryLabel))

	var published string
	if !article.PublishedAt.IsZero() {
		published = article.PublishedAt.Format("Jan 2, 2006 15:04")
	}
	meta := itemTimeStyle.Render(strings.TrimSuffix(
		fmt.Sprintf("%s · %s · %s", article.Author, article.ReadTime, published), " · "))

	body := previewBodyStyle.Width(contentWidth).Render(wrapText(article.Summary, contentWidth))

	var link string
	if article.URL != "" {
		link = previewLinkStyle.Width(contentWidth).Render("Read more: " + article.URL)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, title, byline, meta, "", body, link)

	// Apply scroll offset
	lines := strings.Split(content, "\n")
	if scroll > 0 && scroll < len(lines) {
		lines = lines[scroll:]
	}

	// Pad to fill height
	if len(lines) < height {
		lines = append(lines, make([]string, height-len(lines))...)
	} else if len(lines) > height {
		lines = lines[:height]
	}

	return strings.Join(lines, "\n")
}

func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
		} else {
			line += " " + w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}
