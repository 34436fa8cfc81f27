package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vikash893/newsdigest/internal/config"
)

// renderSetupScreen is shown instead of the dashboard when no API key is
// configured. Retrieval is never attempted in this state.
func renderSetupScreen(width, height int, updateVersion string) string {
	title := lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Render("newsdigest")
	dim := helpDimStyle
	key := lipgloss.NewStyle().Foreground(colorAccent).Bold(true)

	lines := []string{
		title + dim.Render(" — API key required"),
		"",
		"newsdigest needs a NewsAPI key before it can fetch articles.",
		"",
		dim.Render("1.") + " Register for a free key at " + key.Render("https://newsapi.org/register"),
		dim.Render("2.") + " Export it:    " + key.Render("export "+config.EnvAPIKey+"=<your-key>"),
		dim.Render("   ") + " or add " + key.Render("api_key") + " to " + config.DefaultConfigPath(),
		dim.Render("   ") + " (a .env file in the working directory works too)",
		dim.Render("3.") + " Restart newsdigest.",
		"",
		dim.Render("q quit"),
	}

	if updateVersion != "" {
		lines = append(lines, "", dim.Render("Update available: v"+updateVersion))
	}

	card := setupCardStyle.Render(strings.Join(lines, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
