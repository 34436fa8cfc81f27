// Package tui implements the dashboard: it re-runs the aggregator whenever
// the category selection or search text changes and renders the combined
// result with its loading and error state.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vikash893/newsdigest/internal/aggregate"
	"github.com/vikash893/newsdigest/internal/browser"
	"github.com/vikash893/newsdigest/internal/news"
	"github.com/vikash893/newsdigest/internal/store"
	"github.com/vikash893/newsdigest/internal/update"
)

type focusPane int

const (
	focusList focusPane = iota
	focusPreview
)

type mode int

const (
	modeSetup mode = iota
	modeNormal
	modeSearch
	modeFilter
	modeHelp
)

type App struct {
	aggregator *aggregate.Aggregator
	prefs      *store.Store

	articles []news.Article
	cursor   int
	focus    focusPane
	mode     mode

	width  int
	height int

	// Sub-components
	searchInput textinput.Model
	spinner     spinner.Model
	categoryBar categoryBar

	// Fetch state. The generation counter tags each dispatch so results
	// arriving for a superseded filter state are discarded.
	generation int
	loading    bool
	errMsg     string

	previewScroll int
	currentDate   string
	lastOpened    time.Time
	version       string
	updateVersion string
}

// RunOpts holds all parameters for launching the dashboard.
type RunOpts struct {
	Aggregator      *aggregate.Aggregator
	Prefs           *store.Store
	SavedCategories []string
	LastOpened      time.Time
	APIKeyMissing   bool
	Version         string
}

func NewApp(opts RunOpts) *App {
	ti := textinput.New()
	ti.Placeholder = "Search articles..."
	ti.Prompt = searchPromptStyle.Render("/ ")
	ti.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	startMode := modeNormal
	if opts.APIKeyMissing {
		startMode = modeSetup
	}

	return &App{
		aggregator:  opts.Aggregator,
		prefs:       opts.Prefs,
		categoryBar: newCategoryBar(opts.SavedCategories),
		searchInput: ti,
		spinner:     sp,
		currentDate: time.Now().Format("Jan 2"),
		lastOpened:  opts.LastOpened,
		mode:        startMode,
		version:     opts.Version,
	}
}

func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.checkUpdateCmd()}
	if a.mode != modeSetup {
		cmds = append(cmds, a.dispatchFetch(), a.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

// dispatchFetch captures the current filter state into a command and marks a
// new generation. Loading stays true until that generation settles.
func (a *App) dispatchFetch() tea.Cmd {
	a.generation++
	a.loading = true
	a.errMsg = ""

	gen := a.generation
	filters := aggregate.Filters{
		Categories: a.categoryBar.selected(),
		Query:      a.searchInput.Value(),
	}
	agg := a.aggregator
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		articles, err := agg.Fetch(ctx, filters)
		if err != nil {
			return fetchFailedMsg{generation: gen, err: err}
		}
		return articlesLoadedMsg{generation: gen, articles: articles}
	}
}

// startFetch dispatches a fetch and keeps the spinner ticking while it is
// in flight.
func (a *App) startFetch() tea.Cmd {
	return tea.Batch(a.dispatchFetch(), a.spinner.Tick)
}

func (a *App) persistSelectionCmd() tea.Cmd {
	if a.prefs == nil {
		return nil
	}
	ids := a.categoryBar.selected()
	if ids == nil {
		ids = []string{}
	}
	prefs := a.prefs
	return func() tea.Msg {
		// Best effort: a failed write only loses the selection for the
		// next launch.
		_ = prefs.SetSelectedCategories(ids)
		return nil
	}
}

func (a *App) checkUpdateCmd() tea.Cmd {
	version := a.version
	return func() tea.Msg {
		result := update.Check(context.Background(), version)
		if result == nil {
			return nil
		}
		return updateAvailableMsg{version: result.LatestVersion}
	}
}

func openBrowserCmd(url string) tea.Cmd {
	return func() tea.Msg {
		if err := browser.Open(url); err != nil {
			return browserErrMsg{err: err}
		}
		return nil
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case articlesLoadedMsg:
		if msg.generation != a.generation {
			return a, nil // superseded by a newer dispatch
		}
		a.loading = false
		a.errMsg = ""
		a.articles = msg.articles
		if a.cursor >= len(a.articles) {
			a.cursor = max(0, len(a.articles)-1)
		}
		return a, nil

	case fetchFailedMsg:
		if msg.generation != a.generation {
			return a, nil
		}
		a.loading = false
		a.articles = nil
		a.errMsg = msg.err.Error()
		return a, nil

	case browserErrMsg:
		a.errMsg = msg.err.Error()
		return a, nil

	case updateAvailableMsg:
		a.updateVersion = msg.version
		return a, nil

	case spinner.TickMsg:
		if a.loading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	}

	switch a.mode {
	case modeSetup:
		if msg.String() == "q" {
			return a, tea.Quit
		}
		return a, nil
	case modeSearch:
		return a.handleSearchKey(msg)
	case modeFilter:
		return a.handleFilterKey(msg)
	case modeHelp:
		if msg.String() == "?" || msg.String() == "esc" || msg.String() == "q" {
			a.mode = modeNormal
		}
		return a, nil
	}

	// Normal mode
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "j", "down":
		if a.focus == focusList && a.cursor < len(a.articles)-1 {
			a.cursor++
			a.previewScroll = 0
		} else if a.focus == focusPreview {
			a.previewScroll++
		}
		return a, nil
	case "k", "up":
		if a.focus == focusList && a.cursor > 0 {
			a.cursor--
			a.previewScroll = 0
		} else if a.focus == focusPreview && a.previewScroll > 0 {
			a.previewScroll--
		}
		return a, nil
	case "tab":
		if a.focus == focusList {
			a.focus = focusPreview
		} else {
			a.focus = focusList
		}
		return a, nil
	case "o", "enter":
		if len(a.articles) > 0 && a.cursor < len(a.articles) && a.articles[a.cursor].URL != "" {
			return a, openBrowserCmd(a.articles[a.cursor].URL)
		}
		return a, nil
	case "/":
		a.mode = modeSearch
		a.searchInput.Focus()
		return a, textinput.Blink
	case "f":
		a.mode = modeFilter
		a.categoryBar.filterMode = true
		return a, nil
	case "r":
		// Manual refresh: the whole cache is dropped so every request
		// shape goes back to the upstream.
		a.aggregator.InvalidateCache()
		return a, a.startFetch()
	case "?":
		a.mode = modeHelp
		return a, nil
	}

	return a, nil
}

func (a *App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeNormal
		a.searchInput.Blur()
		if a.searchInput.Value() != "" {
			a.searchInput.SetValue("")
			a.cursor = 0
			return a, a.startFetch()
		}
		return a, nil
	case "enter":
		a.mode = modeNormal
		a.searchInput.Blur()
		return a, nil
	}

	before := a.searchInput.Value()
	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)

	// Refetch only on actual value changes, not cursor moves etc. The
	// response cache keeps repeated prefixes cheap.
	if a.searchInput.Value() != before {
		a.cursor = 0
		return a, tea.Batch(cmd, a.startFetch())
	}
	return a, cmd
}

func (a *App) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "f":
		a.mode = modeNormal
		a.categoryBar.filterMode = false
		return a, nil
	case "left", "h":
		if a.categoryBar.filterCursor > 0 {
			a.categoryBar.filterCursor--
		}
		return a, nil
	case "right", "l":
		if a.categoryBar.filterCursor < len(a.categoryBar.categories)-1 {
			a.categoryBar.filterCursor++
		}
		return a, nil
	case " ", "enter":
		a.categoryBar.toggleCurrent()
		a.cursor = 0
		return a, tea.Batch(a.persistSelectionCmd(), a.startFetch())
	case "c":
		a.categoryBar.clear()
		a.cursor = 0
		return a, tea.Batch(a.persistSelectionCmd(), a.startFetch())
	case "1", "2", "3", "4", "5", "6", "7", "8":
		idx := int(msg.String()[0] - '1')
		if idx < len(a.categoryBar.categories) {
			a.categoryBar.toggle(a.categoryBar.categories[idx].ID)
			a.cursor = 0
			return a, tea.Batch(a.persistSelectionCmd(), a.startFetch())
		}
		return a, nil
	}
	return a, nil
}

func (a *App) View() string {
	if a.width == 0 {
		return lipgloss.NewStyle().Foreground(colorAccent).Render("  newsdigest")
	}

	if a.mode == modeSetup {
		return renderSetupScreen(a.width, a.height, a.updateVersion)
	}

	if a.mode == modeHelp {
		return a.renderHelp()
	}

	// Layout calculations
	headerHeight := 1
	filterHeight := 1
	statusHeight := 1
	contentHeight := a.height - headerHeight - filterHeight - statusHeight - 4 // borders

	listWidth := int(float64(a.width) * 0.35)
	previewWidth := a.width - listWidth - 1 // gap

	if contentHeight < 3 {
		contentHeight = 3
	}

	// Header
	headerLeft := headerStyle.Render("newsdigest")
	headerRight := headerDateStyle.Render(a.headerRightText())
	headerGap := a.width - lipgloss.Width(headerLeft) - lipgloss.Width(headerRight)
	if headerGap < 0 {
		headerGap = 0
	}
	header := headerLeft + fmt.Sprintf("%*s", headerGap, "") + headerRight

	// Category bar (replaced by the search input while searching)
	filter := a.categoryBar.render(a.width)
	if a.mode == modeSearch {
		filter = a.searchInput.View()
	}

	// List pane
	innerListW := listWidth - 4 // border + padding
	listContent := renderList(a.articles, a.cursor, contentHeight, innerListW)

	var listPane string
	if a.focus == focusList {
		listPane = listPaneActiveStyle.Width(listWidth - 2).Height(contentHeight).Render(listContent)
	} else {
		listPane = listPaneStyle.Width(listWidth - 2).Height(contentHeight).Render(listContent)
	}

	// Preview pane
	var selected *news.Article
	if len(a.articles) > 0 && a.cursor < len(a.articles) {
		selected = &a.articles[a.cursor]
	}
	innerPreviewW := previewWidth - 4
	previewContent := renderPreview(selected, innerPreviewW, contentHeight, a.previewScroll)

	var previewPane string
	if a.focus == focusPreview {
		previewPane = previewPaneActiveStyle.Width(previewWidth - 2).Height(contentHeight).Render(previewContent)
	} else {
		previewPane = previewPaneStyle.Width(previewWidth - 2).Height(contentHeight).Render(previewContent)
	}

	// Join panes
	content := lipgloss.JoinHorizontal(lipgloss.Top, listPane, previewPane)

	// Status bar
	status := renderStatusBar(
		len(a.articles),
		a.categoryBar.activeLabel(),
		a.width,
		a.mode == modeSearch,
		a.loading,
	)

	if a.loading {
		status = a.spinner.View() + " " + status
	}

	// Error banner with retry hint
	if a.errMsg != "" {
		status = errorBannerStyle.Render(a.errMsg + " — press r to retry")
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, filter, content, status)
}

// headerRightText assembles the right side of the header: a pending update,
// the previous visit, and today's date.
func (a *App) headerRightText() string {
	var parts []string
	if a.updateVersion != "" {
		parts = append(parts, "update v"+a.updateVersion)
	}
	if !a.lastOpened.IsZero() {
		parts = append(parts, "last visit "+relativeTime(a.lastOpened))
	}
	parts = append(parts, a.currentDate)
	return strings.Join(parts, " · ")
}

func (a *App) renderHelp() string {
	title := lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Render("newsdigest")
	dim := helpDimStyle

	help := title + dim.Render(" — Keyboard Shortcuts") + "\n\n" +
		dim.Render("Navigation") + "\n" +
		"  j/k, ↑/↓     Navigate article list\n" +
		"  tab           Switch focus between list and preview\n\n" +
		dim.Render("Actions") + "\n" +
		"  o, enter      Open article in browser\n" +
		"  r             Refresh (clears the cache, live fetch)\n" +
		"  /             Search articles\n" +
		"  f             Toggle category filter mode\n\n" +
		dim.Render("Filter Mode") + "\n" +
		"  ←/→, h/l     Move between categories\n" +
		"  space/enter   Toggle category\n" +
		"  1-8           Toggle category by number\n" +
		"  c             Clear all categories\n" +
		"  esc, f        Exit filter mode\n\n" +
		dim.Render("General") + "\n" +
		"  ?             Toggle this help\n" +
		"  q, ctrl+c    Quit"

	card := helpCardStyle.Render(help)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

// Run starts the dashboard.
func Run(opts RunOpts) error {
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
