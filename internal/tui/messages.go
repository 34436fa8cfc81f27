package tui

import "github.com/vikash893/newsdigest/internal/news"

// articlesLoadedMsg carries a settled fetch. The generation ties it to the
// dispatch that produced it so stale results can be discarded.
type articlesLoadedMsg struct {
	generation int
	articles   []news.Article
}

type fetchFailedMsg struct {
	generation int
	err        error
}

// browserErrMsg reports a failed browser launch without touching the
// article list.
type browserErrMsg struct {
	err error
}

type updateAvailableMsg struct {
	version string
}
