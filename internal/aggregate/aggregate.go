// Package aggregate decides which fetches to issue for the current filter
// state and merges the results into one ordered, deduplicated list.
package aggregate

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/vikash893/newsdigest/internal/news"
)

// Page sizes per retrieval intent.
const (
	QueryPageSize    = 50
	CategoryPageSize = 10
	HeadlinePageSize = 30
)

// Fetcher performs a single retrieval intent against the upstream API.
type Fetcher interface {
	FetchByCategory(ctx context.Context, category string, pageSize int) ([]news.Article, error)
	FetchByQuery(ctx context.Context, query string, pageSize int) ([]news.Article, error)
	FetchTopHeadlines(ctx context.Context, pageSize int) ([]news.Article, error)
}

// Filters holds the active retrieval inputs. A non-empty query takes
// precedence over the category selection.
type Filters struct {
	Categories []string
	Query      string
}

// Aggregator orchestrates fetches through the response cache.
type Aggregator struct {
	fetcher Fetcher
	cache   *news.Cache
	logger  *slog.Logger
}

// New creates an Aggregator. The cache is consulted before every fetch and
// updated after every success.
func New(fetcher Fetcher, cache *news.Cache, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{fetcher: fetcher, cache: cache, logger: logger}
}

// Fetch resolves the current filters into one merged article list.
//
// Selection policy, in priority order: a non-empty query issues exactly one
// search (categories are ignored); otherwise each selected category is
// fetched concurrently; with no filters at all, top headlines are fetched.
// Per-category failures are logged and absorbed; single-intent failures
// propagate.
func (a *Aggregator) Fetch(ctx context.Context, filters Filters) ([]news.Article, error) {
	var merged []news.Article

	switch {
	case strings.TrimSpace(filters.Query) != "":
		query := strings.TrimSpace(filters.Query)
		articles, err := a.cached(ctx, news.QueryKey(query, QueryPageSize), func(ctx context.Context) ([]news.Article, error) {
			return a.fetcher.FetchByQuery(ctx, query, QueryPageSize)
		})
		if err != nil {
			return nil, err
		}
		merged = articles

	case len(filters.Categories) > 0:
		merged = a.fetchCategories(ctx, filters.Categories)

	default:
		articles, err := a.cached(ctx, news.HeadlinesKey(HeadlinePageSize), func(ctx context.Context) ([]news.Article, error) {
			return a.fetcher.FetchTopHeadlines(ctx, HeadlinePageSize)
		})
		if err != nil {
			return nil, err
		}
		merged = articles
	}

	return Reconcile(merged), nil
}

// fetchCategories launches one fetch per category and waits for all of them.
// Failed categories are excluded from the merge; even a total failure yields
// an empty list rather than an error.
func (a *Aggregator) fetchCategories(ctx context.Context, categories []string) []news.Article {
	results := make([][]news.Article, len(categories))

	var wg sync.WaitGroup
	for i, cat := range categories {
		wg.Add(1)
		go func(i int, cat string) {
			defer wg.Done()
			articles, err := a.cached(ctx, news.CategoryKey(cat, CategoryPageSize), func(ctx context.Context) ([]news.Article, error) {
				return a.fetcher.FetchByCategory(ctx, cat, CategoryPageSize)
			})
			if err != nil {
				a.logger.Warn("category fetch failed", "category", cat, "error", err)
				return
			}
			results[i] = articles
		}(i, cat)
	}
	wg.Wait()

	// Merge in selection order so dedup keeps a deterministic winner.
	var merged []news.Article
	for _, articles := range results {
		merged = append(merged, articles...)
	}
	return merged
}

// InvalidateCache clears the response cache so the next Fetch is a live
// round-trip. Used by the manual refresh action.
func (a *Aggregator) InvalidateCache() {
	a.cache.InvalidateAll()
}

func (a *Aggregator) cached(ctx context.Context, key string, fetch func(context.Context) ([]news.Article, error)) ([]news.Article, error) {
	if articles, ok := a.cache.Get(key); ok {
		return articles, nil
	}
	articles, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	a.cache.Put(key, articles)
	return articles, nil
}

// Reconcile drops later duplicates of the same title and orders the result
// newest first. The sort is stable, so arrival order breaks ties.
func Reconcile(articles []news.Article) []news.Article {
	seen := make(map[string]bool, len(articles))
	out := make([]news.Article, 0, len(articles))
	for _, a := range articles {
		if seen[a.Title] {
			continue
		}
		seen[a.Title] = true
		out = append(out, a)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PublishedAt.After(out[j].PublishedAt)
	})
	return out
}
