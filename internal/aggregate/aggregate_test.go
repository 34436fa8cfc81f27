package aggregate

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/vikash893/newsdigest/internal/news"
)

// fakeFetcher records every call and serves canned results per intent.
type fakeFetcher struct {
	mu sync.Mutex

	categoryCalls  []categoryCall
	queryCalls     []queryCall
	headlineCalls  []int
	categoryResult map[string][]news.Article
	categoryErr    map[string]error
	queryResult    []news.Article
	queryErr       error
	headlineResult []news.Article
	headlineErr    error
}

type categoryCall struct {
	category string
	pageSize int
}

type queryCall struct {
	query    string
	pageSize int
}

func (f *fakeFetcher) FetchByCategory(ctx context.Context, category string, pageSize int) ([]news.Article, error) {
	f.mu.Lock()
	f.categoryCalls = append(f.categoryCalls, categoryCall{category, pageSize})
	f.mu.Unlock()
	if err := f.categoryErr[category]; err != nil {
		return nil, err
	}
	return f.categoryResult[category], nil
}

func (f *fakeFetcher) FetchByQuery(ctx context.Context, query string, pageSize int) ([]news.Article, error) {
	f.mu.Lock()
	f.queryCalls = append(f.queryCalls, queryCall{query, pageSize})
	f.mu.Unlock()
	return f.queryResult, f.queryErr
}

func (f *fakeFetcher) FetchTopHeadlines(ctx context.Context, pageSize int) ([]news.Article, error) {
	f.mu.Lock()
	f.headlineCalls = append(f.headlineCalls, pageSize)
	f.mu.Unlock()
	return f.headlineResult, f.headlineErr
}

func newAggregator(f *fakeFetcher) *Aggregator {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(f, news.NewCache(10*time.Minute), logger)
}

func at(hour int) time.Time {
	return time.Date(2025, 1, 9, hour, 0, 0, 0, time.UTC)
}

func TestNoFiltersFetchesHeadlines(t *testing.T) {
	f := &fakeFetcher{headlineResult: []news.Article{{Title: "A", PublishedAt: at(10)}}}
	agg := newAggregator(f)

	articles, err := agg.Fetch(context.Background(), Filters{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.headlineCalls) != 1 || f.headlineCalls[0] != HeadlinePageSize {
		t.Errorf("expected one headlines call with page size %d, got %v", HeadlinePageSize, f.headlineCalls)
	}
	if len(f.categoryCalls) != 0 || len(f.queryCalls) != 0 {
		t.Error("expected no category or query calls without filters")
	}
	if len(articles) != 1 {
		t.Errorf("expected 1 article, got %d", len(articles))
	}
}

func TestQueryTakesPrecedenceOverCategories(t *testing.T) {
	f := &fakeFetcher{queryResult: []news.Article{{Title: "Q", PublishedAt: at(9)}}}
	agg := newAggregator(f)

	filters := Filters{Categories: []string{"technology", "business"}, Query: "quantum computing"}
	articles, err := agg.Fetch(context.Background(), filters)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.queryCalls) != 1 {
		t.Fatalf("expected exactly one query call, got %d", len(f.queryCalls))
	}
	if f.queryCalls[0].query != "quantum computing" || f.queryCalls[0].pageSize != QueryPageSize {
		t.Errorf("unexpected query call %+v", f.queryCalls[0])
	}
	if len(f.categoryCalls) != 0 {
		t.Errorf("category selection must be ignored while searching, got %v", f.categoryCalls)
	}
	if len(articles) != 1 || articles[0].Title != "Q" {
		t.Errorf("unexpected result %v", articles)
	}
}

func TestBlankQueryIsNoQuery(t *testing.T) {
	f := &fakeFetcher{headlineResult: []news.Article{{Title: "A"}}}
	agg := newAggregator(f)

	if _, err := agg.Fetch(context.Background(), Filters{Query: "   "}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.queryCalls) != 0 {
		t.Errorf("whitespace query should not trigger a search, got %v", f.queryCalls)
	}
	if len(f.headlineCalls) != 1 {
		t.Errorf("expected headlines fallback, got %v", f.headlineCalls)
	}
}

func TestPartialCategoryFailureIsAbsorbed(t *testing.T) {
	f := &fakeFetcher{
		categoryResult: map[string][]news.Article{
			"business": {
				{Title: "B1", PublishedAt: at(9)},
				{Title: "B2", PublishedAt: at(8)},
				{Title: "B3", PublishedAt: at(7)},
			},
		},
		categoryErr: map[string]error{"technology": errors.New("network down")},
	}
	agg := newAggregator(f)

	articles, err := agg.Fetch(context.Background(), Filters{Categories: []string{"technology", "business"}})
	if err != nil {
		t.Fatalf("partial category failure must not surface an error, got %v", err)
	}
	if len(f.categoryCalls) != 2 {
		t.Fatalf("expected 2 category calls, got %d", len(f.categoryCalls))
	}
	for _, call := range f.categoryCalls {
		if call.pageSize != CategoryPageSize {
			t.Errorf("expected page size %d, got %d", CategoryPageSize, call.pageSize)
		}
	}
	if len(articles) != 3 {
		t.Errorf("expected the 3 surviving articles, got %d", len(articles))
	}
}

func TestTotalCategoryFailureYieldsEmptyListNoError(t *testing.T) {
	f := &fakeFetcher{
		categoryErr: map[string]error{
			"technology": errors.New("boom"),
			"business":   errors.New("boom"),
		},
	}
	agg := newAggregator(f)

	articles, err := agg.Fetch(context.Background(), Filters{Categories: []string{"technology", "business"}})
	if err != nil {
		t.Fatalf("total category failure is non-fatal, got %v", err)
	}
	if len(articles) != 0 {
		t.Errorf("expected empty list, got %d articles", len(articles))
	}
}

func TestSingleIntentFailurePropagates(t *testing.T) {
	authErr := &news.StatusError{StatusCode: 401, Message: "Invalid API key. Please check your News API key."}
	f := &fakeFetcher{headlineErr: authErr}
	agg := newAggregator(f)

	_, err := agg.Fetch(context.Background(), Filters{})
	if err == nil {
		t.Fatal("expected headlines failure to propagate")
	}
	if err.Error() != authErr.Message {
		t.Errorf("expected message pass-through, got %q", err.Error())
	}

	f = &fakeFetcher{queryErr: errors.New("search exploded")}
	agg = newAggregator(f)
	if _, err := agg.Fetch(context.Background(), Filters{Query: "go"}); err == nil {
		t.Fatal("expected query failure to propagate")
	}
}

func TestCacheAvoidsSecondFetch(t *testing.T) {
	f := &fakeFetcher{
		categoryResult: map[string][]news.Article{"technology": {{Title: "T", PublishedAt: at(9)}}},
	}
	agg := newAggregator(f)
	filters := Filters{Categories: []string{"technology"}}

	for i := 0; i < 2; i++ {
		if _, err := agg.Fetch(context.Background(), filters); err != nil {
			t.Fatalf("fetch %d: %v", i, err)
		}
	}
	if len(f.categoryCalls) != 1 {
		t.Errorf("expected second fetch served from cache, got %d calls", len(f.categoryCalls))
	}
}

func TestInvalidateCacheForcesLiveFetch(t *testing.T) {
	f := &fakeFetcher{headlineResult: []news.Article{{Title: "A"}}}
	agg := newAggregator(f)

	agg.Fetch(context.Background(), Filters{})
	agg.InvalidateCache()
	agg.Fetch(context.Background(), Filters{})

	if len(f.headlineCalls) != 2 {
		t.Errorf("expected a live fetch after invalidation, got %d calls", len(f.headlineCalls))
	}
}

func TestReconcileDeduplicatesByTitle(t *testing.T) {
	merged := Reconcile([]news.Article{
		{Title: "Same Story", Category: "world", PublishedAt: at(8)},
		{Title: "Other Story", Category: "politics", PublishedAt: at(7)},
		{Title: "Same Story", Category: "politics", PublishedAt: at(9)},
	})

	if len(merged) != 2 {
		t.Fatalf("expected 2 articles after dedup, got %d", len(merged))
	}
	for _, a := range merged {
		if a.Title == "Same Story" && a.Category != "world" {
			t.Errorf("expected first occurrence (world) to win, got %q", a.Category)
		}
	}
}

func TestReconcileOrdersNewestFirst(t *testing.T) {
	merged := Reconcile([]news.Article{
		{Title: "Older", PublishedAt: time.Date(2025, 1, 9, 9, 0, 0, 0, time.UTC)},
		{Title: "Newer", PublishedAt: time.Date(2025, 1, 9, 10, 0, 0, 0, time.UTC)},
	})

	if merged[0].Title != "Newer" {
		t.Errorf("expected newest first, got %q", merged[0].Title)
	}
}

func TestReconcileStableOnTies(t *testing.T) {
	ts := at(10)
	merged := Reconcile([]news.Article{
		{Title: "First", PublishedAt: ts},
		{Title: "Second", PublishedAt: ts},
		{Title: "Third", PublishedAt: ts},
	})

	want := []string{"First", "Second", "Third"}
	for i, title := range want {
		if merged[i].Title != title {
			t.Errorf("position %d: got %q, want %q", i, merged[i].Title, title)
		}
	}
}
