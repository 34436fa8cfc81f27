// Package news talks to the upstream news API and normalizes its responses
// into the canonical Article shape.
package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://newsapi.org/v2"

const (
	removedTitle     = "[Removed]"
	placeholderImage = "https://images.pexels.com/photos/518543/pexels-photo-518543.jpeg?auto=compress&cs=tinysrgb&w=800"

	wordsPerMinute    = 200
	fallbackWordCount = 100
)

// categoryMapping translates catalog categories to the upstream vocabulary.
// The upstream has no world or politics category, so both map to general and
// can return overlapping content.
var categoryMapping = map[string]string{
	"technology":    "technology",
	"business":      "business",
	"science":       "science",
	"health":        "health",
	"sports":        "sports",
	"entertainment": "entertainment",
	"world":         "general",
	"politics":      "general",
}

// HTTPClient interface for making HTTP requests (allows injection for testing).
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithBaseURL sets a custom base URL (useful for testing).
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// Client is a news API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient HTTPClient
	now        func() time.Time
}

// NewClient creates a client for the given API key.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// FetchByCategory retrieves top headlines for one catalog category.
func (c *Client) FetchByCategory(ctx context.Context, category string, pageSize int) ([]Article, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	apiCategory := categoryMapping[category]
	if apiCategory == "" {
		apiCategory = "general"
	}

	endpoint := fmt.Sprintf("%s/top-headlines?category=%s&pageSize=%d&apiKey=%s",
		c.baseURL, apiCategory, pageSize, c.apiKey)
	return c.fetch(ctx, endpoint, category)
}

// FetchByQuery retrieves articles matching a free-text search, newest first.
func (c *Client) FetchByQuery(ctx context.Context, query string, pageSize int) ([]Article, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	endpoint := fmt.Sprintf("%s/everything?q=%s&pageSize=%d&sortBy=publishedAt&apiKey=%s",
		c.baseURL, url.QueryEscape(query), pageSize, c.apiKey)
	return c.fetch(ctx, endpoint, "general")
}

// FetchTopHeadlines retrieves country-wide top headlines.
func (c *Client) FetchTopHeadlines(ctx context.Context, pageSize int) ([]Article, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	endpoint := fmt.Sprintf("%s/top-headlines?country=us&pageSize=%d&apiKey=%s",
		c.baseURL, pageSize, c.apiKey)
	return c.fetch(ctx, endpoint, "general")
}

func (c *Client) fetch(ctx context.Context, endpoint, category string) ([]Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching articles: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, statusError(resp.StatusCode)
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if payload.Status != "ok" {
		return nil, &StatusError{StatusCode: resp.StatusCode, Message: "API returned an error status"}
	}

	fetchedAt := c.now()
	articles := make([]Article, 0, len(payload.Articles))
	for _, raw := range payload.Articles {
		if raw.Title == "" || raw.Description == "" || raw.Title == removedTitle {
			continue
		}
		articles = append(articles, normalize(raw, category, fetchedAt))
	}
	return articles, nil
}

// normalize maps one upstream item to the canonical shape, filling sentinel
// defaults for fields the upstream omits.
func normalize(raw apiArticle, category string, fetchedAt time.Time) Article {
	published, _ := time.Parse(time.RFC3339, raw.PublishedAt)

	a := Article{
		ID:          fmt.Sprintf("%s-%d", raw.URL, fetchedAt.UnixMilli()),
		Title:       raw.Title,
		Summary:     raw.Description,
		Category:    category,
		Author:      raw.Author,
		Source:      raw.Source.Name,
		PublishedAt: published,
		ImageURL:    raw.URLToImage,
		ReadTime:    readTimeLabel(raw.Description),
		URL:         raw.URL,
	}

	if a.Title == "" {
		a.Title = "Untitled Article"
	}
	if a.Summary == "" {
		a.Summary = "No description available."
	}
	if a.Author == "" {
		a.Author = "Unknown Author"
	}
	if a.Source == "" {
		a.Source = "Unknown Source"
	}
	if a.ImageURL == "" {
		a.ImageURL = placeholderImage
	}

	return a
}

// readTimeLabel estimates reading time at 200 words per minute, assuming a
// 100-word description when the upstream omits one.
func readTimeLabel(description string) string {
	words := fallbackWordCount
	if description != "" {
		words = len(strings.Fields(description))
	}
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}
