package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/vikash893/newsdigest/internal/aggregate"
	"github.com/vikash893/newsdigest/internal/category"
	"github.com/vikash893/newsdigest/internal/config"
	"github.com/vikash893/newsdigest/internal/news"
)

var (
	flagCategories []string
	flagLimit      int
)

var headlinesCmd = &cobra.Command{
	Use:   "headlines [query]",
	Short: "Print the latest headlines and exit",
	Long: `Fetch articles without launching the dashboard.

With no arguments, prints the top headlines. A query argument searches all
articles; --category restricts the fetch to one or more categories.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		apiKey := cfg.ResolvedAPIKey()
		if apiKey == "" {
			return fmt.Errorf("no API key configured; run newsdigest for setup instructions")
		}

		for _, id := range flagCategories {
			if !category.Valid(id) {
				return fmt.Errorf("unknown category %q (valid: %s)", id, strings.Join(category.IDs(), ", "))
			}
		}

		client := news.NewClient(apiKey, news.WithBaseURL(cfg.ResolvedBaseURL()))
		cache := news.NewCache(cfg.CacheTTLDuration())
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		aggregator := aggregate.New(client, cache, logger)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		articles, err := aggregator.Fetch(ctx, aggregate.Filters{
			Categories: flagCategories,
			Query:      strings.Join(args, " "),
		})
		if err != nil {
			return fmt.Errorf("fetching articles: %w", err)
		}

		if flagLimit > 0 && len(articles) > flagLimit {
			articles = articles[:flagLimit]
		}

		if len(articles) == 0 {
			fmt.Println("No articles found.")
			return nil
		}

		for i, a := range articles {
			fmt.Printf("%2d. %s\n", i+1, a.Title)
			fmt.Printf("    %s\n", formatArticleMeta(a))
		}
		return nil
	},
}

func init() {
	headlinesCmd.Flags().StringSliceVar(&flagCategories, "category", nil, "restrict to categories (repeatable)")
	headlinesCmd.Flags().IntVar(&flagLimit, "limit", 0, "print at most N articles (0 = all)")
}

func formatArticleMeta(a news.Article) string {
	parts := []string{a.Source}
	if !a.PublishedAt.IsZero() {
		parts = append(parts, a.PublishedAt.Format("Jan 2, 2006 15:04"))
	}
	parts = append(parts, a.ReadTime)
	return strings.Join(parts, " · ")
}
