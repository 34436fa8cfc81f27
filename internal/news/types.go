package news

import "time"

// Article is the normalized, source-agnostic article shape used throughout
// the app. IDs are synthesized per fetch and are not stable across fetches
// of the same article.
type Article struct {
	ID          string
	Title       string
	Summary     string
	Category    string
	Author      string
	Source      string
	PublishedAt time.Time
	ImageURL    string
	ReadTime    string
	URL         string
}

type apiResponse struct {
	Status       string       `json:"status"`
	TotalResults int          `json:"totalResults"`
	Articles     []apiArticle `json:"articles"`
}

type apiArticle struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Author      string    `json:"author"`
	PublishedAt string    `json:"publishedAt"`
	URLToImage  string    `json:"urlToImage"`
	Source      apiSource `json:"source"`
	URL         string    `json:"url"`
}

type apiSource struct {
	Name string `json:"name"`
}
