package datasource

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/marketmood/marketmood/pkg/models"
)

const defaultNewsAPIBaseURL = "https://newsapi.org"

// Sort orders accepted by the NewsAPI "everything" endpoint.
const (
	SortRelevancy   = "relevancy"
	SortPublishedAt = "publishedAt"
)

// NewsAPI wraps newsapi.org's "everything" search endpoint. Calls fail
// with an error when no API key is configured; the service layer decides
// whether to fall back to another source.
type NewsAPI struct {
	baseURL  string
	client   *http.Client
	key      string
	pageSize int
	log      *zap.Logger
}

// NewNewsAPI creates a NewsAPI source. pageSize values outside 1..100
// are clamped to 100, the API maximum.
func NewNewsAPI(key string, pageSize int, timeout time.Duration, log *zap.Logger) *NewsAPI {
	if pageSize < 1 || pageSize > 100 {
		pageSize = 100
	}
	return &NewsAPI{
		baseURL:  defaultNewsAPIBaseURL,
		client:   NewHTTPClient(timeout),
		key:      key,
		pageSize: pageSize,
		log:      log,
	}
}

// SetBaseURL overrides the API base URL. Used in tests.
func (n *NewsAPI) SetBaseURL(base string) { n.baseURL = strings.TrimSuffix(base, "/") }

// HasKey reports whether an API key is configured.
func (n *NewsAPI) HasKey() bool { return n.key != "" }

// Everything searches English-language articles matching query, ordered
// by sortBy (SortRelevancy or SortPublishedAt).
func (n *NewsAPI) Everything(ctx context.Context, query, sortBy string) ([]models.Article, error) {
	if n.key == "" {
		return nil, fmt.Errorf("newsapi: no API key configured")
	}

	u := fmt.Sprintf("%s/v2/everything?q=%s&language=en&sortBy=%s&pageSize=%d",
		n.baseURL, url.QueryEscape(query), url.QueryEscape(sortBy), n.pageSize)

	var resp newsAPIResponse
	headers := map[string]string{"X-Api-Key": n.key}
	if err := fetchJSON(ctx, n.client, u, headers, &resp); err != nil {
		return nil, fmt.Errorf("newsapi everything %q: %w", query, err)
	}
	if resp.Status != "ok" {
		return nil, fmt.Errorf("newsapi error %s: %s", resp.Code, resp.Message)
	}

	articles := make([]models.Article, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		articles = append(articles, models.Article{
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			Source:      a.Source.Name,
			PublishedAt: a.PublishedAt,
		})
	}
	return articles, nil
}

// newsAPIResponse mirrors the /v2/everything payload. Status is "ok" or
// "error"; Code and Message are only set on errors.
type newsAPIResponse struct {
	Status   string           `json:"status"`
	Code     string           `json:"code"`
	Message  string           `json:"message"`
	Articles []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}
