package datasource

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/marketmood/marketmood/pkg/models"
)

// NewsFeed is a single RSS feed configuration.
type NewsFeed struct {
	Name string
	URL  string
}

// DefaultNewsFeeds lists the Indian financial-news RSS feeds used when
// no NewsAPI key is available for general market news.
var DefaultNewsFeeds = []NewsFeed{
	{Name: "Moneycontrol", URL: "https://www.moneycontrol.com/rss/marketreports.xml"},
	{Name: "Economic Times Markets", URL: "https://economictimes.indiatimes.com/markets/rssfeeds/1977021501.cms"},
	{Name: "LiveMint Markets", URL: "https://www.livemint.com/rss/markets"},
	{Name: "Business Standard Markets", URL: "https://www.business-standard.com/rss/markets-106.rss"},
}

// RSS aggregates market news across a fixed set of RSS feeds. It needs
// no API key, which makes it the fallback general-news source.
type RSS struct {
	feeds  []NewsFeed
	parser *gofeed.Parser
	log    *zap.Logger
}

// NewRSS creates an RSS source over the default feeds.
func NewRSS(log *zap.Logger) *RSS {
	return NewRSSWithFeeds(DefaultNewsFeeds, log)
}

// NewRSSWithFeeds creates an RSS source over custom feeds.
func NewRSSWithFeeds(feeds []NewsFeed, log *zap.Logger) *RSS {
	return &RSS{
		feeds:  feeds,
		parser: gofeed.NewParser(),
		log:    log,
	}
}

// MarketNews fetches all feeds concurrently and returns their articles
// merged, newest first. Feeds that fail to fetch or parse are skipped;
// an error is returned only when every feed failed.
func (r *RSS) MarketNews(ctx context.Context, limit int) ([]models.Article, error) {
	var (
		mu  sync.Mutex
		all []models.Article
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, feed := range r.feeds {
		feed := feed
		g.Go(func() error {
			articles, err := r.fetchFeed(gctx, feed)
			if err != nil {
				r.log.Warn("rss feed failed",
					zap.String("feed", feed.Name),
					zap.Error(err))
				return nil
			}
			mu.Lock()
			all = append(all, articles...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(all) == 0 {
		return nil, fmt.Errorf("all %d RSS feeds failed", len(r.feeds))
	}

	sortArticlesByDate(all)
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// fetchFeed parses one RSS feed into articles.
func (r *RSS) fetchFeed(ctx context.Context, feed NewsFeed) ([]models.Article, error) {
	parsed, err := r.parser.ParseURLWithContext(feed.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse RSS %s: %w", feed.Name, err)
	}

	articles := make([]models.Article, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		a := models.Article{
			Title:       item.Title,
			Description: cleanHTML(item.Description),
			URL:         item.Link,
			Source:      feed.Name,
		}
		if item.PublishedParsed != nil {
			a.PublishedAt = item.PublishedParsed.UTC().Format(time.RFC3339)
		}
		articles = append(articles, a)
	}
	return articles, nil
}

// cleanHTML strips HTML tags from a string using goquery.
func cleanHTML(s string) string {
	if s == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<body>" + s + "</body>"))
	if err != nil {
		return s
	}
	return strings.TrimSpace(doc.Text())
}

// sortArticlesByDate sorts articles newest first by their RFC 3339
// timestamp string. Articles without a timestamp sink to the end.
// Simple insertion sort, fine for small slices.
func sortArticlesByDate(articles []models.Article) {
	for i := 1; i < len(articles); i++ {
		key := articles[i]
		j := i - 1
		for j >= 0 && articles[j].PublishedAt < key.PublishedAt {
			articles[j+1] = articles[j]
			j--
		}
		articles[j+1] = key
	}
}
