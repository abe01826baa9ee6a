// Package news fetches ticker-scoped articles through a news-search
// collaborator, memoizing results per search phrase.
package news

import (
	"context"

	"go.uber.org/zap"

	"github.com/marketmood/marketmood/internal/cache"
	"github.com/marketmood/marketmood/pkg/models"
)

// Searcher is the slice of the news-search collaborator the adapter
// needs.
type Searcher interface {
	Everything(ctx context.Context, query, sortBy string) ([]models.Article, error)
}

// Adapter fetches articles by relevancy with bounded memoization. A
// failed fetch degrades to an empty article list, and that empty
// outcome is cached like any other result.
type Adapter struct {
	searcher  Searcher
	sortBy    string
	fetchSize int
	memo      *cache.Memo[string, []models.Article]
	log       *zap.Logger
}

// New creates an Adapter memoizing up to cacheSize search phrases and
// returning at most fetchSize articles per phrase (default 100 when
// non-positive).
func New(searcher Searcher, sortBy string, fetchSize, cacheSize int, log *zap.Logger) *Adapter {
	if fetchSize <= 0 {
		fetchSize = 100
	}
	return &Adapter{
		searcher:  searcher,
		sortBy:    sortBy,
		fetchSize: fetchSize,
		memo:      cache.New[string, []models.Article](cacheSize),
		log:       log,
	}
}

// Fetch returns the articles matching phrase. It never returns an
// error; an unavailable or failing news source yields an empty list.
func (a *Adapter) Fetch(ctx context.Context, phrase string) []models.Article {
	articles, _ := a.memo.GetOrCompute(phrase, func(q string) ([]models.Article, error) {
		found, err := a.searcher.Everything(ctx, q, a.sortBy)
		if err != nil {
			a.log.Warn("news fetch failed",
				zap.String("phrase", q),
				zap.Error(err))
			return []models.Article{}, nil
		}
		if len(found) > a.fetchSize {
			found = found[:a.fetchSize]
		}
		return found, nil
	})
	return articles
}
