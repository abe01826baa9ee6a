// Package service wires the resolver, snapshot provider, news adapter,
// and sentiment aggregator into the three MarketMood operations.
package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/marketmood/marketmood/internal/datasource"
	"github.com/marketmood/marketmood/internal/news"
	"github.com/marketmood/marketmood/internal/resolver"
	"github.com/marketmood/marketmood/internal/sentiment"
	"github.com/marketmood/marketmood/internal/snapshot"
	"github.com/marketmood/marketmood/pkg/models"
)

// DefaultMaxArticles is how many articles feed the sentiment verdict.
const DefaultMaxArticles = 7

// DefaultGeneralQuery scopes the general-market-news operation.
const DefaultGeneralQuery = "NIFTY 50 OR Sensex"

// GeneralNewsSource is a keyless fallback for market-wide headlines.
type GeneralNewsSource interface {
	MarketNews(ctx context.Context, limit int) ([]models.Article, error)
}

// Service implements the analysis pipeline on top of the injected
// collaborators.
type Service struct {
	resolver     *resolver.Resolver
	snapshots    *snapshot.Provider
	news         *news.Adapter
	agg          *sentiment.Aggregator
	generalNews  *news.Adapter
	rss          GeneralNewsSource
	generalQuery string
	maxArticles  int
	log          *zap.Logger
}

// Options configures a Service.
type Options struct {
	Resolver     *resolver.Resolver
	Snapshots    *snapshot.Provider
	News         *news.Adapter
	Aggregator   *sentiment.Aggregator
	GeneralNews  *news.Adapter
	RSS          GeneralNewsSource
	GeneralQuery string
	MaxArticles  int
	Log          *zap.Logger
}

// New creates a Service. Zero MaxArticles and an empty GeneralQuery
// fall back to the defaults.
func New(opts Options) *Service {
	if opts.MaxArticles <= 0 {
		opts.MaxArticles = DefaultMaxArticles
	}
	if opts.GeneralQuery == "" {
		opts.GeneralQuery = DefaultGeneralQuery
	}
	return &Service{
		resolver:     opts.Resolver,
		snapshots:    opts.Snapshots,
		news:         opts.News,
		agg:          opts.Aggregator,
		generalNews:  opts.GeneralNews,
		rss:          opts.RSS,
		generalQuery: opts.GeneralQuery,
		maxArticles:  opts.MaxArticles,
		log:          opts.Log,
	}
}

// Analyze resolves query to a ticker and produces the scored-article
// report with the overall verdict. A resolved ticker with zero articles
// is a valid Neutral result, not an error.
func (s *Service) Analyze(ctx context.Context, query string) (*models.AnalysisResult, error) {
	ticker, err := s.resolver.Resolve(ctx, query)
	if err != nil {
		return nil, err
	}

	snap := s.snapshots.Get(ctx, ticker)

	phrase := fmt.Sprintf("%q OR %q", snap.Name, ticker)
	articles := s.news.Fetch(ctx, phrase)
	if len(articles) > s.maxArticles {
		articles = articles[:s.maxArticles]
	}

	scored, overall := s.agg.Aggregate(ctx, articles)
	if scored == nil {
		scored = []models.ScoredArticle{}
	}

	s.log.Info("analysis complete",
		zap.String("query", query),
		zap.String("ticker", ticker),
		zap.Int("articles", len(scored)),
		zap.String("verdict", overall))

	return &models.AnalysisResult{
		Query:            query,
		Ticker:           ticker,
		CompanyName:      snap.Name,
		OverallSentiment: overall,
		Price:            snap.Price,
		Articles:         scored,
	}, nil
}

// Impact classifies one headline/description pair against an explicit
// ticker. It fails with datasource.ErrTickerNotFound when the ticker's
// company cannot be resolved at all.
func (s *Service) Impact(ctx context.Context, ticker, title, description string) (*models.ImpactResult, error) {
	snap, err := s.snapshots.Lookup(ctx, ticker)
	if err != nil {
		return nil, err
	}

	label := s.agg.Score(ctx, title+". "+description)

	evidence := description
	if evidence == "" {
		evidence = title
	}

	return &models.ImpactResult{
		ImpactOn:  models.ImpactTarget{Name: snap.Name, Ticker: ticker},
		Sentiment: label,
		Evidence:  []string{evidence},
		KeyTopics: []string{},
		Price:     snap.Price,
	}, nil
}

// GeneralNews returns recent market-wide headlines, unscored. It
// prefers the keyed news search and falls back to the RSS feeds when
// the search is keyless or returns nothing.
func (s *Service) GeneralNews(ctx context.Context) ([]models.Article, error) {
	articles := s.generalNews.Fetch(ctx, s.generalQuery)
	if len(articles) > 0 {
		return articles, nil
	}

	if s.rss != nil {
		fromFeeds, err := s.rss.MarketNews(ctx, 0)
		if err != nil {
			return nil, fmt.Errorf("general news: %w", err)
		}
		return fromFeeds, nil
	}
	return []models.Article{}, nil
}

// ErrTickerNotFound re-exports the sentinel so HTTP handlers can map it
// without importing the datasource package directly.
var ErrTickerNotFound = datasource.ErrTickerNotFound

// ErrEmptyQuery re-exports the resolver's invalid-input sentinel.
var ErrEmptyQuery = resolver.ErrEmptyQuery
