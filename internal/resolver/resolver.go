// Package resolver turns free-text queries ("tata motors", "INFY") into
// Yahoo Finance ticker symbols.
package resolver

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/marketmood/marketmood/internal/cache"
	"github.com/marketmood/marketmood/internal/datasource"
	"github.com/marketmood/marketmood/pkg/models"
)

// ErrEmptyQuery is returned when the query is empty or whitespace.
var ErrEmptyQuery = fmt.Errorf("empty query")

// SymbolSearcher is the slice of the search collaborator the resolver
// needs.
type SymbolSearcher interface {
	Search(ctx context.Context, query string) ([]models.CandidateMatch, error)
}

// outcome is a memoized resolution result. Failed resolutions are
// cached too, so a query that matched nothing is not retried on every
// request.
type outcome struct {
	symbol string
	found  bool
}

// Resolver resolves queries to tickers with bounded memoization.
type Resolver struct {
	searcher SymbolSearcher
	memo     *cache.Memo[string, outcome]
	log      *zap.Logger
}

// New creates a Resolver memoizing up to cacheSize distinct queries.
func New(searcher SymbolSearcher, cacheSize int, log *zap.Logger) *Resolver {
	return &Resolver{
		searcher: searcher,
		memo:     cache.New[string, outcome](cacheSize),
		log:      log,
	}
}

// Resolve maps a query to a ticker symbol. It returns ErrEmptyQuery for
// blank input and datasource.ErrTickerNotFound when no equity matches.
// Results, including not-found outcomes, are memoized per trimmed
// query; search transport errors are not cached.
func (r *Resolver) Resolve(ctx context.Context, query string) (string, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return "", ErrEmptyQuery
	}

	out, _ := r.memo.GetOrCompute(trimmed, func(q string) (outcome, error) {
		candidates, err := r.searcher.Search(ctx, q)
		if err != nil {
			// Search failure degrades to not-found; the outcome is
			// memoized like any other.
			r.log.Warn("symbol search failed",
				zap.String("query", q),
				zap.Error(err))
			return outcome{}, nil
		}
		symbol, ok := selectEquity(candidates)
		if !ok {
			r.log.Debug("no equity match", zap.String("query", q))
		}
		return outcome{symbol: symbol, found: ok}, nil
	})
	if !out.found {
		return "", fmt.Errorf("resolve %q: %w", query, datasource.ErrTickerNotFound)
	}
	return out.symbol, nil
}

// selectEquity picks the best ticker from search candidates. An equity
// whose symbol carries an exchange suffix (a '.' segment, e.g.
// "TATAMOTORS.NS") wins immediately; otherwise the first equity wins.
// Candidates with a blank symbol or a non-equity quote type are skipped.
func selectEquity(candidates []models.CandidateMatch) (string, bool) {
	first := ""
	for _, c := range candidates {
		if c.Symbol == "" || c.QuoteType != "EQUITY" {
			continue
		}
		if strings.Contains(c.Symbol, ".") {
			return c.Symbol, true
		}
		if first == "" {
			first = c.Symbol
		}
	}
	return first, first != ""
}
