// Package snapshot provides company display names and last-close price
// moves for resolved tickers.
package snapshot

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/marketmood/marketmood/internal/cache"
	"github.com/marketmood/marketmood/internal/datasource"
	"github.com/marketmood/marketmood/pkg/models"
)

// MarketData is the slice of the market-data collaborator the snapshot
// provider needs.
type MarketData interface {
	GetNameAndHistory(ctx context.Context, ticker string) (string, []float64, error)
}

// Provider computes company snapshots with bounded memoization. Both
// successful and degraded snapshots are cached.
type Provider struct {
	market MarketData
	memo   *cache.Memo[string, *models.CompanySnapshot]
	log    *zap.Logger
}

// New creates a Provider memoizing up to cacheSize tickers.
func New(market MarketData, cacheSize int, log *zap.Logger) *Provider {
	return &Provider{
		market: market,
		memo:   cache.New[string, *models.CompanySnapshot](cacheSize),
		log:    log,
	}
}

// Get returns a snapshot for ticker, degrading gracefully: when the
// market-data call fails or yields no name, the snapshot falls back to
// Name == ticker with no price. Get never returns an error.
func (p *Provider) Get(ctx context.Context, ticker string) *models.CompanySnapshot {
	snap, err := p.Lookup(ctx, ticker)
	if err != nil {
		return &models.CompanySnapshot{Ticker: ticker, Name: ticker}
	}
	return snap
}

// Lookup returns a snapshot for ticker, or ErrTickerNotFound when the
// ticker has no resolvable company data. The not-found outcome is
// memoized alongside successes.
func (p *Provider) Lookup(ctx context.Context, ticker string) (*models.CompanySnapshot, error) {
	snap, err := p.memo.GetOrCompute(ticker, func(t string) (*models.CompanySnapshot, error) {
		return p.fetch(ctx, t), nil
	})
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, fmt.Errorf("lookup %s: %w", ticker, datasource.ErrTickerNotFound)
	}
	return snap, nil
}

// fetch builds a snapshot from the market-data collaborator. A nil
// return means the ticker could not be resolved at all; that outcome is
// cached so repeated bad tickers do not hammer the upstream.
func (p *Provider) fetch(ctx context.Context, ticker string) *models.CompanySnapshot {
	name, closes, err := p.market.GetNameAndHistory(ctx, ticker)
	if err != nil {
		p.log.Warn("market data unavailable",
			zap.String("ticker", ticker),
			zap.Error(err))
		return nil
	}
	if name == "" {
		name = ticker
	}

	return &models.CompanySnapshot{
		Ticker: ticker,
		Name:   name,
		Price:  priceFromCloses(closes),
	}
}

// priceFromCloses derives the last close and its percent change from
// daily closes (oldest first). With fewer than two closes, or a zero
// previous close, the change is 0%. With no closes at all there is no
// price info.
func priceFromCloses(closes []float64) *models.PriceInfo {
	if len(closes) == 0 {
		return nil
	}

	last := closes[len(closes)-1]
	pct := 0.0
	if len(closes) >= 2 {
		prev := closes[len(closes)-2]
		if prev != 0 {
			pct = (last - prev) / prev * 100
		}
	}
	return &models.PriceInfo{LastClose: last, PctChange: pct}
}
