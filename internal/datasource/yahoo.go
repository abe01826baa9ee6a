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

const defaultYahooBaseURL = "https://query1.finance.yahoo.com"

// Yahoo wraps Yahoo Finance's public v1 search and v8 chart APIs.
// No API key is required.
type Yahoo struct {
	baseURL string
	client  *http.Client
	log     *zap.Logger
}

// NewYahoo creates a Yahoo Finance source with the given request timeout.
func NewYahoo(timeout time.Duration, log *zap.Logger) *Yahoo {
	return &Yahoo{
		baseURL: defaultYahooBaseURL,
		client:  NewHTTPClient(timeout),
		log:     log,
	}
}

// SetBaseURL overrides the API base URL. Used in tests.
func (y *Yahoo) SetBaseURL(base string) { y.baseURL = strings.TrimSuffix(base, "/") }

// Search queries the symbol-search endpoint and returns candidate
// matches in the order Yahoo ranked them.
func (y *Yahoo) Search(ctx context.Context, query string) ([]models.CandidateMatch, error) {
	u := fmt.Sprintf("%s/v1/finance/search?q=%s&quotesCount=20&newsCount=0",
		y.baseURL, url.QueryEscape(query))

	var resp yfSearchResponse
	if err := fetchJSON(ctx, y.client, u, nil, &resp); err != nil {
		return nil, fmt.Errorf("yahoo search %q: %w", query, err)
	}

	candidates := make([]models.CandidateMatch, 0, len(resp.Quotes))
	for _, q := range resp.Quotes {
		candidates = append(candidates, models.CandidateMatch{
			Symbol:    q.Symbol,
			QuoteType: q.QuoteType,
			Name:      coalesce(q.ShortName, q.LongName),
		})
	}
	return candidates, nil
}

// GetNameAndHistory returns the display name and the recent daily closes
// for a ticker, oldest first. Null closes in the chart payload are
// dropped, so the returned slice may be shorter than the range or empty.
func (y *Yahoo) GetNameAndHistory(ctx context.Context, ticker string) (string, []float64, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?range=5d&interval=1d",
		y.baseURL, url.PathEscape(ticker))

	var resp yfChartResponse
	if err := fetchJSON(ctx, y.client, u, nil, &resp); err != nil {
		return "", nil, fmt.Errorf("yahoo chart %s: %w", ticker, err)
	}

	if resp.Chart.Error != nil {
		return "", nil, fmt.Errorf("yahoo chart error: %s", resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return "", nil, fmt.Errorf("no chart data for %s", ticker)
	}

	r := resp.Chart.Result[0]
	name := coalesce(r.Meta.ShortName, r.Meta.LongName, r.Meta.Symbol)

	var closes []float64
	if len(r.Indicators.Quote) > 0 {
		for _, c := range r.Indicators.Quote[0].Close {
			if c != nil {
				closes = append(closes, *c)
			}
		}
	}
	return name, closes, nil
}

// coalesce returns the first non-blank string.
func coalesce(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
