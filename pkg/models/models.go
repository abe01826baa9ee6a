// Package models defines the core data structures used throughout MarketMood.
package models

// CandidateMatch is a single result from the symbol-search collaborator.
// Candidates are ephemeral; they exist only for the duration of one
// resolution call.
type CandidateMatch struct {
	Symbol    string `json:"symbol"`
	QuoteType string `json:"quote_type"` // e.g. "EQUITY", "ETF", "INDEX"
	Name      string `json:"name,omitempty"`
}

// PriceInfo is a two-point price comparison for a company.
type PriceInfo struct {
	LastClose float64 `json:"last_close"`
	PctChange float64 `json:"pct_change"`
}

// CompanySnapshot holds the display name and latest price move for a
// resolved ticker. Price is nil when no daily closes were available.
type CompanySnapshot struct {
	Ticker string     `json:"ticker"`
	Name   string     `json:"name"`
	Price  *PriceInfo `json:"price,omitempty"`
}

// Article is a news article as returned by a news-search collaborator.
// PublishedAt is kept as the raw provider string; it may be empty or
// unparseable, and the aggregator decides how to treat that.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	PublishedAt string `json:"publishedAt"`
}

// ScoredArticle is an Article plus the sentiment label derived for it.
type ScoredArticle struct {
	Article
	Sentiment string `json:"sentiment"`
}

// AnalysisResult is the full response for a query-by-ticker-or-name request.
type AnalysisResult struct {
	Query            string          `json:"query"`
	Ticker           string          `json:"ticker"`
	CompanyName      string          `json:"company_name"`
	OverallSentiment string          `json:"overall_sentiment"`
	Price            *PriceInfo      `json:"price"`
	Articles         []ScoredArticle `json:"articles"`
}

// ImpactTarget identifies the company an impact verdict applies to.
type ImpactTarget struct {
	Name   string `json:"name"`
	Ticker string `json:"ticker"`
}

// ImpactResult is the response for a direct-impact request: one sentiment
// verdict for a given headline/description pair against one company.
type ImpactResult struct {
	ImpactOn  ImpactTarget `json:"impact_on"`
	Sentiment string       `json:"sentiment"`
	Evidence  []string     `json:"evidence"`
	KeyTopics []string     `json:"key_topics"`
	Price     *PriceInfo   `json:"price"`
}
