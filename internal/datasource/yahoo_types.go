package datasource

// --- Yahoo Finance API response types ---

// yfSearchResponse wraps the v1 search API response.
type yfSearchResponse struct {
	Quotes []yfSearchQuote `json:"quotes"`
}

type yfSearchQuote struct {
	Symbol    string `json:"symbol"`
	QuoteType string `json:"quoteType"`
	ShortName string `json:"shortname"`
	LongName  string `json:"longname"`
	Exchange  string `json:"exchange"`
}

// yfChartResponse wraps the v8 chart API response.
type yfChartResponse struct {
	Chart struct {
		Result []yfChartResult `json:"result"`
		Error  *yfError        `json:"error"`
	} `json:"chart"`
}

type yfChartResult struct {
	Meta       yfChartMeta  `json:"meta"`
	Timestamp  []int64      `json:"timestamp"`
	Indicators yfIndicators `json:"indicators"`
}

type yfChartMeta struct {
	Symbol    string `json:"symbol"`
	ShortName string `json:"shortName"`
	LongName  string `json:"longName"`
	Currency  string `json:"currency"`
}

type yfIndicators struct {
	Quote []yfQuoteBlock `json:"quote"`
}

type yfQuoteBlock struct {
	Close []*float64 `json:"close"`
}

type yfError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}
