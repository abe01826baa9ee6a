package datasource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestYahoo(handler http.Handler) (*Yahoo, *httptest.Server) {
	srv := httptest.NewServer(handler)
	y := NewYahoo(2*time.Second, zap.NewNop())
	y.SetBaseURL(srv.URL)
	return y, srv
}

func TestYahooSearch(t *testing.T) {
	y, srv := newTestYahoo(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/finance/search" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "tata motors" {
			t.Errorf("q = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"quotes": [
				{"symbol": "TATAMOTORS", "quoteType": "EQUITY", "shortname": "Tata Motors"},
				{"symbol": "TATAMOTORS.NS", "quoteType": "EQUITY", "longname": "Tata Motors Limited"}
			]
		}`))
	}))
	defer srv.Close()

	candidates, err := y.Search(context.Background(), "tata motors")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("got %d candidates, want 2", len(candidates))
	}
	if candidates[0].Symbol != "TATAMOTORS" || candidates[0].QuoteType != "EQUITY" {
		t.Errorf("candidates[0] = %+v", candidates[0])
	}
	if candidates[1].Name != "Tata Motors Limited" {
		t.Errorf("candidates[1].Name = %q (longname fallback)", candidates[1].Name)
	}
}

func TestYahooSearchHTTPError(t *testing.T) {
	y, srv := newTestYahoo(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	if _, err := y.Search(context.Background(), "anything"); err == nil {
		t.Fatal("expected error on 429")
	}
}

func TestYahooGetNameAndHistory(t *testing.T) {
	y, srv := newTestYahoo(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v8/finance/chart/TATAMOTORS.NS" {
			t.Errorf("path = %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("range") != "5d" || q.Get("interval") != "1d" {
			t.Errorf("query = %v", q)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"chart": {
				"result": [{
					"meta": {"symbol": "TATAMOTORS.NS", "shortName": "Tata Motors Limited"},
					"timestamp": [1, 2, 3],
					"indicators": {"quote": [{"close": [950.5, null, 1000.25]}]}
				}],
				"error": null
			}
		}`))
	}))
	defer srv.Close()

	name, closes, err := y.GetNameAndHistory(context.Background(), "TATAMOTORS.NS")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "Tata Motors Limited" {
		t.Errorf("name = %q", name)
	}
	// Null close dropped.
	if len(closes) != 2 || closes[0] != 950.5 || closes[1] != 1000.25 {
		t.Errorf("closes = %v", closes)
	}
}

func TestYahooChartAPIError(t *testing.T) {
	y, srv := newTestYahoo(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"chart": {"result": null, "error": {"code": "Not Found", "description": "No data found"}}}`))
	}))
	defer srv.Close()

	if _, _, err := y.GetNameAndHistory(context.Background(), "BOGUS"); err == nil {
		t.Fatal("expected error on chart error payload")
	}
}

func TestYahooChartNameFallsBackToSymbol(t *testing.T) {
	y, srv := newTestYahoo(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"chart": {
				"result": [{
					"meta": {"symbol": "XYZ.NS"},
					"indicators": {"quote": [{"close": []}]}
				}]
			}
		}`))
	}))
	defer srv.Close()

	name, closes, err := y.GetNameAndHistory(context.Background(), "XYZ.NS")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "XYZ.NS" {
		t.Errorf("name = %q, want symbol fallback", name)
	}
	if len(closes) != 0 {
		t.Errorf("closes = %v, want empty", closes)
	}
}
