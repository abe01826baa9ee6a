package datasource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/marketmood/marketmood/pkg/models"
)

const feedXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Test Markets</title>
    <item>
      <title>Older headline</title>
      <link>https://example.com/old</link>
      <description>&lt;p&gt;Markets &lt;b&gt;closed&lt;/b&gt; flat&lt;/p&gt;</description>
      <pubDate>Tue, 18 Aug 2026 09:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Newer headline</title>
      <link>https://example.com/new</link>
      <description>Nifty hits fresh high</description>
      <pubDate>Thu, 20 Aug 2026 09:00:00 GMT</pubDate>
    </item>
  </channel>
</rss>`

func TestRSSMarketNews(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(feedXML))
	}))
	defer srv.Close()

	rss := NewRSSWithFeeds([]NewsFeed{{Name: "Test Markets", URL: srv.URL}}, zap.NewNop())

	articles, err := rss.MarketNews(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("got %d articles, want 2", len(articles))
	}

	// Newest first.
	if articles[0].Title != "Newer headline" {
		t.Errorf("articles[0] = %q, want newest first", articles[0].Title)
	}
	if articles[0].Source != "Test Markets" {
		t.Errorf("Source = %q", articles[0].Source)
	}
	if articles[0].PublishedAt != "2026-08-20T09:00:00Z" {
		t.Errorf("PublishedAt = %q", articles[0].PublishedAt)
	}

	// HTML stripped from the description.
	if articles[1].Description != "Markets closed flat" {
		t.Errorf("Description = %q", articles[1].Description)
	}
}

func TestRSSMarketNewsLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(feedXML))
	}))
	defer srv.Close()

	rss := NewRSSWithFeeds([]NewsFeed{{Name: "Test", URL: srv.URL}}, zap.NewNop())

	articles, err := rss.MarketNews(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("got %d articles, want 1", len(articles))
	}
}

func TestRSSSkipsFailedFeeds(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(feedXML))
	}))
	defer good.Close()
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer bad.Close()

	rss := NewRSSWithFeeds([]NewsFeed{
		{Name: "Bad", URL: bad.URL},
		{Name: "Good", URL: good.URL},
	}, zap.NewNop())

	articles, err := rss.MarketNews(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("got %d articles, want 2 from the surviving feed", len(articles))
	}
}

func TestRSSAllFeedsFailed(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer bad.Close()

	rss := NewRSSWithFeeds([]NewsFeed{{Name: "Bad", URL: bad.URL}}, zap.NewNop())

	if _, err := rss.MarketNews(context.Background(), 0); err == nil {
		t.Fatal("expected error when every feed fails")
	}
}

func TestCleanHTML(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"plain text", "plain text"},
		{"<p>hello <b>world</b></p>", "hello world"},
		{"  <div> spaced </div>  ", "spaced"},
	}
	for _, tt := range tests {
		if got := cleanHTML(tt.in); got != tt.want {
			t.Errorf("cleanHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSortArticlesByDateUndatedSinkToEnd(t *testing.T) {
	in := []models.Article{
		{Title: "undated"},
		{Title: "new", PublishedAt: "2026-08-20T09:00:00Z"},
		{Title: "old", PublishedAt: "2026-08-18T09:00:00Z"},
	}

	sortArticlesByDate(in)

	want := []string{"new", "old", "undated"}
	for i, w := range want {
		if in[i].Title != w {
			t.Fatalf("order = [%s %s %s], want %v", in[0].Title, in[1].Title, in[2].Title, want)
		}
	}
}
