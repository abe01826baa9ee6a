package news

import (
	"context"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"github.com/marketmood/marketmood/pkg/models"
)

// stubSearcher returns canned articles and counts calls.
type stubSearcher struct {
	articles []models.Article
	err      error
	calls    int
	lastSort string
}

func (s *stubSearcher) Everything(_ context.Context, _ string, sortBy string) ([]models.Article, error) {
	s.calls++
	s.lastSort = sortBy
	return s.articles, s.err
}

func makeArticles(n int) []models.Article {
	out := make([]models.Article, n)
	for i := range out {
		out[i] = models.Article{Title: fmt.Sprintf("headline %d", i)}
	}
	return out
}

func TestFetchReturnsArticles(t *testing.T) {
	stub := &stubSearcher{articles: makeArticles(3)}
	a := New(stub, "relevancy", 100, 16, zap.NewNop())

	got := a.Fetch(context.Background(), `"Tata Motors" OR "TATAMOTORS.NS"`)
	if len(got) != 3 {
		t.Fatalf("got %d articles, want 3", len(got))
	}
	if stub.lastSort != "relevancy" {
		t.Fatalf("sortBy = %q, want relevancy", stub.lastSort)
	}
}

func TestFetchTruncatesToFetchSize(t *testing.T) {
	stub := &stubSearcher{articles: makeArticles(10)}
	a := New(stub, "relevancy", 4, 16, zap.NewNop())

	got := a.Fetch(context.Background(), "query")
	if len(got) != 4 {
		t.Fatalf("got %d articles, want 4", len(got))
	}
}

func TestFetchDegradesToEmpty(t *testing.T) {
	stub := &stubSearcher{err: fmt.Errorf("service unavailable")}
	a := New(stub, "relevancy", 100, 16, zap.NewNop())

	got := a.Fetch(context.Background(), "query")
	if got == nil {
		t.Fatal("got nil, want empty slice")
	}
	if len(got) != 0 {
		t.Fatalf("got %d articles, want 0", len(got))
	}
}

func TestFetchMemoizesPerPhrase(t *testing.T) {
	stub := &stubSearcher{articles: makeArticles(2)}
	a := New(stub, "relevancy", 100, 16, zap.NewNop())

	for i := 0; i < 3; i++ {
		a.Fetch(context.Background(), "same phrase")
	}
	a.Fetch(context.Background(), "different phrase")

	if stub.calls != 2 {
		t.Fatalf("search called %d times, want 2", stub.calls)
	}
}

func TestFetchMemoizesEmptyFailure(t *testing.T) {
	stub := &stubSearcher{err: fmt.Errorf("service unavailable")}
	a := New(stub, "relevancy", 100, 16, zap.NewNop())

	for i := 0; i < 3; i++ {
		a.Fetch(context.Background(), "query")
	}
	if stub.calls != 1 {
		t.Fatalf("search called %d times, want 1 (failures degrade and memoize)", stub.calls)
	}
}
