package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.NewsAPI.PageSize != 100 {
		t.Errorf("newsapi.page_size = %d, want 100", cfg.NewsAPI.PageSize)
	}
	if cfg.Analysis.MaxArticles != 7 {
		t.Errorf("analysis.max_articles = %d, want 7", cfg.Analysis.MaxArticles)
	}
	if cfg.Analysis.HalfLifeHours != 72 {
		t.Errorf("analysis.half_life_hours = %v, want 72", cfg.Analysis.HalfLifeHours)
	}
	if cfg.Analysis.GeneralQuery != "NIFTY 50 OR Sensex" {
		t.Errorf("analysis.general_query = %q", cfg.Analysis.GeneralQuery)
	}
	if cfg.Classifier.Mode != "keyword" {
		t.Errorf("classifier.mode = %q, want keyword", cfg.Classifier.Mode)
	}
	if cfg.Cache.ResolverSize != 512 || cfg.Cache.SnapshotSize != 128 || cfg.Cache.NewsSize != 256 {
		t.Errorf("cache bounds = %+v", cfg.Cache)
	}
	if cfg.API.Port != 8080 {
		t.Errorf("api.port = %d, want 8080", cfg.API.Port)
	}
	if cfg.HTTP.TimeoutSec != 5 {
		t.Errorf("http.timeout_sec = %d, want 5", cfg.HTTP.TimeoutSec)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
newsapi:
  page_size: 50
analysis:
  max_articles: 5
  half_life_hours: 24
api:
  port: 9090
logging:
  level: debug
  format: json
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.NewsAPI.PageSize != 50 {
		t.Errorf("newsapi.page_size = %d, want 50", cfg.NewsAPI.PageSize)
	}
	if cfg.Analysis.MaxArticles != 5 {
		t.Errorf("analysis.max_articles = %d, want 5", cfg.Analysis.MaxArticles)
	}
	if cfg.Analysis.HalfLifeHours != 24 {
		t.Errorf("analysis.half_life_hours = %v, want 24", cfg.Analysis.HalfLifeHours)
	}
	if cfg.API.Port != 9090 {
		t.Errorf("api.port = %d, want 9090", cfg.API.Port)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("logging = %+v", cfg.Logging)
	}

	// Untouched keys keep their defaults.
	if cfg.Analysis.GeneralQuery != "NIFTY 50 OR Sensex" {
		t.Errorf("analysis.general_query = %q, want default", cfg.Analysis.GeneralQuery)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestEnvOverridesKey(t *testing.T) {
	t.Setenv("MARKETMOOD_NEWSAPI_KEY", "env-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.NewsAPI.Key != "env-secret" {
		t.Fatalf("newsapi.key = %q, want env-secret", cfg.NewsAPI.Key)
	}
}
