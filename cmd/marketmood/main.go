// MarketMood command-line entrypoint.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/marketmood/marketmood/api"
	"github.com/marketmood/marketmood/internal/config"
	"github.com/marketmood/marketmood/internal/datasource"
	"github.com/marketmood/marketmood/internal/logging"
	"github.com/marketmood/marketmood/internal/news"
	"github.com/marketmood/marketmood/internal/resolver"
	"github.com/marketmood/marketmood/internal/sentiment"
	"github.com/marketmood/marketmood/internal/service"
	"github.com/marketmood/marketmood/internal/snapshot"
)

var version = "dev"

var (
	cfgFile string
	cfg     *config.Config
	log     *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "marketmood",
	Short: "News-driven market sentiment for listed companies",
	Long: `MarketMood resolves a company name or ticker, pulls its recent news,
scores each article's sentiment, and reports one time-decayed verdict
alongside the latest price move.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; real env vars win either way.
		_ = godotenv.Load()

		var err error
		if cfgFile != "" {
			cfg, err = config.LoadFromFile(cfgFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		log = logging.New(cfg.Logging.Level, cfg.Logging.Format)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("marketmood %s\n", version)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := buildService(cfg, log)
		srv := api.NewServer(cfg, svc, log)

		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		log.Info("starting server",
			zap.String("addr", addr),
			zap.String("version", version))
		return srv.ListenAndServe(addr)
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <query>",
	Short: "Analyze sentiment for a company from the command line",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := buildService(cfg, log)

		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()

		result, err := svc.Analyze(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

// buildService wires the collaborators into the analysis pipeline.
func buildService(cfg *config.Config, log *zap.Logger) *service.Service {
	timeout := time.Duration(cfg.HTTP.TimeoutSec) * time.Second

	yahoo := datasource.NewYahoo(timeout, log.Named("yahoo"))
	newsapi := datasource.NewNewsAPI(cfg.NewsAPI.Key, cfg.NewsAPI.PageSize, timeout, log.Named("newsapi"))
	rss := datasource.NewRSS(log.Named("rss"))

	var clf sentiment.Classifier
	if cfg.Classifier.Mode == "remote" && cfg.Classifier.URL != "" {
		clf = sentiment.NewRemoteClassifier(cfg.Classifier.URL, cfg.Classifier.Model, timeout, log.Named("classifier"))
	} else {
		clf = sentiment.NewKeywordClassifier()
	}

	return service.New(service.Options{
		Resolver:     resolver.New(yahoo, cfg.Cache.ResolverSize, log.Named("resolver")),
		Snapshots:    snapshot.New(yahoo, cfg.Cache.SnapshotSize, log.Named("snapshot")),
		News:         news.New(newsapi, datasource.SortRelevancy, cfg.NewsAPI.PageSize, cfg.Cache.NewsSize, log.Named("news")),
		Aggregator:   sentiment.NewAggregator(clf, cfg.Analysis.HalfLifeHours, log.Named("sentiment")),
		GeneralNews:  news.New(newsapi, datasource.SortPublishedAt, cfg.NewsAPI.PageSize, cfg.Cache.NewsSize, log.Named("general-news")),
		RSS:          rss,
		GeneralQuery: cfg.Analysis.GeneralQuery,
		MaxArticles:  cfg.Analysis.MaxArticles,
		Log:          log.Named("service"),
	})
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.AddCommand(versionCmd, serveCmd, analyzeCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
