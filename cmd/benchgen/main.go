// Package main provides the benchgen CLI for building synthetic retrieval benchmarks.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/bull/benchgen/internal/config"
	"github.com/bull/benchgen/internal/markdown"
	"github.com/bull/benchgen/internal/pipeline"
	"github.com/bull/benchgen/internal/report"
	"github.com/bull/benchgen/internal/storage"
)

var rootCmd = &cobra.Command{
	Use:          "benchgen",
	Short:        "Synthetic retrieval benchmark generator",
	Long:         "CLI tool for generating reproducible enterprise document corpora and query sets for retrieval benchmarks",
	SilenceUsage: true,
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a corpus, queries and retrieval configs",
	Long: `Builds a complete benchmark from a single seed.

This command:
1. Generates all documents in memory
2. Replaces the corpus/ directory with one file per document
3. Picks topic-anchored queries with relevance judgments
4. Writes queries.json, configs.yaml and README.md
5. Optionally publishes the documents to a Qdrant collection

Environment variables (flags take precedence):
  BENCHGEN_DOCS          Number of documents (default: 50000)
  BENCHGEN_QUERIES       Number of queries (default: 500)
  BENCHGEN_SEED          Random seed (default: 42)
  BENCHGEN_AS_OF         Reference date for "Last Updated" (default: 2025-01-01)
  BENCHGEN_OUTPUT        Output directory (default: ./benchmarks/synthetic-50k)
  BENCHGEN_METRICS_FILE  Prometheus textfile to write after the run
  BENCHGEN_LOG_LEVEL     debug, info, warn or error (default: info)
  STORAGE_TYPE           local or s3 (default: local)
  AWS_S3_BUCKET          Bucket for s3 storage
  AWS_S3_PREFIX          Key prefix inside the bucket
  AWS_REGION             Bucket region (default: us-east-1)
  QDRANT_HOST            Publish to Qdrant when set
  QDRANT_PORT            Qdrant gRPC port (default: 6334)
  QDRANT_COLLECTION      Collection name (default: synthetic-50k)`,
	RunE: runGenerate,
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check a generated benchmark for consistency",
	Long: `Reads queries.json and configs.yaml from the output location and checks that
every relevant document exists, that each query's first relevant document is
its anchor, and that referenced documents have the standard section layout.`,
	RunE: runVerify,
}

func init() {
	f := generateCmd.Flags()
	f.Int("docs", 0, "number of documents to generate")
	f.Int("queries", 0, "number of queries to generate")
	f.Int64("seed", 0, "random seed")
	f.String("as-of", "", "reference date for document dates (YYYY-MM-DD)")
	f.String("metrics-file", "", "write Prometheus metrics to this textfile")
	f.String("qdrant-host", "", "publish documents to Qdrant at this host")
	f.Int("qdrant-port", 0, "Qdrant gRPC port")
	f.String("collection", "", "Qdrant collection name")

	for _, cmd := range []*cobra.Command{generateCmd, verifyCmd} {
		p := cmd.Flags()
		p.String("output", "", "output directory")
		p.String("storage", "", "storage backend: local or s3")
		p.String("s3-bucket", "", "S3 bucket")
		p.String("s3-prefix", "", "S3 key prefix")
	}

	rootCmd.AddCommand(generateCmd, verifyCmd)
}

func main() {
	// Load .env file if present (local development)
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading .env: %v\n", err)
		os.Exit(1)
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the environment and applies any flags the user set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("docs") {
		cfg.Documents, _ = flags.GetInt("docs")
	}
	if flags.Changed("queries") {
		cfg.Queries, _ = flags.GetInt("queries")
	}
	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetInt64("seed")
	}
	if flags.Changed("as-of") {
		v, _ := flags.GetString("as-of")
		if cfg.AsOf, err = config.ParseDate(v); err != nil {
			return nil, fmt.Errorf("--as-of: %w", err)
		}
	}
	if flags.Changed("output") {
		cfg.Output, _ = flags.GetString("output")
	}
	if flags.Changed("storage") {
		v, _ := flags.GetString("storage")
		cfg.Storage.Type = storage.StorageType(v)
	}
	if flags.Changed("s3-bucket") {
		cfg.Storage.S3Bucket, _ = flags.GetString("s3-bucket")
	}
	if flags.Changed("s3-prefix") {
		cfg.Storage.S3Prefix, _ = flags.GetString("s3-prefix")
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile, _ = flags.GetString("metrics-file")
	}
	if flags.Changed("qdrant-host") {
		cfg.QdrantHost, _ = flags.GetString("qdrant-host")
	}
	if flags.Changed("qdrant-port") {
		cfg.QdrantPort, _ = flags.GetInt("qdrant-port")
	}
	if flags.Changed("collection") {
		cfg.Collection, _ = flags.GetString("collection")
	}
	return cfg, nil
}

func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts := cfg.Options()
	if err := opts.Validate(); err != nil {
		return err
	}
	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	fmt.Println("Synthetic Benchmark Generator")
	fmt.Println("========================================")
	fmt.Printf("Documents: %s\n", humanize.Comma(int64(opts.Documents)))
	fmt.Printf("Queries:   %s\n", humanize.Comma(int64(opts.Queries)))
	fmt.Printf("Seed:      %d\n", opts.Seed)
	fmt.Printf("As of:     %s\n", opts.AsOf.Format(config.DateLayout))
	fmt.Println()

	// 1. Open output storage
	store, err := storage.NewStorage(ctx, cfg.StorageConfig())
	if err != nil {
		return fmt.Errorf("Failed to open storage: %w", err)
	}
	fmt.Printf("Output: %s\n", store.Location())

	metrics := report.NewMetrics()
	reporter := report.NewReporter(os.Stdout, metrics)
	p := pipeline.NewPipeline(opts, store, markdown.NewChunker(), reporter, logger)

	// 2. Optionally connect to Qdrant
	if cfg.PublishEnabled() {
		fmt.Printf("Connecting to Qdrant at %s:%d...\n", cfg.QdrantHost, cfg.QdrantPort)
		qstore, err := storage.NewQdrantStorage(cfg.QdrantHost, cfg.QdrantPort, cfg.Collection)
		if err != nil {
			return fmt.Errorf("Failed to connect to Qdrant: %w", err)
		}
		defer qstore.Close()

		if err := qstore.Health(ctx); err != nil {
			return fmt.Errorf("Qdrant health check failed: %w", err)
		}
		if err := qstore.EnsureCollection(ctx); err != nil {
			return fmt.Errorf("Failed to ensure collection: %w", err)
		}
		fmt.Printf("Qdrant healthy, publishing to collection %q\n", qstore.Collection())
		p.WithPublisher(qstore)
	}
	fmt.Println()

	// 3. Generate
	result, err := p.Run(ctx)
	if err != nil {
		return fmt.Errorf("Generation failed: %w", err)
	}

	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			return err
		}
		logger.Info("Wrote metrics", "file", cfg.MetricsFile)
	}

	// 4. Print results
	stats := result.Stats
	fmt.Println()
	fmt.Println("========================================")
	fmt.Println("Generation complete!")
	fmt.Printf("  Documents:        %s\n", humanize.Comma(int64(result.Documents)))
	fmt.Printf("  Queries:          %s\n", humanize.Comma(int64(result.Queries)))
	fmt.Printf("  Topics:           %d\n", stats.Topics)
	fmt.Printf("  Corpus size:      %s\n", humanize.IBytes(uint64(stats.TotalChars)))
	fmt.Printf("  Avg doc length:   %s chars\n", humanize.Comma(int64(stats.AvgDocChars)))
	fmt.Printf("  Avg chunks/doc:   %.1f\n", stats.AvgChunks)
	if result.FallbackAnchors > 0 {
		fmt.Printf("  Fallback anchors: %d\n", result.FallbackAnchors)
	}
	if result.StaleRemoved > 0 {
		fmt.Printf("  Stale removed:    %s\n", humanize.Comma(int64(result.StaleRemoved)))
	}
	if result.Published > 0 {
		fmt.Printf("  Published:        %s\n", humanize.Comma(int64(result.Published)))
	}
	fmt.Printf("  Output:           %s\n", result.Location)
	fmt.Println()
	fmt.Printf("Total time: %s\n", result.Duration.Round(time.Millisecond))

	return nil
}

func runVerify(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	slog.SetDefault(newLogger(cfg.LogLevel))

	store, err := storage.NewStorage(ctx, cfg.StorageConfig())
	if err != nil {
		return fmt.Errorf("Failed to open storage: %w", err)
	}

	fmt.Printf("Verifying %s...\n", store.Location())
	rep, err := pipeline.Verify(ctx, store, markdown.NewChunker())
	if err != nil {
		return fmt.Errorf("Verification failed: %w", err)
	}

	fmt.Printf("  Queries:      %d\n", rep.Queries)
	fmt.Printf("  Configs:      %d\n", rep.Configs)
	fmt.Printf("  Corpus files: %s\n", humanize.Comma(int64(rep.CorpusFiles)))
	fmt.Printf("  Docs checked: %s\n", humanize.Comma(int64(rep.Checked)))

	if !rep.OK() {
		fmt.Println()
		fmt.Printf("Found %d problems:\n", len(rep.Problems))
		for _, problem := range rep.Problems {
			fmt.Printf("  - %s\n", problem)
		}
		return fmt.Errorf("benchmark has %d problems", len(rep.Problems))
	}

	fmt.Println("Benchmark OK")
	return nil
}
