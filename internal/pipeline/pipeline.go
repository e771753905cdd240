// Package pipeline runs a full benchmark generation: documents, corpus files,
// queries, manifests, summary and optional vector-store publishing.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bull/benchgen/internal/generator"
	"github.com/bull/benchgen/internal/manifest"
	"github.com/bull/benchgen/internal/markdown"
	"github.com/bull/benchgen/internal/report"
	"github.com/bull/benchgen/internal/storage"
	"github.com/bull/benchgen/internal/summary"
)

// Result contains statistics about a generation run.
type Result struct {
	Documents       int
	Queries         int
	Candidates      int
	FallbackAnchors int
	StaleRemoved    int
	Published       int
	Location        string
	Stats           summary.Stats
	GenerateTime    time.Duration
	WriteTime       time.Duration
	Duration        time.Duration
}

// Publisher receives the finished corpus, e.g. a vector store collection.
type Publisher interface {
	ClearCollection(ctx context.Context) error
	UpsertDocuments(ctx context.Context, docs []*generator.Document) error
}

// Pipeline orchestrates one generation run.
type Pipeline struct {
	opts      generator.Options
	configs   []manifest.RetrievalConfig
	store     storage.Storage
	publisher Publisher
	chunker   *markdown.Chunker
	reporter  *report.Reporter
	logger    *slog.Logger
	now       func() time.Time
}

// NewPipeline creates a pipeline writing to store. A nil reporter discards
// progress output and a nil logger uses slog.Default().
func NewPipeline(
	opts generator.Options,
	store storage.Storage,
	chunker *markdown.Chunker,
	reporter *report.Reporter,
	logger *slog.Logger,
) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if reporter == nil {
		reporter = report.NewReporter(nil, nil)
	}
	if chunker == nil {
		chunker = markdown.NewChunker()
	}
	return &Pipeline{
		opts:     opts,
		configs:  manifest.DefaultConfigs(),
		store:    store,
		chunker:  chunker,
		reporter: reporter,
		logger:   logger,
		now:      time.Now,
	}
}

// WithPublisher sets a publisher that receives every document after the
// corpus has been written.
func (p *Pipeline) WithPublisher(pub Publisher) *Pipeline {
	p.publisher = pub
	return p
}

// WithConfigs replaces the retrieval configs written to configs.yaml.
func (p *Pipeline) WithConfigs(configs []manifest.RetrievalConfig) *Pipeline {
	p.configs = configs
	return p
}

// Run generates the benchmark. Invalid options are rejected before anything
// is generated or written, and the whole corpus is built in memory before the
// first file is touched.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	if err := p.opts.Validate(); err != nil {
		return nil, err
	}
	gen, err := generator.New(p.opts)
	if err != nil {
		return nil, err
	}

	p.reporter.Start()
	result := &Result{Location: p.store.Location()}
	p.logger.Info("Starting generation",
		"documents", p.opts.Documents,
		"queries", p.opts.Queries,
		"seed", p.opts.Seed,
	)

	// 1. Generate documents and the topic index
	p.reporter.BeginGeneration(p.opts.Documents)
	corpus, err := gen.GenerateDocuments(p.reporter.DocumentGenerated)
	if err != nil {
		return nil, fmt.Errorf("generate documents: %w", err)
	}
	result.GenerateTime = p.reporter.EndGeneration()
	result.Documents = len(corpus.Documents)
	p.logger.Info("Generated documents", "count", result.Documents, "topics", corpus.Index.Len())

	// 2. Replace the previous corpus
	removed, err := storage.ClearCorpus(ctx, p.store, isDocumentFile)
	if err != nil {
		return nil, fmt.Errorf("clear corpus: %w", err)
	}
	result.StaleRemoved = removed
	if removed > 0 {
		p.logger.Info("Cleared previous corpus", "files", removed)
	}

	if err := p.writeCorpus(ctx, corpus.Documents); err != nil {
		return nil, err
	}
	result.WriteTime = p.reporter.EndWrite(len(corpus.Documents))

	// 3. Queries
	p.reporter.BeginPhase(fmt.Sprintf("Generating %d queries...", p.opts.Queries))
	queries, sel := gen.GenerateQueries(corpus)
	p.reporter.EndPhase(report.PhaseQueries)
	p.reporter.QueriesGenerated(len(queries), sel.Fallback)
	result.Queries = len(queries)
	result.Candidates = sel.Candidates
	result.FallbackAnchors = sel.Fallback
	if sel.Short() {
		p.logger.Warn("Insufficient topic-qualified anchors, filled from whole corpus",
			"requested", p.opts.Queries,
			"candidates", sel.Candidates,
			"fallback", sel.Fallback,
		)
	}

	// 4. Manifests
	if err := p.writeManifests(ctx, queries); err != nil {
		return nil, err
	}

	// 5. Optional publish
	if p.publisher != nil {
		if err := p.publish(ctx, corpus.Documents); err != nil {
			return nil, err
		}
		result.Published = len(corpus.Documents)
	}

	// 6. Summary
	stats, err := summary.Compute(corpus.Documents, len(queries), corpus.Index.Len(), p.chunker)
	if err != nil {
		return nil, fmt.Errorf("compute stats: %w", err)
	}
	vocab := gen.Vocabulary()
	stats.Seed = p.opts.Seed
	stats.Departments = vocab.Departments
	stats.DocumentTypes = vocab.DocumentTypes
	stats.GeneratedAt = p.now()
	p.reporter.CorpusSize(stats.TotalChars)

	result.Duration = p.reporter.Finish()
	stats.GenerationTime = result.Duration
	result.Stats = stats

	readme, err := summary.RenderReadme(stats)
	if err != nil {
		return nil, err
	}
	if err := p.store.Put(ctx, manifest.SummaryFile, readme); err != nil {
		return nil, fmt.Errorf("write %s: %w", manifest.SummaryFile, err)
	}

	p.logger.Info("Generation complete",
		"documents", result.Documents,
		"queries", result.Queries,
		"fallback", result.FallbackAnchors,
		"duration", result.Duration,
	)
	return result, nil
}

func (p *Pipeline) writeCorpus(ctx context.Context, docs []*generator.Document) error {
	p.reporter.BeginWrite(storage.CorpusDir + "/")
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("write corpus: %w", err)
		}
		if err := p.store.Put(ctx, storage.CorpusName(doc.Filename()), []byte(doc.Content)); err != nil {
			return fmt.Errorf("write %s: %w", doc.Filename(), err)
		}
		p.reporter.DocumentWritten()
		p.logger.Debug("Wrote document", "file", doc.Filename(), "size", len(doc.Content))
	}
	return nil
}

func (p *Pipeline) writeManifests(ctx context.Context, queries []generator.Query) error {
	data, err := manifest.EncodeQueries(queries)
	if err != nil {
		return err
	}
	if err := p.store.Put(ctx, manifest.QueriesFile, data); err != nil {
		return fmt.Errorf("write %s: %w", manifest.QueriesFile, err)
	}

	data, err = manifest.EncodeConfigs(p.configs)
	if err != nil {
		return err
	}
	if err := p.store.Put(ctx, manifest.ConfigsFile, data); err != nil {
		return fmt.Errorf("write %s: %w", manifest.ConfigsFile, err)
	}
	return nil
}

func (p *Pipeline) publish(ctx context.Context, docs []*generator.Document) error {
	p.reporter.BeginPhase(fmt.Sprintf("Publishing %d documents...", len(docs)))
	if err := p.publisher.ClearCollection(ctx); err != nil {
		return fmt.Errorf("clear collection: %w", err)
	}
	if err := p.publisher.UpsertDocuments(ctx, docs); err != nil {
		return fmt.Errorf("publish documents: %w", err)
	}
	d := p.reporter.EndPhase(report.PhasePublish)
	p.logger.Info("Published documents", "count", len(docs), "duration", d)
	return nil
}

func isDocumentFile(name string) bool {
	_, ok := generator.IDFromFilename(name)
	return ok
}
