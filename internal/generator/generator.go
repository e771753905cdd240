// Package generator builds reproducible synthetic enterprise corpora and
// relevance-linked benchmark queries from a single seeded random source.
package generator

import (
	"fmt"
	"time"
)

const (
	DefaultDocuments = 50000
	DefaultQueries   = 500
)

// DefaultAsOf is the reference date documents are backdated from when none is given.
var DefaultAsOf = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

// Options configures one generation run.
type Options struct {
	Documents int
	Queries   int
	Seed      int64
	// AsOf anchors "last updated" dates. Zero means DefaultAsOf.
	AsOf time.Time
}

// DefaultOptions returns the stock 50k/500 configuration.
func DefaultOptions() Options {
	return Options{
		Documents: DefaultDocuments,
		Queries:   DefaultQueries,
		Seed:      DefaultSeed,
		AsOf:      DefaultAsOf,
	}
}

// Validate rejects non-positive counts.
func (o Options) Validate() error {
	if o.Documents <= 0 {
		return fmt.Errorf("%w: document count must be positive, got %d", ErrInvalidConfig, o.Documents)
	}
	if o.Queries <= 0 {
		return fmt.Errorf("%w: query count must be positive, got %d", ErrInvalidConfig, o.Queries)
	}
	return nil
}

// ProgressFunc is called after each document with the number generated so far.
type ProgressFunc func(done int)

// Corpus is the output of the document pass.
type Corpus struct {
	Documents []*Document
	Index     *TopicIndex
}

// Generator owns the run's Source and every component drawing from it.
// It is not safe for concurrent use.
type Generator struct {
	opts      Options
	vocab     *Vocabulary
	src       *Source
	ids       *IDAllocator
	assembler *Assembler
	queries   *QueryGenerator
}

// New creates a generator for opts with the default vocabulary and templates.
func New(opts Options) (*Generator, error) {
	return NewWithVocabulary(opts, DefaultVocabulary(), nil)
}

// NewWithVocabulary creates a generator with a custom vocabulary and template
// table. A nil table uses the default templates for every topic.
func NewWithVocabulary(opts Options, vocab Vocabulary, table *TemplateTable) (*Generator, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := vocab.Validate(); err != nil {
		return nil, err
	}
	if opts.AsOf.IsZero() {
		opts.AsOf = DefaultAsOf
	}

	src := NewSource(opts.Seed)
	engine := NewEngine(src, &vocab, table)
	return &Generator{
		opts:      opts,
		vocab:     &vocab,
		src:       src,
		ids:       NewIDAllocator(src),
		assembler: NewAssembler(src, &vocab, engine, opts.AsOf),
		queries:   NewQueryGenerator(src, &vocab),
	}, nil
}

// Options returns the effective options.
func (g *Generator) Options() Options {
	return g.opts
}

// Vocabulary returns the vocabulary in use.
func (g *Generator) Vocabulary() Vocabulary {
	return *g.vocab
}

// GenerateDocuments produces the configured number of documents and indexes
// them by topic as they are created. Per document the draw order is
// id, topic, type, department, then the assembler's draws.
func (g *Generator) GenerateDocuments(progress ProgressFunc) (*Corpus, error) {
	corpus := &Corpus{
		Documents: make([]*Document, 0, g.opts.Documents),
		Index:     NewTopicIndex(),
	}

	for i := 0; i < g.opts.Documents; i++ {
		id, err := g.ids.Next()
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		topic := g.src.Choice(g.vocab.Topics)
		docType := g.src.Choice(g.vocab.DocumentTypes)
		department := g.src.Choice(g.vocab.Departments)

		doc := g.assembler.Assemble(id, topic, docType, department)
		corpus.Documents = append(corpus.Documents, doc)
		corpus.Index.Add(doc)

		if progress != nil {
			progress(i + 1)
		}
	}
	return corpus, nil
}

// GenerateQueries builds the configured number of queries over corpus.
// It must run after GenerateDocuments on the same generator to keep the
// draw order reproducible.
func (g *Generator) GenerateQueries(corpus *Corpus) ([]Query, Selection) {
	return g.queries.GenerateAll(corpus.Index, corpus.Documents, g.opts.Queries)
}
