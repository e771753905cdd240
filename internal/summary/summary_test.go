package summary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bull/benchgen/internal/generator"
	"github.com/bull/benchgen/internal/markdown"
)

func TestCompute_EmptyCorpus(t *testing.T) {
	s, err := Compute(nil, 0, 0, markdown.NewChunker())
	require.NoError(t, err)
	assert.Zero(t, s.Documents)
	assert.Zero(t, s.AvgDocChars)
	assert.Zero(t, s.AvgChunks)
}

func TestCompute_Sizes(t *testing.T) {
	docs := []*generator.Document{
		{ID: "a", Content: "# A\n\n## One\n\nx"},
		{ID: "b", Content: "plain text"},
	}

	s, err := Compute(docs, 3, 2, markdown.NewChunker())
	require.NoError(t, err)

	total := int64(len(docs[0].Content) + len(docs[1].Content))
	assert.Equal(t, total, s.TotalChars)
	assert.InDelta(t, float64(total)/2, s.AvgDocChars, 1e-9)
	// two chunks for the first document, one for the headerless second
	assert.InDelta(t, 1.5, s.AvgChunks, 1e-9)
	assert.Equal(t, 3, s.Queries)
}

func TestCompute_GeneratedDocumentsHaveSevenChunks(t *testing.T) {
	g, err := generator.New(generator.Options{Documents: 20, Queries: 1, Seed: 42})
	require.NoError(t, err)
	corpus, err := g.GenerateDocuments(nil)
	require.NoError(t, err)

	s, err := Compute(corpus.Documents, 1, corpus.Index.Len(), markdown.NewChunker())
	require.NoError(t, err)
	// H1 title plus six H2 sections
	assert.InDelta(t, 7.0, s.AvgChunks, 1e-9)
}

func TestRenderReadme(t *testing.T) {
	vocab := generator.DefaultVocabulary()
	s := Stats{
		Documents:      50000,
		Queries:        500,
		Topics:         37,
		TotalChars:     3 * 1024 * 1024,
		AvgDocChars:    3200.4,
		AvgChunks:      7,
		GenerationTime: 1500 * time.Millisecond,
		GeneratedAt:    time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		Seed:           42,
		Departments:    vocab.Departments,
		DocumentTypes:  vocab.DocumentTypes,
	}

	data, err := RenderReadme(s)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "| Documents | 50,000 |")
	assert.Contains(t, out, "| Queries | 500 |")
	assert.Contains(t, out, "| Total Size | 3.0 MB (3.0 MiB) |")
	assert.Contains(t, out, "| Avg Doc Size | 3200 chars |")
	assert.Contains(t, out, "| Generation Time | 1.5s |")
	assert.Contains(t, out, "across 15 departments:\nEngineering, Product,")
	assert.Contains(t, out, "*Generated on 2025-01-02T03:04:05Z*")
}
