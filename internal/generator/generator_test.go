package generator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generate(t *testing.T, opts Options) (*Corpus, []Query, Selection) {
	t.Helper()
	g, err := New(opts)
	require.NoError(t, err)
	corpus, err := g.GenerateDocuments(nil)
	require.NoError(t, err)
	queries, sel := g.GenerateQueries(corpus)
	return corpus, queries, sel
}

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		ok   bool
	}{
		{"defaults", DefaultOptions(), true},
		{"zero documents", Options{Documents: 0, Queries: 5}, false},
		{"negative documents", Options{Documents: -1, Queries: 5}, false},
		{"zero queries", Options{Documents: 10, Queries: 0}, false},
		{"minimal", Options{Documents: 1, Queries: 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, ErrInvalidConfig), "got %v", err)
		})
	}
}

func TestNew_RejectsInvalidOptions(t *testing.T) {
	_, err := New(Options{Documents: 0, Queries: 10, Seed: 42})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNewWithVocabulary_RejectsEmptyTable(t *testing.T) {
	vocab := DefaultVocabulary()
	vocab.TechTerms = nil
	_, err := NewWithVocabulary(Options{Documents: 1, Queries: 1}, vocab, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestGenerate_SmallRun(t *testing.T) {
	corpus, queries, _ := generate(t, Options{Documents: 10, Queries: 5, Seed: 42})

	require.Len(t, corpus.Documents, 10)
	require.Len(t, queries, 5)

	names := make(map[string]bool)
	for _, d := range corpus.Documents {
		names[d.Filename()] = true
	}
	for _, q := range queries {
		require.NotEmpty(t, q.RelevantDocs)
		for _, rel := range q.RelevantDocs {
			assert.True(t, names[rel], "query %s references unknown %s", q.ID, rel)
		}
	}
}

func TestGenerate_FewerDocumentsThanQueries(t *testing.T) {
	corpus, queries, sel := generate(t, Options{Documents: 3, Queries: 10, Seed: 42})

	require.Len(t, corpus.Documents, 3)
	// Candidates come from topics with three documents; the fallback sample
	// is capped by the corpus size.
	want := sel.Candidates + min(10-sel.Candidates, 3)
	assert.Len(t, queries, min(want, 10))
	if sel.Candidates == 0 {
		assert.Len(t, queries, 3)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	opts := Options{Documents: 300, Queries: 40, Seed: 1234}
	c1, q1, _ := generate(t, opts)
	c2, q2, _ := generate(t, opts)

	require.Equal(t, len(c1.Documents), len(c2.Documents))
	for i := range c1.Documents {
		assert.Equal(t, c1.Documents[i], c2.Documents[i])
	}
	assert.Equal(t, q1, q2)
}

func TestGenerate_SeedChangesOutput(t *testing.T) {
	c1, _, _ := generate(t, Options{Documents: 5, Queries: 1, Seed: 1})
	c2, _, _ := generate(t, Options{Documents: 5, Queries: 1, Seed: 2})
	assert.NotEqual(t, c1.Documents[0].ID, c2.Documents[0].ID)
}

func TestGenerate_Invariants(t *testing.T) {
	corpus, queries, sel := generate(t, Options{Documents: 2000, Queries: 100, Seed: 42})

	byName := make(map[string]*Document)
	for _, d := range corpus.Documents {
		_, dup := byName[d.Filename()]
		require.False(t, dup, "duplicate id %s", d.ID)
		byName[d.Filename()] = d
	}

	// 37 topics over 2000 documents: every topic has at least three.
	assert.Equal(t, 3*corpus.Index.Len(), sel.Candidates)
	assert.Len(t, queries, 100)
	assert.Equal(t, 0, sel.Fallback)

	for i, q := range queries {
		anchor := sel.Anchors[i]
		assert.Equal(t, anchor.Filename(), q.RelevantDocs[0], "anchor must come first")
		assert.Equal(t, "q"+anchor.ID, q.ID)

		// Topic-preferred anchors are among the first three of their topic.
		lead := corpus.Index.Docs(anchor.Topic)[:AnchorsPerTopic]
		assert.Contains(t, lead, anchor)

		for _, rel := range q.RelevantDocs {
			doc, ok := byName[rel]
			require.True(t, ok, "unknown relevant doc %s", rel)
			assert.Equal(t, anchor.Topic, doc.Topic)
		}
	}
}

func TestGenerateDocuments_Progress(t *testing.T) {
	g, err := New(Options{Documents: 25, Queries: 1})
	require.NoError(t, err)

	var calls []int
	_, err = g.GenerateDocuments(func(done int) { calls = append(calls, done) })
	require.NoError(t, err)

	require.Len(t, calls, 25)
	assert.Equal(t, 1, calls[0])
	assert.Equal(t, 25, calls[24])
}

func TestGenerateDocuments_IndexCoversCorpus(t *testing.T) {
	g, err := New(Options{Documents: 500, Queries: 1, Seed: 8})
	require.NoError(t, err)
	corpus, err := g.GenerateDocuments(nil)
	require.NoError(t, err)

	total := 0
	for _, topic := range corpus.Index.Topics() {
		docs := corpus.Index.Docs(topic)
		total += len(docs)
		for _, d := range docs {
			assert.Equal(t, topic, d.Topic)
		}
	}
	assert.Equal(t, len(corpus.Documents), total)
}
