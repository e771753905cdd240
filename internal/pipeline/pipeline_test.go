package pipeline

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bull/benchgen/internal/generator"
	"github.com/bull/benchgen/internal/manifest"
	"github.com/bull/benchgen/internal/report"
	"github.com/bull/benchgen/internal/storage"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func runPipeline(t *testing.T, dir string, opts generator.Options) (*Result, error) {
	t.Helper()
	store, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)
	return NewPipeline(opts, store, nil, nil, quietLogger()).Run(context.Background())
}

func readDir(t *testing.T, dir string) map[string][]byte {
	t.Helper()
	files := make(map[string][]byte)
	err := filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, _ := filepath.Rel(dir, p)
		data, err := os.ReadFile(p)
		files[filepath.ToSlash(rel)] = data
		return err
	})
	require.NoError(t, err)
	return files
}

func loadQueries(t *testing.T, dir string) []generator.Query {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, manifest.QueriesFile))
	require.NoError(t, err)
	m, err := manifest.DecodeQueries(data)
	require.NoError(t, err)
	return m.Queries
}

func TestRun_SmallCorpus(t *testing.T) {
	dir := t.TempDir()
	result, err := runPipeline(t, dir, generator.Options{Documents: 10, Queries: 5, Seed: 42})
	require.NoError(t, err)

	assert.Equal(t, 10, result.Documents)
	assert.Equal(t, 5, result.Queries)

	corpus, err := os.ReadDir(filepath.Join(dir, storage.CorpusDir))
	require.NoError(t, err)
	assert.Len(t, corpus, 10)

	existing := make(map[string]bool)
	for _, e := range corpus {
		existing[e.Name()] = true
	}
	queries := loadQueries(t, dir)
	require.Len(t, queries, 5)
	for _, q := range queries {
		for _, rel := range q.RelevantDocs {
			assert.True(t, existing[rel], "query %s references missing %s", q.ID, rel)
		}
	}

	for _, name := range []string{manifest.ConfigsFile, manifest.SummaryFile} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}

func TestRun_InvalidCountsWriteNothing(t *testing.T) {
	for _, opts := range []generator.Options{
		{Documents: 0, Queries: 5},
		{Documents: 10, Queries: 0},
		{Documents: -3, Queries: -1},
	} {
		dir := t.TempDir()
		_, err := runPipeline(t, dir, opts)
		assert.True(t, errors.Is(err, generator.ErrInvalidConfig), "opts %+v: %v", opts, err)
		assert.Empty(t, readDir(t, dir), "opts %+v wrote files", opts)
	}
}

func TestRun_MoreQueriesThanDocuments(t *testing.T) {
	dir := t.TempDir()
	result, err := runPipeline(t, dir, generator.Options{Documents: 3, Queries: 10, Seed: 42})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Documents)
	assert.LessOrEqual(t, result.Queries, 10)
	if result.Candidates == 0 {
		assert.Equal(t, 3, result.Queries)
	}
	assert.Len(t, loadQueries(t, dir), result.Queries)
}

func TestRun_Reproducible(t *testing.T) {
	opts := generator.Options{Documents: 120, Queries: 30, Seed: 7}
	dirA, dirB := t.TempDir(), t.TempDir()

	_, err := runPipeline(t, dirA, opts)
	require.NoError(t, err)
	_, err = runPipeline(t, dirB, opts)
	require.NoError(t, err)

	a, b := readDir(t, dirA), readDir(t, dirB)
	// The summary carries wall-clock timings; everything else must match.
	delete(a, manifest.SummaryFile)
	delete(b, manifest.SummaryFile)
	require.Equal(t, len(a), len(b))
	for name, data := range a {
		assert.Equal(t, data, b[name], "file %s differs", name)
	}
}

func TestRun_ReplacesPreviousCorpus(t *testing.T) {
	dir := t.TempDir()
	_, err := runPipeline(t, dir, generator.Options{Documents: 20, Queries: 2, Seed: 1})
	require.NoError(t, err)

	notes := filepath.Join(dir, storage.CorpusDir, "notes.md")
	require.NoError(t, os.WriteFile(notes, []byte("keep"), 0644))

	result, err := runPipeline(t, dir, generator.Options{Documents: 5, Queries: 2, Seed: 2})
	require.NoError(t, err)
	assert.Equal(t, 20, result.StaleRemoved)

	entries, err := os.ReadDir(filepath.Join(dir, storage.CorpusDir))
	require.NoError(t, err)
	assert.Len(t, entries, 6, "5 new documents plus notes.md")
}

type fakePublisher struct {
	cleared int
	docs    []*generator.Document
}

func (f *fakePublisher) ClearCollection(ctx context.Context) error {
	f.cleared++
	return nil
}

func (f *fakePublisher) UpsertDocuments(ctx context.Context, docs []*generator.Document) error {
	f.docs = append(f.docs, docs...)
	return nil
}

func TestRun_Publishes(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	pub := &fakePublisher{}

	result, err := NewPipeline(generator.Options{Documents: 15, Queries: 3, Seed: 3}, store, nil, nil, quietLogger()).
		WithPublisher(pub).
		Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, pub.cleared)
	assert.Len(t, pub.docs, 15)
	assert.Equal(t, 15, result.Published)
}

func TestRun_ReportsProgressAndMetrics(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	var out bytes.Buffer
	metrics := report.NewMetrics()
	reporter := report.NewReporter(&out, metrics, report.WithProgressEvery(10))

	_, err = NewPipeline(generator.Options{Documents: 20, Queries: 4, Seed: 5}, store, nil, reporter, quietLogger()).
		Run(context.Background())
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Generated 10 documents")
	assert.Contains(t, out.String(), "Generated 20 documents")
	assert.Contains(t, out.String(), "Wrote 20 files")
}

func TestRun_CanceledContextStopsWrites(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = NewPipeline(generator.Options{Documents: 5, Queries: 1}, store, nil, nil, quietLogger()).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
