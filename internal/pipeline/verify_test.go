package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bull/benchgen/internal/generator"
	"github.com/bull/benchgen/internal/manifest"
	"github.com/bull/benchgen/internal/storage"
)

func generateInto(t *testing.T, opts generator.Options) (string, storage.Storage) {
	t.Helper()
	dir := t.TempDir()
	_, err := runPipeline(t, dir, opts)
	require.NoError(t, err)
	store, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)
	return dir, store
}

func TestVerify_GeneratedBenchmarkIsClean(t *testing.T) {
	_, store := generateInto(t, generator.Options{Documents: 200, Queries: 40, Seed: 42})

	rep, err := Verify(context.Background(), store, nil)
	require.NoError(t, err)
	assert.True(t, rep.OK(), "problems: %v", rep.Problems)
	assert.Equal(t, 40, rep.Queries)
	assert.Equal(t, len(manifest.DefaultConfigs()), rep.Configs)
	assert.Equal(t, 200, rep.CorpusFiles)
	assert.Greater(t, rep.Checked, 0)
}

func TestVerify_MissingDocument(t *testing.T) {
	dir, store := generateInto(t, generator.Options{Documents: 50, Queries: 5, Seed: 42})

	queries := loadQueries(t, dir)
	victim := queries[0].RelevantDocs[0]
	require.NoError(t, os.Remove(filepath.Join(dir, storage.CorpusDir, victim)))

	rep, err := Verify(context.Background(), store, nil)
	require.NoError(t, err)
	require.False(t, rep.OK())
	assert.Contains(t, strings.Join(rep.Problems, "\n"), victim+" not in corpus")
}

func TestVerify_BrokenLayout(t *testing.T) {
	dir, store := generateInto(t, generator.Options{Documents: 50, Queries: 5, Seed: 42})

	queries := loadQueries(t, dir)
	victim := queries[0].RelevantDocs[0]
	require.NoError(t, os.WriteFile(filepath.Join(dir, storage.CorpusDir, victim), []byte("# Title\n\n## Purpose\n"), 0644))

	rep, err := Verify(context.Background(), store, nil)
	require.NoError(t, err)
	assert.Contains(t, strings.Join(rep.Problems, "\n"), victim+": unexpected sections")
}

func TestVerify_AnchorMustComeFirst(t *testing.T) {
	ctx := context.Background()
	dir, store := generateInto(t, generator.Options{Documents: 200, Queries: 5, Seed: 42})

	queries := loadQueries(t, dir)
	q := &queries[0]
	require.GreaterOrEqual(t, len(q.RelevantDocs), 2)
	q.RelevantDocs[0], q.RelevantDocs[1] = q.RelevantDocs[1], q.RelevantDocs[0]
	data, err := manifest.EncodeQueries(queries)
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, manifest.QueriesFile, data))

	rep, err := Verify(ctx, store, nil)
	require.NoError(t, err)
	assert.Contains(t, strings.Join(rep.Problems, "\n"), "is not its anchor")
}

func TestVerify_MissingManifest(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = Verify(context.Background(), store, nil)
	assert.ErrorIs(t, err, storage.ErrObjectNotFound)
}
