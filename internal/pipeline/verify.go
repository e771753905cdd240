package pipeline

import (
	"context"
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/bull/benchgen/internal/generator"
	"github.com/bull/benchgen/internal/manifest"
	"github.com/bull/benchgen/internal/markdown"
	"github.com/bull/benchgen/internal/storage"
)

// VerifyReport lists the problems found in a generated benchmark.
type VerifyReport struct {
	Queries     int
	Configs     int
	CorpusFiles int
	Checked     int
	Problems    []string
}

// OK reports whether no problems were found.
func (r *VerifyReport) OK() bool {
	return len(r.Problems) == 0
}

func (r *VerifyReport) addf(format string, args ...any) {
	r.Problems = append(r.Problems, fmt.Sprintf(format, args...))
}

// Verify checks a benchmark in store: every relevant doc must exist in the
// corpus, the first relevant doc must be the query's anchor, and every
// referenced document must carry the standard section layout.
func Verify(ctx context.Context, store storage.Storage, chunker *markdown.Chunker) (*VerifyReport, error) {
	if chunker == nil {
		chunker = markdown.NewChunker()
	}
	rep := &VerifyReport{}

	data, err := store.Get(ctx, manifest.QueriesFile)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", manifest.QueriesFile, err)
	}
	queries, err := manifest.DecodeQueries(data)
	if err != nil {
		return nil, err
	}
	rep.Queries = len(queries.Queries)

	data, err = store.Get(ctx, manifest.ConfigsFile)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", manifest.ConfigsFile, err)
	}
	configs, err := manifest.DecodeConfigs(data)
	if err != nil {
		return nil, err
	}
	rep.Configs = len(configs.Configs)

	names, err := store.List(ctx, storage.CorpusDir)
	if err != nil {
		return nil, fmt.Errorf("list corpus: %w", err)
	}
	corpus := make(map[string]bool, len(names))
	for _, name := range names {
		base := path.Base(name)
		if isDocumentFile(base) {
			corpus[base] = true
		}
	}
	rep.CorpusFiles = len(corpus)

	checked := make(map[string]bool)
	for _, q := range queries.Queries {
		if len(q.RelevantDocs) == 0 {
			rep.addf("query %s: no relevant docs", q.ID)
			continue
		}
		anchorID := strings.TrimPrefix(q.ID, "q")
		if q.RelevantDocs[0] != generator.Filename(anchorID) {
			rep.addf("query %s: first relevant doc %s is not its anchor", q.ID, q.RelevantDocs[0])
		}

		for _, rel := range q.RelevantDocs {
			if !corpus[rel] {
				rep.addf("query %s: relevant doc %s not in corpus", q.ID, rel)
				continue
			}
			if checked[rel] {
				continue
			}
			checked[rel] = true
			if err := checkLayout(ctx, store, chunker, rel); err != nil {
				rep.addf("%s: %v", rel, err)
			}
		}
	}
	rep.Checked = len(checked)
	return rep, nil
}

func checkLayout(ctx context.Context, store storage.Storage, chunker *markdown.Chunker, filename string) error {
	content, err := store.Get(ctx, storage.CorpusName(filename))
	if err != nil {
		return err
	}
	titles, err := chunker.SectionTitles(content)
	if err != nil {
		return err
	}
	if !slices.Equal(titles, generator.Sections) {
		return fmt.Errorf("unexpected sections %v", titles)
	}
	return nil
}
