package manifest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bull/benchgen/internal/generator"
)

func TestEncodeQueries_Layout(t *testing.T) {
	data, err := EncodeQueries([]generator.Query{{
		ID:           "qabc",
		Text:         "What is the procedure for scaling operations?",
		Answer:       "See HR Memo: Scaling",
		RelevantDocs: []string{"doc_abc.txt", "doc_def.txt"},
		PrimaryTopic: "scaling",
		Department:   "HR",
	}})
	require.NoError(t, err)

	out := string(data)
	assert.True(t, strings.HasPrefix(out, "{\n  \"queries\": [\n    {\n      \"id\": \"qabc\",\n"), out)
	for _, field := range []string{`"text"`, `"answer"`, `"relevant_docs"`, `"primary_topic"`, `"department"`} {
		assert.Contains(t, out, field)
	}
	assert.True(t, strings.HasSuffix(out, "}\n"))
}

func TestEncodeQueries_EmptyIsArray(t *testing.T) {
	data, err := EncodeQueries(nil)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"queries\": []\n}\n", string(data))
}

func TestDecodeQueries_Validation(t *testing.T) {
	_, err := DecodeQueries([]byte(`{"queries": []}`))
	assert.ErrorIs(t, err, ErrNoQueries)

	_, err = DecodeQueries([]byte(`{"queries": [{"id": "", "text": "x"}]}`))
	assert.ErrorContains(t, err, "missing id")

	_, err = DecodeQueries([]byte(`{"queries": [{"id": "q1", "text": ""}]}`))
	assert.ErrorContains(t, err, "missing text")

	_, err = DecodeQueries([]byte(`not json`))
	assert.Error(t, err)

	m, err := DecodeQueries([]byte(`{"queries": [{"id": "q1", "text": "t", "relevant_docs": ["doc_1.txt"]}]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"doc_1.txt"}, m.Queries[0].RelevantDocs)
}

func TestEncodeConfigs(t *testing.T) {
	data, err := EncodeConfigs(DefaultConfigs())
	require.NoError(t, err)

	out := string(data)
	assert.True(t, strings.HasPrefix(out, "# Benchmark configurations"))
	assert.Contains(t, out, "configs:\n  - name: top3\n    top_k: 3\n")

	m, err := DecodeConfigs(data)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfigs(), m.Configs)
}

func TestDecodeConfigs_Validation(t *testing.T) {
	_, err := DecodeConfigs([]byte("configs: []\n"))
	assert.ErrorIs(t, err, ErrNoConfigs)

	_, err = DecodeConfigs([]byte("configs:\n  - name: bad\n    top_k: 0\n"))
	assert.ErrorContains(t, err, "non-positive top_k")
}
