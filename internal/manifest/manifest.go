// Package manifest encodes the benchmark's query and configuration manifests.
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/bull/benchgen/internal/generator"
)

// File names of the manifests at the output root.
const (
	QueriesFile = "queries.json"
	ConfigsFile = "configs.yaml"
	SummaryFile = "README.md"
)

var (
	ErrNoQueries = errors.New("query manifest has no queries")
	ErrNoConfigs = errors.New("config manifest has no configs")
)

// QueryManifest is the queries.json document.
type QueryManifest struct {
	Queries []generator.Query `json:"queries"`
}

// RetrievalConfig is one named retrieval depth to benchmark.
type RetrievalConfig struct {
	Name        string `yaml:"name" json:"name"`
	TopK        int    `yaml:"top_k" json:"top_k"`
	Description string `yaml:"description" json:"description"`
}

// ConfigManifest is the configs.yaml document.
type ConfigManifest struct {
	Configs []RetrievalConfig `yaml:"configs" json:"configs"`
}

// DefaultConfigs returns the retrieval depths measured for every corpus.
func DefaultConfigs() []RetrievalConfig {
	return []RetrievalConfig{
		{Name: "top3", TopK: 3, Description: "Minimal retrieval - tests precision"},
		{Name: "top5", TopK: 5, Description: "Standard retrieval depth"},
		{Name: "top10", TopK: 10, Description: "Extended retrieval for complex queries"},
		{Name: "top20", TopK: 20, Description: "Deep retrieval for multi-hop reasoning"},
		{Name: "top50", TopK: 50, Description: "Maximum retrieval for exhaustive search"},
	}
}

const configsHeader = `# Benchmark configurations for enterprise-scale testing
# Tests various top_k values to measure recall at different retrieval depths

`

// EncodeQueries renders queries as indented JSON.
func EncodeQueries(queries []generator.Query) ([]byte, error) {
	if queries == nil {
		queries = []generator.Query{}
	}
	data, err := json.MarshalIndent(QueryManifest{Queries: queries}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode queries: %w", err)
	}
	return append(data, '\n'), nil
}

// DecodeQueries parses a queries.json document.
func DecodeQueries(data []byte) (*QueryManifest, error) {
	var m QueryManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse queries: %w", err)
	}
	if len(m.Queries) == 0 {
		return nil, ErrNoQueries
	}
	for i, q := range m.Queries {
		if q.ID == "" {
			return nil, fmt.Errorf("query %d missing id", i)
		}
		if q.Text == "" {
			return nil, fmt.Errorf("query %q missing text", q.ID)
		}
	}
	return &m, nil
}

// EncodeConfigs renders configs as commented YAML.
func EncodeConfigs(configs []RetrievalConfig) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(configsHeader)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(ConfigManifest{Configs: configs}); err != nil {
		return nil, fmt.Errorf("encode configs: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode configs: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeConfigs parses a configs.yaml document.
func DecodeConfigs(data []byte) (*ConfigManifest, error) {
	var m ConfigManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse configs: %w", err)
	}
	if len(m.Configs) == 0 {
		return nil, ErrNoConfigs
	}
	for i, c := range m.Configs {
		if c.Name == "" {
			return nil, fmt.Errorf("config %d missing name", i)
		}
		if c.TopK <= 0 {
			return nil, fmt.Errorf("config %q has non-positive top_k %d", c.Name, c.TopK)
		}
	}
	return &m, nil
}
