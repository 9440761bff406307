package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the knowledge base tool.
type Config struct {
	Sources   SourcesConfig   `yaml:"sources"`
	Chunking  ChunkingConfig  `yaml:"chunking"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Search    SearchConfig    `yaml:"search"`
	Snapshot  SnapshotConfig  `yaml:"snapshot"`
}

// SourcesConfig describes where the builder finds source documents.
type SourcesConfig struct {
	Includes    []string `yaml:"includes"`
	Excludes    []string `yaml:"excludes"`
	EssayAuthor string   `yaml:"essay_author"` // author attributed to Markdown essays
	TableAuthor string   `yaml:"table_author"` // author attributed to CSV passages/clips
}

// ChunkingConfig holds the word-window chunking parameters.
type ChunkingConfig struct {
	ChunkWords   int `yaml:"chunk_words"`
	OverlapWords int `yaml:"overlap_words"`
}

// EmbeddingConfig holds embedding configuration for the builder.
type EmbeddingConfig struct {
	Enabled      bool   `yaml:"enabled"`
	Model        string `yaml:"model"`
	BaseURL      string `yaml:"base_url"`
	APIKeyEnv    string `yaml:"api_key_env"` // environment variable holding the API key
	BatchSize    int    `yaml:"batch_size"`
	BatchDelayMS int    `yaml:"batch_delay_ms"` // pause between batches to respect rate limits
}

// SearchConfig holds search defaults.
type SearchConfig struct {
	Limit         int     `yaml:"limit"`
	MinSimilarity float64 `yaml:"min_similarity"`
}

// SnapshotConfig locates the snapshot artifact.
type SnapshotConfig struct {
	Path string `yaml:"path"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Sources: SourcesConfig{
			Includes:    []string{"**/*.md", "**/*.csv"},
			Excludes:    []string{"**/node_modules/**", "**/.git/**", "**/README.md"},
			EssayAuthor: "Paul Graham",
			TableAuthor: "Naval Ravikant",
		},
		Chunking: ChunkingConfig{
			ChunkWords:   800,
			OverlapWords: 100,
		},
		Embedding: EmbeddingConfig{
			Enabled:      false, // requires an API key
			Model:        "text-embedding-3-small",
			BaseURL:      "https://api.openai.com/v1",
			APIKeyEnv:    "OPENAI_API_KEY",
			BatchSize:    100,
			BatchDelayMS: 200,
		},
		Search: SearchConfig{
			Limit:         10,
			MinSimilarity: 0.1,
		},
		Snapshot: SnapshotConfig{
			Path: "knowledge.json",
		},
	}
}

// Load loads configuration from a YAML file, falling back to defaults
// when the file does not exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for venturekb.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "venturekb.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".venturekb", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SnapshotPath resolves the snapshot path relative to a directory.
func (c *Config) SnapshotPath(dir string) string {
	if filepath.IsAbs(c.Snapshot.Path) {
		return c.Snapshot.Path
	}
	return filepath.Join(dir, c.Snapshot.Path)
}

// EmbedCachePath returns the path to the builder's embedding cache.
func EmbedCachePath(dir string) string {
	return filepath.Join(dir, ".venturekb", "embeddings.db")
}

// EnsureDataDir ensures the .venturekb directory exists.
func EnsureDataDir(dir string) error {
	return os.MkdirAll(filepath.Join(dir, ".venturekb"), 0755)
}
