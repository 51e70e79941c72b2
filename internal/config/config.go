// Package config loads Screena configuration from a TOML file with
// environment overrides for credentials and deployment selection.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Config holds all settings for the indexing and screening pipelines.
// API keys never come from the file; they are read from the
// environment only.
type Config struct {
	Resumes   ResumesConfig   `toml:"resumes"`
	Chunking  ChunkingConfig  `toml:"chunking"`
	Retrieval RetrievalConfig `toml:"retrieval"`
	Embedding EmbeddingConfig `toml:"embedding"`
	Index     IndexConfig     `toml:"index"`
	Reasoning ReasoningConfig `toml:"reasoning"`
}

// ResumesConfig locates the resumé files.
type ResumesConfig struct {
	// Dir is the directory holding `cv (<n>).pdf` files.
	Dir string `toml:"dir"`

	// Count is the number of resumé slots, N. Valid IDs are [1, N].
	Count int `toml:"count"`
}

// ChunkingConfig controls how resumé text is split.
type ChunkingConfig struct {
	Size    int `toml:"size"`
	Overlap int `toml:"overlap"`
}

// RetrievalConfig controls similarity search.
type RetrievalConfig struct {
	TopK int `toml:"top_k"`
}

// EmbeddingConfig selects and configures the embedding provider.
type EmbeddingConfig struct {
	// Provider is "openai" (any OpenAI-compatible API) or "ollama".
	Provider string `toml:"provider"`

	BaseURL    string `toml:"base_url"`
	Model      string `toml:"model"`
	Dimensions int    `toml:"dimensions"`

	// RequestsPerSecond caps embed calls client-side. 0 disables.
	RequestsPerSecond float64 `toml:"requests_per_second"`

	// APIKey comes from EMBEDDING_API_KEY (or OPENAI_API_KEY).
	APIKey string `toml:"-"`
}

// IndexConfig configures the external vector index.
type IndexConfig struct {
	Name   string `toml:"name"`
	Cloud  string `toml:"cloud"`
	Region string `toml:"region"`

	// APIKey comes from PINECONE_API_KEY.
	APIKey string `toml:"-"`
}

// ReasoningConfig configures the analysis service.
type ReasoningConfig struct {
	BaseURL string `toml:"base_url"`

	// Budget is the computation tier: low, medium or high.
	Budget string `toml:"budget"`

	// APIKey comes from AI21_API_KEY.
	APIKey string `toml:"-"`
}

// Dimension is the embedding and index dimension. Both sides must
// agree on it; it is fixed rather than configured.
const Dimension = 1024

// Default returns the configuration used when no file overrides it.
func Default() *Config {
	return &Config{
		Resumes: ResumesConfig{
			Dir:   "ResumesPDF",
			Count: 2,
		},
		Chunking: ChunkingConfig{
			Size:    1000,
			Overlap: 200,
		},
		Retrieval: RetrievalConfig{
			TopK: 7,
		},
		Embedding: EmbeddingConfig{
			Provider:   "openai",
			Dimensions: Dimension,
		},
		Index: IndexConfig{
			Name:   "ai21-rag",
			Cloud:  "aws",
			Region: "us-east-1",
		},
		Reasoning: ReasoningConfig{
			Budget: "low",
		},
	}
}

// DefaultPath returns the default config file location,
// ~/.screena/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".screena", "config.toml"), nil
}

// Load reads configuration from path, falling back to DefaultPath when
// path is empty. A missing file is not an error: defaults plus
// environment overrides apply. A `.env` file in the working directory
// is loaded into the environment first, if present.
func Load(path string) (*Config, error) {
	// Missing .env is the common case and not an error.
	_ = godotenv.Load()

	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// No config file; defaults apply.
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overlays environment variables on the loaded file.
func (c *Config) applyEnv() {
	c.Index.APIKey = os.Getenv("PINECONE_API_KEY")
	c.Reasoning.APIKey = os.Getenv("AI21_API_KEY")

	c.Embedding.APIKey = os.Getenv("EMBEDDING_API_KEY")
	if c.Embedding.APIKey == "" {
		c.Embedding.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	if v := os.Getenv("SCREENA_INDEX_NAME"); v != "" {
		c.Index.Name = v
	} else if v := os.Getenv("INDEX_NAME"); v != "" {
		c.Index.Name = v
	}
	if v := os.Getenv("PINECONE_CLOUD"); v != "" {
		c.Index.Cloud = v
	}
	if v := os.Getenv("PINECONE_REGION"); v != "" {
		c.Index.Region = v
	}
	if v := os.Getenv("SCREENA_RESUMES_DIR"); v != "" {
		c.Resumes.Dir = v
	}
	if v := os.Getenv("SCREENA_RESUMES_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Resumes.Count = n
		}
	}
}
