// Package config provides configuration loading for the kotae server
// and CLI. Settings come from a YAML file; credentials and endpoints
// come from the environment, optionally seeded from a .env file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug      bool             `yaml:"debug"`
	Server     ServerConfig     `yaml:"server"`
	Store      StoreConfig      `yaml:"store"`
	Ingest     IngestConfig     `yaml:"ingest"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Generation GenerationConfig `yaml:"generation"`
}

// ServerConfig holds HTTP server settings. An empty CORSOrigins list
// allows any origin.
type ServerConfig struct {
	Host        string   `yaml:"host"`
	Port        int      `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// StoreConfig holds the embedding store location.
type StoreConfig struct {
	Dir string `yaml:"dir"`
}

// IngestConfig holds corpus scanning and chunking settings. Tokenizer
// names the chunking codec: "cl100k_base" for the BPE encoding, "simple"
// for the offline whitespace codec.
type IngestConfig struct {
	DataDir         string   `yaml:"data_dir"`
	Extensions      []string `yaml:"extensions"`
	ExcludePrefixes []string `yaml:"exclude_prefixes"`
	ChunkSize       int      `yaml:"chunk_size"`
	ChunkOverlap    int      `yaml:"chunk_overlap"`
	BatchSize       int      `yaml:"batch_size"`
	Tokenizer       string   `yaml:"tokenizer"`
}

// EmbeddingConfig holds embedder settings. Backend selects the
// implementation: "onnx" runs a local model, "openai" calls the hosted
// API, "mock" is deterministic and needs no credentials.
type EmbeddingConfig struct {
	Backend    string `yaml:"backend"`
	Model      string `yaml:"model"`
	ModelPath  string `yaml:"model_path"`
	BaseURL    string `yaml:"base_url"`
	Dimensions int    `yaml:"dimensions"`
	MaxTokens  int    `yaml:"max_tokens"`
	CacheSize  int    `yaml:"cache_size"`
	APIKey     string `yaml:"-"`
}

// GenerationConfig holds answer generation settings. Provider API keys
// are never read from YAML, only from the environment.
type GenerationConfig struct {
	DefaultProvider string         `yaml:"default_provider"`
	TimeoutSeconds  int            `yaml:"timeout_seconds"`
	Azure           AzureConfig    `yaml:"azure"`
	OpenAI          ProviderConfig `yaml:"openai"`
	Anthropic       ProviderConfig `yaml:"anthropic"`
	Gemini          ProviderConfig `yaml:"gemini"`
}

// ProviderConfig holds per-provider generation settings.
type ProviderConfig struct {
	Model  string `yaml:"model"`
	APIKey string `yaml:"-"`
}

// AzureConfig holds Azure OpenAI settings. Deployment stands in for the
// model name on Azure.
type AzureConfig struct {
	Endpoint   string `yaml:"endpoint"`
	Deployment string `yaml:"deployment"`
	APIKey     string `yaml:"-"`
}

// Timeout returns the generation deadline as a duration.
func (g *GenerationConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutSeconds) * time.Second
}

// Addr returns the host:port the server listens on.
func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Load reads and parses the config file at path, overlays environment
// credentials, expands paths, and applies defaults. A .env file in the
// working directory is read into the environment first when present.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	finish(&cfg, filepath.Dir(path))
	return &cfg, nil
}

// Default returns the configuration used when no config file exists:
// defaults plus environment credentials, with paths resolved against
// the working directory.
func Default() *Config {
	var cfg Config
	finish(&cfg, ".")
	return &cfg
}

func finish(cfg *Config, configDir string) {
	loadDotEnv()
	ApplyDefaults(cfg)
	applyEnv(cfg)
	cfg.Store.Dir = expandPath(cfg.Store.Dir, configDir)
	cfg.Ingest.DataDir = expandPath(cfg.Ingest.DataDir, configDir)
	if cfg.Embedding.ModelPath != "" {
		cfg.Embedding.ModelPath = expandPath(cfg.Embedding.ModelPath, configDir)
	}
}

// loadDotEnv seeds the environment from ./.env. Variables already set
// in the environment win; a missing file is not an error.
func loadDotEnv() {
	_ = godotenv.Load()
}

// applyEnv overlays credentials and endpoints from the environment.
func applyEnv(cfg *Config) {
	if v := os.Getenv("AZURE_OPENAI_ENDPOINT"); v != "" {
		cfg.Generation.Azure.Endpoint = v
	}
	if v := os.Getenv("AZURE_OPENAI_API_KEY"); v != "" {
		cfg.Generation.Azure.APIKey = v
	}
	if v := os.Getenv("AZURE_OPENAI_MODEL"); v != "" {
		cfg.Generation.Azure.Deployment = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Generation.OpenAI.APIKey = v
		cfg.Embedding.APIKey = v
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		cfg.Generation.Anthropic.APIKey = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.Generation.Gemini.APIKey = v
	}
}

// expandPath converts a path to absolute. Paths starting with "./" are
// relative to configDir; other relative paths are relative to the home
// directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
