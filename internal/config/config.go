package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Aman-CERP/sentindex/internal/logging"
)

// Storage backends.
const (
	BackendSQL      = "sql"
	BackendSnapshot = "snapshot"
)

// Commit granularities.
const (
	CommitBatch    = "batch"
	CommitDocument = "document"
)

// DefaultDataDir is where the index lives unless --data-dir says otherwise.
const DefaultDataDir = ".sentindex"

// Config represents the complete sentindex configuration.
type Config struct {
	Version   int             `yaml:"version" json:"version"`
	Storage   StorageConfig   `yaml:"storage" json:"storage"`
	Segmenter SegmenterConfig `yaml:"segmenter" json:"segmenter"`
	Ingest    IngestConfig    `yaml:"ingest" json:"ingest"`
	Query     QueryConfig     `yaml:"query" json:"query"`
	Logging   LoggingConfig   `yaml:"logging" json:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics" json:"metrics"`
}

// StorageConfig selects and tunes the persistence backend.
type StorageConfig struct {
	// Backend is "sql" (default) or "snapshot".
	Backend string `yaml:"backend" json:"backend"`
	// Driver is the database/sql driver name: sqlite (pure Go), sqlite3 (cgo),
	// postgres or mysql.
	Driver string `yaml:"driver" json:"driver"`
	// DSN is required for postgres and mysql.
	DSN string `yaml:"dsn" json:"dsn"`
	// Path is the SQLite file, relative to the data dir.
	Path string `yaml:"path" json:"path"`
	// SnapshotPath is the snapshot file, relative to the data dir.
	SnapshotPath string `yaml:"snapshot_path" json:"snapshot_path"`
	// Commit is "batch" (one commit per add-dir run) or "document".
	Commit        string `yaml:"commit" json:"commit"`
	BusyTimeoutMS int    `yaml:"busy_timeout_ms" json:"busy_timeout_ms"`
}

// SegmenterConfig tunes sentence splitting and term filtering.
type SegmenterConfig struct {
	Abbreviations  []string `yaml:"abbreviations" json:"abbreviations"`
	MinTokenLength int      `yaml:"min_token_length" json:"min_token_length"`
	// StopwordsFile replaces the embedded English list when set.
	StopwordsFile    string   `yaml:"stopwords_file" json:"stopwords_file"`
	StripMarkup      bool     `yaml:"strip_markup" json:"strip_markup"`
	MarkupExtensions []string `yaml:"markup_extensions" json:"markup_extensions"`
}

// IngestConfig tunes document ingestion.
type IngestConfig struct {
	// ReadAhead is how many files add-dir reads ahead of the indexer.
	ReadAhead int  `yaml:"read_ahead" json:"read_ahead"`
	AutoInit  bool `yaml:"auto_init" json:"auto_init"`
}

// QueryConfig tunes word queries.
type QueryConfig struct {
	DocCacheSize int `yaml:"doc_cache_size" json:"doc_cache_size"`
	WrapWidth    int `yaml:"wrap_width" json:"wrap_width"`
}

// LoggingConfig configures the log file.
type LoggingConfig struct {
	Level     string `yaml:"level" json:"level"`
	File      string `yaml:"file" json:"file"`
	MaxSizeMB int    `yaml:"max_size_mb" json:"max_size_mb"`
	MaxFiles  int    `yaml:"max_files" json:"max_files"`
}

// MetricsConfig configures metrics export.
type MetricsConfig struct {
	// Textfile, when set, receives a Prometheus text exposition after each run.
	Textfile string `yaml:"textfile" json:"textfile"`
}

// NewConfig creates a new Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Version: 1,
		Storage: StorageConfig{
			Backend:       BackendSQL,
			Driver:        "sqlite",
			Path:          "index.db",
			SnapshotPath:  "index.snap",
			Commit:        CommitBatch,
			BusyTimeoutMS: 5000,
		},
		Segmenter: SegmenterConfig{
			Abbreviations:    []string{"dr", "mr", "i.e", "e.g"},
			MinTokenLength:   2,
			MarkupExtensions: []string{".html", ".htm"},
		},
		Ingest: IngestConfig{
			ReadAhead: 4,
			AutoInit:  true,
		},
		Query: QueryConfig{
			DocCacheSize: 256,
			WrapWidth:    100,
		},
		Logging: LoggingConfig{
			Level:     "info",
			MaxSizeMB: 10,
			MaxFiles:  5,
		},
	}
}

// GetUserConfigPath returns the path to the user/global configuration file.
// It follows XDG Base Directory specification:
//   - $XDG_CONFIG_HOME/sentindex/config.yaml (if XDG_CONFIG_HOME is set)
//   - ~/.config/sentindex/config.yaml (default)
func GetUserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "sentindex", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config", "sentindex", "config.yaml")
	}
	return filepath.Join(home, ".config", "sentindex", "config.yaml")
}

// Load loads configuration for the given working directory.
// It applies configuration in order of increasing precedence:
//  1. Hardcoded defaults
//  2. User/global config (~/.config/sentindex/config.yaml)
//  3. Project config (.sentindex.yaml in dir)
//  4. Environment variables (SENTINDEX_*)
func Load(dir string) (*Config, error) {
	cfg := NewConfig()

	if userPath := GetUserConfigPath(); fileExists(userPath) {
		if err := cfg.loadYAML(userPath); err != nil {
			return nil, fmt.Errorf("failed to load user config: %w", err)
		}
	}

	if err := cfg.loadFromFile(dir); err != nil {
		return nil, err
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// ProjectConfigPath returns the project config file in dir, or "" if none.
// .sentindex.yaml wins over .sentindex.yml.
func ProjectConfigPath(dir string) string {
	for _, name := range []string{".sentindex.yaml", ".sentindex.yml"} {
		if p := filepath.Join(dir, name); fileExists(p) {
			return p
		}
	}
	return ""
}

func (c *Config) loadFromFile(dir string) error {
	path := ProjectConfigPath(dir)
	if path == "" {
		return nil
	}
	return c.loadYAML(path)
}

// loadYAML overlays a YAML file onto c. Keys absent from the file keep
// their current values; lists present in the file replace ours.
func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	// Parse into a scratch copy first so a type error leaves c untouched.
	scratch := *c
	scratch.Segmenter.Abbreviations = slices.Clone(c.Segmenter.Abbreviations)
	scratch.Segmenter.MarkupExtensions = slices.Clone(c.Segmenter.MarkupExtensions)
	if err := yaml.Unmarshal(data, &scratch); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	*c = scratch
	return nil
}

// applyEnvOverrides applies SENTINDEX_* environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("SENTINDEX_BACKEND"); v != "" {
		c.Storage.Backend = strings.ToLower(v)
	}
	if v := os.Getenv("SENTINDEX_DRIVER"); v != "" {
		c.Storage.Driver = strings.ToLower(v)
	}
	if v := os.Getenv("SENTINDEX_DSN"); v != "" {
		c.Storage.DSN = v
	}
	if v := os.Getenv("SENTINDEX_COMMIT"); v != "" {
		c.Storage.Commit = strings.ToLower(v)
	}
	if v := os.Getenv("SENTINDEX_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("SENTINDEX_READ_AHEAD"); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("SENTINDEX_READ_AHEAD must be an integer, got %q", v)
		}
		c.Ingest.ReadAhead = n
	}
	if v := os.Getenv("SENTINDEX_METRICS_TEXTFILE"); v != "" {
		c.Metrics.Textfile = v
	}
	return nil
}

var validDrivers = []string{"sqlite", "sqlite3", "postgres", "mysql"}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendSQL:
		if !slices.Contains(validDrivers, c.Storage.Driver) {
			return fmt.Errorf("storage.driver must be one of %s, got %q",
				strings.Join(validDrivers, ", "), c.Storage.Driver)
		}
		if (c.Storage.Driver == "postgres" || c.Storage.Driver == "mysql") && c.Storage.DSN == "" {
			return fmt.Errorf("storage.dsn is required for driver %s", c.Storage.Driver)
		}
	case BackendSnapshot:
		if c.Storage.SnapshotPath == "" {
			return fmt.Errorf("storage.snapshot_path must not be empty")
		}
	default:
		return fmt.Errorf("storage.backend must be 'sql' or 'snapshot', got %q", c.Storage.Backend)
	}

	if c.Storage.Commit != CommitBatch && c.Storage.Commit != CommitDocument {
		return fmt.Errorf("storage.commit must be 'batch' or 'document', got %q", c.Storage.Commit)
	}
	if c.Storage.BusyTimeoutMS < 0 {
		return fmt.Errorf("storage.busy_timeout_ms must be non-negative, got %d", c.Storage.BusyTimeoutMS)
	}

	if c.Segmenter.MinTokenLength < 1 {
		return fmt.Errorf("segmenter.min_token_length must be at least 1, got %d", c.Segmenter.MinTokenLength)
	}
	for _, ext := range c.Segmenter.MarkupExtensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("segmenter.markup_extensions entries must start with '.', got %q", ext)
		}
	}

	if c.Ingest.ReadAhead < 1 {
		return fmt.Errorf("ingest.read_ahead must be at least 1, got %d", c.Ingest.ReadAhead)
	}
	if c.Query.DocCacheSize < 1 {
		return fmt.Errorf("query.doc_cache_size must be at least 1, got %d", c.Query.DocCacheSize)
	}
	if c.Query.WrapWidth < 0 {
		return fmt.Errorf("query.wrap_width must be non-negative, got %d", c.Query.WrapWidth)
	}

	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("logging.level must be 'debug', 'info', 'warn', or 'error', got %s", c.Logging.Level)
	}
	if c.Logging.MaxSizeMB < 0 || c.Logging.MaxFiles < 0 {
		return fmt.Errorf("logging.max_size_mb and logging.max_files must be non-negative")
	}

	return nil
}

// StoragePath resolves the SQLite file or snapshot file for the configured
// backend under dataDir. Absolute paths are returned unchanged.
func (c *Config) StoragePath(dataDir string) string {
	p := c.Storage.Path
	if c.Storage.Backend == BackendSnapshot {
		p = c.Storage.SnapshotPath
	}
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dataDir, p)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
