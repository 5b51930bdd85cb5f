package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kamusis/smartfind/internal/glob"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	// MaxLimit is the hard cap on the number of results a search returns.
	MaxLimit = 20

	DefaultIndexTool = "mdfind"
	DefaultTimeout   = 15 * time.Second
)

// ErrConfigNotFound is returned when an explicitly requested config file does not exist.
var ErrConfigNotFound = errors.New("config file not found")

// Ranking holds the weights of the composite score.
type Ranking struct {
	RelevanceWeight   float64 `yaml:"relevance_weight"    toml:"relevance_weight"    json:"relevance_weight"`
	RecencyWeight     float64 `yaml:"recency_weight"      toml:"recency_weight"      json:"recency_weight"`
	NameMatchWeight   float64 `yaml:"name_match_weight"   toml:"name_match_weight"   json:"name_match_weight"`
	RecencyWindowDays float64 `yaml:"recency_window_days" toml:"recency_window_days" json:"recency_window_days"`
}

// RecencyWindow returns the window over which recency decays to zero.
func (r Ranking) RecencyWindow() time.Duration {
	return time.Duration(r.RecencyWindowDays * float64(24*time.Hour))
}

// Config is the in-memory representation of ~/.smartfind/config.yaml.
//
// It is loaded once per invocation and handed to the pipeline explicitly.
type Config struct {
	IncludeDirectories []string `yaml:"include_directories" toml:"include_directories" json:"include_directories"`
	ExcludePatterns    []string `yaml:"exclude_patterns"    toml:"exclude_patterns"    json:"exclude_patterns"`
	ExcludeFilenames   []string `yaml:"exclude_filenames"   toml:"exclude_filenames"   json:"exclude_filenames"`
	IndexTool          string   `yaml:"index_tool,omitempty" toml:"index_tool,omitempty" json:"index_tool,omitempty"`
	Timeout            string   `yaml:"timeout,omitempty"   toml:"timeout,omitempty"   json:"timeout,omitempty"`
	Limit              int      `yaml:"limit,omitempty"     toml:"limit,omitempty"     json:"limit,omitempty"`
	Ranking            Ranking  `yaml:"ranking"             toml:"ranking"             json:"ranking"`

	// Source is the file the config was read from; empty when defaults were used.
	Source string `yaml:"-" toml:"-" json:"-"`

	timeout time.Duration
}

// AppDir returns the absolute path to ~/.smartfind/.
func AppDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".smartfind"), nil
}

// ConfigPath returns the absolute path to ~/.smartfind/config.yaml.
func ConfigPath() (string, error) {
	dir, err := AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// candidatePaths lists the default config locations in lookup order.
func candidatePaths() ([]string, error) {
	dir, err := AppDir()
	if err != nil {
		return nil, err
	}
	names := []string{"config.yaml", "config.yml", "config.json", "config.toml"}
	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, filepath.Join(dir, n))
	}
	return out, nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand ~: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}

// DefaultConfig returns the built-in configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		IncludeDirectories: []string{"~/Documents", "~/Downloads"},
		ExcludePatterns:    []string{},
		ExcludeFilenames:   []string{},
		IndexTool:          DefaultIndexTool,
		Timeout:            DefaultTimeout.String(),
		Limit:              MaxLimit,
		Ranking: Ranking{
			RelevanceWeight:   0.6,
			RecencyWeight:     0.4,
			NameMatchWeight:   0,
			RecencyWindowDays: 30,
		},
	}
}

// StarterConfig returns the config written by `smartfind init`: the defaults
// plus exclusions for the usual build and dependency noise.
func StarterConfig() *Config {
	cfg := DefaultConfig()
	cfg.ExcludePatterns = []string{
		"*/node_modules/*",
		"*/site-packages/*",
		"*/.git/*",
		"*/__pycache__/*",
		"*.app/*",
		"*/Library/Caches/*",
	}
	cfg.ExcludeFilenames = []string{
		".DS_Store",
		"Thumbs.db",
		"*.pyc",
		"*.tmp",
		"*~",
	}
	return cfg
}

// Resolve picks the config file to read. An explicit path wins, then
// SMARTFIND_CONFIG, then the first default location that exists. The
// boolean reports whether the path was named by the user.
func Resolve(explicit string) (string, bool, error) {
	if explicit != "" {
		p, err := ExpandPath(explicit)
		return p, true, err
	}
	env, err := GetConfigValue("SMARTFIND_CONFIG")
	if err != nil {
		return "", false, err
	}
	if env != "" {
		p, err := ExpandPath(env)
		return p, true, err
	}
	paths, err := candidatePaths()
	if err != nil {
		return "", false, err
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p, false, nil
		}
	}
	return paths[0], false, nil
}

// Load reads the configuration. A missing default file yields DefaultConfig;
// a missing explicit file, unparseable document or invalid glob is an error.
func Load(explicit string) (*Config, error) {
	path, named, err := Resolve(explicit)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decode(path, data, cfg); err != nil {
			return nil, err
		}
		cfg.Source = path
	case errors.Is(err, os.ErrNotExist) && !named:
		// fall through with defaults
	case errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	default:
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	}

	if tool, err := GetConfigValue("SMARTFIND_INDEX_TOOL"); err == nil && tool != "" {
		cfg.IndexTool = tool
	}

	if err := cfg.finalize(); err != nil {
		if cfg.Source != "" {
			return nil, fmt.Errorf("invalid config %s: %w", cfg.Source, err)
		}
		return nil, err
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".json":
		err = json.Unmarshal(data, cfg)
	default:
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return fmt.Errorf("cannot parse config %s: %w", path, err)
	}
	return nil
}

// finalize expands ~, fills gaps left by the document and validates the result.
func (c *Config) finalize() error {
	dirs := make([]string, 0, len(c.IncludeDirectories))
	for _, d := range c.IncludeDirectories {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		p, err := ExpandPath(d)
		if err != nil {
			return err
		}
		dirs = append(dirs, filepath.Clean(p))
	}
	c.IncludeDirectories = dirs

	if c.ExcludePatterns == nil {
		c.ExcludePatterns = []string{}
	}
	if c.ExcludeFilenames == nil {
		c.ExcludeFilenames = []string{}
	}
	if c.IndexTool == "" {
		c.IndexTool = DefaultIndexTool
	}
	if c.Limit <= 0 || c.Limit > MaxLimit {
		c.Limit = MaxLimit
	}

	c.timeout = DefaultTimeout
	if c.Timeout != "" {
		d, err := time.ParseDuration(c.Timeout)
		if err != nil {
			return fmt.Errorf("timeout %q: %w", c.Timeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
		}
		c.timeout = d
	}
	return c.Validate()
}

// Validate checks globs and ranking weights.
func (c *Config) Validate() error {
	for _, p := range c.ExcludePatterns {
		if !glob.Valid(p) {
			return fmt.Errorf("exclude_patterns: invalid glob %q", p)
		}
	}
	for _, p := range c.ExcludeFilenames {
		if !glob.Valid(p) {
			return fmt.Errorf("exclude_filenames: invalid glob %q", p)
		}
	}
	r := c.Ranking
	if r.RelevanceWeight < 0 || r.RecencyWeight < 0 || r.NameMatchWeight < 0 {
		return fmt.Errorf("ranking weights must not be negative")
	}
	if r.RecencyWindowDays <= 0 {
		return fmt.Errorf("ranking.recency_window_days must be positive, got %v", r.RecencyWindowDays)
	}
	return nil
}

// TimeoutDuration returns the index tool timeout.
func (c *Config) TimeoutDuration() time.Duration {
	if c.timeout <= 0 {
		return DefaultTimeout
	}
	return c.timeout
}

// SetTimeout overrides the index tool timeout, e.g. from a command-line flag.
func (c *Config) SetTimeout(d time.Duration) {
	if d > 0 {
		c.timeout = d
		c.Timeout = d.String()
	}
}
