package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration with YAML unmarshaling from strings like "15s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

// Config is the top-level sayso configuration.
type Config struct {
	Catalog  CatalogConfig     `yaml:"catalog"`
	Resolver ResolverConfig    `yaml:"resolver"`
	Speech   SpeechConfig      `yaml:"speech"`
	Apps     map[string]string `yaml:"apps"`
	Browsers map[string]string `yaml:"browsers"`
	Websites map[string]string `yaml:"websites"`
	Danger   []string          `yaml:"danger"`
}

// CatalogConfig locates the command catalog file.
type CatalogConfig struct {
	Path  string `yaml:"path"`
	Watch bool   `yaml:"watch"`
}

// ResolverConfig tunes intent matching.
type ResolverConfig struct {
	Threshold float64 `yaml:"threshold"`
}

// SpeechConfig controls the optional whisper voice input.
type SpeechConfig struct {
	Enabled   bool     `yaml:"enabled"`
	ServerURL string   `yaml:"server_url"`
	RecordCmd string   `yaml:"record_cmd"`
	Timeout   Duration `yaml:"timeout"`
}

const (
	defaultCatalogPath   = "commands.yaml"
	defaultThreshold     = 0.75
	defaultSpeechURL     = "http://localhost:8000"
	defaultSpeechTimeout = 15 * time.Second
)

func defaultApps() map[string]string {
	return map[string]string{
		"chrome":  "google-chrome",
		"firefox": "firefox",
		"files":   "nautilus",
	}
}

func defaultBrowsers() map[string]string {
	return map[string]string{
		"chrome":  "google-chrome",
		"firefox": "firefox",
	}
}

func defaultWebsites() map[string]string {
	return map[string]string{
		"youtube": "https://www.youtube.com",
		"google":  "https://www.google.com",
		"github":  "https://github.com",
	}
}

// Load reads, expands env vars, parses, and validates a sayso config file.
// A relative catalog path is resolved against the config file's directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Catalog.Path == "" {
		cfg.Catalog.Path = defaultCatalogPath
	}
	if cfg.Resolver.Threshold == 0 {
		cfg.Resolver.Threshold = defaultThreshold
	}
	if cfg.Speech.ServerURL == "" {
		cfg.Speech.ServerURL = defaultSpeechURL
	}
	if cfg.Speech.Timeout.Duration == 0 {
		cfg.Speech.Timeout.Duration = defaultSpeechTimeout
	}
	if len(cfg.Apps) == 0 {
		cfg.Apps = defaultApps()
	}
	if len(cfg.Browsers) == 0 {
		cfg.Browsers = defaultBrowsers()
	}
	if len(cfg.Websites) == 0 {
		cfg.Websites = defaultWebsites()
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	if !filepath.IsAbs(cfg.Catalog.Path) {
		cfg.Catalog.Path = filepath.Join(filepath.Dir(path), cfg.Catalog.Path)
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Resolver.Threshold < 0 || cfg.Resolver.Threshold > 1 {
		errs = append(errs, fmt.Errorf("resolver.threshold must be in [0,1], got %v", cfg.Resolver.Threshold))
	}

	// Only validate speech fields when enabled.
	if cfg.Speech.Enabled && cfg.Speech.Timeout.Duration <= 0 {
		errs = append(errs, errors.New("speech.timeout must be positive"))
	}

	return errors.Join(errs...)
}
