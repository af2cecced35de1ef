package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

// Environment overrides.
const (
	EnvGoogleAPIKey      = "GOOGLE_API_KEY"
	EnvGoogleEngineID    = "GOOGLE_SEARCH_ENGINE_ID"
	EnvUnsplashAccessKey = "UNSPLASH_ACCESS_KEY"
	EnvOpenAIAPIKey      = "OPENAI_API_KEY"
	EnvRSSFeeds          = "RSS_FEEDS"
	EnvArticlesPerFeed   = "ARTICLES_PER_FEED"
)

type ImagesConfig struct {
	MinWidth       int      `yaml:"min_width"`
	RejectStock    bool     `yaml:"reject_stock"`
	BlockedDomains []string `yaml:"blocked_domains"`
}

type GoogleConfig struct {
	APIKey   string `yaml:"api_key"`
	EngineID string `yaml:"engine_id"`
}

type UnsplashConfig struct {
	AccessKey string `yaml:"access_key"`
}

type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

type Config struct {
	Listen          string         `yaml:"listen"`
	Feeds           []string       `yaml:"feeds"`
	ArticlesPerFeed int            `yaml:"articles_per_feed"`
	Images          ImagesConfig   `yaml:"images"`
	Google          GoogleConfig   `yaml:"google"`
	Unsplash        UnsplashConfig `yaml:"unsplash"`
	OpenAI          OpenAIConfig   `yaml:"openai"`
}

// KeywordsEnabled reports whether an OpenAI key is configured.
func (c *Config) KeywordsEnabled() bool {
	return c.OpenAI.APIKey != ""
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "thumbnail", "config.yaml")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Load reads the config file at path (DefaultConfigPath when empty) on top of
// the embedded defaults, then applies environment overrides. A missing file is
// seeded with the defaults.
func Load(path string) (*Config, error) {
	cfg, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Non-fatal: embedded defaults still apply.
		_ = writeDefaults(path)
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o600)
}

func applyEnv(cfg *Config) error {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&cfg.Google.APIKey, EnvGoogleAPIKey)
	set(&cfg.Google.EngineID, EnvGoogleEngineID)
	set(&cfg.Unsplash.AccessKey, EnvUnsplashAccessKey)
	set(&cfg.OpenAI.APIKey, EnvOpenAIAPIKey)

	if v := os.Getenv(EnvRSSFeeds); strings.TrimSpace(v) != "" {
		cfg.Feeds = splitList(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvArticlesPerFeed)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: invalid integer %q", EnvArticlesPerFeed, v)
		}
		cfg.ArticlesPerFeed = n
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func validate(cfg *Config) error {
	if cfg.Listen == "" {
		return fmt.Errorf("listen: address is required")
	}
	if cfg.ArticlesPerFeed < 1 {
		return fmt.Errorf("articles_per_feed: must be at least 1, got %d", cfg.ArticlesPerFeed)
	}
	if cfg.Images.MinWidth < 0 {
		return fmt.Errorf("images.min_width: must not be negative, got %d", cfg.Images.MinWidth)
	}
	for i, f := range cfg.Feeds {
		u, err := url.Parse(f)
		if err != nil {
			return fmt.Errorf("feeds[%d]: invalid url: %w", i, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("feeds[%d]: url scheme must be http or https, got %q", i, u.Scheme)
		}
	}
	if cfg.OpenAI.BaseURL != "" {
		if u, err := url.Parse(cfg.OpenAI.BaseURL); err != nil || u.Host == "" {
			return fmt.Errorf("openai.base_url: invalid url %q", cfg.OpenAI.BaseURL)
		}
	}
	return nil
}
