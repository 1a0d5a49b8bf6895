package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ErrPostsDirRequired indicates the posts source directory is missing.
var ErrPostsDirRequired = errors.New("blog config: posts directory is required")

// ErrPostsPatternInvalid ensures discovery only ever matches Markdown files.
var ErrPostsPatternInvalid = errors.New("blog config: posts pattern must match .md files")

// ErrHistoryTimeoutInvalid ensures the per-file history query stays bounded.
var ErrHistoryTimeoutInvalid = errors.New("blog config: history timeout must be positive when history is enabled")
var ErrHistoryRetriesInvalid = errors.New("blog config: history retries must be zero or positive")
var ErrBuildWorkersInvalid = errors.New("blog config: build workers must be zero or positive")
var ErrSiteBaseURLRequired = errors.New("blog config: site base URL is required to generate a sitemap")
var ErrLoggingProviderUnknown = errors.New("blog config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("blog config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("blog config: logging format is invalid")

// Config aggregates every setting the blog runtime reads. Fields carry
// mapstructure tags so the CLI can decode layered viper configuration.
type Config struct {
	Posts   PostsConfig   `mapstructure:"posts"`
	History HistoryConfig `mapstructure:"history"`
	Build   BuildConfig   `mapstructure:"build"`
	Site    SiteConfig    `mapstructure:"site"`
	Render  RenderConfig  `mapstructure:"render"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// PostsConfig selects the single directory posts are read from.
type PostsConfig struct {
	Dir     string `mapstructure:"dir"`
	Pattern string `mapstructure:"pattern"`
}

// HistoryConfig controls version-control date resolution.
type HistoryConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Binary  string        `mapstructure:"binary"`
	Timeout time.Duration `mapstructure:"timeout"`
	Retries int           `mapstructure:"retries"`
}

// BuildConfig tunes the index build.
type BuildConfig struct {
	// Workers bounds concurrent file loads. Zero selects runtime.NumCPU().
	Workers int `mapstructure:"workers"`
}

// SiteConfig captures the public site shape used by the sitemap and the
// feeds.
type SiteConfig struct {
	Title         string `mapstructure:"title"`
	Description   string `mapstructure:"description"`
	BaseURL       string `mapstructure:"base_url"`
	PostsPath     string `mapstructure:"posts_path"`
	TrailingSlash bool   `mapstructure:"trailing_slash"`
	SitemapPath   string `mapstructure:"sitemap_path"`
}

// RenderConfig mirrors markdown parse options.
type RenderConfig struct {
	Extensions []string `mapstructure:"extensions"`
	HardWraps  bool     `mapstructure:"hard_wraps"`
	SafeMode   bool     `mapstructure:"safe_mode"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `mapstructure:"provider"`
	Level     string   `mapstructure:"level"`
	Format    string   `mapstructure:"format"`
	AddSource bool     `mapstructure:"add_source"`
	Focus     []string `mapstructure:"focus"`
}

// DefaultConfig returns the settings used when nothing else is configured.
func DefaultConfig() Config {
	return Config{
		Posts: PostsConfig{
			Dir:     "posts",
			Pattern: "*.md",
		},
		History: HistoryConfig{
			Enabled: true,
			Binary:  "git",
			Timeout: 5 * time.Second,
			Retries: 2,
		},
		Build: BuildConfig{
			Workers: 0,
		},
		Site: SiteConfig{
			PostsPath:     "/posts",
			TrailingSlash: true,
			SitemapPath:   "sitemap.xml",
		},
		Render: RenderConfig{},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs consistency checks. Sentinel errors are wrapped so
// callers can match them with errors.Is.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Posts.Dir) == "" {
		return ErrPostsDirRequired
	}
	if err := validation.Validate(cfg.Posts.Pattern, validation.By(markdownPattern)); err != nil {
		return fmt.Errorf("%w: %s", ErrPostsPatternInvalid, cfg.Posts.Pattern)
	}
	if cfg.History.Enabled && cfg.History.Timeout <= 0 {
		return ErrHistoryTimeoutInvalid
	}
	if err := validation.Validate(cfg.History.Retries, validation.Min(0)); err != nil {
		return fmt.Errorf("%w: %d", ErrHistoryRetriesInvalid, cfg.History.Retries)
	}
	if err := validation.Validate(cfg.Build.Workers, validation.Min(0)); err != nil {
		return fmt.Errorf("%w: %d", ErrBuildWorkersInvalid, cfg.Build.Workers)
	}

	provider := normalizeProvider(cfg.Logging.Provider)
	if provider != "" && !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

// ValidateSitemap checks the settings the sitemap and the feeds need.
func (cfg Config) ValidateSitemap() error {
	err := validation.ValidateStruct(&cfg.Site,
		validation.Field(&cfg.Site.BaseURL, validation.Required),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSiteBaseURLRequired, err)
	}
	return nil
}

func markdownPattern(value any) error {
	pattern, _ := value.(string)
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil
	}
	if !strings.HasSuffix(pattern, ".md") {
		return validation.NewError("blog.config.posts_pattern", "pattern must end in .md")
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger", "zerolog":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
