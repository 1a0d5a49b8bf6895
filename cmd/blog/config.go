package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	blog "github.com/goliatone/go-blog"
)

const envPrefix = "BLOG"

// flagBindings maps configuration keys onto persistent flags.
var flagBindings = map[string]string{
	"posts.dir":        "posts-dir",
	"history.enabled":  "history",
	"logging.level":    "log-level",
	"logging.provider": "log-provider",
}

// loadConfig layers defaults, the YAML file, BLOG_* variables and flags,
// in increasing priority. A missing default file is not an error; a
// missing explicit --config is.
func loadConfig(cfgFile, envFile string, flags *pflag.FlagSet) (blog.Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return blog.Config{}, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}

	v := viper.New()
	setDefaults(v, blog.DefaultConfig())

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("blog")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return blog.Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		for key, name := range flagBindings {
			if flag := flags.Lookup(name); flag != nil && flag.Changed {
				if err := v.BindPFlag(key, flag); err != nil {
					return blog.Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg blog.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return blog.Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can see it.
func setDefaults(v *viper.Viper, cfg blog.Config) {
	v.SetDefault("posts.dir", cfg.Posts.Dir)
	v.SetDefault("posts.pattern", cfg.Posts.Pattern)

	v.SetDefault("history.enabled", cfg.History.Enabled)
	v.SetDefault("history.binary", cfg.History.Binary)
	v.SetDefault("history.timeout", cfg.History.Timeout)
	v.SetDefault("history.retries", cfg.History.Retries)

	v.SetDefault("build.workers", cfg.Build.Workers)

	v.SetDefault("site.title", cfg.Site.Title)
	v.SetDefault("site.description", cfg.Site.Description)
	v.SetDefault("site.base_url", cfg.Site.BaseURL)
	v.SetDefault("site.posts_path", cfg.Site.PostsPath)
	v.SetDefault("site.trailing_slash", cfg.Site.TrailingSlash)
	v.SetDefault("site.sitemap_path", cfg.Site.SitemapPath)

	v.SetDefault("render.extensions", cfg.Render.Extensions)
	v.SetDefault("render.hard_wraps", cfg.Render.HardWraps)
	v.SetDefault("render.safe_mode", cfg.Render.SafeMode)

	v.SetDefault("logging.provider", cfg.Logging.Provider)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("logging.add_source", cfg.Logging.AddSource)
	v.SetDefault("logging.focus", cfg.Logging.Focus)
}
