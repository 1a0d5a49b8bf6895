package blog_test

import (
	"errors"
	"testing"
	"time"

	blog "github.com/goliatone/go-blog"
)

func TestDefaultConfigValues(t *testing.T) {
	cfg := blog.DefaultConfig()

	if cfg.Posts.Dir != "posts" || cfg.Posts.Pattern != "*.md" {
		t.Fatalf("unexpected posts defaults: %+v", cfg.Posts)
	}
	if !cfg.History.Enabled || cfg.History.Timeout != 5*time.Second || cfg.History.Retries != 2 {
		t.Fatalf("unexpected history defaults: %+v", cfg.History)
	}
	if cfg.Site.PostsPath != "/posts" || !cfg.Site.TrailingSlash {
		t.Fatalf("unexpected site defaults: %+v", cfg.Site)
	}
}

func TestConfigValidateReexportsSentinels(t *testing.T) {
	cfg := blog.DefaultConfig()
	cfg.Posts.Pattern = "*.txt"
	if err := cfg.Validate(); !errors.Is(err, blog.ErrPostsPatternInvalid) {
		t.Fatalf("expected ErrPostsPatternInvalid, got %v", err)
	}

	cfg = blog.DefaultConfig()
	cfg.Logging.Provider = "syslog"
	if err := cfg.Validate(); !errors.Is(err, blog.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := blog.DefaultConfig()
	cfg.Build.Workers = -1

	if _, err := blog.New(cfg); !errors.Is(err, blog.ErrBuildWorkersInvalid) {
		t.Fatalf("expected ErrBuildWorkersInvalid, got %v", err)
	}
}
