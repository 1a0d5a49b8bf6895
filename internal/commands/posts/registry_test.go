package postscmd_test

import (
	"errors"
	"testing"

	postscmd "github.com/goliatone/go-blog/internal/commands/posts"
	"github.com/goliatone/go-blog/internal/generator"
	"github.com/goliatone/go-blog/internal/runtimeconfig"
)

type recordingRegistry struct {
	handlers []any
	failOn   int
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	r.handlers = append(r.handlers, handler)
	if r.failOn > 0 && len(r.handlers) == r.failOn {
		return errors.New("registry full")
	}
	return nil
}

func TestRegisterPostCommands(t *testing.T) {
	svc := newService(t)
	writer := generator.NewSitemapGenerator(svc, runtimeconfig.SiteConfig{BaseURL: "https://blog.example.com"}, nil)
	reg := &recordingRegistry{}

	set, err := postscmd.RegisterPostCommands(reg, svc, writer, nil)
	if err != nil {
		t.Fatalf("RegisterPostCommands: %v", err)
	}
	if set.BuildIndex == nil || set.GenerateSitemap == nil {
		t.Fatalf("expected both handlers, got %+v", set)
	}
	if len(reg.handlers) != 2 {
		t.Fatalf("expected 2 registrations, got %d", len(reg.handlers))
	}
}

func TestRegisterPostCommands_Errors(t *testing.T) {
	svc := newService(t)
	writer := generator.NewSitemapGenerator(svc, runtimeconfig.SiteConfig{}, nil)

	if _, err := postscmd.RegisterPostCommands(nil, nil, writer, nil); err == nil {
		t.Fatal("expected error for nil service")
	}
	if _, err := postscmd.RegisterPostCommands(&recordingRegistry{failOn: 2}, svc, writer, nil); err == nil {
		t.Fatal("expected registry error to surface")
	}
}
