package postscmd

import (
	"errors"

	"github.com/goliatone/go-blog/internal/commands"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// CommandRegistry is the registration contract of a command dispatcher.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the handlers built by RegisterPostCommands.
type HandlerSet struct {
	BuildIndex      *BuildIndexHandler
	GenerateSitemap *GenerateSitemapHandler
}

// RegisterPostCommands builds the post handlers and registers them with
// reg when it is not nil.
func RegisterPostCommands(reg CommandRegistry, service IndexService, sitemap SitemapWriter, provider interfaces.LoggerProvider) (*HandlerSet, error) {
	if service == nil {
		return nil, errors.New("posts command registration: service is nil")
	}
	if sitemap == nil {
		return nil, errors.New("posts command registration: sitemap writer is nil")
	}

	logger := commands.Logger(provider)
	set := &HandlerSet{
		BuildIndex:      NewBuildIndexHandler(service, logger),
		GenerateSitemap: NewGenerateSitemapHandler(sitemap, logger),
	}

	if reg != nil {
		if err := reg.RegisterCommand(set.BuildIndex); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(set.GenerateSitemap); err != nil {
			return nil, err
		}
	}
	return set, nil
}
