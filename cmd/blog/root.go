package main

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	blog "github.com/goliatone/go-blog"
	"github.com/goliatone/go-blog/internal/di"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

var moduleBuilder = blog.New

type app struct {
	cfgFile string
	envFile string
	flags   *pflag.FlagSet

	stdout io.Writer
	logs   io.Writer

	cfg    blog.Config
	module *blog.Module
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, logs: stderr}

	root := &cobra.Command{
		Use:           "blog",
		Short:         "Inspect and export a directory of Markdown posts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is ./blog.yaml)")
	flags.StringVar(&a.envFile, "env-file", ".env", "dotenv file loaded before reading BLOG_* variables")
	flags.String("posts-dir", "", "directory holding the Markdown posts")
	flags.Bool("history", true, "resolve dates from version control history")
	flags.String("log-level", "", "log level (trace, debug, info, warn, error)")
	flags.String("log-provider", "", "log provider (console, gologger, zerolog)")
	a.flags = flags

	root.AddCommand(
		newBuildCommand(a),
		newListCommand(a),
		newSlugsCommand(a),
		newShowCommand(a),
		newSitemapCommand(a),
		newFeedCommand(a),
		newWatchCommand(a),
	)
	return root
}

func (a *app) init() error {
	cfg, err := loadConfig(a.cfgFile, a.envFile, a.flags)
	if err != nil {
		return err
	}
	module, err := moduleBuilder(cfg, di.WithLogWriter(a.logs))
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.module = module
	return nil
}

func (a *app) logger() interfaces.Logger {
	return logging.ModuleLogger(a.module.Container().LoggerProvider(), "blog.cli")
}
