package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	postscmd "github.com/goliatone/go-blog/internal/commands/posts"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

const dateLayout = "2006-01-02"

func newBuildCommand(a *app) *cobra.Command {
	var metricsPath string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the post index and report per-file failures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var result postscmd.BuildIndexResult
			err := a.module.Commands().BuildIndex.Execute(cmd.Context(), postscmd.BuildIndexCommand{
				ResultCallback: func(r postscmd.BuildIndexResult) { result = r },
			})
			if err != nil {
				return err
			}

			report := result.Report
			if report == nil {
				return nil
			}
			fmt.Fprintf(a.stdout, "built %d posts from %d files in %s (build %s)\n",
				report.Posts, report.Files, report.Duration(), report.BuildID)
			for _, slug := range report.Untitled() {
				fmt.Fprintf(a.stdout, "untitled: %s\n", slug)
			}
			for _, slug := range report.InvalidSlugs() {
				fmt.Fprintf(a.stdout, "slug not URL safe: %s\n", slug)
			}
			for _, failure := range report.Failures() {
				fmt.Fprintf(a.stdout, "failed: %s\n", failure.Error())
			}

			if metricsPath != "" {
				if err := a.module.Metrics().WriteTextfile(metricsPath); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&metricsPath, "metrics", "", "write build metrics in textfile format to this path")
	return cmd
}

func newListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List posts newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			all, err := a.module.Posts().AllSorted(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DATE\tSLUG\tTITLE")
			for _, post := range all {
				fmt.Fprintf(w, "%s\t%s\t%s\n", formatDate(post), post.Slug, post.Title)
			}
			return w.Flush()
		},
	}
}

func newSlugsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "slugs",
		Short: "Print one slug per line, in listing order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			slugs, err := a.module.Posts().ListSlugs(cmd.Context())
			if err != nil {
				return err
			}
			for _, slug := range slugs {
				fmt.Fprintln(a.stdout, slug)
			}
			return nil
		},
	}
}

func newShowCommand(a *app) *cobra.Command {
	var (
		renderHTML bool
		showTOC    bool
	)

	cmd := &cobra.Command{
		Use:   "show <slug>",
		Short: "Print one post with its neighbours",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			service := a.module.Posts()

			post, err := service.GetBySlug(ctx, args[0])
			if err != nil {
				return err
			}
			adjacent, err := service.GetAdjacent(ctx, post.Slug)
			if err != nil {
				return err
			}

			fmt.Fprintf(a.stdout, "Title: %s\nSlug: %s\nUpdated: %s\n", post.Title, post.Slug, formatDate(post))
			fmt.Fprintf(a.stdout, "Previous: %s\nNext: %s\n\n", neighbour(adjacent.Previous), neighbour(adjacent.Next))

			if showTOC {
				headings, err := a.module.Headings(post.Content)
				if err != nil {
					return err
				}
				fmt.Fprintln(a.stdout, "Contents:")
				for _, heading := range headings {
					indent := strings.Repeat("  ", max(heading.Level-1, 0))
					fmt.Fprintf(a.stdout, "%s- %s (#%s)\n", indent, heading.Text, heading.ID)
				}
				fmt.Fprintln(a.stdout)
			}

			if !renderHTML {
				fmt.Fprintln(a.stdout, post.Content)
				return nil
			}
			html, err := a.module.Parser().Parse([]byte(post.Content))
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "%s", html)
			return nil
		},
	}
	cmd.Flags().BoolVar(&renderHTML, "html", false, "render the body to HTML")
	cmd.Flags().BoolVar(&showTOC, "toc", false, "print the heading list before the body")
	return cmd
}

func newSitemapCommand(a *app) *cobra.Command {
	var (
		output      string
		metricsPath string
	)

	cmd := &cobra.Command{
		Use:   "sitemap",
		Short: "Write sitemap XML for the home page, the listing and every post",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.cfg.ValidateSitemap(); err != nil {
				return err
			}
			if output == "" {
				output = a.cfg.Site.SitemapPath
			}

			err := a.module.Commands().GenerateSitemap.Execute(cmd.Context(), postscmd.GenerateSitemapCommand{
				OutputPath: output,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "sitemap written to %s\n", output)

			if metricsPath != "" {
				return a.module.Metrics().WriteTextfile(metricsPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (defaults to site.sitemap_path)")
	cmd.Flags().StringVar(&metricsPath, "metrics", "", "write build metrics in textfile format to this path")
	return cmd
}

func newFeedCommand(a *app) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Write RSS and Atom feeds of the newest posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.cfg.ValidateSitemap(); err != nil {
				return err
			}
			written, err := a.module.Feeds().WriteFiles(cmd.Context(), dir)
			if err != nil {
				return err
			}
			for _, path := range written {
				fmt.Fprintf(a.stdout, "feed written to %s\n", path)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "directory receiving feed.xml and feed.atom.xml")
	return cmd
}

func formatDate(post interfaces.Post) string {
	if post.UpdatedDate == nil {
		return "-"
	}
	return post.UpdatedDate.UTC().Format(dateLayout)
}

func neighbour(post *interfaces.Post) string {
	if post == nil {
		return "-"
	}
	return post.Slug
}
