package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/institutions-in-your-pocket/overview/internal/logging"
	"github.com/institutions-in-your-pocket/overview/internal/model"
	"github.com/institutions-in-your-pocket/overview/internal/render"
	"github.com/institutions-in-your-pocket/overview/internal/ui"
	"github.com/institutions-in-your-pocket/overview/internal/usecase"
)

func (a *app) newUseCasesCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "usecases [query...]",
		Aliases: []string{"uc"},
		Short:   "Print the use cases matching a query",
		Long: `Print the use cases whose title, subtitle, tags or points contain the query.

Matching is a case-insensitive substring test. Query words are joined with
single spaces, so "legal aid" and legal aid match the same records. An empty
query prints every use case.`,
		Example: `  overview usecases land
  overview uc legal aid -o table
  overview usecases -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			matches := usecase.Filter(query, a.site.UseCases)
			logging.FromContext(cmd.Context()).Debug("use cases filtered", "query", usecase.Normalize(query), "matches", len(matches), "total", len(a.site.UseCases))
			return a.writeUseCases(cmd.OutOrStdout(), matches)
		},
	}
}

func (a *app) writeUseCases(w io.Writer, cases []model.UseCase) error {
	switch a.cfg.Output {
	case "table":
		return render.UseCaseTable(w, cases)
	case "markdown":
		render.UseCasesMarkdown(w, cases)
		return nil
	case "json":
		if cases == nil {
			cases = []model.UseCase{}
		}
		return render.JSON(w, cases)
	}
	_, err := fmt.Fprintln(w, render.UseCaseCards(cases, a.width()))
	return err
}

func (a *app) newSectionCmd() *cobra.Command {
	valid := append(render.Sections(), render.SectionAll)
	return &cobra.Command{
		Use:       "section <name>",
		Short:     "Print one section of the page",
		Long:      "Print one section as themed cards. Names: " + strings.Join(valid, ", ") + ".",
		Example:   "  overview section faq\n  overview section all --theme mono",
		ValidArgs: valid,
		Args:      withUsage(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.ToLower(strings.TrimSpace(args[0]))
			if name != render.SectionAll {
				i := render.SectionIndex(name)
				if i < 0 {
					return usagef("unknown section %q (want one of %s)", args[0], strings.Join(valid, ", "))
				}
				name = model.Nav()[i].Anchor
			}
			if a.cfg.Output == "json" {
				return render.JSON(cmd.OutOrStdout(), sectionValue(a.site, name))
			}
			return render.Text(cmd.OutOrStdout(), a.site, name, a.width())
		},
	}
}

// sectionValue is the content behind one anchor, for -o json.
func sectionValue(site *model.Site, anchor string) any {
	switch anchor {
	case model.AnchorOverview:
		return struct {
			Project  model.Project  `json:"project"`
			Sections model.Sections `json:"sections"`
		}{site.Project, site.Sections}
	case model.AnchorUseCases:
		return site.UseCases
	case model.AnchorCollaboration:
		return struct {
			Opportunities []model.Opportunity `json:"opportunities"`
			Process       model.Process       `json:"process"`
			Requirements  []model.Checklist   `json:"requirements"`
		}{site.Opportunities, site.Process, site.Requirements}
	case model.AnchorFAQ:
		return site.FAQ
	case model.AnchorContact:
		return site.Contact
	}
	return site
}

func (a *app) newPageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "page",
		Short: "Render the whole page as styled Markdown",
		Args:  withUsage(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := render.Terminal(a.site, a.width(), a.color())
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
}

var exportFormats = []string{"html", "markdown"}

func (a *app) newExportCmd() *cobra.Command {
	var (
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the page as a static HTML or Markdown document",
		Example: `  overview export --out public/index.html
  overview export --format markdown > OVERVIEW.md`,
		Args: withUsage(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			format = strings.ToLower(strings.TrimSpace(format))
			if format == "md" {
				format = "markdown"
			}
			if !slices.Contains(exportFormats, format) {
				return usagef("invalid format %q (want one of %s)", format, strings.Join(exportFormats, ", "))
			}
			write := render.HTML
			if format == "markdown" {
				write = render.Markdown
			}

			if out == "" || out == "-" {
				return write(cmd.OutOrStdout(), a.site)
			}
			if err := writeFile(out, func(w io.Writer) error { return write(w, a.site) }); err != nil {
				return err
			}
			logging.FromContext(cmd.Context()).Info("page exported", "format", format, "path", out)
			ui.OK("wrote " + out)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "html", "html or markdown")
	cmd.Flags().StringVar(&out, "out", "", "output path (default: stdout)")
	return cmd
}

func writeFile(path string, fn func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := fn(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
