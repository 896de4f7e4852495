package cli

import (
	"github.com/spf13/cobra"

	"github.com/institutions-in-your-pocket/overview/internal/logging"
	"github.com/institutions-in-your-pocket/overview/internal/render"
	"github.com/institutions-in-your-pocket/overview/internal/tui"
)

type browseOptions struct {
	query   string
	section string
	inline  bool
}

func (o *browseOptions) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&o.query, "query", "", "pre-fill the use-case search")
	f.StringVar(&o.section, "section", "", "start section (overview|use-cases|collaboration|faq|contact)")
	f.BoolVar(&o.inline, "inline", false, "render in the normal screen instead of the alternate screen")
	_ = cmd.RegisterFlagCompletionFunc("section", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return render.Sections(), cobra.ShellCompDirectiveNoFileComp
	})
}

func (a *app) newBrowseCmd() *cobra.Command {
	var o browseOptions
	cmd := &cobra.Command{
		Use:     "browse",
		Aliases: []string{"ui"},
		Short:   "Browse the page interactively (default)",
		Example: `  overview browse --section use-cases --query "legal aid"
  overview ui --inline`,
		Args:        withUsage(cobra.NoArgs),
		Annotations: map[string]string{annTUI: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runBrowse(cmd, o)
		},
	}
	o.bind(cmd)
	return cmd
}

func (a *app) runBrowse(cmd *cobra.Command, o browseOptions) error {
	section := tui.SectionOverview
	if o.section != "" {
		section = render.SectionIndex(o.section)
		if section < 0 {
			return usagef("unknown section %q", o.section)
		}
	}
	if o.query != "" && o.section == "" {
		section = tui.SectionUseCases
	}

	lg := logging.FromContext(cmd.Context())
	lg.Info("browse started", "section", section, "query", o.query, "inline", o.inline)
	_, err := tui.Run(a.site, tui.Options{
		Query:   o.query,
		Section: section,
		Logger:  lg,
	}, tui.RunOptions{
		Inline: o.inline,
		Input:  cmd.InOrStdin(),
		Output: cmd.OutOrStdout(),
	})
	return err
}
