// Package cli is the overview command line: the interactive browser plus
// print, export and content commands.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/institutions-in-your-pocket/overview/internal/config"
	"github.com/institutions-in-your-pocket/overview/internal/logging"
	"github.com/institutions-in-your-pocket/overview/internal/model"
	"github.com/institutions-in-your-pocket/overview/internal/store/sitestore"
	"github.com/institutions-in-your-pocket/overview/internal/ui"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

// Command annotations read by the pre-run hook.
const (
	annTUI       = "overview/tui"        // logs must not reach the terminal
	annNoContent = "overview/no-content" // skip loading site content
)

const defaultWidth = 80

// app is the state shared by one command execution.
type app struct {
	cfgFile string

	cfg    *config.Config
	site   *model.Site
	closer io.Closer
}

// newRoot builds the command tree. The returned app owns the log file
// opened by the pre-run hook.
func newRoot() (*cobra.Command, *app) {
	a := &app{}
	var browse browseOptions

	root := &cobra.Command{
		Use:   "overview",
		Short: "Collaborator overview for Institutions in Your Pocket",
		Long: `overview presents the research project's collaborator page in the terminal.

Run without a command to browse the page interactively: switch sections,
search the use cases and expand FAQ answers. The print commands render the
same content for pipes, and export writes a static HTML or Markdown page.`,
		Version:           Version,
		Args:              withUsage(cobra.NoArgs),
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runBrowse(cmd, browse)
		},
		Annotations:   map[string]string{annTUI: "true"},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate("{{.Name}} {{.Version}}\n")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usage(err)
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default: ./overview.yaml)")
	pf.String("content", "", "site content file, .yaml or .json (default: built-in)")
	pf.String("theme", config.DefaultTheme, "theme (classic|neon|mono)")
	pf.String("color", config.DefaultColor, "color output (auto|always|never)")
	pf.StringP("output", "o", config.DefaultOutput, "output format (text|table|markdown|json)")
	pf.String("log-level", config.DefaultLogLvl, "log level (debug|info|warn|error)")
	pf.String("log-file", "", "write logs to this file")
	pf.BoolP("verbose", "v", false, "debug logging")
	pf.Int("width", 0, "render width for print commands (default: terminal width)")

	complete := func(vals []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return vals, cobra.ShellCompDirectiveNoFileComp
		}
	}
	_ = root.RegisterFlagCompletionFunc("theme", complete(config.Themes))
	_ = root.RegisterFlagCompletionFunc("color", complete(config.Colors))
	_ = root.RegisterFlagCompletionFunc("output", complete(config.Outputs))

	browse.bind(root)

	root.AddCommand(
		a.newBrowseCmd(),
		a.newUseCasesCmd(),
		a.newSectionCmd(),
		a.newPageCmd(),
		a.newExportCmd(),
		a.newContentCmd(),
		newVersionCmd(),
	)
	return root, a
}

// setup loads config, applies the theme, builds the logger and reads the
// site content.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	switch cmd.Name() {
	case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return nil
	}

	cfg, err := config.Load(a.cfgFile, cmd.Root().PersistentFlags())
	if err != nil {
		return usage(err)
	}
	a.cfg = cfg

	ui.SetTheme(cfg.Theme)
	ui.SetColorMode(cfg.Color)

	lvl, err := cfg.Level()
	if err != nil {
		return usage(err)
	}
	var fallback io.Writer = cmd.ErrOrStderr()
	if cmd.Annotations[annTUI] != "" {
		fallback = nil
	}
	lg, closer, err := logging.New(lvl, cfg.LogFile, fallback)
	if err != nil {
		return err
	}
	a.closer = closer
	cmd.SetContext(logging.WithLogger(cmd.Context(), lg))

	if cfg.File != "" {
		lg.Debug("config loaded", "file", cfg.File)
	}
	if cmd.Annotations[annNoContent] != "" {
		return nil
	}

	site, err := sitestore.Load(cfg.Content)
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}
	a.site = site
	lg.Debug("content loaded", "source", contentSource(cfg.Content), "use_cases", len(site.UseCases))
	return nil
}

func (a *app) close() error {
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	return err
}

// width is the render width for print commands.
func (a *app) width() int {
	if a.cfg != nil && a.cfg.Width > 0 {
		return a.cfg.Width
	}
	return ui.Width(defaultWidth)
}

// color reports whether glamour should emit ANSI styles.
func (a *app) color() bool {
	switch a.cfg.Color {
	case "always":
		return true
	case "never":
		return false
	}
	return ui.IsTTY(os.Stdout)
}

func contentSource(path string) string {
	if path == "" {
		return "built-in"
	}
	return path
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Show version information",
		Args:        withUsage(cobra.NoArgs),
		Annotations: map[string]string{annNoContent: "true"},
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "overview v%s (%s)\n", Version, GitCommit)
		},
	}
}
