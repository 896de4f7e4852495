package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/institutions-in-your-pocket/overview/internal/logging"
	"github.com/institutions-in-your-pocket/overview/internal/store/sitestore"
	"github.com/institutions-in-your-pocket/overview/internal/ui"
)

func (a *app) newContentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Manage the site content file",
		Long: `The page content (project, use cases, collaboration, FAQ, contact) lives in a
YAML file. Without --content the built-in copy is used; "content init" writes
it out for editing.`,
		Annotations: map[string]string{annNoContent: "true"},
	}
	cmd.AddCommand(a.newContentInitCmd(), a.newContentCheckCmd())
	return cmd
}

func (a *app) newContentInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:         "init [path]",
		Short:       "Write the built-in content to an editable YAML file",
		Example:     "  overview content init\n  overview content init content/site.yaml --force",
		Args:        withUsage(cobra.MaximumNArgs(1)),
		Annotations: map[string]string{annNoContent: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := sitestore.DefaultFileName
			if len(args) == 1 {
				path = args[0]
			}
			site, err := sitestore.Default()
			if err != nil {
				return err
			}
			if err := sitestore.Save(path, site, force); err != nil {
				switch {
				case errors.Is(err, sitestore.ErrExists):
					return fmt.Errorf("%w (use --force to overwrite)", err)
				case errors.Is(err, sitestore.ErrUnsupportedFormat):
					return usage(err)
				}
				return err
			}
			logging.FromContext(cmd.Context()).Info("content written", "path", path, "force", force)
			ui.OK("wrote " + path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func (a *app) newContentCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "check [path]",
		Short:       "Load and validate a content file",
		Long:        "Load and validate a content file. Without a path, checks --content (or the built-in content).",
		Args:        withUsage(cobra.MaximumNArgs(1)),
		Annotations: map[string]string{annNoContent: "true"},
		RunE: func(_ *cobra.Command, args []string) error {
			path := a.cfg.Content
			if len(args) == 1 {
				path = args[0]
			}
			site, err := sitestore.Load(path)
			if err != nil {
				return err
			}
			ui.OK(fmt.Sprintf("%s: %d use cases, %d opportunities, %d FAQ entries",
				contentSource(path), len(site.UseCases), len(site.Opportunities), len(site.FAQ)))
			return nil
		},
	}
}
