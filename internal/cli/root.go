package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/skein/internal/infra/logger"
	"github.com/aalvaropc/skein/internal/ui/tui"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool
	var workspace string
	var project string

	cmd := &cobra.Command{
		Use:          "skein",
		Short:        "Skein: combined yardage for yarns held together",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			wd, err := os.Getwd()
			if err != nil {
				wd = "."
			}
			wd, _ = filepath.Abs(wd)

			// Outside a workspace only --debug creates a log directory.
			logRoot, ferr := locator.FindRoot(wd)
			if ferr != nil || logRoot == "" {
				if !debug {
					return nil
				}
				logRoot = wd
			}

			cleanup, _ := logger.Setup(logger.Config{
				Root:  logRoot,
				Debug: debug,
			})
			if cleanup != nil {
				cobra.OnFinalize(func() { _ = cleanup() })
			}
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				if workspace != "" {
					return err
				}
				logger.L().Info("workspace.detached", "reason", err.Error())
				ws = detachedWorkspace()
				ws.root = ""
			}

			deps := tui.Deps{
				WorkspaceRoot: ws.root,
				Config:        ws.cfg,
				Projects:      ws.projects,
				Store:         ws.store,
				Logger:        logger.L(),
				Debug:         debug,
			}

			if project != "" {
				if deps.ProjectPath, err = resolveProjectPath(ws, project); err != nil {
					return err
				}
			}

			return tui.Run(deps)
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable verbose logging to .skein/logs/skein.log")
	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	cmd.Flags().StringVarP(&project, "project", "p", "", "Project to open in the form (name or path)")

	cmd.AddCommand(calcCmd())
	cmd.AddCommand(validateCmd())
	cmd.AddCommand(projectsCmd())
	cmd.AddCommand(initCmd())
	cmd.AddCommand(versionCmd())
	return cmd
}
