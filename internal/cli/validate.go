package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/skein/internal/domain"
	"github.com/aalvaropc/skein/internal/usecase"
)

func validateCmd() *cobra.Command {
	var workspace string
	var project string

	c := &cobra.Command{
		Use:   "validate",
		Short: "Check every yarn of a project without computing yardage",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := workspaceForProject(workspace, project)
			if err != nil {
				return err
			}

			path, err := resolveProjectPath(ws, project)
			if err != nil {
				return err
			}

			uc := usecase.NewValidateProject(ws.projects)
			errs, err := uc.Execute(cmd.Context(), path)
			if err != nil && !errors.Is(err, domain.ErrInvalidForm) {
				return err
			}

			out := cmd.OutOrStdout()
			for _, fe := range errs.List() {
				fmt.Fprintf(out, "✗ %s\n", fe.Error())
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(out, "OK")
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVarP(&project, "project", "p", "", "Project name or path (required)")

	_ = c.MarkFlagRequired("project")
	return c
}
