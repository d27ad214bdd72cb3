package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/aalvaropc/skein/internal/domain"
	"github.com/aalvaropc/skein/internal/infra/logger"
	"github.com/aalvaropc/skein/internal/usecase"
	"github.com/aalvaropc/skein/internal/usecase/query"
)

func calcCmd() *cobra.Command {
	var workspace string
	var project string
	var yarns []string
	var noSave bool
	var format string
	var queries []string
	var precision int

	c := &cobra.Command{
		Use:   "calc",
		Short: "Compute the combined yardage of a project or of yarns given as flags",
		Example: `  skein calc -p mohair-silk
  skein calc --yarn 100:700:2 --yarn 25:120:1
  skein calc -p mohair-silk --query '$.result.combined'`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if project != "" && len(yarns) > 0 {
				return invalidInput("calc.flags", errors.New("use either --project or --yarn, not both"))
			}
			if project == "" && len(yarns) == 0 {
				return invalidInput("calc.flags", errors.New("nothing to compute: pass --project or at least one --yarn"))
			}
			if format != "pretty" && format != "json" {
				return invalidInput("calc.flags", fmt.Errorf("unsupported format %q (expected pretty|json)", format))
			}

			ws, err := workspaceForProject(workspace, project)
			if err != nil {
				return err
			}

			store := ws.store
			if noSave {
				store = nil
			}
			uc := usecase.NewCalculateProject(ws.projects, store)

			var (
				report domain.Report
				id     string
			)
			if project != "" {
				path, err := resolveProjectPath(ws, project)
				if err != nil {
					return err
				}
				report, id, err = uc.Execute(cmd.Context(), path)
				if err != nil {
					// A load failure leaves no rows; a save failure still has a report to show.
					if report.Entries == nil {
						return err
					}
					logger.L().Warn("report.save_failed", "project", report.ProjectName, "err", err.Error())
				}
			} else {
				entries, err := parseYarnFlags(yarns)
				if err != nil {
					return err
				}
				report, id, err = uc.ExecuteProject(cmd.Context(), domain.Project{Name: "inline", Entries: entries})
				if err != nil {
					logger.L().Warn("report.save_failed", "project", report.ProjectName, "err", err.Error())
				}
			}

			if precision < 0 {
				precision = ws.cfg.Display.Precision
			}

			out := cmd.OutOrStdout()
			if len(queries) > 0 {
				results := query.Apply(report, queries)
				printQueryResults(out, cmd.ErrOrStderr(), results)
				if n := query.Failed(results); n > 0 {
					return fmt.Errorf("%d query(ies) failed", n)
				}
			} else if err := printReport(out, report, id, format, precision); err != nil {
				return err
			}

			if !report.Valid() {
				return fmt.Errorf("%d invalid yarn(s): %w", len(report.Errors), domain.ErrInvalidForm)
			}
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVarP(&project, "project", "p", "", "Project name or path")
	c.Flags().StringArrayVar(&yarns, "yarn", nil, "Yarn as mass:length[:strands] (repeatable)")
	c.Flags().BoolVar(&noSave, "no-save", false, "Do not save a report under reports/")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	c.Flags().StringArrayVarP(&queries, "query", "q", nil, "JSONPath to print instead of the report (repeatable)")
	c.Flags().IntVar(&precision, "precision", -1, "Decimal places for pretty output (default from skein.yaml)")

	return c
}

// parseYarnFlags turns "mass:length[:strands]" flags into rows. The parts
// stay raw text; only the shape of the flag is checked here.
func parseYarnFlags(in []string) ([]domain.YarnEntry, error) {
	out := make([]domain.YarnEntry, 0, len(in))
	for i, raw := range in {
		parts := strings.Split(raw, ":")
		if len(parts) < 2 || len(parts) > 3 {
			return nil, invalidInput("calc.parse_yarn",
				fmt.Errorf("--yarn %q: expected mass:length[:strands]", raw))
		}

		e := domain.YarnEntry{ID: i + 1, Mass: parts[0], Length: parts[1], Strands: "1"}
		if len(parts) == 3 {
			e.Strands = parts[2]
		}
		out = append(out, e)
	}
	return out, nil
}

func invalidInput(op string, err error) error {
	return &domain.OpError{
		Op:   op,
		Kind: domain.KindInvalidInput,
		Err:  fmt.Errorf("%w: %w", domain.ErrInvalidInput, err),
	}
}

func printReport(w io.Writer, report domain.Report, id string, format string, precision int) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		payload := map[string]any{
			"saved_as": id,
			"report":   report,
		}
		return enc.Encode(payload)
	case "pretty", "":
		printPrettyReport(w, report, id, precision)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

var (
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	resultStyle = lipgloss.NewStyle().Bold(true)
	noteStyle   = lipgloss.NewStyle().Italic(true)
)

func printPrettyReport(w io.Writer, report domain.Report, id string, precision int) {
	if report.ProjectName != "" {
		fmt.Fprintf(w, "Project:  %s\n", report.ProjectName)
	}
	if id != "" {
		fmt.Fprintf(w, "Saved as: %s\n", id)
	}
	fmt.Fprintln(w)

	for i, e := range report.Entries {
		fmt.Fprintf(w, "- Yarn %d: mass=%s g, length=%s m, strands=%s\n",
			i+1, orDash(e.Mass), orDash(e.Length), orDash(e.Strands))

		if errs, bad := report.Errors[e.ID]; bad {
			for _, f := range domain.Fields {
				if msg, ok := errs[f]; ok {
					fmt.Fprintln(w, errorStyle.Render(fmt.Sprintf("    ✗ %s: %s", f, msg)))
				}
			}
			continue
		}
		if m, ok := e.MeteragePer100g(); ok {
			fmt.Fprintf(w, "    %s m/100g per strand\n", formatFloat(m, precision))
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Total strands: %d\n", domain.TotalStrandCount(report.Entries))
	if report.Result == nil {
		fmt.Fprintln(w, "Combined:      (no result, fix the errors above)")
		return
	}
	fmt.Fprintln(w, "Combined:      "+resultStyle.Render(formatFloat(report.Result.Combined, precision)+" m/100g"))
	if report.Result.ZeroLength {
		fmt.Fprintln(w, "Note:          "+noteStyle.Render("a strand has zero length, so the bundle yields no yardage"))
	}
}

func printQueryResults(w, errw io.Writer, results []query.Result) {
	for _, r := range results {
		if r.OK {
			fmt.Fprintln(w, r.Value)
			continue
		}
		fmt.Fprintln(errw, r.Message)
	}
}

func formatFloat(v float64, precision int) string {
	return strconv.FormatFloat(v, 'f', precision, 64)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "—"
	}
	return s
}
