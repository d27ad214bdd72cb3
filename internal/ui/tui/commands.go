package tui

import (
	"errors"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aalvaropc/skein/internal/domain"
	"github.com/aalvaropc/skein/internal/ports"
)

func cmdLoadProject(loader ports.ProjectLoader, path string) tea.Cmd {
	return func() tea.Msg {
		if loader == nil {
			return projectLoadedMsg{err: errors.New("ProjectLoader is nil")}
		}
		p, err := loader.LoadProject(path)
		return projectLoadedMsg{project: p, err: err}
	}
}

// cmdSaveReport persists a snapshot taken on the update loop, so the
// session itself is never read from the command goroutine.
func cmdSaveReport(store ports.ReportStore, report domain.Report, log *slog.Logger) tea.Cmd {
	return func() tea.Msg {
		if store == nil {
			return reportSavedMsg{err: errors.New("reports are disabled for this workspace")}
		}

		start := time.Now()
		id, err := store.SaveReport(report)
		if err != nil {
			log.Error("report.save_failed", "project", report.ProjectName, "err", err)
			return reportSavedMsg{err: err}
		}

		log.Info("report.saved",
			"id", id,
			"project", report.ProjectName,
			"valid", report.Valid(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return reportSavedMsg{id: id}
	}
}
