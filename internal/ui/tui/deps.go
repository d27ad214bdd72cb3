package tui

import (
	"log/slog"

	"github.com/aalvaropc/skein/internal/domain"
	"github.com/aalvaropc/skein/internal/ports"
)

type Deps struct {
	WorkspaceRoot string
	Config        domain.Config

	// ProjectPath, when set, is loaded into the form on start.
	ProjectPath string
	Projects    ports.ProjectLoader
	// Store is nil when reports are disabled or no workspace was found.
	Store ports.ReportStore

	Logger *slog.Logger
	Debug  bool
}
