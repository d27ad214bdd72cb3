package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/aalvaropc/skein/internal/domain"
	"github.com/aalvaropc/skein/internal/ports"
)

type CalculateProject struct {
	projects ports.ProjectLoader
	store    ports.ReportStore
	now      func() time.Time
}

type CalculateOption func(*CalculateProject)

// WithClock overrides the report timestamp source (useful for tests).
func WithClock(now func() time.Time) CalculateOption {
	return func(uc *CalculateProject) {
		if now != nil {
			uc.now = now
		}
	}
}

// NewCalculateProject wires the use case; a nil store skips saving.
func NewCalculateProject(pl ports.ProjectLoader, store ports.ReportStore, opts ...CalculateOption) *CalculateProject {
	uc := &CalculateProject{projects: pl, store: store, now: time.Now}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute loads the project at path and evaluates it. The report is returned
// even when saving fails.
func (uc *CalculateProject) Execute(ctx context.Context, path string) (domain.Report, string, error) {
	if err := ctx.Err(); err != nil {
		return domain.Report{}, "", err
	}

	p, err := uc.projects.LoadProject(path)
	if err != nil {
		return domain.Report{}, "", err
	}
	return uc.ExecuteProject(ctx, p)
}

// ExecuteProject evaluates an in-memory project (e.g. rows given as flags).
func (uc *CalculateProject) ExecuteProject(ctx context.Context, p domain.Project) (domain.Report, string, error) {
	if err := ctx.Err(); err != nil {
		return domain.Report{}, "", err
	}

	list := domain.NewEntryList(p.Entries, domain.DefaultEntryDefaults())
	report := domain.Report{
		ProjectName: p.Name,
		ProjectPath: p.Path,
		CreatedAt:   uc.now(),
		Evaluation:  domain.Evaluate(list.Entries()),
	}

	if uc.store == nil {
		return report, "", nil
	}

	id, err := uc.store.SaveReport(report)
	if err != nil {
		return report, "", fmt.Errorf("save report: %w", err)
	}
	return report, id, nil
}
