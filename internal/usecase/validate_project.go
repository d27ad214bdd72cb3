package usecase

import (
	"context"
	"fmt"

	"github.com/aalvaropc/skein/internal/domain"
	"github.com/aalvaropc/skein/internal/ports"
)

type ValidateProject struct {
	projects ports.ProjectLoader
}

func NewValidateProject(pl ports.ProjectLoader) *ValidateProject {
	return &ValidateProject{projects: pl}
}

// Execute loads a project and checks every row without computing yardage.
// The returned error wraps domain.ErrInvalidForm when any field fails.
func (uc *ValidateProject) Execute(ctx context.Context, path string) (domain.ValidationErrors, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p, err := uc.projects.LoadProject(path)
	if err != nil {
		return nil, err
	}

	errs := domain.Validate(p.Entries)
	if len(errs) > 0 {
		return errs, fmt.Errorf("project %q: %d invalid yarn(s): %w", p.Name, len(errs), domain.ErrInvalidForm)
	}
	return errs, nil
}
