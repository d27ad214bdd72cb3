package ports

import "github.com/aalvaropc/skein/internal/domain"

// ProjectLoader loads yarn projects from a source (e.g., filesystem).
type ProjectLoader interface {
	LoadProject(path string) (domain.Project, error)
	ListProjects(root string) ([]domain.ProjectRef, error)
}
