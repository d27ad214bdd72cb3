package domain

import "time"

// Project is a named, saved set of yarn rows.
type Project struct {
	Name    string
	Path    string
	Entries []YarnEntry
}

// ProjectRef is a lightweight reference to a project file on disk.
type ProjectRef struct {
	Name string
	Path string
}

// Report is a persisted evaluation, kept for later comparison.
type Report struct {
	ID          string    `json:"id"`
	ProjectName string    `json:"project_name"`
	ProjectPath string    `json:"project_path,omitempty"`
	CreatedAt   time.Time `json:"created_at"`

	Evaluation
}

// WorkspaceSpec describes where to scaffold a new workspace.
type WorkspaceSpec struct {
	Root string
}
