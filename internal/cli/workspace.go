package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/skein/internal/domain"
	"github.com/aalvaropc/skein/internal/infra/reportstore"
	"github.com/aalvaropc/skein/internal/infra/workspacefinder"
	"github.com/aalvaropc/skein/internal/infra/yamlproject"
	"github.com/aalvaropc/skein/internal/ports"
)

var locator ports.WorkspaceLocator = workspacefinder.NewFinder()

type workspaceCtx struct {
	root string
	cfg  domain.Config

	projects ports.ProjectLoader
	store    ports.ReportStore
}

func loadWorkspace(workspaceFlag string) (*workspaceCtx, error) {
	root, err := resolveWorkspaceRoot(workspaceFlag)
	if err != nil {
		return nil, err
	}

	cfg, err := workspacefinder.LoadConfig(root)
	if err != nil {
		return nil, err
	}

	return newWorkspaceCtx(root, cfg), nil
}

func newWorkspaceCtx(root string, cfg domain.Config) *workspaceCtx {
	ws := &workspaceCtx{
		root:     root,
		cfg:      cfg,
		projects: yamlproject.NewLoader(yamlproject.WithProjectsDir(cfg.Paths.ProjectsDir)),
	}
	if cfg.Reports.Enabled {
		ws.store = reportstore.NewJSONStore(root, cfg, reportstore.WithIndex(true))
	}
	return ws
}

// detachedWorkspace is used when no skein.yaml is around: default config,
// project paths taken as given, no report store.
func detachedWorkspace() *workspaceCtx {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	cfg := domain.DefaultConfig()
	return &workspaceCtx{
		root:     wd,
		cfg:      cfg,
		projects: yamlproject.NewLoader(yamlproject.WithProjectsDir(cfg.Paths.ProjectsDir)),
	}
}

// workspaceForProject loads the workspace, falling back to a detached one
// when none is found and the project is given as an existing file path.
func workspaceForProject(workspaceFlag, project string) (*workspaceCtx, error) {
	ws, err := loadWorkspace(workspaceFlag)
	if err == nil {
		return ws, nil
	}
	if workspaceFlag != "" || (project != "" && !looksLikePath(project) && !fileExists(project)) {
		return nil, err
	}
	return detachedWorkspace(), nil
}

func resolveWorkspaceRoot(workspaceFlag string) (string, error) {
	w := strings.TrimSpace(workspaceFlag)
	if w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	root, err := locator.FindRoot(wd)
	if err != nil {
		return "", fmt.Errorf("workspace not found from %q (tip: run `skein init`): %w", wd, err)
	}
	return root, nil
}

func resolveProjectPath(ws *workspaceCtx, arg string) (string, error) {
	in := strings.TrimSpace(arg)
	if in == "" {
		return "", fmt.Errorf("project is required (use --project or -p)")
	}

	// Path-like args resolve against the workspace root.
	if looksLikePath(in) {
		p := in
		if !filepath.IsAbs(p) {
			p = filepath.Join(ws.root, p)
		}
		return filepath.Clean(p), nil
	}

	projectsDir := filepath.Join(ws.root, ws.cfg.Paths.ProjectsDir)

	if hasYAMLExt(in) {
		p := filepath.Join(projectsDir, in)
		if fileExists(p) {
			return p, nil
		}
		if fileExists(in) {
			return filepath.Abs(in)
		}
	}

	for _, ext := range []string{".yaml", ".yml"} {
		p := filepath.Join(projectsDir, in+ext)
		if fileExists(p) {
			return p, nil
		}
	}

	// As a last resort: match by project "name" field.
	refs, err := ws.projects.ListProjects(ws.root)
	if err == nil {
		for _, r := range refs {
			if strings.EqualFold(r.Name, in) {
				return r.Path, nil
			}
		}
	}

	return "", &domain.OpError{
		Op:   "cli.resolve_project",
		Kind: domain.KindNotFound,
		Path: projectsDir,
		Err:  fmt.Errorf("project %q: %w", in, domain.ErrNotFound),
	}
}

func looksLikePath(s string) bool {
	return strings.Contains(s, "/") || strings.Contains(s, string(filepath.Separator))
}

func hasYAMLExt(s string) bool {
	ext := strings.ToLower(filepath.Ext(s))
	return ext == ".yaml" || ext == ".yml"
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
