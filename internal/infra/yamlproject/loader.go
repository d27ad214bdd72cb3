package yamlproject

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aalvaropc/skein/internal/domain"
	"github.com/aalvaropc/skein/internal/ports"
	"gopkg.in/yaml.v3"
)

type Loader struct {
	projectsDir string
}

func NewLoader(opts ...Option) *Loader {
	l := &Loader{projectsDir: "projects"}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

type Option func(*Loader)

func WithProjectsDir(dir string) Option {
	return func(l *Loader) { l.projectsDir = dir }
}

var _ ports.ProjectLoader = (*Loader)(nil)

func (l *Loader) LoadProject(path string) (domain.Project, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Project{}, &domain.OpError{
			Op:   "yamlproject.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var yp yamlProject
	if err := yaml.Unmarshal(b, &yp); err != nil {
		return domain.Project{}, &domain.OpError{
			Op:   "yamlproject.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	return mapProject(path, yp)
}

func (l *Loader) ListProjects(root string) ([]domain.ProjectRef, error) {
	dir := filepath.Join(root, l.projectsDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "yamlproject.list",
			Kind: domain.KindNotFound,
			Path: dir,
			Err:  err,
		}
	}

	var refs []domain.ProjectRef
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}

		p := filepath.Join(dir, name)
		n, _ := readProjectName(p)
		if strings.TrimSpace(n) == "" {
			n = strings.TrimSuffix(name, filepath.Ext(name))
		}

		refs = append(refs, domain.ProjectRef{Name: n, Path: p})
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

func readProjectName(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var v struct {
		Name string `yaml:"name"`
	}
	if err := yaml.Unmarshal(b, &v); err != nil {
		return "", err
	}
	return v.Name, nil
}

// Scalars are decoded as strings so "700", 700 and 700.0 all keep the
// text the user wrote; the domain parses them at evaluation time.
type yamlProject struct {
	Name  string     `yaml:"name"`
	Yarns []yamlYarn `yaml:"yarns"`
}

type yamlYarn struct {
	Mass    string `yaml:"mass"`
	Weight  string `yaml:"weight"`
	Length  string `yaml:"length"`
	Strands string `yaml:"strands"`
}

func mapProject(path string, yp yamlProject) (domain.Project, error) {
	name := strings.TrimSpace(yp.Name)
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if len(yp.Yarns) == 0 {
		return domain.Project{}, invalidField(path, "yarns", "at least one yarn is required")
	}

	p := domain.Project{
		Name:    name,
		Path:    path,
		Entries: make([]domain.YarnEntry, 0, len(yp.Yarns)),
	}

	for i, y := range yp.Yarns {
		mass := y.Mass
		if strings.TrimSpace(mass) == "" {
			mass = y.Weight
		} else if strings.TrimSpace(y.Weight) != "" {
			return domain.Project{}, invalidField(path, fmt.Sprintf("yarns[%d]", i), "use either mass or weight, not both")
		}

		p.Entries = append(p.Entries, domain.YarnEntry{
			ID:      i + 1,
			Mass:    mass,
			Length:  y.Length,
			Strands: y.Strands,
		})
	}

	return p, nil
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "yamlproject.validate",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}
