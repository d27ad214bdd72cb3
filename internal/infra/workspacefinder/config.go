package workspacefinder

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aalvaropc/skein/internal/domain"
	"gopkg.in/yaml.v3"
)

// LoadConfig loads skein.yaml from the workspace root and applies defaults.
func LoadConfig(root string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	path := filepath.Join(root, ConfigFileName)
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	// Apply parsed values on top of defaults.
	d := y.Skein.Defaults
	if d.Mass != nil {
		cfg.Defaults.Mass = *d.Mass
	}
	if d.Length != nil {
		cfg.Defaults.Length = *d.Length
	}
	if d.Strands != nil {
		cfg.Defaults.Strands = *d.Strands
	}
	if p := y.Skein.Display.Precision; p != nil {
		if *p < 0 || *p > 6 {
			return cfg, &domain.OpError{
				Op:   "workspacefinder.loadconfig",
				Kind: domain.KindInvalidConfig,
				Path: path,
				Err:  fmt.Errorf("field display.precision: must be between 0 and 6, got %d: %w", *p, domain.ErrInvalidConfig),
			}
		}
		cfg.Display.Precision = *p
	}
	if y.Skein.Reports.Enabled != nil {
		cfg.Reports.Enabled = *y.Skein.Reports.Enabled
	}
	if y.Skein.Paths.ProjectsDir != "" {
		cfg.Paths.ProjectsDir = y.Skein.Paths.ProjectsDir
	}
	if y.Skein.Paths.ReportsDir != "" {
		cfg.Paths.ReportsDir = y.Skein.Paths.ReportsDir
	}

	return cfg, nil
}

type yamlConfig struct {
	Skein struct {
		Defaults struct {
			Mass    *string `yaml:"mass"`
			Length  *string `yaml:"length"`
			Strands *string `yaml:"strands"`
		} `yaml:"defaults"`

		Display struct {
			Precision *int `yaml:"precision"`
		} `yaml:"display"`

		Reports struct {
			Enabled *bool `yaml:"enabled"`
		} `yaml:"reports"`

		Paths struct {
			ProjectsDir string `yaml:"projects_dir"`
			ReportsDir  string `yaml:"reports_dir"`
		} `yaml:"paths"`
	} `yaml:"skein"`
}
