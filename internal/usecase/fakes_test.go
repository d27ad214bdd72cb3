package usecase

import (
	"errors"

	"github.com/aalvaropc/skein/internal/domain"
)

type fakeProjectLoader struct {
	project domain.Project
	err     error
	loaded  string
}

func (f *fakeProjectLoader) LoadProject(path string) (domain.Project, error) {
	f.loaded = path
	if f.err != nil {
		return domain.Project{}, f.err
	}
	return f.project, nil
}

func (f *fakeProjectLoader) ListProjects(_ string) ([]domain.ProjectRef, error) {
	return nil, nil
}

type fakeStore struct {
	saved bool
	last  domain.Report
	err   error
}

func (s *fakeStore) SaveReport(r domain.Report) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.saved = true
	s.last = r
	return "report-123", nil
}

var errDisk = errors.New("disk full")
