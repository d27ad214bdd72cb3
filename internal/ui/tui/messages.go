package tui

import "github.com/aalvaropc/skein/internal/domain"

type projectLoadedMsg struct {
	project domain.Project
	err     error
}

type reportSavedMsg struct {
	id  string
	err error
}
