package tui

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aalvaropc/skein/internal/domain"
	"github.com/aalvaropc/skein/internal/usecase"
)

const (
	cellWidth     = 12
	untitledName  = "untitled"
	inputCharCap  = 16
	idColumnWidth = 4
)

type model struct {
	theme Theme
	deps  Deps
	keys  keyMap
	help  help.Model
	log   *slog.Logger

	session     *usecase.Session
	projectName string
	projectPath string

	// row indexes the current entry slice; col indexes domain.Fields.
	row   int
	col   int
	input textinput.Model

	saving   bool
	toast    string
	toastErr bool
}

func Run(deps Deps) error {
	m := newModel(deps)
	p := tea.NewProgram(wrapSafe(m, m.log), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(deps Deps) model {
	if deps.Config == (domain.Config{}) {
		deps.Config = domain.DefaultConfig()
	}
	log := deps.Logger
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	in := textinput.New()
	in.Prompt = ""
	in.CharLimit = inputCharCap
	in.Width = cellWidth - 2

	m := model{
		theme:       DefaultTheme(),
		deps:        deps,
		keys:        defaultKeyMap(),
		help:        help.New(),
		log:         log,
		projectName: untitledName,
		input:       in,
	}
	m.session = m.newSession(nil)
	m.focus(0, 0)
	return m
}

func (m model) newSession(rows []domain.YarnEntry) *usecase.Session {
	return usecase.NewSession(
		usecase.WithEntries(rows),
		usecase.WithDefaults(m.deps.Config.Defaults),
		usecase.WithLogger(m.log),
	)
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.deps.ProjectPath != "" {
		cmds = append(cmds, cmdLoadProject(m.deps.Projects, m.deps.ProjectPath))
	}
	return tea.Batch(cmds...)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case projectLoadedMsg:
		if msg.err != nil {
			m.log.Error("project.load_failed", "path", m.deps.ProjectPath, "err", msg.err)
			m.setToast(userMessage(msg.err), true)
			return m, nil
		}
		m.session = m.newSession(msg.project.Entries)
		m.projectName = msg.project.Name
		m.projectPath = msg.project.Path
		m.focus(0, 0)
		m.setToast("Loaded "+msg.project.Name, false)
		return m, nil

	case reportSavedMsg:
		m.saving = false
		if msg.err != nil {
			m.setToast(userMessage(msg.err), true)
			return m, nil
		}
		m.setToast("Saved report "+msg.id, false)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Next):
			m.moveField(1)
			return m, nil

		case key.Matches(msg, m.keys.Prev):
			m.moveField(-1)
			return m, nil

		case key.Matches(msg, m.keys.Up):
			m.focus(m.row-1, m.col)
			return m, nil

		case key.Matches(msg, m.keys.Down):
			m.focus(m.row+1, m.col)
			return m, nil

		case key.Matches(msg, m.keys.Add):
			id := m.session.Add()
			m.focus(m.session.Len()-1, 0)
			m.setToast(fmt.Sprintf("Added yarn %d", id), false)
			return m, nil

		case key.Matches(msg, m.keys.Remove):
			id := m.currentID()
			if !m.session.Remove(id) {
				m.setToast("At least one yarn is required", true)
				return m, nil
			}
			m.focus(m.row, m.col)
			m.setToast(fmt.Sprintf("Removed yarn %d", id), false)
			return m, nil

		case key.Matches(msg, m.keys.Recalc):
			m.session.Recalculate()
			m.setToast("Recalculated", false)
			return m, nil

		case key.Matches(msg, m.keys.Save):
			if m.saving {
				return m, nil
			}
			m.saving = true
			m.setToast("Saving report…", false)
			return m, cmdSaveReport(m.deps.Store, m.snapshot(), m.log)

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	return m.updateInput(msg)
}

// updateInput feeds msg to the focused field and writes any change back
// into the session.
func (m model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	before := m.input.Value()

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	if after := m.input.Value(); after != before {
		m.session.Update(m.currentID(), m.currentField(), after)
	}
	return m, cmd
}

func (m *model) focus(row, col int) {
	n := m.session.Len()
	switch {
	case row < 0:
		row = 0
	case row >= n:
		row = n - 1
	}
	m.row = row
	m.col = col

	e := m.session.Entries()[m.row]
	m.input.SetValue(e.Value(m.currentField()))
	m.input.CursorEnd()
	m.input.Focus()
}

// moveField walks fields left to right, wrapping across rows.
func (m *model) moveField(delta int) {
	nf := len(domain.Fields)
	row, col := m.row, m.col+delta

	if col >= nf {
		col = 0
		row++
		if row >= m.session.Len() {
			row = 0
		}
	}
	if col < 0 {
		col = nf - 1
		row--
		if row < 0 {
			row = m.session.Len() - 1
		}
	}
	m.focus(row, col)
}

func (m model) currentID() int {
	return m.session.Entries()[m.row].ID
}

func (m model) currentField() domain.Field {
	return domain.Fields[m.col]
}

func (m *model) setToast(s string, isErr bool) {
	m.toast = s
	m.toastErr = isErr
}

func (m model) snapshot() domain.Report {
	return domain.Report{
		ProjectName: m.projectName,
		ProjectPath: m.projectPath,
		CreatedAt:   time.Now(),
		Evaluation:  m.session.Evaluation(),
	}
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)

	var b strings.Builder
	b.WriteString(m.theme.Title.Render("Skein"))
	b.WriteString("\n")
	b.WriteString(m.theme.Subtitle.Render("Combined yardage of yarns held together"))
	b.WriteString("\n\n")
	b.WriteString(m.theme.Help.Render(m.banner()))
	b.WriteString("\n\n")

	b.WriteString(m.theme.Card.Render(m.renderTable()))
	b.WriteString("\n\n")
	b.WriteString(m.renderSummary())

	if m.toast != "" {
		b.WriteString("\n\n")
		if m.toastErr {
			b.WriteString(m.theme.Error.Render(m.toast))
		} else {
			b.WriteString(m.theme.Subtitle.Render(m.toast))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return wrap.Render(b.String())
}

func (m model) banner() string {
	parts := []string{"Project: " + m.projectName}
	if m.deps.WorkspaceRoot != "" {
		parts = append(parts, "Workspace: "+m.deps.WorkspaceRoot)
	}
	if m.deps.Store == nil {
		parts = append(parts, "reports off")
	}
	if m.deps.Debug {
		parts = append(parts, "debug")
	}
	return strings.Join(parts, " • ")
}

func (m model) renderTable() string {
	ev := m.session.Evaluation()
	precision := m.deps.Config.Display.Precision

	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(lipgloss.NewStyle().Bold(true).Width(idColumnWidth).Render("#"))
	for _, h := range []string{"Mass (g)", "Length (m)", "Strands", "m/100g"} {
		b.WriteString(m.theme.Header.Render(h))
	}
	b.WriteString("\n")

	for i, e := range ev.Entries {
		marker := "  "
		if i == m.row {
			marker = "> "
		}
		b.WriteString(marker)
		b.WriteString(lipgloss.NewStyle().Width(idColumnWidth).Render(fmt.Sprint(e.ID)))

		for j, f := range domain.Fields {
			switch {
			case i == m.row && j == m.col:
				b.WriteString(m.theme.Focused.Render(m.input.View()))
			case ev.Errors.Has(e.ID, f):
				b.WriteString(m.theme.Cell.Inherit(m.theme.Error).Render(cellText(e.Value(f))))
			default:
				b.WriteString(m.theme.Cell.Render(cellText(e.Value(f))))
			}
		}
		b.WriteString(m.theme.Cell.Render(rowMeterage(e, precision)))
		b.WriteString("\n")

		for _, f := range domain.Fields {
			if msg := ev.Errors.Message(e.ID, f); msg != "" {
				b.WriteString(m.theme.Error.Render(fmt.Sprintf("      ✗ %s: %s", f, msg)))
				b.WriteString("\n")
			}
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m model) renderSummary() string {
	ev := m.session.Evaluation()
	precision := m.deps.Config.Display.Precision

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Total strands: %d\n", m.session.TotalStrandCount()))

	if ev.Result == nil {
		b.WriteString("Combined:      ")
		b.WriteString(m.theme.Subtitle.Render("— fix the highlighted fields"))
		return b.String()
	}

	b.WriteString("Combined:      ")
	b.WriteString(m.theme.Result.Render(formatFigure(ev.Result.Combined, precision) + " m/100g"))
	if ev.Result.ZeroLength {
		b.WriteString("\n")
		b.WriteString(m.theme.Note.Render("A strand has zero length, so the bundle yields no yardage."))
	}
	return b.String()
}
