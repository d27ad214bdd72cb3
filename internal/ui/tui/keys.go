package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Up     key.Binding
	Down   key.Binding
	Add    key.Binding
	Remove key.Binding
	Recalc key.Binding
	Save   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:   key.NewBinding(key.WithKeys("tab", "enter"), key.WithHelp("tab", "next field")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		Up:     key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "row up")),
		Down:   key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "row down")),
		Add:    key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "add yarn")),
		Remove: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "remove yarn")),
		Recalc: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "recalculate")),
		Save:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save report")),
		Help:   key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "more keys")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Add, k.Remove, k.Save, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Up, k.Down},
		{k.Add, k.Remove, k.Recalc, k.Save},
		{k.Help, k.Quit},
	}
}
