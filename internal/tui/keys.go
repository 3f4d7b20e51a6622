package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Top     key.Binding
	Bottom  key.Binding
	Add     key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Monthly key.Binding
	Yearly  key.Binding
	Export  key.Binding
	Focus   key.Binding
	Show    key.Binding
	Back    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "previous expense")),
		Down:    key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "next expense")),
		Top:     key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "first expense")),
		Bottom:  key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "last expense")),
		Add:     key.NewBinding(key.WithKeys("a", "i"), key.WithHelp("a", "add expense")),
		Edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit selected")),
		Delete:  key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete selected")),
		Monthly: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "monthly total")),
		Yearly:  key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yearly total")),
		Export:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export")),
		Focus:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next pane")),
		Show:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "show total")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel edit / back")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Delete, k.Monthly, k.Yearly, k.Export, k.Help}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom, k.Focus},
		{k.Add, k.Edit, k.Delete, k.Back},
		{k.Monthly, k.Yearly, k.Show, k.Export, k.Help, k.Quit},
	}
}
