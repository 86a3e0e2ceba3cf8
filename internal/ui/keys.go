package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"simpletodo/internal/config"
)

type keyMap struct {
	Up             key.Binding
	Down           key.Binding
	Add            key.Binding
	Toggle         key.Binding
	Delete         key.Binding
	Edit           key.Binding
	Confirm        key.Binding
	Cancel         key.Binding
	CycleFilter    key.Binding
	FilterAll      key.Binding
	FilterActive   key.Binding
	FilterDone     key.Binding
	ClearCompleted key.Binding
	ToggleTheme    key.Binding
	Help           key.Binding
	Quit           key.Binding
}

func newKeyMap(k config.Keymap) keyMap {
	return keyMap{
		Up:             key.NewBinding(key.WithKeys(k.Up, "up"), key.WithHelp("↑/"+k.Up, "up")),
		Down:           key.NewBinding(key.WithKeys(k.Down, "down"), key.WithHelp("↓/"+k.Down, "down")),
		Add:            key.NewBinding(key.WithKeys(k.Add), key.WithHelp(k.Add, "add")),
		Toggle:         key.NewBinding(key.WithKeys(k.Toggle), key.WithHelp(label(k.Toggle), "toggle")),
		Delete:         key.NewBinding(key.WithKeys(k.Delete), key.WithHelp(k.Delete, "delete")),
		Edit:           key.NewBinding(key.WithKeys(k.Edit, k.Confirm), key.WithHelp(k.Edit+"/"+k.Confirm, "edit")),
		Confirm:        key.NewBinding(key.WithKeys(k.Confirm), key.WithHelp(k.Confirm, "save")),
		Cancel:         key.NewBinding(key.WithKeys(k.Cancel), key.WithHelp(k.Cancel, "cancel")),
		CycleFilter:    key.NewBinding(key.WithKeys(k.CycleFilter), key.WithHelp(k.CycleFilter, "filter")),
		FilterAll:      key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
		FilterActive:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "active")),
		FilterDone:     key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "completed")),
		ClearCompleted: key.NewBinding(key.WithKeys(k.ClearCompleted), key.WithHelp(k.ClearCompleted, "clear completed")),
		ToggleTheme:    key.NewBinding(key.WithKeys(k.ToggleTheme), key.WithHelp(k.ToggleTheme, "theme")),
		Help:           key.NewBinding(key.WithKeys(k.Help), key.WithHelp(k.Help, "more")),
		Quit:           key.NewBinding(key.WithKeys(k.Quit, "ctrl+c"), key.WithHelp(k.Quit, "quit")),
	}
}

// label names keys that render as whitespace.
func label(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Edit, k.Delete, k.CycleFilter, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Add, k.Toggle},
		{k.Edit, k.Delete, k.ClearCompleted},
		{k.CycleFilter, k.FilterAll, k.FilterActive, k.FilterDone},
		{k.ToggleTheme, k.Help, k.Quit},
	}
}

// inputKeys is the help shown while the text field has focus.
type inputKeys struct {
	Confirm key.Binding
	Cancel  key.Binding
}

func (k inputKeys) ShortHelp() []key.Binding  { return []key.Binding{k.Confirm, k.Cancel} }
func (k inputKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }
