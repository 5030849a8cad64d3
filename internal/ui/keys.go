package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"countdown/internal/config"
)

type KeyMap struct {
	Quit           key.Binding
	SwitchTab      key.Binding
	Refresh        key.Binding
	Up             key.Binding
	Down           key.Binding
	Add            key.Binding
	Delete         key.Binding
	Grab           key.Binding
	DeleteCategory key.Binding
	Confirm        key.Binding
	Cancel         key.Binding
}

func newKeyMap(k config.Keymap) KeyMap {
	return KeyMap{
		Quit:           key.NewBinding(key.WithKeys(k.Quit, "ctrl+c"), key.WithHelp(k.Quit, "quit")),
		SwitchTab:      key.NewBinding(key.WithKeys(k.SwitchTab), key.WithHelp(k.SwitchTab, "switch panel")),
		Refresh:        key.NewBinding(key.WithKeys(k.Refresh), key.WithHelp(k.Refresh, "refresh")),
		Up:             key.NewBinding(key.WithKeys(k.Up, "up"), key.WithHelp("↑/"+k.Up, "up")),
		Down:           key.NewBinding(key.WithKeys(k.Down, "down"), key.WithHelp("↓/"+k.Down, "down")),
		Add:            key.NewBinding(key.WithKeys(k.Add), key.WithHelp(k.Add, "new deadline")),
		Delete:         key.NewBinding(key.WithKeys(k.Delete), key.WithHelp(k.Delete, "delete deadline")),
		Grab:           key.NewBinding(key.WithKeys(k.Grab), key.WithHelp(k.Grab, "move")),
		DeleteCategory: key.NewBinding(key.WithKeys(k.DeleteCategory), key.WithHelp(k.DeleteCategory, "delete category")),
		Confirm:        key.NewBinding(key.WithKeys(k.Confirm), key.WithHelp(k.Confirm, "drop")),
		Cancel:         key.NewBinding(key.WithKeys(k.Cancel), key.WithHelp(k.Cancel, "cancel move")),
	}
}

// sidebarKeys and settingsKeys feed the help line for each tab.
type sidebarKeys KeyMap

func (k sidebarKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Refresh, k.SwitchTab, k.Quit}
}

func (k sidebarKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

type settingsKeys KeyMap

func (k settingsKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Add, k.Delete, k.Grab, k.DeleteCategory, k.SwitchTab, k.Quit}
}

func (k settingsKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Add, k.Delete},
		{k.Grab, k.Confirm, k.Cancel, k.DeleteCategory},
		{k.SwitchTab, k.Quit},
	}
}
