package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Navigation
	Up   key.Binding
	Down key.Binding

	// Ledger actions
	AddIncome   key.Binding
	AddExpense  key.Binding
	Sort        key.Binding
	ToggleStats key.Binding

	// Add form
	NextField key.Binding
	Submit    key.Binding
	Cancel    key.Binding

	// Application
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),

		AddIncome: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "add income"),
		),
		AddExpense: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "add expense"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort by amount"),
		),
		ToggleStats: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "expense stats"),
		),

		NextField: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("Tab", "next field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "cancel"),
		),

		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "force quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.AddIncome, k.AddExpense, k.Sort, k.ToggleStats, k.Help, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.AddIncome, k.AddExpense, k.Sort, k.ToggleStats},
		{k.NextField, k.Submit, k.Cancel},
		{k.Help, k.Quit, k.ForceQuit},
	}
}
