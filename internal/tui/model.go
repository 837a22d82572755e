// Package tui implements the full-screen ledger browser.
package tui

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/Veraticus/smart-finance/internal/cli"
	"github.com/Veraticus/smart-finance/internal/ledger"
	"github.com/Veraticus/smart-finance/internal/model"
	"github.com/Veraticus/smart-finance/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// State represents the current state of the TUI.
type State int

const (
	StateList State = iota
	StateAdding
	StateStats
)

type formField int

const (
	fieldCategory formField = iota
	fieldAmount
)

// chrome is the number of lines taken by everything except the table.
const chrome = 8

// Model holds the browser state. It edits the ledger it was given in place.
type Model struct {
	theme    themes.Theme
	ledger   *ledger.Ledger
	keymap   KeyMap
	help     help.Model
	table    table.Model
	category textinput.Model
	amount   textinput.Model
	status   string
	config   Config
	addKind  model.Kind
	focus    formField
	state    State
	width    int
	height   int
	failed   bool
	dirty    bool
	quitting bool
}

// New creates a browser model over l.
func New(l *ledger.Ledger, opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return newModel(l, cfg)
}

func newModel(l *ledger.Ledger, cfg Config) Model {
	tbl := table.New(
		table.WithColumns([]table.Column{
			{Title: "Category", Width: 20},
			{Title: "Amount", Width: 12},
			{Title: "Type", Width: 8},
		}),
		table.WithFocused(true),
		table.WithHeight(max(cfg.Height-chrome, 3)),
	)
	tbl.SetStyles(cfg.Theme.TableStyles())

	category := textinput.New()
	category.Placeholder = "Category"
	category.CharLimit = 64
	category.Prompt = "Category: "

	amount := textinput.New()
	amount.Placeholder = "0.00"
	amount.CharLimit = 32
	amount.Prompt = "Amount:   "

	m := Model{
		theme:    cfg.Theme,
		ledger:   l,
		keymap:   DefaultKeyMap(),
		help:     help.New(),
		table:    tbl,
		category: category,
		amount:   amount,
		config:   cfg,
		state:    StateList,
		width:    cfg.Width,
		height:   cfg.Height,
	}
	m.refreshRows()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Changed reports whether the ledger was modified during the session.
func (m Model) Changed() bool {
	return m.dirty
}

// State returns the active screen.
func (m Model) State() State {
	return m.state
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(m.height-chrome, 3))
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}
		if m.state == StateAdding {
			return m.updateForm(msg)
		}
		return m.updateBrowse(msg)
	}

	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.AddIncome):
		return m.openForm(model.KindIncome)

	case key.Matches(msg, m.keymap.AddExpense):
		return m.openForm(model.KindExpense)

	case key.Matches(msg, m.keymap.Sort):
		before := m.ledger.Snapshot()
		m.ledger.SortByAmount()
		if !slices.Equal(before, m.ledger.Snapshot()) {
			m.dirty = true
		}
		m.refreshRows()
		m.setStatus("Sorted by amount.", false)
		return m, nil

	case key.Matches(msg, m.keymap.ToggleStats):
		if m.state == StateStats {
			m.state = StateList
			m.table.Focus()
		} else {
			m.state = StateStats
			m.table.Blur()
		}
		return m, nil

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.state != StateList {
		return m, nil
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) openForm(kind model.Kind) (tea.Model, tea.Cmd) {
	m.state = StateAdding
	m.addKind = kind
	m.focus = fieldCategory
	m.status = ""
	m.category.Reset()
	m.amount.Reset()
	m.amount.Blur()
	m.table.Blur()
	return m, m.category.Focus()
}

func (m *Model) closeForm() {
	m.state = StateList
	m.category.Blur()
	m.amount.Blur()
	m.table.Focus()
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Cancel):
		m.closeForm()
		m.setStatus("Canceled.", false)
		return m, nil

	case key.Matches(msg, m.keymap.NextField):
		return m, m.switchField()

	case key.Matches(msg, m.keymap.Submit):
		if m.focus == fieldCategory {
			return m, m.switchField()
		}
		return m.submit()
	}

	var cmd tea.Cmd
	if m.focus == fieldCategory {
		m.category, cmd = m.category.Update(msg)
	} else {
		m.amount, cmd = m.amount.Update(msg)
	}
	return m, cmd
}

func (m *Model) switchField() tea.Cmd {
	if m.focus == fieldCategory {
		m.focus = fieldAmount
		m.category.Blur()
		return m.amount.Focus()
	}
	m.focus = fieldCategory
	m.amount.Blur()
	return m.category.Focus()
}

// submit adds the form's transaction. Invalid input keeps the form open
// with the problem in the status line.
func (m Model) submit() (tea.Model, tea.Cmd) {
	category := strings.TrimSpace(m.category.Value())
	if err := cli.ValidateCategory(category); err != nil {
		m.setStatus(err.Error(), true)
		return m, nil
	}

	raw := strings.TrimSpace(m.amount.Value())
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		m.setStatus(fmt.Sprintf("%q is not a number", raw), true)
		return m, nil
	}

	if err := m.ledger.Add(category, amount, m.addKind); err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			m.setStatus(verr.Err.Error(), true)
			return m, nil
		}
		m.setStatus(err.Error(), true)
		return m, nil
	}

	m.dirty = true
	m.refreshRows()
	m.closeForm()
	m.setStatus(fmt.Sprintf("Added %s %s: %s", strings.ToLower(m.addKind.String()), category, model.FormatAmount(amount)), false)
	return m, nil
}

func (m *Model) setStatus(status string, failed bool) {
	m.status = status
	m.failed = failed
}

func (m *Model) refreshRows() {
	rows := make([]table.Row, 0, m.ledger.Len())
	if seq, ok := m.ledger.List(); ok {
		for txn := range seq {
			rows = append(rows, table.Row{
				txn.Category(),
				model.FormatAmount(txn.Amount()),
				txn.Kind().String(),
			})
		}
	}
	m.table.SetRows(rows)
}
