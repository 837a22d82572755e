package tui

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/smart-finance/internal/ledger"
	"github.com/Veraticus/smart-finance/internal/model"
	"github.com/Veraticus/smart-finance/internal/tui/themes"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(s string) []tea.Msg {
	msgs := make([]tea.Msg, 0, len(s))
	for _, r := range s {
		msgs = append(msgs, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return msgs
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok, "Update must return a Model")
	}
	return m
}

func sequence(parts ...any) []tea.Msg {
	var msgs []tea.Msg
	for _, part := range parts {
		switch p := part.(type) {
		case string:
			msgs = append(msgs, typeText(p)...)
		case tea.Msg:
			msgs = append(msgs, p)
		}
	}
	return msgs
}

func newTestLedger(t *testing.T, txns ...model.Transaction) *ledger.Ledger {
	t.Helper()
	l := ledger.New()
	for _, txn := range txns {
		require.NoError(t, l.Add(txn.Category(), txn.Amount(), txn.Kind()))
	}
	return l
}

func txn(t *testing.T, category string, amount float64, kind model.Kind) model.Transaction {
	t.Helper()
	tx, err := model.NewTransaction(category, amount, kind)
	require.NoError(t, err)
	return tx
}

func TestNew_ShowsLedgerRows(t *testing.T) {
	l := newTestLedger(t,
		txn(t, "Food", 50, model.KindExpense),
		txn(t, "Salary", 2000.5, model.KindIncome),
	)

	m := New(l)

	assert.Equal(t, StateList, m.State())
	assert.False(t, m.Changed())
	assert.Equal(t, []table.Row{
		{"Food", "50", "Expense"},
		{"Salary", "2000.5", "Income"},
	}, m.table.Rows())
}

func TestAddTransaction(t *testing.T) {
	tests := []struct {
		name       string
		wantStatus string
		msgs       []tea.Msg
		wantKind   model.Kind
	}{
		{
			name:       "income with enter between fields",
			msgs:       sequence(keyPress("i"), "Salary", enter, "2000", enter),
			wantKind:   model.KindIncome,
			wantStatus: "Added income Salary: 2000",
		},
		{
			name:       "expense with tab between fields",
			msgs:       sequence(keyPress("e"), "Salary", tab, "2000", enter),
			wantKind:   model.KindExpense,
			wantStatus: "Added expense Salary: 2000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := ledger.New()
			m := send(t, New(l), tt.msgs...)

			assert.Equal(t, StateList, m.State())
			assert.True(t, m.Changed())
			assert.Equal(t, tt.wantStatus, m.status)
			assert.False(t, m.failed)

			require.Equal(t, 1, l.Len())
			got := l.Snapshot()[0]
			assert.Equal(t, "Salary", got.Category())
			assert.InDelta(t, 2000.0, got.Amount(), 1e-9)
			assert.Equal(t, tt.wantKind, got.Kind())
			assert.Len(t, m.table.Rows(), 1)
		})
	}
}

func TestAddTransaction_InvalidInputKeepsForm(t *testing.T) {
	tests := []struct {
		name       string
		wantStatus string
		msgs       []tea.Msg
	}{
		{
			name:       "category with spaces",
			msgs:       sequence(keyPress("e"), "Eating Out", enter, "10", enter),
			wantStatus: "category cannot contain spaces",
		},
		{
			name:       "empty category",
			msgs:       sequence(keyPress("e"), enter, "10", enter),
			wantStatus: "category cannot be empty",
		},
		{
			name:       "negative amount",
			msgs:       sequence(keyPress("e"), "Food", enter, "-5", enter),
			wantStatus: "amount cannot be negative",
		},
		{
			name:       "not a number",
			msgs:       sequence(keyPress("i"), "Food", enter, "abc", enter),
			wantStatus: `"abc" is not a number`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := ledger.New()
			m := send(t, New(l), tt.msgs...)

			assert.Equal(t, StateAdding, m.State())
			assert.True(t, m.failed)
			assert.Contains(t, m.status, tt.wantStatus)
			assert.False(t, m.Changed())
			assert.Zero(t, l.Len())
		})
	}
}

func TestAddTransaction_CancelDiscards(t *testing.T) {
	l := ledger.New()
	m := send(t, New(l), sequence(keyPress("i"), "Food", enter, "50", esc)...)

	assert.Equal(t, StateList, m.State())
	assert.False(t, m.Changed())
	assert.Zero(t, l.Len())
	assert.Equal(t, "Canceled.", m.status)
}

func TestAddTransaction_LettersGoToForm(t *testing.T) {
	l := ledger.New()
	m := send(t, New(l), sequence(keyPress("e"), "qstie")...)

	assert.Equal(t, StateAdding, m.State())
	assert.Equal(t, "qstie", m.category.Value())
	assert.False(t, m.quitting)
}

func TestSort(t *testing.T) {
	t.Run("reorders and marks changed", func(t *testing.T) {
		l := newTestLedger(t,
			txn(t, "Salary", 2000, model.KindIncome),
			txn(t, "Food", 50, model.KindExpense),
			txn(t, "Food", 20, model.KindExpense),
		)

		m := send(t, New(l), keyPress("s"))

		assert.True(t, m.Changed())
		assert.Equal(t, []table.Row{
			{"Food", "20", "Expense"},
			{"Food", "50", "Expense"},
			{"Salary", "2000", "Income"},
		}, m.table.Rows())
	})

	t.Run("already sorted stays clean", func(t *testing.T) {
		l := newTestLedger(t,
			txn(t, "Food", 20, model.KindExpense),
			txn(t, "Rent", 900, model.KindExpense),
		)

		m := send(t, New(l), keyPress("s"))

		assert.False(t, m.Changed())
		assert.Equal(t, "Sorted by amount.", m.status)
	})
}

func TestToggleStats(t *testing.T) {
	l := newTestLedger(t,
		txn(t, "Food", 50, model.KindExpense),
		txn(t, "Salary", 2000, model.KindIncome),
		txn(t, "Food", 20, model.KindExpense),
	)

	m := send(t, New(l), keyPress("t"))
	require.Equal(t, StateStats, m.State())

	view := m.View()
	assert.Contains(t, view, "Expense Statistics")
	assert.Contains(t, view, "Food")
	assert.Contains(t, view, "70")
	assert.NotContains(t, view, "Salary")

	m = send(t, m, keyPress("t"))
	assert.Equal(t, StateList, m.State())
}

func TestQuit(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		name string
	}{
		{name: "q", msg: keyPress("q")},
		{name: "ctrl+c", msg: tea.KeyMsg{Type: tea.KeyCtrlC}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, cmd := New(ledger.New()).Update(tt.msg)
			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
			assert.Empty(t, next.View())
		})
	}
}

func TestView(t *testing.T) {
	t.Run("empty ledger", func(t *testing.T) {
		view := New(ledger.New()).View()
		assert.Contains(t, view, "0 transactions")
		assert.Contains(t, view, "No transactions found.")
		assert.Contains(t, view, "Balance: 0")
	})

	t.Run("balance and unsaved marker", func(t *testing.T) {
		l := newTestLedger(t,
			txn(t, "Food", 50, model.KindExpense),
			txn(t, "Salary", 2000, model.KindIncome),
		)
		m := send(t, New(l, WithHelp(false)), sequence(keyPress("e"), "Food", enter, "20", enter)...)

		view := m.View()
		assert.Contains(t, view, "3 transactions (unsaved)")
		assert.Contains(t, view, "Balance: 1930")
		assert.NotContains(t, view, "add income", "help is hidden")
	})

	t.Run("form shows kind", func(t *testing.T) {
		m := send(t, New(ledger.New()), keyPress("i"))
		assert.Contains(t, m.View(), "Add Income")
	})
}

func TestWindowResize(t *testing.T) {
	m := send(t, New(ledger.New()), tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
	assert.Equal(t, 120, m.help.Width)
}

func TestThemeByName(t *testing.T) {
	theme, ok := themes.ByName("catppuccin")
	require.True(t, ok)
	assert.Equal(t, themes.CatppuccinMocha.Primary, theme.Primary)

	theme, ok = themes.ByName("")
	require.True(t, ok)
	assert.Equal(t, themes.Default.Primary, theme.Primary)

	_, ok = themes.ByName("neon")
	assert.False(t, ok)
}

func TestRun_QuitWithoutChanges(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	l := newTestLedger(t, txn(t, "Food", 50, model.KindExpense))

	changed, err := Run(ctx, l, WithProgramOptions(
		tea.WithInput(strings.NewReader("q")),
		tea.WithOutput(io.Discard),
	))
	require.NoError(t, err)
	require.NoError(t, ctx.Err(), "browser should quit on q before the deadline")
	assert.False(t, changed)
	assert.Equal(t, 1, l.Len())
}
