package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/smart-finance/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{m.renderHeader()}

	switch m.state {
	case StateStats:
		sections = append(sections, m.renderStats())
	case StateAdding:
		sections = append(sections, m.table.View(), m.renderForm())
	default:
		sections = append(sections, m.renderTable())
	}

	sections = append(sections, m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	title := m.theme.Title.Render("💰 Smart Finance")
	count := m.theme.Subtitle.Render(fmt.Sprintf("%d transactions", m.ledger.Len()))
	if m.dirty {
		count += m.theme.Subtitle.Render(" (unsaved)")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", count)
}

func (m Model) renderTable() string {
	if m.ledger.Len() == 0 {
		return m.theme.Subtitle.Render("No transactions found. Press i or e to add one.")
	}
	return m.table.View()
}

// renderStats renders per-category expense totals.
func (m Model) renderStats() string {
	stats := m.ledger.ExpenseStatistics()
	if len(stats) == 0 {
		return m.theme.BorderedBox.Render(m.theme.Subtitle.Render("No expenses recorded."))
	}

	width := 0
	for _, stat := range stats {
		width = max(width, len(stat.Category))
	}

	lines := make([]string, 0, len(stats)+1)
	lines = append(lines, m.theme.Bold.Render("📊 Expense Statistics"))
	for _, stat := range stats {
		lines = append(lines, fmt.Sprintf("%-*s  %s",
			width, stat.Category,
			m.theme.Expense.Render(model.FormatAmount(stat.Total))))
	}
	return m.theme.BorderedBox.Render(strings.Join(lines, "\n"))
}

func (m Model) renderForm() string {
	title := "Add Expense"
	if m.addKind == model.KindIncome {
		title = "Add Income"
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.Bold.Render(title),
		m.category.View(),
		m.amount.View(),
	)
	return m.theme.BorderedBox.Render(content)
}

func (m Model) renderFooter() string {
	balance := m.ledger.Balance()
	style := m.theme.Income
	if balance < 0 {
		style = m.theme.Expense
	}
	lines := []string{"Balance: " + style.Render(model.FormatAmount(balance))}

	if m.status != "" {
		statusStyle := m.theme.StatusSuccess
		if m.failed {
			statusStyle = m.theme.StatusError
		}
		lines = append(lines, statusStyle.Render(m.status))
	}

	if m.config.ShowHelp {
		lines = append(lines, m.help.View(m.keymap))
	}
	return strings.Join(lines, "\n")
}
