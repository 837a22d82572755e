package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/smart-finance/internal/ledger"
	"github.com/Veraticus/smart-finance/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// NoTransactionsMessage is shown instead of an empty listing.
const NoTransactionsMessage = "No transactions found."

const listHeader = "Category       Amount    Type"

// RenderTransactions writes the ledger in stored order, or a notice when it
// holds nothing.
func RenderTransactions(w io.Writer, l *ledger.Ledger) error {
	seq, ok := l.List()
	if !ok {
		_, err := fmt.Fprintln(w, InfoStyle.Render(NoTransactionsMessage))
		return err
	}

	var b strings.Builder
	b.WriteString(TableHeaderStyle.Render(listHeader))
	b.WriteString("\n")
	b.WriteString(SubtleStyle.Render(strings.Repeat("-", 34)))
	b.WriteString("\n")
	for txn := range seq {
		b.WriteString(kindStyle(txn.Kind()).Render(txn.Display()))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderBalance writes the current balance.
func RenderBalance(w io.Writer, balance float64) error {
	style := IncomeStyle
	if balance < 0 {
		style = ExpenseStyle
	}
	_, err := fmt.Fprintf(w, "Current Balance: %s\n", style.Render(model.FormatAmount(balance)))
	return err
}

// RenderStatistics writes per-category expense totals in the given order.
func RenderStatistics(w io.Writer, stats []ledger.CategoryTotal) error {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(ChartIcon + " Expense Statistics:"))
	b.WriteString("\n")

	if len(stats) == 0 {
		b.WriteString(SubtleStyle.Render("No expenses recorded."))
		b.WriteString("\n")
	}
	for _, stat := range stats {
		fmt.Fprintf(&b, "%s: %s\n", stat.Category, ExpenseStyle.Render(model.FormatAmount(stat.Total)))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func kindStyle(kind model.Kind) lipgloss.Style {
	if kind == model.KindIncome {
		return IncomeStyle
	}
	return ExpenseStyle
}
