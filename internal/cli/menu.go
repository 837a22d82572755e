package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"unicode"

	"github.com/Veraticus/smart-finance/internal/common"
	"github.com/Veraticus/smart-finance/internal/ledger"
	"github.com/Veraticus/smart-finance/internal/model"
)

// Menu choices.
const (
	choiceAddIncome  = "1"
	choiceAddExpense = "2"
	choiceShowAll    = "3"
	choiceBalance    = "4"
	choiceSort       = "5"
	choiceStatistics = "6"
	choiceSaveExit   = "7"
)

const menuOptions = `1. Add Income
2. Add Expense
3. Show All Transactions
4. Show Balance
5. Sort by Amount
6. Show Expense Statistics
7. Save & Exit`

// errEndOfInput stops the loop when stdin closes or the context is canceled.
var errEndOfInput = errors.New("end of input")

// Menu is the interactive numbered-menu front end. It works on the ledger
// it was given and never keeps state of its own beyond the I/O handles.
type Menu struct {
	ledger *ledger.Ledger
	reader *LineReader
	writer io.Writer
	path   string
}

// NewMenu creates a menu bound to l, persisting to path.
func NewMenu(l *ledger.Ledger, path string, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		ledger: l,
		path:   path,
		reader: NewLineReader(in),
		writer: out,
	}
}

// Run loads the ledger file, serves menu choices until the user picks
// Save & Exit, and saves. Closed input or a canceled context also save and
// return. A failed save from the menu is reported and the menu keeps running.
func (m *Menu) Run(ctx context.Context) error {
	if err := m.load(); err != nil {
		return err
	}

	for {
		m.println("\n" + RenderBox("SMART FINANCE MANAGER", menuOptions))
		choice, err := m.prompt(ctx, "Choice")
		if err != nil {
			if errors.Is(err, errEndOfInput) {
				return m.save()
			}
			return err
		}

		done, err := m.dispatch(ctx, choice)
		if err != nil {
			if errors.Is(err, errEndOfInput) {
				return m.save()
			}
			return err
		}
		if done {
			return nil
		}
	}
}

func (m *Menu) dispatch(ctx context.Context, choice string) (bool, error) {
	switch choice {
	case choiceAddIncome:
		return false, m.addTransaction(ctx, model.KindIncome)
	case choiceAddExpense:
		return false, m.addTransaction(ctx, model.KindExpense)
	case choiceShowAll:
		return false, RenderTransactions(m.writer, m.ledger)
	case choiceBalance:
		return false, RenderBalance(m.writer, m.ledger.Balance())
	case choiceSort:
		m.ledger.SortByAmount()
		m.println(FormatSuccess("Sorted successfully."))
		return false, nil
	case choiceStatistics:
		return false, RenderStatistics(m.writer, m.ledger.ExpenseStatistics())
	case choiceSaveExit:
		if err := m.save(); err != nil {
			m.println(FormatError(err.Error()))
			return false, nil
		}
		return true, nil
	default:
		m.println(FormatWarning("Invalid choice."))
		return false, nil
	}
}

func (m *Menu) addTransaction(ctx context.Context, kind model.Kind) error {
	category, err := m.prompt(ctx, "Enter category")
	if err != nil {
		return err
	}
	if err := ValidateCategory(category); err != nil {
		m.println(FormatError("Error: " + err.Error()))
		return nil
	}

	rawAmount, err := m.prompt(ctx, "Enter amount")
	if err != nil {
		return err
	}
	amount, err := strconv.ParseFloat(rawAmount, 64)
	if err != nil {
		m.println(FormatError(fmt.Sprintf("Error: %q is not a number", rawAmount)))
		return nil
	}

	if err := m.ledger.Add(category, amount, kind); err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			m.println(FormatError("Error: " + verr.Err.Error()))
			return nil
		}
		return err
	}

	m.println(FormatSuccess(fmt.Sprintf("Added %s %s: %s", strings.ToLower(kind.String()), category, model.FormatAmount(amount))))
	return nil
}

// ValidateCategory rejects categories the file format cannot store.
func ValidateCategory(category string) error {
	if category == "" {
		return fmt.Errorf("%w: category cannot be empty", common.ErrInvalidInput)
	}
	if strings.ContainsFunc(category, unicode.IsSpace) {
		return fmt.Errorf("%w: category cannot contain spaces", common.ErrInvalidInput)
	}
	return nil
}

func (m *Menu) load() error {
	result, err := m.ledger.Load(m.path)
	if err != nil {
		return common.NewUserError("could not load ledger", err)
	}

	switch {
	case !result.Found:
		m.println(FormatInfo("No saved file found."))
	case result.Truncated:
		m.println(FormatWarning(fmt.Sprintf("Loaded %d transactions; stopped at unreadable line %d.", result.Loaded, result.StoppedAt)))
	default:
		m.println(FormatSuccess("Loaded data from file."))
	}

	slog.Debug("Ledger loaded",
		"path", m.path,
		"found", result.Found,
		"count", result.Loaded,
		"truncated", result.Truncated)
	return nil
}

func (m *Menu) save() error {
	if err := m.ledger.Save(m.path); err != nil {
		return common.NewUserError("could not save ledger", err)
	}
	m.println(FormatSuccess("Saved to file successfully."))
	slog.Debug("Ledger saved", "path", m.path, "count", m.ledger.Len())
	return nil
}

func (m *Menu) prompt(ctx context.Context, label string) (string, error) {
	m.print(FormatPrompt(label))
	line, err := m.reader.ReadLine(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, ErrInputCancelled) {
			m.println("")
			return "", errEndOfInput
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return line, nil
}

func (m *Menu) print(s string) {
	if _, err := io.WriteString(m.writer, s); err != nil {
		slog.Warn("Failed to write menu output", "error", err)
	}
}

func (m *Menu) println(s string) {
	m.print(s + "\n")
}
