// Package model defines the core domain models used throughout the application.
package model

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind indicates whether a transaction brings money in or takes it out.
type Kind int

const (
	// KindExpense represents money leaving the ledger.
	KindExpense Kind = iota
	// KindIncome represents money entering the ledger.
	KindIncome
)

// String returns the display name of the kind.
func (k Kind) String() string {
	switch k {
	case KindIncome:
		return "Income"
	case KindExpense:
		return "Expense"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// ParseKind converts "income" or "expense" (any case) into a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income":
		return KindIncome, nil
	case "expense":
		return KindExpense, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidKind, s)
	}
}

// Validation errors.
var (
	ErrNegativeAmount = errors.New("amount cannot be negative")
	ErrInvalidAmount  = errors.New("amount must be a finite number")
	ErrInvalidKind    = errors.New("invalid transaction kind")
)

// ValidationError reports a transaction that could not be constructed.
type ValidationError struct {
	Err   error
	Value any
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Transaction is a single ledger entry. It is immutable once created.
type Transaction struct {
	category string
	amount   float64
	kind     Kind
}

// NewTransaction validates its input and returns a Transaction.
// The category is stored as given.
func NewTransaction(category string, amount float64, kind Kind) (Transaction, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Transaction{}, &ValidationError{Field: "amount", Value: amount, Err: ErrInvalidAmount}
	}
	if amount < 0 {
		return Transaction{}, &ValidationError{Field: "amount", Value: amount, Err: ErrNegativeAmount}
	}
	if !kind.Valid() {
		return Transaction{}, &ValidationError{Field: "kind", Value: int(kind), Err: ErrInvalidKind}
	}

	return Transaction{
		category: category,
		amount:   amount,
		kind:     kind,
	}, nil
}

// Category returns the transaction's category label.
func (t Transaction) Category() string {
	return t.category
}

// Amount returns the non-negative amount.
func (t Transaction) Amount() float64 {
	return t.amount
}

// Kind returns whether the transaction is income or expense.
func (t Transaction) Kind() Kind {
	return t.kind
}

// Display renders the transaction as a single aligned line.
func (t Transaction) Display() string {
	return fmt.Sprintf("%-15s%-10s%s", t.category, FormatAmount(t.amount), t.kind)
}

// FormatAmount renders an amount as the shortest decimal that parses back to
// the same float64.
func FormatAmount(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Sprintf("%v", amount)
	}
	return decimal.NewFromFloat(amount).String()
}
