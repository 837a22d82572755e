package model

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransaction(t *testing.T) {
	tests := []struct {
		wantErr  error
		name     string
		category string
		amount   float64
		kind     Kind
	}{
		{
			name:     "income",
			category: "Salary",
			amount:   2000,
			kind:     KindIncome,
		},
		{
			name:     "expense with fraction",
			category: "Food",
			amount:   12.75,
			kind:     KindExpense,
		},
		{
			name:     "zero amount is allowed",
			category: "Gift",
			amount:   0,
			kind:     KindIncome,
		},
		{
			name:     "empty category is allowed",
			category: "",
			amount:   1,
			kind:     KindExpense,
		},
		{
			name:     "negative amount",
			category: "Food",
			amount:   -0.01,
			kind:     KindExpense,
			wantErr:  ErrNegativeAmount,
		},
		{
			name:     "NaN amount",
			category: "Food",
			amount:   math.NaN(),
			kind:     KindExpense,
			wantErr:  ErrInvalidAmount,
		},
		{
			name:     "infinite amount",
			category: "Food",
			amount:   math.Inf(1),
			kind:     KindIncome,
			wantErr:  ErrInvalidAmount,
		},
		{
			name:     "unknown kind",
			category: "Food",
			amount:   5,
			kind:     Kind(7),
			wantErr:  ErrInvalidKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn, err := NewTransaction(tt.category, tt.amount, tt.kind)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)

				var verr *ValidationError
				require.True(t, errors.As(err, &verr))
				assert.Equal(t, Transaction{}, txn)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.category, txn.Category())
			assert.Equal(t, tt.amount, txn.Amount())
			assert.Equal(t, tt.kind, txn.Kind())
		})
	}
}

func TestNewTransaction_PreservesCategory(t *testing.T) {
	txn, err := NewTransaction("  Mixed Case ", 1, KindExpense)
	require.NoError(t, err)
	assert.Equal(t, "  Mixed Case ", txn.Category())
}

func TestValidationError_Message(t *testing.T) {
	_, err := NewTransaction("Food", -5, KindExpense)
	require.Error(t, err)
	assert.Equal(t, "invalid amount -5: amount cannot be negative", err.Error())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "Income", KindIncome.String())
	assert.Equal(t, "Expense", KindExpense.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		input   string
		want    Kind
		wantErr bool
	}{
		{input: "income", want: KindIncome},
		{input: "Expense", want: KindExpense},
		{input: " INCOME ", want: KindIncome},
		{input: "transfer", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseKind(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidKind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransaction_Display(t *testing.T) {
	tests := []struct {
		name string
		want string
		txn  Transaction
	}{
		{
			name: "expense",
			txn:  mustTransaction(t, "Food", 50, KindExpense),
			want: "Food           50        Expense",
		},
		{
			name: "income with decimals",
			txn:  mustTransaction(t, "Salary", 2000.5, KindIncome),
			want: "Salary         2000.5    Income",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.txn.Display())
		})
	}
}

func TestFormatAmount_RoundTrips(t *testing.T) {
	amounts := []float64{0, 1, 0.1, 12.34, 1930, 1e-7, 123456789.987654321, 1e21}
	for _, amount := range amounts {
		s := FormatAmount(amount)
		got, err := strconv.ParseFloat(s, 64)
		require.NoError(t, err, s)
		assert.Equal(t, amount, got, s)
	}
}

func mustTransaction(t *testing.T, category string, amount float64, kind Kind) Transaction {
	t.Helper()
	txn, err := NewTransaction(category, amount, kind)
	require.NoError(t, err)
	return txn
}
