// Package ledger owns the ordered collection of transactions and the
// operations a front end can run against it.
//
// A Ledger has no internal synchronization. Callers that share one across
// goroutines must serialize access themselves.
package ledger

import (
	"cmp"
	"iter"
	"maps"
	"slices"

	"github.com/Veraticus/smart-finance/internal/model"
	"github.com/shopspring/decimal"
)

// Ledger is an ordered sequence of transactions.
type Ledger struct {
	transactions []model.Transaction
}

// CategoryTotal is the summed expense amount of one category.
type CategoryTotal struct {
	Category string
	Total    float64
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// Add validates and appends a transaction. A *model.ValidationError is
// returned unchanged and leaves the ledger untouched.
func (l *Ledger) Add(category string, amount float64, kind model.Kind) error {
	txn, err := model.NewTransaction(category, amount, kind)
	if err != nil {
		return err
	}
	l.transactions = append(l.transactions, txn)
	return nil
}

// Len returns the number of transactions.
func (l *Ledger) Len() int {
	return len(l.transactions)
}

// List returns the transactions in stored order. ok is false when the
// ledger holds no transactions, so callers can tell "nothing recorded" apart
// from an empty listing.
func (l *Ledger) List() (seq iter.Seq[model.Transaction], ok bool) {
	if len(l.transactions) == 0 {
		return func(func(model.Transaction) bool) {}, false
	}
	return func(yield func(model.Transaction) bool) {
		for _, txn := range l.transactions {
			if !yield(txn) {
				return
			}
		}
	}, true
}

// Snapshot returns a copy of the transactions in stored order.
func (l *Ledger) Snapshot() []model.Transaction {
	return slices.Clone(l.transactions)
}

// SortByAmount reorders the stored transactions ascending by amount.
// Equal amounts keep their relative order.
func (l *Ledger) SortByAmount() {
	slices.SortStableFunc(l.transactions, func(a, b model.Transaction) int {
		return cmp.Compare(a.Amount(), b.Amount())
	})
}

// Balance returns total income minus total expense.
func (l *Ledger) Balance() float64 {
	balance := decimal.Zero
	for _, txn := range l.transactions {
		amount := decimal.NewFromFloat(txn.Amount())
		if txn.Kind() == model.KindIncome {
			balance = balance.Add(amount)
		} else {
			balance = balance.Sub(amount)
		}
	}
	return balance.InexactFloat64()
}

// ExpenseStatistics sums expense amounts per category, ordered by category
// name. Income is ignored and categories without expenses are omitted.
func (l *Ledger) ExpenseStatistics() []CategoryTotal {
	totals := make(map[string]decimal.Decimal)
	for _, txn := range l.transactions {
		if txn.Kind() != model.KindExpense {
			continue
		}
		totals[txn.Category()] = totals[txn.Category()].Add(decimal.NewFromFloat(txn.Amount()))
	}

	stats := make([]CategoryTotal, 0, len(totals))
	for _, category := range slices.Sorted(maps.Keys(totals)) {
		stats = append(stats, CategoryTotal{
			Category: category,
			Total:    totals[category].InexactFloat64(),
		})
	}
	return stats
}

// appendAll adds already validated transactions in one step.
func (l *Ledger) appendAll(txns []model.Transaction) {
	l.transactions = append(l.transactions, txns...)
}
