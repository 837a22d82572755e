package ledger

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"

	"github.com/Veraticus/smart-finance/internal/model"
)

// Kind flags used by the file format.
const (
	flagExpense = "0"
	flagIncome  = "1"
)

// DecodeResult describes what Decode read.
type DecodeResult struct {
	Transactions []model.Transaction
	// StoppedAt is the 1-based line number of the first record that failed
	// to parse. Zero when every line parsed.
	StoppedAt int
	Truncated bool
}

// Encode writes one "<category> <amount> <flag>" line per transaction.
// Categories are written as-is; one containing whitespace will not decode
// back to the same record.
func Encode(w io.Writer, txns iter.Seq[model.Transaction]) error {
	bw := bufio.NewWriter(w)
	for txn := range txns {
		if _, err := fmt.Fprintf(bw, "%s %s %s\n", txn.Category(), model.FormatAmount(txn.Amount()), kindFlag(txn.Kind())); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Decode reads records until EOF or the first line that is not a valid
// "<category> <amount> <0|1>" triple. Everything before a bad line is kept
// and the truncation is reported in the result, not as an error. Blank lines
// are skipped. The returned error is only set for read failures.
func Decode(r io.Reader) (DecodeResult, error) {
	var result DecodeResult

	// Lines are unbounded so any category Encode writes reads back.
	br := bufio.NewReader(r)

	lineNum := 0
	for {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return result, err
		}
		if line == "" && err != nil {
			return result, nil
		}

		lineNum++
		if fields := strings.Fields(line); len(fields) > 0 {
			txn, ok := parseRecord(fields)
			if !ok {
				result.Truncated = true
				result.StoppedAt = lineNum
				return result, nil
			}
			result.Transactions = append(result.Transactions, txn)
		}

		if err != nil {
			return result, nil
		}
	}
}

func parseRecord(fields []string) (model.Transaction, bool) {
	if len(fields) != 3 {
		return model.Transaction{}, false
	}

	amount, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return model.Transaction{}, false
	}

	var kind model.Kind
	switch fields[2] {
	case flagIncome:
		kind = model.KindIncome
	case flagExpense:
		kind = model.KindExpense
	default:
		return model.Transaction{}, false
	}

	txn, err := model.NewTransaction(fields[0], amount, kind)
	if err != nil {
		return model.Transaction{}, false
	}
	return txn, true
}

func kindFlag(kind model.Kind) string {
	if kind == model.KindIncome {
		return flagIncome
	}
	return flagExpense
}
