package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/Veraticus/smart-finance/internal/cli"
	"github.com/Veraticus/smart-finance/internal/common"
	"github.com/Veraticus/smart-finance/internal/ledger"
)

// openLedger loads the configured ledger file. A missing file yields an
// empty ledger; a truncated load is reported on warn.
func openLedger(warn io.Writer) (*ledger.Ledger, error) {
	path := appConfig.Ledger.File
	l := ledger.New()

	result, err := l.Load(path)
	if err != nil {
		return nil, common.NewUserError("could not load ledger", err)
	}

	if result.Truncated {
		fmt.Fprintln(warn, cli.FormatWarning(fmt.Sprintf(
			"%s: loaded %d transactions; stopped at unreadable line %d.",
			path, result.Loaded, result.StoppedAt)))
	}

	common.LogDebug("Ledger loaded", common.Fields{
		"path":      path,
		"found":     result.Found,
		"count":     result.Loaded,
		"truncated": result.Truncated,
	})
	return l, nil
}

// saveLedger writes l back to the configured file.
func saveLedger(l *ledger.Ledger) error {
	path := appConfig.Ledger.File
	if err := l.Save(path); err != nil {
		common.LogError(err, "Failed to save ledger", common.Fields{"path": path})
		return common.NewUserError("could not save ledger", err)
	}

	common.LogDebug("Ledger saved", common.Fields{"path": path, "count": l.Len()})
	return nil
}

// parseEntry checks a category and amount given on the command line.
func parseEntry(category, rawAmount string) (float64, error) {
	if err := cli.ValidateCategory(category); err != nil {
		return 0, err
	}

	amount, err := strconv.ParseFloat(rawAmount, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", common.ErrInvalidInput, rawAmount)
	}
	return amount, nil
}
