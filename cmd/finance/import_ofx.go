package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/smart-finance/internal/cli"
	"github.com/Veraticus/smart-finance/internal/common"
	"github.com/Veraticus/smart-finance/internal/ledger"
	"github.com/Veraticus/smart-finance/internal/model"
	"github.com/Veraticus/smart-finance/internal/ofx"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func importOFXCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-ofx [files...]",
		Short: "Import transactions from OFX/QFX files",
		Long: `Import transactions from OFX or QFX (Quicken) statements exported from your bank.

Debits become expenses and credits become income. Without --category each
entry is filed under Interest, Bank-Fees or Cash for those transaction types,
and under the merchant name otherwise.

Examples:
  # Import single file
  finance import-ofx ~/Downloads/checking_jan_2024.qfx

  # Import all QFX files in a directory
  finance import-ofx ~/Downloads/*.qfx

  # Preview without touching the ledger
  finance import-ofx --dry-run ~/Downloads/card.ofx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImportOFX,
	}

	cmd.Flags().BoolP("dry-run", "d", false, "Preview import without saving")
	cmd.Flags().StringP("category", "c", "", "File every entry under this category")

	return cmd
}

func runImportOFX(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	category, _ := cmd.Flags().GetString("category")

	var opts []ofx.Option
	if category != "" {
		if err := cli.ValidateCategory(category); err != nil {
			return err
		}
		opts = append(opts, ofx.WithCategory(category))
	}

	files, err := expandPatterns(args)
	if err != nil {
		return err
	}

	common.LogInfo("Importing OFX files", common.Fields{
		"file_count": len(files),
		"dry_run":    dryRun,
	})

	entries, err := parseStatements(cmd, ofx.NewParser(opts...), files)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), cli.FormatWarning("No transactions found in any file."))
		return nil
	}

	if dryRun {
		return previewEntries(cmd.OutOrStdout(), entries)
	}

	l, err := openLedger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if err := addEntries(cmd.ErrOrStderr(), l, entries); err != nil {
		return err
	}
	if err := saveLedger(l); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf(
		"Imported %d transactions from %d files.", len(entries), len(files))))
	return nil
}

// expandPatterns resolves globs, keeping plain paths that match nothing.
func expandPatterns(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) > 0 {
			files = append(files, matches...)
			continue
		}
		if _, err := os.Stat(pattern); err == nil {
			files = append(files, pattern)
		} else {
			slog.Warn("No files found matching pattern", "pattern", pattern)
		}
	}

	if len(files) == 0 {
		return nil, errors.New("no files found to import")
	}
	return files, nil
}

// parseStatements reads every file, skipping ones that fail to parse and
// entries already seen in an earlier file.
func parseStatements(cmd *cobra.Command, parser *ofx.Parser, files []string) ([]ofx.Entry, error) {
	var all []ofx.Entry
	seen := make(map[string]bool)

	for _, path := range files {
		entries, err := parseFile(cmd, parser, path)
		if err != nil {
			if cmd.Context().Err() != nil {
				return nil, err
			}
			common.LogError(err, "Failed to parse OFX file", common.Fields{"file": path})
			fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatWarning(fmt.Sprintf("Skipping %s: %v", filepath.Base(path), err)))
			continue
		}

		added := 0
		for _, entry := range entries {
			if entry.ID != "" {
				key := entry.Account + "|" + entry.ID
				if seen[key] {
					continue
				}
				seen[key] = true
			}
			all = append(all, entry)
			added++
		}

		slog.Info("Processed file",
			"file", filepath.Base(path),
			"found", len(entries),
			"added", added,
			"duplicates", len(entries)-added)
	}

	return all, nil
}

func parseFile(cmd *cobra.Command, parser *ofx.Parser, path string) ([]ofx.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return parser.ParseFile(cmd.Context(), f)
}

func previewEntries(w io.Writer, entries []ofx.Entry) error {
	preview := ledger.New()
	for _, entry := range entries {
		if err := preview.Add(entry.Category, entry.Amount, entry.Kind); err != nil {
			return fmt.Errorf("entry %s: %w", entry.ID, err)
		}
	}

	if err := cli.RenderTransactions(w, preview); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, cli.FormatInfo(fmt.Sprintf(
		"Dry run: %d transactions not saved (net %s).",
		preview.Len(), model.FormatAmount(preview.Balance()))))
	return err
}

func addEntries(progress io.Writer, l *ledger.Ledger, entries []ofx.Entry) error {
	bar := progressbar.NewOptions(len(entries),
		progressbar.OptionSetWriter(progress),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Importing transactions...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(progress); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)

	for _, entry := range entries {
		if err := l.Add(entry.Category, entry.Amount, entry.Kind); err != nil {
			return fmt.Errorf("entry %s: %w", entry.ID, err)
		}
		if err := bar.Add(1); err != nil {
			slog.Warn("Failed to update progress bar", "error", err)
		}
	}
	return nil
}
