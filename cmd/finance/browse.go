package main

import (
	"fmt"

	"github.com/Veraticus/smart-finance/internal/cli"
	"github.com/Veraticus/smart-finance/internal/common"
	"github.com/Veraticus/smart-finance/internal/tui"
	"github.com/Veraticus/smart-finance/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func browseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Full-screen ledger browser",
		Long: `Browse the ledger in a full-screen table.

Keys: i/e add income/expense, s sort by amount, t expense statistics, q quit.
The ledger file is only rewritten when something changed.`,
		Args: cobra.NoArgs,
		RunE: runBrowse,
	}

	cmd.Flags().String("theme", "", "color theme (default, catppuccin)")
	_ = viper.BindPFlag("ui.theme", cmd.Flags().Lookup("theme"))

	return cmd
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	theme, ok := themes.ByName(appConfig.UI.Theme)
	if !ok {
		return fmt.Errorf("%w: unknown theme %q", common.ErrInvalidConfig, appConfig.UI.Theme)
	}

	l, err := openLedger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	changed, err := tui.Run(cmd.Context(), l,
		tui.WithTheme(theme),
		tui.WithProgramOptions(programIO(cmd)...),
	)
	if err != nil {
		return err
	}

	if !changed {
		fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("No changes."))
		return nil
	}
	if err := saveLedger(l); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Saved to file successfully."))
	return nil
}

// programIO runs the browser on the command's streams.
func programIO(cmd *cobra.Command) []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	}
}
