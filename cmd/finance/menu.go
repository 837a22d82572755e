package main

import (
	"github.com/Veraticus/smart-finance/internal/cli"
	"github.com/Veraticus/smart-finance/internal/ledger"
	"github.com/spf13/cobra"
)

func menuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Interactive numbered menu (the default)",
		Args:  cobra.NoArgs,
		RunE:  runMenu,
	}
}

// runMenu serves the numbered menu on stdin/stdout. Interrupts and closed
// input save the ledger before exiting.
func runMenu(cmd *cobra.Command, _ []string) error {
	handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx := handler.Watch(cmd.Context(), "Saving your ledger before exiting.")
	defer handler.Stop()

	out := cmd.OutOrStdout()
	if _, err := out.Write([]byte(cli.FormatTitle("Smart Finance") + "\n")); err != nil {
		return err
	}

	menu := cli.NewMenu(ledger.New(), appConfig.Ledger.File, cmd.InOrStdin(), out)
	return menu.Run(ctx)
}
