package main

import (
	"fmt"
	"strings"

	"github.com/Veraticus/smart-finance/internal/cli"
	"github.com/Veraticus/smart-finance/internal/model"
	"github.com/spf13/cobra"
)

func incomeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "income <category> <amount>",
		Short: "Record income",
		Example: `  finance income Salary 2000
  finance income Gift 25.50`,
		Args: cobra.ExactArgs(2),
		RunE: addRunner(model.KindIncome),
	}
}

func expenseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "expense <category> <amount>",
		Short: "Record an expense",
		Example: `  finance expense Food 12.40
  finance expense Rent 900
  finance expense -- Refund -5   # rejected: amounts cannot be negative`,
		Args: cobra.ExactArgs(2),
		RunE: addRunner(model.KindExpense),
	}
}

// addRunner loads the ledger, appends one transaction and saves.
func addRunner(kind model.Kind) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		category := args[0]
		amount, err := parseEntry(category, args[1])
		if err != nil {
			return err
		}

		l, err := openLedger(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		if err := l.Add(category, amount, kind); err != nil {
			return err
		}
		if err := saveLedger(l); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Added %s %s: %s",
			strings.ToLower(kind.String()), category, model.FormatAmount(amount))))
		return nil
	}
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show all transactions in stored order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := openLedger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return cli.RenderTransactions(cmd.OutOrStdout(), l)
		},
	}
}

func balanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show total income minus total expenses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := openLedger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return cli.RenderBalance(cmd.OutOrStdout(), l.Balance())
		},
	}
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show expense totals per category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := openLedger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return cli.RenderStatistics(cmd.OutOrStdout(), l.ExpenseStatistics())
		},
	}
}

func sortCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sort",
		Short: "Sort the ledger file by ascending amount",
		Long: `Sort rewrites the ledger file in ascending amount order. Transactions with
equal amounts keep their relative order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := openLedger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			l.SortByAmount()
			if err := saveLedger(l); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Sorted successfully."))
			return cli.RenderTransactions(cmd.OutOrStdout(), l)
		},
	}
}
