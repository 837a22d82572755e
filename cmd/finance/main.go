package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/Veraticus/smart-finance/internal/cli"
	"github.com/Veraticus/smart-finance/internal/common"
	"github.com/Veraticus/smart-finance/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"

	// appConfig is resolved by initConfig before any command runs.
	appConfig *config.Config
)

func newRootCmd() *cobra.Command {
	appConfig = nil

	rootCmd := &cobra.Command{
		Use:   "finance",
		Short: "💰 Personal income and expense tracker",
		Long: `finance keeps a single ledger of income and expenses in a plain text file.

Run it without a command for the interactive menu, or use the commands below
for one-shot edits and reports.`,
		PersistentPreRunE: initConfig,
		RunE:              runMenu,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default: $HOME/.config/finance/config.yaml)")
	rootCmd.PersistentFlags().StringP("file", "f", "", "ledger file (default: finance.txt)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")

	// Bind flags to viper
	_ = viper.BindPFlag("ledger.file", rootCmd.PersistentFlags().Lookup("file"))
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))

	// Add commands
	rootCmd.AddCommand(menuCmd())
	rootCmd.AddCommand(incomeCmd())
	rootCmd.AddCommand(expenseCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(balanceCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(sortCmd())
	rootCmd.AddCommand(browseCmd())
	rootCmd.AddCommand(importOFXCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func main() {
	// Set up signal handling
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Debug("Received interrupt signal, shutting down")
		cancel()
	}()

	err := newRootCmd().ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err.Error()))
		os.Exit(1)
	}
}

func initConfig(cmd *cobra.Command, _ []string) error {
	v := viper.GetViper()
	config.Configure(v)

	if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		v.AddConfigPath(filepath.Join(home, ".config", "finance"))
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Defaults apply without a config file
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	level, err := common.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}
	if err := common.SetupLogger(cmd.ErrOrStderr(), level, cfg.Logging.Format); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	appConfig = cfg
	slog.Debug("Configuration loaded",
		"config_file", v.ConfigFileUsed(),
		"ledger_file", cfg.Ledger.File)
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "finance version %s\n", version)
		},
	}
}
