package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/smart-finance/internal/ledger"
	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the browser over l until the user quits or ctx is canceled.
// It reports whether the ledger changed so the caller can decide to save.
func Run(ctx context.Context, l *ledger.Ledger, opts ...Option) (bool, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	programOpts := append([]tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	}, cfg.ProgramOptions...)

	final, err := tea.NewProgram(newModel(l, cfg), programOpts...).Run()

	changed := false
	if m, ok := final.(Model); ok {
		changed = m.Changed()
	}

	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			slog.Debug("Browser stopped by cancellation", "changed", changed)
			return changed, nil
		}
		return changed, fmt.Errorf("failed to run browser: %w", err)
	}
	return changed, nil
}
