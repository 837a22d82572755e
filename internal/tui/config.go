package tui

import (
	"github.com/Veraticus/smart-finance/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
)

// Config holds TUI configuration.
type Config struct {
	Theme          themes.Theme
	ProgramOptions []tea.ProgramOption
	Width          int
	Height         int
	ShowHelp       bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Theme:    themes.Default,
		Width:    80,
		Height:   24,
		ShowHelp: true,
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithHelp toggles the key help footer.
func WithHelp(show bool) Option {
	return func(c *Config) {
		c.ShowHelp = show
	}
}

// WithProgramOptions passes extra options to the bubbletea program,
// e.g. tea.WithInput for scripted sessions.
func WithProgramOptions(opts ...tea.ProgramOption) Option {
	return func(c *Config) {
		c.ProgramOptions = append(c.ProgramOptions, opts...)
	}
}
