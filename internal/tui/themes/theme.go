// Package themes holds the color schemes for the ledger browser.
package themes

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Selected      lipgloss.Style
	Income        lipgloss.Style
	Expense       lipgloss.Style
	BorderedBox   lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusError   lipgloss.Style
	StatusInfo    lipgloss.Style
	Primary       lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
}

// Default is the default theme.
var Default = build(palette{
	primary:    "#7c3aed",
	foreground: "#fafafa",
	subtle:     "#a3a3a3",
	border:     "#404040",
	muted:      "#737373",
	success:    "#10b981",
	errorColor: "#ef4444",
	info:       "#3b82f6",
})

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = build(palette{
	primary:    "#cba6f7",
	foreground: "#cdd6f4",
	subtle:     "#a6adc8",
	border:     "#45475a",
	muted:      "#6c7086",
	success:    "#a6e3a1",
	errorColor: "#f38ba8",
	info:       "#89dceb",
})

// ByName resolves a configured theme name.
func ByName(name string) (Theme, bool) {
	switch name {
	case "", "default":
		return Default, true
	case "catppuccin":
		return CatppuccinMocha, true
	default:
		return Theme{}, false
	}
}

// TableStyles adapts the theme to a bubbles table.
func (t Theme) TableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.Border).
		BorderBottom(true).
		Bold(true)
	styles.Selected = t.Selected
	return styles
}

type palette struct {
	primary    string
	foreground string
	subtle     string
	border     string
	muted      string
	success    string
	errorColor string
	info       string
}

func build(p palette) Theme {
	return Theme{
		Primary: lipgloss.Color(p.primary),
		Muted:   lipgloss.Color(p.muted),
		Border:  lipgloss.Color(p.border),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.foreground)),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.subtle)),
		Normal: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.foreground)),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.foreground)),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(p.primary)).
			Foreground(lipgloss.Color(p.foreground)).
			Bold(true),
		Income: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.success)),
		Expense: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.errorColor)),

		BorderedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.border)).
			Padding(0, 1),

		StatusSuccess: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.success)).
			Bold(true),
		StatusError: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.errorColor)).
			Bold(true),
		StatusInfo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.info)).
			Bold(true),
	}
}
