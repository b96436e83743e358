// Package ui implements the terminal interface for the loan application
// wizard: one step form on screen at a time, a progress indicator, a review
// page, and the confirmation page shown after a successful submission.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. The blue mirrors the widget's default primary color; the
// rest follows standard light/dark terminal conventions.
var (
	LightForeground = lipgloss.Color("#1e293b")
	LightPrimary    = lipgloss.Color("#3b82f6")
	LightMuted      = lipgloss.Color("#94a3b8")
	LightBorder     = lipgloss.Color("#cbd5e1")

	DarkForeground = lipgloss.Color("#e2e8f0")
	DarkPrimary    = lipgloss.Color("#60a5fa")
	DarkMuted      = lipgloss.Color("#64748b")
	DarkBorder     = lipgloss.Color("#334155")

	// Semantic colors, same in both modes
	Destructive = lipgloss.Color("#e53935")
	Success     = lipgloss.Color("#22c55e")
	Warning     = lipgloss.Color("#FFC107")
)

// Theme holds the current color scheme.
type Theme struct {
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme.
func LightTheme() Theme {
	return Theme{
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Muted:      LightMuted,
		Border:     LightBorder,
	}
}

// DarkTheme returns the dark mode theme.
func DarkTheme() Theme {
	return Theme{
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		IsDark:     true,
	}
}

// DetectTheme picks a theme from terminal hints, defaulting to dark.
func DetectTheme() Theme {
	if os.Getenv("LOANDESK_LIGHT_MODE") == "1" {
		return LightTheme()
	}
	if colorTerm := os.Getenv("COLORFGBG"); colorTerm != "" {
		// Format is usually "foreground;background".
		parts := strings.Split(colorTerm, ";")
		if len(parts) == 2 {
			if bgIdx, err := strconv.Atoi(parts[1]); err == nil {
				if bgIdx == 7 || bgIdx == 15 {
					return LightTheme()
				}
			}
		}
	}
	return DarkTheme()
}

// Styles holds the styled components used across the wizard pages.
type Styles struct {
	Theme Theme

	Header      lipgloss.Style
	Description lipgloss.Style
	Footer      lipgloss.Style

	StepActive   lipgloss.Style
	StepComplete lipgloss.Style
	StepPending  lipgloss.Style

	FieldLabel   lipgloss.Style
	FieldFocused lipgloss.Style
	OptionOn     lipgloss.Style
	OptionOff    lipgloss.Style

	SectionTitle lipgloss.Style
	RowLabel     lipgloss.Style
	RowValue     lipgloss.Style

	ErrorBanner lipgloss.Style
	ErrorItem   lipgloss.Style
	SuccessText lipgloss.Style
	Muted       lipgloss.Style
}

// NewStyles creates a Styles instance for the given theme.
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),

		Description: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2).
			MarginBottom(1),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2).
			MarginTop(1),

		StepActive: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		StepComplete: lipgloss.NewStyle().
			Foreground(Success),

		StepPending: lipgloss.NewStyle().
			Foreground(theme.Muted),

		FieldLabel: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		FieldFocused: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		OptionOn: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Underline(true),

		OptionOff: lipgloss.NewStyle().
			Foreground(theme.Muted),

		SectionTitle: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			MarginTop(1),

		RowLabel: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Width(20),

		RowValue: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		ErrorBanner: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		ErrorItem: lipgloss.NewStyle().
			Foreground(Destructive),

		SuccessText: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),
	}
}

// DefaultStyles returns styles for the detected theme.
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}
