// Package dashboard is the interactive single-page TUI over the generated
// datasets: adjustable detection thresholds, summary metric cards, a VAF vs
// S/N scatter, QC trend panels, and an expandable variant detail list. It
// consumes the core packages read-only; slider moves only change what is
// derived and rendered, never the datasets.
package dashboard

import "github.com/charmbracelet/lipgloss"

// Theme holds the dashboard color scheme.
type Theme struct {
	Foreground lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Good       lipgloss.Color
	Warn       lipgloss.Color
	Bad        lipgloss.Color
}

// DarkTheme is the default palette.
func DarkTheme() Theme {
	return Theme{
		Foreground: lipgloss.Color("#f2f2f2"),
		Accent:     lipgloss.Color("#4db6ac"),
		Muted:      lipgloss.Color("#6b7a90"),
		Border:     lipgloss.Color("#2a3850"),
		Good:       lipgloss.Color("#8BC34A"),
		Warn:       lipgloss.Color("#FFC107"),
		Bad:        lipgloss.Color("#e53935"),
	}
}

// LightTheme is the alternate palette for light terminals.
func LightTheme() Theme {
	return Theme{
		Foreground: lipgloss.Color("#101F38"),
		Accent:     lipgloss.Color("#29434e"),
		Muted:      lipgloss.Color("#8a93a3"),
		Border:     lipgloss.Color("#dce0e5"),
		Good:       lipgloss.Color("#33691e"),
		Warn:       lipgloss.Color("#b28704"),
		Bad:        lipgloss.Color("#c62828"),
	}
}

// Styles are the prebuilt lipgloss styles derived from a Theme.
type Styles struct {
	Header    lipgloss.Style
	Section   lipgloss.Style
	Card      lipgloss.Style
	CardTitle lipgloss.Style
	CardValue lipgloss.Style
	Muted     lipgloss.Style
	Good      lipgloss.Style
	Warn      lipgloss.Style
	Bad       lipgloss.Style
	Selected  lipgloss.Style
	Footer    lipgloss.Style
}

// NewStyles builds the style set for a theme.
func NewStyles(t Theme) Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Accent).
			Padding(0, 1),
		Section: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Foreground),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 2),
		CardTitle: lipgloss.NewStyle().
			Foreground(t.Muted),
		CardValue: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Foreground),
		Muted:    lipgloss.NewStyle().Foreground(t.Muted),
		Good:     lipgloss.NewStyle().Foreground(t.Good),
		Warn:     lipgloss.NewStyle().Foreground(t.Warn),
		Bad:      lipgloss.NewStyle().Foreground(t.Bad),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		Footer: lipgloss.NewStyle().
			Foreground(t.Muted).
			Padding(0, 1),
	}
}
