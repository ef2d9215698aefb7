// Package report renders analysis results for the terminal.
package report

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/inkwell/internal/core/domain"
)

// Theme defines the colour palette for reports.
type Theme struct {
	// Primary is the main accent colour.
	Primary lipgloss.Color

	// Secondary is the secondary accent colour.
	Secondary lipgloss.Color

	// Muted is for less important text.
	Muted lipgloss.Color

	// Success indicates achieved goals.
	Success lipgloss.Color

	// Warning colours warning severity.
	Warning lipgloss.Color

	// Error colours error severity.
	Error lipgloss.Color

	// Info colours suggestion and info severity.
	Info lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:   lipgloss.Color("#7C3AED"), // Purple
		Secondary: lipgloss.Color("#06B6D4"), // Cyan
		Muted:     lipgloss.Color("#6C7086"), // Medium gray
		Success:   lipgloss.Color("#A6E3A1"), // Green
		Warning:   lipgloss.Color("#F9E2AF"), // Yellow
		Error:     lipgloss.Color("#F38BA8"), // Red
		Info:      lipgloss.Color("#89B4FA"), // Blue
		Border:    lipgloss.Color("#45475A"), // Border gray
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Title style for the report header.
	Title lipgloss.Style

	// Section style for section headers.
	Section lipgloss.Style

	// Label style for field names.
	Label lipgloss.Style

	// Muted style for less important text.
	Muted lipgloss.Style

	// Success style for achieved goals.
	Success lipgloss.Style

	// Box style for bordered summaries.
	Box lipgloss.Style

	severity map[domain.Severity]lipgloss.Style
}

// NewStyles creates styles from a theme. Without colour every style renders
// its input unchanged.
func NewStyles(theme *Theme, color bool) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	if !color {
		plain := lipgloss.NewStyle()
		return &Styles{
			theme:   theme,
			Title:   plain,
			Section: plain,
			Label:   plain,
			Muted:   plain,
			Success: plain,
			Box:     plain,
			severity: map[domain.Severity]lipgloss.Style{
				domain.SeverityError:      plain,
				domain.SeverityWarning:    plain,
				domain.SeveritySuggestion: plain,
				domain.SeverityInfo:       plain,
			},
		}
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Section: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		Label: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success),

		Box: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		severity: map[domain.Severity]lipgloss.Style{
			domain.SeverityError:      lipgloss.NewStyle().Bold(true).Foreground(theme.Error),
			domain.SeverityWarning:    lipgloss.NewStyle().Foreground(theme.Warning),
			domain.SeveritySuggestion: lipgloss.NewStyle().Foreground(theme.Info),
			domain.SeverityInfo:       lipgloss.NewStyle().Foreground(theme.Muted),
		},
	}
}

// Severity returns the style for a severity. Unknown severities are muted.
func (s *Styles) Severity(sev domain.Severity) lipgloss.Style {
	if style, ok := s.severity[sev]; ok {
		return style
	}
	return s.Muted
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}
