package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")
	Black     = lipgloss.Color("#000000")

	// Sleep quality colors
	QualityGood = lipgloss.Color("#10B981") // Green
	QualityFair = lipgloss.Color("#F59E0B") // Amber
	QualityPoor = lipgloss.Color("#EF4444") // Red

	// Base styles
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Listing styles
	Row = lipgloss.NewStyle()

	RowSelected = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	RowMuted = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Stat blocks on the dashboard
	StatLabel = lipgloss.NewStyle().
			Foreground(Muted)

	StatValue = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	// Spinner and progress
	Spinner = lipgloss.NewStyle().
		Foreground(Primary)

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	// Section headers inside a view
	SectionLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	// Muted text style (for using Muted color as a style)
	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// QualityColor returns the color for a sleep quality between 0 and 1.
func QualityColor(quality float64) lipgloss.Color {
	switch {
	case quality >= 0.75:
		return QualityGood
	case quality >= 0.5:
		return QualityFair
	default:
		return QualityPoor
	}
}
