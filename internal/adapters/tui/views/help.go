package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/JakobGM/quelf/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToDashboardMsg{}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("quelf Help"))
	b.WriteString("\n\n")

	b.WriteString(styles.Subtitle.Render("Sleep data toolkit"))
	b.WriteString("\n\n")

	// Dashboard section
	b.WriteString(styles.SectionLabel.Render("Dashboard"))
	b.WriteString("\n")
	b.WriteString(helpLine("l / Enter", "Browse cached sessions"))
	b.WriteString(helpLine("s", "Sync new sessions from the service"))
	b.WriteString(helpLine("r", "Reload cache stats"))
	b.WriteString("\n")

	// Sessions section
	b.WriteString(styles.SectionLabel.Render("Sessions"))
	b.WriteString("\n")
	b.WriteString(helpLine("j / k / ↑ / ↓", "Move up/down"))
	b.WriteString(helpLine("h / l / ← / →", "Previous/next page"))
	b.WriteString(helpLine("c", "Copy selected session id"))
	b.WriteString(helpLine("esc", "Back to dashboard"))
	b.WriteString("\n")

	// Sync section
	b.WriteString(styles.SectionLabel.Render("Sync"))
	b.WriteString("\n")
	b.WriteString(helpLine("esc", "Cancel a running sync"))
	b.WriteString(helpLine("s", "Run again"))
	b.WriteString("\n")

	// General section
	b.WriteString(styles.SectionLabel.Render("General"))
	b.WriteString("\n")
	b.WriteString(helpLine("?", "Toggle help"))
	b.WriteString(helpLine("q / Ctrl+C", "Quit"))
	b.WriteString("\n\n")

	b.WriteString(styles.MutedText.Render("Exports and Toggl reports live in quelf-cli."))
	b.WriteString("\n\n")

	// Close hint
	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 20)) + styles.HelpDesc.Render(desc) + "\n"
}
