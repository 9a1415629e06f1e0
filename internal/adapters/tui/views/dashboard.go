package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/JakobGM/quelf/internal/adapters/tui/styles"
	"github.com/JakobGM/quelf/internal/application/commands"
	"github.com/JakobGM/quelf/internal/ports"
)

// DashboardKeyMap defines key bindings for the dashboard view
type DashboardKeyMap struct {
	Sessions key.Binding
	Sync     key.Binding
	Reload   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var DashboardKeys = DashboardKeyMap{
	Sessions: key.NewBinding(
		key.WithKeys("l", "enter"),
		key.WithHelp("l", "sessions"),
	),
	Sync: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sync"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// DashboardModel is the model for the cache overview view
type DashboardModel struct {
	ViewState
	store  ports.SessionStore
	status *commands.StatusResult
}

// NewDashboardModel creates a new dashboard view model
func NewDashboardModel(store ports.SessionStore) *DashboardModel {
	return &DashboardModel{store: store}
}

// Init initializes the dashboard
func (m *DashboardModel) Init() tea.Cmd {
	return m.loadStatus
}

func (m *DashboardModel) loadStatus() tea.Msg {
	result, err := commands.NewStatusCommand(m.store).Execute(context.Background())
	if err != nil {
		return errMsg{err}
	}
	return statusLoadedMsg{result}
}

type statusLoadedMsg struct {
	status *commands.StatusResult
}

// Update handles messages for the dashboard
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statusLoadedMsg:
		m.status = msg.status
		return m, nil

	case errMsg:
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()

		switch {
		case key.Matches(msg, DashboardKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, DashboardKeys.Sessions):
			return m, func() tea.Msg {
				return SwitchToSessionsMsg{}
			}

		case key.Matches(msg, DashboardKeys.Sync):
			return m, func() tea.Msg {
				return SwitchToSyncMsg{}
			}

		case key.Matches(msg, DashboardKeys.Reload):
			return m, m.loadStatus

		case key.Matches(msg, DashboardKeys.Help):
			return m, func() tea.Msg {
				return SwitchToHelpMsg{}
			}
		}
	}

	return m, nil
}

// View renders the dashboard
func (m *DashboardModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("quelf"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render("Sleep data toolkit"))
	b.WriteString("\n\n")

	if m.status == nil {
		b.WriteString(styles.MutedText.Render("Loading..."))
	} else {
		b.WriteString(m.renderStats())
	}

	if m.Message != "" {
		b.WriteString("\n\n")
		b.WriteString(renderMessage(m.Message, m.MessageErr))
	}

	b.WriteString("\n\n")
	b.WriteString(renderHelpLine([]helpEntry{
		{"l", "sessions"},
		{"s", "sync"},
		{"r", "reload"},
		{"?", "help"},
		{"q", "quit"},
	}))

	return styles.App.Render(b.String())
}

func (m *DashboardModel) renderStats() string {
	var b strings.Builder

	statLine(&b, "Sessions cached", fmt.Sprintf("%d", m.status.Sessions))
	if m.status.Sessions > 0 {
		statLine(&b, "Session ids", fmt.Sprintf("%d..%d", m.status.FirstID, m.status.NewestID))
		statLine(&b, "First night", formatStart(m.status.FirstStart))
		statLine(&b, "Newest night", formatStart(m.status.NewestStart))
	}
	statLine(&b, "Cache file", m.status.Path)

	return b.String()
}

func statLine(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "%s %s\n",
		styles.StatLabel.Render(padRight(label, 18)),
		styles.StatValue.Render(value))
}
