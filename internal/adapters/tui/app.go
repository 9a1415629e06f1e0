package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/JakobGM/quelf/internal/adapters/tui/views"
	"github.com/JakobGM/quelf/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewDashboard ViewState = iota
	ViewSessions
	ViewSync
	ViewHelp
)

// App is the main TUI application model
type App struct {
	store  ports.SessionStore
	source ports.SessionSource

	state     ViewState
	dashboard *views.DashboardModel
	sessions  *views.SessionsModel
	sync      *views.SyncModel
	help      *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application
func NewApp(store ports.SessionStore, source ports.SessionSource) *App {
	return &App{
		store:     store,
		source:    source,
		state:     ViewDashboard,
		dashboard: views.NewDashboardModel(store),
		sessions:  views.NewSessionsModel(store),
		sync:      views.NewSyncModel(store, source),
		help:      views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.dashboard.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.dashboard.SetSize(msg.Width, msg.Height)
		a.sessions.SetSize(msg.Width, msg.Height)
		a.sync.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.SwitchToSessionsMsg:
		a.state = ViewSessions
		return a, a.sessions.Reload()

	case views.SwitchToSyncMsg:
		a.state = ViewSync
		return a, a.sync.Start()

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToDashboardMsg:
		a.state = ViewDashboard
		return a, a.dashboard.Init()
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewDashboard:
		_, cmd = a.dashboard.Update(msg)
	case ViewSessions:
		_, cmd = a.sessions.Update(msg)
	case ViewSync:
		_, cmd = a.sync.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewSessions:
		return a.sessions.View()
	case ViewSync:
		return a.sync.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.dashboard.View()
	}
}
