package views

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/JakobGM/quelf/internal/adapters/tui/styles"
	"github.com/JakobGM/quelf/internal/application"
	"github.com/JakobGM/quelf/internal/domain"
	"github.com/JakobGM/quelf/internal/ports"
)

// SyncKeyMap defines key bindings for the sync view
type SyncKeyMap struct {
	Again key.Binding
	Back  key.Binding
	Quit  key.Binding
}

var SyncKeys = SyncKeyMap{
	Again: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sync again"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back/cancel"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// SyncState represents the lifecycle of one sync run
type SyncState int

const (
	SyncRunning SyncState = iota
	SyncDone
	SyncFailed
)

// SyncModel is the model for the sync view. Each run wires a fresh walker
// whose progress callback feeds the view through a channel.
type SyncModel struct {
	ViewState
	store  ports.SessionStore
	source ports.SessionSource

	state    SyncState
	spinner  spinner.Model
	progress progress.Model

	done     int
	expected int
	lastID   int
	stats    domain.WalkStats
	err      error

	updates chan syncProgressMsg
	cancel  context.CancelFunc
}

// NewSyncModel creates a new sync view model
func NewSyncModel(store ports.SessionStore, source ports.SessionSource) *SyncModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	return &SyncModel{
		store:    store,
		source:   source,
		spinner:  s,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
}

// Init initializes the sync view
func (m *SyncModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Start begins a sync run
func (m *SyncModel) Start() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.state = SyncRunning
	m.done = 0
	m.expected = 0
	m.lastID = 0
	m.err = nil
	m.ClearMessage()
	m.updates = make(chan syncProgressMsg, 64)

	updates := m.updates
	walker := application.NewSessionWalker(m.store, m.source,
		application.WithProgress(func(done, expected int, s domain.Session) {
			// Never block the walker on a slow display
			select {
			case updates <- syncProgressMsg{done: done, expected: expected, id: s.ID}:
			default:
			}
		}))

	return tea.Batch(
		m.spinner.Tick,
		runWalk(ctx, walker, updates),
		waitForProgress(updates),
	)
}

type syncProgressMsg struct {
	done     int
	expected int
	id       int
}

type syncDoneMsg struct {
	stats domain.WalkStats
	err   error
}

func runWalk(ctx context.Context, walker *application.SessionWalker, updates chan syncProgressMsg) tea.Cmd {
	return func() tea.Msg {
		stats, err := walker.Run(ctx)
		close(updates)
		return syncDoneMsg{stats: stats, err: err}
	}
}

// waitForProgress relays one progress update from the walker. The handler
// re-arms it until the channel is closed.
func waitForProgress(updates chan syncProgressMsg) tea.Cmd {
	return func() tea.Msg {
		p, ok := <-updates
		if !ok {
			return nil
		}
		return p
	}
}

// Update handles messages for the sync view
func (m *SyncModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.state != SyncRunning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case syncProgressMsg:
		m.done = msg.done
		m.expected = msg.expected
		m.lastID = msg.id
		return m, waitForProgress(m.updates)

	case syncDoneMsg:
		m.cancel()
		m.stats = msg.stats
		m.err = msg.err
		if msg.err != nil {
			m.state = SyncFailed
		} else {
			m.state = SyncDone
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, SyncKeys.Quit):
			if m.state == SyncRunning {
				m.cancel()
			}
			return m, tea.Quit

		case key.Matches(msg, SyncKeys.Back):
			if m.state == SyncRunning {
				// Cancel and wait for the walker to wind down
				m.cancel()
				return m, nil
			}
			return m, func() tea.Msg {
				return SwitchToDashboardMsg{}
			}

		case key.Matches(msg, SyncKeys.Again):
			if m.state != SyncRunning {
				return m, m.Start()
			}
			return m, nil
		}
	}

	return m, nil
}

// View renders the sync view
func (m *SyncModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Sync"))
	b.WriteString("\n\n")

	switch m.state {
	case SyncRunning:
		b.WriteString(m.spinner.View())
		b.WriteString(" Fetching sessions...")
		b.WriteString("\n\n")
		b.WriteString(m.progress.ViewAs(m.percent()))
		b.WriteString("\n\n")
		if m.done > 0 {
			b.WriteString(styles.MutedText.Render(
				fmt.Sprintf("fetched session %d (%d/%d)", m.lastID, m.done, m.expected)))
		} else {
			b.WriteString(styles.MutedText.Render("Contacting the service..."))
		}
		b.WriteString("\n\n")
		b.WriteString(renderHelpLine([]helpEntry{
			{"esc", "cancel"},
			{"q", "quit"},
		}))

	case SyncDone:
		if m.stats.Fetched == 0 {
			b.WriteString(styles.Success.Render(
				fmt.Sprintf("Cache is up to date (%d sessions)", m.stats.Total())))
		} else {
			b.WriteString(styles.Success.Render(
				fmt.Sprintf("Fetched %d new sessions (%d total cached) in %s",
					m.stats.Fetched, m.stats.Total(), m.stats.Duration.Round(time.Millisecond))))
		}
		b.WriteString("\n\n")
		b.WriteString(renderHelpLine([]helpEntry{
			{"s", "sync again"},
			{"esc", "back"},
			{"q", "quit"},
		}))

	case SyncFailed:
		if errors.Is(m.err, context.Canceled) {
			b.WriteString(styles.Success.Render(
				fmt.Sprintf("Sync cancelled, %d sessions fetched before stopping", m.stats.Fetched)))
		} else {
			b.WriteString(styles.ErrorMsg.Render(fmt.Sprintf("Sync failed: %v", m.err)))
			if m.stats.Fetched > 0 {
				b.WriteString("\n")
				b.WriteString(styles.MutedText.Render(
					fmt.Sprintf("%d sessions were fetched and cached before the failure", m.stats.Fetched)))
			}
		}
		b.WriteString("\n\n")
		b.WriteString(renderHelpLine([]helpEntry{
			{"s", "retry"},
			{"esc", "back"},
			{"q", "quit"},
		}))
	}

	return styles.App.Render(b.String())
}

// percent reports walk completion for the progress bar. The expected count
// is an estimate from the walk bounds, so the value is clamped.
func (m *SyncModel) percent() float64 {
	if m.expected <= 0 {
		return 0
	}
	p := float64(m.done) / float64(m.expected)
	if p > 1 {
		p = 1
	}
	return p
}
