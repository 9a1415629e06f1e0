package views

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/JakobGM/quelf/internal/adapters/tui/styles"
	"github.com/JakobGM/quelf/internal/application/commands"
	"github.com/JakobGM/quelf/internal/domain"
	"github.com/JakobGM/quelf/internal/ports"
)

// SessionsKeyMap defines key bindings for the sessions browser
type SessionsKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Copy     key.Binding
	Reload   key.Binding
	Back     key.Binding
	Quit     key.Binding
}

var SessionsKeys = SessionsKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("h", "left", "pgup"),
		key.WithHelp("h/←", "previous page"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("l", "right", "pgdown"),
		key.WithHelp("l/→", "next page"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy id"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// SessionsModel is the model for the paginated sessions browser
type SessionsModel struct {
	ViewState
	store     ports.SessionStore
	records   []domain.SleepRecord // newest first
	paginator *Paginator
}

// NewSessionsModel creates a new sessions browser model
func NewSessionsModel(store ports.SessionStore) *SessionsModel {
	return &SessionsModel{
		store:     store,
		paginator: NewPaginator(15),
	}
}

// Init initializes the sessions browser
func (m *SessionsModel) Init() tea.Cmd {
	return m.loadSessions
}

func (m *SessionsModel) loadSessions() tea.Msg {
	records, err := commands.NewListSessionsCommand(m.store, 0).Execute(context.Background())
	if err != nil {
		return errMsg{err}
	}
	return sessionsLoadedMsg{records}
}

type sessionsLoadedMsg struct {
	records []domain.SleepRecord
}

// Update handles messages for the sessions browser
func (m *SessionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionsLoadedMsg:
		m.records = msg.records
		m.paginator.SetTotal(len(m.records))
		return m, nil

	case errMsg:
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()

		switch {
		case key.Matches(msg, SessionsKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, SessionsKeys.Back):
			return m, func() tea.Msg {
				return SwitchToDashboardMsg{}
			}

		case key.Matches(msg, SessionsKeys.Up):
			m.paginator.CursorUp()
			return m, nil

		case key.Matches(msg, SessionsKeys.Down):
			m.paginator.CursorDown()
			return m, nil

		case key.Matches(msg, SessionsKeys.PrevPage):
			m.paginator.PrevPage()
			return m, nil

		case key.Matches(msg, SessionsKeys.NextPage):
			m.paginator.NextPage()
			return m, nil

		case key.Matches(msg, SessionsKeys.Copy):
			if rec, ok := m.selectedRecord(); ok {
				if err := clipboard.WriteAll(strconv.Itoa(rec.ID)); err != nil {
					m.SetMessage(fmt.Sprintf("Copy failed: %v", err), true)
				} else {
					m.SetMessage(fmt.Sprintf("Copied session id %d", rec.ID), false)
				}
			}
			return m, nil

		case key.Matches(msg, SessionsKeys.Reload):
			return m, m.Reload()
		}
	}

	return m, nil
}

func (m *SessionsModel) selectedRecord() (domain.SleepRecord, bool) {
	cursor := m.paginator.Cursor()
	if cursor < 0 || cursor >= len(m.records) {
		return domain.SleepRecord{}, false
	}
	return m.records[cursor], true
}

// View renders the sessions browser
func (m *SessionsModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Sessions"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render("Newest first"))
	b.WriteString("\n\n")

	if len(m.records) == 0 {
		b.WriteString(styles.MutedText.Render("No sessions cached. Press s on the dashboard to sync."))
	} else {
		start, end := m.paginator.VisibleRange()
		for i := start; i < end; i++ {
			b.WriteString(m.renderRecord(m.records[i], i == m.paginator.Cursor()))
			b.WriteString("\n")
		}

		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("page %d/%d  (%d sessions)",
			m.paginator.CurrentPage(), m.paginator.TotalPages(), len(m.records))))
	}

	if m.Message != "" {
		b.WriteString("\n\n")
		b.WriteString(renderMessage(m.Message, m.MessageErr))
	}

	b.WriteString("\n\n")
	b.WriteString(renderHelpLine([]helpEntry{
		{"j/k", "navigate"},
		{"h/l", "pages"},
		{"c", "copy id"},
		{"r", "reload"},
		{"esc", "back"},
		{"q", "quit"},
	}))

	return styles.App.Render(b.String())
}

func (m *SessionsModel) renderRecord(rec domain.SleepRecord, selected bool) string {
	text := recordLine(rec)

	if selected {
		return styles.RowSelected.Render(text)
	}
	if rec.Quality != nil {
		return styles.Row.Foreground(styles.QualityColor(*rec.Quality)).Render(text)
	}
	return styles.Row.Render(text)
}

// Reload reloads the sessions from the cache
func (m *SessionsModel) Reload() tea.Cmd {
	m.paginator.Reset()
	return m.loadSessions
}
