package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/JakobGM/quelf/internal/adapters/tui/styles"
	"github.com/JakobGM/quelf/internal/domain"
)

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// Messages for view switching
type SwitchToDashboardMsg struct{}

type SwitchToSessionsMsg struct{}

type SwitchToSyncMsg struct{}

type SwitchToHelpMsg struct{}

type errMsg struct {
	err error
}

// formatStart renders a session start time for listings.
func formatStart(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("Mon 2006-01-02 15:04")
}

// formatInBed renders a time-in-bed duration as hours and minutes.
func formatInBed(d *time.Duration) string {
	if d == nil {
		return "-"
	}
	total := int(d.Minutes())
	return fmt.Sprintf("%dh%02dm", total/60, total%60)
}

// formatQuality renders a sleep quality as a percentage.
func formatQuality(q *float64) string {
	if q == nil {
		return "-"
	}
	return fmt.Sprintf("%.0f%%", *q*100)
}

// recordLine renders one flattened session as a fixed-width listing line.
func recordLine(rec domain.SleepRecord) string {
	return fmt.Sprintf("%6d  %-20s  %7s  %5s",
		rec.ID, formatStart(rec.Start), formatInBed(rec.TimeInBed), formatQuality(rec.Quality))
}

// helpEntry is one key/description pair on a view's help line.
type helpEntry struct {
	key  string
	desc string
}

// renderHelpLine renders key hints separated by bullets
func renderHelpLine(entries []helpEntry) string {
	var parts []string
	for _, e := range entries {
		parts = append(parts, fmt.Sprintf("%s %s",
			styles.HelpKey.Render(e.key),
			styles.HelpDesc.Render(e.desc),
		))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

// renderMessage renders a message with appropriate styling based on isError
func renderMessage(message string, isError bool) string {
	if message == "" {
		return ""
	}
	if isError {
		return styles.ErrorMsg.Render(message)
	}
	return styles.Success.Render(message)
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
