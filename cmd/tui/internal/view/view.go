package view

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/tally/internal/session"
)

// View is the interface that all TUI screens implement.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

// CommonModel is embedded by all views.
type CommonModel struct{}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// SessionChangedMsg is delivered whenever the session notifies its
// subscribers, carrying the new identity and currency preference.
type SessionChangedMsg struct {
	State session.State
}
