package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
	"github.com/MrJamesThe3rd/tally/internal/session"
)

// HomeModel shows how much the user is still waiting to receive.
type HomeModel struct {
	CommonModel
	ledgerService *ledger.Service
	session       *session.Session

	outstanding decimal.Decimal
	loading     bool
	err         error
}

func NewHomeModel(ledgerSvc *ledger.Service, sess *session.Session) HomeModel {
	return HomeModel{
		ledgerService: ledgerSvc,
		session:       sess,
		loading:       true,
	}
}

func (m HomeModel) Title() string     { return "Overview" }
func (m HomeModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m HomeModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m HomeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadHomeMsg:
		m.loading = false
		m.outstanding = msg.outstanding
		m.err = msg.err

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m HomeModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	if m.outstanding.IsZero() {
		style = style.Foreground(lipgloss.Color("40"))
	}

	amount := style.Render(FormatAmount(m.outstanding, m.session.Current().CurrencySymbol))

	return lipgloss.NewStyle().Padding(2).Render(
		"You're still waiting to receive:\n\n" + amount,
	)
}

type loadHomeMsg struct {
	outstanding decimal.Decimal
	err         error
}

func (m HomeModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		state := m.session.Current()
		if state.User == nil {
			return loadHomeMsg{err: fmt.Errorf("not signed in")}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		total, err := m.ledgerService.Outstanding(ctx, state.User.ID)

		return loadHomeMsg{outstanding: total, err: err}
	}
}
