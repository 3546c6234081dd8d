package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
	"github.com/MrJamesThe3rd/tally/internal/session"
)

// NewDebtModel records a new debt against one of the user's friends.
// Amount and friend selection are validated here; the ledger itself
// trusts its callers.
type NewDebtModel struct {
	CommonModel
	ledgerService *ledger.Service
	session       *session.Session

	form    *huh.Form
	people  []*ledger.Person
	loading bool
	saving  bool
	err     error
	status  string

	// Form bindings
	formPersonID string
	formAmount   string
	formDesc     string
}

func NewNewDebtModel(ledgerSvc *ledger.Service, sess *session.Session) NewDebtModel {
	return NewDebtModel{
		ledgerService: ledgerSvc,
		session:       sess,
		loading:       true,
	}
}

func (m NewDebtModel) Title() string     { return "New Debt" }
func (m NewDebtModel) ShortHelp() string { return "Navigate form | Esc: cancel" }

func (m NewDebtModel) Init() tea.Cmd {
	return m.loadPeopleCmd()
}

func (m NewDebtModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case newDebtPeopleMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.people = msg.people
		m.form = m.newForm()
		return m, m.form.Init()

	case debtSavedMsg:
		m.saving = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			m.form = m.newForm()

			return m, m.form.Init()
		}

		return m, Back

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc && !m.saving {
			return m, Back
		}
	}

	if m.loading || m.saving || m.form == nil {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.saving = true

	return m, m.saveCmd()
}

func (m *NewDebtModel) newForm() *huh.Form {
	options := make([]huh.Option[string], 0, len(m.people))
	for _, p := range m.people {
		options = append(options, huh.NewOption(p.Name, p.ID.String()))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("person").
				Title("Who owes you?").
				Options(options...).
				Value(&m.formPersonID),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("25.00").
				Value(&m.formAmount).
				Validate(func(s string) error {
					amount, err := decimal.NewFromString(strings.TrimSpace(s))
					if err != nil {
						return fmt.Errorf("amount must be a number")
					}
					if amount.IsZero() {
						return fmt.Errorf("amount cannot be zero")
					}
					return nil
				}),

			huh.NewInput().
				Key("description").
				Title("Description (optional)").
				Value(&m.formDesc),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m NewDebtModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading friends...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	if len(m.people) == 0 {
		return lipgloss.NewStyle().Padding(2).Render(
			"No friends yet.\n\nAdd one from the Friends screen first.\n\nEsc: back",
		)
	}

	if m.saving {
		return lipgloss.NewStyle().Padding(2).Render("Saving debt...")
	}

	content := "New Debt\n\n" + m.form.View()
	if m.status != "" {
		content = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(m.status) + "\n\n" + content
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

// Messages

type newDebtPeopleMsg struct {
	people []*ledger.Person
	err    error
}

func (m NewDebtModel) loadPeopleCmd() tea.Cmd {
	return func() tea.Msg {
		state := m.session.Current()
		if state.User == nil {
			return newDebtPeopleMsg{err: fmt.Errorf("not signed in")}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		people, err := m.ledgerService.ListPeople(ctx, state.User.ID)

		return newDebtPeopleMsg{people: people, err: err}
	}
}

type debtSavedMsg struct {
	err error
}

func (m NewDebtModel) saveCmd() tea.Cmd {
	personID := m.form.GetString("person")
	amountStr := strings.TrimSpace(m.form.GetString("amount"))
	desc := strings.TrimSpace(m.form.GetString("description"))

	return func() tea.Msg {
		state := m.session.Current()
		if state.User == nil {
			return debtSavedMsg{err: fmt.Errorf("not signed in")}
		}

		id, err := uuid.Parse(personID)
		if err != nil {
			return debtSavedMsg{err: fmt.Errorf("select a friend")}
		}

		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return debtSavedMsg{err: fmt.Errorf("amount must be a number")}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		_, err = m.ledgerService.CreateDebt(ctx, ledger.CreateDebtParams{
			UserID:      state.User.ID,
			PersonID:    id,
			Amount:      amount,
			Description: desc,
		})

		return debtSavedMsg{err: err}
	}
}
