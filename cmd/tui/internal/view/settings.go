package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/auth"
	"github.com/MrJamesThe3rd/tally/internal/session"
)

// SettingsModel changes the account's currency symbol. The new symbol is
// stored on the account and pushed through the session so every open
// screen picks it up.
type SettingsModel struct {
	CommonModel
	authService *auth.Service
	session     *session.Session

	form   *huh.Form
	saving bool
	status string

	// Form bindings
	formSymbol string
}

func NewSettingsModel(authSvc *auth.Service, sess *session.Session) SettingsModel {
	m := SettingsModel{
		authService: authSvc,
		session:     sess,
		formSymbol:  sess.Current().CurrencySymbol,
	}
	m.form = m.newForm()

	return m
}

func (m *SettingsModel) newForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("currency").
				Title("Currency").
				Options(
					huh.NewOption("Euro (€)", "€"),
					huh.NewOption("US Dollar ($)", "$"),
					huh.NewOption("British Pound (£)", "£"),
					huh.NewOption("Japanese Yen (¥)", "¥"),
					huh.NewOption("Swiss Franc (CHF)", "CHF"),
					huh.NewOption("Polish Złoty (zł)", "zł"),
				).
				Value(&m.formSymbol),
		),
	).WithWidth(40).WithShowHelp(false)
}

func (m SettingsModel) Title() string     { return "Settings" }
func (m SettingsModel) ShortHelp() string { return "Enter: save | Esc: back" }

func (m SettingsModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case currencySavedMsg:
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

	if m.saving {
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

func (m SettingsModel) View() string {
	if m.saving {
		return lipgloss.NewStyle().Padding(2).Render("Saving...")
	}

	content := "Settings\n\n" + m.form.View()
	if m.status != "" {
		content = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(m.status) + "\n\n" + content
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

type currencySavedMsg struct {
	err error
}

func (m SettingsModel) saveCmd() tea.Cmd {
	symbol := m.form.GetString("currency")

	return func() tea.Msg {
		state := m.session.Current()
		if state.User == nil {
			return currencySavedMsg{err: fmt.Errorf("not signed in")}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.authService.UpdateCurrencySymbol(ctx, state.User.ID, symbol); err != nil {
			return currencySavedMsg{err: err}
		}

		m.session.SetCurrencySymbol(symbol)

		return currencySavedMsg{}
	}
}
