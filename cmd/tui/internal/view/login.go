package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/auth"
	"github.com/MrJamesThe3rd/tally/internal/session"
)

type loginMode int

const (
	modeSignIn loginMode = iota
	modeSignUp
)

type LoginModel struct {
	CommonModel
	authService *auth.Service
	session     *session.Session

	mode loginMode
	form *huh.Form

	busy   bool
	status string

	// Form bindings
	formEmail    string
	formPassword string
}

func NewLoginModel(authSvc *auth.Service, sess *session.Session) LoginModel {
	m := LoginModel{
		authService: authSvc,
		session:     sess,
	}
	m.form = m.newForm()

	return m
}

func (m LoginModel) Title() string { return "Sign In" }
func (m LoginModel) ShortHelp() string {
	return "Tab: switch sign in/sign up | Ctrl+C: quit"
}

func (m *LoginModel) newForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("email").
				Title("Email").
				Value(&m.formEmail).
				Validate(func(s string) error {
					if !strings.Contains(s, "@") {
						return fmt.Errorf("enter a valid email address")
					}
					return nil
				}),

			huh.NewInput().
				Key("password").
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.formPassword).
				Validate(func(s string) error {
					if len(s) < 6 {
						return fmt.Errorf("password must be at least 6 characters")
					}
					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m LoginModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			m.formPassword = ""
			m.form = m.newForm()

			return m, m.form.Init()
		}
		// Session subscribers take it from here.
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "tab" && !m.busy {
			if m.mode == modeSignIn {
				m.mode = modeSignUp
			} else {
				m.mode = modeSignIn
			}

			return m, nil
		}
	}

	if m.busy {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.busy = true
	m.status = ""

	return m, m.submitCmd()
}

func (m LoginModel) View() string {
	heading := "Sign In"
	if m.mode == modeSignUp {
		heading = "Sign Up"
	}

	if m.busy {
		return lipgloss.NewStyle().Padding(2).Render(heading + "...\n\nPlease wait")
	}

	content := fmt.Sprintf("Tally | %s\n\n%s\n\n[Tab] switch to %s",
		heading,
		m.form.View(),
		map[loginMode]string{modeSignIn: "sign up", modeSignUp: "sign in"}[m.mode],
	)

	if m.status != "" {
		content = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(m.status) + "\n\n" + content
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

type loginDoneMsg struct {
	err error
}

func (m LoginModel) submitCmd() tea.Cmd {
	mode := m.mode
	email := m.form.GetString("email")
	password := m.form.GetString("password")

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if mode == modeSignUp {
			if _, err := m.authService.Register(ctx, email, password); err != nil {
				return loginDoneMsg{err: err}
			}
		}

		_, u, err := m.authService.Login(ctx, email, password)
		if err != nil {
			return loginDoneMsg{err: err}
		}

		m.session.SetCurrencySymbol(u.CurrencySymbol)
		m.session.SetUser(&session.User{ID: u.ID, Email: u.Email})

		return loginDoneMsg{}
	}
}
