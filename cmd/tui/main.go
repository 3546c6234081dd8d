package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/tally/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/tally/internal/auth"
	authStore "github.com/MrJamesThe3rd/tally/internal/auth/store"
	"github.com/MrJamesThe3rd/tally/internal/config"
	"github.com/MrJamesThe3rd/tally/internal/database"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
	ledgerStore "github.com/MrJamesThe3rd/tally/internal/ledger/store"
	"github.com/MrJamesThe3rd/tally/internal/session"
)

type model struct {
	authService   *auth.Service
	ledgerService *ledger.Service
	session       *session.Session

	currentView View
	userEmail   string

	loginView    view.LoginModel
	homeView     view.HomeModel
	debtsView    view.DebtsModel
	friendsView  view.FriendsModel
	newDebtView  view.NewDebtModel
	settingsView view.SettingsModel
}

type View int

const (
	ViewLogin    View = 0
	ViewMenu     View = 1
	ViewHome     View = 2
	ViewDebts    View = 3
	ViewFriends  View = 4
	ViewNewDebt  View = 5
	ViewSettings View = 6
)

func initialModel(sess *session.Session) model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	authSvc := auth.NewService(authStore.New(db), cfg.Auth.Secret, cfg.Auth.TokenTTL)
	ledgerSvc := ledger.NewService(ledgerStore.New(db))

	return model{
		authService:   authSvc,
		ledgerService: ledgerSvc,
		session:       sess,
		currentView:   ViewLogin,
		loginView:     view.NewLoginModel(authSvc, sess),
	}
}

func (m model) Init() tea.Cmd {
	return m.loginView.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case view.SessionChangedMsg:
		if msg.State.User == nil {
			m.currentView = ViewLogin
			m.userEmail = ""
			m.loginView = view.NewLoginModel(m.authService, m.session)

			return m, m.loginView.Init()
		}

		m.userEmail = msg.State.User.Email
		if m.currentView == ViewLogin {
			m.currentView = ViewMenu
		}

		return m, nil

	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewHome
				m.homeView = view.NewHomeModel(m.ledgerService, m.session)

				return m, m.homeView.Init()
			case "2":
				m.currentView = ViewDebts
				m.debtsView = view.NewDebtsModel(m.ledgerService, m.session)

				return m, m.debtsView.Init()
			case "3":
				m.currentView = ViewFriends
				m.friendsView = view.NewFriendsModel(m.ledgerService, m.session)

				return m, m.friendsView.Init()
			case "4":
				m.currentView = ViewNewDebt
				m.newDebtView = view.NewNewDebtModel(m.ledgerService, m.session)

				return m, m.newDebtView.Init()
			case "5":
				m.currentView = ViewSettings
				m.settingsView = view.NewSettingsModel(m.authService, m.session)

				return m, m.settingsView.Init()
			case "o":
				m.session.SetUser(nil)
				return m, nil
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewLogin:
		var newModel tea.Model
		newModel, cmd = m.loginView.Update(msg)
		m.loginView = newModel.(view.LoginModel)
	case ViewHome:
		var newModel tea.Model
		newModel, cmd = m.homeView.Update(msg)
		m.homeView = newModel.(view.HomeModel)
	case ViewDebts:
		var newModel tea.Model
		newModel, cmd = m.debtsView.Update(msg)
		m.debtsView = newModel.(view.DebtsModel)
	case ViewFriends:
		var newModel tea.Model
		newModel, cmd = m.friendsView.Update(msg)
		m.friendsView = newModel.(view.FriendsModel)
	case ViewNewDebt:
		var newModel tea.Model
		newModel, cmd = m.newDebtView.Update(msg)
		m.newDebtView = newModel.(view.NewDebtModel)
	case ViewSettings:
		var newModel tea.Model
		newModel, cmd = m.settingsView.Update(msg)
		m.settingsView = newModel.(view.SettingsModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewLogin:
		return m.loginView.View()
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Tally | " + m.userEmail + "\n\n" +
				"1. Overview\n" +
				"2. Debts\n" +
				"3. Friends\n" +
				"4. New Debt\n" +
				"5. Settings\n\n" +
				"o. Sign Out\n" +
				"q. Quit",
		)
	case ViewHome:
		return m.homeView.View()
	case ViewDebts:
		return m.debtsView.View()
	case ViewFriends:
		return m.friendsView.View()
	case ViewNewDebt:
		return m.newDebtView.View()
	case ViewSettings:
		return m.settingsView.View()
	}

	return "Unknown View"
}

func main() {
	sess := session.New()
	p := tea.NewProgram(initialModel(sess))

	// Session changes (sign in/out, currency) are forwarded into the
	// program loop.
	unsubscribe := sess.Subscribe(func(state session.State) {
		p.Send(view.SessionChangedMsg{State: state})
	})
	defer unsubscribe()

	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
