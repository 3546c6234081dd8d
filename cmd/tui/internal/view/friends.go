package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
	"github.com/MrJamesThe3rd/tally/internal/session"
)

type friendsState int

const (
	friendsStateBrowse friendsState = iota
	friendsStateAdd
	friendsStateDetail
)

// FriendsModel lists the user's people with their running totals, lets
// them add a new friend, and opens a per-friend detail with the debt
// history chart.
type FriendsModel struct {
	CommonModel
	ledgerService *ledger.Service
	session       *session.Session

	state  friendsState
	table  table.Model
	people []*ledger.Person
	form   *huh.Form

	// Detail state
	detail        *ledger.Person
	detailHistory []ledger.HistoryPoint
	detailDebts   []*ledger.Debt

	loading bool
	err     error
	status  string

	// Form bindings
	formName string
}

func NewFriendsModel(ledgerSvc *ledger.Service, sess *session.Session) FriendsModel {
	columns := []table.Column{
		{Title: "Name", Width: 24},
		{Title: "Total Owed", Width: 14},
		{Title: "Since", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return FriendsModel{
		ledgerService: ledgerSvc,
		session:       sess,
		table:         t,
		loading:       true,
	}
}

func (m FriendsModel) Title() string { return "Friends" }
func (m FriendsModel) ShortHelp() string {
	switch m.state {
	case friendsStateAdd:
		return "Navigate form | Esc: cancel"
	case friendsStateDetail:
		return "Esc: back to list"
	}

	return "Esc: back | enter: detail | a: add friend | r: refresh"
}

func (m FriendsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m FriendsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadFriendsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.people = msg.people
		m.refreshTable()
		return m, nil

	case friendSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		} else {
			m.status = ""
		}
		m.state = friendsStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadCmd()

	case loadDetailMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			m.state = friendsStateBrowse
			return m, nil
		}
		m.detail = msg.person
		m.detailHistory = msg.history
		m.detailDebts = msg.debts
		m.state = friendsStateDetail
		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case friendsStateBrowse:
		return m.updateBrowse(msg)
	case friendsStateAdd:
		return m.updateAdd(msg)
	case friendsStateDetail:
		return m.updateDetail(msg)
	}

	return m, nil
}

func (m FriendsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "a":
			return m.enterAddMode()
		case "enter":
			idx := m.table.Cursor()
			if idx >= 0 && idx < len(m.people) {
				return m, m.loadDetailCmd(m.people[idx])
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m FriendsModel) enterAddMode() (tea.Model, tea.Cmd) {
	m.formName = ""
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Friend's name").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),
		),
	).WithWidth(40).WithShowHelp(false)

	m.state = friendsStateAdd
	m.table.Blur()
	return m, m.form.Init()
}

func (m FriendsModel) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = friendsStateBrowse
			m.form = nil
			m.table.Focus()
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m FriendsModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = friendsStateBrowse
			m.detail = nil
			m.table.Focus()
			return m, nil
		}
	}

	return m, nil
}

func (m FriendsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading friends...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	if m.state == friendsStateDetail && m.detail != nil {
		return m.viewDetail()
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	if m.state == friendsStateAdd && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(44).
			Render("Add Friend\n\n" + m.form.View())

		tableView = lipgloss.JoinHorizontal(lipgloss.Top, tableView, panel)
	}

	if m.status != "" {
		tableView = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + tableView
	}

	return lipgloss.NewStyle().Padding(1).Render(tableView)
}

func (m FriendsModel) viewDetail() string {
	symbol := m.session.Current().CurrencySymbol

	header := lipgloss.NewStyle().Bold(true).Render(m.detail.Name) +
		"\n" + chartLabelStyle.Render("Total owed: "+FormatAmount(m.detail.TotalOwed, symbol))

	chart := renderChart(m.detailHistory, symbol, 30)

	var recent strings.Builder

	for _, d := range m.detailDebts {
		status := ""
		if d.Paid {
			status = " (paid)"
		}

		desc := d.Description
		if desc == "" {
			desc = "-"
		}

		fmt.Fprintf(&recent, "%s  %s  %s%s\n",
			FormatDate(d.CreatedAt), FormatAmount(d.Amount, symbol), desc, status)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		chart,
		"",
		lipgloss.NewStyle().Bold(true).Render("Debts"),
		recent.String(),
	)

	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

func (m *FriendsModel) refreshTable() {
	symbol := m.session.Current().CurrencySymbol

	rows := make([]table.Row, 0, len(m.people))
	for _, p := range m.people {
		rows = append(rows, table.Row{
			p.Name,
			FormatAmount(p.TotalOwed, symbol),
			FormatDate(p.CreatedAt),
		})
	}

	m.table.SetRows(rows)
}

// Messages

type loadFriendsMsg struct {
	people []*ledger.Person
	err    error
}

func (m FriendsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		state := m.session.Current()
		if state.User == nil {
			return loadFriendsMsg{err: fmt.Errorf("not signed in")}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		people, err := m.ledgerService.ListPeople(ctx, state.User.ID)

		return loadFriendsMsg{people: people, err: err}
	}
}

type friendSavedMsg struct {
	err error
}

func (m FriendsModel) saveCmd() tea.Cmd {
	name := strings.TrimSpace(m.form.GetString("name"))

	return func() tea.Msg {
		state := m.session.Current()
		if state.User == nil {
			return friendSavedMsg{err: fmt.Errorf("not signed in")}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.ledgerService.AddPerson(ctx, state.User.ID, name)

		return friendSavedMsg{err: err}
	}
}

type loadDetailMsg struct {
	person  *ledger.Person
	history []ledger.HistoryPoint
	debts   []*ledger.Debt
	err     error
}

func (m FriendsModel) loadDetailCmd(p *ledger.Person) tea.Cmd {
	id := p.ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		person, err := m.ledgerService.GetPerson(ctx, id)
		if err != nil {
			return loadDetailMsg{err: err}
		}

		history, err := m.ledgerService.History(ctx, id)
		if err != nil {
			return loadDetailMsg{err: err}
		}

		debts, err := m.ledgerService.DebtsForPerson(ctx, id)
		if err != nil {
			return loadDetailMsg{err: err}
		}

		return loadDetailMsg{person: person, history: history, debts: debts}
	}
}
