package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
	"github.com/MrJamesThe3rd/tally/internal/session"
)

// DebtsModel lists the user's debts, newest first, with toggling and
// deletion.
type DebtsModel struct {
	CommonModel
	ledgerService *ledger.Service
	session       *session.Session

	table   table.Model
	debts   []*ledger.Debt
	names   map[uuid.UUID]string
	loading bool
	err     error
	status  string
}

func NewDebtsModel(ledgerSvc *ledger.Service, sess *session.Session) DebtsModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Friend", Width: 20},
		{Title: "Amount", Width: 12},
		{Title: "Description", Width: 30},
		{Title: "Paid", Width: 6},
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

	return DebtsModel{
		ledgerService: ledgerSvc,
		session:       sess,
		table:         t,
		loading:       true,
	}
}

func (m DebtsModel) Title() string { return "Debts" }
func (m DebtsModel) ShortHelp() string {
	return "Esc: back | p: toggle paid | x: delete | r: refresh"
}

func (m DebtsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DebtsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadDebtsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.debts = msg.debts
		m.names = msg.names
		m.refreshTable()
		return m, nil

	case debtMutatedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = ""
		}
		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "p":
			if d := m.selected(); d != nil {
				return m, m.togglePaidCmd(d)
			}
		case "x":
			if d := m.selected(); d != nil {
				return m, m.deleteCmd(d.ID)
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m DebtsModel) selected() *ledger.Debt {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.debts) {
		return nil
	}

	return m.debts[idx]
}

func (m DebtsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading debts...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	if m.status != "" {
		tableView = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + tableView
	}

	return lipgloss.NewStyle().Padding(1).Render(tableView)
}

func (m *DebtsModel) refreshTable() {
	symbol := m.session.Current().CurrencySymbol

	rows := make([]table.Row, 0, len(m.debts))

	for _, d := range m.debts {
		paid := ""
		if d.Paid {
			paid = "yes"
		}

		rows = append(rows, table.Row{
			FormatDate(d.CreatedAt),
			m.names[d.PersonID],
			FormatAmount(d.Amount, symbol),
			d.Description,
			paid,
		})
	}

	m.table.SetRows(rows)
}

// Messages

type loadDebtsMsg struct {
	debts []*ledger.Debt
	names map[uuid.UUID]string
	err   error
}

func (m DebtsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		state := m.session.Current()
		if state.User == nil {
			return loadDebtsMsg{err: fmt.Errorf("not signed in")}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		debts, err := m.ledgerService.ListDebts(ctx, state.User.ID)
		if err != nil {
			return loadDebtsMsg{err: err}
		}

		people, err := m.ledgerService.ListPeople(ctx, state.User.ID)
		if err != nil {
			return loadDebtsMsg{err: err}
		}

		names := make(map[uuid.UUID]string, len(people))
		for _, p := range people {
			names[p.ID] = p.Name
		}

		return loadDebtsMsg{debts: debts, names: names}
	}
}

type debtMutatedMsg struct {
	err error
}

func (m DebtsModel) togglePaidCmd(d *ledger.Debt) tea.Cmd {
	id := d.ID
	paid := d.Paid

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		var err error
		if paid {
			err = m.ledgerService.MarkUnpaid(ctx, id)
		} else {
			_, err = m.ledgerService.MarkPaid(ctx, id)
		}

		return debtMutatedMsg{err: err}
	}
}

func (m DebtsModel) deleteCmd(id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return debtMutatedMsg{err: m.ledgerService.DeleteDebt(ctx, id)}
	}
}
