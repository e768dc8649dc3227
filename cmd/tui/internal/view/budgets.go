package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/andrefarias/budgetmaster/internal/budget"
)

type BudgetsModel struct {
	CommonModel
	budgetService *budget.Service

	table   table.Model
	budgets []*budget.Budget
	visible []*budget.Budget

	statusFilterIdx int
	statusFilter    *budget.Status

	loading bool
	err     error
	status  string
}

func NewBudgetsModel(budgetSvc *budget.Service) BudgetsModel {
	columns := []table.Column{
		{Title: "Issued", Width: 12},
		{Title: "Customer", Width: 30},
		{Title: "Status", Width: 10},
		{Title: "Total", Width: 12},
		{Title: "Expires", Width: 12},
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

	return BudgetsModel{
		budgetService: budgetSvc,
		table:         t,
	}
}

func (m BudgetsModel) Title() string { return "Budgets" }

func (m BudgetsModel) ShortHelp() string {
	return "Esc: back | Enter: quote | s: status filter | a: approve | x: reject | r: refresh"
}

func (m BudgetsModel) Init() tea.Cmd {
	return m.loadBudgetsCmd()
}

func (m BudgetsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadBudgetsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.budgets = msg.budgets
		m.refreshTable()

		return m, nil

	case statusChangedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.status = fmt.Sprintf("Budget marked %s", msg.to)

		return m, m.loadBudgetsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadBudgetsCmd()
		case "s":
			m.statusFilterIdx = (m.statusFilterIdx + 1) % 4
			m.applyFilter()
			m.refreshTable()

			return m, nil
		case "enter", "v":
			if b := m.selected(); b != nil {
				id := b.ID
				return m, func() tea.Msg { return ShowQuoteMsg{ID: id} }
			}
		case "a":
			if b := m.selected(); b != nil {
				return m, m.setStatusCmd(b, budget.StatusApproved)
			}
		case "x":
			if b := m.selected(); b != nil {
				return m, m.setStatusCmd(b, budget.StatusRejected)
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m BudgetsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading budgets...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	statusLabels := []string{"All", "Pending", "Approved", "Rejected"}

	header := fmt.Sprintf("Filter: [s] Status: %s", activeStyle(statusLabels[m.statusFilterIdx]))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func (m BudgetsModel) selected() *budget.Budget {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.visible) {
		return nil
	}

	return m.visible[idx]
}

func (m *BudgetsModel) applyFilter() {
	switch m.statusFilterIdx {
	case 1:
		m.statusFilter = statusPtr(budget.StatusPending)
	case 2:
		m.statusFilter = statusPtr(budget.StatusApproved)
	case 3:
		m.statusFilter = statusPtr(budget.StatusRejected)
	default:
		m.statusFilter = nil
	}
}

func statusPtr(s budget.Status) *budget.Status { return &s }

func (m *BudgetsModel) refreshTable() {
	m.visible = m.visible[:0]
	for _, b := range m.budgets {
		if m.statusFilter != nil && b.Status != *m.statusFilter {
			continue
		}

		m.visible = append(m.visible, b)
	}

	rows := make([]table.Row, 0, len(m.visible))
	for _, b := range m.visible {
		rows = append(rows, table.Row{
			FormatDate(b.IssueDate),
			b.CustomerName,
			string(b.Status),
			FormatMoney(b.TotalAmount),
			FormatDate(b.ExpiryDate),
		})
	}

	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

// Messages

type loadBudgetsMsg struct {
	budgets []*budget.Budget
	err     error
}

func (m BudgetsModel) loadBudgetsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		budgets, err := m.budgetService.List(ctx)
		return loadBudgetsMsg{budgets: budgets, err: err}
	}
}

type statusChangedMsg struct {
	to  budget.Status
	err error
}

// setStatusCmd reloads the budget so the stored item set can be sent back
// unchanged; updates always rewrite the full item set.
func (m BudgetsModel) setStatusCmd(b *budget.Budget, to budget.Status) tea.Cmd {
	id := b.ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		full, err := m.budgetService.Get(ctx, id)
		if err != nil {
			return statusChangedMsg{to: to, err: err}
		}

		_, err = m.budgetService.Update(ctx, id, budget.UpdateParams{
			Status: &to,
			Items:  itemParams(full.Items),
		})

		return statusChangedMsg{to: to, err: err}
	}
}

func itemParams(items []budget.Item) []budget.ItemParams {
	params := make([]budget.ItemParams, 0, len(items))
	for i := range items {
		item := items[i]
		params = append(params, budget.ItemParams{
			Description: item.Description,
			ItemType:    item.ItemType,
			Quantity:    &item.Quantity,
			UnitPrice:   &item.UnitPrice,
		})
	}

	return params
}
