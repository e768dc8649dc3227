package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/andrefarias/budgetmaster/internal/budget"
)

// QuoteModel renders a single budget as a print-ready quotation.
type QuoteModel struct {
	CommonModel
	budgetService *budget.Service

	budgetID uuid.UUID
	b        *budget.Budget

	loading bool
	err     error
}

func NewQuoteModel(budgetSvc *budget.Service, id uuid.UUID) QuoteModel {
	return QuoteModel{
		budgetService: budgetSvc,
		budgetID:      id,
		loading:       true,
	}
}

func (m QuoteModel) Title() string { return "Quotation" }

func (m QuoteModel) ShortHelp() string {
	return "Esc: back"
}

func (m QuoteModel) Init() tea.Cmd {
	return m.loadBudgetCmd()
}

func (m QuoteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadQuoteMsg:
		m.loading = false
		m.b = msg.budget
		m.err = msg.err

		return m, nil

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return m, Back
		}
	}

	return m, nil
}

var (
	quoteTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	quoteFaintStyle = lipgloss.NewStyle().Faint(true)
	quoteBoxStyle   = lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Width(76)
)

func (m QuoteModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading quotation...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	b := m.b

	var sb strings.Builder

	sb.WriteString(quoteTitleStyle.Render("QUOTATION"))
	sb.WriteString(quoteFaintStyle.Render(fmt.Sprintf("  #%s", shortID(b.ID))))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Customer:  %s\n", b.CustomerName))
	if b.CustomerEmail != "" {
		sb.WriteString(fmt.Sprintf("Email:     %s\n", b.CustomerEmail))
	}

	sb.WriteString(fmt.Sprintf("Issued:    %s\n", FormatDate(b.IssueDate)))
	sb.WriteString(fmt.Sprintf("Valid to:  %s\n", FormatDate(b.ExpiryDate)))
	sb.WriteString(fmt.Sprintf("Status:    %s\n", b.Status))
	sb.WriteString("\n")

	sb.WriteString(quoteFaintStyle.Render(fmt.Sprintf(
		"%-34s %-8s %4s %12s %12s", "Description", "Type", "Qty", "Unit", "Subtotal",
	)))
	sb.WriteString("\n")
	sb.WriteString(quoteFaintStyle.Render(strings.Repeat("-", 72)))
	sb.WriteString("\n")

	for _, item := range b.Items {
		sb.WriteString(fmt.Sprintf(
			"%-34s %-8s %4d %12s %12s\n",
			truncate(item.Description, 34),
			item.ItemType,
			item.Quantity,
			FormatMoney(item.UnitPrice),
			FormatMoney(item.Subtotal),
		))
	}

	sb.WriteString(quoteFaintStyle.Render(strings.Repeat("-", 72)))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%60s %12s\n", "TOTAL", FormatMoney(b.TotalAmount)))

	if b.Notes != "" {
		sb.WriteString("\n")
		sb.WriteString(quoteFaintStyle.Render("Notes: " + b.Notes))
		sb.WriteString("\n")
	}

	return lipgloss.NewStyle().Padding(1).Render(quoteBoxStyle.Render(sb.String()))
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}

// truncate shortens s to at most max characters, counting runes so a
// multibyte description is never cut mid-character.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}

	return string(runes[:max-1]) + "…"
}

// Messages

type loadQuoteMsg struct {
	budget *budget.Budget
	err    error
}

func (m QuoteModel) loadBudgetCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		b, err := m.budgetService.Get(ctx, m.budgetID)
		return loadQuoteMsg{budget: b, err: err}
	}
}
