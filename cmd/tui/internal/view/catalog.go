package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/andrefarias/budgetmaster/internal/budget"
	"github.com/andrefarias/budgetmaster/internal/catalog"
)

type catalogState int

const (
	catalogStateBrowse catalogState = iota
	catalogStateAdd
)

type CatalogModel struct {
	CommonModel
	catalogService *catalog.Service

	state    catalogState
	table    table.Model
	products []*catalog.Product
	form     *huh.Form

	loading bool
	err     error
	status  string

	// Form field bindings
	formName  string
	formType  string
	formPrice string
}

func NewCatalogModel(catalogSvc *catalog.Service) CatalogModel {
	columns := []table.Column{
		{Title: "Name", Width: 40},
		{Title: "Type", Width: 10},
		{Title: "Base Price", Width: 12},
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

	return CatalogModel{
		catalogService: catalogSvc,
		table:          t,
	}
}

func (m CatalogModel) Title() string { return "Catalogue" }

func (m CatalogModel) ShortHelp() string {
	if m.state == catalogStateAdd {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | a: add | x: delete | r: refresh"
}

func (m CatalogModel) Init() tea.Cmd {
	return m.loadProductsCmd()
}

func (m CatalogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadProductsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.products = msg.products
		m.refreshTable()

		return m, nil

	case productSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("Added %q", msg.name)
		}

		m.state = catalogStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadProductsCmd()

	case productDeletedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error deleting: %v", msg.err)
			return m, nil
		}

		m.status = "Product removed"

		return m, m.loadProductsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case catalogStateBrowse:
		return m.updateBrowse(msg)
	case catalogStateAdd:
		return m.updateAdd(msg)
	}

	return m, nil
}

func (m CatalogModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadProductsCmd()
		case "a":
			return m.enterAddMode()
		case "x":
			idx := m.table.Cursor()
			if idx >= 0 && idx < len(m.products) {
				return m, m.deleteCmd(m.products[idx].ID)
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m CatalogModel) enterAddMode() (tea.Model, tea.Cmd) {
	m.formName = ""
	m.formType = string(budget.ItemTypeProduct)
	m.formPrice = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Key("item_type").
				Title("Type").
				Options(
					huh.NewOption("Product", string(budget.ItemTypeProduct)),
					huh.NewOption("Service", string(budget.ItemTypeService)),
				).
				Value(&m.formType),

			huh.NewInput().
				Key("base_price").
				Title("Base Price").
				Placeholder("0.00").
				Value(&m.formPrice).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}

					d, err := decimal.NewFromString(strings.TrimSpace(s))
					if err != nil {
						return fmt.Errorf("not a valid amount")
					}
					if d.IsNegative() {
						return fmt.Errorf("price cannot be negative")
					}
					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = catalogStateAdd
	m.table.Blur()

	return m, m.form.Init()
}

func (m CatalogModel) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = catalogStateBrowse
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

func (m CatalogModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading catalogue...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := tableView

	if m.state == catalogStateAdd && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(fmt.Sprintf("New Catalogue Entry\n\n%s", m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *CatalogModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.products))
	for _, p := range m.products {
		rows = append(rows, table.Row{
			p.Name,
			string(p.ItemType),
			FormatMoney(p.BasePrice),
		})
	}

	m.table.SetRows(rows)
}

// Messages

type loadProductsMsg struct {
	products []*catalog.Product
	err      error
}

func (m CatalogModel) loadProductsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		products, err := m.catalogService.List(ctx)
		return loadProductsMsg{products: products, err: err}
	}
}

type productSavedMsg struct {
	name string
	err  error
}

func (m CatalogModel) saveCmd() tea.Cmd {
	name := strings.TrimSpace(m.formName)
	itemType := budget.ItemType(m.formType)
	priceText := strings.TrimSpace(m.formPrice)

	return func() tea.Msg {
		params := catalog.CreateParams{
			Name:     name,
			ItemType: itemType,
		}

		if priceText != "" {
			d, err := decimal.NewFromString(priceText)
			if err != nil {
				return productSavedMsg{name: name, err: err}
			}

			params.BasePrice = &d
		}

		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.catalogService.Create(ctx, params)
		return productSavedMsg{name: name, err: err}
	}
}

type productDeletedMsg struct {
	err error
}

func (m CatalogModel) deleteCmd(id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return productDeletedMsg{err: m.catalogService.Delete(ctx, id)}
	}
}
