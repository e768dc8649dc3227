package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/andrefarias/budgetmaster/cmd/tui/internal/view"
	"github.com/andrefarias/budgetmaster/internal/budget"
	budgetStore "github.com/andrefarias/budgetmaster/internal/budget/store"
	"github.com/andrefarias/budgetmaster/internal/catalog"
	catalogStore "github.com/andrefarias/budgetmaster/internal/catalog/store"
	"github.com/andrefarias/budgetmaster/internal/config"
	"github.com/andrefarias/budgetmaster/internal/database"
)

type model struct {
	budgetService  *budget.Service
	catalogService *catalog.Service

	currentView View

	budgetsView view.BudgetsModel
	quoteView   view.QuoteModel
	catalogView view.CatalogModel
}

type View int

const (
	ViewMenu    View = 0
	ViewBudgets View = 1
	ViewQuote   View = 2
	ViewCatalog View = 3
)

func initialModel() model {
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

	budgetSvc := budget.NewService(budgetStore.New(db))
	catalogSvc := catalog.NewService(catalogStore.New(db))

	return model{
		budgetService:  budgetSvc,
		catalogService: catalogSvc,
		currentView:    ViewMenu,
		budgetsView:    view.NewBudgetsModel(budgetSvc),
		catalogView:    view.NewCatalogModel(catalogSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewBudgets
				m.budgetsView = view.NewBudgetsModel(m.budgetService)

				return m, m.budgetsView.Init()
			case "2":
				m.currentView = ViewCatalog
				m.catalogView = view.NewCatalogModel(m.catalogService)

				return m, m.catalogView.Init()
			}
		}
	case view.ShowQuoteMsg:
		m.currentView = ViewQuote
		m.quoteView = view.NewQuoteModel(m.budgetService, msg.ID)

		return m, m.quoteView.Init()
	case view.BackMsg:
		// The quote view is always entered from the budgets list.
		if m.currentView == ViewQuote {
			m.currentView = ViewBudgets
			return m, m.budgetsView.Init()
		}

		m.currentView = ViewMenu

		return m, nil
	}

	switch m.currentView {
	case ViewBudgets:
		var newModel tea.Model
		newModel, cmd = m.budgetsView.Update(msg)
		m.budgetsView = newModel.(view.BudgetsModel)
	case ViewQuote:
		var newModel tea.Model
		newModel, cmd = m.quoteView.Update(msg)
		m.quoteView = newModel.(view.QuoteModel)
	case ViewCatalog:
		var newModel tea.Model
		newModel, cmd = m.catalogView.Update(msg)
		m.catalogView = newModel.(view.CatalogModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"BudgetMaster TUI\n\n" +
				"1. Manage Budgets\n" +
				"2. Manage Catalogue\n\n" +
				"q. Quit",
		)
	case ViewBudgets:
		return m.budgetsView.View()
	case ViewQuote:
		return m.quoteView.View()
	case ViewCatalog:
		return m.catalogView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
