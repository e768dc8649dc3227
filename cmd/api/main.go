package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/andrefarias/budgetmaster/internal/budget"
	budgetStore "github.com/andrefarias/budgetmaster/internal/budget/store"
	"github.com/andrefarias/budgetmaster/internal/catalog"
	catalogStore "github.com/andrefarias/budgetmaster/internal/catalog/store"
	"github.com/andrefarias/budgetmaster/internal/config"
	"github.com/andrefarias/budgetmaster/internal/database"
	appHttp "github.com/andrefarias/budgetmaster/internal/http"
	budgetHandler "github.com/andrefarias/budgetmaster/internal/http/budget"
	catalogHandler "github.com/andrefarias/budgetmaster/internal/http/catalog"
	homeHandler "github.com/andrefarias/budgetmaster/internal/http/home"
	importHandler "github.com/andrefarias/budgetmaster/internal/http/importcsv"
	"github.com/andrefarias/budgetmaster/internal/importer"
)

func main() {
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
	defer db.Close()

	if err := database.Migrate(db, cfg.Migrations.Path); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	var (
		budgetService  = budget.NewService(budgetStore.New(db))
		catalogService = catalog.NewService(catalogStore.New(db))
		csvParser      = importer.NewParser()
	)

	var (
		budgetH    = budgetHandler.NewHandler(budgetService, catalogService)
		catalogH   = catalogHandler.NewHandler(catalogService)
		importH    = importHandler.NewHandler(csvParser, catalogService)
		dashboardH = homeHandler.NewHandler(budgetService)
	)

	router := appHttp.New(budgetH, catalogH, importH, dashboardH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
