package main

import (
	"log"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"lipidflow/adapters/memory"
	"lipidflow/adapters/postgres"
	"lipidflow/app"
	"lipidflow/internal"
	"lipidflow/internal/config"
	"lipidflow/ports"
	"lipidflow/ui"
)

func main() {
	logger := internal.DefaultLogger

	// Load .env file if present (ignore error for production)
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	runs, err := buildRunRepository(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize run archive: %v", err)
	}

	service := app.NewAnalysisService(runs)
	httpApp := ui.NewApp(service, runs, cfg.Analysis)

	addr := ":" + cfg.Server.Port
	logger.Info("Lipid-gene flow analysis server listening on %s", addr)
	if err := http.ListenAndServe(addr, httpApp.Router()); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// buildRunRepository selects the postgres archive when DATABASE_URL is set
// and falls back to the in-memory archive otherwise.
func buildRunRepository(cfg *config.Config) (ports.RunRepository, error) {
	if cfg.Database.URL == "" {
		internal.DefaultLogger.Info("DATABASE_URL not set, archiving runs in memory")
		return memory.NewRunRepository(), nil
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, err
	}
	return postgres.NewRunRepository(db)
}
