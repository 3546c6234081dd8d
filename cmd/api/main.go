package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/MrJamesThe3rd/tally/internal/auth"
	authStore "github.com/MrJamesThe3rd/tally/internal/auth/store"
	"github.com/MrJamesThe3rd/tally/internal/config"
	"github.com/MrJamesThe3rd/tally/internal/database"
	tallyHttp "github.com/MrJamesThe3rd/tally/internal/http"
	authHandler "github.com/MrJamesThe3rd/tally/internal/http/auth"
	ledgerHandler "github.com/MrJamesThe3rd/tally/internal/http/ledger"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
	ledgerStore "github.com/MrJamesThe3rd/tally/internal/ledger/store"
)

func main() {
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

	if err := database.Migrate(context.Background(), db); err != nil {
		slog.Error("failed to migrate schema", "error", err)
		os.Exit(1)
	}

	var (
		authService   = auth.NewService(authStore.New(db), cfg.Auth.Secret, cfg.Auth.TokenTTL)
		ledgerService = ledger.NewService(ledgerStore.New(db))
	)

	var (
		authH   = authHandler.NewHandler(authService)
		ledgerH = ledgerHandler.NewHandler(ledgerService)
	)

	router := tallyHttp.New(authH, ledgerH, authService)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
