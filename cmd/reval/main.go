package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/stockbridge/reval/internal/config"
	"github.com/stockbridge/reval/internal/export"
	"github.com/stockbridge/reval/internal/inventory"
	"github.com/stockbridge/reval/internal/ledger"
	"github.com/stockbridge/reval/internal/reval"
	"github.com/stockbridge/reval/internal/worker"
)

func main() {
	// A missing .env is fine; credentials may come from the environment.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "reval",
		Usage: "post a daily stock revaluation journal from inventory valuations",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "execute one reconciliation run and exit",
				Action: func(c *cli.Context) error {
					svc, err := newService(c.Context, config.Load())
					if err != nil {
						return err
					}
					_, err = svc.Run(c.Context)
					return err
				},
			},
			{
				Name:  "daemon",
				Usage: "run immediately, then repeat on a fixed interval",
				Action: func(c *cli.Context) error {
					cfg := config.Load()
					svc, err := newService(c.Context, cfg)
					if err != nil {
						return err
					}
					worker.NewDailyWorker(svc, cfg.DaemonInterval).Run(c.Context)
					return nil
				},
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

// newService wires the ledger and inventory clients into a run service.
func newService(ctx context.Context, cfg config.Config) (*reval.Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tokens := ledger.NewTokenSource(ctx, cfg.LedgerTokenURL, cfg.LedgerClientID, cfg.LedgerClientSecret)
	ledgerClient := ledger.NewClient(cfg.LedgerBaseURL, tokens)
	if err := ledgerClient.Connect(ctx, cfg.LedgerTenantID); err != nil {
		return nil, fmt.Errorf("connecting to ledger: %w", err)
	}

	inventoryClient := inventory.NewClient(
		cfg.InventoryBaseURL, cfg.InventoryAPIKey,
		cfg.RetryMax, cfg.RetryBaseDelay, cfg.PageDelay, cfg.PageSize,
	)
	resolver := inventory.NewResolver(inventoryClient)

	var hooks []reval.Hook
	if cfg.WorkbookPath != "" {
		hooks = append(hooks, export.NewWorkbookWriter(cfg.WorkbookPath))
	}
	if cfg.SheetsSpreadsheetID != "" && cfg.GoogleCredentialsJSON != "" {
		sheetsWriter, err := export.NewSheetsWriter(ctx, cfg.SheetsSpreadsheetID, cfg.GoogleCredentialsJSON)
		if err != nil {
			return nil, fmt.Errorf("creating sheets writer: %w", err)
		}
		hooks = append(hooks, sheetsWriter)
	}

	return reval.NewService(
		resolver, ledgerClient, cfg.Locations,
		cfg.StockAccount, cfg.AdjustmentAccount, hooks...,
	), nil
}
