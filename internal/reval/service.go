package reval

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stockbridge/reval/internal/domain"
	"github.com/stockbridge/reval/internal/inventory"
	"github.com/stockbridge/reval/internal/ledger"
)

// Inventory is the slice of the inventory adapter a run needs.
type Inventory interface {
	Resolve(ctx context.Context, locations []domain.Location) ([]inventory.LocationTotal, error)
}

// Hook receives the result of a completed run, e.g. for monitoring exports.
type Hook interface {
	Export(ctx context.Context, result Result) error
}

// Result is everything a run surfaces.
type Result struct {
	Date      time.Time
	Total     decimal.Decimal
	Locations []inventory.LocationTotal
	Voided    []string
	Response  *ledger.Response
	Skipped   bool
}

// Service executes one reconciliation run end to end: resolve per-location
// valuations, aggregate, void stale journals, post the new one.
type Service struct {
	inventory         Inventory
	ledger            Ledger
	locations         []domain.Location
	stockAccount      string
	adjustmentAccount string
	hooks             []Hook
	now               func() time.Time
}

// NewService creates a run service. Hooks run after a successful post and
// after a zero-total skip; their failures never fail the run.
func NewService(inv Inventory, lg Ledger, locations []domain.Location, stockAccount, adjustmentAccount string, hooks ...Hook) *Service {
	return &Service{
		inventory:         inv,
		ledger:            lg,
		locations:         locations,
		stockAccount:      stockAccount,
		adjustmentAccount: adjustmentAccount,
		hooks:             hooks,
		now:               time.Now,
	}
}

// Run executes one reconciliation run.
func (s *Service) Run(ctx context.Context) (Result, error) {
	today := s.now().UTC()

	totals, err := s.inventory.Resolve(ctx, s.locations)
	if err != nil {
		return Result{}, fmt.Errorf("resolving inventory valuation: %w", err)
	}
	for _, t := range totals {
		slog.Info("location valuation resolved",
			"location", t.Location.Label(), "source", t.Source, "value", t.Value)
	}

	total := GrandTotal(totals)
	result := Result{Date: today, Total: total, Locations: totals}

	if total.IsZero() {
		// A zero grand total means "no usable data", not a legitimate empty
		// revaluation. This also skips reconciliation, so a stale prior-day
		// journal can survive a zero-total day; see DESIGN.md.
		slog.Warn("zero grand total, skipping journal post and reconciliation")
		result.Skipped = true
		s.runHooks(ctx, result)
		return result, nil
	}

	voided, err := VoidStale(ctx, s.ledger, today)
	if err != nil {
		return Result{}, fmt.Errorf("reconciling stale journals: %w", err)
	}
	result.Voided = voided

	journal := domain.BuildRevaluation(total, s.stockAccount, s.adjustmentAccount, today)
	resp, err := s.ledger.PostJournal(ctx, journal)
	if err != nil {
		if resp.Status != 0 {
			slog.Error("ledger rejected revaluation journal",
				"status", resp.Status, "body", string(resp.Body))
		}
		return Result{}, fmt.Errorf("posting revaluation journal: %w", err)
	}
	result.Response = &resp

	slog.Info("posted stock revaluation journal",
		"total", total,
		"date", today.Format("2006-01-02"),
		"voided", len(voided),
		"ledgerStatus", resp.Status,
		"ledgerBody", string(resp.Body))

	s.runHooks(ctx, result)
	return result, nil
}

func (s *Service) runHooks(ctx context.Context, result Result) {
	for _, h := range s.hooks {
		if err := h.Export(ctx, result); err != nil {
			slog.Error("run export hook failed", "error", err)
		}
	}
}
