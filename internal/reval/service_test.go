package reval

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stockbridge/reval/internal/domain"
	"github.com/stockbridge/reval/internal/inventory"
	"github.com/stockbridge/reval/internal/ledger"
)

type fakeInventory struct {
	totals []inventory.LocationTotal
	err    error
}

func (f *fakeInventory) Resolve(_ context.Context, _ []domain.Location) ([]inventory.LocationTotal, error) {
	return f.totals, f.err
}

type recordingHook struct {
	results []Result
}

func (h *recordingHook) Export(_ context.Context, r Result) error {
	h.results = append(h.results, r)
	return nil
}

func newTestService(inv Inventory, lg Ledger, hooks ...Hook) *Service {
	s := NewService(inv, lg, []domain.Location{"10", "20"}, "320", "999", hooks...)
	s.now = func() time.Time { return today }
	return s
}

func TestRunPostsBalancedJournal(t *testing.T) {
	inv := &fakeInventory{totals: []inventory.LocationTotal{
		{Location: "10", Source: "location-report", Value: decimal.RequireFromString("150.00")},
		{Location: "20", Source: "stock-entries", Value: decimal.RequireFromString("100.75")},
	}}
	lg := &fakeLedger{
		journals: []ledger.ManualJournal{postedJournal("stale", "2026-08-31")},
		postResp: ledger.Response{Status: http.StatusOK, Body: []byte(`{"ManualJournals":[{}]}`)},
	}
	hook := &recordingHook{}

	result, err := newTestService(inv, lg, hook).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Total.String() != "250.75" {
		t.Errorf("total = %s, want 250.75", result.Total)
	}
	if len(result.Voided) != 1 || result.Voided[0] != "stale" {
		t.Errorf("voided = %v, want [stale]", result.Voided)
	}
	if len(lg.posted) != 1 {
		t.Fatalf("posted journals = %d, want 1", len(lg.posted))
	}

	j := lg.posted[0]
	if !j.Balanced() {
		t.Error("posted journal lines do not sum to zero")
	}
	if !j.Lines[0].Amount.Equal(decimal.RequireFromString("250.75")) {
		t.Errorf("debit = %s, want 250.75", j.Lines[0].Amount)
	}
	if j.Date.Format("2006-01-02") != "2026-08-31" {
		t.Errorf("date = %s, want 2026-08-31", j.Date.Format("2006-01-02"))
	}
	if result.Response == nil || result.Response.Status != http.StatusOK {
		t.Errorf("response = %+v, want surfaced 200", result.Response)
	}
	if len(hook.results) != 1 {
		t.Errorf("hook invocations = %d, want 1", len(hook.results))
	}
}

func TestRunZeroTotalSkipsLedger(t *testing.T) {
	inv := &fakeInventory{totals: []inventory.LocationTotal{
		{Location: "10", Source: "products", Value: decimal.Zero},
	}}
	lg := &fakeLedger{journals: []ledger.ManualJournal{postedJournal("stale", "2026-08-30")}}

	result, err := newTestService(inv, lg).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Skipped {
		t.Error("result not marked skipped")
	}
	if len(lg.posted) != 0 {
		t.Errorf("posted journals = %d, want 0", len(lg.posted))
	}
	// The stale journal survives a zero-total day; reconciliation never runs.
	if len(lg.voided) != 0 {
		t.Errorf("voided = %v, want none", lg.voided)
	}
}

func TestRunOffsettingTotalsStillZero(t *testing.T) {
	inv := &fakeInventory{totals: []inventory.LocationTotal{
		{Location: "10", Value: decimal.RequireFromString("10.50")},
		{Location: "20", Value: decimal.RequireFromString("-10.50")},
	}}
	lg := &fakeLedger{}

	result, err := newTestService(inv, lg).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Skipped || len(lg.posted) != 0 {
		t.Error("offsetting totals must be treated as no usable data")
	}
}

func TestRunInventoryFailureAborts(t *testing.T) {
	inv := &fakeInventory{err: errors.New("HTTP 502 from /stock_entries")}
	lg := &fakeLedger{}

	if _, err := newTestService(inv, lg).Run(context.Background()); err == nil {
		t.Fatal("expected error, got nil")
	}
	if len(lg.posted) != 0 || len(lg.voided) != 0 {
		t.Error("ledger must not be touched when inventory resolution fails")
	}
}

func TestRunPostFailureIsFatal(t *testing.T) {
	inv := &fakeInventory{totals: []inventory.LocationTotal{
		{Location: "10", Value: decimal.RequireFromString("5")},
	}}
	lg := &fakeLedger{
		postResp: ledger.Response{Status: http.StatusBadRequest, Body: []byte(`{"Message":"no"}`)},
		postErr:  errors.New("ledger HTTP 400"),
	}
	hook := &recordingHook{}

	if _, err := newTestService(inv, lg, hook).Run(context.Background()); err == nil {
		t.Fatal("expected error, got nil")
	}
	if len(hook.results) != 0 {
		t.Error("hooks must not run after a failed post")
	}
}

type failingHook struct{ calls int }

func (h *failingHook) Export(context.Context, Result) error {
	h.calls++
	return errors.New("sheet unavailable")
}

func TestRunHookFailureDoesNotFailRun(t *testing.T) {
	inv := &fakeInventory{totals: []inventory.LocationTotal{
		{Location: "10", Value: decimal.RequireFromString("5")},
	}}
	lg := &fakeLedger{postResp: ledger.Response{Status: http.StatusOK}}
	hook := &failingHook{}

	if _, err := newTestService(inv, lg, hook).Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hook.calls != 1 {
		t.Errorf("hook calls = %d, want 1", hook.calls)
	}
}
