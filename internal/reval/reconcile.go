package reval

import (
	"context"
	"log/slog"
	"time"

	"github.com/stockbridge/reval/internal/domain"
	"github.com/stockbridge/reval/internal/ledger"
)

// Ledger is the slice of the ledger API a reconciliation run needs.
type Ledger interface {
	PostedJournals(ctx context.Context, narration string) ([]ledger.ManualJournal, error)
	PostJournal(ctx context.Context, j domain.Journal) (ledger.Response, error)
	VoidJournal(ctx context.Context, id string) error
}

// VoidStale enforces the single-journal-per-day invariant: it voids every
// POSTED revaluation journal dated today, plus the most recently updated
// POSTED one regardless of date (a previous run may have posted across a
// timezone boundary). Each void is best-effort; a rejected void is logged and
// skipped. A failed query is fatal, since without it the invariant cannot be
// checked. Returns the IDs actually voided.
func VoidStale(ctx context.Context, lg Ledger, today time.Time) ([]string, error) {
	journals, err := lg.PostedJournals(ctx, domain.RevaluationNarration)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(journals))
	var targets []string
	add := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			targets = append(targets, id)
		}
	}

	for _, j := range journals {
		d, ok := ledger.ParseDate(j.Date)
		if !ok {
			slog.Warn("journal has unparsable date, skipping same-day check", "journal", j.ID, "date", j.Date)
			continue
		}
		if sameDay(d, today) {
			add(j.ID)
		}
	}

	// The query orders by UpdatedDateUTC descending, so the first entry is
	// the latest posted revaluation regardless of its date.
	if len(journals) > 0 {
		add(journals[0].ID)
	}

	var voided []string
	for _, id := range targets {
		if err := lg.VoidJournal(ctx, id); err != nil {
			slog.Warn("failed to void stale journal", "journal", id, "error", err)
			continue
		}
		slog.Info("voided stale journal", "journal", id)
		voided = append(voided, id)
	}
	return voided, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
