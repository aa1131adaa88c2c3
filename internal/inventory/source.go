package inventory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/stockbridge/reval/internal/domain"
)

// LocationTotal is the resolved valuation for one location along with the
// source tier that served it.
type LocationTotal struct {
	Location domain.Location
	Source   string
	Value    decimal.Decimal
}

// source is one tier of the valuation fallback chain.
type source struct {
	name  string
	fetch func(context.Context) (decimal.Decimal, error)
}

// Resolver produces one monetary total per location by trying inventory
// sources in a fixed preference order. A source answering ErrUnavailable
// (404, or a shape nothing recognizes) falls through to the next tier; any
// other failure aborts the run.
type Resolver struct {
	client *Client
}

// NewResolver creates a Resolver over the given inventory client.
func NewResolver(client *Client) *Resolver {
	return &Resolver{client: client}
}

// sources returns the fallback chain for one location. The aggregate report
// only applies when no per-location scoping is configured.
func (r *Resolver) sources(loc domain.Location) []source {
	var chain []source
	if loc == domain.AllLocations {
		chain = append(chain, source{"aggregate-report", r.client.AggregateValuation})
	} else {
		chain = append(chain, source{"location-report", func(ctx context.Context) (decimal.Decimal, error) {
			return r.client.LocationValuation(ctx, loc)
		}})
	}
	chain = append(chain,
		source{"stock-entries", func(ctx context.Context) (decimal.Decimal, error) {
			return r.client.StockEntriesValuation(ctx, loc)
		}},
		source{"products", func(ctx context.Context) (decimal.Decimal, error) {
			return r.client.ProductsValuation(ctx, loc)
		}},
	)
	return chain
}

// ResolveLocation walks the fallback chain for one location.
func (r *Resolver) ResolveLocation(ctx context.Context, loc domain.Location) (LocationTotal, error) {
	for _, s := range r.sources(loc) {
		v, err := s.fetch(ctx)
		if errors.Is(err, ErrUnavailable) {
			slog.Info("inventory source unavailable, falling back",
				"location", loc.Label(), "source", s.name, "reason", err)
			continue
		}
		if err != nil {
			return LocationTotal{}, fmt.Errorf("source %s for location %s: %w", s.name, loc.Label(), err)
		}
		return LocationTotal{Location: loc, Source: s.name, Value: v}, nil
	}
	return LocationTotal{}, fmt.Errorf("no inventory source available for location %s", loc.Label())
}

// Resolve produces one total per configured location, strictly in sequence.
// With no locations configured it resolves a single account-wide total.
func (r *Resolver) Resolve(ctx context.Context, locations []domain.Location) ([]LocationTotal, error) {
	if len(locations) == 0 {
		t, err := r.ResolveLocation(ctx, domain.AllLocations)
		if err != nil {
			return nil, err
		}
		return []LocationTotal{t}, nil
	}

	totals := make([]LocationTotal, 0, len(locations))
	for _, loc := range locations {
		t, err := r.ResolveLocation(ctx, loc)
		if err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	return totals, nil
}
