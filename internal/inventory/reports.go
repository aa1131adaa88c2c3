package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/stockbridge/reval/internal/domain"
)

// reportPayload covers every response shape the valuation report endpoints
// have been observed to return across report types and API versions.
type reportPayload struct {
	StockValue      any             `json:"stock_value"`
	TotalStockValue any             `json:"total_stock_value"`
	Data            []reportPayload `json:"data"`
}

// reportShapes are tried in order against a successful report response.
// Adding a new upstream shape means appending a matcher here, not
// restructuring control flow.
var reportShapes = []struct {
	name    string
	extract func(reportPayload) (decimal.Decimal, bool)
}{
	{"stock_value", func(p reportPayload) (decimal.Decimal, bool) {
		return matchField(p.StockValue)
	}},
	{"total_stock_value", func(p reportPayload) (decimal.Decimal, bool) {
		return matchField(p.TotalStockValue)
	}},
	{"data[0].stock_value", func(p reportPayload) (decimal.Decimal, bool) {
		if len(p.Data) == 0 {
			return decimal.Zero, false
		}
		return matchField(p.Data[0].StockValue)
	}},
	{"data[0].total_stock_value", func(p reportPayload) (decimal.Decimal, bool) {
		if len(p.Data) == 0 {
			return decimal.Zero, false
		}
		return matchField(p.Data[0].TotalStockValue)
	}},
}

// matchField treats a present field as a match even when its value is
// malformed; malformed values parse to zero per the money contract.
func matchField(v any) (decimal.Decimal, bool) {
	if v == nil {
		return decimal.Zero, false
	}
	return domain.SafeDecimal(v), true
}

// AggregateValuation fetches the account-wide inventory valuation report.
// Only meaningful when no per-location scoping is configured.
func (c *Client) AggregateValuation(ctx context.Context) (decimal.Decimal, error) {
	return c.valuationReport(ctx, c.baseURL+"/reports/inventory_valuation")
}

// LocationValuation fetches the inventory valuation report scoped to one
// warehouse.
func (c *Client) LocationValuation(ctx context.Context, loc domain.Location) (decimal.Decimal, error) {
	u := fmt.Sprintf("%s/reports/inventory_valuation?warehouse_id=%s",
		c.baseURL, url.QueryEscape(string(loc)))
	return c.valuationReport(ctx, u)
}

func (c *Client) valuationReport(ctx context.Context, u string) (decimal.Decimal, error) {
	body, _, err := c.get(ctx, u)
	if err != nil {
		return decimal.Zero, err
	}

	var payload reportPayload
	if err := decodeJSON(body, &payload); err != nil {
		slog.Warn("valuation report is not valid JSON, trying next source", "url", u, "error", err)
		return decimal.Zero, fmt.Errorf("parsing valuation report: %w", ErrUnavailable)
	}

	for _, shape := range reportShapes {
		if v, ok := shape.extract(payload); ok {
			slog.Debug("valuation report matched", "shape", shape.name, "value", v)
			return v, nil
		}
	}

	slog.Warn("valuation report matched no known shape, trying next source", "url", u)
	return decimal.Zero, fmt.Errorf("unrecognized valuation report shape: %w", ErrUnavailable)
}
