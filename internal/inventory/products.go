package inventory

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/stockbridge/reval/internal/domain"
)

type productStockLevel struct {
	StockValue         any `json:"stock_value"`
	OnHandValue        any `json:"on_hand_value"`
	PhysicalStockLevel any `json:"physical_stock_level"`
}

type product struct {
	StockValue  any                          `json:"stock_value"`
	OnHandValue any                          `json:"on_hand_value"`
	CostPrice   any                          `json:"cost_price"`
	TotalStock  any                          `json:"physical_stock_level_at_all_warehouses"`
	StockLevels map[string]productStockLevel `json:"stock_levels"`
}

// ProductsValuation walks the full product listing and sums one contribution
// per product. This is the last-resort source: slowest, but available on every
// account tier.
func (c *Client) ProductsValuation(ctx context.Context, loc domain.Location) (decimal.Decimal, error) {
	u := fmt.Sprintf("%s/products?per_page=%d&page=1", c.baseURL, c.pageSize)

	total := decimal.Zero
	err := c.walkPages(ctx, u, func(body []byte) error {
		var page []product
		if err := decodeJSON(body, &page); err != nil {
			return fmt.Errorf("parsing products: %w", ErrUnavailable)
		}
		for _, p := range page {
			total = total.Add(p.contribution(loc))
		}
		return nil
	})
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// contribution resolves one product to a non-negative monetary value. An
// explicit valuation field wins over the derived cost × quantity; derivation
// applies only when both factors are strictly positive.
func (p product) contribution(loc domain.Location) decimal.Decimal {
	if loc != domain.AllLocations {
		level, ok := p.StockLevels[string(loc)]
		if !ok {
			return decimal.Zero
		}
		if v, ok := explicitValue(level.StockValue, level.OnHandValue); ok {
			return v
		}
		return deriveValue(p.CostPrice, level.PhysicalStockLevel)
	}

	if v, ok := explicitValue(p.StockValue, p.OnHandValue); ok {
		return v
	}
	return deriveValue(p.CostPrice, p.TotalStock)
}

// explicitValue returns the first present valuation field. A present but
// malformed field still counts as explicit and parses to zero.
func explicitValue(fields ...any) (decimal.Decimal, bool) {
	for _, f := range fields {
		if f == nil {
			continue
		}
		v := domain.SafeDecimal(f)
		if v.IsNegative() {
			return decimal.Zero, true
		}
		return v, true
	}
	return decimal.Zero, false
}

func deriveValue(cost, qty any) decimal.Decimal {
	c := domain.SafeDecimal(cost)
	q := domain.SafeDecimal(qty)
	if !c.IsPositive() || !q.IsPositive() {
		return decimal.Zero
	}
	return c.Mul(q)
}
