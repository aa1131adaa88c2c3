package reval

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/stockbridge/reval/internal/domain"
	"github.com/stockbridge/reval/internal/inventory"
)

// GrandTotal folds per-location totals into one exact-decimal sum.
func GrandTotal(totals []inventory.LocationTotal) decimal.Decimal {
	return lo.Reduce(totals, func(acc decimal.Decimal, t inventory.LocationTotal, _ int) decimal.Decimal {
		return domain.SafeSum(acc, t.Value)
	}, decimal.Zero)
}
