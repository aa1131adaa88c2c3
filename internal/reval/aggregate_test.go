package reval

import (
	"testing"

	"github.com/stockbridge/reval/internal/domain"
	"github.com/stockbridge/reval/internal/inventory"
)

func TestGrandTotal(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   string
	}{
		{"empty", nil, "0"},
		{"single", []string{"150.00"}, "150"},
		{"two locations", []string{"150.00", "100.75"}, "250.75"},
		{"exact decimal sum", []string{"10.10", "0.05", "19.85"}, "30"},
		{"negative entries", []string{"10", "-4.50"}, "5.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := make([]inventory.LocationTotal, 0, len(tt.values))
			for _, v := range tt.values {
				totals = append(totals, inventory.LocationTotal{Value: domain.SafeParse(v)})
			}
			got := GrandTotal(totals)
			if got.String() != tt.want {
				t.Errorf("GrandTotal = %s, want %s", got, tt.want)
			}
		})
	}
}
