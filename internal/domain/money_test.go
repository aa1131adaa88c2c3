package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestSafeParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"valid integer", "100", "100"},
		{"valid decimal", "3.14", "3.14"},
		{"zero", "0", "0"},
		{"negative", "-5.5", "-5.5"},
		{"empty string", "", "0"},
		{"invalid string", "abc", "0"},
		{"whitespace", "  ", "0"},
		{"large number", "999999999999.1234567", "999999999999.1234567"},
		{"small fraction", "0.0000001", "0.0000001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SafeParse(tt.input)
			want, _ := decimal.NewFromString(tt.want)
			if !got.Equal(want) {
				t.Errorf("SafeParse(%q) = %s, want %s", tt.input, got, want)
			}
		})
	}
}

func TestSafeDecimal(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"nil", nil, "0"},
		{"json number", json.Number("19.85"), "19.85"},
		{"numeric string", "10.10", "10.10"},
		{"empty string", "", "0"},
		{"non-numeric string", "n/a", "0"},
		{"int", 42, "42"},
		{"int64", int64(-7), "-7"},
		{"float64", float64(2.5), "2.5"},
		{"bool", true, "0"},
		{"slice", []string{"1"}, "0"},
		{"map", map[string]any{"value": "1"}, "0"},
		{"decimal passthrough", decimal.RequireFromString("0.05"), "0.05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SafeDecimal(tt.input)
			want, _ := decimal.NewFromString(tt.want)
			if !got.Equal(want) {
				t.Errorf("SafeDecimal(%v) = %s, want %s", tt.input, got, want)
			}
		})
	}
}

func TestSafeSumExactness(t *testing.T) {
	// 10.10 + 0.05 + 19.85 must be exactly 30.00, which float64 cannot do.
	total := decimal.Zero
	for _, v := range []string{"10.10", "0.05", "19.85"} {
		total = SafeSum(total, SafeParse(v))
	}
	if total.String() != "30" {
		t.Errorf("sum = %s, want 30", total)
	}
}
