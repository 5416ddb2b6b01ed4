package pricing

import (
	"errors"
	"math"
	"testing"
)

func TestRateFor_TierBoundaries(t *testing.T) {
	p := DefaultRatePolicy()

	tests := []struct {
		principal float64
		want      float64
	}{
		{1, 20},
		{300_000, 20},
		{499_999, 20},
		{500_000, 15},
		{1_000_000, 15},
		{1_999_999, 15},
		{2_000_000, 12},
		{4_999_999, 12},
		{5_000_000, 10},
		{50_000_000, 10},
	}
	for _, tt := range tests {
		got, err := p.RateFor(tt.principal)
		if err != nil {
			t.Fatalf("RateFor(%v): %v", tt.principal, err)
		}
		if got != tt.want {
			t.Fatalf("RateFor(%v) = %v, want %v", tt.principal, got, tt.want)
		}
	}
}

func TestRateFor_InvalidPrincipal(t *testing.T) {
	p := DefaultRatePolicy()
	for _, principal := range []float64{0, -1, -500_000} {
		if _, err := p.RateFor(principal); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("RateFor(%v): want ErrInvalidAmount, got %v", principal, err)
		}
	}
}

func TestResolve_Override(t *testing.T) {
	p := DefaultRatePolicy()

	f := func(v float64) *float64 { return &v }

	tests := []struct {
		name      string
		principal float64
		override  *float64
		want      float64
	}{
		{"no override uses tier", 300_000, nil, 20},
		{"tier-value override honoured", 300_000, f(12), 12},
		{"off-table override discarded", 300_000, f(17.5), 20},
		{"zero override discarded", 6_000_000, f(0), 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Resolve(tt.principal, tt.override)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if got != tt.want {
				t.Fatalf("Resolve = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewRatePolicy_RejectsMalformedTables(t *testing.T) {
	tests := []struct {
		name  string
		tiers []Tier
	}{
		{"empty", nil},
		{"gap between tiers", []Tier{
			{Min: 0, Max: 100, Rate: 20},
			{Min: 200, Max: math.Inf(1), Rate: 10},
		}},
		{"first tier not at zero", []Tier{
			{Min: 100, Max: math.Inf(1), Rate: 10},
		}},
		{"bounded last tier", []Tier{
			{Min: 0, Max: 100, Rate: 20},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRatePolicy(tt.tiers); !errors.Is(err, ErrInvalidTiers) {
				t.Fatalf("want ErrInvalidTiers, got %v", err)
			}
		})
	}
}

func TestParseTierTable(t *testing.T) {
	tiers, err := ParseTierTable(map[string]float64{
		"<500000":         20,
		"500000-2000000":  15,
		"2000000-5000000": 12,
		">=5000000":       10,
	})
	if err != nil {
		t.Fatalf("ParseTierTable: %v", err)
	}
	p, err := NewRatePolicy(tiers)
	if err != nil {
		t.Fatalf("NewRatePolicy: %v", err)
	}
	if got, _ := p.RateFor(1_000_000); got != 15 {
		t.Fatalf("parsed table RateFor(1e6) = %v, want 15", got)
	}
	if got, _ := p.RateFor(9_000_000); got != 10 {
		t.Fatalf("parsed table RateFor(9e6) = %v, want 10", got)
	}
}

func TestParseTierTable_BadKeys(t *testing.T) {
	for _, key := range []string{"", "500000", ">x", "9-1"} {
		if _, err := ParseTierTable(map[string]float64{key: 10}); !errors.Is(err, ErrInvalidTiers) {
			t.Fatalf("key %q: want ErrInvalidTiers, got %v", key, err)
		}
	}
}
