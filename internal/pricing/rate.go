package pricing

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

var (
	ErrInvalidAmount = errors.New("amount must be positive")
	ErrInvalidTiers  = errors.New("invalid rate tier table")
)

// Tier is one band of the rate table: [Min, Max) -> Rate percent per annum.
// The last tier is open-ended (Max = +Inf).
type Tier struct {
	Min  float64
	Max  float64
	Rate float64
}

// DefaultTiers is the canonical rate table.
func DefaultTiers() []Tier {
	return []Tier{
		{Min: 0, Max: 500_000, Rate: 20},
		{Min: 500_000, Max: 2_000_000, Rate: 15},
		{Min: 2_000_000, Max: 5_000_000, Rate: 12},
		{Min: 5_000_000, Max: math.Inf(1), Rate: 10},
	}
}

// RatePolicy maps a requested principal to an annual interest rate tier.
type RatePolicy struct {
	tiers []Tier
}

func NewRatePolicy(tiers []Tier) (*RatePolicy, error) {
	if len(tiers) == 0 {
		return nil, ErrInvalidTiers
	}
	sorted := make([]Tier, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Min < sorted[j].Min })
	if sorted[0].Min != 0 {
		return nil, fmt.Errorf("%w: first tier must start at 0", ErrInvalidTiers)
	}
	for i := 0; i < len(sorted)-1; i++ {
		if sorted[i].Max != sorted[i+1].Min {
			return nil, fmt.Errorf("%w: tiers must be contiguous", ErrInvalidTiers)
		}
	}
	if !math.IsInf(sorted[len(sorted)-1].Max, 1) {
		return nil, fmt.Errorf("%w: last tier must be open-ended", ErrInvalidTiers)
	}
	return &RatePolicy{tiers: sorted}, nil
}

// DefaultRatePolicy never fails: the canonical table is well-formed.
func DefaultRatePolicy() *RatePolicy {
	p, _ := NewRatePolicy(DefaultTiers())
	return p
}

// RateFor returns the annual rate percent for a principal. Lower bounds are
// inclusive, upper bounds exclusive.
func (p *RatePolicy) RateFor(principal float64) (float64, error) {
	if principal <= 0 {
		return 0, ErrInvalidAmount
	}
	for _, t := range p.tiers {
		if principal >= t.Min && principal < t.Max {
			return t.Rate, nil
		}
	}
	// unreachable for a validated table
	return 0, ErrInvalidTiers
}

// Resolve returns the tier rate for principal, honouring a manual override
// only when it equals one of the canonical tier rates. An off-table override
// is discarded, not an error.
func (p *RatePolicy) Resolve(principal float64, override *float64) (float64, error) {
	rate, err := p.RateFor(principal)
	if err != nil {
		return 0, err
	}
	if override != nil && p.isTierRate(*override) {
		return *override, nil
	}
	return rate, nil
}

func (p *RatePolicy) isTierRate(rate float64) bool {
	for _, t := range p.tiers {
		if t.Rate == rate {
			return true
		}
	}
	return false
}

// ParseTierTable converts the external configuration form into tiers.
// Recognized key shapes: "<500000", "500000-2000000", ">=5000000".
func ParseTierTable(table map[string]float64) ([]Tier, error) {
	if len(table) == 0 {
		return nil, ErrInvalidTiers
	}
	tiers := make([]Tier, 0, len(table))
	for key, rate := range table {
		t, err := parseTierKey(key)
		if err != nil {
			return nil, err
		}
		t.Rate = rate
		tiers = append(tiers, t)
	}
	return tiers, nil
}

func parseTierKey(key string) (Tier, error) {
	key = strings.TrimSpace(key)
	switch {
	case strings.HasPrefix(key, "<"):
		max, err := strconv.ParseFloat(strings.TrimPrefix(key, "<"), 64)
		if err != nil {
			return Tier{}, fmt.Errorf("%w: bad key %q", ErrInvalidTiers, key)
		}
		return Tier{Min: 0, Max: max}, nil
	case strings.HasPrefix(key, ">="):
		min, err := strconv.ParseFloat(strings.TrimPrefix(key, ">="), 64)
		if err != nil {
			return Tier{}, fmt.Errorf("%w: bad key %q", ErrInvalidTiers, key)
		}
		return Tier{Min: min, Max: math.Inf(1)}, nil
	case strings.Contains(key, "-"):
		parts := strings.SplitN(key, "-", 2)
		min, err1 := strconv.ParseFloat(parts[0], 64)
		max, err2 := strconv.ParseFloat(parts[1], 64)
		if err1 != nil || err2 != nil || min >= max {
			return Tier{}, fmt.Errorf("%w: bad key %q", ErrInvalidTiers, key)
		}
		return Tier{Min: min, Max: max}, nil
	default:
		return Tier{}, fmt.Errorf("%w: bad key %q", ErrInvalidTiers, key)
	}
}
