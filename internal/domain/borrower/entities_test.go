package borrower

import (
	"errors"
	"testing"
)

func TestCreditRating_Promote(t *testing.T) {
	tests := []struct {
		from CreditRating
		want CreditRating
	}{
		{RatingNoCredit, RatingPoor},
		{RatingPoor, RatingFair},
		{RatingFair, RatingGood},
		{RatingGood, RatingExcellent},
		{RatingExcellent, RatingExcellent}, // idempotent at the top
	}
	for _, tt := range tests {
		if got := tt.from.Promote(); got != tt.want {
			t.Fatalf("%s.Promote() = %s, want %s", tt.from, got, tt.want)
		}
	}
}

func TestCreditRating_Order(t *testing.T) {
	ladder := []CreditRating{RatingNoCredit, RatingPoor, RatingFair, RatingGood, RatingExcellent}
	for i := 0; i < len(ladder)-1; i++ {
		if !ladder[i].Before(ladder[i+1]) {
			t.Fatalf("%s should sit below %s", ladder[i], ladder[i+1])
		}
		if ladder[i+1].Before(ladder[i]) {
			t.Fatalf("%s should not sit below %s", ladder[i+1], ladder[i])
		}
	}
	if RatingGood.Before(RatingGood) {
		t.Fatalf("a rating must not sit below itself")
	}
}

func TestNormalizeRating(t *testing.T) {
	for _, raw := range []string{"POOR", "Poor", " poor "} {
		got, err := NormalizeRating(raw)
		if err != nil || got != RatingPoor {
			t.Fatalf("NormalizeRating(%q) = %v, %v", raw, got, err)
		}
	}
	if _, err := NormalizeRating("platinum"); !errors.Is(err, ErrInvalidRating) {
		t.Fatalf("want ErrInvalidRating, got %v", err)
	}
}
