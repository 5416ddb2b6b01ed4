package borrower

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("borrower not found")
	ErrInvalidRating = errors.New("invalid credit rating")
)

// CreditRating is an ordered ladder. It never decreases automatically; only
// the approval workflow (first-loan baseline) and the payment processor
// (payoff promotion) move it.
type CreditRating string

const (
	RatingNoCredit  CreditRating = "no_credit"
	RatingPoor      CreditRating = "poor"
	RatingFair      CreditRating = "fair"
	RatingGood      CreditRating = "good"
	RatingExcellent CreditRating = "excellent"
)

var ratingRank = map[CreditRating]int{
	RatingNoCredit:  0,
	RatingPoor:      1,
	RatingFair:      2,
	RatingGood:      3,
	RatingExcellent: 4,
}

func (r CreditRating) Valid() bool {
	_, ok := ratingRank[r]
	return ok
}

// Before reports whether r sits below other on the ladder.
func (r CreditRating) Before(other CreditRating) bool {
	return ratingRank[r] < ratingRank[other]
}

// Promote returns the next rung, capped at excellent. Idempotent at the top.
func (r CreditRating) Promote() CreditRating {
	switch r {
	case RatingNoCredit:
		return RatingPoor
	case RatingPoor:
		return RatingFair
	case RatingFair:
		return RatingGood
	case RatingGood, RatingExcellent:
		return RatingExcellent
	}
	return r
}

// NormalizeRating accepts any casing ("POOR", "Poor", "poor") and returns the
// canonical value. Free-form rating strings never cross a package boundary.
func NormalizeRating(s string) (CreditRating, error) {
	r := CreditRating(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", ErrInvalidRating
	}
	return r, nil
}

type Borrower struct {
	ID           uint64         `gorm:"primaryKey;column:id" json:"-"`
	BorrowerID   string         `gorm:"size:32;uniqueIndex:ux_borrowers_borrower_id" json:"borrower_id"`
	Name         string         `gorm:"size:255" json:"name"`
	Phone        string         `gorm:"size:32" json:"phone"`
	CreditRating CreditRating   `gorm:"type:varchar(16);default:'no_credit'" json:"credit_rating"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Borrower) TableName() string { return "borrowers" }
