package loan

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("loan not found")
	ErrNotPayable        = errors.New("loan is not payable")
	ErrInvalidTransition = errors.New("invalid loan state transition")
	ErrInvalidStatus     = errors.New("invalid loan status")
)

type Status string

const (
	StatusApproved  Status = "approved"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusClosed    Status = "closed"

	// StatusOverdue is a derived, read-time label produced by the overdue
	// classifier. It is never persisted and never a transition target.
	StatusOverdue Status = "overdue"
)

// transitions covers persisted statuses only. Payoff writes closed; the
// approved -> active flip belongs to the external disbursement collaborator.
var transitions = map[Status][]Status{
	StatusApproved: {StatusActive, StatusCompleted, StatusClosed},
	StatusActive:   {StatusCompleted, StatusClosed},
}

func (s Status) Valid() bool {
	switch s {
	case StatusApproved, StatusActive, StatusCompleted, StatusClosed:
		return true
	}
	return false
}

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusClosed
}

// Payable reports whether the loan is in the active family and can still
// accept repayments.
func (s Status) Payable() bool {
	return s == StatusApproved || s == StatusActive
}

func (s Status) CanTransition(to Status) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// NormalizeStatus maps any persisted casing ("Closed", "CLOSED") onto the
// canonical value.
func NormalizeStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

type Loan struct {
	ID                 uint64         `gorm:"primaryKey;column:id" json:"-"`
	LoanID             string         `gorm:"size:32;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	ApplicationID      string         `gorm:"size:32;uniqueIndex:ux_loans_application_id" json:"application_id"`
	BorrowerID         string         `gorm:"size:32;index:idx_loans_borrower" json:"borrower_id"`
	Principal          float64        `gorm:"type:decimal(18,2)" json:"principal"`
	InterestRate       float64        `gorm:"type:decimal(6,2)" json:"interest_rate"` // percent per annum
	TermMonths         int            `json:"term_months"`
	MonthlyPayment     float64        `gorm:"type:decimal(18,2)" json:"monthly_payment"`
	TotalAmount        float64        `gorm:"type:decimal(18,2)" json:"total_amount"`
	TotalInterest      float64        `gorm:"type:decimal(18,2)" json:"total_interest"`
	OutstandingBalance float64        `gorm:"type:decimal(18,2)" json:"outstanding_balance"`
	NextPaymentDate    *time.Time     `json:"next_payment_date,omitempty"`
	NextPaymentAmount  *float64       `gorm:"type:decimal(18,2)" json:"next_payment_amount,omitempty"`
	Status             Status         `gorm:"type:varchar(16);default:'approved'" json:"status"`
	StatusUpdatedAt    time.Time      `gorm:"autoCreateTime" json:"status_updated_at"`
	CreatedAt          time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Loan) TableName() string { return "loans" }
