package application

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound         = errors.New("application not found")
	ErrAlreadyProcessed = errors.New("application already processed")
	ErrDuplicatePending = errors.New("borrower already has a pending application")
	ErrEmptyReason      = errors.New("rejection reason must not be empty")
	ErrInvalidStatus    = errors.New("invalid application status")
)

type Status string

const (
	StatusPending     Status = "pending"
	StatusUnderReview Status = "under_review"
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
)

// transitions is the one-directional application state machine. Approved and
// rejected are terminal; a rejected application is only reversible by
// submitting a brand-new one.
var transitions = map[Status][]Status{
	StatusPending:     {StatusUnderReview, StatusApproved, StatusRejected},
	StatusUnderReview: {StatusApproved, StatusRejected},
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusUnderReview, StatusApproved, StatusRejected:
		return true
	}
	return false
}

func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

func (s Status) CanTransition(to Status) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// NormalizeStatus maps any casing onto the canonical value.
func NormalizeStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

type Application struct {
	ID              uint64         `gorm:"primaryKey;column:id" json:"-"`
	ApplicationID   string         `gorm:"size:32;uniqueIndex:ux_applications_application_id" json:"application_id"`
	BorrowerID      string         `gorm:"size:32;index:idx_applications_borrower" json:"borrower_id"`
	RequestedAmount float64        `gorm:"type:decimal(18,2)" json:"requested_amount"`
	TermMonths      int            `json:"term_months"`
	Purpose         string         `gorm:"type:text" json:"purpose"`
	Status          Status         `gorm:"type:varchar(16);default:'pending'" json:"status"`
	ApprovedAmount  *float64       `gorm:"type:decimal(18,2)" json:"approved_amount,omitempty"`
	RejectionReason string         `gorm:"type:text" json:"rejection_reason,omitempty"`
	ReviewedAt      *time.Time     `json:"reviewed_at,omitempty"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Application) TableName() string { return "loan_applications" }
