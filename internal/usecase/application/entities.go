package application

import (
	"time"

	domainApplication "microfin-backoffice/internal/domain/application"
)

type RegisterBorrowerInput struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type BorrowerDTO struct {
	BorrowerID   string    `json:"borrower_id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	CreditRating string    `json:"credit_rating"`
	CreatedAt    time.Time `json:"created_at"`
}

type SubmitInput struct {
	BorrowerID      string  `json:"borrower_id"`
	RequestedAmount float64 `json:"requested_amount"`
	TermMonths      int     `json:"term_months"`
	Purpose         string  `json:"purpose"`
}

type ApplicationDTO struct {
	ApplicationID   string     `json:"application_id"`
	BorrowerID      string     `json:"borrower_id"`
	RequestedAmount float64    `json:"requested_amount"`
	TermMonths      int        `json:"term_months"`
	Purpose         string     `json:"purpose"`
	Status          string     `json:"status"`
	ApprovedAmount  *float64   `json:"approved_amount,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func toApplicationDTO(a *domainApplication.Application) *ApplicationDTO {
	return &ApplicationDTO{
		ApplicationID:   a.ApplicationID,
		BorrowerID:      a.BorrowerID,
		RequestedAmount: a.RequestedAmount,
		TermMonths:      a.TermMonths,
		Purpose:         a.Purpose,
		Status:          string(a.Status),
		ApprovedAmount:  a.ApprovedAmount,
		RejectionReason: a.RejectionReason,
		ReviewedAt:      a.ReviewedAt,
		CreatedAt:       a.CreatedAt,
	}
}
