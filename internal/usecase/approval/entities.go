package approval

import (
	"time"

	domainApplication "microfin-backoffice/internal/domain/application"
	domainLoan "microfin-backoffice/internal/domain/loan"
)

type ApproveInput struct {
	ApplicationID string
	// ApprovedAmount overrides the requested amount when set.
	ApprovedAmount *float64
	// RateOverride is honoured only when it equals a canonical tier rate;
	// anything else falls back to the computed tier.
	RateOverride *float64
}

type ApplicationDTO struct {
	ApplicationID   string     `json:"application_id"`
	BorrowerID      string     `json:"borrower_id"`
	RequestedAmount float64    `json:"requested_amount"`
	ApprovedAmount  *float64   `json:"approved_amount,omitempty"`
	TermMonths      int        `json:"term_months"`
	Status          string     `json:"status"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
}

type LoanDTO struct {
	LoanID             string     `json:"loan_id"`
	ApplicationID      string     `json:"application_id"`
	BorrowerID         string     `json:"borrower_id"`
	Principal          float64    `json:"principal"`
	InterestRate       float64    `json:"interest_rate"`
	TermMonths         int        `json:"term_months"`
	MonthlyPayment     float64    `json:"monthly_payment"`
	TotalAmount        float64    `json:"total_amount"`
	TotalInterest      float64    `json:"total_interest"`
	OutstandingBalance float64    `json:"outstanding_balance"`
	NextPaymentDate    *time.Time `json:"next_payment_date,omitempty"`
	NextPaymentAmount  *float64   `json:"next_payment_amount,omitempty"`
	Status             string     `json:"status"`
}

// ApprovalResult carries the application and the loan materialized with it.
type ApprovalResult struct {
	Application *ApplicationDTO `json:"application"`
	Loan        *LoanDTO        `json:"loan"`
}

// BulkResult partitions a bulk approval: one transaction per application,
// one failure never rolls back the others.
type BulkResult struct {
	Successful []BulkSuccess `json:"successful"`
	Failed     []BulkFailure `json:"failed"`
}

type BulkSuccess struct {
	ApplicationID string `json:"application_id"`
	LoanID        string `json:"loan_id"`
}

type BulkFailure struct {
	ApplicationID string `json:"application_id"`
	Error         string `json:"error"`
}

func toApplicationDTO(a *domainApplication.Application) *ApplicationDTO {
	return &ApplicationDTO{
		ApplicationID:   a.ApplicationID,
		BorrowerID:      a.BorrowerID,
		RequestedAmount: a.RequestedAmount,
		ApprovedAmount:  a.ApprovedAmount,
		TermMonths:      a.TermMonths,
		Status:          string(a.Status),
		RejectionReason: a.RejectionReason,
		ReviewedAt:      a.ReviewedAt,
	}
}

func toLoanDTO(l *domainLoan.Loan) *LoanDTO {
	return &LoanDTO{
		LoanID:             l.LoanID,
		ApplicationID:      l.ApplicationID,
		BorrowerID:         l.BorrowerID,
		Principal:          l.Principal,
		InterestRate:       l.InterestRate,
		TermMonths:         l.TermMonths,
		MonthlyPayment:     l.MonthlyPayment,
		TotalAmount:        l.TotalAmount,
		TotalInterest:      l.TotalInterest,
		OutstandingBalance: l.OutstandingBalance,
		NextPaymentDate:    l.NextPaymentDate,
		NextPaymentAmount:  l.NextPaymentAmount,
		Status:             string(l.Status),
	}
}
