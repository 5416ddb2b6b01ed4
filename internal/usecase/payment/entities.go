package payment

import (
	"time"

	domainLoan "microfin-backoffice/internal/domain/loan"
	domainRepayment "microfin-backoffice/internal/domain/repayment"
)

type RecordPaymentInput struct {
	LoanID      string
	Amount      float64
	PaymentDate time.Time
	Method      domainRepayment.Method
}

type RepaymentDTO struct {
	RepaymentID   string    `json:"repayment_id"`
	ReceiptNumber string    `json:"receipt_number"`
	LoanID        string    `json:"loan_id"`
	BorrowerID    string    `json:"borrower_id"`
	Amount        float64   `json:"amount"`
	AppliedAmount float64   `json:"applied_amount"`
	Method        string    `json:"method"`
	PaidAt        time.Time `json:"paid_at"`
}

type LoanDTO struct {
	LoanID             string     `json:"loan_id"`
	BorrowerID         string     `json:"borrower_id"`
	OutstandingBalance float64    `json:"outstanding_balance"`
	MonthlyPayment     float64    `json:"monthly_payment"`
	NextPaymentDate    *time.Time `json:"next_payment_date,omitempty"`
	NextPaymentAmount  *float64   `json:"next_payment_amount,omitempty"`
	Status             string     `json:"status"`
}

// PaymentResult pairs the ledger entry with the loan as updated by it.
type PaymentResult struct {
	Repayment *RepaymentDTO `json:"repayment"`
	Loan      *LoanDTO      `json:"updated_loan"`
}

func toRepaymentDTO(rp *domainRepayment.Repayment) *RepaymentDTO {
	return &RepaymentDTO{
		RepaymentID:   rp.RepaymentID,
		ReceiptNumber: rp.ReceiptNumber,
		LoanID:        rp.LoanPublicID,
		BorrowerID:    rp.BorrowerID,
		Amount:        rp.Amount,
		AppliedAmount: rp.AppliedAmount,
		Method:        string(rp.Method),
		PaidAt:        rp.PaidAt,
	}
}

func toLoanDTO(l *domainLoan.Loan) *LoanDTO {
	return &LoanDTO{
		LoanID:             l.LoanID,
		BorrowerID:         l.BorrowerID,
		OutstandingBalance: l.OutstandingBalance,
		MonthlyPayment:     l.MonthlyPayment,
		NextPaymentDate:    l.NextPaymentDate,
		NextPaymentAmount:  l.NextPaymentAmount,
		Status:             string(l.Status),
	}
}
