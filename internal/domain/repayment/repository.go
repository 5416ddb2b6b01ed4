package repayment

import "context"

// Repository is append-only: no update or delete, ever.
type Repository interface {
	Create(ctx context.Context, r *Repayment) error
	GetByRepaymentID(ctx context.Context, repaymentID string) (*Repayment, error)
	ListByLoanID(ctx context.Context, loanNumericID uint64) ([]Repayment, error)
}
