package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate locks the loan row for the current transaction;
	// per-loan serialization for payment application hangs off this lock.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	CountByBorrowerID(ctx context.Context, borrowerID string) (int64, error)
	// ListOutstanding returns loans with outstanding balance > 0, the
	// snapshot consumed by the overdue classifier.
	ListOutstanding(ctx context.Context) ([]Loan, error)
	Save(ctx context.Context, l *Loan) error
}
