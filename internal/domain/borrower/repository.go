package borrower

import "context"

type Repository interface {
	Create(ctx context.Context, b *Borrower) error
	GetByBorrowerID(ctx context.Context, borrowerID string) (*Borrower, error)
	// GetByBorrowerIDForUpdate locks the row for the current transaction.
	GetByBorrowerIDForUpdate(ctx context.Context, borrowerID string) (*Borrower, error)
	Save(ctx context.Context, b *Borrower) error
}
