package borrowermock

import (
	"context"

	domain "microfin-backoffice/internal/domain/borrower"

	"gorm.io/gorm"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository. Fill in
// only the fields a test needs.
type Repo struct {
	CreateFn                   func(ctx context.Context, b *domain.Borrower) error
	GetByBorrowerIDFn          func(ctx context.Context, borrowerID string) (*domain.Borrower, error)
	GetByBorrowerIDForUpdateFn func(ctx context.Context, borrowerID string) (*domain.Borrower, error)
	SaveFn                     func(ctx context.Context, b *domain.Borrower) error
}

func (m *Repo) Create(ctx context.Context, b *domain.Borrower) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, b)
	}
	return nil
}

func (m *Repo) GetByBorrowerID(ctx context.Context, borrowerID string) (*domain.Borrower, error) {
	if m.GetByBorrowerIDFn != nil {
		return m.GetByBorrowerIDFn(ctx, borrowerID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByBorrowerIDForUpdate(ctx context.Context, borrowerID string) (*domain.Borrower, error) {
	if m.GetByBorrowerIDForUpdateFn != nil {
		return m.GetByBorrowerIDForUpdateFn(ctx, borrowerID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) Save(ctx context.Context, b *domain.Borrower) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, b)
	}
	return nil
}
