package overdue

import (
	"context"
	"time"

	domainLoan "microfin-backoffice/internal/domain/loan"
	"microfin-backoffice/internal/overdue"
)

// Usecase is the repo-backed read path over the pure classifier. It takes a
// plain snapshot, no locking; a concurrent payment just means the report is
// as of the moment the snapshot was read.
type Usecase struct {
	loans domainLoan.Repository
}

func NewUsecase(loans domainLoan.Repository) *Usecase {
	return &Usecase{loans: loans}
}

func (u *Usecase) Report(ctx context.Context, asOf time.Time, order overdue.Order) ([]overdue.Record, error) {
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}
	snapshot, err := u.loans.ListOutstanding(ctx)
	if err != nil {
		return nil, err
	}
	return overdue.Classify(snapshot, asOf, order)
}
