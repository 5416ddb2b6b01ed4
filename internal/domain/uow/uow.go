package uow

import (
	"context"

	"microfin-backoffice/internal/domain/application"
	"microfin-backoffice/internal/domain/borrower"
	"microfin-backoffice/internal/domain/loan"
	"microfin-backoffice/internal/domain/repayment"
	"microfin-backoffice/internal/domain/sequence"
)

// Repos bundles the repositories bound to one transaction.
type Repos struct {
	Borrowers    borrower.Repository
	Applications application.Repository
	Loans        loan.Repository
	Repayments   repayment.Repository
	Sequences    sequence.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the loan row first, then pass it in
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
	// convenience: lock the application row first, then pass it in
	WithinApplicationTx(ctx context.Context, applicationID string, fn func(r Repos, a *application.Application) error) error
}
