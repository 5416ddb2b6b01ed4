package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domainApplication "microfin-backoffice/internal/domain/application"
	domainBorrower "microfin-backoffice/internal/domain/borrower"
	"microfin-backoffice/internal/pricing"
	"microfin-backoffice/pkg/id"

	"gorm.io/gorm"
)

var ErrEmptyName = errors.New("borrower name must not be empty")

// Usecase covers the submission side of the intake flow: registering
// borrowers and creating loan applications for the approval workflow to
// consume.
type Usecase struct {
	borrowers domainBorrower.Repository
	apps      domainApplication.Repository
}

func NewUsecase(borrowers domainBorrower.Repository, apps domainApplication.Repository) *Usecase {
	return &Usecase{borrowers: borrowers, apps: apps}
}

func (u *Usecase) RegisterBorrower(ctx context.Context, in RegisterBorrowerInput) (*BorrowerDTO, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, ErrEmptyName
	}

	b := &domainBorrower.Borrower{
		BorrowerID:   id.NewID32(),
		Name:         strings.TrimSpace(in.Name),
		Phone:        strings.TrimSpace(in.Phone),
		CreditRating: domainBorrower.RatingNoCredit,
	}
	if err := u.borrowers.Create(ctx, b); err != nil {
		return nil, err
	}
	return &BorrowerDTO{
		BorrowerID:   b.BorrowerID,
		Name:         b.Name,
		Phone:        b.Phone,
		CreditRating: string(b.CreditRating),
		CreatedAt:    b.CreatedAt,
	}, nil
}

func (u *Usecase) Submit(ctx context.Context, in SubmitInput) (*ApplicationDTO, error) {
	if in.RequestedAmount <= 0 {
		return nil, pricing.ErrInvalidAmount
	}
	if in.TermMonths < 1 {
		return nil, pricing.ErrInvalidLoanTerms
	}

	if _, err := u.borrowers.GetByBorrowerID(ctx, in.BorrowerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainBorrower.ErrNotFound
		}
		return nil, err
	}

	// Block a second pending application for the same borrower.
	pending, err := u.apps.GetPendingByBorrowerID(ctx, in.BorrowerID)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: %s", domainApplication.ErrDuplicatePending, pending.ApplicationID)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	a := &domainApplication.Application{
		ApplicationID:   id.NewID32(),
		BorrowerID:      in.BorrowerID,
		RequestedAmount: in.RequestedAmount,
		TermMonths:      in.TermMonths,
		Purpose:         in.Purpose,
		Status:          domainApplication.StatusPending,
	}
	if err := u.apps.Create(ctx, a); err != nil {
		return nil, err
	}
	return toApplicationDTO(a), nil
}

func (u *Usecase) Get(ctx context.Context, applicationID string) (*ApplicationDTO, error) {
	a, err := u.apps.GetByApplicationID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainApplication.ErrNotFound
		}
		return nil, err
	}
	return toApplicationDTO(a), nil
}
