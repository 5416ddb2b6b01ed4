package approval

import (
	"context"
	"errors"
	"strings"
	"time"

	domainApplication "microfin-backoffice/internal/domain/application"
	domainBorrower "microfin-backoffice/internal/domain/borrower"
	domainLoan "microfin-backoffice/internal/domain/loan"
	"microfin-backoffice/internal/domain/uow"
	"microfin-backoffice/internal/pricing"
	"microfin-backoffice/pkg/id"

	"gorm.io/gorm"
)

// nextPaymentLeadDays is the grace between a loan event and its next due date.
const nextPaymentLeadDays = 30

type Usecase struct {
	uow   uow.UnitOfWork
	rates *pricing.RatePolicy
	now   func() time.Time
}

// NewUsecase: pass a UoW for the atomic approve/reject flows plus the rate
// policy used to price materialized loans.
func NewUsecase(tx uow.UnitOfWork, rates *pricing.RatePolicy) *Usecase {
	return &Usecase{
		uow:   tx,
		rates: rates,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Approve runs the whole approval as one transaction: price the principal,
// materialize the loan, flip the application, and apply the first-loan
// credit-rating baseline. All of it commits together or none of it does.
func (u *Usecase) Approve(ctx context.Context, in ApproveInput) (*ApprovalResult, error) {
	if u.uow == nil {
		return nil, domainApplication.ErrNotFound
	}
	var res *ApprovalResult

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		app, err := r.Applications.GetByApplicationIDForUpdate(ctx, in.ApplicationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainApplication.ErrNotFound
			}
			return err
		}
		if app.Status != domainApplication.StatusPending {
			return domainApplication.ErrAlreadyProcessed
		}

		principal := app.RequestedAmount
		if in.ApprovedAmount != nil {
			principal = *in.ApprovedAmount
		}
		rate, err := u.rates.Resolve(principal, in.RateOverride)
		if err != nil {
			return err
		}
		sched, err := pricing.Amortize(principal, rate, app.TermMonths)
		if err != nil {
			return err
		}

		now := u.now()
		next := now.AddDate(0, 0, nextPaymentLeadDays)
		l := &domainLoan.Loan{
			LoanID:             id.NewID32(),
			ApplicationID:      app.ApplicationID,
			BorrowerID:         app.BorrowerID,
			Principal:          principal,
			InterestRate:       rate,
			TermMonths:         app.TermMonths,
			MonthlyPayment:     sched.MonthlyPayment,
			TotalAmount:        sched.TotalAmount,
			TotalInterest:      sched.TotalInterest,
			OutstandingBalance: sched.TotalAmount,
			NextPaymentDate:    &next,
			NextPaymentAmount:  &sched.MonthlyPayment,
			Status:             domainLoan.StatusApproved,
			StatusUpdatedAt:    now,
		}
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}

		app.Status = domainApplication.StatusApproved
		app.ApprovedAmount = &principal
		app.ReviewedAt = &now
		if err := r.Applications.Save(ctx, app); err != nil {
			return err
		}

		// First loan for this borrower: baseline the rating to fair, but
		// never downgrade.
		count, err := r.Loans.CountByBorrowerID(ctx, app.BorrowerID)
		if err != nil {
			return err
		}
		if count == 1 {
			b, err := r.Borrowers.GetByBorrowerIDForUpdate(ctx, app.BorrowerID)
			if err != nil {
				return err
			}
			if b.CreditRating.Before(domainBorrower.RatingFair) {
				b.CreditRating = domainBorrower.RatingFair
				if err := r.Borrowers.Save(ctx, b); err != nil {
					return err
				}
			}
		}

		res = &ApprovalResult{Application: toApplicationDTO(app), Loan: toLoanDTO(l)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Reject is the terminal counterpart: same idempotency guard, same atomicity,
// and it demands a non-empty reason before any row is touched.
func (u *Usecase) Reject(ctx context.Context, applicationID, reason string) (*ApplicationDTO, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, domainApplication.ErrEmptyReason
	}
	if u.uow == nil {
		return nil, domainApplication.ErrNotFound
	}
	var dto *ApplicationDTO

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		app, err := r.Applications.GetByApplicationIDForUpdate(ctx, applicationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainApplication.ErrNotFound
			}
			return err
		}
		if app.Status != domainApplication.StatusPending {
			return domainApplication.ErrAlreadyProcessed
		}

		now := u.now()
		app.Status = domainApplication.StatusRejected
		app.RejectionReason = reason
		app.ReviewedAt = &now
		if err := r.Applications.Save(ctx, app); err != nil {
			return err
		}

		dto = toApplicationDTO(app)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// BulkApprove pushes each application through the same atomic unit
// independently and partitions the outcome; it never aborts the batch.
func (u *Usecase) BulkApprove(ctx context.Context, applicationIDs []string, approvedAmount *float64) BulkResult {
	out := BulkResult{
		Successful: make([]BulkSuccess, 0, len(applicationIDs)),
		Failed:     make([]BulkFailure, 0),
	}
	for _, appID := range applicationIDs {
		res, err := u.Approve(ctx, ApproveInput{ApplicationID: appID, ApprovedAmount: approvedAmount})
		if err != nil {
			out.Failed = append(out.Failed, BulkFailure{ApplicationID: appID, Error: err.Error()})
			continue
		}
		out.Successful = append(out.Successful, BulkSuccess{
			ApplicationID: appID,
			LoanID:        res.Loan.LoanID,
		})
	}
	return out
}
