package payment

import (
	"context"
	"errors"
	"time"

	domainLoan "microfin-backoffice/internal/domain/loan"
	domainRepayment "microfin-backoffice/internal/domain/repayment"
	"microfin-backoffice/internal/domain/sequence"
	"microfin-backoffice/internal/domain/uow"
	"microfin-backoffice/internal/pricing"
	"microfin-backoffice/pkg/id"

	"gorm.io/gorm"
)

// nextPaymentLeadDays mirrors the approval workflow's schedule step.
const nextPaymentLeadDays = 30

type Usecase struct {
	uow uow.UnitOfWork
	now func() time.Time
}

func NewUsecase(tx uow.UnitOfWork) *Usecase {
	return &Usecase{uow: tx, now: func() time.Time { return time.Now().UTC() }}
}

// RecordPayment applies one repayment to one loan inside a single
// transaction with the loan row locked, so two concurrent payments can never
// read the same outstanding balance. An overpayment is clamped: the ledger
// entry records the tendered amount, the loan absorbs only the applied part,
// and the balance never goes negative.
func (u *Usecase) RecordPayment(ctx context.Context, in RecordPaymentInput) (*PaymentResult, error) {
	if in.Amount <= 0 {
		return nil, pricing.ErrInvalidAmount
	}
	if !in.Method.Valid() {
		return nil, domainRepayment.ErrInvalidMethod
	}
	if u.uow == nil {
		return nil, domainLoan.ErrNotFound
	}
	var res *PaymentResult

	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domainLoan.Loan) error {
		if !l.Status.Payable() {
			return domainLoan.ErrNotPayable
		}

		// Receipt allocation rides the same transaction: the sequence row is
		// locked alongside the loan, so numbers stay monotonic and never leak
		// on rollback.
		seq, err := r.Sequences.Next(ctx, sequence.ReceiptSequence)
		if err != nil {
			return err
		}

		applied := in.Amount
		if applied > l.OutstandingBalance {
			applied = l.OutstandingBalance
		}

		rp := &domainRepayment.Repayment{
			RepaymentID:   id.NewID32(),
			ReceiptNumber: id.ReceiptNumber(seq),
			LoanID:        l.ID,
			LoanPublicID:  l.LoanID,
			BorrowerID:    l.BorrowerID,
			Amount:        in.Amount,
			AppliedAmount: applied,
			Method:        in.Method,
			PaidAt:        in.PaymentDate.UTC(),
		}
		if err := r.Repayments.Create(ctx, rp); err != nil {
			return err
		}

		now := u.now()
		l.OutstandingBalance -= applied
		if l.OutstandingBalance > 0 {
			next := now.AddDate(0, 0, nextPaymentLeadDays)
			l.NextPaymentDate = &next
			monthly := l.MonthlyPayment
			l.NextPaymentAmount = &monthly
		} else {
			l.Status = domainLoan.StatusClosed
			l.StatusUpdatedAt = now
			l.NextPaymentDate = nil
			l.NextPaymentAmount = nil

			// Payoff promotes the borrower one rung, capped at excellent.
			b, err := r.Borrowers.GetByBorrowerIDForUpdate(ctx, l.BorrowerID)
			if err != nil {
				return err
			}
			b.CreditRating = b.CreditRating.Promote()
			if err := r.Borrowers.Save(ctx, b); err != nil {
				return err
			}
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		res = &PaymentResult{Repayment: toRepaymentDTO(rp), Loan: toLoanDTO(l)}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainLoan.ErrNotFound
		}
		return nil, err
	}
	return res, nil
}

// GetLoan reads one loan snapshot.
func (u *Usecase) GetLoan(ctx context.Context, loanID string) (*LoanDTO, error) {
	var out *LoanDTO

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByLoanID(ctx, loanID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainLoan.ErrNotFound
			}
			return err
		}
		out = toLoanDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Ledger lists the append-only repayment history for a loan.
func (u *Usecase) Ledger(ctx context.Context, loanID string) ([]RepaymentDTO, error) {
	var out []RepaymentDTO

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByLoanID(ctx, loanID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainLoan.ErrNotFound
			}
			return err
		}
		rows, err := r.Repayments.ListByLoanID(ctx, l.ID)
		if err != nil {
			return err
		}
		out = make([]RepaymentDTO, 0, len(rows))
		for i := range rows {
			out = append(out, *toRepaymentDTO(&rows[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
