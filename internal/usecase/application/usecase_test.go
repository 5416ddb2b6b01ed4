package application

import (
	"context"
	"errors"
	"testing"

	domainApplication "microfin-backoffice/internal/domain/application"
	domainBorrower "microfin-backoffice/internal/domain/borrower"
	"microfin-backoffice/internal/pricing"
	"microfin-backoffice/internal/testutil/applicationmock"
	"microfin-backoffice/internal/testutil/borrowermock"

	"gorm.io/gorm"
)

func knownBorrower() *borrowermock.Repo {
	return &borrowermock.Repo{
		GetByBorrowerIDFn: func(ctx context.Context, id string) (*domainBorrower.Borrower, error) {
			if id != "brw-1" {
				return nil, gorm.ErrRecordNotFound
			}
			return &domainBorrower.Borrower{BorrowerID: "brw-1", CreditRating: domainBorrower.RatingNoCredit}, nil
		},
	}
}

func TestRegisterBorrower(t *testing.T) {
	var created *domainBorrower.Borrower
	borrowers := &borrowermock.Repo{
		CreateFn: func(ctx context.Context, b *domainBorrower.Borrower) error {
			created = b
			return nil
		},
	}
	uc := NewUsecase(borrowers, &applicationmock.Repo{})

	dto, err := uc.RegisterBorrower(context.Background(), RegisterBorrowerInput{Name: "  Siti Aminah ", Phone: "+62811"})
	if err != nil {
		t.Fatalf("RegisterBorrower: %v", err)
	}
	if created.CreditRating != domainBorrower.RatingNoCredit {
		t.Fatalf("new borrower rating = %s, want no_credit", created.CreditRating)
	}
	if dto.Name != "Siti Aminah" || len(dto.BorrowerID) != 32 {
		t.Fatalf("dto = %+v", dto)
	}

	if _, err := uc.RegisterBorrower(context.Background(), RegisterBorrowerInput{Name: "  "}); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("want ErrEmptyName, got %v", err)
	}
}

func TestSubmit(t *testing.T) {
	tests := []struct {
		name    string
		apps    *applicationmock.Repo
		input   SubmitInput
		wantErr error
	}{
		{
			name: "happy path",
			apps: &applicationmock.Repo{},
			input: SubmitInput{
				BorrowerID: "brw-1", RequestedAmount: 300_000, TermMonths: 6, Purpose: "stock for kiosk",
			},
		},
		{
			name:    "non-positive amount",
			apps:    &applicationmock.Repo{},
			input:   SubmitInput{BorrowerID: "brw-1", RequestedAmount: 0, TermMonths: 6},
			wantErr: pricing.ErrInvalidAmount,
		},
		{
			name:    "term below one month",
			apps:    &applicationmock.Repo{},
			input:   SubmitInput{BorrowerID: "brw-1", RequestedAmount: 300_000, TermMonths: 0},
			wantErr: pricing.ErrInvalidLoanTerms,
		},
		{
			name:    "unknown borrower",
			apps:    &applicationmock.Repo{},
			input:   SubmitInput{BorrowerID: "brw-404", RequestedAmount: 300_000, TermMonths: 6},
			wantErr: domainBorrower.ErrNotFound,
		},
		{
			name: "duplicate pending application",
			apps: &applicationmock.Repo{
				GetPendingByBorrowerIDFn: func(ctx context.Context, id string) (*domainApplication.Application, error) {
					return &domainApplication.Application{ApplicationID: "app-existing"}, nil
				},
			},
			input:   SubmitInput{BorrowerID: "brw-1", RequestedAmount: 300_000, TermMonths: 6},
			wantErr: domainApplication.ErrDuplicatePending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var created *domainApplication.Application
			tt.apps.CreateFn = func(ctx context.Context, a *domainApplication.Application) error {
				created = a
				return nil
			}
			uc := NewUsecase(knownBorrower(), tt.apps)

			dto, err := uc.Submit(context.Background(), tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("want err=%v, got %v", tt.wantErr, err)
				}
				if created != nil {
					t.Fatalf("application created despite error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Submit: %v", err)
			}
			if created.Status != domainApplication.StatusPending {
				t.Fatalf("status = %s, want pending", created.Status)
			}
			if dto.ApplicationID == "" || dto.RequestedAmount != tt.input.RequestedAmount {
				t.Fatalf("dto = %+v", dto)
			}
		})
	}
}

func TestGet(t *testing.T) {
	apps := &applicationmock.Repo{
		GetByApplicationIDFn: func(ctx context.Context, id string) (*domainApplication.Application, error) {
			if id != "app-1" {
				return nil, gorm.ErrRecordNotFound
			}
			return &domainApplication.Application{ApplicationID: "app-1", Status: domainApplication.StatusPending}, nil
		},
	}
	uc := NewUsecase(knownBorrower(), apps)

	if dto, err := uc.Get(context.Background(), "app-1"); err != nil || dto.ApplicationID != "app-1" {
		t.Fatalf("Get: %v, %+v", err, dto)
	}
	if _, err := uc.Get(context.Background(), "app-404"); !errors.Is(err, domainApplication.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
