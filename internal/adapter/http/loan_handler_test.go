package http

import (
	"bytes"
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	domainLoan "microfin-backoffice/internal/domain/loan"
	"microfin-backoffice/internal/domain/uow"
	"microfin-backoffice/internal/testutil/loanmock"
	"microfin-backoffice/internal/testutil/uowmock"
	ucOverdue "microfin-backoffice/internal/usecase/overdue"
	ucPayment "microfin-backoffice/internal/usecase/payment"

	"github.com/labstack/echo/v4"
)

// -------- shared test helpers --------

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

// -------- tests --------

func TestGetLoan_Success(t *testing.T) {
	e := newEchoWithValidator()

	due := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	monthly := 90_258.0
	loans := &loanmock.Repo{
		GetByLoanIDFn: func(ctx context.Context, loanID string) (*domainLoan.Loan, error) {
			return &domainLoan.Loan{
				ID:                 1,
				LoanID:             loanID,
				BorrowerID:         strings.Repeat("b", 32),
				OutstandingBalance: 1_083_096,
				MonthlyPayment:     monthly,
				NextPaymentDate:    &due,
				NextPaymentAmount:  &monthly,
				Status:             domainLoan.StatusActive,
			}, nil
		},
	}
	tx := &uowmock.UoW{
		WithinTxFn: func(ctx context.Context, fn func(r uow.Repos) error) error {
			return fn(uow.Repos{Loans: loans})
		},
	}
	h := NewLoanHandler(ucPayment.NewUsecase(tx), nil)

	req := httptest.NewRequest(stdhttp.MethodGet, "/loans/"+strings.Repeat("l", 32), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("loan_id")
	c.SetParamValues(strings.Repeat("l", 32))

	if err := h.GetLoan(c); err != nil {
		t.Fatalf("GetLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", rec.Code, rec.Body.String())
	}

	var dto ucPayment.LoanDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if dto.LoanID != strings.Repeat("l", 32) || dto.Status != "active" {
		t.Fatalf("unexpected dto: %+v", dto)
	}
	if dto.OutstandingBalance != 1_083_096 {
		t.Fatalf("balance = %v, want 1083096", dto.OutstandingBalance)
	}
}

func TestGetLoan_NotFound(t *testing.T) {
	e := newEchoWithValidator()

	tx := &uowmock.UoW{
		WithinTxFn: func(ctx context.Context, fn func(r uow.Repos) error) error {
			return fn(uow.Repos{Loans: &loanmock.Repo{}})
		},
	}
	h := NewLoanHandler(ucPayment.NewUsecase(tx), nil)

	req := httptest.NewRequest(stdhttp.MethodGet, "/loans/missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("loan_id")
	c.SetParamValues("missing")

	if err := h.GetLoan(c); err != nil {
		t.Fatalf("GetLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func overdueFixture() *loanmock.Repo {
	day := func(d int) *time.Time {
		ts := time.Date(2026, 8, d, 0, 0, 0, 0, time.UTC)
		return &ts
	}
	return &loanmock.Repo{
		ListOutstandingFn: func(ctx context.Context) ([]domainLoan.Loan, error) {
			return []domainLoan.Loan{
				{LoanID: strings.Repeat("1", 32), BorrowerID: strings.Repeat("a", 32), OutstandingBalance: 100_000, MonthlyPayment: 100_000, NextPaymentDate: day(25), Status: domainLoan.StatusActive},
				{LoanID: strings.Repeat("2", 32), BorrowerID: strings.Repeat("b", 32), OutstandingBalance: 100_000, MonthlyPayment: 100_000, NextPaymentDate: day(1), Status: domainLoan.StatusActive},
			}, nil
		},
	}
}

func TestOverdueReport_OrderByDaysOverdue(t *testing.T) {
	e := newEchoWithValidator()
	h := NewLoanHandler(nil, ucOverdue.NewUsecase(overdueFixture()))

	req := httptest.NewRequest(stdhttp.MethodGet, "/loans/overdue?as_of=2026-08-30&order_by=days_overdue", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.OverdueReport(c); err != nil {
		t.Fatalf("OverdueReport error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", rec.Code, rec.Body.String())
	}

	var body struct {
		AsOf    string `json:"as_of"`
		OrderBy string `json:"order_by"`
		Count   int    `json:"count"`
		Overdue []struct {
			LoanID      string `json:"loan_id"`
			DaysOverdue int    `json:"days_overdue"`
			Bucket      string `json:"bucket"`
		} `json:"overdue"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if body.AsOf != "2026-08-30" {
		t.Fatalf("as_of = %q, want 2026-08-30", body.AsOf)
	}
	if body.OrderBy != "days_overdue" {
		t.Fatalf("order_by = %q, want days_overdue", body.OrderBy)
	}
	if body.Count != 2 || len(body.Overdue) != 2 {
		t.Fatalf("count = %d, overdue = %d, want 2/2", body.Count, len(body.Overdue))
	}
	// worst first
	if body.Overdue[0].LoanID != strings.Repeat("2", 32) {
		t.Fatalf("expected most overdue loan first, got %s", body.Overdue[0].LoanID)
	}
	if body.Overdue[0].Bucket != "8-30" || body.Overdue[1].Bucket != "1-7" {
		t.Fatalf("bucket mismatch: %+v", body.Overdue)
	}
}

func TestOverdueReport_OrderByDueDate(t *testing.T) {
	e := newEchoWithValidator()
	h := NewLoanHandler(nil, ucOverdue.NewUsecase(overdueFixture()))

	req := httptest.NewRequest(stdhttp.MethodGet, "/loans/overdue?as_of=2026-08-30&order_by=due_date", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.OverdueReport(c); err != nil {
		t.Fatalf("OverdueReport error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestOverdueReport_BadInputs(t *testing.T) {
	e := newEchoWithValidator()
	h := NewLoanHandler(nil, ucOverdue.NewUsecase(overdueFixture()))

	// missing order_by: the ordering is never defaulted
	req := httptest.NewRequest(stdhttp.MethodGet, "/loans/overdue?as_of=2026-08-30", nil)
	rec0 := httptest.NewRecorder()
	if err := h.OverdueReport(e.NewContext(req, rec0)); err != nil {
		t.Fatalf("OverdueReport error: %v", err)
	}
	if rec0.Code != stdhttp.StatusBadRequest {
		t.Fatalf("missing order_by => want 400, got %d", rec0.Code)
	}

	// unparseable as_of
	req = httptest.NewRequest(stdhttp.MethodGet, "/loans/overdue?as_of=30-08-2026&order_by=due_date", nil)
	rec := httptest.NewRecorder()
	if err := h.OverdueReport(e.NewContext(req, rec)); err != nil {
		t.Fatalf("OverdueReport error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("bad as_of => want 400, got %d", rec.Code)
	}

	// unknown order_by
	req = httptest.NewRequest(stdhttp.MethodGet, "/loans/overdue?order_by=alphabetical", nil)
	rec = httptest.NewRecorder()
	if err := h.OverdueReport(e.NewContext(req, rec)); err != nil {
		t.Fatalf("OverdueReport error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("bad order_by => want 400, got %d", rec.Code)
	}
}
