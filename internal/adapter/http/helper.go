package http

import (
	"errors"
	"net/http"

	domainApplication "microfin-backoffice/internal/domain/application"
	domainBorrower "microfin-backoffice/internal/domain/borrower"
	domainLoan "microfin-backoffice/internal/domain/loan"
	domainRepayment "microfin-backoffice/internal/domain/repayment"
	"microfin-backoffice/internal/overdue"
	"microfin-backoffice/internal/pricing"
	ucApplication "microfin-backoffice/internal/usecase/application"

	"github.com/labstack/echo/v4"
)

// domainStatus maps domain errors onto HTTP codes. Everything unlisted is a
// storage failure and surfaces as 500; those propagate unmodified so the
// caller can retry (all mutations are single atomic units).
func domainStatus(err error) int {
	switch {
	case errors.Is(err, domainApplication.ErrNotFound),
		errors.Is(err, domainLoan.ErrNotFound),
		errors.Is(err, domainBorrower.ErrNotFound),
		errors.Is(err, domainRepayment.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainApplication.ErrAlreadyProcessed),
		errors.Is(err, domainApplication.ErrDuplicatePending),
		errors.Is(err, domainLoan.ErrNotPayable):
		return http.StatusConflict
	case errors.Is(err, pricing.ErrInvalidAmount),
		errors.Is(err, pricing.ErrInvalidLoanTerms),
		errors.Is(err, domainApplication.ErrEmptyReason),
		errors.Is(err, domainRepayment.ErrInvalidMethod),
		errors.Is(err, overdue.ErrInvalidOrder),
		errors.Is(err, ucApplication.ErrEmptyName):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func domainError(c echo.Context, err error) error {
	code := domainStatus(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		msg = "internal error"
	}
	return c.JSON(code, ErrorResponse{Error: msg})
}
