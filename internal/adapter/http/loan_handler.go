package http

import (
	"net/http"
	"time"

	"microfin-backoffice/internal/overdue"
	ucOverdue "microfin-backoffice/internal/usecase/overdue"
	ucPayment "microfin-backoffice/internal/usecase/payment"

	"github.com/labstack/echo/v4"
)

type LoanHandler struct {
	payments *ucPayment.Usecase
	overdue  *ucOverdue.Usecase
}

func NewLoanHandler(payments *ucPayment.Usecase, od *ucOverdue.Usecase) *LoanHandler {
	return &LoanHandler{payments: payments, overdue: od}
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	dto, err := h.payments.GetLoan(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// OverdueReport serves GET /loans/overdue?as_of=YYYY-MM-DD&order_by=...
// Omitting as_of means "now". The ordering is always the caller's choice:
// order_by is required, days_overdue or due_date.
func (h *LoanHandler) OverdueReport(c echo.Context) error {
	var asOf time.Time
	if raw := c.QueryParam("as_of"); raw != "" {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "as_of must be YYYY-MM-DD"})
		}
		asOf = d
	}

	raw := c.QueryParam("order_by")
	if raw == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing order_by query param (days_overdue or due_date)"})
	}
	order, err := overdue.ParseOrder(raw)
	if err != nil {
		return domainError(c, err)
	}

	records, err := h.overdue.Report(c.Request().Context(), asOf, order)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"as_of":    reportAsOf(asOf),
		"order_by": string(order),
		"count":    len(records),
		"overdue":  records,
	})
}

func reportAsOf(asOf time.Time) string {
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}
	return asOf.Format("2006-01-02")
}
