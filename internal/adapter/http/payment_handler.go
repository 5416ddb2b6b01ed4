package http

import (
	"net/http"
	"time"

	domainRepayment "microfin-backoffice/internal/domain/repayment"
	ucPayment "microfin-backoffice/internal/usecase/payment"

	"github.com/labstack/echo/v4"
)

type PaymentHandler struct {
	payments *ucPayment.Usecase
}

func NewPaymentHandler(payments *ucPayment.Usecase) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

type recordPaymentReq struct {
	Amount      float64 `json:"amount"       validate:"required,gt=0,intlike"`
	PaymentDate string  `json:"payment_date" validate:"omitempty,datetime=2006-01-02"`
	Method      string  `json:"method"       validate:"required,oneof=cash bank_transfer mobile_money"`
}

func (h *PaymentHandler) RecordPayment(c echo.Context) error {
	loanID := c.Param("loan_id")
	if loanID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing loan_id path param"})
	}
	var req recordPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	paidAt := time.Now().UTC()
	if req.PaymentDate != "" {
		d, err := time.Parse("2006-01-02", req.PaymentDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "payment_date must be YYYY-MM-DD"})
		}
		paidAt = d
	}

	res, err := h.payments.RecordPayment(c.Request().Context(), ucPayment.RecordPaymentInput{
		LoanID:      loanID,
		Amount:      req.Amount,
		PaymentDate: paidAt,
		Method:      domainRepayment.Method(req.Method),
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusCreated, res)
}

func (h *PaymentHandler) ListRepayments(c echo.Context) error {
	rows, err := h.payments.Ledger(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"repayments": rows})
}
