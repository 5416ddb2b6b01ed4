package http

import (
	"net/http"

	ucApplication "microfin-backoffice/internal/usecase/application"
	ucApproval "microfin-backoffice/internal/usecase/approval"

	"github.com/labstack/echo/v4"
)

type ApplicationHandler struct {
	apps      *ucApplication.Usecase
	approvals *ucApproval.Usecase
}

func NewApplicationHandler(apps *ucApplication.Usecase, approvals *ucApproval.Usecase) *ApplicationHandler {
	return &ApplicationHandler{apps: apps, approvals: approvals}
}

type registerBorrowerReq struct {
	Name  string `json:"name"  validate:"required"`
	Phone string `json:"phone"`
}

func (h *ApplicationHandler) RegisterBorrower(c echo.Context) error {
	var req registerBorrowerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.apps.RegisterBorrower(c.Request().Context(), ucApplication.RegisterBorrowerInput{
		Name:  req.Name,
		Phone: req.Phone,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type submitApplicationReq struct {
	BorrowerID      string  `json:"borrower_id"      validate:"required,hex32"`
	RequestedAmount float64 `json:"requested_amount" validate:"required,gt=0,intlike"`
	TermMonths      int     `json:"term_months"      validate:"required,gte=1"`
	Purpose         string  `json:"purpose"`
}

func (h *ApplicationHandler) SubmitApplication(c echo.Context) error {
	var req submitApplicationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.apps.Submit(c.Request().Context(), ucApplication.SubmitInput{
		BorrowerID:      req.BorrowerID,
		RequestedAmount: req.RequestedAmount,
		TermMonths:      req.TermMonths,
		Purpose:         req.Purpose,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ApplicationHandler) GetApplication(c echo.Context) error {
	dto, err := h.apps.Get(c.Request().Context(), c.Param("application_id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type approveApplicationReq struct {
	ApprovedAmount *float64 `json:"approved_amount" validate:"omitempty,gt=0,intlike"`
	RateOverride   *float64 `json:"rate_override"   validate:"omitempty,gte=0"`
}

func (h *ApplicationHandler) ApproveApplication(c echo.Context) error {
	applicationID := c.Param("application_id")
	if applicationID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing application_id path param"})
	}
	var req approveApplicationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	res, err := h.approvals.Approve(c.Request().Context(), ucApproval.ApproveInput{
		ApplicationID:  applicationID,
		ApprovedAmount: req.ApprovedAmount,
		RateOverride:   req.RateOverride,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

type rejectApplicationReq struct {
	Reason string `json:"reason" validate:"required"`
}

func (h *ApplicationHandler) RejectApplication(c echo.Context) error {
	applicationID := c.Param("application_id")
	if applicationID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing application_id path param"})
	}
	var req rejectApplicationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.approvals.Reject(c.Request().Context(), applicationID, req.Reason)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type bulkApproveReq struct {
	ApplicationIDs []string `json:"application_ids" validate:"required,min=1,dive,hex32"`
	ApprovedAmount *float64 `json:"approved_amount" validate:"omitempty,gt=0,intlike"`
}

func (h *ApplicationHandler) BulkApprove(c echo.Context) error {
	var req bulkApproveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	res := h.approvals.BulkApprove(c.Request().Context(), req.ApplicationIDs, req.ApprovedAmount)
	// partial success is still a 200: the partition tells the caller which
	// items need attention
	return c.JSON(http.StatusOK, res)
}
