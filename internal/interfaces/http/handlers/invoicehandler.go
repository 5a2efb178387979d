package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/kinetix-inc/kinetix/internal/application/billing/usecases"
	"github.com/kinetix-inc/kinetix/internal/domain/billing"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
	"github.com/kinetix-inc/kinetix/internal/shared/utils"
)

type InvoiceHandler struct {
	createInvoiceUC *usecases.CreateInvoiceUseCase
	getInvoiceUC    *usecases.GetInvoiceUseCase
	listInvoicesUC  *usecases.ListInvoicesUseCase
	recordPaymentUC *usecases.RecordPaymentUseCase
	cancelInvoiceUC *usecases.CancelInvoiceUseCase
	refundInvoiceUC *usecases.RefundInvoiceUseCase
	logger          logger.Interface
}

func NewInvoiceHandler(
	createInvoiceUC *usecases.CreateInvoiceUseCase,
	getInvoiceUC *usecases.GetInvoiceUseCase,
	listInvoicesUC *usecases.ListInvoicesUseCase,
	recordPaymentUC *usecases.RecordPaymentUseCase,
	cancelInvoiceUC *usecases.CancelInvoiceUseCase,
	refundInvoiceUC *usecases.RefundInvoiceUseCase,
) *InvoiceHandler {
	return &InvoiceHandler{
		createInvoiceUC: createInvoiceUC,
		getInvoiceUC:    getInvoiceUC,
		listInvoicesUC:  listInvoicesUC,
		recordPaymentUC: recordPaymentUC,
		cancelInvoiceUC: cancelInvoiceUC,
		refundInvoiceUC: refundInvoiceUC,
		logger:          logger.NewLogger(),
	}
}

type CreateInvoiceRequest struct {
	MemberID       uint            `json:"member_id" binding:"required"`
	SubscriptionID *uint           `json:"subscription_id"`
	Total          decimal.Decimal `json:"total" binding:"required"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	CouponCode     *string         `json:"coupon_code"`
	DueDate        *time.Time      `json:"due_date"`
	Notes          string          `json:"notes"`
}

type RecordPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Method    string          `json:"method" binding:"required,oneof=cash card transfer other"`
	Reference string          `json:"reference"`
	Notes     string          `json:"notes"`
	PaidAt    *time.Time      `json:"paid_at"`
}

type PaymentResponse struct {
	ID        uint            `json:"id"`
	InvoiceID uint            `json:"invoice_id"`
	MemberID  uint            `json:"member_id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Reference string          `json:"reference,omitempty"`
	PaidAt    time.Time       `json:"paid_at"`
	Notes     string          `json:"notes,omitempty"`
}

type RecordPaymentResponse struct {
	Payment   PaymentResponse `json:"payment"`
	Invoice   InvoiceResponse `json:"invoice"`
	Remaining decimal.Decimal `json:"remaining"`
}

type InvoiceDetailResponse struct {
	Invoice   InvoiceResponse   `json:"invoice"`
	Payments  []PaymentResponse `json:"payments"`
	Paid      decimal.Decimal   `json:"paid"`
	Remaining decimal.Decimal   `json:"remaining"`
}

func toPaymentResponse(p *billing.Payment) PaymentResponse {
	return PaymentResponse{
		ID:        p.ID(),
		InvoiceID: p.InvoiceID(),
		MemberID:  p.MemberID(),
		Amount:    p.Amount(),
		Method:    string(p.Method()),
		Reference: p.Reference(),
		PaidAt:    p.PaidAt(),
		Notes:     p.Notes(),
	}
}

func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create invoice", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	inv, err := h.createInvoiceUC.Execute(c.Request.Context(), usecases.CreateInvoiceCommand{
		MemberID:       req.MemberID,
		SubscriptionID: req.SubscriptionID,
		Total:          req.Total,
		DiscountAmount: req.DiscountAmount,
		CouponCode:     req.CouponCode,
		DueDate:        req.DueDate,
		Notes:          req.Notes,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, toInvoiceResponse(inv), "Invoice created successfully")
}

func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	invoiceID, err := utils.ParseUintParam(c, "id", "invoice")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getInvoiceUC.Execute(c.Request.Context(), invoiceID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	payments := make([]PaymentResponse, 0, len(result.Payments))
	for _, p := range result.Payments {
		payments = append(payments, toPaymentResponse(p))
	}

	utils.OKResponse(c, InvoiceDetailResponse{
		Invoice:   toInvoiceResponse(result.Invoice),
		Payments:  payments,
		Paid:      result.Paid,
		Remaining: result.Remaining,
	})
}

func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	query := usecases.ListInvoicesQuery{
		Pagination: pagination,
		Status:     c.Query("status"),
	}
	memberID, err := utils.ParseUintQuery(c, "member_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if memberID > 0 {
		query.MemberID = &memberID
	}

	result, err := h.listInvoicesUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	responses := make([]InvoiceResponse, 0, len(result.Invoices))
	for _, inv := range result.Invoices {
		responses = append(responses, toInvoiceResponse(inv))
	}

	utils.ListSuccessResponse(c, responses, result.Total, pagination.Page, pagination.PageSize)
}

func (h *InvoiceHandler) RecordPayment(c *gin.Context) {
	invoiceID, err := utils.ParseUintParam(c, "id", "invoice")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for record payment", "invoice_id", invoiceID, "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	paidAt := time.Now()
	if req.PaidAt != nil {
		paidAt = *req.PaidAt
	}

	result, err := h.recordPaymentUC.Execute(c.Request.Context(), usecases.RecordPaymentCommand{
		InvoiceID: invoiceID,
		Amount:    req.Amount,
		Method:    req.Method,
		Reference: req.Reference,
		Notes:     req.Notes,
		PaidAt:    paidAt,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, RecordPaymentResponse{
		Payment:   toPaymentResponse(result.Payment),
		Invoice:   toInvoiceResponse(result.Invoice),
		Remaining: result.Remaining,
	}, "Payment recorded successfully")
}

func (h *InvoiceHandler) CancelInvoice(c *gin.Context) {
	invoiceID, err := utils.ParseUintParam(c, "id", "invoice")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	inv, err := h.cancelInvoiceUC.Execute(c.Request.Context(), invoiceID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Invoice cancelled successfully", toInvoiceResponse(inv))
}

func (h *InvoiceHandler) RefundInvoice(c *gin.Context) {
	invoiceID, err := utils.ParseUintParam(c, "id", "invoice")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	inv, err := h.refundInvoiceUC.Execute(c.Request.Context(), invoiceID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Invoice refunded successfully", toInvoiceResponse(inv))
}
