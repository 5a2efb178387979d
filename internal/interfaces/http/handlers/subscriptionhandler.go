package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/kinetix-inc/kinetix/internal/application/subscription/usecases"
	"github.com/kinetix-inc/kinetix/internal/infrastructure/metrics"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
	"github.com/kinetix-inc/kinetix/internal/shared/utils"
)

type SubscriptionHandler struct {
	createSubscriptionUC   *usecases.CreateSubscriptionUseCase
	getSubscriptionUC      *usecases.GetSubscriptionUseCase
	listSubscriptionsUC    *usecases.ListSubscriptionsUseCase
	freezeSubscriptionUC   *usecases.FreezeSubscriptionUseCase
	unfreezeSubscriptionUC *usecases.UnfreezeSubscriptionUseCase
	renewSubscriptionUC    *usecases.RenewSubscriptionUseCase
	upgradeSubscriptionUC  *usecases.UpgradeSubscriptionUseCase
	cancelSubscriptionUC   *usecases.CancelSubscriptionUseCase
	deleteSubscriptionUC   *usecases.DeleteSubscriptionUseCase
	priceQuoteUC           *usecases.PriceQuoteUseCase
	logger                 logger.Interface
}

func NewSubscriptionHandler(
	createSubscriptionUC *usecases.CreateSubscriptionUseCase,
	getSubscriptionUC *usecases.GetSubscriptionUseCase,
	listSubscriptionsUC *usecases.ListSubscriptionsUseCase,
	freezeSubscriptionUC *usecases.FreezeSubscriptionUseCase,
	unfreezeSubscriptionUC *usecases.UnfreezeSubscriptionUseCase,
	renewSubscriptionUC *usecases.RenewSubscriptionUseCase,
	upgradeSubscriptionUC *usecases.UpgradeSubscriptionUseCase,
	cancelSubscriptionUC *usecases.CancelSubscriptionUseCase,
	deleteSubscriptionUC *usecases.DeleteSubscriptionUseCase,
	priceQuoteUC *usecases.PriceQuoteUseCase,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		createSubscriptionUC:   createSubscriptionUC,
		getSubscriptionUC:      getSubscriptionUC,
		listSubscriptionsUC:    listSubscriptionsUC,
		freezeSubscriptionUC:   freezeSubscriptionUC,
		unfreezeSubscriptionUC: unfreezeSubscriptionUC,
		renewSubscriptionUC:    renewSubscriptionUC,
		upgradeSubscriptionUC:  upgradeSubscriptionUC,
		cancelSubscriptionUC:   cancelSubscriptionUC,
		deleteSubscriptionUC:   deleteSubscriptionUC,
		priceQuoteUC:           priceQuoteUC,
		logger:                 logger.NewLogger(),
	}
}

type CreateSubscriptionRequest struct {
	MemberID        uint             `json:"member_id" binding:"required"`
	PackageID       uint             `json:"package_id" binding:"required"`
	StartDate       *time.Time       `json:"start_date"`
	DiscountPercent *decimal.Decimal `json:"discount_percent"`
	DiscountAmount  *decimal.Decimal `json:"discount_amount"`
	CouponCode      *string          `json:"coupon_code"`
	AutoRenew       bool             `json:"auto_renew"`
	InvoiceOnly     bool             `json:"invoice_only"`
}

type FreezeSubscriptionRequest struct {
	Reason string     `json:"reason" binding:"required"`
	Days   *int       `json:"days"`
	Until  *time.Time `json:"until"`
}

type RenewSubscriptionRequest struct {
	// PackageID switches the new term to another package; omitted or zero
	// renews on the current one.
	PackageID       uint             `json:"package_id"`
	StartDate       *time.Time       `json:"start_date"`
	DiscountPercent *decimal.Decimal `json:"discount_percent"`
	DiscountAmount  *decimal.Decimal `json:"discount_amount"`
	CouponCode      *string          `json:"coupon_code"`
	AutoRenew       bool             `json:"auto_renew"`
}

type UpgradeSubscriptionRequest struct {
	PackageID       uint             `json:"package_id" binding:"required"`
	DiscountPercent *decimal.Decimal `json:"discount_percent"`
	DiscountAmount  *decimal.Decimal `json:"discount_amount"`
	CouponCode      *string          `json:"coupon_code"`
}

type PriceQuoteRequest struct {
	PackageID       uint             `json:"package_id" binding:"required"`
	DiscountPercent *decimal.Decimal `json:"discount_percent"`
	DiscountAmount  *decimal.Decimal `json:"discount_amount"`
	CouponCode      *string          `json:"coupon_code"`
}

type CreateSubscriptionResponse struct {
	Subscription SubscriptionResponse `json:"subscription"`
	Invoice      *InvoiceResponse     `json:"invoice,omitempty"`
}

type RenewSubscriptionResponse struct {
	Subscription SubscriptionResponse  `json:"subscription"`
	Invoice      *InvoiceResponse      `json:"invoice,omitempty"`
	Previous     *SubscriptionResponse `json:"previous,omitempty"`
}

type UpgradeSubscriptionResponse struct {
	Subscription SubscriptionResponse `json:"subscription"`
	Invoice      *InvoiceResponse     `json:"invoice,omitempty"`
	DeltaAmount  decimal.Decimal      `json:"delta_amount"`
}

func (h *SubscriptionHandler) CreateSubscription(c *gin.Context) {
	var req CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create subscription", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	startDate := time.Now()
	if req.StartDate != nil {
		startDate = *req.StartDate
	}

	result, err := h.createSubscriptionUC.Execute(c.Request.Context(), usecases.CreateSubscriptionCommand{
		MemberID:        req.MemberID,
		PackageID:       req.PackageID,
		StartDate:       startDate,
		DiscountPercent: req.DiscountPercent,
		DiscountAmount:  req.DiscountAmount,
		CouponCode:      req.CouponCode,
		AutoRenew:       req.AutoRenew,
		InvoiceOnly:     req.InvoiceOnly,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	metrics.SubscriptionsCreated.Inc()

	utils.CreatedResponse(c, CreateSubscriptionResponse{
		Subscription: toSubscriptionResponse(result.Subscription),
		Invoice:      toInvoiceResponsePtr(result.Invoice),
	}, "Subscription created successfully")
}

func (h *SubscriptionHandler) GetSubscription(c *gin.Context) {
	subscriptionID, err := utils.ParseUintParam(c, "id", "subscription")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	sub, err := h.getSubscriptionUC.Execute(c.Request.Context(), subscriptionID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, toSubscriptionResponse(sub))
}

func (h *SubscriptionHandler) ListSubscriptions(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	query := usecases.ListSubscriptionsQuery{
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

	result, err := h.listSubscriptionsUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, toSubscriptionResponses(result.Subscriptions), result.Total, pagination.Page, pagination.PageSize)
}

func (h *SubscriptionHandler) FreezeSubscription(c *gin.Context) {
	subscriptionID, err := utils.ParseUintParam(c, "id", "subscription")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req FreezeSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for freeze subscription", "subscription_id", subscriptionID, "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	sub, err := h.freezeSubscriptionUC.Execute(c.Request.Context(), usecases.FreezeSubscriptionCommand{
		SubscriptionID: subscriptionID,
		Reason:         req.Reason,
		Days:           req.Days,
		Until:          req.Until,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription frozen successfully", toSubscriptionResponse(sub))
}

func (h *SubscriptionHandler) UnfreezeSubscription(c *gin.Context) {
	subscriptionID, err := utils.ParseUintParam(c, "id", "subscription")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	sub, err := h.unfreezeSubscriptionUC.Execute(c.Request.Context(), subscriptionID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription unfrozen successfully", toSubscriptionResponse(sub))
}

func (h *SubscriptionHandler) RenewSubscription(c *gin.Context) {
	subscriptionID, err := utils.ParseUintParam(c, "id", "subscription")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req RenewSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for renew subscription", "subscription_id", subscriptionID, "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	startDate := time.Now()
	if req.StartDate != nil {
		startDate = *req.StartDate
	}

	result, err := h.renewSubscriptionUC.Execute(c.Request.Context(), usecases.RenewSubscriptionCommand{
		SubscriptionID:  subscriptionID,
		PackageID:       req.PackageID,
		StartDate:       startDate,
		DiscountPercent: req.DiscountPercent,
		DiscountAmount:  req.DiscountAmount,
		CouponCode:      req.CouponCode,
		AutoRenew:       req.AutoRenew,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	metrics.SubscriptionsCreated.Inc()

	resp := RenewSubscriptionResponse{
		Subscription: toSubscriptionResponse(result.Subscription),
		Invoice:      toInvoiceResponsePtr(result.Invoice),
	}
	if result.Previous != nil {
		previous := toSubscriptionResponse(result.Previous)
		resp.Previous = &previous
	}

	utils.CreatedResponse(c, resp, "Subscription renewed successfully")
}

func (h *SubscriptionHandler) UpgradeSubscription(c *gin.Context) {
	subscriptionID, err := utils.ParseUintParam(c, "id", "subscription")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpgradeSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for upgrade subscription", "subscription_id", subscriptionID, "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.upgradeSubscriptionUC.Execute(c.Request.Context(), usecases.UpgradeSubscriptionCommand{
		SubscriptionID:  subscriptionID,
		PackageID:       req.PackageID,
		DiscountPercent: req.DiscountPercent,
		DiscountAmount:  req.DiscountAmount,
		CouponCode:      req.CouponCode,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription upgraded successfully", UpgradeSubscriptionResponse{
		Subscription: toSubscriptionResponse(result.Subscription),
		Invoice:      toInvoiceResponsePtr(result.Invoice),
		DeltaAmount:  result.DeltaAmount,
	})
}

func (h *SubscriptionHandler) CancelSubscription(c *gin.Context) {
	subscriptionID, err := utils.ParseUintParam(c, "id", "subscription")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	sub, err := h.cancelSubscriptionUC.Execute(c.Request.Context(), subscriptionID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription cancelled successfully", toSubscriptionResponse(sub))
}

func (h *SubscriptionHandler) DeleteSubscription(c *gin.Context) {
	subscriptionID, err := utils.ParseUintParam(c, "id", "subscription")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteSubscriptionUC.Execute(c.Request.Context(), subscriptionID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription deleted successfully", nil)
}

// PriceQuote previews the charge for a package and discount combination
// without creating anything.
func (h *SubscriptionHandler) PriceQuote(c *gin.Context) {
	var req PriceQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for price quote", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	quote, err := h.priceQuoteUC.Execute(c.Request.Context(), usecases.PriceQuoteQuery{
		PackageID:       req.PackageID,
		DiscountPercent: req.DiscountPercent,
		DiscountAmount:  req.DiscountAmount,
		CouponCode:      req.CouponCode,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, toQuoteResponse(quote))
}
