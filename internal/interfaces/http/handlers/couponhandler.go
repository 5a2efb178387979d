package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/kinetix-inc/kinetix/internal/application/coupon/usecases"
	"github.com/kinetix-inc/kinetix/internal/domain/coupon"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
	"github.com/kinetix-inc/kinetix/internal/shared/utils"
)

type CouponHandler struct {
	createCouponUC     *usecases.CreateCouponUseCase
	validateCouponUC   *usecases.ValidateCouponUseCase
	listCouponsUC      *usecases.ListCouponsUseCase
	deactivateCouponUC *usecases.DeactivateCouponUseCase
	logger             logger.Interface
}

func NewCouponHandler(
	createCouponUC *usecases.CreateCouponUseCase,
	validateCouponUC *usecases.ValidateCouponUseCase,
	listCouponsUC *usecases.ListCouponsUseCase,
	deactivateCouponUC *usecases.DeactivateCouponUseCase,
) *CouponHandler {
	return &CouponHandler{
		createCouponUC:     createCouponUC,
		validateCouponUC:   validateCouponUC,
		listCouponsUC:      listCouponsUC,
		deactivateCouponUC: deactivateCouponUC,
		logger:             logger.NewLogger(),
	}
}

type CreateCouponRequest struct {
	Code         string           `json:"code"`
	DiscountType string           `json:"discount_type" binding:"required,oneof=percentage fixed"`
	Value        decimal.Decimal  `json:"value" binding:"required"`
	MaxDiscount  *decimal.Decimal `json:"max_discount"`
	MinPurchase  *decimal.Decimal `json:"min_purchase"`
	ValidFrom    time.Time        `json:"valid_from" binding:"required"`
	ValidUntil   time.Time        `json:"valid_until" binding:"required"`
	MaxUses      *uint            `json:"max_uses"`
}

type ValidateCouponRequest struct {
	Code           string          `json:"code" binding:"required"`
	PurchaseAmount decimal.Decimal `json:"purchase_amount" binding:"required"`
}

type CouponResponse struct {
	ID           uint             `json:"id"`
	Code         string           `json:"code"`
	DiscountType string           `json:"discount_type"`
	Value        decimal.Decimal  `json:"value"`
	MaxDiscount  *decimal.Decimal `json:"max_discount,omitempty"`
	MinPurchase  *decimal.Decimal `json:"min_purchase,omitempty"`
	ValidFrom    time.Time        `json:"valid_from"`
	ValidUntil   time.Time        `json:"valid_until"`
	MaxUses      *uint            `json:"max_uses,omitempty"`
	CurrentUses  uint             `json:"current_uses"`
	Active       bool             `json:"active"`
	CreatedAt    time.Time        `json:"created_at"`
}

type ValidateCouponResponse struct {
	Valid          bool            `json:"valid"`
	Reason         string          `json:"reason,omitempty"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	FinalAmount    decimal.Decimal `json:"final_amount"`
	Coupon         *CouponResponse `json:"coupon,omitempty"`
}

func toCouponResponse(c *coupon.Coupon) CouponResponse {
	return CouponResponse{
		ID:           c.ID(),
		Code:         c.Code(),
		DiscountType: c.DiscountType().String(),
		Value:        c.Value(),
		MaxDiscount:  c.MaxDiscount(),
		MinPurchase:  c.MinPurchase(),
		ValidFrom:    c.ValidFrom(),
		ValidUntil:   c.ValidUntil(),
		MaxUses:      c.MaxUses(),
		CurrentUses:  c.CurrentUses(),
		Active:       c.IsActive(),
		CreatedAt:    c.CreatedAt(),
	}
}

func (h *CouponHandler) CreateCoupon(c *gin.Context) {
	var req CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create coupon", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	created, err := h.createCouponUC.Execute(c.Request.Context(), usecases.CreateCouponCommand{
		Code:         req.Code,
		DiscountType: req.DiscountType,
		Value:        req.Value,
		MaxDiscount:  req.MaxDiscount,
		MinPurchase:  req.MinPurchase,
		ValidFrom:    req.ValidFrom,
		ValidUntil:   req.ValidUntil,
		MaxUses:      req.MaxUses,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, toCouponResponse(created), "Coupon created successfully")
}

func (h *CouponHandler) ValidateCoupon(c *gin.Context) {
	var req ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for validate coupon", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.validateCouponUC.Execute(c.Request.Context(), usecases.ValidateCouponQuery{
		Code:           req.Code,
		PurchaseAmount: req.PurchaseAmount,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	resp := ValidateCouponResponse{
		Valid:          result.Valid,
		Reason:         result.Reason,
		DiscountAmount: result.DiscountAmount,
		FinalAmount:    result.FinalAmount,
	}
	if result.Coupon != nil {
		couponResp := toCouponResponse(result.Coupon)
		resp.Coupon = &couponResp
	}

	utils.OKResponse(c, resp)
}

func (h *CouponHandler) ListCoupons(c *gin.Context) {
	pagination := utils.ParsePagination(c)
	activeOnly := c.Query("active") == "true"

	result, err := h.listCouponsUC.Execute(c.Request.Context(), usecases.ListCouponsQuery{
		Pagination: pagination,
		ActiveOnly: activeOnly,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	responses := make([]CouponResponse, 0, len(result.Coupons))
	for _, cp := range result.Coupons {
		responses = append(responses, toCouponResponse(cp))
	}

	utils.ListSuccessResponse(c, responses, result.Total, pagination.Page, pagination.PageSize)
}

func (h *CouponHandler) DeactivateCoupon(c *gin.Context) {
	couponID, err := utils.ParseUintParam(c, "id", "coupon")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	deactivated, err := h.deactivateCouponUC.Execute(c.Request.Context(), couponID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Coupon deactivated successfully", toCouponResponse(deactivated))
}
