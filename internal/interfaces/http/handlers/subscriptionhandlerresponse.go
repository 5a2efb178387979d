package handlers

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kinetix-inc/kinetix/internal/domain/billing"
	"github.com/kinetix-inc/kinetix/internal/domain/pricing"
	"github.com/kinetix-inc/kinetix/internal/domain/subscription"
)

type SubscriptionResponse struct {
	ID              uint            `json:"id"`
	MemberID        uint            `json:"member_id"`
	PackageID       uint            `json:"package_id"`
	PackageName     string          `json:"package_name"`
	DurationDays    int             `json:"duration_days"`
	VisitQuota      *int            `json:"visit_quota,omitempty"`
	VIP             bool            `json:"vip"`
	StartDate       time.Time       `json:"start_date"`
	EndDate         time.Time       `json:"end_date"`
	OriginalEndDate time.Time       `json:"original_end_date"`
	FrozenReason    string          `json:"frozen_reason,omitempty"`
	FrozenStartDate *time.Time      `json:"frozen_start_date,omitempty"`
	FrozenEndDate   *time.Time      `json:"frozen_end_date,omitempty"`
	FrozenDays      int             `json:"frozen_days"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	FinalPrice      decimal.Decimal `json:"final_price"`
	CouponCode      *string         `json:"coupon_code,omitempty"`
	AutoRenew       bool            `json:"auto_renew"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type InvoiceResponse struct {
	ID             uint            `json:"id"`
	InvoiceNumber  string          `json:"invoice_number"`
	MemberID       uint            `json:"member_id"`
	SubscriptionID *uint           `json:"subscription_id,omitempty"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	Total          decimal.Decimal `json:"total"`
	CouponCode     *string         `json:"coupon_code,omitempty"`
	Status         string          `json:"status"`
	IssuedAt       time.Time       `json:"issued_at"`
	DueDate        *time.Time      `json:"due_date,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

type QuoteResponse struct {
	ListPrice     decimal.Decimal `json:"list_price"`
	DiscountTotal decimal.Decimal `json:"discount_total"`
	FinalPrice    decimal.Decimal `json:"final_price"`
	BasePrice     decimal.Decimal `json:"base_price"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
}

func toSubscriptionResponse(s *subscription.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:              s.ID(),
		MemberID:        s.MemberID(),
		PackageID:       s.PackageID(),
		PackageName:     s.PackageName(),
		DurationDays:    s.DurationDays(),
		VisitQuota:      s.VisitQuota(),
		VIP:             s.IsVIP(),
		StartDate:       s.StartDate(),
		EndDate:         s.EndDate(),
		OriginalEndDate: s.OriginalEndDate(),
		FrozenReason:    s.FrozenReason(),
		FrozenStartDate: s.FrozenStartDate(),
		FrozenEndDate:   s.FrozenEndDate(),
		FrozenDays:      s.FrozenDays(),
		TotalPrice:      s.TotalPrice(),
		DiscountAmount:  s.DiscountAmount(),
		FinalPrice:      s.FinalPrice(),
		CouponCode:      s.CouponCode(),
		AutoRenew:       s.AutoRenew(),
		Status:          s.Status().String(),
		CreatedAt:       s.CreatedAt(),
		UpdatedAt:       s.UpdatedAt(),
	}
}

func toSubscriptionResponses(subscriptions []*subscription.Subscription) []SubscriptionResponse {
	responses := make([]SubscriptionResponse, 0, len(subscriptions))
	for _, s := range subscriptions {
		responses = append(responses, toSubscriptionResponse(s))
	}
	return responses
}

func toInvoiceResponse(inv *billing.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:             inv.ID(),
		InvoiceNumber:  inv.InvoiceNumber(),
		MemberID:       inv.MemberID(),
		SubscriptionID: inv.SubscriptionID(),
		Subtotal:       inv.Subtotal(),
		DiscountAmount: inv.DiscountAmount(),
		TaxAmount:      inv.TaxAmount(),
		Total:          inv.Total(),
		CouponCode:     inv.CouponCode(),
		Status:         string(inv.Status()),
		IssuedAt:       inv.IssuedAt(),
		DueDate:        inv.DueDate(),
		Notes:          inv.Notes(),
		CreatedAt:      inv.CreatedAt(),
	}
}

func toInvoiceResponsePtr(inv *billing.Invoice) *InvoiceResponse {
	if inv == nil {
		return nil
	}
	resp := toInvoiceResponse(inv)
	return &resp
}

func toQuoteResponse(q *pricing.Quote) QuoteResponse {
	return QuoteResponse{
		ListPrice:     q.ListPrice,
		DiscountTotal: q.DiscountTotal,
		FinalPrice:    q.FinalPrice,
		BasePrice:     q.BasePrice,
		TaxAmount:     q.TaxAmount,
	}
}
