package billing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kinetix-inc/kinetix/internal/domain/pricing"
	"github.com/kinetix-inc/kinetix/internal/shared/constants"
)

// InvoiceStatus is the invoice payment status.
type InvoiceStatus string

const (
	InvoiceStatusPending   InvoiceStatus = "pending"
	InvoiceStatusPartial   InvoiceStatus = "partial"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
	InvoiceStatusRefunded  InvoiceStatus = "refunded"
)

var validInvoiceStatuses = map[InvoiceStatus]bool{
	InvoiceStatusPending:   true,
	InvoiceStatusPartial:   true,
	InvoiceStatusPaid:      true,
	InvoiceStatusCancelled: true,
	InvoiceStatusRefunded:  true,
}

// FormatInvoiceNumber renders a sequence value as an invoice number, e.g.
// INV-048. Numbers past 999 simply grow wider.
func FormatInvoiceNumber(seq uint64) string {
	return fmt.Sprintf("%s%03d", constants.InvoiceNumberPrefix, seq)
}

// Invoice is the billing document aggregate root. Prices use tax-inclusive
// extraction, so subtotal + taxAmount always equals total exactly.
type Invoice struct {
	id             uint
	invoiceNumber  string
	memberID       uint
	subscriptionID *uint

	subtotal       decimal.Decimal
	discountAmount decimal.Decimal
	taxAmount      decimal.Decimal
	total          decimal.Decimal
	couponCode     *string

	status    InvoiceStatus
	issuedAt  time.Time
	dueDate   *time.Time
	notes     string
	createdAt time.Time
	updatedAt time.Time
}

// NewInvoiceParams carries the inputs for issuing an invoice. Total is the
// tax-inclusive amount the member owes; the base and tax portions are
// extracted from it.
type NewInvoiceParams struct {
	InvoiceNumber  string
	MemberID       uint
	SubscriptionID *uint
	Total          decimal.Decimal
	DiscountAmount decimal.Decimal
	CouponCode     *string
	DueDate        *time.Time
	Notes          string
}

func NewInvoice(p NewInvoiceParams) (*Invoice, error) {
	if p.InvoiceNumber == "" {
		return nil, fmt.Errorf("invoice number is required")
	}
	if p.MemberID == 0 {
		return nil, fmt.Errorf("member ID is required")
	}
	if p.Total.IsNegative() {
		return nil, fmt.Errorf("invoice total cannot be negative")
	}
	if p.DiscountAmount.IsNegative() {
		return nil, fmt.Errorf("discount amount cannot be negative")
	}

	base, tax := pricing.ExtractTax(p.Total)

	now := time.Now().UTC()
	return &Invoice{
		invoiceNumber:  p.InvoiceNumber,
		memberID:       p.MemberID,
		subscriptionID: p.SubscriptionID,
		subtotal:       base,
		discountAmount: p.DiscountAmount,
		taxAmount:      tax,
		total:          p.Total,
		couponCode:     p.CouponCode,
		status:         InvoiceStatusPending,
		issuedAt:       now,
		dueDate:        p.DueDate,
		notes:          p.Notes,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// ReconstructInvoiceParams carries the persisted state of an invoice.
type ReconstructInvoiceParams struct {
	ID             uint
	InvoiceNumber  string
	MemberID       uint
	SubscriptionID *uint
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	Total          decimal.Decimal
	CouponCode     *string
	Status         InvoiceStatus
	IssuedAt       time.Time
	DueDate        *time.Time
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ReconstructInvoice rebuilds an invoice from persistence.
func ReconstructInvoice(p ReconstructInvoiceParams) (*Invoice, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("invoice ID cannot be zero")
	}
	if !validInvoiceStatuses[p.Status] {
		return nil, fmt.Errorf("invalid invoice status: %s", p.Status)
	}

	return &Invoice{
		id:             p.ID,
		invoiceNumber:  p.InvoiceNumber,
		memberID:       p.MemberID,
		subscriptionID: p.SubscriptionID,
		subtotal:       p.Subtotal,
		discountAmount: p.DiscountAmount,
		taxAmount:      p.TaxAmount,
		total:          p.Total,
		couponCode:     p.CouponCode,
		status:         p.Status,
		issuedAt:       p.IssuedAt,
		dueDate:        p.DueDate,
		notes:          p.Notes,
		createdAt:      p.CreatedAt,
		updatedAt:      p.UpdatedAt,
	}, nil
}

func (i *Invoice) ID() uint                        { return i.id }
func (i *Invoice) InvoiceNumber() string           { return i.invoiceNumber }
func (i *Invoice) MemberID() uint                  { return i.memberID }
func (i *Invoice) SubscriptionID() *uint           { return i.subscriptionID }
func (i *Invoice) Subtotal() decimal.Decimal       { return i.subtotal }
func (i *Invoice) DiscountAmount() decimal.Decimal { return i.discountAmount }
func (i *Invoice) TaxAmount() decimal.Decimal      { return i.taxAmount }
func (i *Invoice) Total() decimal.Decimal          { return i.total }
func (i *Invoice) CouponCode() *string             { return i.couponCode }
func (i *Invoice) Status() InvoiceStatus           { return i.status }
func (i *Invoice) IssuedAt() time.Time             { return i.issuedAt }
func (i *Invoice) DueDate() *time.Time             { return i.dueDate }
func (i *Invoice) Notes() string                   { return i.notes }
func (i *Invoice) CreatedAt() time.Time            { return i.createdAt }
func (i *Invoice) UpdatedAt() time.Time            { return i.updatedAt }

// SetID sets the invoice ID (only for persistence layer use)
func (i *Invoice) SetID(id uint) error {
	if i.id != 0 {
		return fmt.Errorf("invoice ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("invoice ID cannot be zero")
	}
	i.id = id
	return nil
}

// IsOpen reports whether the invoice can still accept payments.
func (i *Invoice) IsOpen() bool {
	return i.status == InvoiceStatusPending || i.status == InvoiceStatusPartial
}

// Remaining returns the unpaid balance given the amount already paid.
func (i *Invoice) Remaining(paid decimal.Decimal) decimal.Decimal {
	remaining := i.total.Sub(paid)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// ApplyPayment moves the status forward given the cumulative amount paid
// after the new payment is counted.
func (i *Invoice) ApplyPayment(totalPaid decimal.Decimal) error {
	if !i.IsOpen() {
		return fmt.Errorf("%w: status is %s", ErrInvoiceClosed, i.status)
	}

	if totalPaid.GreaterThanOrEqual(i.total) {
		i.status = InvoiceStatusPaid
	} else if totalPaid.IsPositive() {
		i.status = InvoiceStatusPartial
	}
	i.updatedAt = time.Now().UTC()
	return nil
}

// Cancel voids an unpaid or partially paid invoice.
func (i *Invoice) Cancel() error {
	if !i.IsOpen() {
		return fmt.Errorf("%w: status is %s", ErrInvoiceClosed, i.status)
	}
	i.status = InvoiceStatusCancelled
	i.updatedAt = time.Now().UTC()
	return nil
}

// Refund marks a paid or partially paid invoice as refunded.
func (i *Invoice) Refund() error {
	if i.status != InvoiceStatusPaid && i.status != InvoiceStatusPartial {
		return fmt.Errorf("%w: status is %s", ErrInvoiceNotRefundable, i.status)
	}
	i.status = InvoiceStatusRefunded
	i.updatedAt = time.Now().UTC()
	return nil
}
