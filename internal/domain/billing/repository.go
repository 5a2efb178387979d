package billing

import (
	"context"

	"github.com/shopspring/decimal"
)

// InvoiceListFilter narrows invoice listings.
type InvoiceListFilter struct {
	MemberID *uint
	Status   *InvoiceStatus
}

// InvoiceRepository persists invoices.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *Invoice) error
	Update(ctx context.Context, invoice *Invoice) error
	GetByID(ctx context.Context, id uint) (*Invoice, error)
	GetByNumber(ctx context.Context, invoiceNumber string) (*Invoice, error)
	List(ctx context.Context, offset, limit int, filter InvoiceListFilter) ([]*Invoice, int64, error)
}

// PaymentRepository persists payments.
type PaymentRepository interface {
	Create(ctx context.Context, payment *Payment) error
	ListByInvoice(ctx context.Context, invoiceID uint) ([]*Payment, error)
	// SumByInvoice returns the total amount collected against an invoice.
	SumByInvoice(ctx context.Context, invoiceID uint) (decimal.Decimal, error)
}
