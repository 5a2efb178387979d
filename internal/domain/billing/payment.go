package billing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kinetix-inc/kinetix/internal/shared/id"
)

// PaymentMethod is how a payment was collected.
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodOther    PaymentMethod = "other"
)

// ParsePaymentMethod validates and converts a string to a PaymentMethod.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer, PaymentMethodOther:
		return PaymentMethod(s), nil
	default:
		return "", fmt.Errorf("invalid payment method: %s", s)
	}
}

// Payment is a single collection against an invoice.
type Payment struct {
	id        uint
	invoiceID uint
	memberID  uint
	amount    decimal.Decimal
	method    PaymentMethod
	// reference is the external receipt or transaction reference; one is
	// generated when the caller does not supply it.
	reference string
	paidAt    time.Time
	notes     string
	createdAt time.Time
}

func NewPayment(invoiceID, memberID uint, amount decimal.Decimal, method PaymentMethod, reference, notes string, paidAt time.Time) (*Payment, error) {
	if invoiceID == 0 {
		return nil, fmt.Errorf("invoice ID is required")
	}
	if memberID == 0 {
		return nil, fmt.Errorf("member ID is required")
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("payment amount must be positive")
	}
	if _, err := ParsePaymentMethod(string(method)); err != nil {
		return nil, err
	}
	if reference == "" {
		generated, err := id.GenerateWithPrefix(id.PrefixPayment, id.DefaultLength)
		if err != nil {
			return nil, fmt.Errorf("generate payment reference: %w", err)
		}
		reference = generated
	}
	if paidAt.IsZero() {
		paidAt = time.Now().UTC()
	}

	return &Payment{
		invoiceID: invoiceID,
		memberID:  memberID,
		amount:    amount,
		method:    method,
		reference: reference,
		paidAt:    paidAt,
		notes:     notes,
		createdAt: time.Now().UTC(),
	}, nil
}

// ReconstructPayment rebuilds a payment from persistence.
func ReconstructPayment(id, invoiceID, memberID uint, amount decimal.Decimal, method PaymentMethod, reference string, paidAt time.Time, notes string, createdAt time.Time) (*Payment, error) {
	if id == 0 {
		return nil, fmt.Errorf("payment ID cannot be zero")
	}
	return &Payment{
		id:        id,
		invoiceID: invoiceID,
		memberID:  memberID,
		amount:    amount,
		method:    method,
		reference: reference,
		paidAt:    paidAt,
		notes:     notes,
		createdAt: createdAt,
	}, nil
}

func (p *Payment) ID() uint                { return p.id }
func (p *Payment) InvoiceID() uint         { return p.invoiceID }
func (p *Payment) MemberID() uint          { return p.memberID }
func (p *Payment) Amount() decimal.Decimal { return p.amount }
func (p *Payment) Method() PaymentMethod   { return p.method }
func (p *Payment) Reference() string       { return p.reference }
func (p *Payment) PaidAt() time.Time       { return p.paidAt }
func (p *Payment) Notes() string           { return p.notes }
func (p *Payment) CreatedAt() time.Time    { return p.createdAt }

// SetID sets the payment ID (only for persistence layer use)
func (p *Payment) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("payment ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("payment ID cannot be zero")
	}
	p.id = id
	return nil
}
