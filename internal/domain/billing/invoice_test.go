package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatInvoiceNumber(t *testing.T) {
	assert.Equal(t, "INV-001", FormatInvoiceNumber(1))
	assert.Equal(t, "INV-048", FormatInvoiceNumber(48))
	assert.Equal(t, "INV-1000", FormatInvoiceNumber(1000), "wide numbers keep growing")
}

func newTestInvoice(t *testing.T, total int64) *Invoice {
	t.Helper()

	inv, err := NewInvoice(NewInvoiceParams{
		InvoiceNumber: "INV-001",
		MemberID:      1,
		Total:         decimal.NewFromInt(total),
	})
	require.NoError(t, err)
	return inv
}

func TestNewInvoice_ExtractsInclusiveTax(t *testing.T) {
	inv := newTestInvoice(t, 115)

	assert.True(t, inv.Subtotal().Equal(decimal.NewFromInt(100)), "got %s", inv.Subtotal())
	assert.True(t, inv.TaxAmount().Equal(decimal.NewFromInt(15)), "got %s", inv.TaxAmount())
	assert.True(t, inv.Subtotal().Add(inv.TaxAmount()).Equal(inv.Total()))
	assert.Equal(t, InvoiceStatusPending, inv.Status())
}

func TestNewInvoice_Validation(t *testing.T) {
	_, err := NewInvoice(NewInvoiceParams{MemberID: 1, Total: decimal.NewFromInt(100)})
	assert.Error(t, err, "number required")

	_, err = NewInvoice(NewInvoiceParams{InvoiceNumber: "INV-001", Total: decimal.NewFromInt(100)})
	assert.Error(t, err, "member required")

	_, err = NewInvoice(NewInvoiceParams{InvoiceNumber: "INV-001", MemberID: 1, Total: decimal.NewFromInt(-1)})
	assert.Error(t, err, "negative total rejected")
}

func TestInvoice_PaymentStatusProgression(t *testing.T) {
	inv := newTestInvoice(t, 300)

	require.NoError(t, inv.ApplyPayment(decimal.NewFromInt(100)))
	assert.Equal(t, InvoiceStatusPartial, inv.Status())

	require.NoError(t, inv.ApplyPayment(decimal.NewFromInt(300)))
	assert.Equal(t, InvoiceStatusPaid, inv.Status())

	assert.ErrorIs(t, inv.ApplyPayment(decimal.NewFromInt(400)), ErrInvoiceClosed)
}

func TestInvoice_Remaining(t *testing.T) {
	inv := newTestInvoice(t, 300)

	assert.True(t, inv.Remaining(decimal.NewFromInt(120)).Equal(decimal.NewFromInt(180)))
	assert.True(t, inv.Remaining(decimal.NewFromInt(500)).IsZero(), "overpayment clamps to zero")
}

func TestInvoice_CancelAndRefund(t *testing.T) {
	inv := newTestInvoice(t, 300)
	require.NoError(t, inv.Cancel())
	assert.Equal(t, InvoiceStatusCancelled, inv.Status())
	assert.ErrorIs(t, inv.Refund(), ErrInvoiceNotRefundable)

	inv = newTestInvoice(t, 300)
	require.NoError(t, inv.ApplyPayment(decimal.NewFromInt(300)))
	require.NoError(t, inv.Refund())
	assert.Equal(t, InvoiceStatusRefunded, inv.Status())
}

func TestNewPayment(t *testing.T) {
	p, err := NewPayment(1, 2, decimal.NewFromInt(100), PaymentMethodCash, "", "", time.Time{})
	require.NoError(t, err)

	assert.Equal(t, uint(1), p.InvoiceID())
	assert.Contains(t, p.Reference(), "pay_", "reference generated when absent")
	assert.False(t, p.PaidAt().IsZero())

	p, err = NewPayment(1, 2, decimal.NewFromInt(100), PaymentMethodCard, "RCPT-9", "", time.Time{})
	require.NoError(t, err)
	assert.Equal(t, "RCPT-9", p.Reference())

	_, err = NewPayment(1, 2, decimal.Zero, PaymentMethodCash, "", "", time.Time{})
	assert.Error(t, err, "zero amount rejected")

	_, err = NewPayment(1, 2, decimal.NewFromInt(100), "cheque", "", "", time.Time{})
	assert.Error(t, err, "unknown method rejected")
}
