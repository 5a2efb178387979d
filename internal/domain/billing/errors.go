package billing

import "errors"

var (
	ErrInvoiceClosed        = errors.New("invoice is closed")
	ErrInvoiceNotRefundable = errors.New("invoice is not refundable")
	ErrPaymentExceedsTotal  = errors.New("payment exceeds remaining balance")
)
