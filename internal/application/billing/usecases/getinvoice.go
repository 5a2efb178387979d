package usecases

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/kinetix-inc/kinetix/internal/domain/billing"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
)

type GetInvoiceResult struct {
	Invoice   *billing.Invoice
	Payments  []*billing.Payment
	Paid      decimal.Decimal
	Remaining decimal.Decimal
}

type GetInvoiceUseCase struct {
	invoiceRepo billing.InvoiceRepository
	paymentRepo billing.PaymentRepository
	logger      logger.Interface
}

func NewGetInvoiceUseCase(invoiceRepo billing.InvoiceRepository, paymentRepo billing.PaymentRepository, logger logger.Interface) *GetInvoiceUseCase {
	return &GetInvoiceUseCase{
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		logger:      logger,
	}
}

func (uc *GetInvoiceUseCase) Execute(ctx context.Context, invoiceID uint) (*GetInvoiceResult, error) {
	invoice, err := uc.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		uc.logger.Errorw("failed to get invoice", "error", err, "invoice_id", invoiceID)
		return nil, err
	}

	payments, err := uc.paymentRepo.ListByInvoice(ctx, invoiceID)
	if err != nil {
		uc.logger.Errorw("failed to list payments", "error", err, "invoice_id", invoiceID)
		return nil, err
	}

	paid := decimal.Zero
	for _, p := range payments {
		paid = paid.Add(p.Amount())
	}

	return &GetInvoiceResult{
		Invoice:   invoice,
		Payments:  payments,
		Paid:      paid,
		Remaining: invoice.Remaining(paid),
	}, nil
}
