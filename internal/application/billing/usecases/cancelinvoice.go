package usecases

import (
	"context"
	"fmt"

	"github.com/kinetix-inc/kinetix/internal/domain/billing"
	apperrors "github.com/kinetix-inc/kinetix/internal/shared/errors"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
)

type CancelInvoiceUseCase struct {
	invoiceRepo billing.InvoiceRepository
	logger      logger.Interface
}

func NewCancelInvoiceUseCase(invoiceRepo billing.InvoiceRepository, logger logger.Interface) *CancelInvoiceUseCase {
	return &CancelInvoiceUseCase{
		invoiceRepo: invoiceRepo,
		logger:      logger,
	}
}

func (uc *CancelInvoiceUseCase) Execute(ctx context.Context, invoiceID uint) (*billing.Invoice, error) {
	invoice, err := uc.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		uc.logger.Errorw("failed to get invoice", "error", err, "invoice_id", invoiceID)
		return nil, err
	}

	if err := invoice.Cancel(); err != nil {
		uc.logger.Warnw("invoice cancel rejected", "error", err, "invoice_id", invoiceID)
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.invoiceRepo.Update(ctx, invoice); err != nil {
		uc.logger.Errorw("failed to update invoice", "error", err, "invoice_id", invoiceID)
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}

	uc.logger.Infow("invoice cancelled", "invoice_id", invoiceID, "invoice_number", invoice.InvoiceNumber())
	return invoice, nil
}
