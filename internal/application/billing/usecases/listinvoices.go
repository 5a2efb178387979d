package usecases

import (
	"context"
	"fmt"

	"github.com/kinetix-inc/kinetix/internal/domain/billing"
	apperrors "github.com/kinetix-inc/kinetix/internal/shared/errors"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
	"github.com/kinetix-inc/kinetix/internal/shared/utils"
)

type ListInvoicesQuery struct {
	Pagination utils.Pagination
	MemberID   *uint
	Status     string
}

type ListInvoicesResult struct {
	Invoices []*billing.Invoice
	Total    int64
}

type ListInvoicesUseCase struct {
	invoiceRepo billing.InvoiceRepository
	logger      logger.Interface
}

func NewListInvoicesUseCase(invoiceRepo billing.InvoiceRepository, logger logger.Interface) *ListInvoicesUseCase {
	return &ListInvoicesUseCase{
		invoiceRepo: invoiceRepo,
		logger:      logger,
	}
}

func (uc *ListInvoicesUseCase) Execute(ctx context.Context, query ListInvoicesQuery) (*ListInvoicesResult, error) {
	filter := billing.InvoiceListFilter{MemberID: query.MemberID}

	if query.Status != "" {
		status := billing.InvoiceStatus(query.Status)
		switch status {
		case billing.InvoiceStatusPending, billing.InvoiceStatusPartial, billing.InvoiceStatusPaid,
			billing.InvoiceStatusCancelled, billing.InvoiceStatusRefunded:
			filter.Status = &status
		default:
			return nil, apperrors.NewValidationError(fmt.Sprintf("invalid invoice status: %s", query.Status))
		}
	}

	invoices, total, err := uc.invoiceRepo.List(ctx, query.Pagination.Offset(), query.Pagination.PageSize, filter)
	if err != nil {
		uc.logger.Errorw("failed to list invoices", "error", err)
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	return &ListInvoicesResult{Invoices: invoices, Total: total}, nil
}
