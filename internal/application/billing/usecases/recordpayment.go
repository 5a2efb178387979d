package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kinetix-inc/kinetix/internal/domain/billing"
	"github.com/kinetix-inc/kinetix/internal/domain/subscription"
	"github.com/kinetix-inc/kinetix/internal/domain/subscription/valueobjects"
	"github.com/kinetix-inc/kinetix/internal/shared/db"
	apperrors "github.com/kinetix-inc/kinetix/internal/shared/errors"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
)

type RecordPaymentCommand struct {
	InvoiceID uint
	Amount    decimal.Decimal
	Method    string
	Reference string
	Notes     string
	// PaidAt defaults to now when zero.
	PaidAt time.Time
}

type RecordPaymentResult struct {
	Payment   *billing.Payment
	Invoice   *billing.Invoice
	Remaining decimal.Decimal
}

// RecordPaymentUseCase records a collection against an invoice and rolls
// the invoice status forward. Paying off the opening invoice of a pending
// subscription activates it in the same transaction.
type RecordPaymentUseCase struct {
	invoiceRepo      billing.InvoiceRepository
	paymentRepo      billing.PaymentRepository
	subscriptionRepo subscription.Repository
	txMgr            *db.TransactionManager
	logger           logger.Interface
}

func NewRecordPaymentUseCase(
	invoiceRepo billing.InvoiceRepository,
	paymentRepo billing.PaymentRepository,
	subscriptionRepo subscription.Repository,
	txMgr *db.TransactionManager,
	logger logger.Interface,
) *RecordPaymentUseCase {
	return &RecordPaymentUseCase{
		invoiceRepo:      invoiceRepo,
		paymentRepo:      paymentRepo,
		subscriptionRepo: subscriptionRepo,
		txMgr:            txMgr,
		logger:           logger,
	}
}

func (uc *RecordPaymentUseCase) Execute(ctx context.Context, cmd RecordPaymentCommand) (*RecordPaymentResult, error) {
	method, err := billing.ParsePaymentMethod(cmd.Method)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	var result *RecordPaymentResult

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		invoice, err := uc.invoiceRepo.GetByID(txCtx, cmd.InvoiceID)
		if err != nil {
			return err
		}
		if !invoice.IsOpen() {
			return apperrors.NewValidationError(fmt.Sprintf("invoice %s is %s", invoice.InvoiceNumber(), invoice.Status()))
		}

		alreadyPaid, err := uc.paymentRepo.SumByInvoice(txCtx, invoice.ID())
		if err != nil {
			return fmt.Errorf("failed to sum payments: %w", err)
		}

		if cmd.Amount.GreaterThan(invoice.Remaining(alreadyPaid)) {
			return apperrors.NewValidationError(billing.ErrPaymentExceedsTotal.Error())
		}

		payment, err := billing.NewPayment(invoice.ID(), invoice.MemberID(), cmd.Amount, method, cmd.Reference, cmd.Notes, cmd.PaidAt)
		if err != nil {
			return apperrors.NewValidationError(err.Error())
		}

		if err := uc.paymentRepo.Create(txCtx, payment); err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}

		totalPaid := alreadyPaid.Add(cmd.Amount)
		if err := invoice.ApplyPayment(totalPaid); err != nil {
			return apperrors.NewValidationError(err.Error())
		}
		if err := uc.invoiceRepo.Update(txCtx, invoice); err != nil {
			return fmt.Errorf("failed to update invoice: %w", err)
		}

		if invoice.Status() == billing.InvoiceStatusPaid && invoice.SubscriptionID() != nil {
			if err := uc.activatePendingSubscription(txCtx, *invoice.SubscriptionID()); err != nil {
				return err
			}
		}

		result = &RecordPaymentResult{
			Payment:   payment,
			Invoice:   invoice,
			Remaining: invoice.Remaining(totalPaid),
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to record payment", "error", err, "invoice_id", cmd.InvoiceID)
		return nil, err
	}

	uc.logger.Infow("payment recorded",
		"invoice_id", cmd.InvoiceID,
		"invoice_number", result.Invoice.InvoiceNumber(),
		"amount", cmd.Amount,
		"status", result.Invoice.Status(),
	)
	return result, nil
}

func (uc *RecordPaymentUseCase) activatePendingSubscription(ctx context.Context, subscriptionID uint) error {
	sub, err := uc.subscriptionRepo.GetByID(ctx, subscriptionID)
	if err != nil {
		return err
	}
	if sub.Status() != valueobjects.StatusPending {
		return nil
	}

	if err := sub.Activate(); err != nil {
		return fmt.Errorf("failed to activate subscription: %w", err)
	}
	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}

	uc.logger.Infow("pending subscription activated by payment", "subscription_id", subscriptionID)
	return nil
}
