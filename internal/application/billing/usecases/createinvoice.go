package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kinetix-inc/kinetix/internal/domain/billing"
	"github.com/kinetix-inc/kinetix/internal/domain/member"
	"github.com/kinetix-inc/kinetix/internal/domain/sequence"
	"github.com/kinetix-inc/kinetix/internal/shared/constants"
	"github.com/kinetix-inc/kinetix/internal/shared/db"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
)

type CreateInvoiceCommand struct {
	MemberID       uint
	SubscriptionID *uint
	Total          decimal.Decimal
	DiscountAmount decimal.Decimal
	CouponCode     *string
	DueDate        *time.Time
	Notes          string
}

// CreateInvoiceUseCase issues a standalone invoice, for charges that do not
// come out of a purchase flow (day passes, merchandise, fees). The invoice
// number is allocated from the shared sequence inside the same transaction
// as the insert.
type CreateInvoiceUseCase struct {
	invoiceRepo  billing.InvoiceRepository
	memberRepo   member.Repository
	sequenceRepo sequence.Repository
	txMgr        *db.TransactionManager
	logger       logger.Interface
}

func NewCreateInvoiceUseCase(
	invoiceRepo billing.InvoiceRepository,
	memberRepo member.Repository,
	sequenceRepo sequence.Repository,
	txMgr *db.TransactionManager,
	logger logger.Interface,
) *CreateInvoiceUseCase {
	return &CreateInvoiceUseCase{
		invoiceRepo:  invoiceRepo,
		memberRepo:   memberRepo,
		sequenceRepo: sequenceRepo,
		txMgr:        txMgr,
		logger:       logger,
	}
}

func (uc *CreateInvoiceUseCase) Execute(ctx context.Context, cmd CreateInvoiceCommand) (*billing.Invoice, error) {
	if _, err := uc.memberRepo.GetByID(ctx, cmd.MemberID); err != nil {
		uc.logger.Errorw("failed to get member", "error", err, "member_id", cmd.MemberID)
		return nil, err
	}

	var invoice *billing.Invoice

	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		seq, err := uc.sequenceRepo.Next(txCtx, constants.SequenceInvoice)
		if err != nil {
			return fmt.Errorf("failed to allocate invoice number: %w", err)
		}

		inv, err := billing.NewInvoice(billing.NewInvoiceParams{
			InvoiceNumber:  billing.FormatInvoiceNumber(seq),
			MemberID:       cmd.MemberID,
			SubscriptionID: cmd.SubscriptionID,
			Total:          cmd.Total,
			DiscountAmount: cmd.DiscountAmount,
			CouponCode:     cmd.CouponCode,
			DueDate:        cmd.DueDate,
			Notes:          cmd.Notes,
		})
		if err != nil {
			return fmt.Errorf("invalid invoice: %w", err)
		}

		if err := uc.invoiceRepo.Create(txCtx, inv); err != nil {
			return fmt.Errorf("failed to create invoice: %w", err)
		}

		invoice = inv
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to create invoice", "error", err, "member_id", cmd.MemberID)
		return nil, err
	}

	uc.logger.Infow("invoice created", "invoice_number", invoice.InvoiceNumber(), "member_id", cmd.MemberID, "total", invoice.Total())
	return invoice, nil
}
