package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kinetix-inc/kinetix/internal/domain/billing"
	"github.com/kinetix-inc/kinetix/internal/domain/catalog"
	"github.com/kinetix-inc/kinetix/internal/domain/coupon"
	"github.com/kinetix-inc/kinetix/internal/domain/member"
	"github.com/kinetix-inc/kinetix/internal/domain/sequence"
	"github.com/kinetix-inc/kinetix/internal/domain/subscription"
	"github.com/kinetix-inc/kinetix/internal/shared/constants"
	"github.com/kinetix-inc/kinetix/internal/shared/db"
	apperrors "github.com/kinetix-inc/kinetix/internal/shared/errors"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
)

type CreateSubscriptionCommand struct {
	MemberID  uint
	PackageID uint
	// StartDate defaults to now when zero.
	StartDate       time.Time
	DiscountPercent *decimal.Decimal
	DiscountAmount  *decimal.Decimal
	CouponCode      *string
	AutoRenew       bool
	// InvoiceOnly opens the subscription as pending until its invoice is
	// paid.
	InvoiceOnly bool
}

type CreateSubscriptionResult struct {
	Subscription *subscription.Subscription
	Invoice      *billing.Invoice
}

// CreateSubscriptionUseCase sells a package to a member. The subscription
// insert, the coupon redemption, the invoice number allocation and the
// invoice insert all commit or roll back together.
type CreateSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	packageRepo      catalog.Repository
	memberRepo       member.Repository
	couponRepo       coupon.Repository
	invoiceRepo      billing.InvoiceRepository
	sequenceRepo     sequence.Repository
	txMgr            *db.TransactionManager
	logger           logger.Interface
}

func NewCreateSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	packageRepo catalog.Repository,
	memberRepo member.Repository,
	couponRepo coupon.Repository,
	invoiceRepo billing.InvoiceRepository,
	sequenceRepo sequence.Repository,
	txMgr *db.TransactionManager,
	logger logger.Interface,
) *CreateSubscriptionUseCase {
	return &CreateSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		packageRepo:      packageRepo,
		memberRepo:       memberRepo,
		couponRepo:       couponRepo,
		invoiceRepo:      invoiceRepo,
		sequenceRepo:     sequenceRepo,
		txMgr:            txMgr,
		logger:           logger,
	}
}

func (uc *CreateSubscriptionUseCase) Execute(ctx context.Context, cmd CreateSubscriptionCommand) (*CreateSubscriptionResult, error) {
	m, err := uc.memberRepo.GetByID(ctx, cmd.MemberID)
	if err != nil {
		uc.logger.Errorw("failed to get member", "error", err, "member_id", cmd.MemberID)
		return nil, err
	}

	pkg, err := uc.packageRepo.GetByID(ctx, cmd.PackageID)
	if err != nil {
		uc.logger.Errorw("failed to get package", "error", err, "package_id", cmd.PackageID)
		return nil, err
	}
	if !pkg.IsActive() {
		return nil, apperrors.NewValidationError("package is not available for sale")
	}

	startDate := cmd.StartDate
	if startDate.IsZero() {
		startDate = time.Now().UTC()
	}

	var result *CreateSubscriptionResult

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		now := time.Now().UTC()

		quote, redeemable, err := resolveQuote(txCtx, uc.couponRepo, pkg.Price(), purchaseDiscounts{
			DiscountPercent: cmd.DiscountPercent,
			DiscountAmount:  cmd.DiscountAmount,
			CouponCode:      cmd.CouponCode,
		}, true, now)
		if err != nil {
			return err
		}

		var couponCode *string
		if redeemable != nil {
			if err := redeemable.Redeem(); err != nil {
				return fmt.Errorf("coupon %s: %w", redeemable.Code(), err)
			}
			if err := uc.couponRepo.Update(txCtx, redeemable); err != nil {
				return fmt.Errorf("failed to redeem coupon: %w", err)
			}
			code := redeemable.Code()
			couponCode = &code
		}

		terms := pkg.Snapshot()
		sub, err := subscription.NewSubscription(subscription.NewSubscriptionParams{
			MemberID:       cmd.MemberID,
			PackageID:      terms.PackageID,
			PackageName:    terms.Name,
			DurationDays:   terms.DurationDays,
			VisitQuota:     terms.VisitQuota,
			VIP:            terms.VIP,
			StartDate:      startDate,
			TotalPrice:     quote.ListPrice,
			DiscountAmount: quote.DiscountTotal,
			FinalPrice:     quote.FinalPrice,
			CouponCode:     couponCode,
			AutoRenew:      cmd.AutoRenew,
			InvoiceOnly:    cmd.InvoiceOnly,
		})
		if err != nil {
			return fmt.Errorf("invalid subscription: %w", err)
		}

		if err := uc.subscriptionRepo.Create(txCtx, sub); err != nil {
			return fmt.Errorf("failed to create subscription: %w", err)
		}

		seq, err := uc.sequenceRepo.Next(txCtx, constants.SequenceInvoice)
		if err != nil {
			return fmt.Errorf("failed to allocate invoice number: %w", err)
		}

		subID := sub.ID()
		invoice, err := billing.NewInvoice(billing.NewInvoiceParams{
			InvoiceNumber:  billing.FormatInvoiceNumber(seq),
			MemberID:       cmd.MemberID,
			SubscriptionID: &subID,
			Total:          quote.FinalPrice,
			DiscountAmount: quote.DiscountTotal,
			CouponCode:     couponCode,
		})
		if err != nil {
			return fmt.Errorf("invalid invoice: %w", err)
		}

		if err := uc.invoiceRepo.Create(txCtx, invoice); err != nil {
			return fmt.Errorf("failed to create invoice: %w", err)
		}

		m.MarkActive()
		if err := uc.memberRepo.Update(txCtx, m); err != nil {
			return fmt.Errorf("failed to update member: %w", err)
		}

		result = &CreateSubscriptionResult{Subscription: sub, Invoice: invoice}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to create subscription", "error", err, "member_id", cmd.MemberID, "package_id", cmd.PackageID)
		return nil, err
	}

	uc.logger.Infow("subscription created",
		"subscription_id", result.Subscription.ID(),
		"member_id", cmd.MemberID,
		"package_id", cmd.PackageID,
		"invoice_number", result.Invoice.InvoiceNumber(),
		"final_price", result.Subscription.FinalPrice(),
	)
	return result, nil
}
