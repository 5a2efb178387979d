package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kinetix-inc/kinetix/internal/domain/billing"
	"github.com/kinetix-inc/kinetix/internal/domain/catalog"
	"github.com/kinetix-inc/kinetix/internal/domain/coupon"
	"github.com/kinetix-inc/kinetix/internal/domain/pricing"
	"github.com/kinetix-inc/kinetix/internal/domain/sequence"
	"github.com/kinetix-inc/kinetix/internal/domain/subscription"
	"github.com/kinetix-inc/kinetix/internal/shared/constants"
	"github.com/kinetix-inc/kinetix/internal/shared/db"
	apperrors "github.com/kinetix-inc/kinetix/internal/shared/errors"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
)

type UpgradeSubscriptionCommand struct {
	SubscriptionID  uint
	PackageID       uint
	DiscountPercent *decimal.Decimal
	DiscountAmount  *decimal.Decimal
	CouponCode      *string
}

type UpgradeSubscriptionResult struct {
	Subscription *subscription.Subscription
	// Invoice is issued for the prorated delta; nil when nothing is owed.
	Invoice     *billing.Invoice
	DeltaAmount decimal.Decimal
}

// UpgradeSubscriptionUseCase switches the current term to a better package
// in place. The member pays only the prorated difference over the days left
// on the term; the end date never moves.
type UpgradeSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	packageRepo      catalog.Repository
	couponRepo       coupon.Repository
	invoiceRepo      billing.InvoiceRepository
	sequenceRepo     sequence.Repository
	txMgr            *db.TransactionManager
	logger           logger.Interface
}

func NewUpgradeSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	packageRepo catalog.Repository,
	couponRepo coupon.Repository,
	invoiceRepo billing.InvoiceRepository,
	sequenceRepo sequence.Repository,
	txMgr *db.TransactionManager,
	logger logger.Interface,
) *UpgradeSubscriptionUseCase {
	return &UpgradeSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		packageRepo:      packageRepo,
		couponRepo:       couponRepo,
		invoiceRepo:      invoiceRepo,
		sequenceRepo:     sequenceRepo,
		txMgr:            txMgr,
		logger:           logger,
	}
}

func (uc *UpgradeSubscriptionUseCase) Execute(ctx context.Context, cmd UpgradeSubscriptionCommand) (*UpgradeSubscriptionResult, error) {
	sub, err := uc.subscriptionRepo.GetByID(ctx, cmd.SubscriptionID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "subscription_id", cmd.SubscriptionID)
		return nil, err
	}
	if cmd.PackageID == sub.PackageID() {
		return nil, apperrors.NewValidationError("subscription is already on this package")
	}

	pkg, err := uc.packageRepo.GetByID(ctx, cmd.PackageID)
	if err != nil {
		uc.logger.Errorw("failed to get package", "error", err, "package_id", cmd.PackageID)
		return nil, err
	}
	if !pkg.IsActive() {
		return nil, apperrors.NewValidationError("package is not available for sale")
	}

	now := time.Now().UTC()
	remaining := sub.RemainingDays(now)
	delta := pricing.ProratedDelta(sub.TotalPrice(), sub.DurationDays(), pkg.Price(), pkg.DurationDays(), remaining)

	var result *UpgradeSubscriptionResult

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		// Discounts apply to the prorated difference, not the new list
		// price. A coupon is redeemed under lock like on create and renew.
		quote, redeemable, err := resolveQuote(txCtx, uc.couponRepo, delta, purchaseDiscounts{
			DiscountPercent: cmd.DiscountPercent,
			DiscountAmount:  cmd.DiscountAmount,
			CouponCode:      cmd.CouponCode,
		}, true, now)
		if err != nil {
			return err
		}

		if redeemable != nil {
			if err := redeemable.Redeem(); err != nil {
				return fmt.Errorf("coupon %s: %w", redeemable.Code(), err)
			}
			if err := uc.couponRepo.Update(txCtx, redeemable); err != nil {
				return fmt.Errorf("failed to redeem coupon: %w", err)
			}
		}

		deltaDiscount := quote.DiscountTotal
		deltaFinal := quote.FinalPrice

		terms := pkg.Snapshot()
		if err := sub.ApplyUpgrade(subscription.UpgradeParams{
			PackageID:     terms.PackageID,
			PackageName:   terms.Name,
			DurationDays:  terms.DurationDays,
			VisitQuota:    terms.VisitQuota,
			VIP:           terms.VIP,
			DeltaTotal:    delta,
			DeltaDiscount: deltaDiscount,
			DeltaFinal:    deltaFinal,
		}); err != nil {
			return apperrors.NewValidationError(err.Error())
		}

		if err := uc.subscriptionRepo.Update(txCtx, sub); err != nil {
			return fmt.Errorf("failed to update subscription: %w", err)
		}

		var invoice *billing.Invoice
		if deltaFinal.IsPositive() {
			seq, err := uc.sequenceRepo.Next(txCtx, constants.SequenceInvoice)
			if err != nil {
				return fmt.Errorf("failed to allocate invoice number: %w", err)
			}

			subID := sub.ID()
			invoice, err = billing.NewInvoice(billing.NewInvoiceParams{
				InvoiceNumber:  billing.FormatInvoiceNumber(seq),
				MemberID:       sub.MemberID(),
				SubscriptionID: &subID,
				Total:          deltaFinal,
				DiscountAmount: deltaDiscount,
				Notes:          fmt.Sprintf("upgrade to %s, %d days remaining", terms.Name, remaining),
			})
			if err != nil {
				return fmt.Errorf("invalid invoice: %w", err)
			}

			if err := uc.invoiceRepo.Create(txCtx, invoice); err != nil {
				return fmt.Errorf("failed to create invoice: %w", err)
			}
		}

		result = &UpgradeSubscriptionResult{Subscription: sub, Invoice: invoice, DeltaAmount: deltaFinal}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to upgrade subscription", "error", err, "subscription_id", cmd.SubscriptionID)
		return nil, err
	}

	uc.logger.Infow("subscription upgraded",
		"subscription_id", sub.ID(),
		"package_id", cmd.PackageID,
		"delta", result.DeltaAmount,
		"remaining_days", remaining,
	)
	return result, nil
}
