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
	"github.com/kinetix-inc/kinetix/internal/domain/subscription/valueobjects"
	"github.com/kinetix-inc/kinetix/internal/shared/constants"
	"github.com/kinetix-inc/kinetix/internal/shared/db"
	apperrors "github.com/kinetix-inc/kinetix/internal/shared/errors"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
)

type RenewSubscriptionCommand struct {
	SubscriptionID uint
	// PackageID switches the member to a different package for the new
	// term; zero keeps the current one.
	PackageID uint
	// StartDate defaults to the old end date (back-to-back renewal) or to
	// now when the old subscription already lapsed.
	StartDate       time.Time
	DiscountPercent *decimal.Decimal
	DiscountAmount  *decimal.Decimal
	CouponCode      *string
	AutoRenew       bool
}

type RenewSubscriptionResult struct {
	Subscription *subscription.Subscription
	Invoice      *billing.Invoice
	// Previous is the retired subscription row.
	Previous *subscription.Subscription
}

// RenewSubscriptionUseCase opens the next term as a fresh row and retires
// the old one, keeping the full term history intact.
type RenewSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	packageRepo      catalog.Repository
	memberRepo       member.Repository
	couponRepo       coupon.Repository
	invoiceRepo      billing.InvoiceRepository
	sequenceRepo     sequence.Repository
	txMgr            *db.TransactionManager
	logger           logger.Interface
}

func NewRenewSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	packageRepo catalog.Repository,
	memberRepo member.Repository,
	couponRepo coupon.Repository,
	invoiceRepo billing.InvoiceRepository,
	sequenceRepo sequence.Repository,
	txMgr *db.TransactionManager,
	logger logger.Interface,
) *RenewSubscriptionUseCase {
	return &RenewSubscriptionUseCase{
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

func (uc *RenewSubscriptionUseCase) Execute(ctx context.Context, cmd RenewSubscriptionCommand) (*RenewSubscriptionResult, error) {
	old, err := uc.subscriptionRepo.GetByID(ctx, cmd.SubscriptionID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "subscription_id", cmd.SubscriptionID)
		return nil, err
	}
	if old.Status() == valueobjects.StatusCancelled {
		return nil, apperrors.NewValidationError("cancelled subscriptions cannot be renewed")
	}

	m, err := uc.memberRepo.GetByID(ctx, old.MemberID())
	if err != nil {
		uc.logger.Errorw("failed to get member", "error", err, "member_id", old.MemberID())
		return nil, err
	}

	packageID := cmd.PackageID
	if packageID == 0 {
		packageID = old.PackageID()
	}
	pkg, err := uc.packageRepo.GetByID(ctx, packageID)
	if err != nil {
		uc.logger.Errorw("failed to get package", "error", err, "package_id", packageID)
		return nil, err
	}
	if !pkg.IsActive() {
		return nil, apperrors.NewValidationError("package is not available for sale")
	}

	now := time.Now().UTC()
	startDate := cmd.StartDate
	if startDate.IsZero() {
		startDate = old.EndDate()
		if startDate.Before(now) {
			startDate = now
		}
	}

	var result *RenewSubscriptionResult

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
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

		if !old.Status().IsTerminal() {
			if err := old.MarkExpired(); err != nil {
				return apperrors.NewValidationError(err.Error())
			}
			if err := uc.subscriptionRepo.Update(txCtx, old); err != nil {
				return fmt.Errorf("failed to retire old subscription: %w", err)
			}
		}

		terms := pkg.Snapshot()
		next, err := subscription.NewSubscription(subscription.NewSubscriptionParams{
			MemberID:       old.MemberID(),
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
		})
		if err != nil {
			return fmt.Errorf("invalid subscription: %w", err)
		}

		if err := uc.subscriptionRepo.Create(txCtx, next); err != nil {
			return fmt.Errorf("failed to create subscription: %w", err)
		}

		seq, err := uc.sequenceRepo.Next(txCtx, constants.SequenceInvoice)
		if err != nil {
			return fmt.Errorf("failed to allocate invoice number: %w", err)
		}

		subID := next.ID()
		invoice, err := billing.NewInvoice(billing.NewInvoiceParams{
			InvoiceNumber:  billing.FormatInvoiceNumber(seq),
			MemberID:       old.MemberID(),
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

		result = &RenewSubscriptionResult{Subscription: next, Invoice: invoice, Previous: old}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to renew subscription", "error", err, "subscription_id", cmd.SubscriptionID)
		return nil, err
	}

	uc.logger.Infow("subscription renewed",
		"old_subscription_id", cmd.SubscriptionID,
		"new_subscription_id", result.Subscription.ID(),
		"invoice_number", result.Invoice.InvoiceNumber(),
	)
	return result, nil
}
