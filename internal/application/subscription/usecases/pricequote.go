package usecases

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kinetix-inc/kinetix/internal/domain/catalog"
	"github.com/kinetix-inc/kinetix/internal/domain/coupon"
	"github.com/kinetix-inc/kinetix/internal/domain/pricing"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
)

type PriceQuoteQuery struct {
	PackageID       uint
	DiscountPercent *decimal.Decimal
	DiscountAmount  *decimal.Decimal
	CouponCode      *string
}

// PriceQuoteUseCase prices a prospective purchase without committing
// anything. The coupon is checked but not redeemed.
type PriceQuoteUseCase struct {
	packageRepo catalog.Repository
	couponRepo  coupon.Repository
	logger      logger.Interface
}

func NewPriceQuoteUseCase(packageRepo catalog.Repository, couponRepo coupon.Repository, logger logger.Interface) *PriceQuoteUseCase {
	return &PriceQuoteUseCase{
		packageRepo: packageRepo,
		couponRepo:  couponRepo,
		logger:      logger,
	}
}

func (uc *PriceQuoteUseCase) Execute(ctx context.Context, query PriceQuoteQuery) (*pricing.Quote, error) {
	pkg, err := uc.packageRepo.GetByID(ctx, query.PackageID)
	if err != nil {
		uc.logger.Errorw("failed to get package", "error", err, "package_id", query.PackageID)
		return nil, err
	}

	quote, _, err := resolveQuote(ctx, uc.couponRepo, pkg.Price(), purchaseDiscounts{
		DiscountPercent: query.DiscountPercent,
		DiscountAmount:  query.DiscountAmount,
		CouponCode:      query.CouponCode,
	}, false, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	return &quote, nil
}
