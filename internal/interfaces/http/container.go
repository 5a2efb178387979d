package http

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	billingUsecases "github.com/kinetix-inc/kinetix/internal/application/billing/usecases"
	campaignUsecases "github.com/kinetix-inc/kinetix/internal/application/campaign/usecases"
	catalogUsecases "github.com/kinetix-inc/kinetix/internal/application/catalog/usecases"
	couponUsecases "github.com/kinetix-inc/kinetix/internal/application/coupon/usecases"
	memberUsecases "github.com/kinetix-inc/kinetix/internal/application/member/usecases"
	subscriptionUsecases "github.com/kinetix-inc/kinetix/internal/application/subscription/usecases"
	"github.com/kinetix-inc/kinetix/internal/infrastructure/config"
	"github.com/kinetix-inc/kinetix/internal/infrastructure/ratelimit"
	"github.com/kinetix-inc/kinetix/internal/infrastructure/repository"
	"github.com/kinetix-inc/kinetix/internal/interfaces/http/handlers"
	"github.com/kinetix-inc/kinetix/internal/shared/db"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
)

// Container wires repositories, use cases and handlers for the HTTP server.
type Container struct {
	PackageHandler      *handlers.PackageHandler
	CouponHandler       *handlers.CouponHandler
	MemberHandler       *handlers.MemberHandler
	SubscriptionHandler *handlers.SubscriptionHandler
	InvoiceHandler      *handlers.InvoiceHandler
	CampaignHandler     *handlers.CampaignHandler

	ExpireSubscriptionsUC *subscriptionUsecases.ExpireSubscriptionsUseCase

	RateLimiter ratelimit.RateLimiter

	Config *config.Config
	Logger logger.Interface
}

func NewContainer(database *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) *Container {
	txManager := db.NewTransactionManager(database)

	packageRepo := repository.NewPackageRepository(database, log)
	couponRepo := repository.NewCouponRepository(database, log)
	memberRepo := repository.NewMemberRepository(database, log)
	subscriptionRepo := repository.NewSubscriptionRepository(database, log)
	visitRepo := repository.NewVisitRepository(database, log)
	invoiceRepo := repository.NewInvoiceRepository(database, log)
	paymentRepo := repository.NewPaymentRepository(database, log)
	campaignRepo := repository.NewCampaignRepository(database, log)
	messageRepo := repository.NewCampaignMessageRepository(database, log)
	sequenceRepo := repository.NewSequenceRepository(database, log)

	packageHandler := handlers.NewPackageHandler(
		catalogUsecases.NewCreatePackageUseCase(packageRepo, log),
		catalogUsecases.NewUpdatePackageUseCase(packageRepo, log),
		catalogUsecases.NewGetPackageUseCase(packageRepo, log),
		catalogUsecases.NewListPackagesUseCase(packageRepo, log),
		catalogUsecases.NewSetPackageStatusUseCase(packageRepo, log),
		catalogUsecases.NewDeletePackageUseCase(packageRepo, log),
	)

	couponHandler := handlers.NewCouponHandler(
		couponUsecases.NewCreateCouponUseCase(couponRepo, log),
		couponUsecases.NewValidateCouponUseCase(couponRepo, log),
		couponUsecases.NewListCouponsUseCase(couponRepo, log),
		couponUsecases.NewDeactivateCouponUseCase(couponRepo, log),
	)

	memberHandler := handlers.NewMemberHandler(
		memberUsecases.NewRegisterMemberUseCase(memberRepo, sequenceRepo, txManager, log),
		memberUsecases.NewUpdateMemberUseCase(memberRepo, log),
		memberUsecases.NewGetMemberUseCase(memberRepo, log),
		memberUsecases.NewListMembersUseCase(memberRepo, log),
		memberUsecases.NewDeactivateMemberUseCase(memberRepo, log),
		memberUsecases.NewRecordVisitUseCase(memberRepo, subscriptionRepo, visitRepo, log),
	)

	subscriptionHandler := handlers.NewSubscriptionHandler(
		subscriptionUsecases.NewCreateSubscriptionUseCase(subscriptionRepo, packageRepo, memberRepo, couponRepo, invoiceRepo, sequenceRepo, txManager, log),
		subscriptionUsecases.NewGetSubscriptionUseCase(subscriptionRepo, log),
		subscriptionUsecases.NewListSubscriptionsUseCase(subscriptionRepo, log),
		subscriptionUsecases.NewFreezeSubscriptionUseCase(subscriptionRepo, log),
		subscriptionUsecases.NewUnfreezeSubscriptionUseCase(subscriptionRepo, log),
		subscriptionUsecases.NewRenewSubscriptionUseCase(subscriptionRepo, packageRepo, memberRepo, couponRepo, invoiceRepo, sequenceRepo, txManager, log),
		subscriptionUsecases.NewUpgradeSubscriptionUseCase(subscriptionRepo, packageRepo, couponRepo, invoiceRepo, sequenceRepo, txManager, log),
		subscriptionUsecases.NewCancelSubscriptionUseCase(subscriptionRepo, log),
		subscriptionUsecases.NewDeleteSubscriptionUseCase(subscriptionRepo, txManager, log),
		subscriptionUsecases.NewPriceQuoteUseCase(packageRepo, couponRepo, log),
	)

	invoiceHandler := handlers.NewInvoiceHandler(
		billingUsecases.NewCreateInvoiceUseCase(invoiceRepo, memberRepo, sequenceRepo, txManager, log),
		billingUsecases.NewGetInvoiceUseCase(invoiceRepo, paymentRepo, log),
		billingUsecases.NewListInvoicesUseCase(invoiceRepo, log),
		billingUsecases.NewRecordPaymentUseCase(invoiceRepo, paymentRepo, subscriptionRepo, txManager, log),
		billingUsecases.NewCancelInvoiceUseCase(invoiceRepo, log),
		billingUsecases.NewRefundInvoiceUseCase(invoiceRepo, log),
	)

	campaignHandler := handlers.NewCampaignHandler(
		campaignUsecases.NewCreateCampaignUseCase(campaignRepo, log),
		campaignUsecases.NewStartCampaignUseCase(campaignRepo, messageRepo, memberRepo, txManager, log),
		campaignUsecases.NewGetCampaignUseCase(campaignRepo, log),
		campaignUsecases.NewListCampaignsUseCase(campaignRepo, log),
		campaignUsecases.NewCancelCampaignUseCase(campaignRepo, messageRepo, txManager, log),
	)

	var limiter ratelimit.RateLimiter
	if redisClient != nil {
		limiter = ratelimit.NewRedisRateLimiter(redisClient)
	}

	return &Container{
		PackageHandler:        packageHandler,
		CouponHandler:         couponHandler,
		MemberHandler:         memberHandler,
		SubscriptionHandler:   subscriptionHandler,
		InvoiceHandler:        invoiceHandler,
		CampaignHandler:       campaignHandler,
		ExpireSubscriptionsUC: subscriptionUsecases.NewExpireSubscriptionsUseCase(subscriptionRepo, log),
		RateLimiter:           limiter,
		Config:                cfg,
		Logger:                log,
	}
}
