package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/kinetix-inc/kinetix/internal/interfaces/http/handlers"
)

type SubscriptionRouteConfig struct {
	SubscriptionHandler *handlers.SubscriptionHandler
}

func SetupSubscriptionRoutes(engine *gin.Engine, cfg *SubscriptionRouteConfig) {
	subscriptions := engine.Group("/api/v1/subscriptions")
	{
		subscriptions.POST("", cfg.SubscriptionHandler.CreateSubscription)
		subscriptions.GET("", cfg.SubscriptionHandler.ListSubscriptions)
		subscriptions.POST("/quote", cfg.SubscriptionHandler.PriceQuote)
		subscriptions.GET("/:id", cfg.SubscriptionHandler.GetSubscription)
		subscriptions.POST("/:id/freeze", cfg.SubscriptionHandler.FreezeSubscription)
		subscriptions.POST("/:id/unfreeze", cfg.SubscriptionHandler.UnfreezeSubscription)
		subscriptions.POST("/:id/renew", cfg.SubscriptionHandler.RenewSubscription)
		subscriptions.POST("/:id/upgrade", cfg.SubscriptionHandler.UpgradeSubscription)
		subscriptions.POST("/:id/cancel", cfg.SubscriptionHandler.CancelSubscription)
		subscriptions.DELETE("/:id", cfg.SubscriptionHandler.DeleteSubscription)
	}
}
