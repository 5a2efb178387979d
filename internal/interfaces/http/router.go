package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kinetix-inc/kinetix/internal/interfaces/http/middleware"
	"github.com/kinetix-inc/kinetix/internal/interfaces/http/routes"
)

// NewRouter builds the Gin engine with the full middleware stack and all
// API routes mounted.
func NewRouter(container *Container) *gin.Engine {
	gin.SetMode(container.Config.Server.Mode)

	engine := gin.New()

	engine.Use(middleware.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Logger(container.Logger))
	engine.Use(middleware.CORS(container.Config.Server.AllowedOrigins))
	engine.Use(middleware.Metrics())

	if container.Config.RateLimit.Enabled && container.RateLimiter != nil {
		engine.Use(middleware.RateLimit(container.RateLimiter, container.Config.RateLimit, container.Logger))
	}

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	routes.SetupPackageRoutes(engine, &routes.PackageRouteConfig{PackageHandler: container.PackageHandler})
	routes.SetupCouponRoutes(engine, &routes.CouponRouteConfig{CouponHandler: container.CouponHandler})
	routes.SetupMemberRoutes(engine, &routes.MemberRouteConfig{MemberHandler: container.MemberHandler})
	routes.SetupSubscriptionRoutes(engine, &routes.SubscriptionRouteConfig{SubscriptionHandler: container.SubscriptionHandler})
	routes.SetupInvoiceRoutes(engine, &routes.InvoiceRouteConfig{InvoiceHandler: container.InvoiceHandler})
	routes.SetupCampaignRoutes(engine, &routes.CampaignRouteConfig{CampaignHandler: container.CampaignHandler})

	return engine
}
