package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/kinetix-inc/kinetix/internal/interfaces/http/handlers"
)

type CouponRouteConfig struct {
	CouponHandler *handlers.CouponHandler
}

func SetupCouponRoutes(engine *gin.Engine, cfg *CouponRouteConfig) {
	coupons := engine.Group("/api/v1/coupons")
	{
		coupons.POST("", cfg.CouponHandler.CreateCoupon)
		coupons.GET("", cfg.CouponHandler.ListCoupons)
		coupons.POST("/validate", cfg.CouponHandler.ValidateCoupon)
		coupons.PATCH("/:id/deactivate", cfg.CouponHandler.DeactivateCoupon)
	}
}
