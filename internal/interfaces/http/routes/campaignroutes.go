package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/kinetix-inc/kinetix/internal/interfaces/http/handlers"
)

type CampaignRouteConfig struct {
	CampaignHandler *handlers.CampaignHandler
}

func SetupCampaignRoutes(engine *gin.Engine, cfg *CampaignRouteConfig) {
	campaigns := engine.Group("/api/v1/campaigns")
	{
		campaigns.POST("", cfg.CampaignHandler.CreateCampaign)
		campaigns.GET("", cfg.CampaignHandler.ListCampaigns)
		campaigns.GET("/:id", cfg.CampaignHandler.GetCampaign)
		campaigns.POST("/:id/start", cfg.CampaignHandler.StartCampaign)
		campaigns.POST("/:id/cancel", cfg.CampaignHandler.CancelCampaign)
	}
}
