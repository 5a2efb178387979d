package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/kinetix-inc/kinetix/internal/interfaces/http/handlers"
)

type MemberRouteConfig struct {
	MemberHandler *handlers.MemberHandler
}

func SetupMemberRoutes(engine *gin.Engine, cfg *MemberRouteConfig) {
	members := engine.Group("/api/v1/members")
	{
		members.POST("", cfg.MemberHandler.RegisterMember)
		members.GET("", cfg.MemberHandler.ListMembers)
		members.GET("/:id", cfg.MemberHandler.GetMember)
		members.PUT("/:id", cfg.MemberHandler.UpdateMember)
		members.PATCH("/:id/deactivate", cfg.MemberHandler.DeactivateMember)
		members.POST("/:id/visits", cfg.MemberHandler.RecordVisit)
	}
}
