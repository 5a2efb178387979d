package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/kinetix-inc/kinetix/internal/interfaces/http/handlers"
)

type PackageRouteConfig struct {
	PackageHandler *handlers.PackageHandler
}

func SetupPackageRoutes(engine *gin.Engine, cfg *PackageRouteConfig) {
	packages := engine.Group("/api/v1/packages")
	{
		packages.POST("", cfg.PackageHandler.CreatePackage)
		packages.GET("", cfg.PackageHandler.ListPackages)
		packages.GET("/:id", cfg.PackageHandler.GetPackage)
		packages.PUT("/:id", cfg.PackageHandler.UpdatePackage)
		packages.PATCH("/:id/status", cfg.PackageHandler.UpdatePackageStatus)
		packages.DELETE("/:id", cfg.PackageHandler.DeletePackage)
	}
}
