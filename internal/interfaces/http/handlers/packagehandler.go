package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/kinetix-inc/kinetix/internal/application/catalog/usecases"
	"github.com/kinetix-inc/kinetix/internal/domain/catalog"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
	"github.com/kinetix-inc/kinetix/internal/shared/utils"
)

type PackageHandler struct {
	createPackageUC    *usecases.CreatePackageUseCase
	updatePackageUC    *usecases.UpdatePackageUseCase
	getPackageUC       *usecases.GetPackageUseCase
	listPackagesUC     *usecases.ListPackagesUseCase
	setPackageStatusUC *usecases.SetPackageStatusUseCase
	deletePackageUC    *usecases.DeletePackageUseCase
	logger             logger.Interface
}

func NewPackageHandler(
	createPackageUC *usecases.CreatePackageUseCase,
	updatePackageUC *usecases.UpdatePackageUseCase,
	getPackageUC *usecases.GetPackageUseCase,
	listPackagesUC *usecases.ListPackagesUseCase,
	setPackageStatusUC *usecases.SetPackageStatusUseCase,
	deletePackageUC *usecases.DeletePackageUseCase,
) *PackageHandler {
	return &PackageHandler{
		createPackageUC:    createPackageUC,
		updatePackageUC:    updatePackageUC,
		getPackageUC:       getPackageUC,
		listPackagesUC:     listPackagesUC,
		setPackageStatusUC: setPackageStatusUC,
		deletePackageUC:    deletePackageUC,
		logger:             logger.NewLogger(),
	}
}

type PackageRequest struct {
	Name         string          `json:"name" binding:"required"`
	Description  string          `json:"description"`
	DurationDays int             `json:"duration_days" binding:"required,min=1"`
	Price        decimal.Decimal `json:"price" binding:"required"`
	VisitQuota   *int            `json:"visit_quota"`
	VIP          bool            `json:"vip"`
}

type UpdatePackageStatusRequest struct {
	Active *bool `json:"active" binding:"required"`
}

type PackageResponse struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	DurationDays int             `json:"duration_days"`
	Price        decimal.Decimal `json:"price"`
	VisitQuota   *int            `json:"visit_quota,omitempty"`
	VIP          bool            `json:"vip"`
	Active       bool            `json:"active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func toPackageResponse(pkg *catalog.Package) PackageResponse {
	return PackageResponse{
		ID:           pkg.ID(),
		Name:         pkg.Name(),
		Description:  pkg.Description(),
		DurationDays: pkg.DurationDays(),
		Price:        pkg.Price(),
		VisitQuota:   pkg.VisitQuota(),
		VIP:          pkg.IsVIP(),
		Active:       pkg.IsActive(),
		CreatedAt:    pkg.CreatedAt(),
		UpdatedAt:    pkg.UpdatedAt(),
	}
}

func toPackageResponses(packages []*catalog.Package) []PackageResponse {
	responses := make([]PackageResponse, 0, len(packages))
	for _, pkg := range packages {
		responses = append(responses, toPackageResponse(pkg))
	}
	return responses
}

func (h *PackageHandler) CreatePackage(c *gin.Context) {
	var req PackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create package", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	pkg, err := h.createPackageUC.Execute(c.Request.Context(), usecases.CreatePackageCommand{
		Name:         req.Name,
		Description:  req.Description,
		DurationDays: req.DurationDays,
		Price:        req.Price,
		VisitQuota:   req.VisitQuota,
		VIP:          req.VIP,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, toPackageResponse(pkg), "Package created successfully")
}

func (h *PackageHandler) UpdatePackage(c *gin.Context) {
	packageID, err := utils.ParseUintParam(c, "id", "package")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req PackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update package", "package_id", packageID, "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	pkg, err := h.updatePackageUC.Execute(c.Request.Context(), usecases.UpdatePackageCommand{
		PackageID:    packageID,
		Name:         req.Name,
		Description:  req.Description,
		DurationDays: req.DurationDays,
		Price:        req.Price,
		VisitQuota:   req.VisitQuota,
		VIP:          req.VIP,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Package updated successfully", toPackageResponse(pkg))
}

func (h *PackageHandler) GetPackage(c *gin.Context) {
	packageID, err := utils.ParseUintParam(c, "id", "package")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	pkg, err := h.getPackageUC.Execute(c.Request.Context(), packageID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, toPackageResponse(pkg))
}

func (h *PackageHandler) ListPackages(c *gin.Context) {
	pagination := utils.ParsePagination(c)
	activeOnly := c.Query("active") == "true"

	result, err := h.listPackagesUC.Execute(c.Request.Context(), usecases.ListPackagesQuery{
		Pagination: pagination,
		ActiveOnly: activeOnly,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, toPackageResponses(result.Packages), result.Total, pagination.Page, pagination.PageSize)
}

func (h *PackageHandler) UpdatePackageStatus(c *gin.Context) {
	packageID, err := utils.ParseUintParam(c, "id", "package")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdatePackageStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update package status", "package_id", packageID, "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	pkg, err := h.setPackageStatusUC.Execute(c.Request.Context(), packageID, *req.Active)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Package status updated successfully", toPackageResponse(pkg))
}

func (h *PackageHandler) DeletePackage(c *gin.Context) {
	packageID, err := utils.ParseUintParam(c, "id", "package")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deletePackageUC.Execute(c.Request.Context(), packageID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Package deleted successfully", nil)
}
