package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kinetix-inc/kinetix/internal/application/campaign/usecases"
	"github.com/kinetix-inc/kinetix/internal/domain/campaign"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
	"github.com/kinetix-inc/kinetix/internal/shared/utils"
)

type CampaignHandler struct {
	createCampaignUC *usecases.CreateCampaignUseCase
	startCampaignUC  *usecases.StartCampaignUseCase
	getCampaignUC    *usecases.GetCampaignUseCase
	listCampaignsUC  *usecases.ListCampaignsUseCase
	cancelCampaignUC *usecases.CancelCampaignUseCase
	logger           logger.Interface
}

func NewCampaignHandler(
	createCampaignUC *usecases.CreateCampaignUseCase,
	startCampaignUC *usecases.StartCampaignUseCase,
	getCampaignUC *usecases.GetCampaignUseCase,
	listCampaignsUC *usecases.ListCampaignsUseCase,
	cancelCampaignUC *usecases.CancelCampaignUseCase,
) *CampaignHandler {
	return &CampaignHandler{
		createCampaignUC: createCampaignUC,
		startCampaignUC:  startCampaignUC,
		getCampaignUC:    getCampaignUC,
		listCampaignsUC:  listCampaignsUC,
		cancelCampaignUC: cancelCampaignUC,
		logger:           logger.NewLogger(),
	}
}

type CreateCampaignRequest struct {
	Name     string `json:"name" binding:"required"`
	Subject  string `json:"subject" binding:"required"`
	Body     string `json:"body" binding:"required"`
	Audience string `json:"audience" binding:"required,oneof=all active"`
}

type CampaignResponse struct {
	ID              uint       `json:"id"`
	Name            string     `json:"name"`
	Subject         string     `json:"subject"`
	Body            string     `json:"body"`
	Audience        string     `json:"audience"`
	Status          string     `json:"status"`
	TotalRecipients int        `json:"total_recipients"`
	SentCount       int        `json:"sent_count"`
	FailedCount     int        `json:"failed_count"`
	StartedAt       *time.Time `json:"started_at,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func toCampaignResponse(cp *campaign.Campaign) CampaignResponse {
	return CampaignResponse{
		ID:              cp.ID(),
		Name:            cp.Name(),
		Subject:         cp.Subject(),
		Body:            cp.Body(),
		Audience:        string(cp.Audience()),
		Status:          string(cp.Status()),
		TotalRecipients: cp.TotalRecipients(),
		SentCount:       cp.SentCount(),
		FailedCount:     cp.FailedCount(),
		StartedAt:       cp.StartedAt(),
		CompletedAt:     cp.CompletedAt(),
		CreatedAt:       cp.CreatedAt(),
		UpdatedAt:       cp.UpdatedAt(),
	}
}

func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	var req CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create campaign", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	created, err := h.createCampaignUC.Execute(c.Request.Context(), usecases.CreateCampaignCommand{
		Name:     req.Name,
		Subject:  req.Subject,
		Body:     req.Body,
		Audience: req.Audience,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, toCampaignResponse(created), "Campaign created successfully")
}

// StartCampaign snapshots the audience into the message queue and moves
// the campaign to running. Delivery happens asynchronously in the worker.
func (h *CampaignHandler) StartCampaign(c *gin.Context) {
	campaignID, err := utils.ParseUintParam(c, "id", "campaign")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	started, err := h.startCampaignUC.Execute(c.Request.Context(), campaignID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Campaign started successfully", toCampaignResponse(started))
}

func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	campaignID, err := utils.ParseUintParam(c, "id", "campaign")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cp, err := h.getCampaignUC.Execute(c.Request.Context(), campaignID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, toCampaignResponse(cp))
}

func (h *CampaignHandler) ListCampaigns(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	result, err := h.listCampaignsUC.Execute(c.Request.Context(), pagination)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	responses := make([]CampaignResponse, 0, len(result.Campaigns))
	for _, cp := range result.Campaigns {
		responses = append(responses, toCampaignResponse(cp))
	}

	utils.ListSuccessResponse(c, responses, result.Total, pagination.Page, pagination.PageSize)
}

func (h *CampaignHandler) CancelCampaign(c *gin.Context) {
	campaignID, err := utils.ParseUintParam(c, "id", "campaign")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cancelled, err := h.cancelCampaignUC.Execute(c.Request.Context(), campaignID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Campaign cancelled successfully", toCampaignResponse(cancelled))
}
