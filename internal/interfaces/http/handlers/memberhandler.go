package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kinetix-inc/kinetix/internal/application/member/usecases"
	"github.com/kinetix-inc/kinetix/internal/domain/member"
	"github.com/kinetix-inc/kinetix/internal/domain/subscription"
	"github.com/kinetix-inc/kinetix/internal/infrastructure/metrics"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
	"github.com/kinetix-inc/kinetix/internal/shared/utils"
)

type MemberHandler struct {
	registerMemberUC   *usecases.RegisterMemberUseCase
	updateMemberUC     *usecases.UpdateMemberUseCase
	getMemberUC        *usecases.GetMemberUseCase
	listMembersUC      *usecases.ListMembersUseCase
	deactivateMemberUC *usecases.DeactivateMemberUseCase
	recordVisitUC      *usecases.RecordVisitUseCase
	logger             logger.Interface
}

func NewMemberHandler(
	registerMemberUC *usecases.RegisterMemberUseCase,
	updateMemberUC *usecases.UpdateMemberUseCase,
	getMemberUC *usecases.GetMemberUseCase,
	listMembersUC *usecases.ListMembersUseCase,
	deactivateMemberUC *usecases.DeactivateMemberUseCase,
	recordVisitUC *usecases.RecordVisitUseCase,
) *MemberHandler {
	return &MemberHandler{
		registerMemberUC:   registerMemberUC,
		updateMemberUC:     updateMemberUC,
		getMemberUC:        getMemberUC,
		listMembersUC:      listMembersUC,
		deactivateMemberUC: deactivateMemberUC,
		recordVisitUC:      recordVisitUC,
		logger:             logger.NewLogger(),
	}
}

type RegisterMemberRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone"`
}

type UpdateMemberRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone"`
	Notes string `json:"notes"`
}

type RecordVisitRequest struct {
	CheckedInAt *time.Time `json:"checked_in_at"`
}

type MemberResponse struct {
	ID           uint      `json:"id"`
	MemberNumber string    `json:"member_number"`
	Name         string    `json:"name"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Status       string    `json:"status"`
	Notes        string    `json:"notes,omitempty"`
	JoinedAt     time.Time `json:"joined_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type VisitResponse struct {
	ID             uint      `json:"id"`
	MemberID       uint      `json:"member_id"`
	SubscriptionID uint      `json:"subscription_id"`
	CheckedInAt    time.Time `json:"checked_in_at"`
}

type RecordVisitResponse struct {
	Visit        VisitResponse        `json:"visit"`
	Subscription SubscriptionResponse `json:"subscription"`
	VisitsUsed   int64                `json:"visits_used"`
}

func toMemberResponse(m *member.Member) MemberResponse {
	return MemberResponse{
		ID:           m.ID(),
		MemberNumber: m.MemberNumber(),
		Name:         m.Name(),
		Email:        m.Email(),
		Phone:        m.Phone(),
		Status:       string(m.Status()),
		Notes:        m.Notes(),
		JoinedAt:     m.JoinedAt(),
		CreatedAt:    m.CreatedAt(),
		UpdatedAt:    m.UpdatedAt(),
	}
}

func toVisitResponse(v *subscription.Visit) VisitResponse {
	return VisitResponse{
		ID:             v.ID(),
		MemberID:       v.MemberID(),
		SubscriptionID: v.SubscriptionID(),
		CheckedInAt:    v.CheckedInAt(),
	}
}

func (h *MemberHandler) RegisterMember(c *gin.Context) {
	var req RegisterMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for register member", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	registered, err := h.registerMemberUC.Execute(c.Request.Context(), usecases.RegisterMemberCommand{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, toMemberResponse(registered), "Member registered successfully")
}

func (h *MemberHandler) UpdateMember(c *gin.Context) {
	memberID, err := utils.ParseUintParam(c, "id", "member")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update member", "member_id", memberID, "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	updated, err := h.updateMemberUC.Execute(c.Request.Context(), usecases.UpdateMemberCommand{
		MemberID: memberID,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Notes:    req.Notes,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Member updated successfully", toMemberResponse(updated))
}

func (h *MemberHandler) GetMember(c *gin.Context) {
	memberID, err := utils.ParseUintParam(c, "id", "member")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	m, err := h.getMemberUC.Execute(c.Request.Context(), memberID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, toMemberResponse(m))
}

func (h *MemberHandler) ListMembers(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	result, err := h.listMembersUC.Execute(c.Request.Context(), usecases.ListMembersQuery{
		Pagination: pagination,
		Search:     c.Query("search"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	responses := make([]MemberResponse, 0, len(result.Members))
	for _, m := range result.Members {
		responses = append(responses, toMemberResponse(m))
	}

	utils.ListSuccessResponse(c, responses, result.Total, pagination.Page, pagination.PageSize)
}

func (h *MemberHandler) DeactivateMember(c *gin.Context) {
	memberID, err := utils.ParseUintParam(c, "id", "member")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	deactivated, err := h.deactivateMemberUC.Execute(c.Request.Context(), memberID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Member deactivated successfully", toMemberResponse(deactivated))
}

// RecordVisit checks a member in against their active subscription. The
// check-in time defaults to now when the body omits it.
func (h *MemberHandler) RecordVisit(c *gin.Context) {
	memberID, err := utils.ParseUintParam(c, "id", "member")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req RecordVisitRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.logger.Warnw("invalid request body for record visit", "member_id", memberID, "error", err)
			utils.ErrorResponseWithError(c, utils.BindingError(err))
			return
		}
	}

	checkedInAt := time.Now()
	if req.CheckedInAt != nil {
		checkedInAt = *req.CheckedInAt
	}

	result, err := h.recordVisitUC.Execute(c.Request.Context(), usecases.RecordVisitCommand{
		MemberID:    memberID,
		CheckedInAt: checkedInAt,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	metrics.VisitsRecorded.Inc()

	utils.CreatedResponse(c, RecordVisitResponse{
		Visit:        toVisitResponse(result.Visit),
		Subscription: toSubscriptionResponse(result.Subscription),
		VisitsUsed:   result.VisitsUsed,
	}, "Visit recorded successfully")
}
