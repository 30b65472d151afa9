package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edhub-platform/school-service/internal/services"
	"github.com/edhub-platform/school-service/internal/utils"
)

type InvitationHandler struct {
	BaseHandler
	invitationService services.InvitationService
}

func NewInvitationHandler(invitationService services.InvitationService, logger utils.Logger) *InvitationHandler {
	return &InvitationHandler{
		BaseHandler:       NewBaseHandler(logger),
		invitationService: invitationService,
	}
}

// SendInvitation invites an email address to administer a school
func (h *InvitationHandler) SendInvitation(c *gin.Context) {
	var req services.SendInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Sending school admin invitation", "email", req.Email, "school_id", req.SchoolID)

	invitation, err := h.invitationService.Send(c.Request.Context(), &req)
	if err != nil {
		h.handleInvitationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Message: "Invitation sent",
		Data:    invitation,
	})
}

// AcceptInvitation redeems an invitation token and provisions the
// school-admin account
func (h *InvitationHandler) AcceptInvitation(c *gin.Context) {
	var req services.AcceptInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	result, err := h.invitationService.Accept(c.Request.Context(), &req)
	if err != nil {
		h.handleInvitationError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Invitation accepted",
		Data:    result,
	})
}

// GetInvitationStatus reports whether the token is still redeemable
func (h *InvitationHandler) GetInvitationStatus(c *gin.Context) {
	token := ParseStringIDParam(c, "token")
	if token == "" {
		return
	}

	status, err := h.invitationService.GetStatus(c.Request.Context(), token)
	if err != nil {
		h.handleInvitationError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// RejectInvitation declines a pending invitation
func (h *InvitationHandler) RejectInvitation(c *gin.Context) {
	token := ParseStringIDParam(c, "token")
	if token == "" {
		return
	}

	invitation, err := h.invitationService.Reject(c.Request.Context(), token)
	if err != nil {
		h.handleInvitationError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Invitation rejected",
		Data:    invitation,
	})
}

// ListSchoolInvitations lists every invitation issued for a school
func (h *InvitationHandler) ListSchoolInvitations(c *gin.Context) {
	schoolID := ParseStringIDParam(c, "id")
	if schoolID == "" {
		return
	}

	invitations, err := h.invitationService.ListBySchool(c.Request.Context(), schoolID)
	if err != nil {
		h.handleInvitationError(c, err)
		return
	}

	c.JSON(http.StatusOK, invitations)
}

func (h *InvitationHandler) handleInvitationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvitationNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Invitation not found",
		})
	case errors.Is(err, services.ErrInvitationAlreadySent):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "A pending invitation already exists for this email and school",
		})
	case errors.Is(err, services.ErrInvitationExpired):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "Invitation has expired",
		})
	case errors.Is(err, services.ErrInvitationAlreadyUsed):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "Invitation has already been accepted",
		})
	case errors.Is(err, services.ErrInvitationRejected):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "Invitation has been rejected",
		})
	default:
		h.handleServiceError(c, err)
	}
}
