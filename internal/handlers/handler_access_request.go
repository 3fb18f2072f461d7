package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	portssvc "github.com/SscSPs/cowork_membership_app/internal/core/ports/services"
	"github.com/SscSPs/cowork_membership_app/internal/dto"
	"github.com/SscSPs/cowork_membership_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accessRequestHandler handles HTTP requests related to service bookings.
type accessRequestHandler struct {
	accessRequestService portssvc.AccessRequestSvcFacade
}

func newAccessRequestHandler(as portssvc.AccessRequestSvcFacade) *accessRequestHandler {
	return &accessRequestHandler{accessRequestService: as}
}

// RegisterAccessRequestRoutes registers booking and settlement routes.
func RegisterAccessRequestRoutes(rg *gin.RouterGroup, accessRequestService portssvc.AccessRequestSvcFacade) {
	h := newAccessRequestHandler(accessRequestService)

	requests := rg.Group("/access-requests")
	{
		requests.POST("", h.createAccessRequest)
		requests.GET("", h.listAccessRequests)
	}

	request := rg.Group("/access-requests/:request_id")
	{
		request.GET("", h.getAccessRequest)
		request.PUT("", h.updateAccessRequest)
		request.GET("/notes", h.listNotes)
		request.POST("/submit", h.workflow("submit access request", accessRequestService.Submit))
		request.POST("/approve", h.workflow("approve access request", accessRequestService.Approve))
		request.POST("/reject", h.workflow("reject access request", accessRequestService.Reject))
		request.POST("/cancel", h.workflow("cancel access request", accessRequestService.Cancel))
	}
}

// createAccessRequest godoc
// @Summary Book a service
// @Description Creates a draft request. Costs are computed from the service and duration; the slot must not overlap another booking.
// @Tags access-requests
// @Accept  json
// @Produce  json
// @Param   request body dto.CreateAccessRequestRequest true "Booking details"
// @Success 201 {object} dto.AccessRequestResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 409 {object} dto.ErrorResponse "Scheduling conflict"
// @Security BearerAuth
// @Router /access-requests [post]
func (h *accessRequestHandler) createAccessRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccessRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, "CreateAccessRequest", err)
		return
	}
	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("membership_id", req.MembershipID), slog.String("service_id", req.ServiceID))
	request, err := h.accessRequestService.CreateAccessRequest(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, "create access request", err)
		return
	}

	logger.Info("Access request created successfully", slog.String("access_request_id", request.AccessRequestID), slog.String("reference", request.Reference))
	c.JSON(http.StatusCreated, dto.ToAccessRequestResponse(request))
}

// listAccessRequests godoc
// @Summary List access requests
// @Tags access-requests
// @Produce  json
// @Param   membershipID query string false "Membership"
// @Param   serviceID query string false "Service"
// @Param   state query string false "Request state"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token of the next page"
// @Success 200 {object} dto.ListAccessRequestsResponse
// @Security BearerAuth
// @Router /access-requests [get]
func (h *accessRequestHandler) listAccessRequests(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListAccessRequestsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, "ListAccessRequests query", err)
		return
	}

	resp, err := h.accessRequestService.ListAccessRequests(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, "list access requests", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getAccessRequest godoc
// @Summary Get an access request
// @Tags access-requests
// @Produce  json
// @Param   request_id path string true "Access request ID"
// @Success 200 {object} dto.AccessRequestResponse
// @Failure 404 {object} dto.ErrorResponse "Access request not found"
// @Security BearerAuth
// @Router /access-requests/{request_id} [get]
func (h *accessRequestHandler) getAccessRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	request, err := h.accessRequestService.GetAccessRequestByID(c.Request.Context(), c.Param("request_id"))
	if err != nil {
		respondError(c, logger, "get access request", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccessRequestResponse(request))
}

// updateAccessRequest godoc
// @Summary Edit an access request
// @Description Costs are recomputed unless the request is settled; the overlap rule is re-checked.
// @Tags access-requests
// @Accept  json
// @Produce  json
// @Param   request_id path string true "Access request ID"
// @Param   request body dto.UpdateAccessRequestRequest true "Fields to update"
// @Success 200 {object} dto.AccessRequestResponse
// @Failure 409 {object} dto.ErrorResponse "Scheduling conflict or invalid transition"
// @Security BearerAuth
// @Router /access-requests/{request_id} [put]
func (h *accessRequestHandler) updateAccessRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateAccessRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, "UpdateAccessRequest", err)
		return
	}
	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	request, err := h.accessRequestService.UpdateAccessRequest(c.Request.Context(), c.Param("request_id"), req, userID)
	if err != nil {
		respondError(c, logger, "update access request", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccessRequestResponse(request))
}

// listNotes godoc
// @Summary List the notes recorded on an access request
// @Tags access-requests
// @Produce  json
// @Param   request_id path string true "Access request ID"
// @Success 200 {array} dto.NoteResponse
// @Security BearerAuth
// @Router /access-requests/{request_id}/notes [get]
func (h *accessRequestHandler) listNotes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	notes, err := h.accessRequestService.ListNotes(c.Request.Context(), c.Param("request_id"))
	if err != nil {
		respondError(c, logger, "list access request notes", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToNoteResponses(notes))
}

// workflow builds the handler of an approval workflow action.
// @Summary Access request workflow
// @Description submit, approve (settles the entitlement), reject and cancel (reverse an approved settlement).
// @Tags access-requests
// @Produce  json
// @Param   request_id path string true "Access request ID"
// @Success 200 {object} dto.AccessRequestResponse
// @Failure 409 {object} dto.ErrorResponse "Invalid transition"
// @Failure 422 {object} dto.ErrorResponse "Insufficient entitlement or missing configuration"
// @Security BearerAuth
// @Router /access-requests/{request_id}/approve [post]
func (h *accessRequestHandler) workflow(action string, fn func(ctx context.Context, requestID, userID string) (*domain.AccessRequest, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		requestID := c.Param("request_id")
		userID, ok := actingUser(c, logger)
		if !ok {
			return
		}
		logger = logger.With(slog.String("access_request_id", requestID))

		request, err := fn(c.Request.Context(), requestID, userID)
		if err != nil {
			respondError(c, logger, action, err)
			return
		}

		logger.Info("Access request action completed", slog.String("action", action), slog.String("state", string(request.State)))
		c.JSON(http.StatusOK, dto.ToAccessRequestResponse(request))
	}
}
