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

// membershipHandler handles HTTP requests related to memberships and their lifecycle.
type membershipHandler struct {
	membershipService portssvc.MembershipSvcFacade
}

func newMembershipHandler(ms portssvc.MembershipSvcFacade) *membershipHandler {
	return &membershipHandler{membershipService: ms}
}

// RegisterMembershipRoutes registers membership CRUD, lifecycle and billing routes.
func RegisterMembershipRoutes(rg *gin.RouterGroup, membershipService portssvc.MembershipSvcFacade) {
	h := newMembershipHandler(membershipService)

	memberships := rg.Group("/memberships")
	{
		memberships.POST("", h.createMembership)
		memberships.GET("", h.listMemberships)
	}

	membership := rg.Group("/memberships/:membership_id")
	{
		membership.GET("", h.getMembership)
		membership.PUT("", h.updateMembership)
		membership.GET("/notes", h.listNotes)

		// Lifecycle actions
		membership.POST("/accept-policies", h.lifecycle("accept policies", membershipService.AcceptPolicies, http.StatusOK))
		membership.POST("/confirm", h.lifecycle("confirm membership", membershipService.Confirm, http.StatusOK))
		membership.POST("/activate", h.lifecycle("activate membership", membershipService.Activate, http.StatusOK))
		membership.POST("/expire", h.lifecycle("expire membership", membershipService.Expire, http.StatusOK))
		membership.POST("/cancel", h.lifecycle("cancel membership", membershipService.Cancel, http.StatusOK))
		membership.POST("/renew", h.lifecycle("renew membership", membershipService.Renew, http.StatusCreated))
		membership.POST("/monthly-renewal", h.lifecycle("renew monthly benefits", membershipService.RenewMonthlyBenefits, http.StatusOK))

		// Billing
		membership.POST("/invoices", h.createInvoice)
		membership.POST("/subscription", h.createSubscription)

		membership.POST("/portal-token", h.issuePortalToken)

		membership.PUT("/rating", h.rateMembership)
		membership.GET("/rating", h.getRating)
	}
}

// createMembership godoc
// @Summary Open a draft membership
// @Description The end date is derived from the plan duration.
// @Tags memberships
// @Accept  json
// @Produce  json
// @Param   membership body dto.CreateMembershipRequest true "Membership details"
// @Success 201 {object} dto.MembershipResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Plan or resource not found"
// @Security BearerAuth
// @Router /memberships [post]
func (h *membershipHandler) createMembership(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, "CreateMembership", err)
		return
	}
	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("member_id", req.MemberID), slog.String("plan_id", req.PlanID))
	membership, err := h.membershipService.CreateMembership(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, "create membership", err)
		return
	}

	logger.Info("Membership created successfully", slog.String("membership_id", membership.MembershipID), slog.String("reference", membership.Reference))
	c.JSON(http.StatusCreated, dto.ToMembershipResponse(membership))
}

// listMemberships godoc
// @Summary List memberships
// @Tags memberships
// @Produce  json
// @Param   memberID query string false "Member"
// @Param   planID query string false "Plan"
// @Param   state query string false "Lifecycle state"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token of the next page"
// @Success 200 {object} dto.ListMembershipsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query"
// @Security BearerAuth
// @Router /memberships [get]
func (h *membershipHandler) listMemberships(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListMembershipsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, "ListMemberships query", err)
		return
	}

	resp, err := h.membershipService.ListMemberships(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, "list memberships", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getMembership godoc
// @Summary Get a membership with balances and billed amounts
// @Tags memberships
// @Produce  json
// @Param   membership_id path string true "Membership ID"
// @Success 200 {object} dto.MembershipResponse
// @Failure 404 {object} dto.ErrorResponse "Membership not found"
// @Security BearerAuth
// @Router /memberships/{membership_id} [get]
func (h *membershipHandler) getMembership(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	summary, err := h.membershipService.GetMembershipSummary(c.Request.Context(), c.Param("membership_id"))
	if err != nil {
		respondError(c, logger, "get membership", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToMembershipSummaryResponse(summary))
}

// updateMembership godoc
// @Summary Edit a draft membership
// @Tags memberships
// @Accept  json
// @Produce  json
// @Param   membership_id path string true "Membership ID"
// @Param   membership body dto.UpdateMembershipRequest true "Fields to update"
// @Success 200 {object} dto.MembershipResponse
// @Failure 409 {object} dto.ErrorResponse "Membership is no longer a draft"
// @Security BearerAuth
// @Router /memberships/{membership_id} [put]
func (h *membershipHandler) updateMembership(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, "UpdateMembership", err)
		return
	}
	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	membership, err := h.membershipService.UpdateMembership(c.Request.Context(), c.Param("membership_id"), req, userID)
	if err != nil {
		respondError(c, logger, "update membership", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToMembershipResponse(membership))
}

// listNotes godoc
// @Summary List the notes recorded on a membership
// @Tags memberships
// @Produce  json
// @Param   membership_id path string true "Membership ID"
// @Success 200 {array} dto.NoteResponse
// @Security BearerAuth
// @Router /memberships/{membership_id}/notes [get]
func (h *membershipHandler) listNotes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	notes, err := h.membershipService.ListNotes(c.Request.Context(), c.Param("membership_id"))
	if err != nil {
		respondError(c, logger, "list membership notes", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToNoteResponses(notes))
}

// lifecycle builds the handler of a guarded membership transition.
// @Summary Membership lifecycle actions
// @Description accept-policies, confirm, activate, expire, cancel, renew (201, returns the draft successor) and monthly-renewal.
// @Tags memberships
// @Produce  json
// @Param   membership_id path string true "Membership ID"
// @Success 200 {object} dto.MembershipResponse
// @Failure 404 {object} dto.ErrorResponse "Membership not found"
// @Failure 409 {object} dto.ErrorResponse "Invalid transition or resource unavailable"
// @Failure 422 {object} dto.ErrorResponse "Missing configuration"
// @Security BearerAuth
// @Router /memberships/{membership_id}/confirm [post]
func (h *membershipHandler) lifecycle(action string, fn func(ctx context.Context, membershipID, userID string) (*domain.Membership, error), status int) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		membershipID := c.Param("membership_id")
		userID, ok := actingUser(c, logger)
		if !ok {
			return
		}
		logger = logger.With(slog.String("membership_id", membershipID))

		membership, err := fn(c.Request.Context(), membershipID, userID)
		if err != nil {
			respondError(c, logger, action, err)
			return
		}

		logger.Info("Membership action completed", slog.String("action", action), slog.String("state", string(membership.State)))
		c.JSON(status, dto.ToMembershipResponse(membership))
	}
}

// createInvoice godoc
// @Summary Bill the plan price to the member
// @Tags memberships
// @Produce  json
// @Param   membership_id path string true "Membership ID"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 422 {object} dto.ErrorResponse "Plan has no billable product"
// @Security BearerAuth
// @Router /memberships/{membership_id}/invoices [post]
func (h *membershipHandler) createInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	membershipID := c.Param("membership_id")
	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	invoice, err := h.membershipService.CreateInvoice(c.Request.Context(), membershipID, userID)
	if err != nil {
		respondError(c, logger, "create membership invoice", err)
		return
	}

	logger.Info("Membership invoiced", slog.String("membership_id", membershipID), slog.String("invoice_id", invoice.InvoiceID))
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice))
}

// createSubscription godoc
// @Summary Open a pending billing request for the plan
// @Tags memberships
// @Produce  json
// @Param   membership_id path string true "Membership ID"
// @Success 201 {object} dto.BillingRequestResponse
// @Failure 422 {object} dto.ErrorResponse "Plan has no billable product"
// @Security BearerAuth
// @Router /memberships/{membership_id}/subscription [post]
func (h *membershipHandler) createSubscription(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	request, err := h.membershipService.CreateSubscription(c.Request.Context(), c.Param("membership_id"), userID)
	if err != nil {
		respondError(c, logger, "create subscription", err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToBillingRequestResponse(request))
}

// issuePortalToken godoc
// @Summary Issue a member portal token
// @Description Replaces any previous token. The plaintext is returned once.
// @Tags memberships
// @Produce  json
// @Param   membership_id path string true "Membership ID"
// @Success 201 {object} dto.PortalTokenResponse
// @Failure 404 {object} dto.ErrorResponse "Membership not found"
// @Security BearerAuth
// @Router /memberships/{membership_id}/portal-token [post]
func (h *membershipHandler) issuePortalToken(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	membershipID := c.Param("membership_id")
	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	token, err := h.membershipService.IssuePortalToken(c.Request.Context(), membershipID, userID)
	if err != nil {
		respondError(c, logger, "issue portal token", err)
		return
	}

	logger.Info("Portal token issued", slog.String("membership_id", membershipID))
	c.JSON(http.StatusCreated, dto.PortalTokenResponse{MembershipID: membershipID, AccessToken: token})
}

// rateMembership godoc
// @Summary Record the member's rating of a membership
// @Description Replaces an earlier rating of the same membership. Draft memberships cannot be rated.
// @Tags memberships
// @Accept  json
// @Produce  json
// @Param   membership_id path string true "Membership ID"
// @Param   rating body dto.RateMembershipRequest true "Score 1-5 and feedback"
// @Success 200 {object} dto.RatingResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Membership not found"
// @Failure 409 {object} dto.ErrorResponse "Membership is a draft"
// @Security BearerAuth
// @Router /memberships/{membership_id}/rating [put]
func (h *membershipHandler) rateMembership(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	membershipID := c.Param("membership_id")
	var req dto.RateMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, "RateMembership", err)
		return
	}
	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	rating, err := h.membershipService.RateMembership(c.Request.Context(), membershipID, req, userID)
	if err != nil {
		respondError(c, logger, "rate membership", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToRatingResponse(rating))
}

// getRating godoc
// @Summary Get the rating of a membership
// @Tags memberships
// @Produce  json
// @Param   membership_id path string true "Membership ID"
// @Success 200 {object} dto.RatingResponse
// @Failure 404 {object} dto.ErrorResponse "Membership or rating not found"
// @Security BearerAuth
// @Router /memberships/{membership_id}/rating [get]
func (h *membershipHandler) getRating(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	membershipID := c.Param("membership_id")

	rating, err := h.membershipService.GetRating(c.Request.Context(), membershipID)
	if err != nil {
		respondError(c, logger, "get rating", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToRatingResponse(rating))
}
