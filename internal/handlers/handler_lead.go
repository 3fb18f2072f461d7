package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/cowork_membership_app/internal/core/ports/services"
	"github.com/SscSPs/cowork_membership_app/internal/dto"
	"github.com/SscSPs/cowork_membership_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// leadHandler handles the public intake form and the staff lead queue.
type leadHandler struct {
	leadService portssvc.LeadSvcFacade
}

func newLeadHandler(ls portssvc.LeadSvcFacade) *leadHandler {
	return &leadHandler{leadService: ls}
}

// registerIntakeRoutes registers the unauthenticated intake form.
func registerIntakeRoutes(rg *gin.RouterGroup, leadService portssvc.LeadSvcFacade) {
	h := newLeadHandler(leadService)
	rg.POST("/intake", h.submitIntake)
}

func registerLeadRoutes(rg *gin.RouterGroup, leadService portssvc.LeadSvcFacade) {
	h := newLeadHandler(leadService)

	leads := rg.Group("/leads")
	{
		leads.GET("", h.listLeads)
		leads.GET("/:lead_id", h.getLead)
		leads.POST("/:lead_id/membership", h.createMembershipFromLead)
	}
}

// submitIntake godoc
// @Summary Submit a coworking or coliving enquiry
// @Tags public
// @Accept  json
// @Produce  json
// @Param   intake body dto.IntakeRequest true "Enquiry"
// @Success 201 {object} dto.LeadResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 429 {object} dto.ErrorResponse "Too many requests"
// @Router /public/intake [post]
func (h *leadHandler) submitIntake(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.IntakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, "SubmitIntake", err)
		return
	}

	lead, err := h.leadService.SubmitIntake(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, "submit intake", err)
		return
	}

	logger.Info("Intake received", slog.String("lead_id", lead.LeadID), slog.String("space_type", string(lead.SpaceType)))
	c.JSON(http.StatusCreated, dto.ToLeadResponse(lead))
}

// listLeads godoc
// @Summary List leads, newest first
// @Tags leads
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token of the next page"
// @Success 200 {object} dto.ListLeadsResponse
// @Security BearerAuth
// @Router /leads [get]
func (h *leadHandler) listLeads(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.PageParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, "ListLeads query", err)
		return
	}

	resp, err := h.leadService.ListLeads(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, "list leads", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getLead godoc
// @Summary Get a lead
// @Tags leads
// @Produce  json
// @Param   lead_id path string true "Lead ID"
// @Success 200 {object} dto.LeadResponse
// @Failure 404 {object} dto.ErrorResponse "Lead not found"
// @Security BearerAuth
// @Router /leads/{lead_id} [get]
func (h *leadHandler) getLead(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	lead, err := h.leadService.GetLeadByID(c.Request.Context(), c.Param("lead_id"))
	if err != nil {
		respondError(c, logger, "get lead", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToLeadResponse(lead))
}

// createMembershipFromLead godoc
// @Summary Turn a lead into a draft membership
// @Tags leads
// @Accept  json
// @Produce  json
// @Param   lead_id path string true "Lead ID"
// @Param   membership body dto.CreateMembershipFromLeadRequest true "Plan and unit"
// @Success 201 {object} dto.MembershipResponse
// @Failure 409 {object} dto.ErrorResponse "Lead already converted"
// @Security BearerAuth
// @Router /leads/{lead_id}/membership [post]
func (h *leadHandler) createMembershipFromLead(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateMembershipFromLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, "CreateMembershipFromLead", err)
		return
	}
	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	leadID := c.Param("lead_id")
	membership, err := h.leadService.CreateMembershipFromLead(c.Request.Context(), leadID, req, userID)
	if err != nil {
		respondError(c, logger, "create membership from lead", err)
		return
	}

	logger.Info("Lead converted", slog.String("lead_id", leadID), slog.String("membership_id", membership.MembershipID))
	c.JSON(http.StatusCreated, dto.ToMembershipResponse(membership))
}
