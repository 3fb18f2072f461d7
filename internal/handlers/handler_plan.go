package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/cowork_membership_app/internal/core/ports/services"
	"github.com/SscSPs/cowork_membership_app/internal/dto"
	"github.com/SscSPs/cowork_membership_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// planHandler handles HTTP requests related to membership plans.
type planHandler struct {
	planService portssvc.PlanSvcFacade
}

func newPlanHandler(ps portssvc.PlanSvcFacade) *planHandler {
	return &planHandler{planService: ps}
}

func registerPlanRoutes(rg *gin.RouterGroup, planService portssvc.PlanSvcFacade) {
	h := newPlanHandler(planService)

	plans := rg.Group("/plans")
	{
		plans.POST("", h.createPlan)
		plans.GET("", h.listPlans)
		plans.GET("/:plan_id", h.getPlan)
		plans.PUT("/:plan_id", h.updatePlan)
	}
}

// createPlan godoc
// @Summary Create a membership plan
// @Description Creates a plan and registers its billable product.
// @Tags plans
// @Accept  json
// @Produce  json
// @Param   plan body dto.CreatePlanRequest true "Plan details"
// @Success 201 {object} dto.PlanResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to create plan"
// @Security BearerAuth
// @Router /plans [post]
func (h *planHandler) createPlan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, "CreatePlan", err)
		return
	}
	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	plan, err := h.planService.CreatePlan(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, "create plan", err)
		return
	}

	logger.Info("Plan created successfully", slog.String("plan_id", plan.PlanID))
	c.JSON(http.StatusCreated, dto.ToPlanResponse(plan))
}

// listPlans godoc
// @Summary List membership plans
// @Tags plans
// @Produce  json
// @Param   spaceType query string false "coworking or coliving"
// @Param   activeOnly query bool false "Only active plans"
// @Success 200 {array} dto.PlanResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query"
// @Security BearerAuth
// @Router /plans [get]
func (h *planHandler) listPlans(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListPlansParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, "ListPlans query", err)
		return
	}

	plans, err := h.planService.ListPlans(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, "list plans", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPlanResponses(plans))
}

// getPlan godoc
// @Summary Get a membership plan
// @Tags plans
// @Produce  json
// @Param   plan_id path string true "Plan ID"
// @Success 200 {object} dto.PlanResponse
// @Failure 404 {object} dto.ErrorResponse "Plan not found"
// @Security BearerAuth
// @Router /plans/{plan_id} [get]
func (h *planHandler) getPlan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	plan, err := h.planService.GetPlanByID(c.Request.Context(), c.Param("plan_id"))
	if err != nil {
		respondError(c, logger, "get plan", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPlanResponse(plan))
}

// updatePlan godoc
// @Summary Update a membership plan
// @Description Entitlement fields cannot change while the plan has confirmed or active memberships.
// @Tags plans
// @Accept  json
// @Produce  json
// @Param   plan_id path string true "Plan ID"
// @Param   plan body dto.UpdatePlanRequest true "Fields to update"
// @Success 200 {object} dto.PlanResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Plan not found"
// @Security BearerAuth
// @Router /plans/{plan_id} [put]
func (h *planHandler) updatePlan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	planID := c.Param("plan_id")
	var req dto.UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, "UpdatePlan", err)
		return
	}
	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	plan, err := h.planService.UpdatePlan(c.Request.Context(), planID, req, userID)
	if err != nil {
		respondError(c, logger, "update plan", err)
		return
	}

	logger.Info("Plan updated successfully", slog.String("plan_id", planID))
	c.JSON(http.StatusOK, dto.ToPlanResponse(plan))
}
