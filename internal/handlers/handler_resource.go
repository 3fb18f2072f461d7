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

// resourceHandler handles HTTP requests related to desks, beds and floors.
type resourceHandler struct {
	resourceService portssvc.ResourceSvcFacade
}

func newResourceHandler(rs portssvc.ResourceSvcFacade) *resourceHandler {
	return &resourceHandler{resourceService: rs}
}

func registerResourceRoutes(rg *gin.RouterGroup, resourceService portssvc.ResourceSvcFacade) {
	h := newResourceHandler(resourceService)

	resources := rg.Group("/resources")
	{
		resources.POST("", h.createResource)
		resources.GET("", h.listResources)
		resources.GET("/:resource_id", h.getResource)
		resources.POST("/:resource_id/maintenance", h.setMaintenance)
		resources.DELETE("/:resource_id/maintenance", h.releaseMaintenance)
	}
}

// createResource godoc
// @Summary Add a desk, bed or floor
// @Tags resources
// @Accept  json
// @Produce  json
// @Param   resource body dto.CreateResourceRequest true "Resource details"
// @Success 201 {object} dto.ResourceResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 409 {object} dto.ErrorResponse "Duplicate code"
// @Security BearerAuth
// @Router /resources [post]
func (h *resourceHandler) createResource(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, "CreateResource", err)
		return
	}
	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	res, err := h.resourceService.CreateResource(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, "create resource", err)
		return
	}

	logger.Info("Resource created successfully", slog.String("resource_id", res.ResourceID), slog.String("kind", string(res.Kind)))
	c.JSON(http.StatusCreated, dto.ToResourceResponse(res))
}

// listResources godoc
// @Summary Search inventory
// @Tags resources
// @Produce  json
// @Param   kind query string false "desk, bed or floor"
// @Param   type query string false "Resource type"
// @Param   city query string false "City"
// @Param   state query string false "Resource state"
// @Success 200 {array} dto.ResourceResponse
// @Security BearerAuth
// @Router /resources [get]
func (h *resourceHandler) listResources(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListResourcesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, "ListResources query", err)
		return
	}

	resources, err := h.resourceService.ListResources(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, "list resources", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToResourceResponses(resources))
}

// getResource godoc
// @Summary Get a resource
// @Tags resources
// @Produce  json
// @Param   resource_id path string true "Resource ID"
// @Success 200 {object} dto.ResourceResponse
// @Failure 404 {object} dto.ErrorResponse "Resource not found"
// @Security BearerAuth
// @Router /resources/{resource_id} [get]
func (h *resourceHandler) getResource(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	res, err := h.resourceService.GetResourceByID(c.Request.Context(), c.Param("resource_id"))
	if err != nil {
		respondError(c, logger, "get resource", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToResourceResponse(res))
}

// setMaintenance godoc
// @Summary Take a resource out of the pool
// @Tags resources
// @Produce  json
// @Param   resource_id path string true "Resource ID"
// @Success 200 {object} dto.ResourceResponse
// @Failure 409 {object} dto.ErrorResponse "Resource is bound to a membership"
// @Security BearerAuth
// @Router /resources/{resource_id}/maintenance [post]
func (h *resourceHandler) setMaintenance(c *gin.Context) {
	h.maintenance(c, "set maintenance", h.resourceService.SetMaintenance)
}

// releaseMaintenance godoc
// @Summary Return a resource to the pool
// @Tags resources
// @Produce  json
// @Param   resource_id path string true "Resource ID"
// @Success 200 {object} dto.ResourceResponse
// @Failure 409 {object} dto.ErrorResponse "Resource is not under maintenance"
// @Security BearerAuth
// @Router /resources/{resource_id}/maintenance [delete]
func (h *resourceHandler) releaseMaintenance(c *gin.Context) {
	h.maintenance(c, "release maintenance", h.resourceService.ReleaseMaintenance)
}

func (h *resourceHandler) maintenance(c *gin.Context, action string, fn func(ctx context.Context, resourceID, userID string) (*domain.Resource, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	resourceID := c.Param("resource_id")
	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	res, err := fn(c.Request.Context(), resourceID, userID)
	if err != nil {
		respondError(c, logger, action, err)
		return
	}

	logger.Info("Resource state changed", slog.String("resource_id", resourceID), slog.String("state", string(res.State)))
	c.JSON(http.StatusOK, dto.ToResourceResponse(res))
}
