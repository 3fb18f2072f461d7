package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/SscSPs/cowork_membership_app/internal/core/ports/services"
	"github.com/SscSPs/cowork_membership_app/internal/dto"
	"github.com/SscSPs/cowork_membership_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// catalogHandler handles HTTP requests related to bookable services.
type catalogHandler struct {
	catalogService portssvc.CatalogSvcFacade
}

func newCatalogHandler(cs portssvc.CatalogSvcFacade) *catalogHandler {
	return &catalogHandler{catalogService: cs}
}

func registerCatalogRoutes(rg *gin.RouterGroup, catalogService portssvc.CatalogSvcFacade) {
	h := newCatalogHandler(catalogService)

	services := rg.Group("/services")
	{
		services.POST("", h.createService)
		services.GET("", h.listServices)
		services.GET("/:service_id", h.getService)
		services.PUT("/:service_id", h.updateService)
	}
}

// createService godoc
// @Summary Add a bookable service
// @Tags services
// @Accept  json
// @Produce  json
// @Param   service body dto.CreateServiceRequest true "Service details"
// @Success 201 {object} dto.ServiceResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 409 {object} dto.ErrorResponse "Duplicate code"
// @Security BearerAuth
// @Router /services [post]
func (h *catalogHandler) createService(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, "CreateService", err)
		return
	}
	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	svc, err := h.catalogService.CreateService(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, "create service", err)
		return
	}

	logger.Info("Service created successfully", slog.String("service_id", svc.ServiceID))
	c.JSON(http.StatusCreated, dto.ToServiceResponse(svc))
}

// listServices godoc
// @Summary List bookable services
// @Tags services
// @Produce  json
// @Param   activeOnly query bool false "Only active services (default true)"
// @Success 200 {array} dto.ServiceResponse
// @Security BearerAuth
// @Router /services [get]
func (h *catalogHandler) listServices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	activeOnly := true
	if raw := c.Query("activeOnly"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			bindError(c, logger, "activeOnly", err)
			return
		}
		activeOnly = parsed
	}

	services, err := h.catalogService.ListServices(c.Request.Context(), activeOnly)
	if err != nil {
		respondError(c, logger, "list services", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToServiceResponses(services))
}

// getService godoc
// @Summary Get a bookable service
// @Tags services
// @Produce  json
// @Param   service_id path string true "Service ID"
// @Success 200 {object} dto.ServiceResponse
// @Failure 404 {object} dto.ErrorResponse "Service not found"
// @Security BearerAuth
// @Router /services/{service_id} [get]
func (h *catalogHandler) getService(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	svc, err := h.catalogService.GetServiceByID(c.Request.Context(), c.Param("service_id"))
	if err != nil {
		respondError(c, logger, "get service", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToServiceResponse(svc))
}

// updateService godoc
// @Summary Update a bookable service
// @Tags services
// @Accept  json
// @Produce  json
// @Param   service_id path string true "Service ID"
// @Param   service body dto.UpdateServiceRequest true "Fields to update"
// @Success 200 {object} dto.ServiceResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Service not found"
// @Security BearerAuth
// @Router /services/{service_id} [put]
func (h *catalogHandler) updateService(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, "UpdateService", err)
		return
	}
	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	svc, err := h.catalogService.UpdateService(c.Request.Context(), c.Param("service_id"), req, userID)
	if err != nil {
		respondError(c, logger, "update service", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToServiceResponse(svc))
}
