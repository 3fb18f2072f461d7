package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/cowork_membership_app/internal/apperrors"
	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	portssvc "github.com/SscSPs/cowork_membership_app/internal/core/ports/services"
	"github.com/SscSPs/cowork_membership_app/internal/dto"
	"github.com/SscSPs/cowork_membership_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type sweepHandler struct {
	sweepService portssvc.SweepSvc
}

// registerSweepRoutes lets an operator trigger the scheduled sweeps by hand.
func registerSweepRoutes(rg *gin.RouterGroup, sweepService portssvc.SweepSvc) {
	h := &sweepHandler{sweepService: sweepService}

	sweeps := rg.Group("/admin/sweeps")
	{
		sweeps.POST("/expiry", h.run("expiry", sweepService.RunExpirySweep))
		sweeps.POST("/monthly-reset", h.run("monthly-reset", sweepService.RunMonthlyResetSweep))
	}
}

// run builds the handler of one sweep.
// @Summary Run a membership sweep
// @Description expiry expires overdue memberships and auto-renews; monthly-reset renews monthly benefits.
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   sweep body dto.RunSweepRequest false "Day to sweep as of"
// @Success 200 {object} portssvc.SweepReport
// @Failure 400 {object} dto.ErrorResponse "asOf is a future day"
// @Security BearerAuth
// @Router /admin/sweeps/expiry [post]
func (h *sweepHandler) run(name string, fn func(ctx context.Context, asOf time.Time) (*portssvc.SweepReport, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		var req dto.RunSweepRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				bindError(c, logger, "RunSweep", err)
				return
			}
		}
		var asOf time.Time
		if req.AsOf != nil {
			asOf = *req.AsOf
			if domain.IsFutureDay(asOf, time.Now()) {
				respondError(c, logger, "run "+name+" sweep",
					apperrors.NewAppError(http.StatusBadRequest, "asOf must not be a future day", apperrors.ErrValidation))
				return
			}
		}

		report, err := fn(c.Request.Context(), asOf)
		if err != nil {
			respondError(c, logger, "run "+name+" sweep", err)
			return
		}

		logger.Info("Sweep completed",
			slog.String("sweep", name),
			slog.Int("due", report.Due),
			slog.Int("processed", report.Processed),
			slog.Int("failed", report.Failed))
		c.JSON(http.StatusOK, report)
	}
}
