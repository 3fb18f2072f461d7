package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/cowork_membership_app/internal/core/ports/services"
	"github.com/SscSPs/cowork_membership_app/internal/dto"
	"github.com/SscSPs/cowork_membership_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// depositHandler handles HTTP requests related to security deposits.
type depositHandler struct {
	depositService portssvc.DepositSvcFacade
}

func newDepositHandler(ds portssvc.DepositSvcFacade) *depositHandler {
	return &depositHandler{depositService: ds}
}

func registerDepositRoutes(rg *gin.RouterGroup, depositService portssvc.DepositSvcFacade) {
	h := newDepositHandler(depositService)

	rg.POST("/memberships/:membership_id/deposit", h.createDeposit)

	deposit := rg.Group("/deposits/:deposit_id")
	{
		deposit.GET("", h.getDeposit)
		deposit.POST("/pay", h.markPaid)
		deposit.POST("/return", h.returnDeposit)
		deposit.POST("/withhold", h.withhold)
	}
}

// createDeposit godoc
// @Summary Open the security deposit a membership's plan requires
// @Tags deposits
// @Produce  json
// @Param   membership_id path string true "Membership ID"
// @Success 201 {object} dto.DepositResponse
// @Failure 400 {object} dto.ErrorResponse "Plan requires no deposit"
// @Failure 409 {object} dto.ErrorResponse "Membership already has a deposit"
// @Security BearerAuth
// @Router /memberships/{membership_id}/deposit [post]
func (h *depositHandler) createDeposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	membershipID := c.Param("membership_id")
	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	deposit, err := h.depositService.CreateDeposit(c.Request.Context(), membershipID, userID)
	if err != nil {
		respondError(c, logger, "create deposit", err)
		return
	}

	logger.Info("Deposit created", slog.String("membership_id", membershipID), slog.String("deposit_id", deposit.DepositID))
	c.JSON(http.StatusCreated, dto.ToDepositResponse(deposit))
}

// getDeposit godoc
// @Summary Get a security deposit
// @Tags deposits
// @Produce  json
// @Param   deposit_id path string true "Deposit ID"
// @Success 200 {object} dto.DepositResponse
// @Failure 404 {object} dto.ErrorResponse "Deposit not found"
// @Security BearerAuth
// @Router /deposits/{deposit_id} [get]
func (h *depositHandler) getDeposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	deposit, err := h.depositService.GetDepositByID(c.Request.Context(), c.Param("deposit_id"))
	if err != nil {
		respondError(c, logger, "get deposit", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDepositResponse(deposit))
}

// markPaid godoc
// @Summary Record a deposit as paid
// @Tags deposits
// @Produce  json
// @Param   deposit_id path string true "Deposit ID"
// @Success 200 {object} dto.DepositResponse
// @Failure 409 {object} dto.ErrorResponse "Invalid transition"
// @Security BearerAuth
// @Router /deposits/{deposit_id}/pay [post]
func (h *depositHandler) markPaid(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}
	deposit, err := h.depositService.MarkPaid(c.Request.Context(), c.Param("deposit_id"), userID)
	if err != nil {
		respondError(c, logger, "mark deposit paid", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDepositResponse(deposit))
}

// returnDeposit godoc
// @Summary Return a paid deposit
// @Tags deposits
// @Produce  json
// @Param   deposit_id path string true "Deposit ID"
// @Success 200 {object} dto.DepositResponse
// @Failure 409 {object} dto.ErrorResponse "Invalid transition"
// @Security BearerAuth
// @Router /deposits/{deposit_id}/return [post]
func (h *depositHandler) returnDeposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}
	deposit, err := h.depositService.Return(c.Request.Context(), c.Param("deposit_id"), userID)
	if err != nil {
		respondError(c, logger, "return deposit", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDepositResponse(deposit))
}

// withhold godoc
// @Summary Withhold a paid deposit
// @Tags deposits
// @Accept  json
// @Produce  json
// @Param   deposit_id path string true "Deposit ID"
// @Param   reason body dto.WithholdDepositRequest true "Why the deposit is kept"
// @Success 200 {object} dto.DepositResponse
// @Failure 400 {object} dto.ErrorResponse "Reason missing"
// @Failure 409 {object} dto.ErrorResponse "Invalid transition"
// @Security BearerAuth
// @Router /deposits/{deposit_id}/withhold [post]
func (h *depositHandler) withhold(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.WithholdDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, "WithholdDeposit", err)
		return
	}
	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}
	deposit, err := h.depositService.Withhold(c.Request.Context(), c.Param("deposit_id"), req.Reason, userID)
	if err != nil {
		respondError(c, logger, "withhold deposit", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDepositResponse(deposit))
}
