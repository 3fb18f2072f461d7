package handlers

import (
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

// ledgerHandler exposes member balances and the benefit ledger.
type ledgerHandler struct {
	ledgerService        portssvc.LedgerSvcFacade
	creditPackageService portssvc.CreditPackageSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade, cs portssvc.CreditPackageSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls, creditPackageService: cs}
}

func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, creditPackageService portssvc.CreditPackageSvcFacade) {
	h := newLedgerHandler(ledgerService, creditPackageService)

	member := rg.Group("/members/:member_id")
	{
		member.GET("/balance", h.getBalance)
		member.GET("/ledger", h.listEntries)
		member.POST("/bonus", h.grantBonus)
		member.POST("/credits", h.purchaseCredits)
	}
}

// getBalance godoc
// @Summary Get a member's balance
// @Description Sum of every unexpired ledger entry for one entitlement.
// @Tags ledger
// @Produce  json
// @Param   member_id path string true "Member ID"
// @Param   entitlement query string true "credits, passes or call_room_hours"
// @Success 200 {object} dto.BalanceResponse
// @Failure 400 {object} dto.ErrorResponse "Unknown entitlement"
// @Security BearerAuth
// @Router /members/{member_id}/balance [get]
func (h *ledgerHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	memberID := c.Param("member_id")
	entitlement := domain.Entitlement(c.Query("entitlement"))
	if !entitlement.Valid() {
		respondError(c, logger, "get balance", apperrors.NewAppError(http.StatusBadRequest, "unknown entitlement '"+string(entitlement)+"'", apperrors.ErrValidation))
		return
	}

	balance, err := h.ledgerService.Balance(c.Request.Context(), memberID, entitlement)
	if err != nil {
		respondError(c, logger, "get balance", err)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		MemberID:    memberID,
		Entitlement: entitlement,
		Balance:     balance,
		AsOf:        time.Now().UTC(),
	})
}

// listEntries godoc
// @Summary List a member's ledger entries
// @Tags ledger
// @Produce  json
// @Param   member_id path string true "Member ID"
// @Param   entitlement query string false "Entitlement"
// @Param   membershipID query string false "Membership"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token of the next page"
// @Success 200 {object} dto.ListLedgerEntriesResponse
// @Security BearerAuth
// @Router /members/{member_id}/ledger [get]
func (h *ledgerHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListLedgerEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, "ListLedgerEntries query", err)
		return
	}

	resp, err := h.ledgerService.ListEntries(c.Request.Context(), c.Param("member_id"), params)
	if err != nil {
		respondError(c, logger, "list ledger entries", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// grantBonus godoc
// @Summary Grant bonus credits
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   member_id path string true "Member ID"
// @Param   bonus body dto.GrantBonusRequest true "Bonus details"
// @Success 201 {object} dto.LedgerEntryResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Security BearerAuth
// @Router /members/{member_id}/bonus [post]
func (h *ledgerHandler) grantBonus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.GrantBonusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, "GrantBonus", err)
		return
	}
	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	memberID := c.Param("member_id")
	entry, err := h.ledgerService.GrantBonus(c.Request.Context(), memberID, req, userID)
	if err != nil {
		respondError(c, logger, "grant bonus", err)
		return
	}

	logger.Info("Bonus credits granted", slog.String("member_id", memberID), slog.String("amount", entry.Amount.String()))
	c.JSON(http.StatusCreated, dto.ToLedgerEntryResponse(entry))
}

// purchaseCredits godoc
// @Summary Sell loose credits against an invoice
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   member_id path string true "Member ID"
// @Param   purchase body dto.PurchaseCreditsRequest true "Purchase details"
// @Success 201 {object} dto.LedgerEntryResponse
// @Failure 422 {object} dto.ErrorResponse "Billing product not configured"
// @Security BearerAuth
// @Router /members/{member_id}/credits [post]
func (h *ledgerHandler) purchaseCredits(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PurchaseCreditsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, "PurchaseCredits", err)
		return
	}
	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	memberID := c.Param("member_id")
	entry, err := h.creditPackageService.PurchaseCredits(c.Request.Context(), memberID, req, userID)
	if err != nil {
		respondError(c, logger, "purchase credits", err)
		return
	}

	logger.Info("Credits purchased", slog.String("member_id", memberID), slog.Int64("amount", req.Amount))
	c.JSON(http.StatusCreated, dto.ToLedgerEntryResponse(entry))
}
