package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/cowork_membership_app/internal/core/ports/services"
	"github.com/SscSPs/cowork_membership_app/internal/dto"
	"github.com/SscSPs/cowork_membership_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// portalHandler serves the member self-service view. Access is by portal token, not JWT.
type portalHandler struct {
	membershipService portssvc.MembershipSvcFacade
	ledgerService     portssvc.LedgerSvcFacade
}

func registerPortalRoutes(rg *gin.RouterGroup, membershipService portssvc.MembershipSvcFacade, ledgerService portssvc.LedgerSvcFacade) {
	h := &portalHandler{membershipService: membershipService, ledgerService: ledgerService}
	rg.GET("/memberships/:membership_id", middleware.PortalTokenMiddleware(), h.getMembership)
}

// getMembership godoc
// @Summary Member portal view of a membership
// @Description Returns the membership summary and its most recent ledger entries.
// @Tags portal
// @Produce  json
// @Param   membership_id path string true "Membership ID"
// @Param   X-Portal-Token header string false "Portal token"
// @Param   access_token query string false "Portal token"
// @Success 200 {object} dto.PortalMembershipResponse
// @Failure 403 {object} dto.ErrorResponse "Token does not match"
// @Router /portal/memberships/{membership_id} [get]
func (h *portalHandler) getMembership(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	token, _ := middleware.GetPortalTokenFromContext(c)

	summary, err := h.membershipService.GetSummaryWithToken(c.Request.Context(), c.Param("membership_id"), token)
	if err != nil {
		respondError(c, logger, "load portal membership", err)
		return
	}

	entries, err := h.ledgerService.ListEntries(c.Request.Context(), summary.Membership.MemberID, dto.ListLedgerEntriesParams{
		MembershipID: summary.Membership.MembershipID,
		PageParams:   dto.PageParams{Limit: 50},
	})
	if err != nil {
		respondError(c, logger, "load portal ledger", err)
		return
	}

	c.JSON(http.StatusOK, dto.PortalMembershipResponse{
		Membership: dto.ToMembershipSummaryResponse(summary),
		Ledger:     entries.Entries,
	})
}
