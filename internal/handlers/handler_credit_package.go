package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/cowork_membership_app/internal/core/ports/services"
	"github.com/SscSPs/cowork_membership_app/internal/dto"
	"github.com/SscSPs/cowork_membership_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type creditPackageHandler struct {
	creditPackageService portssvc.CreditPackageSvcFacade
}

func newCreditPackageHandler(cs portssvc.CreditPackageSvcFacade) *creditPackageHandler {
	return &creditPackageHandler{creditPackageService: cs}
}

func registerCreditPackageRoutes(rg *gin.RouterGroup, creditPackageService portssvc.CreditPackageSvcFacade) {
	h := newCreditPackageHandler(creditPackageService)

	packages := rg.Group("/credit-packages")
	{
		packages.GET("", h.listPackages)
		packages.POST("/:code/sell", h.sellPackage)
	}
}

// listPackages godoc
// @Summary List the credit packages on sale
// @Tags credit-packages
// @Produce  json
// @Success 200 {array} dto.CreditPackageResponse
// @Security BearerAuth
// @Router /credit-packages [get]
func (h *creditPackageHandler) listPackages(c *gin.Context) {
	packages := h.creditPackageService.ListPackages(c.Request.Context())
	resp := make([]dto.CreditPackageResponse, len(packages))
	for i, p := range packages {
		resp[i] = dto.ToCreditPackageResponse(p)
	}
	c.JSON(http.StatusOK, resp)
}

// sellPackage godoc
// @Summary Sell a credit package
// @Description Opens a pending sale order; credits land on the ledger once the order is confirmed.
// @Tags credit-packages
// @Accept  json
// @Produce  json
// @Param   code path string true "Package code"
// @Param   sale body dto.SellCreditPackageRequest true "Buyer and quantity"
// @Success 201 {object} dto.BillingRequestResponse
// @Failure 404 {object} dto.ErrorResponse "Unknown package"
// @Security BearerAuth
// @Router /credit-packages/{code}/sell [post]
func (h *creditPackageHandler) sellPackage(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SellCreditPackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, "SellCreditPackage", err)
		return
	}
	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	code := c.Param("code")
	request, err := h.creditPackageService.SellPackage(c.Request.Context(), code, req, userID)
	if err != nil {
		respondError(c, logger, "sell credit package", err)
		return
	}

	logger.Info("Credit package sold", slog.String("code", code), slog.String("member_id", req.MemberID), slog.String("billing_request_id", request.BillingRequestID))
	c.JSON(http.StatusCreated, dto.ToBillingRequestResponse(request))
}
