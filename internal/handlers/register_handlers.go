package handlers

import (
	"log/slog"
	"time"

	"github.com/SscSPs/cowork_membership_app/cmd/docs"
	portssvc "github.com/SscSPs/cowork_membership_app/internal/core/ports/services"
	"github.com/SscSPs/cowork_membership_app/internal/middleware"
	"github.com/SscSPs/cowork_membership_app/internal/platform/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.PortalTokenHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Unauthenticated, rate-limited surfaces
	setupPublicRoutes(r, cfg, services)

	setupAPIV1Routes(r, cfg, services)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the staff /api/v1 group behind JWT auth
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))

	registerPlanRoutes(v1, service.Plan)
	registerCatalogRoutes(v1, service.Catalog)
	registerResourceRoutes(v1, service.Resource)
	RegisterMembershipRoutes(v1, service.Membership)
	RegisterAccessRequestRoutes(v1, service.AccessRequest)
	registerDepositRoutes(v1, service.Deposit)
	registerLedgerRoutes(v1, service.Ledger, service.CreditPackage)
	registerCreditPackageRoutes(v1, service.CreditPackage)
	registerLeadRoutes(v1, service.Lead)
	registerSweepRoutes(v1, service.Sweep)
}

// setupPublicRoutes registers the intake form and the member portal, each with its own per-IP limit
func setupPublicRoutes(r *gin.Engine, cfg *config.Config, service *portssvc.ServiceContainer) {
	public := r.Group("/api/v1/public", middleware.RateLimit(newIPLimiter(cfg.IntakeRateLimit, "10-M")))
	registerIntakeRoutes(public, service.Lead)

	portal := r.Group("/api/v1/portal", middleware.RateLimit(newIPLimiter(cfg.PortalRateLimit, "60-M")))
	registerPortalRoutes(portal, service.Membership, service.Ledger)
}

func newIPLimiter(formatted, fallback string) *limiter.Limiter {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		slog.Warn("Invalid rate limit, using default", slog.String("rate", formatted), slog.String("default", fallback))
		rate, _ = limiter.NewRateFromFormatted(fallback)
	}
	return limiter.New(memory.NewStore(), rate)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
