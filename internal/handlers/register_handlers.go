package handlers

import (
	"net/http"

	"github.com/SscSPs/claims_ledger/cmd/docs"
	portssvc "github.com/SscSPs/claims_ledger/internal/core/ports/services"
	"github.com/SscSPs/claims_ledger/internal/middleware"
	"github.com/SscSPs/claims_ledger/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes. Extra middleware in apiMiddleware
// runs on /api/v1 after authentication, so it can key on the caller.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	apiMiddleware ...gin.HandlerFunc,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))
	v1.Use(apiMiddleware...)
	RegisterAPIRoutes(v1, services)

	setupSwaggerRoutes(r, cfg)
}

// RegisterAPIRoutes registers the scope routes and, under /scopes/:joinCode,
// every route that works inside one scope.
func RegisterAPIRoutes(v1 *gin.RouterGroup, services *portssvc.ServiceContainer) {
	registerDecimalValidators()
	RegisterScopeRoutes(v1, services.Scope)

	scoped := v1.Group("/scopes/:"+middleware.JoinCodeParam, middleware.ScopeMiddleware(services.Scope))
	registerLedgerRoutes(scoped, services.Ledger)
	registerPolicyRoutes(scoped, services.Policy)
	registerEnrollmentRoutes(scoped, services.Enrollment)
	registerClaimRoutes(scoped, services.Claim)
}

func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
