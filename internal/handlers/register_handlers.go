package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/JuanseMastrangelo/asset-movements-console/cmd/docs"
	portssvc "github.com/JuanseMastrangelo/asset-movements-console/internal/core/ports/services"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/middleware"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/platform/config"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/utils"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/utils/validation"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	analytics *utils.PosthogClientWrapper,
) {
	if err := validation.RegisterGinValidations(); err != nil {
		slog.Error("Failed to register custom validations", slog.String("error", err.Error()))
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendBaseURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if cfg.RateLimit != "" {
		l, err := middleware.NewMemoryLimiter(cfg.RateLimit)
		if err != nil {
			slog.Error("Rate limiting disabled", slog.String("error", err.Error()))
		} else {
			r.Use(middleware.RateLimit(l))
		}
	}

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	// Register public authentication routes
	registerAuthRoutes(r, services.Auth)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services, analytics)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	analytics *utils.PosthogClientWrapper,
) {
	// The session check rejects tokens whose console session was logged out
	// or torn down after a backend 401.
	v1 := r.Group("/api/v1",
		middleware.AuthMiddleware(cfg.JWTSecret, service.Auth),
		middleware.PosthogMiddleware(analytics),
	)

	registerSessionRoutes(v1, service.Auth)
	registerReferenceRoutes(v1, service.Reference)
	registerWizardRoutes(v1, service.Wizard, cfg.MaxUploadFiles, cfg.MaxUploadFileBytes)
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
