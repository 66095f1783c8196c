package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/JuanseMastrangelo/asset-movements-console/internal/apperrors"
	portssvc "github.com/JuanseMastrangelo/asset-movements-console/internal/core/ports/services"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/dto"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// loginRate bounds login attempts per client IP.
const loginRate = "10-M"

// AuthHandler handles console login and logout.
type AuthHandler struct {
	authService portssvc.AuthSvcFacade
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as portssvc.AuthSvcFacade) *AuthHandler {
	return &AuthHandler{authService: as}
}

// registerAuthRoutes sets up the public login route.
func registerAuthRoutes(r *gin.Engine, authService portssvc.AuthSvcFacade) {
	h := NewAuthHandler(authService)

	rate, _ := limiter.NewRateFromFormatted(loginRate)
	ipLimiter := limiter.New(memory.NewStore(), rate)
	limitMiddleware := limitergin.NewMiddleware(ipLimiter)

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/login", limitMiddleware, h.Login)
	}
}

// registerSessionRoutes sets up the authenticated auth routes.
func registerSessionRoutes(rg *gin.RouterGroup, authService portssvc.AuthSvcFacade) {
	h := NewAuthHandler(authService)
	rg.POST("/auth/logout", h.Logout)
}

// Login godoc
// @Summary Console login
// @Description Authenticates against the backend and returns a console JWT. The backend token never leaves the server.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse "Backend unreachable"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) || errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Login rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password"})
			return
		}
		respondError(c, err, "log in")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout godoc
// @Summary Console logout
// @Description Ends the console session and discards all of its wizards.
// @Tags auth
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	if err := h.authService.Logout(c.Request.Context(), id); err != nil {
		respondError(c, err, "log out")
		return
	}
	c.Status(http.StatusNoContent)
}
