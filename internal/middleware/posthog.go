package middleware

import (
	"net/http"
	"strings"

	"github.com/JuanseMastrangelo/asset-movements-console/internal/utils"
	"github.com/gin-gonic/gin"
)

// pathsToSkip contains paths that should not be tracked by PostHog
var pathsToSkip = map[string]bool{
	"/health": true,
}

// PosthogMiddleware tracks successful API calls, one event per route.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !posthogClient.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		sessionID, exists := GetSessionIDFromContext(c)
		if !exists {
			return
		}

		// "/api/v1/wizards/:wizardID/operation" -> "api_v1_wizards_:wizardID_operation"
		eventName := strings.TrimPrefix(c.FullPath(), "/")
		eventName = strings.ReplaceAll(eventName, "/", "_")
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"status_code": c.Writer.Status(),
		}
		if len(c.Params) > 0 {
			params := make(map[string]string, len(c.Params))
			for _, param := range c.Params {
				params[param.Key] = param.Value
			}
			props["params"] = params
		}

		posthogClient.Enqueue(sessionID, eventName, props)
	}
}
