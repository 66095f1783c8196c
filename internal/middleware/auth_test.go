package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/JuanseMastrangelo/asset-movements-console/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-that-is-long-enough"

type fakeSessions map[string]bool

func (f fakeSessions) SessionActive(id string) bool { return f[id] }

func signToken(t *testing.T, subject string, expiresIn time.Duration) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func newRouter(sessions middleware.SessionChecker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.AuthMiddleware(testSecret, sessions))
	r.GET("/whoami", func(c *gin.Context) {
		id, _ := middleware.GetSessionIDFromContext(c)
		c.String(http.StatusOK, id)
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	sessions := fakeSessions{"live": true}
	r := newRouter(sessions)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"missing header", "", http.StatusUnauthorized, ""},
		{"bad format", "Token abc", http.StatusUnauthorized, ""},
		{"garbage token", "Bearer abc.def.ghi", http.StatusUnauthorized, ""},
		{"expired token", "Bearer " + signToken(t, "live", -time.Minute), http.StatusUnauthorized, ""},
		{"torn down session", "Bearer " + signToken(t, "gone", time.Hour), http.StatusUnauthorized, ""},
		{"valid", "Bearer " + signToken(t, "live", time.Hour), http.StatusOK, "live"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
		})
	}
}
