package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/JuanseMastrangelo/asset-movements-console/internal/apperrors"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/core/domain"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/core/services"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/dto"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/utils"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AuthServiceTestSuite struct {
	suite.Suite
	connector *MockBackendConnector
	sessions  *services.SessionStore
	service   *services.AuthService
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.connector = &MockBackendConnector{API: new(MockBackendAPI)}
	suite.sessions = services.NewSessionStore(suite.connector)
	suite.service = services.NewAuthService(services.AuthConfig{
		JWTSecret: "test-secret",
		JWTIssuer: "asset-console",
		JWTExpiry: 24 * time.Hour,
	}, suite.connector, suite.sessions)
}

func (suite *AuthServiceTestSuite) TestLogin_TokenNeverOutlivesBackendToken() {
	backendExpiry := time.Now().Add(30 * time.Minute).Truncate(time.Second)
	suite.connector.On("Login", mock.Anything, "ops@example.com", "secret").
		Return(&domain.BackendCredentials{AccessToken: "backend", Email: "ops@example.com", ExpiresAt: backendExpiry}, nil).Once()

	resp, err := suite.service.Login(context.Background(), dto.LoginRequest{Email: "  Ops@Example.com ", Password: "secret"})
	suite.Require().NoError(err)
	suite.Equal("Bearer", resp.TokenType)
	suite.True(resp.ExpiresAt.Equal(backendExpiry))

	claims, err := utils.ParseAndValidateJWT(resp.AccessToken, "test-secret")
	suite.Require().NoError(err)
	suite.Equal("asset-console", claims.Issuer)
	suite.True(suite.service.SessionActive(claims.Subject))
	suite.Equal(backendExpiry.Unix(), claims.ExpiresAt.Unix())
}

func (suite *AuthServiceTestSuite) TestLogin_BackendRejects() {
	suite.connector.On("Login", mock.Anything, "ops@example.com", "wrong").
		Return(nil, apperrors.ErrUnauthorized).Once()

	_, err := suite.service.Login(context.Background(), dto.LoginRequest{Email: "ops@example.com", Password: "wrong"})
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *AuthServiceTestSuite) TestLogout_ClosesSession() {
	suite.connector.On("Login", mock.Anything, "ops@example.com", "secret").
		Return(&domain.BackendCredentials{AccessToken: "backend", ExpiresAt: time.Now().Add(time.Hour)}, nil).Once()
	resp, err := suite.service.Login(context.Background(), dto.LoginRequest{Email: "ops@example.com", Password: "secret"})
	suite.Require().NoError(err)
	claims, err := utils.ParseAndValidateJWT(resp.AccessToken, "test-secret")
	suite.Require().NoError(err)

	suite.Require().NoError(suite.service.Logout(context.Background(), claims.Subject))
	suite.False(suite.service.SessionActive(claims.Subject))
	suite.ErrorIs(suite.service.Logout(context.Background(), ""), apperrors.ErrUnauthorized)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
