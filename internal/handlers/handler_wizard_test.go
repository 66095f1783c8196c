package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/JuanseMastrangelo/asset-movements-console/internal/apperrors"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/core/domain"
	portssvc "github.com/JuanseMastrangelo/asset-movements-console/internal/core/ports/services"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/dto"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/platform/config"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/utils/validation"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const testSessionID = "session-1"

type WizardHandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	authService   *MockAuthService
	refService    *MockReferenceService
	wizardService *MockWizardService
	jwtSecret     string
	token         string
}

func (suite *WizardHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.jwtSecret = "test-secret"
	suite.authService = new(MockAuthService)
	suite.refService = new(MockReferenceService)
	suite.wizardService = new(MockWizardService)

	cfg := &config.Config{
		JWTSecret:          suite.jwtSecret,
		FrontendBaseURL:    "http://localhost:5173",
		MaxUploadFiles:     5,
		MaxUploadFileBytes: 64 << 10,
		IsProduction:       true,
	}
	suite.router = gin.New()
	RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Auth:      suite.authService,
		Reference: suite.refService,
		Wizard:    suite.wizardService,
	}, nil)

	suite.token = suite.generateTestToken(testSessionID)
}

func (suite *WizardHandlerTestSuite) generateTestToken(sessionID string) string {
	claims := jwt.RegisteredClaims{
		Subject:   sessionID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	suite.Require().NoError(err)
	return signed
}

func (suite *WizardHandlerTestSuite) activeSession() {
	suite.authService.On("SessionActive", testSessionID).Return(true)
}

func (suite *WizardHandlerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+suite.token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *WizardHandlerTestSuite) decodeError(w *httptest.ResponseRecorder) ErrorResponse {
	var resp ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func (suite *WizardHandlerTestSuite) TestMissingToken() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/wizards/w1", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.wizardService.AssertNotCalled(suite.T(), "GetWizard", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WizardHandlerTestSuite) TestInactiveSession() {
	suite.authService.On("SessionActive", testSessionID).Return(false)

	w := suite.do(http.MethodGet, "/api/v1/wizards/w1", nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.wizardService.AssertNotCalled(suite.T(), "GetWizard", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WizardHandlerTestSuite) TestStartWizard_EmptyBody() {
	suite.activeSession()
	suite.wizardService.On("StartWizard", mock.Anything, testSessionID, dto.StartWizardRequest{}).
		Return(&dto.WizardView{WizardID: "w1", CurrentStep: domain.StepClient, Progress: dto.BuildProgress(domain.StepClient)}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/wizards", nil)

	suite.Equal(http.StatusCreated, w.Code)
	var view dto.WizardView
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &view))
	suite.Equal("w1", view.WizardID)
	suite.Equal(domain.StepClient, view.CurrentStep)
	suite.wizardService.AssertExpectations(suite.T())
}

func (suite *WizardHandlerTestSuite) TestStartWizard_Resume() {
	suite.activeSession()
	suite.wizardService.On("StartWizard", mock.Anything, testSessionID, dto.StartWizardRequest{TransactionID: "tx-9"}).
		Return(&dto.WizardView{WizardID: "w2", CurrentStep: domain.StepOperation}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/wizards", dto.StartWizardRequest{TransactionID: "tx-9"})

	suite.Equal(http.StatusCreated, w.Code)
	suite.wizardService.AssertExpectations(suite.T())
}

func (suite *WizardHandlerTestSuite) TestErrorStatusMapping() {
	suite.activeSession()
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"out of order", apperrors.ErrStepOutOfOrder, http.StatusConflict},
		{"in flight", apperrors.ErrActionInFlight, http.StatusConflict},
		{"closed", apperrors.ErrWizardClosed, http.StatusGone},
		{"not found", apperrors.NewNotFoundError("wizard w1"), http.StatusNotFound},
		{"business rule", apperrors.ErrBusinessRule, http.StatusUnprocessableEntity},
		{"network", apperrors.NewNetworkError(500, "backend answered 500"), http.StatusBadGateway},
		{"reference", apperrors.ErrReferenceUnavailable, http.StatusBadGateway},
		{"unauthorized", apperrors.ErrUnauthorized, http.StatusUnauthorized},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		suite.Run(tc.name, func() {
			suite.wizardService.On("CompleteClientStep", mock.Anything, testSessionID, "w1").Return(nil, tc.err).Once()

			w := suite.do(http.MethodPost, "/api/v1/wizards/w1/clients/complete", nil)

			suite.Equal(tc.status, w.Code)
			suite.NotEmpty(suite.decodeError(w).Error)
		})
	}
}

func (suite *WizardHandlerTestSuite) TestSubmitOperation_FieldErrors() {
	suite.activeSession()
	form := dto.OperationForm{IngressAssetID: "A", IngressAmount: decimal.NewFromInt(100)}
	suite.wizardService.On("SubmitOperation", mock.Anything, testSessionID, "w1", mock.MatchedBy(func(f dto.OperationForm) bool {
		return f.IngressAssetID == "A" && f.IngressAmount.Equal(decimal.NewFromInt(100))
	})).Return(nil, validation.NewFieldError(map[string]string{"egressAssetId": "is required"})).Once()

	w := suite.do(http.MethodPost, "/api/v1/wizards/w1/operation", form)

	suite.Equal(http.StatusBadRequest, w.Code)
	resp := suite.decodeError(w)
	suite.Equal("is required", resp.Fields["egressAssetId"])
	suite.wizardService.AssertExpectations(suite.T())
}

func (suite *WizardHandlerTestSuite) TestLinkLogistics_InvalidPhoneNeverReachesService() {
	suite.activeSession()
	req := dto.LinkLogisticsRequest{
		Address:            "742 Evergreen Terrace",
		DestinationAddress: "1600 Pennsylvania Avenue",
		ContactName:        "Jane Doe",
		ContactPhone:       "12-34",
		PaymentOption:      domain.PaidByClient,
		LogisticServiceID:  "std",
	}

	w := suite.do(http.MethodPost, "/api/v1/wizards/w1/logistics/link", req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(suite.decodeError(w).Fields, "contactPhone")
	suite.wizardService.AssertNotCalled(suite.T(), "LinkLogistics", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WizardHandlerTestSuite) multipartValues(files int) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	suite.Require().NoError(mw.WriteField("currencyAmount", "100"))
	suite.Require().NoError(mw.WriteField("exchangeRate", "1.5"))
	suite.Require().NoError(mw.WriteField("totalAmount", "150"))
	suite.Require().NoError(mw.WriteField("notes", "cash pickup"))
	for i := 0; i < files; i++ {
		fw, err := mw.CreateFormFile("files", "receipt.pdf")
		suite.Require().NoError(err)
		_, err = fw.Write([]byte("%PDF-1.4 receipt"))
		suite.Require().NoError(err)
	}
	suite.Require().NoError(mw.Close())
	return &buf, mw.FormDataContentType()
}

func (suite *WizardHandlerTestSuite) TestSubmitValues_TooManyFiles() {
	suite.activeSession()
	body, contentType := suite.multipartValues(6)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/wizards/w1/values", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+suite.token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(suite.decodeError(w).Fields, "files")
	suite.wizardService.AssertNotCalled(suite.T(), "SubmitValues", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WizardHandlerTestSuite) TestSubmitValues_ParsesFormAndFiles() {
	suite.activeSession()
	body, contentType := suite.multipartValues(1)
	suite.wizardService.On("SubmitValues", mock.Anything, testSessionID, "w1",
		mock.MatchedBy(func(f dto.ValuesForm) bool {
			return f.CurrencyAmount.Equal(decimal.NewFromInt(100)) &&
				f.ExchangeRate.Equal(decimal.RequireFromString("1.5")) &&
				f.TotalAmount.Equal(decimal.NewFromInt(150)) &&
				f.Notes == "cash pickup"
		}),
		mock.MatchedBy(func(docs []domain.Document) bool {
			return len(docs) == 1 && docs[0].Name == "receipt.pdf" && string(docs[0].Content) == "%PDF-1.4 receipt"
		}),
	).Return(&dto.WizardView{WizardID: "w1", CurrentStep: domain.StepLogistics}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/wizards/w1/values", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+suite.token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.wizardService.AssertExpectations(suite.T())
}

func (suite *WizardHandlerTestSuite) TestSubmitValues_BodyOverLimit() {
	suite.activeSession()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	suite.Require().NoError(mw.WriteField("currencyAmount", "100"))
	fw, err := mw.CreateFormFile("files", "scan.pdf")
	suite.Require().NoError(err)
	_, err = fw.Write(append([]byte("%PDF-1.4 "), bytes.Repeat([]byte("x"), 2<<20)...))
	suite.Require().NoError(err)
	suite.Require().NoError(mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/wizards/w1/values", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+suite.token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusRequestEntityTooLarge, w.Code)
	suite.Contains(suite.decodeError(w).Fields, "files")
	suite.wizardService.AssertNotCalled(suite.T(), "SubmitValues", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WizardHandlerTestSuite) TestSubmitValues_BadNumber() {
	suite.activeSession()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	suite.Require().NoError(mw.WriteField("currencyAmount", "ten"))
	suite.Require().NoError(mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/wizards/w1/values", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+suite.token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("must be a number", suite.decodeError(w).Fields["currencyAmount"])
}

func (suite *WizardHandlerTestSuite) TestSendClientReport_Accepted() {
	suite.activeSession()
	suite.wizardService.On("SendClientReport", mock.Anything, testSessionID, "w1", "c1").Return(nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/wizards/w1/clients/c1/report", nil)

	suite.Equal(http.StatusAccepted, w.Code)
	suite.wizardService.AssertExpectations(suite.T())
}

func (suite *WizardHandlerTestSuite) TestLogisticsSummary_Download() {
	suite.activeSession()
	suite.wizardService.On("LogisticsSummary", mock.Anything, testSessionID, "w1").
		Return("Total: 12.5 km x 1.50 = 28.75\n", nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/wizards/w1/logistics/summary", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(`attachment; filename="logistics-w1.txt"`, w.Header().Get("Content-Disposition"))
	suite.Contains(w.Header().Get("Content-Type"), "text/plain")
	suite.Contains(w.Body.String(), "28.75")
}

func (suite *WizardHandlerTestSuite) TestUpdateLogisticsStatus() {
	suite.activeSession()
	suite.wizardService.On("UpdateLogisticsStatus", mock.Anything, testSessionID, "w1", domain.LogisticInProgress).
		Return(&dto.LogisticsView{}, nil).Once()

	w := suite.do(http.MethodPatch, "/api/v1/wizards/w1/logistics/status", dto.UpdateLogisticsStatusRequest{Status: domain.LogisticInProgress})

	suite.Equal(http.StatusOK, w.Code)
	suite.wizardService.AssertExpectations(suite.T())
}

func (suite *WizardHandlerTestSuite) TestDiscardWizard() {
	suite.activeSession()
	suite.wizardService.On("DiscardWizard", mock.Anything, testSessionID, "w1").Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/wizards/w1", nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.wizardService.AssertExpectations(suite.T())
}

func (suite *WizardHandlerTestSuite) TestListAssets() {
	suite.activeSession()
	suite.refService.On("ListAssets", mock.Anything, testSessionID).
		Return([]domain.Asset{{ID: "A", Name: "USD cash"}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/reference/assets", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "USD cash")
}

func (suite *WizardHandlerTestSuite) TestLogin() {
	suite.authService.On("Login", mock.Anything, dto.LoginRequest{Email: "ops@example.com", Password: "secret"}).
		Return(&dto.LoginResponse{AccessToken: "jwt", TokenType: "Bearer"}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		bytes.NewBufferString(`{"email":"ops@example.com","password":"secret"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.LoginResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("jwt", resp.AccessToken)
}

func (suite *WizardHandlerTestSuite) TestLogin_Rejected() {
	suite.authService.On("Login", mock.Anything, mock.Anything).Return(nil, apperrors.ErrUnauthorized).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		bytes.NewBufferString(`{"email":"ops@example.com","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal("Invalid email or password", suite.decodeError(w).Error)
}

func (suite *WizardHandlerTestSuite) TestLogout() {
	suite.activeSession()
	suite.authService.On("Logout", mock.Anything, testSessionID).Return(nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/logout", nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.authService.AssertExpectations(suite.T())
}

func TestWizardHandler(t *testing.T) {
	suite.Run(t, new(WizardHandlerTestSuite))
}
