package backendapi_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/JuanseMastrangelo/asset-movements-console/internal/adapters/backendapi"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/apperrors"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/core/domain"
	portsrepo "github.com/JuanseMastrangelo/asset-movements-console/internal/core/ports/repositories"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type BackendClientTestSuite struct {
	suite.Suite
	mux    *http.ServeMux
	server *httptest.Server
	cfg    backendapi.Config
}

func (s *BackendClientTestSuite) SetupTest() {
	s.mux = http.NewServeMux()
	s.server = httptest.NewServer(s.mux)
	s.cfg = backendapi.Config{BaseURL: s.server.URL, Timeout: 2 * time.Second}
}

func (s *BackendClientTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *BackendClientTestSuite) newClient(hook func()) *backendapi.Client {
	session := backendapi.NewSession("backend-token", time.Now().Add(time.Hour), hook)
	client, err := backendapi.NewClient(s.cfg, session)
	s.Require().NoError(err)
	return client
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (s *BackendClientTestSuite) TestListAssets_SendsBearerToken() {
	s.mux.HandleFunc("GET /assets", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer backend-token" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "missing token"})
			return
		}
		writeJSON(w, http.StatusOK, []domain.Asset{{ID: "a1", Name: "USD", Type: domain.AssetPhysical, IsActive: true}})
	})

	assets, err := s.newClient(nil).ListAssets(context.Background())

	s.Require().NoError(err)
	s.Require().Len(assets, 1)
	s.Equal("USD", assets[0].Name)
}

func (s *BackendClientTestSuite) TestUnauthorized_InvalidatesSessionOnce() {
	s.mux.HandleFunc("GET /clients", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "token expired"})
	})
	var calls int32
	client := s.newClient(func() { atomic.AddInt32(&calls, 1) })

	_, err := client.ListClients(context.Background())
	s.ErrorIs(err, apperrors.ErrUnauthorized)

	_, err = client.ListClients(context.Background())
	s.ErrorIs(err, apperrors.ErrUnauthorized)
	s.Equal(int32(1), atomic.LoadInt32(&calls))
}

func (s *BackendClientTestSuite) TestStatusMapping() {
	s.mux.HandleFunc("GET /transactions/{id}", func(w http.ResponseWriter, r *http.Request) {
		switch r.PathValue("id") {
		case "missing":
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "transaction not found"})
		case "bad":
			writeJSON(w, http.StatusBadRequest, map[string][]string{"message": {"amount must be positive", "notes too long"}})
		default:
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "boom"})
		}
	})
	client := s.newClient(nil)

	_, err := client.GetTransaction(context.Background(), "missing")
	s.ErrorIs(err, apperrors.ErrNotFound)

	_, err = client.GetTransaction(context.Background(), "bad")
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Contains(err.Error(), "amount must be positive; notes too long")

	_, err = client.GetTransaction(context.Background(), "other")
	s.ErrorIs(err, apperrors.ErrNetwork)
	var appErr *apperrors.AppError
	s.Require().ErrorAs(err, &appErr)
	s.Equal(http.StatusInternalServerError, appErr.Code)
}

func (s *BackendClientTestSuite) TestCreateTransaction_EncodesDetails() {
	var received portsrepo.CreateTransactionInput
	s.mux.HandleFunc("POST /transactions", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&received)
		writeJSON(w, http.StatusCreated, domain.Transaction{ID: "tx-1", ClientID: received.ClientID, State: domain.TransactionPending})
	})

	tx, err := s.newClient(nil).CreateTransaction(context.Background(), portsrepo.CreateTransactionInput{
		ClientID: "c1",
		Details: []portsrepo.DetailInput{
			{AssetID: "usd", MovementType: domain.Income, Amount: decimal.NewFromInt(100), Notes: "Income of USD"},
			{AssetID: "eur", MovementType: domain.Expense, Amount: decimal.NewFromInt(90), Notes: "Expense of EUR"},
		},
	})

	s.Require().NoError(err)
	s.Equal("tx-1", tx.ID)
	s.Require().Len(received.Details, 2)
	s.True(received.Details[0].Amount.Equal(decimal.NewFromInt(100)))
	s.Equal(domain.Expense, received.Details[1].MovementType)
}

func (s *BackendClientTestSuite) TestSaveValues_SendsMultipart() {
	type upload struct {
		fields map[string]string
		files  []string
	}
	got := make(chan upload, 1)
	s.mux.HandleFunc("POST /values", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
			return
		}
		u := upload{fields: map[string]string{}}
		for k, v := range r.MultipartForm.Value {
			u.fields[k] = v[0]
		}
		for _, fh := range r.MultipartForm.File["files"] {
			u.files = append(u.files, fh.Filename)
		}
		got <- u
		w.WriteHeader(http.StatusCreated)
	})

	err := s.newClient(nil).SaveValues(context.Background(), "tx-1", domain.Values{
		CurrencyAmount: decimal.NewFromInt(100),
		ExchangeRate:   decimal.RequireFromString("1.2"),
		TotalAmount:    decimal.NewFromInt(120),
		Notes:          "first lot",
	}, []domain.Document{
		{Name: "receipt.pdf", ContentType: "application/pdf", Content: []byte("%PDF-1.4 test")},
		{Name: `lot "7".png`, ContentType: "image/png", Content: []byte("\x89PNG\r\n\x1a\n")},
	})

	s.Require().NoError(err)
	u := <-got
	s.Equal("tx-1", u.fields["transactionId"])
	s.Equal("120", u.fields["totalAmount"])
	s.Equal("1.2", u.fields["exchangeRate"])
	s.Equal([]string{"receipt.pdf", `lot "7".png`}, u.files)
}

func (s *BackendClientTestSuite) TestUpdateLogisticsStatus() {
	s.mux.HandleFunc("PATCH /logistics/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req map[string]string
		_ = json.Unmarshal(body, &req)
		writeJSON(w, http.StatusOK, domain.LogisticData{ID: r.PathValue("id"), Status: domain.LogisticStatus(req["status"])})
	})

	data, err := s.newClient(nil).UpdateLogisticsStatus(context.Background(), "lg-1", domain.LogisticInProgress)

	s.Require().NoError(err)
	s.Equal("lg-1", data.ID)
	s.Equal(domain.LogisticInProgress, data.Status)
}

func (s *BackendClientTestSuite) TestGetTransactionLogistics_NoRecord() {
	s.mux.HandleFunc("GET /transactions/{id}/logistics", func(w http.ResponseWriter, r *http.Request) {
		switch r.PathValue("id") {
		case "tx-null":
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, "null")
		case "tx-empty":
			w.WriteHeader(http.StatusNoContent)
		case "tx-noid":
			writeJSON(w, http.StatusOK, map[string]string{"status": "PENDING"})
		default:
			writeJSON(w, http.StatusOK, domain.LogisticData{ID: "lg-1", Status: domain.LogisticPending})
		}
	})
	client := s.newClient(nil)

	for _, id := range []string{"tx-null", "tx-empty", "tx-noid"} {
		data, err := client.GetTransactionLogistics(context.Background(), id)
		s.Require().NoError(err, id)
		s.Nil(data, id)
	}

	data, err := client.GetTransactionLogistics(context.Background(), "tx-linked")
	s.Require().NoError(err)
	s.Require().NotNil(data)
	s.Equal("lg-1", data.ID)
}

func (s *BackendClientTestSuite) TestCancelledContextIsNotANetworkError() {
	s.mux.HandleFunc("GET /logistics/settings", func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.newClient(nil).ListLogisticSettings(ctx)

	s.ErrorIs(err, context.Canceled)
	s.NotErrorIs(err, apperrors.ErrNetwork)
}

func (s *BackendClientTestSuite) TestConnector_LoginAndConnect() {
	exp := time.Now().Add(30 * time.Minute).Truncate(time.Second)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "operator",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("backend-secret"))
	s.Require().NoError(err)

	s.mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "secret" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "invalid credentials"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"accessToken": token})
	})
	s.mux.HandleFunc("GET /transaction-rules", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []domain.TransactionRule{{SourceAssetID: "a", TargetAssetID: "b"}})
	})

	connector, err := backendapi.NewConnector(s.cfg, time.Hour)
	s.Require().NoError(err)

	_, err = connector.Login(context.Background(), "ops@example.com", "wrong")
	s.ErrorIs(err, apperrors.ErrUnauthorized)

	creds, err := connector.Login(context.Background(), "ops@example.com", "secret")
	s.Require().NoError(err)
	s.Equal(token, creds.AccessToken)
	s.True(creds.ExpiresAt.Equal(exp), fmt.Sprintf("expiry %s != %s", creds.ExpiresAt, exp))

	api, err := connector.Connect(*creds, nil)
	s.Require().NoError(err)
	rules, err := api.ListTransactionRules(context.Background())
	s.Require().NoError(err)
	s.Len(rules, 1)
}

func TestBackendClientTestSuite(t *testing.T) {
	suite.Run(t, new(BackendClientTestSuite))
}

func TestSession(t *testing.T) {
	t.Run("expired token is rejected", func(t *testing.T) {
		session := backendapi.NewSession("tok", time.Now().Add(-time.Minute), nil)
		_, err := session.Token()
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
		assert.False(t, session.Valid())
	})

	t.Run("invalidate fires hook once", func(t *testing.T) {
		var calls int
		session := backendapi.NewSession("tok", time.Time{}, func() { calls++ })
		require.True(t, session.Valid())
		session.Invalidate()
		session.Invalidate()
		assert.Equal(t, 1, calls)
		assert.False(t, session.Valid())
	})

	t.Run("rejects invalid base URL", func(t *testing.T) {
		_, err := backendapi.NewClient(backendapi.Config{BaseURL: "not a url"}, nil)
		assert.Error(t, err)
	})
}
