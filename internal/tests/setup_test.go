// internal/tests/setup_test.go
package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/javajoker/petpalooza-backend/internal/config"
	"github.com/javajoker/petpalooza-backend/internal/database"
	"github.com/javajoker/petpalooza-backend/internal/i18n"
	"github.com/javajoker/petpalooza-backend/internal/models"
	"github.com/javajoker/petpalooza-backend/internal/router"
	"github.com/javajoker/petpalooza-backend/internal/utils"
)

const testSecret = "api-test-secret"

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
	Meta json.RawMessage `json:"meta"`
}

// testServer is a full router backed by a private in-memory database.
type testServer struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, i18n.Initialize("en"))
	utils.SetJWTSecret(testSecret)

	cfg := &config.Config{
		Environment: "test",
		Database:    config.DatabaseConfig{Driver: "sqlite", SQLitePath: ":memory:", LogLevel: "silent"},
		JWT:         config.JWTConfig{SecretKey: testSecret, AccessTokenTTL: 1, RefreshTokenTTL: 24},
		Media:       config.MediaConfig{URLPrefix: "/media/"},
		Payment:     config.PaymentConfig{Currency: "inr"},
		I18n:        config.I18nConfig{DefaultLocale: "en"},
		RateLimit:   config.RateLimitConfig{RequestsPerSecond: 1000, Burst: 1000, AuthPerMinute: 1000, AuthBurst: 1000},
		CORS:        config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		Shop:        config.ShopConfig{PetPageSize: 12, DefaultPetType: "dog"},
	}

	db, err := database.Initialize(cfg.Database)
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))

	ctx, cancel := context.WithCancel(context.Background())
	r, err := router.Initialize(ctx, db, cfg)
	require.NoError(t, err)

	t.Cleanup(func() {
		cancel()
		database.Close(db)
	})
	return &testServer{t: t, db: db, router: r}
}

// do sends a JSON request; header pairs are name, value.
func (s *testServer) do(method, path string, body interface{}, header ...string) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func (s *testServer) createUser(email string, staff bool) (*models.User, string) {
	s.t.Helper()
	user := &models.User{Username: email, Email: email, IsStaff: staff, IsActive: true}
	require.NoError(s.t, user.SetPassword("password123"))
	require.NoError(s.t, s.db.Create(user).Error)

	token, err := utils.GenerateJWT(user.ID, user.Username, user.Email, user.IsStaff, 1)
	require.NoError(s.t, err)
	return user, "Bearer " + token
}

func (s *testServer) createProduct(title, price string) *models.Product {
	s.t.Helper()
	product := &models.Product{
		PetType:       models.PetTypeDog,
		Title:         title,
		Image:         "products/" + models.Slugify(title, 50) + ".jpg",
		Price:         decimal.RequireFromString(price),
		QuantityValue: decimal.NewFromInt(1),
		QuantityUnit:  models.UnitPieces,
		IsActive:      true,
	}
	require.NoError(s.t, s.db.Create(product).Error)
	return product
}

func decode(t *testing.T, raw json.RawMessage, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, out), string(raw))
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}
