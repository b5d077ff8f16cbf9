// internal/middleware/logging_test.go
package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/petpalooza-backend/internal/config"
	"github.com/javajoker/petpalooza-backend/internal/database"
	"github.com/javajoker/petpalooza-backend/internal/models"
)

func TestExtractResourceType(t *testing.T) {
	cases := map[string]string{
		"/api/admin/orders/4/status/": "orders",
		"/api/admin/products":         "products",
		"/api/admin/":                 "admin",
		"/api/cart/add/":              "add",
		"/api/":                       "unknown",
	}
	for path, want := range cases {
		assert.Equal(t, want, extractResourceType(path), path)
	}
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "client-supplied")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "client-supplied", w.Header().Get(RequestIDHeader))
}

func TestAuditLogMiddleware(t *testing.T) {
	db, err := database.Initialize(config.DatabaseConfig{Driver: "sqlite", SQLitePath: ":memory:", LogLevel: "silent"})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))
	defer database.Close(db)

	staff := models.User{Username: "admin", Email: "admin@example.com", PasswordHash: "x", IsStaff: true, IsActive: true}
	require.NoError(t, db.Create(&staff).Error)

	r := gin.New()
	admin := r.Group("/api/admin")
	admin.Use(func(c *gin.Context) {
		c.Set("user_id", staff.ID)
		c.Next()
	}, AuditLogMiddleware(db))
	admin.PATCH("/users/:id/", func(c *gin.Context) {
		body, _ := io.ReadAll(c.Request.Body)
		c.String(http.StatusOK, string(body))
	})
	admin.GET("/users/", func(c *gin.Context) { c.Status(http.StatusOK) })

	payload := `{"is_staff":true,"new_password":"hunter22"}`
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/api/admin/users/12/", bytes.NewBufferString(payload)))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, payload, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/users/", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var logs []models.AuditLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)

	entry := logs[0]
	assert.Equal(t, "PATCH /api/admin/users/:id/", entry.Action)
	assert.Equal(t, "users", entry.ResourceType)
	assert.Equal(t, "12", entry.ResourceID)
	assert.Equal(t, http.StatusOK, entry.StatusCode)
	require.NotNil(t, entry.UserID)
	assert.Equal(t, staff.ID, *entry.UserID)
	assert.Equal(t, true, entry.NewValues["is_staff"])
	assert.Equal(t, "***", entry.NewValues["new_password"])
}
