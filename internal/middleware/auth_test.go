// internal/middleware/auth_test.go
package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/petpalooza-backend/internal/i18n"
	"github.com/javajoker/petpalooza-backend/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestBearerToken(t *testing.T) {
	token, ok := bearerToken("Bearer abc.def")
	assert.True(t, ok)
	assert.Equal(t, "abc.def", token)

	token, ok = bearerToken("bearer   abc.def ")
	assert.True(t, ok)
	assert.Equal(t, "abc.def", token)

	for _, header := range []string{"", "Bearer", "Bearer  ", "Basic abc", "abc.def"} {
		_, ok := bearerToken(header)
		assert.False(t, ok, header)
	}
}

func authRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(I18nMiddleware())
	handlers = append(handlers, func(c *gin.Context) {
		userID, ok := utils.GetUserIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "authenticated": ok, "staff": utils.IsStaffFromContext(c)})
	})
	r.GET("/", handlers...)
	return r
}

func serve(r http.Handler, header string) (*httptest.ResponseRecorder, map[string]interface{}) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestAuthRequired(t *testing.T) {
	require.NoError(t, i18n.Initialize("en"))
	r := authRouter(AuthRequired())

	w, body := serve(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Authentication required", body["error"].(map[string]interface{})["message"])

	w, body = serve(r, "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid or expired token", body["error"].(map[string]interface{})["message"])

	refresh, err := utils.GenerateRefreshToken(3, 1)
	require.NoError(t, err)
	w, _ = serve(r, "Bearer "+refresh)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := utils.GenerateJWT(3, "buddy", "buddy@example.com", false, 1)
	require.NoError(t, err)
	w, body = serve(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(3), body["user_id"])
}

func TestAdminRequired(t *testing.T) {
	require.NoError(t, i18n.Initialize("en"))
	r := authRouter(AuthRequired(), AdminRequired())

	customer, err := utils.GenerateJWT(3, "buddy", "buddy@example.com", false, 1)
	require.NoError(t, err)
	w, body := serve(r, "Bearer "+customer)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Staff access required", body["error"].(map[string]interface{})["message"])

	staff, err := utils.GenerateJWT(1, "admin", "admin@example.com", true, 1)
	require.NoError(t, err)
	w, body = serve(r, "Bearer "+staff)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["staff"])
}

func TestOptionalAuth(t *testing.T) {
	r := authRouter(OptionalAuth())

	w, body := serve(r, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["authenticated"])

	w, body = serve(r, "Bearer garbage")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["authenticated"])

	token, err := utils.GenerateJWT(5, "kit", "kit@example.com", false, 1)
	require.NoError(t, err)
	_, body = serve(r, "Bearer "+token)
	assert.Equal(t, true, body["authenticated"])
	assert.Equal(t, float64(5), body["user_id"])
}
