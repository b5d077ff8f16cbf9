// internal/utils/pagination_test.go
package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 12))
	assert.Equal(t, 1, TotalPages(12, 12))
	assert.Equal(t, 2, TotalPages(13, 12))
	assert.Equal(t, 0, TotalPages(10, 0))
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, ClampPage("", 30, 12))
	assert.Equal(t, 1, ClampPage("abc", 30, 12))
	assert.Equal(t, 1, ClampPage("-4", 30, 12))
	assert.Equal(t, 2, ClampPage("2", 30, 12))
	assert.Equal(t, 3, ClampPage("99", 30, 12))
	assert.Equal(t, 1, ClampPage("5", 0, 12))
}

func TestGetPaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?page=0&limit=500&order=sideways&search=leash", nil)
	params := GetPaginationParams(c)
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 20, params.Limit)
	assert.Equal(t, "desc", params.Order)
	assert.Equal(t, "created_at", params.Sort)
	assert.Equal(t, "leash", params.Search)

	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?page=3&limit=5&order=asc&sort=title", nil)
	params = GetPaginationParams(c)
	assert.Equal(t, 3, params.Page)
	assert.Equal(t, 5, params.Limit)
	assert.Equal(t, "asc", params.Order)
	assert.Equal(t, "title", params.Sort)

	result := CreatePaginationResult([]int{1, 2}, 11, params)
	assert.Equal(t, 3, result.TotalPages)
}
