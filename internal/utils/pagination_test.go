// internal/utils/pagination_test.go
package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paramsFor(t *testing.T, query string) PaginationParams {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return GetPaginationParams(c)
}

func TestGetPaginationParamsDefaults(t *testing.T) {
	params := paramsFor(t, "")
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 6, params.Limit)
	assert.Equal(t, "updated_at", params.Sort)
	assert.Equal(t, "desc", params.Order)
}

func TestGetPaginationParamsOrdering(t *testing.T) {
	params := paramsFor(t, "ordering=min_price")
	assert.Equal(t, "min_price", params.Sort)
	assert.Equal(t, "asc", params.Order)

	params = paramsFor(t, "ordering=-min_price")
	assert.Equal(t, "min_price", params.Sort)
	assert.Equal(t, "desc", params.Order)
}

func TestGetPaginationParamsBounds(t *testing.T) {
	params := paramsFor(t, "page=0&page_size=500")
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 6, params.Limit)

	params = paramsFor(t, "page=3&page_size=20&order=sideways")
	assert.Equal(t, 3, params.Page)
	assert.Equal(t, 20, params.Limit)
	assert.Equal(t, "desc", params.Order)
}

func TestCreatePaginationResult(t *testing.T) {
	result := CreatePaginationResult([]string{"a"}, 13, PaginationParams{Page: 2, Limit: 6})
	assert.Equal(t, 2, result.Page)
	assert.Equal(t, int64(13), result.Total)
	assert.Equal(t, 3, result.TotalPages)
}
