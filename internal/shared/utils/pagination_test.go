package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePagination(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{name: "defaults applied", page: 0, pageSize: 0, wantPage: 1, wantPageSize: 20},
		{name: "negative values", page: -3, pageSize: -1, wantPage: 1, wantPageSize: 20},
		{name: "valid values kept", page: 3, pageSize: 50, wantPage: 3, wantPageSize: 50},
		{name: "page size capped", page: 1, pageSize: 500, wantPage: 1, wantPageSize: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ValidatePagination(tt.page, tt.pageSize)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantPageSize, p.PageSize)
		})
	}
}

func TestPagination_Offset(t *testing.T) {
	assert.Equal(t, 0, Pagination{Page: 1, PageSize: 20}.Offset())
	assert.Equal(t, 40, Pagination{Page: 3, PageSize: 20}.Offset())
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 20))
	assert.Equal(t, 1, TotalPages(20, 20))
	assert.Equal(t, 2, TotalPages(21, 20))
	assert.Equal(t, 0, TotalPages(10, 0))
}

func newQueryContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestParsePagination(t *testing.T) {
	c := newQueryContext(t, "page=2&page_size=10")
	p := ParsePagination(c)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 10, p.PageSize)

	c = newQueryContext(t, "page=abc&page_size=-1")
	p = ParsePagination(c)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PageSize)
}

func TestParseUintQuery(t *testing.T) {
	c := newQueryContext(t, "member_id=42")
	got, err := ParseUintQuery(c, "member_id")
	require.NoError(t, err)
	assert.Equal(t, uint(42), got)

	c = newQueryContext(t, "")
	got, err = ParseUintQuery(c, "member_id")
	require.NoError(t, err)
	assert.Equal(t, uint(0), got)

	c = newQueryContext(t, "member_id=abc")
	_, err = ParseUintQuery(c, "member_id")
	assert.Error(t, err)
}
