package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJSONContext(t *testing.T, body string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func TestRenewSubscriptionRequest_PackageIDOptional(t *testing.T) {
	// Omitting package_id renews on the current package; binding must not
	// reject it.
	c := newJSONContext(t, `{"auto_renew": true}`)

	var req RenewSubscriptionRequest
	require.NoError(t, c.ShouldBindJSON(&req))
	assert.Zero(t, req.PackageID)
	assert.True(t, req.AutoRenew)
}

func TestUpgradeSubscriptionRequest_AcceptsCouponCode(t *testing.T) {
	c := newJSONContext(t, `{"package_id": 3, "coupon_code": "upgrade50"}`)

	var req UpgradeSubscriptionRequest
	require.NoError(t, c.ShouldBindJSON(&req))
	require.NotNil(t, req.CouponCode)
	assert.Equal(t, "upgrade50", *req.CouponCode)
}
