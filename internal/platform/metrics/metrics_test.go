package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAuthAttempt(t *testing.T) {
	before := testutil.ToFloat64(authAttempts.WithLabelValues(EventLogin, "false"))

	RecordAuthAttempt(EventLogin, false)
	RecordAuthAttempt(EventLogin, false)

	after := testutil.ToFloat64(authAttempts.WithLabelValues(EventLogin, "false"))
	assert.Equal(t, before+2, after)
}

func TestSetStoreUp(t *testing.T) {
	SetStoreUp(true)
	assert.Equal(t, float64(1), testutil.ToFloat64(storeUp))

	SetStoreUp(false)
	assert.Equal(t, float64(0), testutil.ToFloat64(storeUp))
}

func TestMiddleware_ObservesMatchedRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Middleware())
	r.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	before := testutil.CollectAndCount(httpRequestDuration)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/items/42", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, before+1, testutil.CollectAndCount(httpRequestDuration))
}

func TestHandler_ServesRegistry(t *testing.T) {
	gin.SetMode(gin.TestMode)
	SetStoreUp(true)

	r := gin.New()
	r.GET("/metrics", Handler())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "store_up 1")
}
