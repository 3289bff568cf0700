package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordMutation(t *testing.T) {
	before := testutil.ToFloat64(mutations.WithLabelValues("debt", "error"))
	RecordMutation("debt", errors.New("boom"))
	RecordMutation("debt", nil)
	assert.Equal(t, before+1, testutil.ToFloat64(mutations.WithLabelValues("debt", "error")))
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(Handler()))

	RecordPoints("emotional", 15)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, float64(1), testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/ping", "200")))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, "shammah_http_requests_total"))
	assert.True(t, strings.Contains(body, `shammah_rewards_points_awarded_total{category="emotional"}`))
}
