package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"course_api/internal/config"
	"course_api/internal/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestIDGenerated(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	var seen string
	r.GET("/ping", func(c *gin.Context) {
		seen = GetRequestID(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.NotEmpty(t, seen)
	require.Equal(t, seen, w.Header().Get(HeaderRequestID))
}

func TestRequestIDPropagated(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, "abc-123", w.Header().Get(HeaderRequestID))
}

func TestZapRecovery(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), ZapLogger(zap.NewNop()), ZapRecovery(zap.NewNop()))
	r.GET("/boom", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.JSONEq(t, `{"code":"internal_error","message":"internal error"}`, w.Body.String())
}

func TestPrometheusLabelsByRoute(t *testing.T) {
	m := metrics.New(&config.Config{OTELServiceName: "svc"})
	r := gin.New()
	r.Use(Prometheus(m))
	r.GET("/courses/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	for _, path := range []string{"/courses/1", "/courses/2", "/nowhere"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	require.Equal(t, float64(2), testutil.ToFloat64(m.Requests.WithLabelValues("svc", http.MethodGet, "/courses/:id", "404")))
	require.Equal(t, float64(1), testutil.ToFloat64(m.Requests.WithLabelValues("svc", http.MethodGet, unmatchedPath, "404")))
	require.Equal(t, float64(0), testutil.ToFloat64(m.InFlight))
}
