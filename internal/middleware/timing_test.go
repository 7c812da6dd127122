package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kyc-co/synthforms/internal/logging"
	"github.com/kyc-co/synthforms/internal/observability"
)

func TestRequestTiming_LogLevelFollowsStatus(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	original := logging.Logger
	logging.Logger = logging.New(zap.New(core))
	defer func() { logging.Logger = original }()

	router := gin.New()
	router.Use(RequestID(), RequestTiming())
	router.GET("/status/:code", func(c *gin.Context) {
		code, _ := strconv.Atoi(c.Param("code"))
		c.Status(code)
	})

	for _, code := range []int{http.StatusOK, http.StatusBadRequest, http.StatusServiceUnavailable} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/status/"+strconv.Itoa(code), nil))
	}

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, "/status/:code", entries[2].ContextMap()["route"])
	assert.NotEmpty(t, entries[0].ContextMap()["request_id"])
}

func sampleCount(t *testing.T, route, method string, status int) uint64 {
	t.Helper()
	observer, err := observability.RequestDuration.GetMetricWithLabelValues(route, method, strconv.Itoa(status))
	require.NoError(t, err)
	var m dto.Metric
	require.NoError(t, observer.(prometheus.Histogram).Write(&m))
	return m.GetHistogram().GetSampleCount()
}

func TestRequestTiming_RecordsDurationByRouteAndStatus(t *testing.T) {
	tests := []struct {
		name   string
		target string
		status int
		route  string
	}{
		{name: "ok", target: "/v1/fields/city", status: http.StatusOK, route: "/v1/fields/:field"},
		{name: "bad request", target: "/v1/fields/shoe_size", status: http.StatusBadRequest, route: "/v1/fields/:field"},
		{name: "not found", target: "/nowhere", status: http.StatusNotFound, route: "unmatched"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(RequestTiming())
			router.GET("/v1/fields/:field", func(c *gin.Context) {
				c.Status(tt.status)
			})

			before := sampleCount(t, tt.route, http.MethodGet, tt.status)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.target, nil))
			assert.Equal(t, tt.status, w.Code)

			assert.Equal(t, before+1, sampleCount(t, tt.route, http.MethodGet, tt.status))
		})
	}
}

func TestRequestTiming_Span(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	original := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	defer otel.SetTracerProvider(original)

	router := gin.New()
	router.Use(RequestTiming())
	router.GET("/fail", func(c *gin.Context) {
		c.Status(http.StatusInternalServerError)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "http.request", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)

	var route string
	for _, kv := range spans[0].Attributes() {
		if kv.Key == "http.route" {
			route = kv.Value.AsString()
		}
	}
	assert.Equal(t, "/fail", route)
}
