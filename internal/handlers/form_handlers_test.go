package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyc-co/synthforms/internal/catalog"
	"github.com/kyc-co/synthforms/internal/forms"
	"github.com/kyc-co/synthforms/internal/generators"
	"github.com/kyc-co/synthforms/internal/logging"
	"github.com/kyc-co/synthforms/internal/models"
	"github.com/kyc-co/synthforms/internal/services"
)

var fixedNow = time.Date(2024, time.June, 15, 10, 30, 0, 0, time.UTC)

type recordingSink struct {
	mu    sync.Mutex
	forms []models.Form
	err   error
}

func (s *recordingSink) Write(_ context.Context, forms []models.Form) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.forms = append(s.forms, forms...)
	return nil
}

type failingGenerator struct{ err error }

func (f failingGenerator) Generate(context.Context, models.DocumentType, int64) (models.Form, error) {
	return nil, f.err
}

func (f failingGenerator) GenerateBatch(context.Context, models.DocumentType, int, int64) (*services.Batch, error) {
	return nil, f.err
}

func (f failingGenerator) GenerateField(context.Context, string, int64, generators.FieldParams) (*services.FieldValue, error) {
	return nil, f.err
}

func newTestService() *services.FormService {
	cat, err := catalog.Default()
	if err != nil {
		panic(err)
	}
	builder := forms.NewBuilder(cat, forms.WithClock(func() time.Time { return fixedNow }))
	return services.NewFormService(builder, services.WithBatchLimits(25, 2))
}

func setupRouter(h *FormHandlers) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	v1 := router.Group("/v1")
	v1.GET("/forms/employee", h.GetEmployeeForm)
	v1.GET("/forms/counterparty", h.GetCounterpartyForm)
	v1.POST("/forms/:type/batch", h.PostBatch)
	v1.GET("/fields/:field", h.GetField)
	return router
}

func serve(router *gin.Engine, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m), w.Body.String())
	return m
}

func TestNewFormHandlers(t *testing.T) {
	h := NewFormHandlers(newTestService(), nil, nil, nil)

	assert.NotNil(t, h.generator)
	assert.NotNil(t, h.logger)
	assert.Nil(t, h.store)
	assert.Nil(t, h.publisher)
}

func TestGetEmployeeForm(t *testing.T) {
	router := setupRouter(NewFormHandlers(newTestService(), nil, nil, logging.Nop()))

	w := serve(router, http.MethodGet, "/v1/forms/employee?seed=42")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, string(models.DocumentTypeEmployeeKnowledge), body["sg_document_type"])
	assert.Equal(t, "42", body["seed"])
	assert.Contains(t, body, "laboral_information")

	again := serve(router, http.MethodGet, "/v1/forms/employee?seed=42")
	assert.JSONEq(t, w.Body.String(), again.Body.String())
}

func TestGetCounterpartyForm(t *testing.T) {
	router := setupRouter(NewFormHandlers(newTestService(), nil, nil, logging.Nop()))

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantKey    string
		missingKey string
	}{
		{
			name:       "typed",
			target:     "/v1/forms/counterparty?seed=7",
			wantStatus: http.StatusOK,
			wantKey:    "entity_kind",
		},
		{
			name:       "legacy",
			target:     "/v1/forms/counterparty?seed=7&legacy=true",
			wantStatus: http.StatusOK,
			wantKey:    "shareholders",
			missingKey: "entity_kind",
		},
		{
			name:       "random seed",
			target:     "/v1/forms/counterparty",
			wantStatus: http.StatusOK,
			wantKey:    "seed",
		},
		{
			name:       "invalid seed",
			target:     "/v1/forms/counterparty?seed=abc",
			wantStatus: http.StatusBadRequest,
			wantKey:    "error",
		},
		{
			name:       "invalid legacy flag",
			target:     "/v1/forms/counterparty?legacy=maybe",
			wantStatus: http.StatusBadRequest,
			wantKey:    "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(router, http.MethodGet, tt.target)
			assert.Equal(t, tt.wantStatus, w.Code)
			body := decode(t, w)
			assert.Contains(t, body, tt.wantKey)
			if tt.missingKey != "" {
				assert.NotContains(t, body, tt.missingKey)
			}
		})
	}
}

func TestGetForm_InternalErrorIsNotLeaked(t *testing.T) {
	router := setupRouter(NewFormHandlers(failingGenerator{err: errors.New("catalog exploded")}, nil, nil, logging.Nop()))

	w := serve(router, http.MethodGet, "/v1/forms/employee?seed=1")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", decode(t, w)["error"])
}

func TestPostBatch(t *testing.T) {
	store := &recordingSink{}
	publisher := &recordingSink{}
	router := setupRouter(NewFormHandlers(newTestService(), store, publisher, logging.Nop()))

	w := serve(router, http.MethodPost, "/v1/forms/counterparty/batch?count=5&seed=10&persist=true&publish=true")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Seed      string           `json:"seed"`
		Count     int              `json:"count"`
		Persisted bool             `json:"persisted"`
		Published bool             `json:"published"`
		Forms     []map[string]any `json:"forms"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "10", resp.Seed)
	assert.Equal(t, 5, resp.Count)
	assert.True(t, resp.Persisted)
	assert.True(t, resp.Published)
	assert.Len(t, resp.Forms, 5)
	assert.Len(t, store.forms, 5)
	assert.Len(t, publisher.forms, 5)

	for i, form := range resp.Forms {
		assert.Equal(t, store.forms[i].Header().ID, form["sg_id"])
	}
}

func TestPostBatch_Errors(t *testing.T) {
	tests := []struct {
		name       string
		store      services.Sink
		target     string
		wantStatus int
	}{
		{name: "unknown type", target: "/v1/forms/supplier/batch", wantStatus: http.StatusBadRequest},
		{name: "count over limit", target: "/v1/forms/employee/batch?count=26", wantStatus: http.StatusBadRequest},
		{name: "zero count", target: "/v1/forms/employee/batch?count=0", wantStatus: http.StatusBadRequest},
		{name: "non numeric count", target: "/v1/forms/employee/batch?count=ten", wantStatus: http.StatusBadRequest},
		{name: "invalid persist flag", target: "/v1/forms/employee/batch?persist=si", wantStatus: http.StatusBadRequest},
		{name: "store not configured", target: "/v1/forms/employee/batch?persist=true", wantStatus: http.StatusServiceUnavailable},
		{name: "publisher not configured", target: "/v1/forms/employee/batch?publish=true", wantStatus: http.StatusServiceUnavailable},
		{
			name:       "store failure",
			store:      &recordingSink{err: errors.New("write concern timeout")},
			target:     "/v1/forms/employee/batch?persist=true",
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupRouter(NewFormHandlers(newTestService(), tt.store, nil, logging.Nop()))
			w := serve(router, http.MethodPost, tt.target)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			assert.Contains(t, decode(t, w), "error")
		})
	}
}

func TestGetField(t *testing.T) {
	router := setupRouter(NewFormHandlers(newTestService(), nil, nil, logging.Nop()))

	tests := []struct {
		name        string
		target      string
		wantStatus  int
		wantValue   any
		wantWarning bool
	}{
		{name: "city", target: "/v1/fields/city?seed=3", wantStatus: http.StatusOK},
		{name: "nit", target: "/v1/fields/id_number?seed=3&id_type=NIT", wantStatus: http.StatusOK},
		{name: "birthdate with ages", target: "/v1/fields/birthdate?seed=3&min_age=30&max_age=40", wantStatus: http.StatusOK},
		{name: "contract end from start", target: "/v1/fields/contract_end_date?seed=3&start_date=2020-01-01", wantStatus: http.StatusOK},
		{
			name:        "unsupported id type",
			target:      "/v1/fields/id_number?seed=3&id_type=TI",
			wantStatus:  http.StatusOK,
			wantValue:   models.NotAvailable,
			wantWarning: true,
		},
		{name: "unknown field", target: "/v1/fields/shoe_size", wantStatus: http.StatusBadRequest},
		{name: "inverted age range", target: "/v1/fields/birthdate?min_age=50&max_age=20", wantStatus: http.StatusBadRequest},
		{name: "max age beyond limit", target: "/v1/fields/birthdate?max_age=400", wantStatus: http.StatusBadRequest},
		{name: "bad date", target: "/v1/fields/id_expedition_date?birthdate=15/06/1990", wantStatus: http.StatusBadRequest},
		{name: "bad bool", target: "/v1/fields/phone?colombian=nope", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(router, http.MethodGet, tt.target)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())

			body := decode(t, w)
			if tt.wantStatus != http.StatusOK {
				assert.Contains(t, body, "error")
				return
			}
			assert.NotEmpty(t, body["value"])
			if tt.wantValue != nil {
				assert.Equal(t, tt.wantValue, body["value"])
			}
			_, hasWarning := body["warning"]
			assert.Equal(t, tt.wantWarning, hasWarning)
		})
	}
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(models.ErrInvalidCount))
	assert.Equal(t, http.StatusBadRequest, statusFor(errors.Join(errors.New("ctx"), models.ErrUnknownField)))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("boom")))
}
