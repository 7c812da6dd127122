package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/kyc-co/synthforms/internal/generators"
	"github.com/kyc-co/synthforms/internal/logging"
	"github.com/kyc-co/synthforms/internal/models"
	"github.com/kyc-co/synthforms/internal/observability"
	"github.com/kyc-co/synthforms/internal/services"
)

// FormGenerator is the generation API the handlers depend on. *services.FormService
// implements it.
type FormGenerator interface {
	Generate(ctx context.Context, docType models.DocumentType, seed int64) (models.Form, error)
	GenerateBatch(ctx context.Context, docType models.DocumentType, count int, seed int64) (*services.Batch, error)
	GenerateField(ctx context.Context, name string, seed int64, p generators.FieldParams) (*services.FieldValue, error)
}

// FormHandlers serves synthetic forms over HTTP.
type FormHandlers struct {
	generator FormGenerator
	store     services.Sink
	publisher services.Sink
	logger    *logging.SafeLogger
}

// NewFormHandlers creates form handlers. store and publisher may be nil, in which case
// batch requests asking for them are rejected.
func NewFormHandlers(generator FormGenerator, store, publisher services.Sink, logger *logging.SafeLogger) *FormHandlers {
	if logger == nil {
		logger = observability.Logger()
	}
	return &FormHandlers{
		generator: generator,
		store:     store,
		publisher: publisher,
		logger:    logger,
	}
}

var errSinkUnavailable = errors.New("sink is not configured")

// GetEmployeeForm godoc
// @Summary Generate an employee-knowledge form
// @Description Builds a synthetic "formulario de conocimiento de empleados". The same seed returns the same form on the same day.
// @Tags forms
// @Produce json
// @Param seed query int false "Seed; omitted or 0 draws a random one"
// @Success 200 {object} models.EmployeeForm
// @Failure 400 {object} ErrorResponse "Invalid seed"
// @Failure 500 {object} ErrorResponse
// @Router /forms/employee [get]
func (h *FormHandlers) GetEmployeeForm(c *gin.Context) {
	h.serveForm(c, models.DocumentTypeEmployeeKnowledge, false)
}

// GetCounterpartyForm godoc
// @Summary Generate a counterparty-knowledge form
// @Description Builds a synthetic SAGRILAFT counterparty form for a natural person or a company.
// @Tags forms
// @Produce json
// @Param seed query int false "Seed; omitted or 0 draws a random one"
// @Param legacy query bool false "Return the flat projection with explicit nulls"
// @Success 200 {object} models.CounterpartyForm
// @Failure 400 {object} ErrorResponse "Invalid parameters"
// @Failure 500 {object} ErrorResponse
// @Router /forms/counterparty [get]
func (h *FormHandlers) GetCounterpartyForm(c *gin.Context) {
	legacy, err := queryBool(c, "legacy", false)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	h.serveForm(c, models.DocumentTypeCounterpartyKnowledge, legacy)
}

func (h *FormHandlers) serveForm(c *gin.Context, docType models.DocumentType, legacy bool) {
	ctx, span := otel.Tracer(observability.TracerName).Start(c.Request.Context(), "GetForm")
	defer span.End()

	seed, err := querySeed(c)
	if err != nil {
		abortWithError(c, err)
		return
	}
	span.SetAttributes(
		attribute.String("form.document_type", string(docType)),
		attribute.Int64("form.seed", seed),
	)

	form, err := h.generator.Generate(ctx, docType, seed)
	if err != nil {
		span.RecordError(err)
		h.logger.Error("failed to generate form", zap.String("document_type", string(docType)), zap.Error(err))
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, services.Payload(form, legacy))
}

// PostBatch godoc
// @Summary Generate a batch of forms
// @Description Builds count forms from one base seed, optionally storing them in MongoDB and publishing them to RabbitMQ.
// @Tags forms
// @Produce json
// @Param type path string true "Form type" Enums(employee, counterparty)
// @Param count query int false "Number of forms (default 1)"
// @Param seed query int false "Base seed; omitted or 0 draws a random one"
// @Param persist query bool false "Store the batch in MongoDB"
// @Param publish query bool false "Publish the batch to RabbitMQ"
// @Param legacy query bool false "Use the flat counterparty projection"
// @Success 201 {object} BatchResponse
// @Failure 400 {object} ErrorResponse "Invalid parameters"
// @Failure 500 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse "Requested sink is not configured"
// @Router /forms/{type}/batch [post]
func (h *FormHandlers) PostBatch(c *gin.Context) {
	ctx, span := otel.Tracer(observability.TracerName).Start(c.Request.Context(), "PostBatch")
	defer span.End()

	docType, err := models.ParseDocumentType(c.Param("type"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	seed, err := querySeed(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	count, err := queryInt(c, "count", 1)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	var persist, publish, legacy bool
	for name, dst := range map[string]*bool{"persist": &persist, "publish": &publish, "legacy": &legacy} {
		if *dst, err = queryBool(c, name, false); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
	}
	if (persist && h.store == nil) || (publish && h.publisher == nil) {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: errSinkUnavailable.Error()})
		return
	}

	batch, err := h.generator.GenerateBatch(ctx, docType, count, seed)
	if err != nil {
		span.RecordError(err)
		h.logger.Error("failed to generate batch", zap.String("document_type", string(docType)), zap.Int("count", count), zap.Error(err))
		abortWithError(c, err)
		return
	}
	span.SetAttributes(attribute.Int64("form.seed", batch.Seed), attribute.Int("form.count", count))

	if persist {
		if err := h.store.Write(ctx, batch.Forms); err != nil {
			span.RecordError(err)
			h.logger.Error("failed to store batch", zap.Int64("seed", batch.Seed), zap.Error(err))
			abortWithError(c, err)
			return
		}
	}
	if publish {
		if err := h.publisher.Write(ctx, batch.Forms); err != nil {
			span.RecordError(err)
			h.logger.Error("failed to publish batch", zap.Int64("seed", batch.Seed), zap.Error(err))
			abortWithError(c, err)
			return
		}
	}

	resp := BatchResponse{
		Seed:      batch.Seed,
		Count:     len(batch.Forms),
		Persisted: persist,
		Published: publish,
		Forms:     make([]any, 0, len(batch.Forms)),
	}
	for _, form := range batch.Forms {
		resp.Forms = append(resp.Forms, services.Payload(form, legacy))
	}
	c.JSON(http.StatusCreated, resp)
}

// GetField godoc
// @Summary Generate a single field
// @Description Generates one named field. An unsupported id_type yields the "NaN" sentinel with a warning instead of an error.
// @Tags fields
// @Produce json
// @Param field path string true "Field name, e.g. id_number, birthdate, phone"
// @Param seed query int false "Seed; omitted or 0 draws a random one"
// @Param id_type query string false "Id type for id_number (CC, CE, NIT, PA)"
// @Param colombian query bool false "Colombian phone number (default true)"
// @Param min_age query int false "Minimum age for birthdate"
// @Param max_age query int false "Maximum age for birthdate"
// @Param birthdate query string false "Birthdate (YYYY-MM-DD) for dependent dates"
// @Param start_date query string false "Contract start date (YYYY-MM-DD) for contract_end_date"
// @Success 200 {object} services.FieldValue
// @Failure 400 {object} ErrorResponse "Unknown field or invalid parameters"
// @Failure 500 {object} ErrorResponse
// @Router /fields/{field} [get]
func (h *FormHandlers) GetField(c *gin.Context) {
	ctx, span := otel.Tracer(observability.TracerName).Start(c.Request.Context(), "GetField")
	defer span.End()

	name := c.Param("field")
	seed, err := querySeed(c)
	if err != nil {
		abortWithError(c, err)
		return
	}
	params, err := fieldParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	value, err := h.generator.GenerateField(ctx, name, seed, params)
	if err != nil {
		span.RecordError(err)
		abortWithError(c, err)
		return
	}

	if value.Warning != "" {
		h.logger.Warn("field fell back to the not-available sentinel",
			zap.String("field", name),
			zap.String("id_type", string(params.IDType)),
			zap.String("warning", value.Warning),
		)
	} else if s, ok := value.Value.(string); ok && name == "id_number" {
		h.logger.Debug("generated id number", zap.String("id_number", observability.MaskID(s)))
	}

	c.JSON(http.StatusOK, value)
}
