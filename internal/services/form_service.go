package services

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kyc-co/synthforms/internal/forms"
	"github.com/kyc-co/synthforms/internal/generators"
	"github.com/kyc-co/synthforms/internal/logging"
	"github.com/kyc-co/synthforms/internal/models"
	"github.com/kyc-co/synthforms/internal/observability"
	"github.com/kyc-co/synthforms/internal/utils"
)

const (
	defaultMaxBatchSize = 500
	defaultWorkers      = 4
)

// Batch is a set of forms generated from one base seed. Item i was built with
// generators.DeriveSeed(Seed, i).
type Batch struct {
	Seed  int64         `json:"seed,string"`
	Forms []models.Form `json:"forms"`
}

// FieldValue is a single generated field.
type FieldValue struct {
	Field   string `json:"field"`
	Value   any    `json:"value"`
	Seed    int64  `json:"seed,string"`
	Warning string `json:"warning,omitempty"`
}

// FormService generates forms on demand. It is safe for concurrent use.
type FormService struct {
	builder  *forms.Builder
	cache    *FormCache
	maxBatch int
	workers  int
	logger   *logging.SafeLogger
}

// ServiceOption configures a FormService.
type ServiceOption func(*FormService)

// WithCache serves repeated seeded requests from cache.
func WithCache(cache *FormCache) ServiceOption {
	return func(s *FormService) {
		s.cache = cache
	}
}

// WithBatchLimits caps the batch size and the number of forms built in parallel.
func WithBatchLimits(maxBatch, workers int) ServiceOption {
	return func(s *FormService) {
		if maxBatch > 0 {
			s.maxBatch = maxBatch
		}
		if workers > 0 {
			s.workers = workers
		}
	}
}

// WithServiceLogger sets the service logger.
func WithServiceLogger(logger *logging.SafeLogger) ServiceOption {
	return func(s *FormService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewFormService creates a form service over builder.
func NewFormService(builder *forms.Builder, opts ...ServiceOption) *FormService {
	s := &FormService{
		builder:  builder,
		maxBatch: defaultMaxBatchSize,
		workers:  defaultWorkers,
		logger:   logging.Logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MaxBatchSize is the largest count GenerateBatch accepts.
func (s *FormService) MaxBatchSize() int {
	return s.maxBatch
}

// Generate builds one form. A zero seed draws a fresh one; explicit seeds go through the
// cache when one is configured.
func (s *FormService) Generate(ctx context.Context, docType models.DocumentType, seed int64) (models.Form, error) {
	ctx, span, done := utils.TraceGeneration(ctx, string(docType), 1, seed)
	defer done()

	today := s.builder.Today()
	if seed != 0 {
		if form, ok := s.cache.Get(ctx, docType, seed, today); ok {
			utils.AddSpanAttribute(span, "form.cache_hit", true)
			return form, nil
		}
	}

	form, err := s.builder.Build(docType, seed)
	if err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		return nil, err
	}
	recordGenerated(form)

	if seed != 0 {
		s.cache.Set(ctx, form, today)
	}
	return form, nil
}

// GenerateBatch builds count forms in parallel. The result is reproducible from the
// returned base seed.
func (s *FormService) GenerateBatch(ctx context.Context, docType models.DocumentType, count int, seed int64) (*Batch, error) {
	if count < 1 || count > s.maxBatch {
		return nil, fmt.Errorf("%w: %d is outside [1, %d]", models.ErrInvalidCount, count, s.maxBatch)
	}
	if !slices.Contains(models.DocumentTypes(), docType) {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownFormType, docType)
	}

	base := seed
	if base == 0 {
		fresh, err := generators.NewSeed()
		if err != nil {
			return nil, err
		}
		base = fresh
	}

	ctx, span, done := utils.TraceGeneration(ctx, string(docType), count, base)
	defer done()

	results := make([]models.Form, count)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := range count {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			form, err := s.builder.Build(docType, generators.DeriveSeed(base, i))
			if err != nil {
				return fmt.Errorf("form %d of batch: %w", i, err)
			}
			results[i] = form
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		return nil, err
	}

	for _, form := range results {
		recordGenerated(form)
	}
	s.logger.Debug("generated batch",
		zap.String("document_type", string(docType)),
		zap.Int("count", count),
		zap.Int64("seed", base),
	)
	return &Batch{Seed: base, Forms: results}, nil
}

// GenerateField builds a single named field. An unsupported id type is not an error
// here: the value is the not-available sentinel and the reason goes into Warning.
func (s *FormService) GenerateField(ctx context.Context, name string, seed int64, p generators.FieldParams) (*FieldValue, error) {
	_, span, done := utils.TraceOperation(ctx, "forms.field", map[string]interface{}{
		"field.name": name,
		"field.seed": seed,
	})
	defer done()

	value, effective, err := s.builder.Field(name, seed, p)
	result := &FieldValue{Field: name, Value: value, Seed: effective}
	switch {
	case err == nil:
		return result, nil
	case errors.Is(err, models.ErrUnsupportedIDType):
		result.Value = models.NotAvailable
		result.Warning = err.Error()
		return result, nil
	default:
		utils.RecordErrorInSpan(span, err, nil)
		return nil, err
	}
}

func recordGenerated(form models.Form) {
	header := form.Header()
	kind := models.EntityKindNatural
	if cp, ok := form.(*models.CounterpartyForm); ok {
		kind = cp.EntityKind
	}
	observability.FormsGenerated.WithLabelValues(string(header.DocumentType), string(kind)).Inc()
}
