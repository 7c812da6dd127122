// Package forms assembles complete synthetic documents from field generators.
package forms

import (
	"fmt"
	"time"

	"github.com/kyc-co/synthforms/internal/catalog"
	"github.com/kyc-co/synthforms/internal/generators"
	"github.com/kyc-co/synthforms/internal/logging"
	"github.com/kyc-co/synthforms/internal/models"
)

// Builder builds forms. It holds no random state and is safe for concurrent use: every
// call creates its own generator from the requested seed.
type Builder struct {
	catalog *catalog.Catalog
	now     func() time.Time
	logger  *logging.SafeLogger
	minAge  int
	maxAge  int
}

// Option configures a Builder.
type Option func(*Builder)

// WithClock fixes the reference time, which makes a seed reproduce the same form.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}

// WithLogger sets the logger handed to each generator.
func WithLogger(logger *logging.SafeLogger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithAgeRange sets the age bounds of every generated person. Ranges outside
// [generators.DefaultMinAge, generators.MaxAge] keep the defaults.
func WithAgeRange(minAge, maxAge int) Option {
	return func(b *Builder) {
		if minAge >= generators.DefaultMinAge && maxAge >= minAge && maxAge <= generators.MaxAge {
			b.minAge, b.maxAge = minAge, maxAge
		}
	}
}

// NewBuilder returns a builder over cat.
func NewBuilder(cat *catalog.Catalog, opts ...Option) *Builder {
	b := &Builder{
		catalog: cat,
		now:     time.Now,
		logger:  logging.Logger,
		minAge:  generators.DefaultMinAge,
		maxAge:  generators.DefaultMaxAge,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build dispatches on the document type.
func (b *Builder) Build(docType models.DocumentType, seed int64) (models.Form, error) {
	switch docType {
	case models.DocumentTypeEmployeeKnowledge:
		form, err := b.EmployeeKnowledge(seed)
		if err != nil {
			return nil, err
		}
		return form, nil
	case models.DocumentTypeCounterpartyKnowledge:
		form, err := b.CounterpartyKnowledge(seed)
		if err != nil {
			return nil, err
		}
		return form, nil
	default:
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownFormType, docType)
	}
}

// Today is the date every relative field of a form built now is computed from.
func (b *Builder) Today() models.Date {
	return models.NewDate(b.now())
}

// Field generates one named field from its own generator and returns the effective seed.
func (b *Builder) Field(name string, seed int64, p generators.FieldParams) (any, int64, error) {
	g, err := b.generator(seed)
	if err != nil {
		return nil, 0, err
	}
	value, err := g.Field(name, p)
	return value, g.Seed(), err
}

func (b *Builder) generator(seed int64) (*generators.Generator, error) {
	g, err := generators.New(b.catalog, seed,
		generators.WithClock(b.now),
		generators.WithLogger(b.logger),
		generators.WithAgeRange(b.minAge, b.maxAge),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create generator: %w", err)
	}
	return g, nil
}

func envelope(g *generators.Generator, docType models.DocumentType) models.Envelope {
	today := g.Today()
	return models.Envelope{
		ID:           g.UUID(),
		DocumentType: docType,
		CreatedAt:    today,
		UpdatedAt:    today,
		FormDate:     g.FormDate(),
		Seed:         g.Seed(),
	}
}
