// Package generators produces individual synthetic field values for Colombian KYC forms.
//
// A Generator owns its random source. Two generators built with the same seed, catalog
// and clock return the same sequence of values, and nothing here touches process-wide
// random state.
package generators

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"github.com/kyc-co/synthforms/internal/catalog"
	"github.com/kyc-co/synthforms/internal/logging"
	"github.com/kyc-co/synthforms/internal/models"
)

// Generator draws field values from a seeded fake-data provider. It is not safe for
// concurrent use; give each goroutine its own.
type Generator struct {
	faker   *gofakeit.Faker
	catalog *catalog.Catalog
	now     func() time.Time
	logger  *logging.SafeLogger
	seed    int64
	minAge  int
	maxAge  int
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock replaces time.Now as the reference for every relative date.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// WithLogger sets the logger used for fallback warnings.
func WithLogger(logger *logging.SafeLogger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithAgeRange changes the age bounds of DefaultBirthdate. Ranges that are inverted,
// start below DefaultMinAge or end above MaxAge are ignored.
func WithAgeRange(minAge, maxAge int) Option {
	return func(g *Generator) {
		if minAge >= DefaultMinAge && maxAge >= minAge && maxAge <= MaxAge {
			g.minAge, g.maxAge = minAge, maxAge
		}
	}
}

// New returns a generator over cat seeded with seed. A zero seed draws a fresh one,
// available afterwards through Seed.
func New(cat *catalog.Catalog, seed int64, opts ...Option) (*Generator, error) {
	if cat == nil {
		return nil, fmt.Errorf("generator needs a catalog")
	}

	g := &Generator{
		catalog: cat,
		now:     time.Now,
		logger:  logging.Logger,
		minAge:  DefaultMinAge,
		maxAge:  DefaultMaxAge,
	}
	for _, opt := range opts {
		opt(g)
	}

	if err := g.Reseed(seed); err != nil {
		return nil, err
	}
	return g, nil
}

// Reseed restarts this generator's random sequence. Other generators are unaffected.
func (g *Generator) Reseed(seed int64) error {
	if seed == 0 {
		fresh, err := NewSeed()
		if err != nil {
			return err
		}
		seed = fresh
	}
	g.seed = seed
	g.faker = gofakeit.New(seed)
	return nil
}

// Seed returns the effective seed of the current sequence.
func (g *Generator) Seed() int64 {
	return g.seed
}

// Catalog returns the reference tables the generator picks from.
func (g *Generator) Catalog() *catalog.Catalog {
	return g.catalog
}

// Today is the clock's current date.
func (g *Generator) Today() models.Date {
	return models.NewDate(g.now())
}

// Bool is a fair coin.
func (g *Generator) Bool() bool {
	return g.faker.Bool()
}

// IntRange returns a uniform integer in [min, max].
func (g *Generator) IntRange(min, max int64) int64 {
	if max <= min {
		return min
	}
	return min + g.faker.Rand.Int63n(max-min+1)
}

// Intn returns a uniform integer in [min, max] for small ranges.
func (g *Generator) Intn(min, max int) int {
	return int(g.IntRange(int64(min), int64(max)))
}

// Chance reports true with probability p.
func (g *Generator) Chance(p float64) bool {
	return g.faker.Rand.Float64() < p
}

// Digest returns a random sha1 hex string, used for registration numbers.
func (g *Generator) Digest() string {
	buf := make([]byte, 20)
	_, _ = g.faker.Rand.Read(buf)
	sum := sha1.Sum(buf)
	return hex.EncodeToString(sum[:])
}

// UUID returns a version 4 UUID drawn from the generator's own sequence.
func (g *Generator) UUID() string {
	id, err := uuid.NewRandomFromReader(g.faker.Rand)
	if err != nil {
		// math/rand never fails to read
		return uuid.NewString()
	}
	return id.String()
}

func (g *Generator) pick(name catalog.Name) string {
	table := g.catalog.Table(name)
	if table.Len() == 0 {
		return ""
	}
	return table.At(g.faker.Number(0, table.Len()-1))
}
