package generators

import (
	"fmt"

	"github.com/kyc-co/synthforms/internal/models"
)

// Default age bounds for birthdates. Forms only describe adults, so the generator's
// own range never starts below DefaultMinAge.
const (
	DefaultMinAge = 18
	DefaultMaxAge = 50
	MaxAge        = 150
)

// Birthdate returns a uniform date between maxAge and minAge years before today.
func (g *Generator) Birthdate(minAge, maxAge int) (models.Date, error) {
	if minAge < 0 || maxAge < minAge || maxAge > MaxAge {
		return models.Date{}, fmt.Errorf("%w: min %d, max %d", models.ErrInvalidAgeRange, minAge, maxAge)
	}

	today := g.Today()
	oldest := today.AddYMD(-maxAge, 0, 0)
	youngest := today.AddYMD(-minAge, 0, 0)
	span := oldest.DaysUntil(youngest)
	return oldest.AddYMD(0, 0, g.Intn(0, span)), nil
}

// DefaultBirthdate draws a birthdate within the generator's age range, DefaultMinAge
// to DefaultMaxAge unless WithAgeRange changed it.
func (g *Generator) DefaultBirthdate() models.Date {
	d, _ := g.Birthdate(g.minAge, g.maxAge)
	return d
}

// AgeRange returns the bounds DefaultBirthdate uses.
func (g *Generator) AgeRange() (minAge, maxAge int) {
	return g.minAge, g.maxAge
}

// IDExpeditionDate is the cédula issue date: the 18th birthday plus up to 60 days.
func (g *Generator) IDExpeditionDate(birthdate models.Date) models.Date {
	return birthdate.AddYMD(18, 0, g.Intn(0, 60))
}

// ContractStartDate places a contract start between ages 18 and 27. A start on or after
// today is moved to within the last seven months, but never before the birthdate.
func (g *Generator) ContractStartDate(birthdate models.Date) models.Date {
	years := 18 + g.Intn(0, 8)
	months := g.Intn(0, 12)
	days := g.Intn(0, 30)
	start := birthdate.AddYMD(years, months, days)

	today := g.Today()
	if !start.Before(today.Time) {
		start = today.AddYMD(0, -g.Intn(0, 6), -g.Intn(0, 30))
	}
	if start.Before(birthdate.Time) {
		start = birthdate
	}
	return start
}

// ContractEndDate follows start by up to 8 years, 12 months and 30 days.
func (g *Generator) ContractEndDate(start models.Date) models.Date {
	return start.AddYMD(g.Intn(0, 8), g.Intn(0, 12), g.Intn(0, 30))
}

// FormDate is a date between 1 and 60 days before today.
func (g *Generator) FormDate() models.Date {
	return g.Today().AddYMD(0, 0, -g.Intn(1, 60))
}
