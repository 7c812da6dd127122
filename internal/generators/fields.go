package generators

import (
	"fmt"
	"sort"

	"github.com/kyc-co/synthforms/internal/models"
)

// FieldParams carries the optional inputs some fields depend on. Zero ages fall back to
// the generator's age range.
type FieldParams struct {
	IDType    models.IDType
	Colombian bool
	MinAge    int
	MaxAge    int
	Birthdate *models.Date
	StartDate *models.Date
}

type fieldFunc func(g *Generator, p FieldParams) (any, error)

var fields = map[string]fieldFunc{
	"id_type": func(g *Generator, _ FieldParams) (any, error) { return g.IDType(), nil },
	"id_number": func(g *Generator, p FieldParams) (any, error) {
		t := p.IDType
		if t == "" {
			t = models.IDTypeCC
		}
		return g.IDNumber(t)
	},
	"birthdate": func(g *Generator, p FieldParams) (any, error) {
		minAge, maxAge := g.AgeRange()
		if p.MinAge != 0 {
			minAge = p.MinAge
		}
		if p.MaxAge != 0 {
			maxAge = p.MaxAge
		}
		return g.Birthdate(minAge, maxAge)
	},
	"id_expedition_date": func(g *Generator, p FieldParams) (any, error) {
		return g.IDExpeditionDate(birthdateOrDraw(g, p)), nil
	},
	"contract_start_date": func(g *Generator, p FieldParams) (any, error) {
		return g.ContractStartDate(birthdateOrDraw(g, p)), nil
	},
	"contract_end_date": func(g *Generator, p FieldParams) (any, error) {
		start := p.StartDate
		if start == nil {
			s := g.ContractStartDate(birthdateOrDraw(g, p))
			start = &s
		}
		return g.ContractEndDate(*start), nil
	},
	"phone":            func(g *Generator, p FieldParams) (any, error) { return g.Phone(p.Colombian), nil },
	"name":             func(g *Generator, _ FieldParams) (any, error) { return g.Name(), nil },
	"company":          func(g *Generator, _ FieldParams) (any, error) { return g.Company(), nil },
	"address":          func(g *Generator, _ FieldParams) (any, error) { return g.Address(), nil },
	"email":            func(g *Generator, _ FieldParams) (any, error) { return g.Email(), nil },
	"city":             func(g *Generator, _ FieldParams) (any, error) { return g.City(), nil },
	"job":              func(g *Generator, _ FieldParams) (any, error) { return g.Job(), nil },
	"blood_type":       func(g *Generator, _ FieldParams) (any, error) { return g.BloodType(), nil },
	"genre":            func(g *Generator, _ FieldParams) (any, error) { return g.Gender(), nil },
	"marital_status":   func(g *Generator, _ FieldParams) (any, error) { return g.MaritalStatus(), nil },
	"nationality":      func(g *Generator, _ FieldParams) (any, error) { return g.Nationality(), nil },
	"eps":              func(g *Generator, _ FieldParams) (any, error) { return g.EPS(), nil },
	"arl":              func(g *Generator, _ FieldParams) (any, error) { return g.ARL(), nil },
	"health_insurance": func(g *Generator, _ FieldParams) (any, error) { return g.HealthInsurance(), nil },
	"contract_type":    func(g *Generator, _ FieldParams) (any, error) { return g.ContractType(), nil },
	"institution":      func(g *Generator, _ FieldParams) (any, error) { return g.Institution(), nil },
	"degree":           func(g *Generator, _ FieldParams) (any, error) { return g.Degree(), nil },
	"ciiu":             func(g *Generator, _ FieldParams) (any, error) { return g.CIIU(), nil },
	"bank":             func(g *Generator, _ FieldParams) (any, error) { return g.Bank(), nil },
	"company_type":     func(g *Generator, _ FieldParams) (any, error) { return g.CompanyType(), nil },
	"sector":           func(g *Generator, _ FieldParams) (any, error) { return g.Sector(), nil },
	"business_size":    func(g *Generator, _ FieldParams) (any, error) { return g.BusinessSize(), nil },
	"certification":    func(g *Generator, _ FieldParams) (any, error) { return g.Certification(), nil },
	"payment_terms":    func(g *Generator, _ FieldParams) (any, error) { return g.PaymentTerms(), nil },
	"user_type":        func(g *Generator, _ FieldParams) (any, error) { return g.UserType(), nil },
	"digest":           func(g *Generator, _ FieldParams) (any, error) { return g.Digest(), nil },
	"uuid":             func(g *Generator, _ FieldParams) (any, error) { return g.UUID(), nil },
}

// Field generates a single named field. Unknown names return models.ErrUnknownField.
func (g *Generator) Field(name string, p FieldParams) (any, error) {
	fn, ok := fields[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownField, name)
	}
	return fn(g, p)
}

// FieldNames lists every field Field accepts, sorted.
func FieldNames() []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func birthdateOrDraw(g *Generator, p FieldParams) models.Date {
	if p.Birthdate != nil {
		return *p.Birthdate
	}
	return g.DefaultBirthdate()
}
