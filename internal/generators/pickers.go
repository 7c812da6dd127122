package generators

import (
	"github.com/kyc-co/synthforms/internal/catalog"
	"github.com/kyc-co/synthforms/internal/models"
	"github.com/kyc-co/synthforms/internal/utils"
)

// Phone returns "+57 NNNNNNNNNN", or a number under a random country's dial code when
// colombian is false.
func (g *Generator) Phone(colombian bool) string {
	dial := utils.ColombiaDialCode
	if !colombian {
		countries := g.catalog.Countries()
		dial = countries.At(g.Intn(0, countries.Len()-1)).DialCode
	}
	return utils.FormatPhone(dial, g.IntRange(0, 9999999999))
}

// Nationality picks a country name.
func (g *Generator) Nationality() string {
	countries := g.catalog.Countries()
	return countries.At(g.Intn(0, countries.Len()-1)).Name
}

// CIIU picks an economic activity together with its code.
func (g *Generator) CIIU() catalog.CIIU {
	entries := g.catalog.CIIU()
	return entries.At(g.Intn(0, entries.Len()-1))
}

func (g *Generator) City() string            { return g.pick(catalog.Cities) }
func (g *Generator) Job() string             { return g.pick(catalog.Jobs) }
func (g *Generator) BloodType() string       { return g.pick(catalog.BloodTypes) }
func (g *Generator) Gender() string          { return g.pick(catalog.Genders) }
func (g *Generator) MaritalStatus() string   { return g.pick(catalog.MaritalStatuses) }
func (g *Generator) EPS() string             { return g.pick(catalog.EPS) }
func (g *Generator) ARL() string             { return g.pick(catalog.ARL) }
func (g *Generator) HealthInsurance() string { return g.pick(catalog.HealthInsurers) }
func (g *Generator) ContractType() string    { return g.pick(catalog.ContractTypes) }
func (g *Generator) Institution() string     { return g.pick(catalog.Institutions) }
func (g *Generator) Degree() string          { return g.pick(catalog.Degrees) }
func (g *Generator) Bank() string            { return g.pick(catalog.Banks) }
func (g *Generator) CompanyType() string     { return g.pick(catalog.CompanyTypes) }
func (g *Generator) Sector() string          { return g.pick(catalog.Sectors) }
func (g *Generator) BusinessSize() string    { return g.pick(catalog.BusinessSizes) }
func (g *Generator) Certification() string   { return g.pick(catalog.Certifications) }
func (g *Generator) PaymentTerms() string    { return g.pick(catalog.PaymentTerms) }

// UserType picks between cliente and proveedor.
func (g *Generator) UserType() models.UserType {
	return models.UserType(g.pick(catalog.UserTypes))
}

// EntityKind is a fair choice between a natural person and a company.
func (g *Generator) EntityKind() models.EntityKind {
	if g.Bool() {
		return models.EntityKindJuridica
	}
	return models.EntityKindNatural
}
