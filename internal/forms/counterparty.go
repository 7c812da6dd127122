package forms

import (
	"math"

	"github.com/kyc-co/synthforms/internal/generators"
	"github.com/kyc-co/synthforms/internal/models"
)

const (
	directiveCrossRefChance = 0.6
	maxGroupSize            = 4
)

// legal representatives of a company may themselves be companies
var representativeIDTypes = []models.IDType{models.IDTypeNIT, models.IDTypeCC, models.IDTypeCE}

// CounterpartyKnowledge builds a SAGRILAFT "formulario de conocimiento". The entity kind
// and user type are drawn first; the rest of the form branches on the kind.
func (b *Builder) CounterpartyKnowledge(seed int64) (*models.CounterpartyForm, error) {
	g, err := b.generator(seed)
	if err != nil {
		return nil, err
	}

	form := &models.CounterpartyForm{
		Envelope:     envelope(g, models.DocumentTypeCounterpartyKnowledge),
		UserType:     g.UserType(),
		FormatAction: models.FormatActionVincular,
		FormatInfo:   models.SagrilaftV1,
		EntityKind:   g.EntityKind(),
	}

	if form.EntityKind == models.EntityKindJuridica {
		form.Organization = organization(g)
	} else {
		form.Individual = individual(g)
	}

	form.BankReferrals = make([]models.Referral, g.Intn(0, maxGroupSize))
	for i := range form.BankReferrals {
		form.BankReferrals[i] = models.Referral{
			Name:    g.Bank(),
			Address: g.Address(),
			Phone:   g.Phone(true),
		}
	}

	return form, nil
}

func individual(g *generators.Generator) *models.IndividualParty {
	var p models.IndividualParty

	name := g.Name()
	p.BasicInfo = models.PartyBasicInfo{
		Entity: models.PartyEntity{
			Name:   name,
			IDType: models.IDTypeCC,
			ID:     g.IDNumberOrSentinel(models.IDTypeCC),
		},
		Address: g.Address(),
		City:    g.City(),
		Phone:   g.Phone(true),
	}
	p.BasicInfo.ContactInfo = contactInfo(g, name)
	p.BasicInfo.IsPEP = g.Bool()
	p.BasicInfo.LastPosition = g.Job()

	p.BusinessInfo = businessInfo(g)

	p.AccountingAndTaxes = models.AccountingAndTaxes{
		IsRegimenComun:        false,
		IsRegimenSimplificado: g.Bool(),
		IsDeclaraRenta:        g.Bool(),
		IsAutoRetenedor:       false,
		PaymentTerms:          g.PaymentTerms(),
	}
	return &p
}

func organization(g *generators.Generator) *models.OrganizationParty {
	var p models.OrganizationParty

	p.BasicInfo.Entity = models.PartyEntity{
		Name:   g.Company(),
		IDType: models.IDTypeNIT,
		ID:     g.IDNumberOrSentinel(models.IDTypeNIT),
	}
	repType := representativeIDTypes[g.Intn(0, len(representativeIDTypes)-1)]
	repName := g.Name()
	if repType == models.IDTypeNIT {
		repName = g.Company()
	}
	p.BasicInfo.LegalRepresentative = models.PartyEntity{
		Name:   repName,
		IDType: repType,
		ID:     g.IDNumberOrSentinel(repType),
	}
	p.BasicInfo.Address = g.Address()
	p.BasicInfo.City = g.City()
	p.BasicInfo.Phone = g.Phone(true)
	p.BasicInfo.ContactInfo = contactInfo(g, g.Name())
	p.BasicInfo.IsPEP = g.Bool()
	p.BasicInfo.LastPosition = g.Job()

	base := businessInfo(g)
	p.BusinessInfo = models.OrganizationBusinessInfo{
		BusinessInfo:            base,
		CommercialRegistration:  g.Digest(),
		RegisteredSharedCapital: g.IntRange(10, 5000) * 1_000_000,
		GoodOrService:           base.StatutoryActivity,
		CompanyType:             g.CompanyType(),
		Sector:                  g.Sector(),
	}

	p.Certificates = models.Certificates{ListOfCertificates: g.Certification()}
	p.BusinessType = g.BusinessSize()

	p.AccountingAndTaxes = models.AccountingAndTaxes{
		IsRegimenComun:        true,
		IsRegimenSimplificado: false,
		IsDeclaraRenta:        true,
		IsAutoRetenedor:       g.Bool(),
		PaymentTerms:          g.PaymentTerms(),
	}

	p.LegalRepresentatives = people(g, g.Intn(1, maxGroupSize))

	p.Directives = people(g, g.Intn(1, maxGroupSize))
	if g.Chance(directiveCrossRefChance) {
		rep := p.LegalRepresentatives[g.Intn(0, len(p.LegalRepresentatives)-1)]
		p.Directives = append(p.Directives, rep)
	}

	p.Shareholders = shareholders(g, g.Intn(1, maxGroupSize))

	p.CommercialReferrals = make([]models.Referral, g.Intn(0, maxGroupSize))
	for i := range p.CommercialReferrals {
		p.CommercialReferrals[i] = models.Referral{
			Name:    g.Company(),
			Address: g.Address(),
			Phone:   g.Phone(true),
		}
	}
	return &p
}

func contactInfo(g *generators.Generator, name string) models.ContactInfo {
	return models.ContactInfo{
		Name:     name,
		Position: g.Job(),
		Email:    g.Email(),
		Phone:    []string{g.Phone(true)},
	}
}

func businessInfo(g *generators.Generator) models.BusinessInfo {
	ciiu := g.CIIU()
	return models.BusinessInfo{
		StatutoryActivity: ciiu.Activity,
		CIIU:              ciiu.Code,
		JointDocument:     g.Intn(0, 9999),
		ConstitutionDate:  g.DefaultBirthdate(),
	}
}

func person(g *generators.Generator) models.Person {
	t := g.IDType()
	return models.Person{
		Name:        g.Name(),
		IDType:      t,
		IDNumber:    g.IDNumberOrSentinel(t),
		Nationality: g.Nationality(),
	}
}

func people(g *generators.Generator, n int) []models.Person {
	out := make([]models.Person, n)
	for i := range out {
		out[i] = person(g)
	}
	return out
}

// shareholders splits 100% evenly; the last holder absorbs the rounding remainder.
func shareholders(g *generators.Generator, n int) []models.Shareholder {
	out := make([]models.Shareholder, n)
	share := math.Round(100/float64(n)*100) / 100
	allocated := 0.0
	for i := range out {
		out[i] = models.Shareholder{Person: person(g), IsPEP: g.Bool()}
		if i == n-1 {
			out[i].SharePercentage = math.Round((100-allocated)*100) / 100
		} else {
			out[i].SharePercentage = share
			allocated += share
		}
	}
	return out
}
