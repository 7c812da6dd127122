package models

import "fmt"

// EntityKind tells whether a counterparty is a natural person or a company.
type EntityKind string

const (
	EntityKindNatural  EntityKind = "natural"
	EntityKindJuridica EntityKind = "juridica"
)

// UserType is the relationship the counterparty has with the reporting company.
type UserType string

const (
	UserTypeCliente   UserType = "cliente"
	UserTypeProveedor UserType = "proveedor"
)

// FormatActionVincular is the only action produced by the generator.
const FormatActionVincular = "vincular"

// FormatInfo identifies the compliance format revision.
type FormatInfo struct {
	Code    string `json:"code" bson:"code"`
	Version string `json:"version" bson:"version"`
}

// SagrilaftV1 is the format stamped on every counterparty form.
var SagrilaftV1 = FormatInfo{Code: "Sagrilaft", Version: "1"}

// CounterpartyForm is a synthetic SAGRILAFT "formulario de conocimiento".
// Exactly one of Individual or Organization is set, matching EntityKind.
type CounterpartyForm struct {
	Envelope      `bson:",inline"`
	UserType      UserType           `json:"user_type" bson:"user_type"`
	FormatAction  string             `json:"format_action" bson:"format_action"`
	FormatInfo    FormatInfo         `json:"format_info" bson:"format_info"`
	EntityKind    EntityKind         `json:"entity_kind" bson:"entity_kind"`
	Individual    *IndividualParty   `json:"individual,omitempty" bson:"individual,omitempty"`
	Organization  *OrganizationParty `json:"organization,omitempty" bson:"organization,omitempty"`
	BankReferrals []Referral         `json:"bank_referrals" bson:"bank_referrals"`
}

// PartyEntity names a person or company by its identification.
type PartyEntity struct {
	Name   string `json:"name" bson:"name"`
	IDType IDType `json:"id_type" bson:"id_type"`
	ID     string `json:"id" bson:"id"`
}

// ContactInfo is the counterparty's contact person.
type ContactInfo struct {
	Name     string   `json:"name" bson:"name"`
	Position string   `json:"position" bson:"position"`
	Email    string   `json:"email" bson:"email"`
	Phone    []string `json:"phone" bson:"phone"`
}

// PartyBasicInfo is the identification block common to both entity kinds.
type PartyBasicInfo struct {
	Entity       PartyEntity `json:"entity" bson:"entity"`
	Address      string      `json:"address" bson:"address"`
	City         string      `json:"city" bson:"city"`
	Phone        string      `json:"phone" bson:"phone"`
	ContactInfo  ContactInfo `json:"contact_info" bson:"contact_info"`
	IsPEP        bool        `json:"isPEP" bson:"isPEP"`
	LastPosition string      `json:"last_position" bson:"last_position"`
}

// OrganizationBasicInfo adds the company's legal representative.
type OrganizationBasicInfo struct {
	PartyBasicInfo      `bson:",inline"`
	LegalRepresentative PartyEntity `json:"legal_representative" bson:"legal_representative"`
}

// BusinessInfo describes the economic activity.
type BusinessInfo struct {
	StatutoryActivity string `json:"statutory_activity" bson:"statutory_activity"`
	CIIU              string `json:"ciiu" bson:"ciiu"`
	JointDocument     int    `json:"joint-document" bson:"joint-document"`
	ConstitutionDate  Date   `json:"constitution_date" bson:"constitution_date"`
}

// OrganizationBusinessInfo adds the registration data only companies carry.
type OrganizationBusinessInfo struct {
	BusinessInfo            `bson:",inline"`
	CommercialRegistration  string `json:"commercial_registration" bson:"commercial_registration"`
	RegisteredSharedCapital int64  `json:"registered_shared_capital" bson:"registered_shared_capital"`
	GoodOrService           string `json:"good_or_service" bson:"good_or_service"`
	CompanyType             string `json:"company_type" bson:"company_type"`
	Sector                  string `json:"sector" bson:"sector"`
}

// CertificateProgress is a certification process not yet finished. Generated forms leave it empty.
type CertificateProgress struct {
	Process            *string  `json:"process" bson:"process"`
	PercentageProgress *float64 `json:"percentage_progress" bson:"percentage_progress"`
	InitDate           *Date    `json:"init_date" bson:"init_date"`
}

// Certificates lists the quality and security certifications a company holds.
type Certificates struct {
	ListOfCertificates string              `json:"list_of_certificates" bson:"list_of_certificates"`
	InProgress         CertificateProgress `json:"in_progress" bson:"in_progress"`
}

// AccountingAndTaxes is the tax regime block.
type AccountingAndTaxes struct {
	IsRegimenComun        bool    `json:"isRegimenComun" bson:"isRegimenComun"`
	IsRegimenSimplificado bool    `json:"isRegimenSimplificado" bson:"isRegimenSimplificado"`
	IsDeclaraRenta        bool    `json:"isDeclaraRenta" bson:"isDeclaraRenta"`
	IsAutoRetenedor       bool    `json:"isAutoRetenedor" bson:"isAutoRetenedor"`
	PaymentTerms          string  `json:"payment_terms" bson:"payment_terms"`
	PaymentTermsOther     *string `json:"payment_terms_other" bson:"payment_terms_other"`
}

// Person is a legal representative or director.
type Person struct {
	Name        string `json:"name" bson:"name"`
	IDType      IDType `json:"id_type" bson:"id_type"`
	IDNumber    string `json:"id_number" bson:"id_number"`
	Nationality string `json:"nationality" bson:"nationality"`
}

// Shareholder is a company owner with its participation.
type Shareholder struct {
	Person          `bson:",inline"`
	IsPEP           bool    `json:"isPEP" bson:"isPEP"`
	SharePercentage float64 `json:"share_percentage" bson:"share_percentage"`
}

// Referral is a bank or commercial reference.
type Referral struct {
	Name    string `json:"name" bson:"name"`
	Address string `json:"address" bson:"address"`
	Phone   string `json:"phone" bson:"phone"`
}

// IndividualParty is the payload of a natural-person counterparty.
type IndividualParty struct {
	BasicInfo          PartyBasicInfo     `json:"basic_info" bson:"basic_info"`
	BusinessInfo       BusinessInfo       `json:"business_info" bson:"business_info"`
	AccountingAndTaxes AccountingAndTaxes `json:"accounting_and_taxes" bson:"accounting_and_taxes"`
}

// OrganizationParty is the payload of a company counterparty.
type OrganizationParty struct {
	BasicInfo            OrganizationBasicInfo    `json:"basic_info" bson:"basic_info"`
	BusinessInfo         OrganizationBusinessInfo `json:"business_info" bson:"business_info"`
	Certificates         Certificates             `json:"certificates" bson:"certificates"`
	BusinessType         string                   `json:"business_type" bson:"business_type"`
	AccountingAndTaxes   AccountingAndTaxes       `json:"accounting_and_taxes" bson:"accounting_and_taxes"`
	LegalRepresentatives []Person                 `json:"legal_representatives" bson:"legal_representatives"`
	Directives           []Person                 `json:"directives" bson:"directives"`
	Shareholders         []Shareholder            `json:"shareholders" bson:"shareholders"`
	CommercialReferrals  []Referral               `json:"commercial_referrals" bson:"commercial_referrals"`
}

// Validate checks that the entity kind and its payload agree.
func (f *CounterpartyForm) Validate() error {
	switch f.EntityKind {
	case EntityKindNatural:
		if f.Individual == nil || f.Organization != nil {
			return fmt.Errorf("%w: natural form must carry only an individual", ErrInconsistentParty)
		}
	case EntityKindJuridica:
		if f.Organization == nil || f.Individual != nil {
			return fmt.Errorf("%w: juridica form must carry only an organization", ErrInconsistentParty)
		}
		if len(f.Organization.Shareholders) == 0 {
			return fmt.Errorf("%w: organization without shareholders", ErrInconsistentParty)
		}
	default:
		return fmt.Errorf("%w: entity kind %q", ErrInconsistentParty, f.EntityKind)
	}
	return nil
}

// Legacy projects the form onto the flat layout where both entity kinds share one
// shape and fields that do not apply to a natural person are null or empty.
func (f *CounterpartyForm) Legacy() map[string]any {
	out := map[string]any{
		"sg_id":              f.ID,
		"sg_document_type":   string(f.DocumentType),
		"sg_create_at":       f.CreatedAt.String(),
		"sg_update_at":       f.UpdatedAt.String(),
		"sg_additional_info": f.AdditionalInfo,
		"form_date":          f.FormDate.String(),
		"seed":               f.Seed,
		"user_type":          string(f.UserType),
		"format_action":      f.FormatAction,
		"format_info":        map[string]any{"code": f.FormatInfo.Code, "version": f.FormatInfo.Version},
		"bank_referrals":     legacyReferrals(f.BankReferrals),
	}

	nullProgress := map[string]any{"process": nil, "percentage_progress": nil, "init_date": nil}

	switch {
	case f.Organization != nil:
		org := f.Organization
		basic := legacyBasicInfo(EntityKindJuridica, org.BasicInfo.PartyBasicInfo)
		basic["legal_representative"] = map[string]any{
			"name":    org.BasicInfo.LegalRepresentative.Name,
			"id_type": string(org.BasicInfo.LegalRepresentative.IDType),
			"id":      org.BasicInfo.LegalRepresentative.ID,
		}
		out["basic_info"] = basic
		bi := org.BusinessInfo
		out["business_info"] = map[string]any{
			"statutory_activity":        bi.StatutoryActivity,
			"ciiu":                      bi.CIIU,
			"joint-document":            bi.JointDocument,
			"commercial_registration":   bi.CommercialRegistration,
			"registered_shared_capital": bi.RegisteredSharedCapital,
			"constitution_date":         bi.ConstitutionDate.String(),
			"good_or_service":           bi.GoodOrService,
			"company_type":              bi.CompanyType,
			"sector":                    bi.Sector,
		}
		out["certificates"] = map[string]any{
			"list_of_certificates": org.Certificates.ListOfCertificates,
			"in_progress":          nullProgress,
		}
		out["business_type"] = org.BusinessType
		out["accounting_and_taxes"] = legacyAccounting(org.AccountingAndTaxes)
		out["legal_representatives"] = legacyPersons(org.LegalRepresentatives)
		out["directives"] = legacyPersons(org.Directives)
		shareholders := make([]map[string]any, 0, len(org.Shareholders))
		for _, s := range org.Shareholders {
			m := legacyPerson(s.Person)
			m["isPEP"] = s.IsPEP
			m["share_percentage"] = s.SharePercentage
			shareholders = append(shareholders, m)
		}
		out["shareholders"] = shareholders
		out["commercial_referrals"] = legacyReferrals(org.CommercialReferrals)
	case f.Individual != nil:
		ind := f.Individual
		basic := legacyBasicInfo(EntityKindNatural, ind.BasicInfo)
		basic["legal_representative"] = map[string]any{"name": nil, "id_type": nil, "id": nil}
		out["basic_info"] = basic
		out["business_info"] = map[string]any{
			"statutory_activity":        ind.BusinessInfo.StatutoryActivity,
			"ciiu":                      ind.BusinessInfo.CIIU,
			"joint-document":            ind.BusinessInfo.JointDocument,
			"commercial_registration":   nil,
			"registered_shared_capital": nil,
			"constitution_date":         ind.BusinessInfo.ConstitutionDate.String(),
			"good_or_service":           nil,
			"company_type":              nil,
			"sector":                    nil,
		}
		out["certificates"] = map[string]any{"list_of_certificates": nil, "in_progress": nullProgress}
		out["business_type"] = nil
		out["accounting_and_taxes"] = legacyAccounting(ind.AccountingAndTaxes)
		out["legal_representatives"] = []map[string]any{}
		out["directives"] = []map[string]any{}
		out["shareholders"] = []map[string]any{}
		out["commercial_referrals"] = []map[string]any{}
	}
	return out
}

func legacyBasicInfo(kind EntityKind, b PartyBasicInfo) map[string]any {
	phones := make([]string, len(b.ContactInfo.Phone))
	copy(phones, b.ContactInfo.Phone)
	return map[string]any{
		"type": string(kind),
		"entity": map[string]any{
			"name":    b.Entity.Name,
			"id_type": string(b.Entity.IDType),
			"id":      b.Entity.ID,
		},
		"address": b.Address,
		"city":    b.City,
		"phone":   b.Phone,
		"contact_info": map[string]any{
			"name":     b.ContactInfo.Name,
			"position": b.ContactInfo.Position,
			"email":    b.ContactInfo.Email,
			"phone":    phones,
		},
		"isPEP":         b.IsPEP,
		"last_position": b.LastPosition,
	}
}

func legacyAccounting(a AccountingAndTaxes) map[string]any {
	return map[string]any{
		"isRegimenComun":        a.IsRegimenComun,
		"isRegimenSimplificado": a.IsRegimenSimplificado,
		"isDeclaraRenta":        a.IsDeclaraRenta,
		"isAutoRetenedor":       a.IsAutoRetenedor,
		"payment_terms":         a.PaymentTerms,
		"payment_terms_other":   a.PaymentTermsOther,
	}
}

func legacyPerson(p Person) map[string]any {
	return map[string]any{
		"name":        p.Name,
		"id_type":     string(p.IDType),
		"id_number":   p.IDNumber,
		"nationality": p.Nationality,
	}
}

func legacyPersons(ps []Person) []map[string]any {
	out := make([]map[string]any, 0, len(ps))
	for _, p := range ps {
		out = append(out, legacyPerson(p))
	}
	return out
}

func legacyReferrals(rs []Referral) []map[string]any {
	out := make([]map[string]any, 0, len(rs))
	for _, r := range rs {
		out = append(out, map[string]any{"name": r.Name, "address": r.Address, "phone": r.Phone})
	}
	return out
}
