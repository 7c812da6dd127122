// Package catalog holds the immutable reference tables the form generators draw from.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/kyc-co/synthforms/internal/models"
)

//go:embed data/catalog.v1.yaml
var embeddedCatalogYAML []byte

var (
	loadDefaultOnce sync.Once
	defaultCatalog  *Catalog
	defaultLoadErr  error
)

// Name identifies a plain string table.
type Name string

const (
	IDTypes         Name = "id_types"
	Cities          Name = "cities"
	Jobs            Name = "jobs"
	EPS             Name = "eps"
	ARL             Name = "arl"
	HealthInsurers  Name = "health_insurers"
	BloodTypes      Name = "blood_types"
	Genders         Name = "genders"
	MaritalStatuses Name = "marital_statuses"
	ContractTypes   Name = "contract_types"
	Institutions    Name = "institutions"
	Degrees         Name = "degrees"
	GivenNames      Name = "given_names"
	Surnames        Name = "surnames"
	StreetTypes     Name = "street_types"
	CompanyStems    Name = "company_stems"
	CompanySuffixes Name = "company_suffixes"
	EmailDomains    Name = "email_domains"
	Banks           Name = "banks"
	CompanyTypes    Name = "company_types"
	Sectors         Name = "sectors"
	BusinessSizes   Name = "business_sizes"
	Certifications  Name = "certifications"
	PaymentTerms    Name = "payment_terms"
	UserTypes       Name = "user_types"
)

// CIIU is an economic activity with its ISIC-derived code.
type CIIU struct {
	Activity string `yaml:"activity" json:"activity"`
	Code     string `yaml:"code" json:"code"`
}

// Country is a nationality with its international dialing prefix.
type Country struct {
	Name     string `yaml:"name" json:"name"`
	DialCode string `yaml:"dial_code" json:"dial_code"`
	Code     string `yaml:"code" json:"code"`
}

// Catalog is a read-only set of reference tables. It is safe for concurrent use.
type Catalog struct {
	tables    map[Name]Table
	ciiu      List[CIIU]
	countries List[Country]
}

type document struct {
	Version   int                 `yaml:"version"`
	CIIU      []CIIU              `yaml:"ciiu"`
	Countries []Country           `yaml:"countries"`
	Tables    map[string][]string `yaml:",inline"`
}

// Default returns the catalog built from the embedded tables. It is parsed once.
func Default() (*Catalog, error) {
	loadDefaultOnce.Do(func() {
		defaultCatalog, defaultLoadErr = Load(bytes.NewReader(embeddedCatalogYAML))
	})
	return defaultCatalog, defaultLoadErr
}

// Load parses a YAML catalog document. Every table in RequiredTables must be present
// and non-empty.
func Load(r io.Reader) (*Catalog, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", models.ErrInvalidCatalog, err)
	}

	c := &Catalog{tables: make(map[Name]Table, len(doc.Tables))}
	for name, values := range doc.Tables {
		c.tables[Name(name)] = NewList(values...)
	}

	for _, name := range RequiredTables() {
		if c.tables[name].Len() == 0 {
			return nil, fmt.Errorf("%w: table %q is missing or empty", models.ErrInvalidCatalog, name)
		}
	}
	if len(doc.CIIU) == 0 {
		return nil, fmt.Errorf("%w: table %q is missing or empty", models.ErrInvalidCatalog, "ciiu")
	}
	for i, entry := range doc.CIIU {
		if entry.Activity == "" || entry.Code == "" {
			return nil, fmt.Errorf("%w: ciiu entry %d is incomplete", models.ErrInvalidCatalog, i)
		}
	}
	if len(doc.Countries) == 0 {
		return nil, fmt.Errorf("%w: table %q is missing or empty", models.ErrInvalidCatalog, "countries")
	}
	for i, country := range doc.Countries {
		if country.Name == "" || country.DialCode == "" {
			return nil, fmt.Errorf("%w: country entry %d is incomplete", models.ErrInvalidCatalog, i)
		}
	}

	c.ciiu = NewList(doc.CIIU...)
	c.countries = NewList(doc.Countries...)
	return c, nil
}

// RequiredTables lists the string tables a catalog must provide.
func RequiredTables() []Name {
	return []Name{
		IDTypes, Cities, Jobs, EPS, ARL, HealthInsurers, BloodTypes, Genders,
		MaritalStatuses, ContractTypes, Institutions, Degrees, GivenNames, Surnames,
		StreetTypes, CompanyStems, CompanySuffixes, EmailDomains, Banks, CompanyTypes,
		Sectors, BusinessSizes, Certifications, PaymentTerms, UserTypes,
	}
}

// Table returns the named string table, or an empty one if it does not exist.
func (c *Catalog) Table(name Name) Table {
	return c.tables[name]
}

// CIIU returns the activity/code pairs.
func (c *Catalog) CIIU() List[CIIU] {
	return c.ciiu
}

// Countries returns the countries with their dial codes.
func (c *Catalog) Countries() List[Country] {
	return c.countries
}
