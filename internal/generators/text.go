package generators

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/kyc-co/synthforms/internal/catalog"
)

// Name returns a Colombian-style full name: one given name and one or two surnames.
func (g *Generator) Name() string {
	given := g.pick(catalog.GivenNames)
	first := g.pick(catalog.Surnames)
	if g.Chance(0.7) {
		return given + " " + first + " " + g.pick(catalog.Surnames)
	}
	return given + " " + first
}

// Company returns a company name with a legal-form suffix.
func (g *Generator) Company() string {
	stem := g.pick(catalog.CompanyStems)
	if g.Chance(0.3) {
		stem += " " + g.pick(catalog.Surnames)
	}
	return stem + " " + g.pick(catalog.CompanySuffixes)
}

// Address returns an address in the Colombian grid notation, "Calle 45B # 12-34".
func (g *Generator) Address() string {
	street := g.pick(catalog.StreetTypes)
	number := g.Intn(1, 150)
	var letter string
	if g.Chance(0.25) {
		letter = g.faker.RandomString([]string{"A", "B", "C", "D"})
	}
	cross := g.Intn(1, 120)
	plate := g.Intn(1, 99)
	address := fmt.Sprintf("%s %d%s # %d-%02d", street, number, letter, cross, plate)
	if g.Chance(0.2) {
		address += fmt.Sprintf(" Apto %d", g.Intn(101, 1504))
	}
	return address
}

// Email returns an ASCII address at a free mail domain.
func (g *Generator) Email() string {
	given := ASCIIFold(strings.ToLower(strings.Fields(g.pick(catalog.GivenNames))[0]))
	surname := ASCIIFold(strings.ToLower(strings.Fields(g.pick(catalog.Surnames))[0]))

	var local string
	switch g.Intn(0, 3) {
	case 0:
		local = given + "." + surname
	case 1:
		local = given + surname
	case 2:
		local = given[:1] + surname
	default:
		local = given + "_" + surname
	}
	if g.Bool() {
		local += fmt.Sprintf("%d", g.Intn(1, 99))
	}
	return local + "@" + g.pick(catalog.EmailDomains)
}

// ASCIIFold strips diacritics and drops any remaining non-ASCII rune, "Muñoz" -> "Munoz".
func ASCIIFold(s string) string {
	// transformers keep state, so build one per call
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
		norm.NFC,
	)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
