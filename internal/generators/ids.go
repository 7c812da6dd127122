package generators

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/kyc-co/synthforms/internal/catalog"
	"github.com/kyc-co/synthforms/internal/models"
	"github.com/kyc-co/synthforms/internal/observability"
	"github.com/kyc-co/synthforms/internal/utils"
)

const (
	cedulaMin   = 10000000
	cedulaMax   = 9999999999
	extranjMin  = 1000
	extranjMax  = 9999999999
	nitBaseMin  = 1000
	nitBaseMax  = 9999999999
	passportLen = 7
)

// IDType picks an identification type from the catalog.
func (g *Generator) IDType() models.IDType {
	return models.IDType(g.pick(catalog.IDTypes))
}

// IDNumber generates an identification number of type t. Unsupported types yield
// models.NotAvailable together with an error wrapping models.ErrUnsupportedIDType.
func (g *Generator) IDNumber(t models.IDType) (string, error) {
	switch t {
	case models.IDTypeCC:
		return strconv.FormatInt(g.IntRange(cedulaMin, cedulaMax), 10), nil
	case models.IDTypeCE:
		return strconv.FormatInt(g.IntRange(extranjMin, extranjMax), 10), nil
	case models.IDTypeNIT:
		base := strconv.FormatInt(g.IntRange(nitBaseMin, nitBaseMax), 10)
		return utils.FormatNIT(base)
	case models.IDTypePA:
		letters := strings.ToUpper(g.faker.Letter() + g.faker.Letter())
		return letters + g.faker.Numerify(strings.Repeat("#", passportLen)), nil
	default:
		g.logger.Warn("id type is not supported yet, using sentinel",
			zap.String("id_type", string(t)),
			zap.String("value", models.NotAvailable))
		observability.FieldFallbacks.WithLabelValues("id_number").Inc()
		return models.NotAvailable, fmt.Errorf("%w: %q", models.ErrUnsupportedIDType, t)
	}
}

// IDNumberOrSentinel is IDNumber with the error dropped: an unsupported type yields
// models.NotAvailable, still logged and counted by IDNumber.
func (g *Generator) IDNumberOrSentinel(t models.IDType) string {
	id, _ := g.IDNumber(t)
	return id
}
