package models

import "errors"

// NotAvailable is the value emitted in place of an identifier that could not be generated.
const NotAvailable = "NaN"

// Error constants for form generation
var (
	ErrUnsupportedIDType = errors.New("id type is not supported")
	ErrInvalidAgeRange   = errors.New("invalid age range")
	ErrUnknownFormType   = errors.New("unknown form type")
	ErrUnknownField      = errors.New("unknown field")
	ErrInvalidSeed       = errors.New("invalid seed")
	ErrInvalidCount      = errors.New("invalid batch count")
	ErrInvalidCatalog    = errors.New("invalid reference catalog")
	ErrInconsistentParty = errors.New("counterparty entity kind does not match its payload")
)
