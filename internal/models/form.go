package models

import (
	"fmt"
	"strings"
)

// DocumentType identifies a synthetic form template.
type DocumentType string

const (
	DocumentTypeEmployeeKnowledge     DocumentType = "formulario_conocimiento_empleados"
	DocumentTypeCounterpartyKnowledge DocumentType = "formulario_conocimiento"
)

// DocumentTypes lists the supported templates in a stable order.
func DocumentTypes() []DocumentType {
	return []DocumentType{DocumentTypeEmployeeKnowledge, DocumentTypeCounterpartyKnowledge}
}

// ShortName returns the path-friendly name used by the API and CLI.
func (t DocumentType) ShortName() string {
	switch t {
	case DocumentTypeEmployeeKnowledge:
		return "employee"
	case DocumentTypeCounterpartyKnowledge:
		return "counterparty"
	default:
		return string(t)
	}
}

// ParseDocumentType accepts either the short name or the full document type tag.
func ParseDocumentType(s string) (DocumentType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "employee", string(DocumentTypeEmployeeKnowledge):
		return DocumentTypeEmployeeKnowledge, nil
	case "counterparty", string(DocumentTypeCounterpartyKnowledge):
		return DocumentTypeCounterpartyKnowledge, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormType, s)
	}
}

// IDType is a Colombian identification document type.
type IDType string

const (
	IDTypeCC  IDType = "CC"  // cédula de ciudadanía
	IDTypeCE  IDType = "CE"  // cédula de extranjería
	IDTypeNIT IDType = "NIT" // tax id with check digit
	IDTypePA  IDType = "PA"  // passport
)

// Envelope is the header shared by every generated form.
type Envelope struct {
	ID             string       `json:"sg_id" bson:"_id"`
	DocumentType   DocumentType `json:"sg_document_type" bson:"sg_document_type"`
	CreatedAt      Date         `json:"sg_create_at" bson:"sg_create_at"`
	UpdatedAt      Date         `json:"sg_update_at" bson:"sg_update_at"`
	AdditionalInfo *string      `json:"sg_additional_info" bson:"sg_additional_info"`
	FormDate       Date         `json:"form_date" bson:"form_date"`
	Seed           int64        `json:"seed,string" bson:"seed"`
}

// Header returns the envelope; it lets callers handle any form generically.
func (e Envelope) Header() Envelope {
	return e
}

// Form is implemented by every generated document.
type Form interface {
	Header() Envelope
}

// NewForm returns an empty form of the given type, ready to be decoded into.
func NewForm(t DocumentType) (Form, error) {
	switch t {
	case DocumentTypeEmployeeKnowledge:
		return &EmployeeForm{}, nil
	case DocumentTypeCounterpartyKnowledge:
		return &CounterpartyForm{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormType, t)
	}
}
