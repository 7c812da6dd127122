package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocumentType(t *testing.T) {
	tests := []struct {
		input    string
		expected DocumentType
		wantErr  bool
	}{
		{input: "employee", expected: DocumentTypeEmployeeKnowledge},
		{input: " Counterparty ", expected: DocumentTypeCounterpartyKnowledge},
		{input: "formulario_conocimiento_empleados", expected: DocumentTypeEmployeeKnowledge},
		{input: "formulario_conocimiento", expected: DocumentTypeCounterpartyKnowledge},
		{input: "invoice", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDocumentType(tt.input)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrUnknownFormType))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, got, mustParse(t, got.ShortName()))
		})
	}
}

func mustParse(t *testing.T, s string) DocumentType {
	t.Helper()
	dt, err := ParseDocumentType(s)
	require.NoError(t, err)
	return dt
}

func TestEnvelope_JSONKeys(t *testing.T) {
	env := Envelope{
		ID:           "4f1c9a52-3d55-4a3e-9e0c-2b7f3f6f8d11",
		DocumentType: DocumentTypeEmployeeKnowledge,
		CreatedAt:    mustDate(t, "2024-06-01"),
		UpdatedAt:    mustDate(t, "2024-06-01"),
		FormDate:     mustDate(t, "2024-05-20"),
		Seed:         9007199254740993,
	}

	data, err := json.Marshal(EmployeeForm{Envelope: env})
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, "formulario_conocimiento_empleados", m["sg_document_type"])
	assert.Equal(t, "2024-06-01", m["sg_create_at"])
	assert.Equal(t, "2024-05-20", m["form_date"])
	assert.Nil(t, m["sg_additional_info"])
	assert.Contains(t, m, "sg_additional_info")
	// seeds above 2^53 survive JavaScript consumers as strings
	assert.Equal(t, "9007199254740993", m["seed"])
	assert.Contains(t, m, "basic_info")
}

func TestEmployeeForm_Validate(t *testing.T) {
	valid := func() *EmployeeForm {
		return &EmployeeForm{
			BasicInfo: EmployeeBasicInfo{
				Birthdate:        mustDate(t, "1990-01-10"),
				IDExpeditionDate: mustDate(t, "2008-02-01"),
			},
			LaboralInformation: []LaboralInformation{{
				ContractStartDate: mustDate(t, "2012-04-01"),
				ContractEndDate:   mustDate(t, "2015-04-01"),
			}},
			AcademicInformation: []AcademicInformation{{Date: mustDate(t, "2011-12-01")}},
		}
	}

	require.NoError(t, valid().Validate())

	early := valid()
	early.BasicInfo.IDExpeditionDate = mustDate(t, "2008-01-09")
	assert.Error(t, early.Validate())

	late := valid()
	late.BasicInfo.IDExpeditionDate = mustDate(t, "2008-03-11")
	assert.Error(t, late.Validate())

	inverted := valid()
	inverted.LaboralInformation[0].ContractEndDate = mustDate(t, "2011-01-01")
	assert.Error(t, inverted.Validate())

	academic := valid()
	academic.AcademicInformation[0].Date = mustDate(t, "1989-01-01")
	assert.Error(t, academic.Validate())
}

func TestNewForm(t *testing.T) {
	employee, err := NewForm(DocumentTypeEmployeeKnowledge)
	require.NoError(t, err)
	assert.IsType(t, &EmployeeForm{}, employee)

	counterparty, err := NewForm(DocumentTypeCounterpartyKnowledge)
	require.NoError(t, err)
	assert.IsType(t, &CounterpartyForm{}, counterparty)

	form, err := NewForm("employee")
	assert.Nil(t, form)
	assert.True(t, errors.Is(err, ErrUnknownFormType))
}
