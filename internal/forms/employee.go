package forms

import (
	"github.com/kyc-co/synthforms/internal/generators"
	"github.com/kyc-co/synthforms/internal/models"
)

// EmployeeKnowledge builds a "formulario de conocimiento de empleados". A zero seed
// draws a fresh one, recorded in the envelope.
func (b *Builder) EmployeeKnowledge(seed int64) (*models.EmployeeForm, error) {
	g, err := b.generator(seed)
	if err != nil {
		return nil, err
	}

	form := &models.EmployeeForm{
		Envelope: envelope(g, models.DocumentTypeEmployeeKnowledge),
	}

	basic := employeeBasicInfo(g)
	form.BasicInfo = basic
	form.SocialSecurity = models.SocialSecurity{
		EPS: models.EPSAffiliation{
			Name:          g.EPS(),
			IsActive:      g.Bool(),
			IsContributor: g.Bool(),
		},
		ARL:             models.Affiliation{Name: g.ARL(), IsActive: g.Bool()},
		HealthInsurance: models.Affiliation{Name: g.HealthInsurance(), IsActive: g.Bool()},
	}
	form.LaboralInformation = []models.LaboralInformation{laboralInformation(g, basic.Birthdate)}
	form.AcademicInformation = []models.AcademicInformation{academicInformation(g, basic.Birthdate)}

	return form, nil
}

func employeeBasicInfo(g *generators.Generator) models.EmployeeBasicInfo {
	var info models.EmployeeBasicInfo
	info.IDType = g.IDType()
	info.IDNumber = g.IDNumberOrSentinel(info.IDType)
	info.Address = g.Address()
	info.Birthdate = g.DefaultBirthdate()
	info.City = g.City()
	info.IDExpeditionDate = g.IDExpeditionDate(info.Birthdate)
	info.MaritalStatus = g.MaritalStatus()
	info.Nationality = g.Nationality()
	info.Phone = g.Phone(true)
	info.IDExpeditionPlace = g.City()
	info.BloodType = g.BloodType()
	info.Name = g.Name()
	info.Genre = g.Gender()
	info.Position = g.Job()
	info.Email = g.Email()
	return info
}

func laboralInformation(g *generators.Generator, birthdate models.Date) models.LaboralInformation {
	var job models.LaboralInformation
	job.LeaderInformation = models.LeaderInformation{
		Name:      g.Name(),
		Cellphone: g.Phone(true),
		Position:  g.Job(),
	}
	job.ContractStartDate = g.ContractStartDate(birthdate)
	job.ContractEndDate = g.ContractEndDate(job.ContractStartDate)
	job.Address = g.Address()
	job.City = g.City()
	job.Phone = g.Phone(true)
	job.ContractType = g.ContractType()
	job.Company = g.Company()
	job.Position = g.Job()
	return job
}

func academicInformation(g *generators.Generator, birthdate models.Date) models.AcademicInformation {
	var study models.AcademicInformation
	study.Date = g.ContractStartDate(birthdate)
	study.City = g.City()
	study.Phone = g.Phone(true)
	study.Institution = g.Institution()
	study.Degree = g.Degree()
	study.ContactInfo = g.Name()
	study.Register = g.IDNumberOrSentinel(models.IDTypeCC)
	return study
}
