package models

import "fmt"

// EmployeeForm is a synthetic "formulario de conocimiento de empleados".
type EmployeeForm struct {
	Envelope            `bson:",inline"`
	BasicInfo           EmployeeBasicInfo     `json:"basic_info" bson:"basic_info"`
	SocialSecurity      SocialSecurity        `json:"social_security" bson:"social_security"`
	LaboralInformation  []LaboralInformation  `json:"laboral_information" bson:"laboral_information"`
	AcademicInformation []AcademicInformation `json:"academic_information" bson:"academic_information"`
}

// EmployeeBasicInfo holds the employee's identity data.
type EmployeeBasicInfo struct {
	IDType            IDType `json:"id_type" bson:"id_type"`
	IDNumber          string `json:"id_number" bson:"id_number"`
	Address           string `json:"address" bson:"address"`
	Birthdate         Date   `json:"birthdate" bson:"birthdate"`
	City              string `json:"city" bson:"city"`
	IDExpeditionDate  Date   `json:"id_expedition_date" bson:"id_expedition_date"`
	MaritalStatus     string `json:"marital_status" bson:"marital_status"`
	Nationality       string `json:"nationality" bson:"nationality"`
	Phone             string `json:"phone" bson:"phone"`
	IDExpeditionPlace string `json:"id_expedition_place" bson:"id_expedition_place"`
	BloodType         string `json:"blood_type" bson:"blood_type"`
	Name              string `json:"name" bson:"name"`
	Genre             string `json:"genre" bson:"genre"`
	Position          string `json:"position" bson:"position"`
	Email             string `json:"email" bson:"email"`
}

// SocialSecurity groups the employee's health and occupational-risk affiliations.
type SocialSecurity struct {
	EPS             EPSAffiliation `json:"eps" bson:"eps"`
	ARL             Affiliation    `json:"arl" bson:"arl"`
	HealthInsurance Affiliation    `json:"health_insurance" bson:"health_insurance"`
}

// Affiliation is a named insurer with an active flag.
type Affiliation struct {
	Name     string `json:"name" bson:"name"`
	IsActive bool   `json:"isActive" bson:"isActive"`
}

// EPSAffiliation additionally records whether the employee contributes to the EPS.
type EPSAffiliation struct {
	Name          string `json:"name" bson:"name"`
	IsActive      bool   `json:"isActive" bson:"isActive"`
	IsContributor bool   `json:"isContributor" bson:"isContributor"`
}

// LeaderInformation is the employee's direct supervisor.
type LeaderInformation struct {
	Name      string `json:"name" bson:"name"`
	Cellphone string `json:"cellphone" bson:"cellphone"`
	Position  string `json:"position" bson:"position"`
}

// LaboralInformation is one entry of employment history.
type LaboralInformation struct {
	LeaderInformation LeaderInformation `json:"leader_information" bson:"leader_information"`
	ContractStartDate Date              `json:"contract_start_date" bson:"contract_start_date"`
	ContractEndDate   Date              `json:"contract_end_date" bson:"contract_end_date"`
	Address           string            `json:"address" bson:"address"`
	City              string            `json:"city" bson:"city"`
	Phone             string            `json:"phone" bson:"phone"`
	ContractType      string            `json:"contractType" bson:"contractType"`
	Company           string            `json:"company" bson:"company"`
	Position          string            `json:"position" bson:"position"`
}

// AcademicInformation is one entry of academic history.
type AcademicInformation struct {
	Date        Date   `json:"date" bson:"date"`
	City        string `json:"city" bson:"city"`
	Phone       string `json:"phone" bson:"phone"`
	Institution string `json:"institution" bson:"institution"`
	Degree      string `json:"degree" bson:"degree"`
	ContactInfo string `json:"contact_info" bson:"contact_info"`
	Register    string `json:"register" bson:"register"`
}

// Validate checks the date derivations between the blocks of the form.
func (f *EmployeeForm) Validate() error {
	b := f.BasicInfo.Birthdate
	earliest := b.AddYMD(18, 0, 0)
	if f.BasicInfo.IDExpeditionDate.Before(earliest.Time) || f.BasicInfo.IDExpeditionDate.After(earliest.AddYMD(0, 0, 60).Time) {
		return fmt.Errorf("id expedition date %s outside [%s, +60d]", f.BasicInfo.IDExpeditionDate, earliest)
	}
	for i, job := range f.LaboralInformation {
		if job.ContractEndDate.Before(job.ContractStartDate.Time) {
			return fmt.Errorf("laboral information %d: contract ends %s before it starts %s", i, job.ContractEndDate, job.ContractStartDate)
		}
		if job.ContractStartDate.Before(b.Time) {
			return fmt.Errorf("laboral information %d: contract starts before birthdate", i)
		}
	}
	for i, a := range f.AcademicInformation {
		if a.Date.Before(b.Time) {
			return fmt.Errorf("academic information %d: dated before birthdate", i)
		}
	}
	return nil
}
