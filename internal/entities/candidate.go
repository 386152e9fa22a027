package entities

import (
	"time"

	"gorm.io/gorm"
)

// StatusRegistered is the initial status of every candidate, whether they
// applied through the public form or arrived through a bulk import.
const StatusRegistered = "Inscrito"

// Candidate is a stored applicant profile. Profile attributes are free text:
// they come from human-filled forms and arbitrary spreadsheets and are kept
// as strings. JSON names match the canonical field identifiers used by the
// import column mapping.
type Candidate struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FullName       string `gorm:"index;size:256" json:"fullName"`
	Email          string `gorm:"index;size:256" json:"email"`
	EmailSecondary string `gorm:"size:256" json:"email_secondary,omitempty"`
	Phone          string `gorm:"size:64" json:"phone,omitempty"`
	City           string `gorm:"index;size:128" json:"city,omitempty"`
	MaritalStatus  string `gorm:"size:64" json:"maritalStatus,omitempty"`
	ChildrenCount  string `gorm:"size:32" json:"childrenCount,omitempty"`
	HasLicense     string `gorm:"size:64" json:"hasLicense,omitempty"`
	PhotoURL       string `gorm:"size:2048" json:"photoUrl,omitempty"`
	IsStudying     string `gorm:"size:64" json:"isStudying,omitempty"`

	Education      string `gorm:"type:text" json:"education,omitempty"`
	SchoolingLevel string `gorm:"size:128" json:"schoolingLevel,omitempty"`
	Institution    string `gorm:"size:256" json:"institution,omitempty"`
	GraduationDate string `gorm:"size:64" json:"graduationDate,omitempty"`
	Experience     string `gorm:"type:text" json:"experience,omitempty"`
	Courses        string `gorm:"type:text" json:"courses,omitempty"`
	Certifications string `gorm:"type:text" json:"certifications,omitempty"`
	InterestAreas  string `gorm:"size:512" json:"interestAreas,omitempty"`

	CVURL             string `gorm:"size:2048" json:"cvUrl,omitempty"`
	PortfolioURL      string `gorm:"size:2048" json:"portfolioUrl,omitempty"`
	Source            string `gorm:"index;size:128" json:"source,omitempty"`
	Referral          string `gorm:"size:256" json:"referral,omitempty"`
	SalaryExpectation string `gorm:"size:128" json:"salaryExpectation,omitempty"`
	CanRelocate       string `gorm:"size:64" json:"canRelocate,omitempty"`
	References        string `gorm:"type:text" json:"references,omitempty"`
	TypeOfApp         string `gorm:"size:128" json:"typeOfApp,omitempty"`
	FreeField         string `gorm:"type:text" json:"freeField,omitempty"`
	OriginalTimestamp string `gorm:"size:64" json:"original_timestamp,omitempty"`
	ExternalID        string `gorm:"size:256" json:"external_id,omitempty"`
	Age               string `gorm:"size:16" json:"age,omitempty"`
	Status            string `gorm:"index;size:64" json:"status"`

	// Provenance, set only by bulk import.
	Imported   bool       `gorm:"default:false" json:"imported"`
	ImportTag  string     `gorm:"index;size:256" json:"importTag,omitempty"`
	ImportDate *time.Time `json:"importDate,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Candidate) TableName() string {
	return "candidates"
}
