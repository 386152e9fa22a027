package importers

import (
	"errors"
	"fmt"

	"github.com/mrlokans/recruiter/internal/entities"
)

// ErrUnknownField is returned when a mapping targets a name outside the canonical field set.
var ErrUnknownField = errors.New("unknown candidate field")

// Field identifies a canonical candidate attribute a spreadsheet column can be mapped to.
type Field string

const (
	FieldFullName          Field = "fullName"
	FieldEmail             Field = "email"
	FieldEmailSecondary    Field = "email_secondary"
	FieldPhone             Field = "phone"
	FieldCity              Field = "city"
	FieldMaritalStatus     Field = "maritalStatus"
	FieldChildrenCount     Field = "childrenCount"
	FieldHasLicense        Field = "hasLicense"
	FieldPhotoURL          Field = "photoUrl"
	FieldIsStudying        Field = "isStudying"
	FieldEducation         Field = "education"
	FieldSchoolingLevel    Field = "schoolingLevel"
	FieldInstitution       Field = "institution"
	FieldGraduationDate    Field = "graduationDate"
	FieldExperience        Field = "experience"
	FieldCourses           Field = "courses"
	FieldCertifications    Field = "certifications"
	FieldInterestAreas     Field = "interestAreas"
	FieldCVURL             Field = "cvUrl"
	FieldPortfolioURL      Field = "portfolioUrl"
	FieldSource            Field = "source"
	FieldReferral          Field = "referral"
	FieldSalaryExpectation Field = "salaryExpectation"
	FieldCanRelocate       Field = "canRelocate"
	FieldReferences        Field = "references"
	FieldTypeOfApp         Field = "typeOfApp"
	FieldFreeField         Field = "freeField"
	FieldOriginalTimestamp Field = "original_timestamp"
	FieldExternalID        Field = "external_id"
	FieldAge               Field = "age"
	FieldStatus            Field = "status"
)

// RequiredFields must each be mapped to some column before an import can commit.
var RequiredFields = []Field{FieldFullName, FieldEmail}

// FieldLabel pairs a field with the column title used in the import template.
type FieldLabel struct {
	Field Field  `json:"field"`
	Label string `json:"label"`
}

// FieldLabels lists every mappable field in template column order. The
// exact-match step of header inference and the template header row both
// read from this table.
var FieldLabels = []FieldLabel{
	{FieldFullName, "Nome Completo"},
	{FieldEmail, "E-mail"},
	{FieldEmailSecondary, "E-mail Secundário"},
	{FieldPhone, "Telefone"},
	{FieldCity, "Cidade"},
	{FieldMaritalStatus, "Estado Civil"},
	{FieldChildrenCount, "Quantidade de Filhos"},
	{FieldHasLicense, "Possui CNH"},
	{FieldPhotoURL, "Foto (URL)"},
	{FieldIsStudying, "Estudando Atualmente"},
	{FieldEducation, "Formação"},
	{FieldSchoolingLevel, "Escolaridade"},
	{FieldInstitution, "Instituição de Ensino"},
	{FieldGraduationDate, "Data de Conclusão"},
	{FieldExperience, "Experiência Profissional"},
	{FieldCourses, "Cursos"},
	{FieldCertifications, "Certificações"},
	{FieldInterestAreas, "Áreas de Interesse"},
	{FieldCVURL, "Currículo (URL)"},
	{FieldPortfolioURL, "Portfólio (URL)"},
	{FieldSource, "Onde nos Encontrou"},
	{FieldReferral, "Indicação"},
	{FieldSalaryExpectation, "Pretensão Salarial"},
	{FieldCanRelocate, "Disponibilidade para Mudança"},
	{FieldReferences, "Referências"},
	{FieldTypeOfApp, "Tipo de Candidatura"},
	{FieldFreeField, "Campo Livre"},
	{FieldOriginalTimestamp, "Data de Inscrição Original"},
	{FieldExternalID, "ID Externo"},
	{FieldAge, "Idade"},
	{FieldStatus, "Status"},
}

// Fields returns every canonical field in template order.
func Fields() []Field {
	fields := make([]Field, len(FieldLabels))
	for i, fl := range FieldLabels {
		fields[i] = fl.Field
	}
	return fields
}

// ParseField validates s as a canonical field identifier.
func ParseField(s string) (Field, error) {
	for _, fl := range FieldLabels {
		if string(fl.Field) == s {
			return fl.Field, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// LabelFor returns the template column title of f, or the identifier itself
// when f is not a canonical field.
func LabelFor(f Field) string {
	for _, fl := range FieldLabels {
		if fl.Field == f {
			return fl.Label
		}
	}
	return string(f)
}

// fieldRef returns a pointer to the Candidate attribute backing f.
func fieldRef(c *entities.Candidate, f Field) *string {
	switch f {
	case FieldFullName:
		return &c.FullName
	case FieldEmail:
		return &c.Email
	case FieldEmailSecondary:
		return &c.EmailSecondary
	case FieldPhone:
		return &c.Phone
	case FieldCity:
		return &c.City
	case FieldMaritalStatus:
		return &c.MaritalStatus
	case FieldChildrenCount:
		return &c.ChildrenCount
	case FieldHasLicense:
		return &c.HasLicense
	case FieldPhotoURL:
		return &c.PhotoURL
	case FieldIsStudying:
		return &c.IsStudying
	case FieldEducation:
		return &c.Education
	case FieldSchoolingLevel:
		return &c.SchoolingLevel
	case FieldInstitution:
		return &c.Institution
	case FieldGraduationDate:
		return &c.GraduationDate
	case FieldExperience:
		return &c.Experience
	case FieldCourses:
		return &c.Courses
	case FieldCertifications:
		return &c.Certifications
	case FieldInterestAreas:
		return &c.InterestAreas
	case FieldCVURL:
		return &c.CVURL
	case FieldPortfolioURL:
		return &c.PortfolioURL
	case FieldSource:
		return &c.Source
	case FieldReferral:
		return &c.Referral
	case FieldSalaryExpectation:
		return &c.SalaryExpectation
	case FieldCanRelocate:
		return &c.CanRelocate
	case FieldReferences:
		return &c.References
	case FieldTypeOfApp:
		return &c.TypeOfApp
	case FieldFreeField:
		return &c.FreeField
	case FieldOriginalTimestamp:
		return &c.OriginalTimestamp
	case FieldExternalID:
		return &c.ExternalID
	case FieldAge:
		return &c.Age
	case FieldStatus:
		return &c.Status
	}
	return nil
}

// SetField assigns value to the attribute of c named by f.
// It reports false when f is not a canonical field.
func SetField(c *entities.Candidate, f Field, value string) bool {
	ref := fieldRef(c, f)
	if ref == nil {
		return false
	}
	*ref = value
	return true
}

// GetField reads the attribute of c named by f.
func GetField(c *entities.Candidate, f Field) string {
	if ref := fieldRef(c, f); ref != nil {
		return *ref
	}
	return ""
}
