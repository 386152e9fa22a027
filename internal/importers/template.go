package importers

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const templateSheet = "Candidatos"

// TemplateFormat selects the template file type.
type TemplateFormat string

const (
	TemplateCSV  TemplateFormat = "csv"
	TemplateXLSX TemplateFormat = "xlsx"
)

// ContentType returns the MIME type of the template format.
func (f TemplateFormat) ContentType() string {
	if f == TemplateXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// FileName returns the download name of the template.
func (f TemplateFormat) FileName() string {
	return "modelo_importacao_candidatos." + string(f)
}

var templateExamples = []map[Field]string{
	{
		FieldFullName:          "Maria Aparecida da Silva",
		FieldEmail:             "maria.silva@example.com",
		FieldPhone:             "(51) 99999-1234",
		FieldCity:              "Porto Alegre/RS",
		FieldMaritalStatus:     "Solteira",
		FieldChildrenCount:     "0",
		FieldHasLicense:        "Sim, categoria B",
		FieldIsStudying:        "Sim",
		FieldEducation:         "Administração",
		FieldSchoolingLevel:    "Superior incompleto",
		FieldInstitution:       "UFRGS",
		FieldGraduationDate:    "12/2026",
		FieldExperience:        "Auxiliar administrativa por 2 anos",
		FieldInterestAreas:     "Administrativo, Recursos Humanos",
		FieldSource:            "LinkedIn",
		FieldSalaryExpectation: "R$ 2.500,00",
		FieldCanRelocate:       "Não",
		FieldTypeOfApp:         "Vaga específica",
		FieldOriginalTimestamp: "2024-03-01 09:15:00",
		FieldAge:               "24",
	},
	{
		FieldFullName:          "João Pedro Oliveira",
		FieldEmail:             "joao.oliveira@example.com",
		FieldEmailSecondary:    "jp.oliveira@example.org",
		FieldPhone:             "(51) 98888-5678",
		FieldCity:              "Canoas/RS",
		FieldMaritalStatus:     "Casado",
		FieldChildrenCount:     "2",
		FieldHasLicense:        "Não",
		FieldIsStudying:        "Não",
		FieldSchoolingLevel:    "Ensino médio completo",
		FieldExperience:        "Operador de logística, conferente",
		FieldCourses:           "Operador de empilhadeira",
		FieldInterestAreas:     "Logística",
		FieldCVURL:             "https://example.com/cv/joao.pdf",
		FieldSource:            "Indicação",
		FieldReferral:          "Carlos Souza",
		FieldSalaryExpectation: "A combinar",
		FieldCanRelocate:       "Sim",
		FieldReferences:        "Transportes Sul, (51) 3333-0000",
		FieldTypeOfApp:         "Banco de talentos",
		FieldOriginalTimestamp: "2024-03-02 14:40:00",
		FieldAge:               "35",
	},
	{
		FieldFullName:          "Ana Beatriz Costa",
		FieldEmail:             "ana.costa@example.com",
		FieldPhone:             "(51) 97777-4321",
		FieldCity:              "São Leopoldo/RS",
		FieldIsStudying:        "Sim",
		FieldEducation:         "Sistemas de Informação",
		FieldSchoolingLevel:    "Superior em andamento",
		FieldInstitution:       "Unisinos",
		FieldCertifications:    "AWS Cloud Practitioner",
		FieldInterestAreas:     "Tecnologia, Design",
		FieldPortfolioURL:      "https://example.com/portfolio/ana",
		FieldSource:            "Instagram",
		FieldTypeOfApp:         "Estágio",
		FieldFreeField:         "Disponível no turno da tarde",
		FieldOriginalTimestamp: "2024-03-03 18:05:00",
		FieldExternalID:        "FORM-0003",
		FieldAge:               "21",
	},
}

// TemplateHeaders returns the template header row.
func TemplateHeaders() []string {
	headers := make([]string, len(FieldLabels))
	for i, fl := range FieldLabels {
		headers[i] = fl.Label
	}
	return headers
}

// TemplateRows returns the example rows aligned with TemplateHeaders.
func TemplateRows() [][]string {
	rows := make([][]string, len(templateExamples))
	for i, example := range templateExamples {
		row := make([]string, len(FieldLabels))
		for j, fl := range FieldLabels {
			row[j] = example[fl.Field]
		}
		rows[i] = row
	}
	return rows
}

// WriteTemplate writes the template in the requested format.
func WriteTemplate(w io.Writer, format TemplateFormat) error {
	switch format {
	case TemplateCSV:
		return WriteTemplateCSV(w)
	case TemplateXLSX:
		return WriteTemplateXLSX(w)
	}
	return fmt.Errorf("%w: template format %q", ErrUnsupportedFormat, format)
}

// WriteTemplateCSV writes the header row and the example rows as CSV.
func WriteTemplateCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(TemplateHeaders()); err != nil {
		return fmt.Errorf("failed to write template header: %w", err)
	}
	if err := cw.WriteAll(TemplateRows()); err != nil {
		return fmt.Errorf("failed to write template rows: %w", err)
	}
	return nil
}

// WriteTemplateXLSX writes the template as a single-sheet workbook with a bold header row.
func WriteTemplateXLSX(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", templateSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	rows := append([][]string{TemplateHeaders()}, TemplateRows()...)
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(templateSheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("failed to write template row %d: %w", i+1, err)
		}
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	lastCell, err := excelize.CoordinatesToCellName(len(FieldLabels), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(templateSheet, "A1", lastCell, style); err != nil {
		return fmt.Errorf("failed to style header row: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
