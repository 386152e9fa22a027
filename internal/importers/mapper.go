package importers

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/mrlokans/recruiter/internal/normalize"
)

// ErrMissingRequiredMapping is returned when fullName or email is not mapped to any column.
var ErrMissingRequiredMapping = errors.New("required fields are not mapped")

// Mapping associates raw headers with canonical fields. Headers absent from
// the map are ignored during reconciliation.
type Mapping map[string]Field

// Set maps header to field. An empty field removes the header from the mapping.
func (m Mapping) Set(header string, field Field) {
	if field == "" {
		delete(m, header)
		return
	}
	m[header] = field
}

// Has reports whether any header is mapped to field.
func (m Mapping) Has(field Field) bool {
	for _, f := range m {
		if f == field {
			return true
		}
	}
	return false
}

// MissingRequired returns the required fields no header maps to.
func (m Mapping) MissingRequired() []Field {
	var missing []Field
	for _, f := range RequiredFields {
		if !m.Has(f) {
			missing = append(missing, f)
		}
	}
	return missing
}

// Validate returns ErrMissingRequiredMapping naming the unmapped required fields.
func (m Mapping) Validate() error {
	missing := m.MissingRequired()
	if len(missing) == 0 {
		return nil
	}
	names := make([]string, len(missing))
	for i, f := range missing {
		names[i] = string(f)
	}
	return fmt.Errorf("%w: %s", ErrMissingRequiredMapping, strings.Join(names, ", "))
}

// Headers returns the mapped headers in lexical order.
func (m Mapping) Headers() []string {
	headers := make([]string, 0, len(m))
	for h := range m {
		headers = append(headers, h)
	}
	sort.Strings(headers)
	return headers
}

// Clone returns an independent copy of m.
func (m Mapping) Clone() Mapping {
	out := make(Mapping, len(m))
	for h, f := range m {
		out[h] = f
	}
	return out
}

// InferMapping guesses a field for every header. Headers nothing matches are left out.
func InferMapping(headers []string) Mapping {
	m := make(Mapping, len(headers))
	for _, h := range headers {
		if f, ok := InferField(h); ok {
			m[h] = f
		}
	}
	return m
}

// InferField guesses the canonical field for one header. The exact label
// lookup runs first, then keyword overlap against the label table, then the
// ordered rule table. Each step returns its first match.
func InferField(header string) (Field, bool) {
	key := headerKey(header)
	if key == "" {
		return "", false
	}

	for _, l := range exactIndex {
		if l.text == key {
			return l.field, true
		}
	}

	if f, ok := matchKeywords(key); ok {
		return f, true
	}

	for _, r := range headerRules {
		if r.match(key) {
			return r.field, true
		}
	}

	return "", false
}

// headerKey folds case and accents, collapses whitespace and strips a
// trailing colon or question mark.
func headerKey(s string) string {
	s = strings.Join(strings.Fields(normalize.Fold(s)), " ")
	s = strings.TrimRight(s, ":?")
	return strings.TrimSpace(s)
}

// Words shorter than this never count as keywords.
const minKeywordLen = 4

func keywords(s string) []string {
	var out []string
	for _, w := range strings.Fields(s) {
		w = strings.Trim(w, "()[]{}:;,.?!\"'")
		if utf8.RuneCountInString(w) >= minKeywordLen {
			out = append(out, w)
		}
	}
	return out
}

// headerAliases are column titles common in form exports that only match
// exactly. They take no part in keyword overlap.
var headerAliases = []FieldLabel{
	{FieldOriginalTimestamp, "Carimbo de data/hora"},
}

type indexedLabel struct {
	field    Field
	text     string
	keywords []string
}

var (
	labelIndex = indexLabels(FieldLabels)
	exactIndex = append(indexLabels(FieldLabels), indexLabels(headerAliases)...)
)

func indexLabels(labels []FieldLabel) []indexedLabel {
	idx := make([]indexedLabel, len(labels))
	for i, fl := range labels {
		text := headerKey(fl.Label)
		idx[i] = indexedLabel{field: fl.Field, text: text, keywords: keywords(text)}
	}
	return idx
}

// matchKeywords walks the labels in declaration order and returns the first
// one sharing a keyword with the header, either way round. A header longer
// than three characters also matches a label when one text contains the other.
func matchKeywords(key string) (Field, bool) {
	words := keywords(key)
	long := utf8.RuneCountInString(key) >= minKeywordLen

	for _, l := range labelIndex {
		for _, lw := range l.keywords {
			for _, hw := range words {
				if strings.Contains(hw, lw) || strings.Contains(lw, hw) {
					return l.field, true
				}
			}
		}
		if long && (strings.Contains(key, l.text) || strings.Contains(l.text, key)) {
			return l.field, true
		}
	}

	return "", false
}

// headerRule maps a header to field when match accepts the folded header.
type headerRule struct {
	field Field
	match func(key string) bool
}

func containsAny(phrases ...string) func(string) bool {
	return func(key string) bool {
		for _, p := range phrases {
			if strings.Contains(key, p) {
				return true
			}
		}
		return false
	}
}

func hasToken(tokens ...string) func(string) bool {
	return func(key string) bool {
		for _, w := range strings.FieldsFunc(key, isTokenSeparator) {
			for _, t := range tokens {
				if w == t {
					return true
				}
			}
		}
		return false
	}
}

func isTokenSeparator(r rune) bool {
	switch r {
	case ' ', '/', '-', '_', '(', ')', '.', ',', ':':
		return true
	}
	return false
}

func either(preds ...func(string) bool) func(string) bool {
	return func(key string) bool {
		for _, p := range preds {
			if p(key) {
				return true
			}
		}
		return false
	}
}

// headerRules is evaluated top to bottom and the first match wins, so more
// specific phrases sit above the generic ones that would also match.
var headerRules = []headerRule{
	{FieldFullName, func(key string) bool {
		if strings.Contains(key, "nome completo") {
			return true
		}
		return strings.Contains(key, "nome") &&
			!containsAny("instituicao", "social", "empresa", "mae", "pai", "escola", "faculdade")(key)
	}},
	{FieldEmailSecondary, containsAny("e-mail secundario", "email secundario", "e-mail alternativo", "email alternativo", "outro e-mail", "outro email")},
	{FieldEmail, containsAny("e-mail", "email", "correio eletronico")},
	{FieldPhone, containsAny("telefone", "celular", "whatsapp", "fone", "contato")},
	{FieldCity, containsAny("cidade", "municipio", "onde mora", "reside", "localidade")},
	{FieldMaritalStatus, containsAny("estado civil", "civil")},
	{FieldChildrenCount, containsAny("filho")},
	{FieldHasLicense, containsAny("cnh", "habilitacao", "carteira de motorista")},
	{FieldPhotoURL, containsAny("foto", "imagem")},
	{FieldIsStudying, containsAny("estudando", "estuda atualmente", "cursando")},
	{FieldSchoolingLevel, containsAny("escolaridade", "grau de instrucao", "nivel de ensino", "nivel de formacao")},
	{FieldInstitution, containsAny("instituicao", "universidade", "faculdade", "escola")},
	{FieldGraduationDate, containsAny("conclusao", "formatura", "previsao de termino")},
	{FieldEducation, containsAny("formacao", "graduacao", "curso superior")},
	{FieldCertifications, containsAny("certificac", "certificado")},
	{FieldCourses, containsAny("curso")},
	{FieldExperience, containsAny("experiencia", "ultimo emprego", "empregos anteriores")},
	{FieldInterestAreas, containsAny("interesse", "area de atuacao", "vaga desejada", "cargo pretendido")},
	{FieldCVURL, either(containsAny("curriculo", "resume"), hasToken("cv"))},
	{FieldPortfolioURL, containsAny("portfolio", "behance", "github")},
	{FieldReferral, containsAny("indicad", "indicacao", "quem indicou")},
	{FieldSource, containsAny("como soube", "como conheceu", "como ficou sabendo", "onde nos encontrou", "onde encontrou", "fonte", "origem", "canal")},
	{FieldSalaryExpectation, containsAny("pretensao", "salari", "remuneracao")},
	{FieldCanRelocate, containsAny("mudanca", "mudar de cidade", "relocat")},
	{FieldReferences, containsAny("referencia")},
	{FieldTypeOfApp, containsAny("tipo de candidatura", "tipo de vaga", "tipo de inscricao", "modalidade")},
	{FieldOriginalTimestamp, containsAny("carimbo", "timestamp", "data/hora", "data de inscricao", "enviado em")},
	{FieldExternalID, either(containsAny("id externo", "external id", "codigo"), hasToken("id"))},
	{FieldAge, containsAny("idade")},
	{FieldStatus, containsAny("status", "situacao", "etapa")},
	{FieldFreeField, containsAny("observac", "campo livre", "comentario", "informacoes adicionais")},
}
