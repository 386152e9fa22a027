package importers

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mrlokans/recruiter/internal/entities"
	"github.com/mrlokans/recruiter/internal/normalize"
)

// normalizers holds the fields whose values go through a catalog.
var normalizers = map[Field]func(string) string{
	FieldCity:          normalize.City,
	FieldSource:        normalize.Source,
	FieldInterestAreas: normalize.InterestAreaList,
}

// NormalizeValue returns value in canonical form for field. Fields without a
// catalog are only trimmed.
func NormalizeValue(field Field, value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if fn, ok := normalizers[field]; ok {
		return fn(value)
	}
	return value
}

// ApplyValues assigns values keyed by field identifier to c, normalizing
// catalog fields the same way an import does. A blank value clears the
// field. It returns the fields that were set, sorted. Unknown keys fail the
// whole call before c is touched.
func ApplyValues(c *entities.Candidate, values map[string]string) ([]Field, error) {
	fields := make(map[Field]string, len(values))
	for key, value := range values {
		f, err := ParseField(key)
		if err != nil {
			return nil, err
		}
		fields[f] = NormalizeValue(f, value)
	}

	changed := make([]Field, 0, len(fields))
	for f, value := range fields {
		if !SetField(c, f, value) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownField, f)
		}
		changed = append(changed, f)
	}
	sort.Slice(changed, func(i, j int) bool { return changed[i] < changed[j] })
	return changed, nil
}
