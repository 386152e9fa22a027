package importers

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/mrlokans/recruiter/internal/entities"
)

var ErrNoValidCandidates = errors.New("no row has both a name and an email")

// importTagLayout sorts lexically and is safe in file names.
const importTagLayout = "20060102-150405"

// ReconcileOptions configures one Reconcile call.
type ReconcileOptions struct {
	Policy Policy
	// ImportTag overrides the generated tag when it is not blank.
	ImportTag string
	// SourceFile names the uploaded file; its base name seeds the generated tag.
	SourceFile string
	// Now is the import time. Zero means time.Now().
	Now time.Time
}

// Result is the reconciled output of one import, ready for a Store.
type Result struct {
	Records   []entities.Candidate `json:"-"`
	Rejected  int                  `json:"rejected"`
	Policy    Policy               `json:"policy"`
	ImportTag string               `json:"import_tag"`
}

// Accepted returns the number of records that survived reconciliation.
func (r *Result) Accepted() int {
	return len(r.Records)
}

// Reconcile applies mapping to rows and stamps provenance on every record.
// Rows left without a fullName or email are rejected. Output order follows
// input order. The mapping is checked before any row is read.
func Reconcile(rows []Row, mapping Mapping, opts ReconcileOptions) (*Result, error) {
	if err := mapping.Validate(); err != nil {
		return nil, err
	}

	policy := opts.Policy
	if policy == "" {
		policy = DefaultPolicy
	}
	if !policy.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, policy)
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	tag := ResolveImportTag(opts.ImportTag, opts.SourceFile, now)

	// Lexical header order makes the winner deterministic when two columns
	// map to the same field: the later non-empty cell wins.
	headers := mapping.Headers()

	result := &Result{Policy: policy, ImportTag: tag}
	for _, row := range rows {
		var c entities.Candidate
		for _, h := range headers {
			value := strings.TrimSpace(row[h])
			if value == "" {
				continue
			}

			field := mapping[h]
			if value = NormalizeValue(field, value); value == "" {
				continue
			}
			SetField(&c, field, value)
		}

		if c.FullName == "" || c.Email == "" {
			result.Rejected++
			continue
		}

		stampProvenance(&c, tag, now)
		result.Records = append(result.Records, c)
	}

	if len(result.Records) == 0 {
		return result, ErrNoValidCandidates
	}

	return result, nil
}

func stampProvenance(c *entities.Candidate, tag string, now time.Time) {
	importDate := now
	c.Status = entities.StatusRegistered
	c.Imported = true
	c.ImportTag = tag
	c.ImportDate = &importDate
	c.CreatedAt = now
}

// ResolveImportTag returns custom when it is not blank, otherwise
// "<file base name>_<YYYYMMDD-HHMMSS>".
func ResolveImportTag(custom, sourceFile string, now time.Time) string {
	if strings.TrimSpace(custom) != "" {
		return custom
	}

	base := filepath.Base(sourceFile)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.TrimSpace(base)
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "import"
	}

	return base + "_" + now.Format(importTagLayout)
}
