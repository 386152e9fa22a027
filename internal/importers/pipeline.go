package importers

import (
	"errors"
	"time"

	"github.com/mrlokans/recruiter/internal/entities"
)

// Outcome counts what a Store did with one reconciled batch.
type Outcome struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// Store persists reconciled candidates. For every record it looks up a
// stored candidate with the same email and applies policy.
type Store interface {
	ApplyImport(records []entities.Candidate, policy Policy) (Outcome, error)
}

// Pipeline runs a whole import without operator interaction:
// parse → infer mapping → apply overrides → reconcile → store.
//
// It drives the same Workflow the interactive flow uses, so the gates are
// identical.
type Pipeline struct {
	store          Store
	largeThreshold int
	now            func() time.Time
}

// NewPipeline creates a pipeline writing to store. A nil store only supports dry runs.
func NewPipeline(store Store, largeThreshold int) *Pipeline {
	return &Pipeline{store: store, largeThreshold: largeThreshold, now: time.Now}
}

// RunOptions describes one non-interactive import.
type RunOptions struct {
	FileName string
	Data     []byte
	// Overrides replace inferred mappings. An empty Field ignores the header.
	Overrides    Mapping
	Policy       Policy
	ImportTag    string
	ConfirmLarge bool
	// DryRun stops after reconciliation.
	DryRun bool
}

// Report summarizes a pipeline run.
type Report struct {
	Table   *Table
	Mapping Mapping
	Result  *Result
	Outcome Outcome
}

// Prepare parses and reconciles the file without touching the store. The
// returned report carries the table and mapping even when reconciliation
// fails, so callers can show what was inferred.
func (p *Pipeline) Prepare(opts RunOptions) (*Report, error) {
	wf := NewWorkflow(p.largeThreshold)
	report := &Report{}

	table, err := wf.Upload(opts.FileName, opts.Data)
	if err != nil {
		return report, err
	}
	report.Table = table

	for _, h := range opts.Overrides.Headers() {
		if err := wf.SetMapping(h, opts.Overrides[h]); err != nil {
			return report, err
		}
	}
	report.Mapping = wf.Mapping()

	if err := wf.ConfirmMapping(); err != nil {
		return report, err
	}
	if err := wf.Configure(opts.Policy, opts.ImportTag, opts.ConfirmLarge); err != nil {
		return report, err
	}

	result, err := wf.Commit(p.now())
	if err != nil {
		return report, err
	}
	report.Result = result
	return report, nil
}

// Run prepares the import and, unless DryRun is set, applies it.
func (p *Pipeline) Run(opts RunOptions) (*Report, error) {
	report, err := p.Prepare(opts)
	if err != nil || opts.DryRun {
		return report, err
	}

	outcome, err := p.Apply(report.Result)
	if err != nil {
		return report, err
	}
	report.Outcome = outcome
	return report, nil
}

// Apply hands a reconciled result to the store.
func (p *Pipeline) Apply(result *Result) (Outcome, error) {
	if p.store == nil {
		return Outcome{}, errors.New("import pipeline has no store")
	}
	if result == nil || len(result.Records) == 0 {
		return Outcome{}, ErrNoValidCandidates
	}
	return p.store.ApplyImport(result.Records, result.Policy)
}
