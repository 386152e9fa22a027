// Package importers turns spreadsheet exports into candidate records.
//
// # Architecture
//
// An import flows through four stages:
//
//	File bytes → Decode/Parse → Table → InferMapping → Mapping → Reconcile → Result → Store
//
// Parse scans comma-delimited text with a two-state scanner (unquoted,
// quoted), skips blank lines and drops data rows with fewer than two
// non-empty cells. InferMapping guesses a canonical Field for every header
// through an exact label lookup, a keyword overlap score and finally an
// ordered rule table. Reconcile applies the operator-confirmed Mapping to
// every row, runs city, source and interest-area values through the
// normalize package and stamps import provenance onto each record.
//
// The Workflow type keeps the Upload → Map → Configure → Commit stages of
// one interactive session and refuses out-of-order transitions. Sessions
// live in a SessionStore keyed by UUID; every session owns its own
// Workflow so concurrent imports never share mutable state.
//
// Persisting records is the job of a Store. The Pipeline ties the
// non-interactive path together for the CLI and background tasks:
//
//	pipeline := importers.NewPipeline(store, importers.DefaultLargeImportThreshold)
//	report, err := pipeline.Run(importers.RunOptions{
//		FileName: "inscricoes.csv",
//		Data:     data,
//		Policy:   importers.PolicySkip,
//	})
//
// # Templates
//
// WriteTemplateCSV and WriteTemplateXLSX emit one header row built from
// FieldLabels followed by three example rows.
package importers
