// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - importers.Store: Apply reconciled candidates under a duplicate policy (internal/importers/pipeline.go)
//   - services.BatchStore: Import batch lifecycle (internal/services/interfaces.go)
//   - http.CandidateStore: Candidate review and the application form (internal/http/stores.go)
//   - http.ImportHistory: Committed batch listing (internal/http/stores.go)
//
// ## Import Commit Interfaces
//
//   - http.ImportCommitter: Record, commit and apply batches (internal/http/stores.go)
//   - tasks.BatchApplier: Apply a recorded batch from a queued task (internal/tasks/apply_import.go)
//   - services.ImportAuditor, services.ReportArchiver: Import side effects (internal/services/interfaces.go)
//
// ## Background Work Interfaces
//
//   - http.ImportEnqueuer, http.TaskStatusReader: Queue large commits and report on them
//   - scheduler.AuditCleanupEnqueuer, scheduler.AuditCleaner: Audit retention
//   - scheduler.SessionSweeper: Discard idle import wizard sessions
//
// # Adding a New Normalization Catalog
//
// To normalize another free-text field (e.g., marital status):
//
//  1. Declare the catalog in internal/normalize/
//
//     var MaritalStatuses = newCatalog("maritalStatus", 3, 3, titleCase, []Entry{
//         {Label: "Solteiro(a)", Variants: []string{"solteiro", "solteira"}},
//     })
//
//  2. Register it in the catalog registry so /api/normalize/:catalog serves it
//
//  3. Add the field to the normalizers map in internal/importers/profile.go
//
// # Adding a New Maintenance Job
//
//  1. Define the narrow interface the job needs in internal/scheduler/
//
//  2. Add it to Dependencies and register it in MaintenanceScheduler.Start
//
//  3. Wire the implementation in entrypoint.go and add a compile-time check here
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// This pattern is used throughout the codebase. See checks.go for examples.
package interfaces
