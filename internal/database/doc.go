// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup and migrations
//	├── candidates/      # Candidate CRUD and policy-driven import writes
//	├── imports/         # Import batch history
//	└── audit/           # Audit event log
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	db, err := database.NewDatabase("./recruiter.db")
//
//	candidatesRepo := candidates.NewRepository(db.DB)
//	batchesRepo := imports.NewRepository(db.DB)
//
//	outcome, err := candidatesRepo.ApplyImport(result.Records, result.Policy)
//
// # Interface Implementations
//
//   - candidates.Repository: implements importers.Store and http.CandidateStore
//   - imports.Repository: implements services.BatchStore and http.ImportHistory
//   - audit.Repository: backs audit.Service and tasks.AuditEventCleaner
//
// # Adding a New Domain
//
//  1. Create a new sub-package: internal/database/<name>/
//  2. Define a Repository struct with a *gorm.DB field
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Implement the required interface
//  5. Add compile-time interface check: var _ SomeInterface = (*Repository)(nil)
package database
