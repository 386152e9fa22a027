package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mrlokans/recruiter/internal/audit"
	"github.com/mrlokans/recruiter/internal/config"
	"github.com/mrlokans/recruiter/internal/database"
	auditRepo "github.com/mrlokans/recruiter/internal/database/audit"
	"github.com/mrlokans/recruiter/internal/database/candidates"
	"github.com/mrlokans/recruiter/internal/database/imports"
	"github.com/mrlokans/recruiter/internal/importers"
	"github.com/mrlokans/recruiter/internal/services"
)

// mappingFlags collects repeated -map "Header=field" overrides.
type mappingFlags importers.Mapping

func (m mappingFlags) String() string {
	parts := make([]string, 0, len(m))
	for _, h := range importers.Mapping(m).Headers() {
		parts = append(parts, h+"="+string(m[h]))
	}
	return strings.Join(parts, ",")
}

func (m mappingFlags) Set(value string) error {
	header, field, ok := strings.Cut(value, "=")
	header = strings.TrimSpace(header)
	if !ok || header == "" {
		return fmt.Errorf("expected Header=field, got %q", value)
	}
	field = strings.TrimSpace(field)
	if field != "" {
		if _, err := importers.ParseField(field); err != nil {
			return err
		}
	}
	// An empty field is kept so the pipeline ignores the header.
	m[header] = importers.Field(field)
	return nil
}

// ImportCommand imports a candidate spreadsheet without the web wizard.
type ImportCommand struct {
	FilePath       string
	DatabasePath   string
	Policy         string
	ImportTag      string
	Mappings       mappingFlags
	LargeThreshold int
	ConfirmLarge   bool
	ReportDir      string
	Verbose        bool
	DryRun         bool

	policy importers.Policy
}

func NewImportCommand() *ImportCommand {
	return &ImportCommand{Mappings: mappingFlags{}}
}

func (cmd *ImportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)

	fs.StringVar(&cmd.FilePath, "file", "", "Path to the CSV file to import (required)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the local database file")
	fs.StringVar(&cmd.Policy, "policy", string(importers.DefaultPolicy), "Duplicate email policy: skip, overwrite or duplicate")
	fs.StringVar(&cmd.ImportTag, "tag", "", "Import tag stamped on every record (default: <file>_<timestamp>)")
	fs.Var(cmd.Mappings, "map", "Override a column mapping as \"Header=field\"; an empty field ignores the column (repeatable)")
	fs.IntVar(&cmd.LargeThreshold, "large-threshold", config.DefaultLargeRowThreshold, "Row count above which -confirm-large is required")
	fs.BoolVar(&cmd.ConfirmLarge, "confirm-large", false, "Confirm an import above the large row threshold")
	fs.StringVar(&cmd.ReportDir, "report-dir", "", "Directory where a JSON report of the import is written")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Print the inferred mapping and sample records")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Show what would be imported without making changes")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import -file <path> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Import candidates from a spreadsheet export.\n\n")
		fmt.Fprintf(os.Stderr, "Columns are mapped to candidate fields from their headers. Use -map to\n")
		fmt.Fprintf(os.Stderr, "correct a guess and -dry-run -verbose to review the mapping first.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Preview the mapping and the records:\n")
		fmt.Fprintf(os.Stderr, "  %s import -file inscricoes.csv -dry-run -verbose\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  # Overwrite existing candidates and fix one column:\n")
		fmt.Fprintf(os.Stderr, "  %s import -file inscricoes.csv -policy overwrite -map \"Cidade onde mora=city\"\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.FilePath == "" {
		return fmt.Errorf("required flag -file not provided")
	}

	policy, err := importers.ParsePolicy(cmd.Policy)
	if err != nil {
		return fmt.Errorf("invalid -policy: %w", err)
	}
	cmd.policy = policy

	return nil
}

func (cmd *ImportCommand) Run() error {
	fmt.Println("Candidate Import")
	fmt.Println("================")

	if cmd.DryRun {
		fmt.Println("DRY RUN MODE - No changes will be made")
		fmt.Println()
	}

	data, err := os.ReadFile(cmd.FilePath)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}
	fileName := filepath.Base(cmd.FilePath)
	fmt.Printf("File: %s\n", cmd.FilePath)

	pipeline := importers.NewPipeline(nil, cmd.LargeThreshold)
	report, err := pipeline.Prepare(importers.RunOptions{
		FileName:     fileName,
		Data:         data,
		Overrides:    importers.Mapping(cmd.Mappings),
		Policy:       cmd.policy,
		ImportTag:    cmd.ImportTag,
		ConfirmLarge: cmd.ConfirmLarge,
	})
	if report.Table != nil {
		fmt.Printf("Found %d rows in %d columns (%d dropped)\n", report.Table.Len(), len(report.Table.Headers), report.Table.Dropped)
	}
	if report.Mapping != nil && (cmd.Verbose || err != nil) {
		printMapping(report.Table, report.Mapping)
	}
	if err != nil {
		return fmt.Errorf("import not prepared: %w", err)
	}

	result := report.Result
	fmt.Printf("\nImport tag: %s\n", result.ImportTag)
	fmt.Printf("Policy: %s\n", result.Policy)
	fmt.Printf("Accepted: %d, rejected: %d\n", result.Accepted(), result.Rejected)

	if cmd.Verbose {
		fmt.Println("\n=== Records ===")
		for i, c := range result.Records {
			if i == 10 {
				fmt.Printf("... and %d more\n", len(result.Records)-10)
				break
			}
			fmt.Printf("%d. %s <%s> %s\n", i+1, c.FullName, c.Email, c.City)
		}
	}

	if cmd.DryRun {
		fmt.Println("\nDry run complete. Use without -dry-run to import.")
		return nil
	}

	absDBPath, err := filepath.Abs(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for database: %w", err)
	}
	fmt.Printf("\nSaving to database: %s\n", absDBPath)

	db, err := database.NewDatabase(absDBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	auditService := audit.NewService(auditRepo.NewRepository(db.DB))
	defer auditService.Wait()

	service := services.NewImportService(
		candidates.NewRepository(db.DB),
		imports.NewRepository(db.DB),
		auditService,
		audit.NewArchiver(cmd.ReportDir),
	)

	batch, outcome, err := service.Commit(result, fileName, report.Table)
	if err != nil {
		return err
	}

	fmt.Println("\n=== Import Summary ===")
	fmt.Printf("Batch: %d\n", batch.ID)
	fmt.Printf("Created: %d\n", outcome.Created)
	fmt.Printf("Updated: %d\n", outcome.Updated)
	fmt.Printf("Skipped: %d\n", outcome.Skipped)
	fmt.Printf("Rejected: %d\n", result.Rejected)

	fmt.Println("\nImport complete!")
	return nil
}

func printMapping(table *importers.Table, mapping importers.Mapping) {
	fmt.Println("\n=== Column Mapping ===")
	for _, h := range table.Headers {
		if f, ok := mapping[h]; ok {
			fmt.Printf("  %-40s -> %s\n", h, f)
		} else {
			fmt.Printf("  %-40s (ignored)\n", h)
		}
	}
	if missing := mapping.MissingRequired(); len(missing) > 0 {
		fmt.Printf("Missing required fields: %v\n", missing)
	}
}
