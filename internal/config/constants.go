package config

const (
	// DefaultDatabasePath is the default path for the main application database
	DefaultDatabasePath = "./recruiter.db"

	// DefaultLargeRowThreshold is the data row count above which an import
	// needs explicit confirmation.
	DefaultLargeRowThreshold = 5000

	// DefaultMaxUploadBytes caps spreadsheet uploads at 20 MiB.
	DefaultMaxUploadBytes = 20 << 20
)
