package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Audit
		Applications
		Import
		Tasks
		Scheduler
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path     string
		LogLevel string // silent, error, warn or info
	}
	Audit struct {
		RetentionDays int    // Days to keep audit events (default: 30)
		ReportDir     string // Where JSON import reports are archived; empty disables
	}
	Applications struct {
		RateLimit  int           // Submissions allowed per client IP each window; 0 disables
		RateWindow time.Duration
	}
	Import struct {
		LargeRowThreshold int           // Row count that requires explicit confirmation
		SessionTTL        time.Duration // Idle wizard sessions are discarded after this
		MaxUploadBytes    int64
		AsyncThreshold    int // Commits with more records run on the task queue
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	Scheduler struct {
		Enabled              bool
		AuditCleanupSchedule string // Cron format: "0 3 * * *" = daily at 03:00
		ImportSweepSchedule  string
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_log_level", "warn")
	v.SetDefault("audit_retention_days", 30)
	v.SetDefault("audit_report_dir", "")

	// Public application form
	v.SetDefault("application_rate_limit", 20)
	v.SetDefault("application_rate_window", "1h")

	// Import wizard defaults
	v.SetDefault("import_large_row_threshold", DefaultLargeRowThreshold)
	v.SetDefault("import_session_ttl", "2h")
	v.SetDefault("import_max_upload_bytes", DefaultMaxUploadBytes)
	v.SetDefault("import_async_threshold", 1000)

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	// Scheduler defaults
	v.SetDefault("scheduler_enabled", true)
	v.SetDefault("audit_cleanup_schedule", "0 3 * * *")   // Daily at 03:00
	v.SetDefault("import_sweep_schedule", "*/10 * * * *") // Every 10 minutes

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path:     v.GetString("DATABASE_PATH"),
			LogLevel: v.GetString("DATABASE_LOG_LEVEL"),
		},
		Audit: Audit{
			RetentionDays: v.GetInt("AUDIT_RETENTION_DAYS"),
			ReportDir:     v.GetString("AUDIT_REPORT_DIR"),
		},
		Applications: Applications{
			RateLimit:  v.GetInt("APPLICATION_RATE_LIMIT"),
			RateWindow: v.GetDuration("APPLICATION_RATE_WINDOW"),
		},
		Import: Import{
			LargeRowThreshold: v.GetInt("IMPORT_LARGE_ROW_THRESHOLD"),
			SessionTTL:        v.GetDuration("IMPORT_SESSION_TTL"),
			MaxUploadBytes:    v.GetInt64("IMPORT_MAX_UPLOAD_BYTES"),
			AsyncThreshold:    v.GetInt("IMPORT_ASYNC_THRESHOLD"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		Scheduler: Scheduler{
			Enabled:              v.GetBool("SCHEDULER_ENABLED"),
			AuditCleanupSchedule: v.GetString("AUDIT_CLEANUP_SCHEDULE"),
			ImportSweepSchedule:  v.GetString("IMPORT_SWEEP_SCHEDULE"),
		},
	}
}
