package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/recruiter/internal/audit"
	"github.com/mrlokans/recruiter/internal/config"
	"github.com/mrlokans/recruiter/internal/database"
	auditRepo "github.com/mrlokans/recruiter/internal/database/audit"
	"github.com/mrlokans/recruiter/internal/database/candidates"
	"github.com/mrlokans/recruiter/internal/database/imports"
	http_controllers "github.com/mrlokans/recruiter/internal/http"
	"github.com/mrlokans/recruiter/internal/importers"
	"github.com/mrlokans/recruiter/internal/scheduler"
	"github.com/mrlokans/recruiter/internal/services"
	"github.com/mrlokans/recruiter/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop accepting requests before the task queue goes away
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server Shutdown: %v", err)
	}

	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Recruiter v%s", version)

	db, err := database.NewDatabaseWithLogLevel(cfg.Database.Path, database.ParseLogLevel(cfg.Database.LogLevel))
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	candidateRepo := candidates.NewRepository(db.DB)
	batchRepo := imports.NewRepository(db.DB)
	auditService := audit.NewService(auditRepo.NewRepository(db.DB))
	defer auditService.Wait()

	archiver := audit.NewArchiver(cfg.Audit.ReportDir)
	if archiver.Enabled() {
		log.Printf("Import reports are archived to %s", cfg.Audit.ReportDir)
	}

	importService := services.NewImportService(candidateRepo, batchRepo, auditService, archiver)
	sessions := importers.NewSessionStore(cfg.Import.LargeRowThreshold)

	routerCfg := http_controllers.RouterConfig{
		Database:        db,
		Candidates:      candidateRepo,
		Sessions:        sessions,
		ImportCommitter: importService,
		ImportHistory:   batchRepo,
		MaxUploadBytes:  cfg.Import.MaxUploadBytes,
		AsyncThreshold:  cfg.Import.AsyncThreshold,
		Auditor:         auditService,
		AuditReader:     auditService,
		Version:         version,
	}

	var limiter *http_controllers.SubmissionLimiter
	if cfg.Applications.RateLimit > 0 {
		limiter = http_controllers.NewSubmissionLimiter(cfg.Applications.RateLimit, cfg.Applications.RateWindow)
		defer limiter.Stop()
		routerCfg.ApplicationLimiter = limiter
	}

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		}

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(
			tasks.NewApplyImportQueue(importService),
			tasks.NewCleanupAuditEventsQueue(auditService, auditService),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		routerCfg.Enqueuer = taskClient
		routerCfg.TaskStatus = taskClient
	} else {
		log.Printf("Task queue disabled, imports are applied inline")
	}

	// Initialize maintenance scheduler if enabled
	var maintenance *scheduler.MaintenanceScheduler
	var schedulerCancel context.CancelFunc
	if cfg.Scheduler.Enabled {
		deps := scheduler.Dependencies{
			Cleaner:  auditService,
			Sessions: sessions,
			Logger:   auditService,
		}
		if taskClient != nil {
			deps.Enqueuer = taskClient
		}

		maintenance = scheduler.NewMaintenanceScheduler(scheduler.Config{
			AuditCleanupSchedule: cfg.Scheduler.AuditCleanupSchedule,
			AuditRetentionDays:   cfg.Audit.RetentionDays,
			SessionSweepSchedule: cfg.Scheduler.ImportSweepSchedule,
			SessionTTL:           cfg.Import.SessionTTL,
		}, deps)

		var schedulerCtx context.Context
		schedulerCtx, schedulerCancel = context.WithCancel(context.Background())
		if err := maintenance.Start(schedulerCtx); err != nil {
			log.Fatalf("Failed to start maintenance scheduler: %v", err)
		}
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if maintenance != nil {
			maintenance.Stop()
			schedulerCancel()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
