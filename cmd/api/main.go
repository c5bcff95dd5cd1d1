package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	_ "github.com/joho/godotenv/autoload"

	"github.com/rogeriosouza/construtora-api/internal/config"
	"github.com/rogeriosouza/construtora-api/internal/database"
	"github.com/rogeriosouza/construtora-api/internal/handlers"
	"github.com/rogeriosouza/construtora-api/internal/jobs"
	"github.com/rogeriosouza/construtora-api/internal/middleware"
	"github.com/rogeriosouza/construtora-api/internal/repository"
	"github.com/rogeriosouza/construtora-api/internal/services"
	"github.com/rogeriosouza/construtora-api/internal/storage"
	"github.com/rogeriosouza/construtora-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// @title Construtora API
// @version 1.0
// @description REST API for construction company back-office management
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Setup(cfg.Environment)

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	if cfg.ResendAPIKey == "" || cfg.OfficeEmail == "" {
		logger.Warn("Overdue summary emails disabled: RESEND_API_KEY or OFFICE_EMAIL not set")
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database")

	if err := database.Migrate(db); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	logger.Info("Initialized local storage", "path", cfg.StoragePath)

	repos := repository.NewRepositories(db)

	worker := jobs.NewWorker(cfg.WorkerCount)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	svcs := services.NewServices(repos, store, cfg, db)

	scheduleJobs(worker, svcs, repos)

	h := handlers.NewHandlers(svcs, store, worker)

	router := setupRouter(h, cfg)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	worker.Shutdown()
	logger.Info("Background worker stopped")

	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

func setupRouter(h *handlers.Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// Stored attachments referenced by the *_url response fields
	router.Static("/files", cfg.StoragePath)

	v1 := router.Group("/api/v1")
	{
		// Health check (public)
		v1.GET("/health", h.Health.Index)

		// Authentication (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
			auth.POST("/logout", h.Auth.Logout)
		}

		// Protected routes (requires authentication)
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTSecret))
		{
			// Admin-only routes
			admin := protected.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				admin.POST("/clients/:client_id/archive", h.Client.Archive)
				admin.POST("/clients/:client_id/reactivate", h.Client.Reactivate)
				admin.POST("/suppliers/:supplier_id/archive", h.Supplier.Archive)
				admin.POST("/suppliers/:supplier_id/reactivate", h.Supplier.Reactivate)
				admin.POST("/brokers/:broker_id/archive", h.Broker.Archive)
				admin.POST("/brokers/:broker_id/reactivate", h.Broker.Reactivate)
				admin.POST("/projects/:project_id/archive", h.Project.Archive)
				admin.POST("/projects/:project_id/reactivate", h.Project.Reactivate)

				admin.GET("/debts/:debt_id/consistency", h.Debt.Consistency)
				admin.POST("/installments/sweep_overdue", h.Installment.SweepOverdue)
				admin.POST("/payables/sweep_overdue", h.Payable.SweepOverdue)

				admin.GET("/audit_logs", h.Audit.Index)
				admin.GET("/jobs/status", h.Job.Status)
			}

			// Registry management
			protected.GET("/clients", h.Client.Index)
			protected.POST("/clients", h.Client.Create)
			protected.GET("/clients/:client_id", h.Client.Show)
			protected.PUT("/clients/:client_id", h.Client.Update)

			protected.GET("/suppliers", h.Supplier.Index)
			protected.POST("/suppliers", h.Supplier.Create)
			protected.GET("/suppliers/:supplier_id", h.Supplier.Show)
			protected.PUT("/suppliers/:supplier_id", h.Supplier.Update)

			protected.GET("/brokers", h.Broker.Index)
			protected.POST("/brokers", h.Broker.Create)
			protected.GET("/brokers/:broker_id", h.Broker.Show)
			protected.PUT("/brokers/:broker_id", h.Broker.Update)

			protected.GET("/projects", h.Project.Index)
			protected.POST("/projects", h.Project.Create)
			protected.GET("/projects/:project_id", h.Project.Show)
			protected.PUT("/projects/:project_id", h.Project.Update)

			// Receivables
			protected.GET("/debts", h.Debt.Index)
			protected.POST("/debts", h.Debt.Create)
			protected.GET("/debts/:debt_id", h.Debt.Show)

			protected.GET("/installments", h.Installment.Index)
			protected.GET("/installments/:installment_id", h.Installment.Show)
			protected.POST("/installments/:installment_id/pay", h.Installment.Pay)
			protected.PUT("/installments/:installment_id/proof", h.Installment.UpdateProof)
			protected.GET("/installments/:installment_id/proof", h.Installment.DownloadProof)
			protected.GET("/installments/:installment_id/receipt", h.Installment.Receipt)

			// Payables
			protected.GET("/payables", h.Payable.Index)
			protected.POST("/payables", h.Payable.Create)
			protected.GET("/payables/:payable_id", h.Payable.Show)
			protected.POST("/payables/:payable_id/pay", h.Payable.Pay)
			protected.GET("/payables/:payable_id/invoice", h.Payable.DownloadInvoice)

			// Commissions
			protected.GET("/commissions", h.Commission.Index)
			protected.POST("/commissions", h.Commission.Create)
			protected.GET("/commissions/:commission_id", h.Commission.Show)
			protected.POST("/commissions/:commission_id/pay", h.Commission.Pay)
			protected.GET("/commissions/:commission_id/receipt", h.Commission.Receipt)

			// Reports
			protected.GET("/reports/dashboard", h.Report.Dashboard)
			protected.GET("/reports/cash_flow", h.Report.CashFlow)
			protected.GET("/reports/clients/:client_id/statement", h.Report.ClientStatement)
			protected.GET("/reports/clients/:client_id/statement.pdf", h.Report.ClientStatementPDF)
			protected.GET("/reports/exports/overdue.csv", h.Report.ExportOverdueCSV)
			protected.GET("/reports/exports/commissions.csv", h.Report.ExportCommissionsCSV)
			protected.GET("/reports/exports/receivables.xlsx", h.Report.ExportReceivablesXLSX)
		}
	}

	return router
}

func scheduleJobs(worker *jobs.Worker, svcs *services.Services, repos *repository.Repositories) {
	// Mark past-due items overdue, catching up right after startup
	worker.ScheduleEveryImmediate(1*time.Hour, func(ctx context.Context) error {
		logger.Info("[Job] Sweeping overdue items...")
		receivables, err := svcs.Installment.SweepOverdue(ctx)
		if err != nil {
			return err
		}
		payables, err := svcs.Payable.SweepOverdue(ctx)
		if err != nil {
			return err
		}
		if receivables > 0 || payables > 0 {
			logger.Info("[Job] Overdue sweep done", "installments", receivables, "payables", payables)
		}
		return nil
	})

	// Daily overdue summary email to the office
	worker.ScheduleEvery(24*time.Hour, func(ctx context.Context) error {
		if !svcs.Email.Enabled() {
			return nil
		}
		logger.Info("[Job] Sending overdue summary email...")
		overdue, err := svcs.Installment.FindOverdue(ctx)
		if err != nil {
			return err
		}
		return svcs.Email.SendOverdueSummary(ctx, overdue)
	})

	// Housekeeping: expired report cache entries and refresh tokens
	worker.ScheduleEvery(1*time.Hour, func(ctx context.Context) error {
		if err := repos.Report.CleanExpiredCache(ctx); err != nil {
			return err
		}
		return repos.RefreshToken.DeleteExpired(ctx)
	})

	logger.Info("Scheduled recurring jobs")
}
