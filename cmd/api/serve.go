package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/simtrack/internal/api/middleware"
	"github.com/linskybing/simtrack/internal/api/routes"
	"github.com/linskybing/simtrack/internal/application"
	"github.com/linskybing/simtrack/internal/config"
	"github.com/linskybing/simtrack/internal/config/db"
	"github.com/linskybing/simtrack/internal/cron"
	"github.com/linskybing/simtrack/internal/repository"
	"github.com/linskybing/simtrack/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load configuration from environment variables and .env file
	config.LoadConfig()

	// Initialize JWT signing key
	middleware.Init()

	// Initialize database connection and schema
	db.Init()

	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var store storage.ObjectStore
	minioStore, err := storage.NewMinioStore(ctx)
	if err != nil {
		log.Printf("Warning: attachments disabled: %v", err)
	} else {
		store = minioStore
	}

	repos := repository.NewRepositories(db.DB)
	services := application.New(repos, store)

	cron.StartCleanupTask(ctx, services.Audit, config.AuditRetentionDays)

	if config.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware())

	routes.RegisterRoutes(router, services, repos)

	srv := &http.Server{
		Addr:              ":" + config.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting API server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down API server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
