package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Sapuran-Berperan/bus-admin-backend/internal/auth"
	"github.com/Sapuran-Berperan/bus-admin-backend/internal/config"
	"github.com/Sapuran-Berperan/bus-admin-backend/internal/database"
	"github.com/Sapuran-Berperan/bus-admin-backend/internal/handler"
	"github.com/Sapuran-Berperan/bus-admin-backend/internal/logger"
	"github.com/Sapuran-Berperan/bus-admin-backend/internal/repository"
	"github.com/Sapuran-Berperan/bus-admin-backend/internal/upstream"
)

const shutdownTimeout = 10 * time.Second

var migrationsPath string

var rootCmd = &cobra.Command{
	Use:          "bus-admin",
	Short:        "Admin backend for the bus booking platform",
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the admin API (default)",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply audit trail migrations to DATABASE_URL",
	RunE:  runMigrate,
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Sign an access token with JWT_SECRET",
	Long: `Sign a short-lived access token with the shared JWT_SECRET.

Tokens are normally issued by the booking backend; this is for local
development and smoke tests.`,
	RunE: runToken,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&migrationsPath, "migrations", database.DefaultMigrationsPath, "migrations source URL")

	tokenCmd.Flags().String("user-id", "local-admin", "subject of the token")
	tokenCmd.Flags().String("email", "admin@localhost", "email claim")
	tokenCmd.Flags().String("role", auth.RoleAdmin, "role claim")

	rootCmd.AddCommand(serveCmd, migrateCmd, tokenCmd)
}

func main() {
	// Load .env file if exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	zl, err := logger.New(cfg.LogLevel, cfg.Environment)
	if err != nil {
		return err
	}
	defer func() { _ = zl.Sync() }()

	// Audit trail is optional
	var audit handler.AuditStore = repository.Disabled{}
	if cfg.DatabaseURL != "" {
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()

		// Run migrations in dev environment
		if cfg.Environment == "dev" {
			zl.Info("running database migrations")
			if err := database.Migrate(migrationsPath, cfg.DatabaseURL); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}
		}
		audit = repository.New(db)
	} else {
		zl.Info("DATABASE_URL not set, audit trail disabled")
	}

	var jwtManager *auth.JWTManager
	if cfg.AuthEnabled() {
		jwtManager = auth.NewJWTManager(cfg)
	} else {
		zl.Warn("JWT_SECRET not set, admin routes are unauthenticated")
	}

	backend := upstream.NewClient(cfg.Upstream, &http.Client{Timeout: cfg.RequestTimeout})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(zl, jwtManager, backend, audit, cfg.LookupConcurrency),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		zl.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Environment))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zl.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	zl.Info("server shut down")
	return nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required to run migrations")
	}

	if err := database.Migrate(migrationsPath, cfg.DatabaseURL); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Migrations completed successfully")
	return nil
}

func runToken(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if !cfg.AuthEnabled() {
		return errors.New("JWT_SECRET is required to sign tokens")
	}

	userID, _ := cmd.Flags().GetString("user-id")
	email, _ := cmd.Flags().GetString("email")
	role, _ := cmd.Flags().GetString("role")

	token, err := auth.NewJWTManager(cfg).GenerateAccessToken(userID, email, role)
	if err != nil {
		return fmt.Errorf("failed to sign token: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
