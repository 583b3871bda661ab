package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/kloop/amco/api"
	migrations "github.com/kloop/amco/db"
	"github.com/kloop/amco/internal/config"
	"github.com/kloop/amco/internal/db"
	"github.com/kloop/amco/internal/models"
	"github.com/kloop/amco/internal/repository/sqlite"
	"github.com/kloop/amco/internal/session"
	"github.com/kloop/amco/pkg/repository"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	var configPath = flag.String("config", "", "Path to config YAML file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	api.SetLogger(logger)

	log.Printf("Starting amco server version %s (built at %s)", version, buildTime)

	ctx := context.Background()

	conn, err := db.New(ctx, cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}

	if err := db.Migrate(ctx, conn, migrations.Migrations); err != nil {
		log.Fatalf("Failed to migrate DB: %v", err)
	}

	repo := sqlite.New(conn, logger)
	if err := bootstrapAdmin(ctx, repo, cfg.Bootstrap); err != nil {
		log.Fatalf("Failed to bootstrap admin: %v", err)
	}

	handler, err := api.SetupRoutes(cfg, version, buildTime, conn)
	if err != nil {
		log.Fatalf("Failed to set up routes: %v", err)
	}

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.APITimeout,
		WriteTimeout: cfg.APITimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Expired session rows are swept in the background until shutdown.
	sessions := session.NewManager(repo, cfg.SessionSecret, cfg.SessionTTL, logger)
	purgeDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				sessions.PurgeExpired(ctx)
			case <-purgeDone:
				return
			}
		}
	}()

	go func() {
		log.Printf("Server starting on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")
	close(purgeDone)

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := conn.Close(); err != nil {
		log.Printf("Error closing DB: %v", err)
	}

	log.Println("Server exited")
}

// bootstrapAdmin seeds the credential store on first start. Nothing happens
// once any admin exists.
func bootstrapAdmin(ctx context.Context, admins repository.AdminRepo, seed config.BootstrapAdmin) error {
	count, err := admins.CountAdmins(ctx)
	if err != nil {
		return err
	}
	if count > 0 || seed.Username == "" || seed.Password == "" {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = admins.CreateAdmin(ctx, &models.Admin{Username: seed.Username, PasswordHash: string(hash)})
	return err
}
