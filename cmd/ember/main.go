package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/ember-social/ember/internal/api/middleware"
	"github.com/ember-social/ember/internal/api/routes"
	"github.com/ember-social/ember/internal/blobstore"
	"github.com/ember-social/ember/internal/config"
	"github.com/ember-social/ember/internal/core/comments"
	"github.com/ember-social/ember/internal/core/feeds"
	"github.com/ember-social/ember/internal/core/follows"
	"github.com/ember-social/ember/internal/core/posts"
	"github.com/ember-social/ember/internal/core/reaper"
	"github.com/ember-social/ember/internal/core/users"
	"github.com/ember-social/ember/internal/db/migrations"
	postgresRepo "github.com/ember-social/ember/internal/db/postgres"
	"github.com/ember-social/ember/internal/identity"
)

// version is set at build time via -ldflags.
var version = "dev"

// reaperHourUTC is when the nightly sweep fires in serve mode.
const reaperHourUTC = 3

func main() {
	root := &cobra.Command{
		Use:           "ember",
		Short:         "Ember ephemeral content service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(serveCmd(), reapCmd(), migrateCmd())

	if err := root.Execute(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP listener and the nightly reaper",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func reapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reap",
		Short: "Run a single reaper sweep and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReap()
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply schema migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate()
		},
	}
}

func openDB(cfg config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

func runMigrate() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Info("migrations applied")
	return nil
}

func runReap() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := reaper.New(postgresRepo.NewReaperRepository(db), slog.Default())
	summary, err := r.Run(ctx)
	if err != nil {
		return fmt.Errorf("reaper run interrupted: %w", err)
	}
	if len(summary.Errors) > 0 {
		return fmt.Errorf("reaper run finished with errors: %v", summary.Errors)
	}

	return nil
}

func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	blobs, err := blobstore.NewS3Store(ctx, blobstore.S3Config{
		Endpoint:  cfg.BlobEndpoint,
		Region:    cfg.BlobRegion,
		Bucket:    cfg.BlobBucket,
		AccessKey: cfg.BlobAccessKey,
		SecretKey: cfg.BlobSecretKey,
		PublicURL: cfg.BlobPublicURL,
	})
	if err != nil {
		return err
	}

	jwtResolver, err := identity.NewJWTResolver(ctx, cfg.IdentityJWKSURL, cfg.IdentityIssuer, cfg.IdentityAudience, slog.Default())
	if err != nil {
		return err
	}
	resolver := identity.NewCachingResolver(jwtResolver)

	// Repositories
	userRepo := postgresRepo.NewUserRepository(db)
	postRepo := postgresRepo.NewPostRepository(db)
	commentRepo := postgresRepo.NewCommentRepository(db)
	followRepo := postgresRepo.NewFollowRepository(db)
	feedRepo := postgresRepo.NewFeedRepository(db)

	// Services
	userService := users.NewService(userRepo, slog.Default())
	postService := posts.NewService(postRepo, blobs, slog.Default())
	commentService := comments.NewService(commentRepo, postRepo, slog.Default())
	followService := follows.NewService(followRepo, slog.Default())
	feedService := feeds.NewService(feedRepo, userRepo, blobs, feeds.NewCursorCodec(cfg.CursorSecret), slog.Default())

	auth := middleware.NewAuthMiddleware(resolver, userService)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)

	// 100 requests per minute per IP
	rateLimiter := middleware.NewRateLimiter(100, time.Minute)
	r.Use(rateLimiter.Middleware)

	routes.RegisterHealthRoutes(r, db, blobs, version)
	routes.RegisterFeedRoutes(r, feedService, auth)
	routes.RegisterPostRoutes(r, postService, auth)
	routes.RegisterCommentRoutes(r, commentService, auth)
	routes.RegisterVoteRoutes(r, commentService, auth)
	routes.RegisterUserRoutes(r, userService, followService, feedService, auth)

	// Nightly reaper rides along with the server; deployments that prefer
	// external cron run the reap command instead.
	sweeper := reaper.New(postgresRepo.NewReaperRepository(db), slog.Default())
	scheduler := reaper.NewScheduler(sweeper, reaperHourUTC, slog.Default())
	go scheduler.Start(ctx)

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.ListenAddr, "version", version)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
	}

	return nil
}
