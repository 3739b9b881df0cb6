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
	"go.uber.org/zap"

	_ "github.com/noah-isme/school-admin-api/api/swagger"
	"github.com/noah-isme/school-admin-api/internal/handler"
	"github.com/noah-isme/school-admin-api/internal/middleware"
	"github.com/noah-isme/school-admin-api/internal/repository"
	"github.com/noah-isme/school-admin-api/internal/server"
	"github.com/noah-isme/school-admin-api/internal/service"
	"github.com/noah-isme/school-admin-api/pkg/config"
	"github.com/noah-isme/school-admin-api/pkg/database"
	"github.com/noah-isme/school-admin-api/pkg/logger"
	"github.com/noah-isme/school-admin-api/pkg/security"
)

const shutdownTimeout = 10 * time.Second

// @title School Admin API
// @version 1.0.0
// @description School administration backend: staff, students, classes, rooms, subjects and marks.
// @BasePath /
// @schemes http https

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if err := run(cfg, logr); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logr *zap.Logger) error {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(cfg.Database.URL, repository.Migrations, repository.MigrationsDir, logr); err != nil {
			return err
		}
	}

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	var metrics *service.MetricsService
	if cfg.Metrics.Enabled {
		metrics = service.NewMetricsService()
	}

	hasher := security.NewPasswordHasher(security.DefaultArgon2Params)
	tokens := security.NewTokenCodec(cfg.JWT.Secret)
	validate := service.NewValidator()

	employees := repository.NewEmployeeRepository(db)
	teachers := repository.NewTeacherRepository(db)
	marks := repository.NewMarkRepository(db)

	authService, err := service.NewAuthService(employees, teachers, hasher, tokens, validate, logr, metrics,
		service.AuthConfig{SessionTTL: cfg.JWT.SessionTTL})
	if err != nil {
		return err
	}

	handlers := server.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Subjects:   handler.NewSubjectHandler(service.NewSubjectService(repository.NewSubjectRepository(db), validate, logr, metrics)),
		Classes:    handler.NewClassHandler(service.NewClassService(repository.NewClassRepository(db), validate, logr, metrics)),
		Rooms:      handler.NewRoomHandler(service.NewRoomService(repository.NewRoomRepository(db), validate, logr, metrics)),
		Students:   handler.NewStudentHandler(service.NewStudentService(repository.NewStudentRepository(db), hasher, validate, logr, metrics)),
		Teachers:   handler.NewTeacherHandler(service.NewTeacherService(teachers, hasher, validate, logr, metrics)),
		Principals: handler.NewPrincipalHandler(service.NewPrincipalService(employees, hasher, validate, logr, metrics)),
		Marks: handler.NewMarkHandler(
			service.NewMarkService(marks, validate, logr, metrics),
			service.NewExportService(marks, logr, metrics),
		),
		Health:  handler.NewHealthHandler(db),
		Metrics: handler.NewMetricsHandler(metrics),
	}

	router := server.NewRouter(handlers, middleware.Session(tokens), metrics, logr, server.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		EnableDocs:     cfg.Env != config.EnvProduction,
		EnableMetrics:  cfg.Metrics.Enabled,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logr.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logr.Info("server exited")
	return nil
}
