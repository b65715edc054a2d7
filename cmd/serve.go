package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	config "task-tracker.com/task-tracker/internal/configs"
	httpapi "task-tracker.com/task-tracker/internal/http"
	"task-tracker.com/task-tracker/internal/ratelimit"
	repository "task-tracker.com/task-tracker/internal/repositories"
	"task-tracker.com/task-tracker/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Migrates the database, ensures the operator account and serves the task tracker API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		database, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer closeDatabase(database)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		logRepo := repository.NewTaskLogRepository(database)
		taskRepo := repository.NewTaskRepository(database, logRepo)
		memberRepo := repository.NewMemberRepository(database)

		authService := services.NewAuthService(repository.NewUserRepository(database), cfg.JWTSecret, cfg.AccessTokenTTL)
		created, err := authService.EnsureOperator(ctx, cfg.AdminUsername, cfg.AdminPassword)
		switch {
		case errors.Is(err, services.ErrOperatorPasswordRequired):
			log.Warn().Str("username", cfg.AdminUsername).Msg("ADMIN_PASSWORD is not set, operator account not created")
		case err != nil:
			return err
		case created:
			log.Info().Str("username", cfg.AdminUsername).Msg("operator account created")
		}

		limiter, closeLimiter, err := newLimiter(cfg)
		if err != nil {
			return err
		}
		defer closeLimiter()

		handler := httpapi.NewHandler(
			services.NewTaskService(taskRepo, memberRepo, cfg.Location),
			services.NewMemberService(memberRepo),
			services.NewDashboardService(repository.NewDashboardRepository(database), cfg.Location),
			authService,
		)
		e := httpapi.NewServer(handler, httpapi.ServerOptions{
			Verifier:    authService,
			Limiter:     limiter,
			CORSOrigins: cfg.CORSOrigins,
		})

		go func() {
			log.Info().Str("addr", cfg.AppURL).Msg("HTTP server listening")
			if err := e.Start(cfg.AppURL); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("server stopped")
				stop()
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second,
		)
		defer cancel()

		if err := e.Shutdown(shutdownCtx); err != nil {
			return err
		}

		log.Info().Msg("HTTP server shut down gracefully")
		return nil
	},
}

func newLimiter(cfg config.Config) (ratelimit.Limiter, func(), error) {
	if cfg.RateLimitStore != config.RateLimitStoreRedis {
		return ratelimit.NewMemoryLimiter(cfg.RateLimit, time.Minute), func() {}, nil
	}

	client, err := config.NewRedisClient(cfg.RedisAddr)
	if err != nil {
		return nil, nil, err
	}
	log.Info().Str("addr", cfg.RedisAddr).Msg("rate limiter backed by redis")
	return ratelimit.NewRedisLimiter(client, cfg.RedisKeyPrefix, cfg.RateLimit, time.Minute), client.Close, nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
