package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"mbti-service/internal/app"
	"mbti-service/internal/config"
	"mbti-service/internal/infra/memory"
	pgarchive "mbti-service/internal/infra/postgres"
	redisstore "mbti-service/internal/infra/redis"
	"mbti-service/internal/logger"
	transport "mbti-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the questionnaire server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := logger.Setup(cfg.Log.Level, cfg.Log.Format)

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg, log); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8000"
	}
	sessionTTL := config.TTLDuration(cfg.Server.SessionTTL, 30*time.Minute)

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return err
		}
		log.Info().Str("addr", cfg.Redis.Addr).Int("db", cfg.Redis.DB).Msg("redis connected")
	}

	var archive app.ResultArchive = memory.NewResultArchive()
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
		archive = pgarchive.NewResultArchive(pool)
		log.Info().Msg("postgres result archive enabled")
	}

	submitN, submitWindow := cfg.RateLimit.Submit.Or(10, time.Minute)
	hourlyN, hourlyWindow := cfg.RateLimit.Hourly.Or(50, time.Hour)
	dailyN, dailyWindow := cfg.RateLimit.Daily.Or(200, 24*time.Hour)

	var (
		store    app.ResultStore
		global   []transport.Limiter
		submit   []transport.Limiter
		janitors []func()
	)
	if redisClient != nil {
		store = redisstore.NewResultStore(redisClient, sessionTTL)
		global = []transport.Limiter{
			redisstore.NewRateLimiter(redisClient, "hourly", hourlyN, hourlyWindow),
			redisstore.NewRateLimiter(redisClient, "daily", dailyN, dailyWindow),
		}
		submit = []transport.Limiter{redisstore.NewRateLimiter(redisClient, "submit", submitN, submitWindow)}
	} else {
		memStore := memory.NewResultStore(sessionTTL)
		hourly := memory.NewRateLimiter(hourlyN, hourlyWindow)
		daily := memory.NewRateLimiter(dailyN, dailyWindow)
		submitLimiter := memory.NewRateLimiter(submitN, submitWindow)

		store = memStore
		global = []transport.Limiter{hourly, daily}
		submit = []transport.Limiter{submitLimiter}
		janitors = append(janitors,
			func() { memStore.Sweep() },
			hourly.Cleanup,
			daily.Cleanup,
			submitLimiter.Cleanup,
		)
	}

	service := app.NewAssessmentService(store, archive, log)
	handler := transport.NewHandler(service, log, transport.Options{
		SessionTTL:     sessionTTL,
		SecureCookies:  cfg.Server.SecureCookies,
		GlobalLimiters: global,
		SubmitLimiters: submit,
	})

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      handler.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", server.Addr).Msg("starting questionnaire service")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	if len(janitors) > 0 {
		g.Go(func() error {
			runJanitors(gctx, time.Minute, janitors, log)
			return nil
		})
	}
	return g.Wait()
}

// runJanitors periodically evicts expired in-memory sessions and rate-limit windows.
func runJanitors(ctx context.Context, every time.Duration, janitors []func(), log zerolog.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, j := range janitors {
				j()
			}
			log.Debug().Int("janitors", len(janitors)).Msg("expired entries swept")
		}
	}
}
