package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"facultybot/internal/app"
	"facultybot/internal/cache"
	"facultybot/internal/config"
	"facultybot/internal/ratelimit"
	"facultybot/internal/server"
	"facultybot/internal/session"
	"facultybot/internal/store"
	"facultybot/internal/telegram"
	"facultybot/internal/util"
)

func main() {
	cfg, err := config.Load(config.ConfigPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	sessionTTL, err := config.ParseTTL("sessionTTL", cfg.SessionTTL, 300*time.Second)
	if err != nil {
		log.Fatalf("failed to parse session TTL: %v", err)
	}
	cacheTTL, err := config.ParseTTL("cacheTTL", cfg.CacheTTL, 30*time.Second)
	if err != nil {
		log.Fatalf("failed to parse cache TTL: %v", err)
	}

	logger := util.InitLogger(cfg.LogLevel)

	var dataStore store.Store
	if cfg.DatabaseURL != "" {
		gormStore, err := store.NewGormStore(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to init postgres store: %v", err)
		}
		dataStore = gormStore
	} else {
		slog.Warn("no databaseURL configured, materials will not survive restarts")
		dataStore = store.NewMemoryStore()
	}

	var sessions session.Store
	var limiter *ratelimit.FixedWindowLimiter
	if cfg.RedisAddr != "" {
		dataStore = store.NewCachedStore(dataStore, cache.New(cfg.RedisAddr, cfg.RedisPassword, "facultybot:cache", cacheTTL))
		sessions = session.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, sessionTTL)
		if cfg.ChatRateLimitPerMinute > 0 {
			limiter, err = ratelimit.NewRedisFixedWindowLimiter(cfg.RedisAddr, cfg.RedisPassword, "facultybot:ratelimit:chat", cfg.ChatRateLimitPerMinute, time.Minute)
			if err != nil {
				log.Fatalf("failed to init chat flood limiter: %v", err)
			}
		}
	} else {
		sessions = session.NewMemoryStore(sessionTTL)
	}

	bot, err := app.New(app.Config{
		Store:         dataStore,
		Sessions:      sessions,
		Sender:        telegram.NewClient(cfg.TelegramAPIURL, cfg.BotToken),
		AdminUsername: cfg.AdminUsername,
		Courses:       cfg.Courses,
		Limiter:       limiter,
	})
	if err != nil {
		log.Fatalf("failed to init bot: %v", err)
	}

	httpServer := server.New(server.Config{
		Bot:           bot,
		WebhookSecret: cfg.WebhookSecret,
	})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      httpServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		logger.Error("server error", "err", err)
	}
}
