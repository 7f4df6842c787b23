package main

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/joho/godotenv"

	taskbotroot "github.com/clickstar/taskbot"
	"github.com/clickstar/taskbot/internal/config"
	"github.com/clickstar/taskbot/internal/handler"
	"github.com/clickstar/taskbot/internal/middleware"
	"github.com/clickstar/taskbot/internal/repository"
	"github.com/clickstar/taskbot/internal/service"
	"github.com/clickstar/taskbot/internal/telegram"
)

func main() {
	// Local development convenience; missing .env is fine
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Run migrations
	migrationsFS, err := fs.Sub(taskbotroot.MigrationsFS, "migrations")
	if err != nil {
		slog.Error("failed to load embedded migrations", "error", err)
		os.Exit(1)
	}
	if err := repository.RunMigrations(cfg.DatabaseURL, migrationsFS); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := repository.NewUserRepo(pool)
	taskRepo := repository.NewTaskRepo(pool)
	completionRepo := repository.NewCompletionRepo(pool)
	adRepo := repository.NewAdRepo(pool)
	rateLimitRepo := repository.NewRateLimitRepo(pool)

	// Services
	userService := service.NewUserService(userRepo)
	ledger := service.NewLedger(userRepo)
	catalog := service.NewTaskCatalog(taskRepo)

	// Handler pointer for use in the default handler closure
	var h *handler.Handler

	// Create bot
	opts := []bot.Option{
		bot.WithMiddlewares(
			middleware.Recover(),
			middleware.Logging(),
			middleware.RateLimit(rateLimitRepo),
			middleware.UserLoader(userService),
		),
		bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if h == nil {
				return
			}
			h.HandleText(ctx, b, update)
		}),
	}

	b, err := bot.New(cfg.BotToken, opts...)
	if err != nil {
		slog.Error("failed to create bot", "error", err)
		os.Exit(1)
	}

	// Get bot info
	me, err := b.GetMe(ctx)
	if err != nil {
		slog.Error("failed to get bot info", "error", err)
		os.Exit(1)
	}

	// Transport-backed ports
	notifier := telegram.NewNotifier(b)
	membership := telegram.NewMembership(b)

	completionService := service.NewCompletionService(completionRepo, taskRepo, ledger, membership)
	referralService := service.NewReferralService(userRepo, ledger, notifier, config.ReferralBonus)
	adService := service.NewAdService(adRepo, ledger, config.AdMinCost, config.AdMaxCost)

	// Seed the catalog on first run
	if cfg.SeedSampleTasks {
		if err := catalog.SeedDefaults(ctx); err != nil {
			slog.Error("failed to seed tasks", "error", err)
			os.Exit(1)
		}
	}

	// Initialize handler
	h = handler.New(handler.Deps{
		Bot:         b,
		Cfg:         cfg,
		Users:       userService,
		Ledger:      ledger,
		Catalog:     catalog,
		Completions: completionService,
		Referrals:   referralService,
		Ads:         adService,
		BotUsername: me.Username,
	})

	// Register all handlers
	h.Register()

	// Start bot
	slog.Info("starting bot", "username", me.Username, "id", me.ID)
	b.Start(ctx)

	slog.Info("bot stopped gracefully")
}

func logLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
