package middleware

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/clickstar/taskbot/internal/config"
)

// RateCounter bumps and reports a per-chat counter for the current window.
type RateCounter interface {
	CheckAndIncrement(ctx context.Context, chatID int64) (int64, error)
}

// RateLimit returns middleware that enforces a per-chat per-minute message
// limit. Callback presses are not limited.
func RateLimit(counter RateCounter) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if update.Message == nil {
				next(ctx, b, update)
				return
			}

			chatID := update.Message.Chat.ID

			count, err := counter.CheckAndIncrement(ctx, chatID)
			if err != nil {
				slog.Error("rate limit check failed", "error", err, "chat_id", chatID)
				next(ctx, b, update)
				return
			}

			if count > config.RateLimitPerMinute {
				slog.Debug("rate limited", "chat_id", chatID, "count", count)
				b.SendMessage(ctx, &bot.SendMessageParams{
					ChatID: chatID,
					Text:   "⏳ Too many requests. Please slow down.",
				})
				return
			}

			next(ctx, b, update)
		}
	}
}
