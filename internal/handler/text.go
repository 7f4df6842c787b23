package handler

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/clickstar/taskbot/internal/domain"
	"github.com/clickstar/taskbot/internal/middleware"
)

// HandleText routes free-text messages: first to the user's pending ad flow
// if one exists, then to the reply-keyboard button actions. Wired as the
// bot's default handler so registered commands take precedence.
func (h *Handler) HandleText(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}
	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}

	chatID := update.Message.Chat.ID
	text := update.Message.Text

	// A pending ad draft consumes the next text message.
	draft, err := h.ads.Draft(ctx, user.TelegramID)
	if err == nil {
		switch draft.State {
		case domain.AdAwaitingText:
			h.adTextReceived(ctx, b, chatID, user.TelegramID, text)
			return
		case domain.AdAwaitingConfirm:
			h.adDecision(ctx, b, chatID, draft, text)
			return
		}
	} else if !errors.Is(err, domain.ErrNoPendingAd) {
		slog.Error("load ad draft failed", "user_id", user.TelegramID, "error", err)
	}

	switch strings.ToLower(strings.TrimSpace(text)) {
	case "💻 visit sites", "visit sites", "visit":
		h.showTasks(ctx, b, chatID, domain.TaskVisit)
	case "📣 join channels", "join channels", "channels":
		h.showTasks(ctx, b, chatID, domain.TaskJoinChannel)
	case "🤖 join bots", "join bots", "bots":
		h.showTasks(ctx, b, chatID, domain.TaskJoinBot)
	case "😄 more", "more":
		h.showTasks(ctx, b, chatID, domain.TaskOther)
	case "💰 balance", "balance":
		h.reply(ctx, b, chatID, pointsInfo(user), nil)
	case "🙌 referrals", "referrals":
		h.handleReferrals(ctx, b, update)
	case "ℹ️ info", "info":
		h.reply(ctx, b, chatID, "This bot gives points for completing tasks. Use /tasks to list everything. Advertise to spend points.", nil)
	case "📊 advertise", "advertise":
		h.startAdFlow(ctx, b, chatID, user.TelegramID)
	default:
		h.reply(ctx, b, chatID, "Use the keyboard or /tasks /balance /referrals /advertise", nil)
	}
}
