package handler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/clickstar/taskbot/internal/middleware"
	tg "github.com/clickstar/taskbot/internal/telegram"
)

func (h *Handler) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}

	chatID := update.Message.Chat.ID

	// /start <referrerId> — attach the referrer if this user has none yet.
	parts := strings.Fields(update.Message.Text)
	if len(parts) > 1 {
		credited, err := h.referrals.Attach(ctx, user, parts[1])
		if err != nil {
			slog.Error("referral attach failed", "user_id", user.TelegramID, "error", err)
		} else if credited {
			slog.Info("referral credited", "user_id", user.TelegramID, "referrer", parts[1])
		}
	}

	text := fmt.Sprintf(
		"Hi %s 👋\n%s\n\nYour referral link:\n%s\n\nShare it and earn points!",
		user.FirstName,
		pointsInfo(user),
		h.referralLink(user.TelegramID),
	)
	h.reply(ctx, b, chatID, text, tg.MainMenu())
}

func (h *Handler) handleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.reply(ctx, b, update.Message.Chat.ID,
		"Commands:\n"+
			"/tasks - list tasks\n"+
			"/balance or press Balance - see balance\n"+
			"/referrals - see referral info\n"+
			"/advertise - create an ad\n"+
			"/leaderboard - top referrers\n\n"+
			"Admins can use /addtask /removetask /addpoints /stats",
		nil)
}
