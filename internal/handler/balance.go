package handler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/clickstar/taskbot/internal/config"
	"github.com/clickstar/taskbot/internal/middleware"
)

func (h *Handler) handleBalance(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}
	h.reply(ctx, b, update.Message.Chat.ID, pointsInfo(user), nil)
}

func (h *Handler) handleReferrals(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}

	referredBy := "—"
	if user.ReferredBy != nil {
		referredBy = fmt.Sprintf("%d", *user.ReferredBy)
	}
	text := fmt.Sprintf("%s\nReferred by: %s", pointsInfo(user), referredBy)
	h.reply(ctx, b, update.Message.Chat.ID, text, nil)
}

func (h *Handler) handleLeaderboard(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	top, err := h.users.Leaderboard(ctx, config.LeaderboardSize)
	if err != nil {
		slog.Error("leaderboard failed", "error", err)
		h.reply(ctx, b, chatID, "Something went wrong. Try again later.", nil)
		return
	}
	if len(top) == 0 {
		h.reply(ctx, b, chatID, "No users yet.", nil)
		return
	}

	var sb strings.Builder
	sb.WriteString("<b>🏆 Top Referrers</b>\n\n")
	for i, u := range top {
		name := u.DisplayName()
		if name == "" {
			name = fmt.Sprintf("ID:%d", u.TelegramID)
		}
		sb.WriteString(fmt.Sprintf("%d. %s — %d refs — %d pts\n", i+1, name, u.Referrals, u.Points))
	}
	h.reply(ctx, b, chatID, sb.String(), nil)
}
