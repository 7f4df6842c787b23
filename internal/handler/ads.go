package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/clickstar/taskbot/internal/domain"
	"github.com/clickstar/taskbot/internal/middleware"
)

func (h *Handler) handleAdvertise(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}
	h.startAdFlow(ctx, b, update.Message.Chat.ID, user.TelegramID)
}

func (h *Handler) startAdFlow(ctx context.Context, b *bot.Bot, chatID, userID int64) {
	if err := h.ads.Begin(ctx, userID); err != nil {
		slog.Error("start ad flow failed", "user_id", userID, "error", err)
		h.reply(ctx, b, chatID, "Something went wrong. Try again later.", nil)
		return
	}
	h.reply(ctx, b, chatID, "📣 Create an advertisement.\nSend the ad text you want to publish (plain text).", nil)
}

// adTextReceived handles the free-text message carrying the proposed ad.
func (h *Handler) adTextReceived(ctx context.Context, b *bot.Bot, chatID, userID int64, text string) {
	draft, err := h.ads.SubmitText(ctx, userID, text)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyAdText) {
			h.reply(ctx, b, chatID, "Ad text cannot be empty. Send the text of your ad.", nil)
			return
		}
		slog.Error("submit ad text failed", "user_id", userID, "error", err)
		h.reply(ctx, b, chatID, "Something went wrong. Try again later.", nil)
		return
	}

	h.reply(ctx, b, chatID, fmt.Sprintf(
		"Your ad:\n\n%s\n\nCost: <b>%d</b> pts\n\nSend 'confirm' to pay and publish or 'cancel'.",
		draft.Text, draft.Cost,
	), nil)
}

// adDecision handles the confirm/cancel reply for the given pending draft.
// Anything but "confirm" cancels without charging.
func (h *Handler) adDecision(ctx context.Context, b *bot.Bot, chatID int64, draft *domain.PendingAd, text string) {
	userID := draft.UserID

	if strings.ToLower(strings.TrimSpace(text)) != "confirm" {
		if err := h.ads.Cancel(ctx, userID); err != nil {
			slog.Error("cancel ad failed", "user_id", userID, "error", err)
		}
		h.reply(ctx, b, chatID, "Ad creation canceled.", nil)
		return
	}

	ad, balance, err := h.ads.Confirm(ctx, userID)
	switch {
	case errors.Is(err, domain.ErrNoPendingAd):
		h.reply(ctx, b, chatID, "No pending ad. Start with 📊 Advertise.", nil)
		return
	case errors.Is(err, domain.ErrInsufficientBalance):
		h.reply(ctx, b, chatID, fmt.Sprintf("Not enough points (You have %d, need %d).", balance, draft.Cost), nil)
		return
	case err != nil:
		slog.Error("ad confirm failed", "user_id", userID, "error", err)
		h.reply(ctx, b, chatID, "Something went wrong. Try again later.", nil)
		return
	}

	user, getErr := h.users.Get(ctx, userID)
	if getErr != nil {
		h.reply(ctx, b, chatID, fmt.Sprintf("✅ Ad published! %d pts deducted.\nPoints: <b>%d</b>", ad.Cost, balance), nil)
		return
	}
	h.reply(ctx, b, chatID, fmt.Sprintf("✅ Ad published! %d pts deducted.\n%s", ad.Cost, pointsInfo(user)), nil)
}
