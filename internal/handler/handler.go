package handler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/clickstar/taskbot/internal/config"
	"github.com/clickstar/taskbot/internal/domain"
	"github.com/clickstar/taskbot/internal/service"
)

// Handler holds all dependencies needed by command and callback handlers.
type Handler struct {
	bot         *bot.Bot
	cfg         *config.Config
	users       *service.UserService
	ledger      *service.Ledger
	catalog     *service.TaskCatalog
	completions *service.CompletionService
	referrals   *service.ReferralService
	ads         *service.AdService
	botUsername string
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Bot         *bot.Bot
	Cfg         *config.Config
	Users       *service.UserService
	Ledger      *service.Ledger
	Catalog     *service.TaskCatalog
	Completions *service.CompletionService
	Referrals   *service.ReferralService
	Ads         *service.AdService
	BotUsername string
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		bot:         deps.Bot,
		cfg:         deps.Cfg,
		users:       deps.Users,
		ledger:      deps.Ledger,
		catalog:     deps.Catalog,
		completions: deps.Completions,
		referrals:   deps.Referrals,
		ads:         deps.Ads,
		botUsername: deps.BotUsername,
	}
}

// reply sends an HTML-formatted message to a chat, logging send failures.
func (h *Handler) reply(ctx context.Context, b *bot.Bot, chatID int64, text string, markup models.ReplyMarkup) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: markup,
	})
	if err != nil {
		slog.Error("send message failed", "chat_id", chatID, "error", err)
	}
}

// answer acknowledges a callback query, optionally with a toast text.
func (h *Handler) answer(ctx context.Context, b *bot.Bot, callbackID, text string) {
	_, err := b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
	})
	if err != nil {
		slog.Error("answer callback failed", "error", err)
	}
}

// callbackChatID extracts the originating chat of a callback press.
func callbackChatID(update *models.Update) int64 {
	if msg := update.CallbackQuery.Message.Message; msg != nil {
		return msg.Chat.ID
	}
	return 0
}

// pointsInfo renders the balance summary shown all over the bot.
func pointsInfo(u *domain.User) string {
	return fmt.Sprintf("Points: <b>%d</b>\nReferrals: <b>%d</b>", u.Points, u.Referrals)
}

// referralLink builds the deep link a user shares to earn referral points.
func (h *Handler) referralLink(telegramID int64) string {
	return fmt.Sprintf("https://t.me/%s?start=%d", h.botUsername, telegramID)
}
