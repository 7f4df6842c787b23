package telegram

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Notifier sends direct messages outside the current update flow, e.g. the
// referral bonus notice. Callers treat failures as best-effort.
type Notifier struct {
	bot *bot.Bot
}

func NewNotifier(b *bot.Bot) *Notifier {
	return &Notifier{bot: b}
}

func (n *Notifier) Notify(ctx context.Context, chatID int64, text string) error {
	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	return nil
}

// Membership checks whether a user is an active member of a channel, i.e.
// present with any status other than left or kicked.
type Membership struct {
	bot *bot.Bot
}

func NewMembership(b *bot.Bot) *Membership {
	return &Membership{bot: b}
}

func (m *Membership) IsMember(ctx context.Context, channel string, userID int64) (bool, error) {
	member, err := m.bot.GetChatMember(ctx, &bot.GetChatMemberParams{
		ChatID: channel,
		UserID: userID,
	})
	if err != nil {
		return false, fmt.Errorf("get chat member: %w", err)
	}
	if member == nil {
		return false, fmt.Errorf("empty chat member response")
	}
	switch member.Type {
	case models.ChatMemberTypeLeft, models.ChatMemberTypeBanned:
		return false, nil
	}
	return true, nil
}
