package telegram

import (
	"github.com/go-telegram/bot/models"
)

// InlineButton creates a single callback inline keyboard button.
func InlineButton(text, callbackData string) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{
		Text:         text,
		CallbackData: callbackData,
	}
}

// URLButton creates a URL inline keyboard button.
func URLButton(text, url string) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{
		Text: text,
		URL:  url,
	}
}

// InlineKeyboard creates an inline keyboard from rows of buttons.
func InlineKeyboard(rows ...[]models.InlineKeyboardButton) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: rows,
	}
}

// ButtonRow creates a row of inline buttons.
func ButtonRow(buttons ...models.InlineKeyboardButton) []models.InlineKeyboardButton {
	return buttons
}

// MainMenu is the persistent reply keyboard shown after /start.
func MainMenu() *models.ReplyKeyboardMarkup {
	row := func(labels ...string) []models.KeyboardButton {
		buttons := make([]models.KeyboardButton, len(labels))
		for i, l := range labels {
			buttons[i] = models.KeyboardButton{Text: l}
		}
		return buttons
	}
	return &models.ReplyKeyboardMarkup{
		ResizeKeyboard: true,
		Keyboard: [][]models.KeyboardButton{
			row("💻 Visit Sites", "📣 Join Channels", "🤖 Join Bots"),
			row("😄 More", "💰 Balance", "🙌 Referrals"),
			row("ℹ️ Info"),
			row("📊 Advertise"),
		},
	}
}
