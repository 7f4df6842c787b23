package middleware

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/clickstar/taskbot/internal/domain"
	"github.com/clickstar/taskbot/internal/service"
)

type ctxKey string

const userKey ctxKey = "user"

// GetUser extracts the loaded user from context.
func GetUser(ctx context.Context) *domain.User {
	u, ok := ctx.Value(userKey).(*domain.User)
	if !ok {
		return nil
	}
	return u
}

// UserLoader returns middleware that lazily creates the sender's user record
// and stores it in the context for handlers.
func UserLoader(users *service.UserService) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			var from *models.User
			if update.Message != nil {
				from = update.Message.From
			} else if update.CallbackQuery != nil {
				from = &update.CallbackQuery.From
			}

			if from == nil || from.IsBot {
				next(ctx, b, update)
				return
			}

			user, _, err := users.FindOrCreate(ctx, from.ID, from.Username, from.FirstName)
			if err == nil && user != nil {
				ctx = context.WithValue(ctx, userKey, user)
			}

			next(ctx, b, update)
		}
	}
}
