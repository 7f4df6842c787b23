package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/clickstar/taskbot/internal/domain"
	"github.com/clickstar/taskbot/internal/middleware"
)

const addTaskUsage = "Usage: /addtask <taskid>|<type>|<title>|<points>|<description>|<url_or_username>\n" +
	"Example: /addtask task10|visit|Visit Site|3|Open example|https://example.com"

// requireAdmin replies with a refusal and returns false for non-admins.
func (h *Handler) requireAdmin(ctx context.Context, b *bot.Bot, update *models.Update) bool {
	user := middleware.GetUser(ctx)
	if user == nil || !h.cfg.IsAdmin(user.TelegramID) {
		if update.Message != nil {
			h.reply(ctx, b, update.Message.Chat.ID, "❌ You are not an admin.", nil)
		}
		return false
	}
	return true
}

// parseAddTaskPayload parses the pipe-delimited /addtask payload:
// <taskid>|<type>|<title>|<points>|<description>|<url_or_username>
func parseAddTaskPayload(payload string) (*domain.Task, error) {
	fields := strings.SplitN(payload, "|", 6)
	if len(fields) != 6 {
		return nil, fmt.Errorf("%w: expected 6 pipe-delimited fields, got %d", domain.ErrInvalidTaskPayload, len(fields))
	}

	taskType, err := domain.ParseTaskType(fields[1])
	if err != nil {
		return nil, err
	}

	reward, err := strconv.ParseInt(strings.TrimSpace(fields[3]), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: points must be an integer", domain.ErrInvalidTaskPayload)
	}

	return &domain.Task{
		ID:          strings.TrimSpace(fields[0]),
		Type:        taskType,
		Title:       strings.TrimSpace(fields[2]),
		Reward:      reward,
		Description: strings.TrimSpace(fields[4]),
		Target:      strings.TrimSpace(fields[5]),
		Available:   true,
	}, nil
}

func (h *Handler) handleAddTask(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || !h.requireAdmin(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	parts := strings.SplitN(update.Message.Text, " ", 2)
	if len(parts) == 1 || strings.TrimSpace(parts[1]) == "" {
		h.reply(ctx, b, chatID, addTaskUsage, nil)
		return
	}

	task, err := parseAddTaskPayload(parts[1])
	if err == nil {
		err = h.catalog.Add(ctx, task)
	}
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTaskPayload) {
			h.reply(ctx, b, chatID, "Invalid format. "+addTaskUsage, nil)
			return
		}
		slog.Error("add task failed", "error", err)
		h.reply(ctx, b, chatID, "Something went wrong. Try again later.", nil)
		return
	}

	h.reply(ctx, b, chatID, fmt.Sprintf("Task %s added.", task.ID), nil)
}

func (h *Handler) handleRemoveTask(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || !h.requireAdmin(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	parts := strings.Fields(update.Message.Text)
	if len(parts) != 2 {
		h.reply(ctx, b, chatID, "Usage: /removetask <taskid>", nil)
		return
	}

	if err := h.catalog.Remove(ctx, parts[1]); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			h.reply(ctx, b, chatID, "Task not found.", nil)
			return
		}
		slog.Error("remove task failed", "task_id", parts[1], "error", err)
		h.reply(ctx, b, chatID, "Something went wrong. Try again later.", nil)
		return
	}

	h.reply(ctx, b, chatID, fmt.Sprintf("Task %s removed.", parts[1]), nil)
}

func (h *Handler) handleAddPoints(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || !h.requireAdmin(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	parts := strings.Fields(update.Message.Text)
	if len(parts) != 3 {
		h.reply(ctx, b, chatID, "Usage: /addpoints <user_id> <amount>", nil)
		return
	}

	target, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		h.reply(ctx, b, chatID, "User id must be numeric.", nil)
		return
	}
	amount, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		h.reply(ctx, b, chatID, "Amount must be integer.", nil)
		return
	}

	// Create the row if the target has never talked to the bot.
	if err := h.users.Ensure(ctx, target); err != nil {
		slog.Error("ensure user failed", "target", target, "error", err)
		h.reply(ctx, b, chatID, "Something went wrong. Try again later.", nil)
		return
	}

	balance, err := h.ledger.Credit(ctx, target, amount)
	if err != nil {
		slog.Error("admin credit failed", "target", target, "error", err)
		h.reply(ctx, b, chatID, "Something went wrong. Try again later.", nil)
		return
	}

	h.reply(ctx, b, chatID, fmt.Sprintf("Added %d pts to %d. New: %d", amount, target, balance), nil)
}

func (h *Handler) handleStats(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || !h.requireAdmin(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	stats, err := h.users.Stats(ctx)
	if err != nil {
		slog.Error("stats failed", "error", err)
		h.reply(ctx, b, chatID, "Something went wrong. Try again later.", nil)
		return
	}

	h.reply(ctx, b, chatID, fmt.Sprintf(
		"Users: %d\nTotal points: %d\nTasks: %d",
		stats.Users, stats.TotalPoints, stats.Tasks,
	), nil)
}
