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
	tg "github.com/clickstar/taskbot/internal/telegram"
)

func (h *Handler) handleTasks(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.showTasks(ctx, b, update.Message.Chat.ID, "")
}

// showTasks lists available tasks, optionally filtered by type, with a
// task_open button per entry.
func (h *Handler) showTasks(ctx context.Context, b *bot.Bot, chatID int64, filter domain.TaskType) {
	tasks, err := h.catalog.ListAvailable(ctx, filter)
	if err != nil {
		slog.Error("list tasks failed", "filter", filter, "error", err)
		h.reply(ctx, b, chatID, "Something went wrong. Try again later.", nil)
		return
	}
	if len(tasks) == 0 {
		if filter == "" {
			h.reply(ctx, b, chatID, "No tasks available right now.", nil)
		} else {
			h.reply(ctx, b, chatID, "No tasks of this type are available right now.", nil)
		}
		return
	}

	var sb strings.Builder
	if filter == "" {
		sb.WriteString("<b>Available Tasks</b>\n\n")
	} else {
		sb.WriteString(fmt.Sprintf("<b>Tasks — %s</b>\n\n", filter))
	}

	var rows [][]models.InlineKeyboardButton
	for _, t := range tasks {
		sb.WriteString(fmt.Sprintf("• <b>%s</b> — %d pts\n  %s\n\n", t.Title, t.Reward, t.Description))
		rows = append(rows, tg.ButtonRow(
			tg.InlineButton(fmt.Sprintf("%s — %d pts", t.Title, t.Reward), "task_open:"+t.ID),
		))
	}
	sb.WriteString("Tap a task button below to start one.")

	h.reply(ctx, b, chatID, sb.String(), tg.InlineKeyboard(rows...))
}

// handleTaskOpen shows the task card with an open button and a completion
// button appropriate for the task type.
func (h *Handler) handleTaskOpen(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	taskID := strings.TrimPrefix(update.CallbackQuery.Data, "task_open:")

	task, err := h.catalog.Get(ctx, taskID)
	if err != nil {
		h.answer(ctx, b, update.CallbackQuery.ID, "Task not found.")
		return
	}

	chatID := callbackChatID(update)
	if chatID == 0 {
		h.answer(ctx, b, update.CallbackQuery.ID, "")
		return
	}

	var rows [][]models.InlineKeyboardButton
	done := "task_done:" + task.ID
	switch task.Type {
	case domain.TaskJoinChannel:
		if link := task.Link(); link != "" {
			rows = append(rows, tg.ButtonRow(tg.URLButton("Open Channel", link)))
		}
		rows = append(rows, tg.ButtonRow(tg.InlineButton("I joined ✅", done)))
	case domain.TaskJoinBot:
		if link := task.Link(); link != "" {
			rows = append(rows, tg.ButtonRow(tg.URLButton("Open Bot", link)))
		}
		rows = append(rows, tg.ButtonRow(tg.InlineButton("Done ✅", done)))
	case domain.TaskVisit:
		if link := task.Link(); link != "" {
			rows = append(rows, tg.ButtonRow(tg.URLButton("Open Link", link)))
		}
		rows = append(rows, tg.ButtonRow(tg.InlineButton("I Visited ✅", done)))
	default:
		if link := task.Link(); link != "" {
			rows = append(rows, tg.ButtonRow(tg.URLButton("Open Link", link)))
		}
		rows = append(rows, tg.ButtonRow(tg.InlineButton("Done ✅", done)))
	}

	text := fmt.Sprintf("<b>%s</b>\n\n%s\n\nReward: <b>%d</b> pts", task.Title, task.Description, task.Reward)
	h.reply(ctx, b, chatID, text, tg.InlineKeyboard(rows...))
	h.answer(ctx, b, update.CallbackQuery.ID, "")
}

// handleTaskDone claims the task reward.
func (h *Handler) handleTaskDone(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}
	taskID := strings.TrimPrefix(update.CallbackQuery.Data, "task_done:")

	result, err := h.completions.Claim(ctx, user.TelegramID, taskID)
	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		h.answer(ctx, b, update.CallbackQuery.ID, "Task not found.")
		return
	case errors.Is(err, domain.ErrTaskAlreadyDone):
		h.answer(ctx, b, update.CallbackQuery.ID, "You already completed this task.")
		return
	case err != nil:
		slog.Error("task claim failed", "user_id", user.TelegramID, "task_id", taskID, "error", err)
		h.answer(ctx, b, update.CallbackQuery.ID, "Something went wrong. Try again later.")
		return
	}

	h.answer(ctx, b, update.CallbackQuery.ID, fmt.Sprintf("Task completed! You earned %d pts.", result.Reward))

	if chatID := callbackChatID(update); chatID != 0 {
		text := fmt.Sprintf(
			"✅ Task completed!\nYou received <b>%d</b> points.\nPoints: <b>%d</b>\nReferrals: <b>%d</b>",
			result.Reward, result.NewBalance, user.Referrals,
		)
		h.reply(ctx, b, chatID, text, nil)
	}
}
