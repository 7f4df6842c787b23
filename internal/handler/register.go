package handler

import (
	"github.com/go-telegram/bot"
)

// Register registers all command and callback handlers on the bot instance.
// Free text (keyboard buttons and the ad flow) goes through HandleText via
// the default handler wired up in main.
func (h *Handler) Register() {
	// Commands
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, h.handleStart)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypePrefix, h.handleHelp)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/tasks", bot.MatchTypePrefix, h.handleTasks)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/balance", bot.MatchTypePrefix, h.handleBalance)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/points", bot.MatchTypePrefix, h.handleBalance)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/referrals", bot.MatchTypePrefix, h.handleReferrals)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/leaderboard", bot.MatchTypePrefix, h.handleLeaderboard)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/advertise", bot.MatchTypePrefix, h.handleAdvertise)

	// Admin commands
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/addtask", bot.MatchTypePrefix, h.handleAddTask)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/removetask", bot.MatchTypePrefix, h.handleRemoveTask)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/addpoints", bot.MatchTypePrefix, h.handleAddPoints)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/stats", bot.MatchTypePrefix, h.handleStats)

	// Task callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "task_open:", bot.MatchTypePrefix, h.handleTaskOpen)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "task_done:", bot.MatchTypePrefix, h.handleTaskDone)
}
