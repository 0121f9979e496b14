// handlers/stats.go
package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// Dashboard returns the derived dashboard numbers. Everything here is
// recomputed from the live collections on each call; nothing is cached, so
// the figures can never go stale.
// GET /api/stats/dashboard
func (h *Handler) Dashboard(c *fiber.Ctx) error {
	counts := h.store.Tasks.StatusCounts()

	unreadMessages := 0
	for _, conv := range h.store.Chat.Conversations() {
		unreadMessages += conv.UnreadCount
	}

	return c.JSON(fiber.Map{
		"success":              true,
		"teams":                len(h.store.Teams.Teams()),
		"projects":             len(h.store.Projects.Projects()),
		"tasks":                len(h.store.Tasks.Tasks()),
		"task_counts":          counts,
		"completion_rate":      h.store.Tasks.CompletionRate(),
		"unread_notifications": h.store.Notifications.UnreadCount(),
		"unread_messages":      unreadMessages,
	})
}
