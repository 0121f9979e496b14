// handlers/notifications.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"teamboard/middleware"
	"teamboard/store"
)

// ListNotifications returns the caller's notifications, newest first.
// GET /api/notifications
func (h *Handler) ListNotifications(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"notifications": h.store.Notifications.ForUser(userID),
		"unread_count":  h.store.Notifications.UnreadCount(),
	})
}

// AddNotification records a client-generated notification; id and timestamp
// are assigned locally, and the entry is prepended.
// POST /api/notifications
func (h *Handler) AddNotification(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	var draft store.NotificationDraft
	if err := c.BodyParser(&draft); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if draft.UserID == "" {
		draft.UserID = userID
	}
	if draft.Type == "" || draft.Title == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "type and title required"})
	}

	n := h.store.Notifications.Add(draft)
	return c.Status(201).JSON(fiber.Map{"success": true, "notification": n})
}

// MarkNotificationRead flips one notification to read. Repeating the call
// changes nothing further.
// PUT /api/notifications/:id/read
func (h *Handler) MarkNotificationRead(c *fiber.Ctx) error {
	if err := h.store.Notifications.MarkAsRead(c.Params("id")); err != nil {
		if store.IsNotFound(err) {
			return c.Status(404).JSON(fiber.Map{"success": false, "error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "unread_count": h.store.Notifications.UnreadCount()})
}

// MarkAllNotificationsRead flips every unread notification of the caller.
// PUT /api/notifications/read-all
func (h *Handler) MarkAllNotificationsRead(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	if err := h.store.Notifications.MarkAllAsRead(userID); err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "unread_count": h.store.Notifications.UnreadCount()})
}

// DeleteNotification removes a notification regardless of read state.
// DELETE /api/notifications/:id
func (h *Handler) DeleteNotification(c *fiber.Ctx) error {
	if err := h.store.Notifications.Delete(c.Params("id")); err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "unread_count": h.store.Notifications.UnreadCount()})
}
