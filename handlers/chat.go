// handlers/chat.go
package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"teamboard/middleware"
	"teamboard/models"
	"teamboard/store"
)

// ListConversations returns the conversation collection.
// GET /api/chat/conversations
func (h *Handler) ListConversations(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "conversations": h.store.Chat.Conversations()})
}

// CreateConversation creates an empty team- or project-scoped conversation.
// POST /api/chat/conversations
func (h *Handler) CreateConversation(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	var draft store.ConversationDraft
	if err := c.BodyParser(&draft); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	draft.CreatedBy = userID

	if draft.TeamID == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "team_id required"})
	}
	if draft.Type == "" {
		draft.Type = models.ConversationTeam
		if draft.ProjectID != "" {
			draft.Type = models.ConversationProject
		}
	}

	conv, err := h.store.Chat.CreateConversation(draft)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "conversation": conv})
}

// ConversationMessages returns the conversation's messages in timestamp
// order. The association is derived from the (team, project) key pair; no
// message stores a conversation id.
// GET /api/chat/conversations/:id/messages
func (h *Handler) ConversationMessages(c *fiber.Ctx) error {
	if _, ok := h.store.Chat.Conversation(c.Params("id")); !ok {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Conversation not found"})
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"messages": h.store.Chat.ConversationMessages(c.Params("id")),
		"typing":   h.store.Chat.TypingUsers(c.Params("id")),
	})
}

// SendMessage appends a chat message. When it lands in a conversation that
// is not currently selected, every other participant gets a new_message
// notification. The message is also fanned out to websocket subscribers.
// POST /api/chat/messages
func (h *Handler) SendMessage(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	var draft store.MessageDraft
	if err := c.BodyParser(&draft); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	draft.UserID = userID
	if user := h.store.Session.User(); user != nil && user.ID == userID {
		draft.UserName = user.Name
		draft.UserAvatar = user.Avatar
	}

	if draft.Text == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "text required"})
	}
	if draft.TeamID == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "team_id required"})
	}

	msg, err := h.store.Chat.SendMessage(draft)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	h.hub.Broadcast(Event{Type: "message", Payload: msg})
	h.notifyNewMessage(msg)

	return c.Status(201).JSON(fiber.Map{"success": true, "message": msg})
}

// MarkConversationRead zeroes the unread counter. Idempotent.
// PUT /api/chat/conversations/:id/read
func (h *Handler) MarkConversationRead(c *fiber.Ctx) error {
	h.store.Chat.MarkConversationAsRead(c.Params("id"))
	return c.JSON(fiber.Map{"success": true})
}

// SelectConversation marks the conversation as currently open, so incoming
// messages stop bumping its unread count.
// PUT /api/chat/conversations/:id/select
func (h *Handler) SelectConversation(c *fiber.Ctx) error {
	h.store.Chat.SetCurrentConversation(c.Params("id"))
	h.store.Chat.MarkConversationAsRead(c.Params("id"))
	return c.JSON(fiber.Map{"success": true})
}

// Typing records or clears a typing signal; it expires on its own after the
// typing TTL. The signal is fanned out to websocket subscribers and never
// persisted.
// POST /api/chat/typing
func (h *Handler) Typing(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	var req struct {
		ConversationID string `json:"conversation_id"`
		IsTyping       bool   `json:"is_typing"`
	}
	if err := c.BodyParser(&req); err != nil || req.ConversationID == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "conversation_id required"})
	}

	h.store.Chat.SetTypingUser(req.ConversationID, userID, req.IsTyping)
	h.hub.Broadcast(Event{Type: "typing", Payload: fiber.Map{
		"conversation_id": req.ConversationID,
		"user_id":         userID,
		"is_typing":       req.IsTyping,
	}})

	return c.JSON(fiber.Map{"success": true, "typing": h.store.Chat.TypingUsers(req.ConversationID)})
}

func (h *Handler) notifyNewMessage(msg models.Message) {
	var conv *models.Conversation
	for _, cand := range h.store.Chat.Conversations() {
		if cand.Matches(msg.TeamID, msg.ProjectID) {
			conv = &cand
			break
		}
	}
	if conv == nil || conv.ID == h.store.Chat.CurrentConversation() {
		return
	}

	for _, participant := range conv.Participants {
		if participant == msg.UserID {
			continue
		}
		h.store.Notifications.Add(store.NotificationDraft{
			Type:    models.NotifyNewMessage,
			Title:   "New Message",
			Message: fmt.Sprintf("New message in %q chat", conv.Name),
			UserID:  participant,
			Data:    map[string]string{"conversation_id": conv.ID},
		})
	}
}
