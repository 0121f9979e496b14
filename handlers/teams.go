// handlers/teams.go
package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"teamboard/middleware"
	"teamboard/models"
	"teamboard/store"
)

// ListTeams returns the team collection.
// GET /api/teams
func (h *Handler) ListTeams(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "teams": h.store.Teams.Teams()})
}

// GetTeam returns one team.
// GET /api/teams/:id
func (h *Handler) GetTeam(c *fiber.Ctx) error {
	team, ok := h.store.Teams.Get(c.Params("id"))
	if !ok {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Team not found"})
	}
	return c.JSON(fiber.Map{"success": true, "team": team})
}

// CreateTeam creates a team with the caller as its only (admin) member.
// POST /api/teams
func (h *Handler) CreateTeam(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	var draft store.TeamDraft
	if err := c.BodyParser(&draft); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	draft.CreatedBy = userID

	team, err := h.store.Teams.Create(draft)
	if err != nil {
		var ve *store.ValidationError
		if errors.As(err, &ve) {
			return c.Status(400).JSON(fiber.Map{"success": false, "error": ve.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "team": team})
}

// InviteMember records a pending invitation for the team.
// POST /api/teams/:id/invitations
func (h *Handler) InviteMember(c *fiber.Ctx) error {
	var draft store.InviteDraft
	if err := c.BodyParser(&draft); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	if _, ok := h.store.Teams.Get(c.Params("id")); !ok {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Team not found"})
	}

	inv, err := h.store.Teams.InviteMember(c.Params("id"), draft)
	if err != nil {
		var ve *store.ValidationError
		if errors.As(err, &ve) {
			return c.Status(400).JSON(fiber.Map{"success": false, "error": ve.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "invitation": inv})
}

// ListInvitations returns the pending invitations.
// GET /api/teams/invitations
func (h *Handler) ListInvitations(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "invitations": h.store.Teams.Invitations()})
}

// UpdateMemberRole sets a member's role within the team.
// PUT /api/teams/:id/members/:userId/role
func (h *Handler) UpdateMemberRole(c *fiber.Ctx) error {
	var req struct {
		Role models.Role `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	err := h.store.Teams.UpdateMemberRole(c.Params("id"), c.Params("userId"), req.Role)
	if err != nil {
		return teamError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// RemoveMember drops a member from the team. Removing the last admin is
// allowed.
// DELETE /api/teams/:id/members/:userId
func (h *Handler) RemoveMember(c *fiber.Ctx) error {
	if err := h.store.Teams.RemoveMember(c.Params("id"), c.Params("userId")); err != nil {
		return teamError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// SelectTeam marks the current team.
// PUT /api/teams/:id/select
func (h *Handler) SelectTeam(c *fiber.Ctx) error {
	h.store.Teams.SetCurrentTeam(c.Params("id"))
	return c.JSON(fiber.Map{"success": true})
}

func teamError(c *fiber.Ctx, err error) error {
	var ve *store.ValidationError
	if errors.As(err, &ve) {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": ve.Error()})
	}
	if store.IsNotFound(err) {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return c.Status(500).JSON(fiber.Map{"success": false, "error": err.Error()})
}
