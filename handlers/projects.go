// handlers/projects.go
package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"teamboard/middleware"
	"teamboard/store"
)

// ListProjects returns the project collection.
// GET /api/projects
func (h *Handler) ListProjects(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "projects": h.store.Projects.Projects()})
}

// GetProject returns one project.
// GET /api/projects/:id
func (h *Handler) GetProject(c *fiber.Ctx) error {
	project, ok := h.store.Projects.Get(c.Params("id"))
	if !ok {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Project not found"})
	}
	return c.JSON(fiber.Map{"success": true, "project": project})
}

// CreateProject creates a project owned by a team, members defaulting to the
// caller.
// POST /api/projects
func (h *Handler) CreateProject(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	var draft store.ProjectDraft
	if err := c.BodyParser(&draft); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	draft.CreatedBy = userID

	project, err := h.store.Projects.Create(draft)
	if err != nil {
		return projectError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "project": project})
}

// UpdateProject merges a partial patch onto a project.
// PUT /api/projects/:id
func (h *Handler) UpdateProject(c *fiber.Ctx) error {
	var patch store.ProjectPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	project, err := h.store.Projects.Update(c.Params("id"), patch)
	if err != nil {
		return projectError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "project": project})
}

// DeleteProject removes a project. Its tasks and conversations stay behind.
// DELETE /api/projects/:id
func (h *Handler) DeleteProject(c *fiber.Ctx) error {
	if err := h.store.Projects.Delete(c.Params("id")); err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true})
}

// AddProjectMember adds a user id to the project's member set.
// POST /api/projects/:id/members
func (h *Handler) AddProjectMember(c *fiber.Ctx) error {
	var req struct {
		UserID string `json:"user_id"`
	}
	if err := c.BodyParser(&req); err != nil || req.UserID == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "user_id required"})
	}

	if err := h.store.Projects.AddMember(c.Params("id"), req.UserID); err != nil {
		return projectError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// RemoveProjectMember removes a user id from the project's member set.
// DELETE /api/projects/:id/members/:userId
func (h *Handler) RemoveProjectMember(c *fiber.Ctx) error {
	if err := h.store.Projects.RemoveMember(c.Params("id"), c.Params("userId")); err != nil {
		return projectError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// SelectProject marks the current project.
// PUT /api/projects/:id/select
func (h *Handler) SelectProject(c *fiber.Ctx) error {
	h.store.Projects.SetCurrentProject(c.Params("id"))
	return c.JSON(fiber.Map{"success": true})
}

func projectError(c *fiber.Ctx, err error) error {
	var ve *store.ValidationError
	if errors.As(err, &ve) {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": ve.Error()})
	}
	if store.IsNotFound(err) {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return c.Status(500).JSON(fiber.Map{"success": false, "error": err.Error()})
}
