// handlers/preferences.go - UI preference endpoints
package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// GetPreferences returns the UI preference snapshot.
// GET /api/preferences
func (h *Handler) GetPreferences(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "preferences": h.store.UI.Preferences()})
}

// SetTheme sets the theme; an empty body toggles it. The theme is the only
// preference that survives a restart.
// PUT /api/preferences/theme
func (h *Handler) SetTheme(c *fiber.Ctx) error {
	var req struct {
		Theme string `json:"theme"`
	}
	_ = c.BodyParser(&req)

	if req.Theme == "" {
		return c.JSON(fiber.Map{"success": true, "theme": h.store.UI.ToggleTheme()})
	}
	if req.Theme != "light" && req.Theme != "dark" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "theme must be light or dark"})
	}
	h.store.UI.SetTheme(req.Theme)
	return c.JSON(fiber.Map{"success": true, "theme": req.Theme})
}

// SetSidebar updates sidebar visibility and width.
// PUT /api/preferences/sidebar
func (h *Handler) SetSidebar(c *fiber.Ctx) error {
	var req struct {
		Open  *bool `json:"open"`
		Width *int  `json:"width"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	if req.Open != nil {
		h.store.UI.SetSidebarOpen(*req.Open)
	}
	if req.Width != nil {
		h.store.UI.SetSidebarWidth(*req.Width)
	}
	return c.JSON(fiber.Map{"success": true, "preferences": h.store.UI.Preferences()})
}

// SetView updates the current view and breadcrumbs.
// PUT /api/preferences/view
func (h *Handler) SetView(c *fiber.Ctx) error {
	var req struct {
		View        string   `json:"view"`
		Breadcrumbs []string `json:"breadcrumbs"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	if req.View != "" {
		h.store.UI.SetCurrentView(req.View)
	}
	if req.Breadcrumbs != nil {
		h.store.UI.SetBreadcrumbs(req.Breadcrumbs)
	}
	return c.JSON(fiber.Map{"success": true, "preferences": h.store.UI.Preferences()})
}

// SetModal opens or closes a named modal. Unknown modal names are ignored,
// matching the store's behavior.
// PUT /api/preferences/modals
func (h *Handler) SetModal(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
		Open bool   `json:"open"`
		All  bool   `json:"all"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	switch {
	case req.All && !req.Open:
		h.store.UI.CloseAllModals()
	case req.Open:
		h.store.UI.OpenModal(req.Name)
	default:
		h.store.UI.CloseModal(req.Name)
	}
	return c.JSON(fiber.Map{"success": true, "preferences": h.store.UI.Preferences()})
}
