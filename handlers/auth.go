// handlers/auth.go
package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"teamboard/backend"
	"teamboard/middleware"
	"teamboard/models"
	"teamboard/store"
)

type AuthResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token,omitempty"`
	User    *models.User `json:"user,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// Login authenticates against the credential verifier.
// POST /api/auth/login
func (h *Handler) Login(c *fiber.Ctx) error {
	var req backend.Credentials
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(AuthResponse{Success: false, Error: "Invalid request body"})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(400).JSON(AuthResponse{Success: false, Error: "Email and password required"})
	}

	user, token, err := h.store.Session.Login(req)
	if err != nil {
		var authErr *store.AuthError
		if errors.As(err, &authErr) {
			return c.Status(401).JSON(AuthResponse{Success: false, Error: "Invalid credentials"})
		}
		return c.Status(500).JSON(AuthResponse{Success: false, Error: err.Error()})
	}

	return c.JSON(AuthResponse{Success: true, Token: token, User: &user})
}

// Signup creates a new account. The mock layer performs no uniqueness check.
// POST /api/auth/signup
func (h *Handler) Signup(c *fiber.Ctx) error {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(AuthResponse{Success: false, Error: "Invalid request body"})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(400).JSON(AuthResponse{Success: false, Error: "Email and password required"})
	}

	user, token, err := h.store.Session.Signup(req.Name, req.Email, req.Password)
	if err != nil {
		return c.Status(500).JSON(AuthResponse{Success: false, Error: err.Error()})
	}

	return c.Status(201).JSON(AuthResponse{Success: true, Token: token, User: &user})
}

// Logout clears the persisted session.
// POST /api/auth/logout
func (h *Handler) Logout(c *fiber.Ctx) error {
	if err := h.store.Session.Logout(); err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to clear session"})
	}
	return c.JSON(fiber.Map{"success": true})
}

// Session restores the persisted session if both durable entries are
// present. A missing session is not an error: the client falls back to the
// login screen.
// GET /api/auth/session
func (h *Handler) Session(c *fiber.Ctx) error {
	err := h.store.Session.Restore()
	if err != nil {
		if errors.Is(err, store.ErrNoSession) {
			return c.JSON(fiber.Map{"success": true, "authenticated": false})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"authenticated": true,
		"token":         h.store.Session.Token(),
		"user":          h.store.Session.User(),
		"is_admin":      h.store.Session.IsAdmin(),
	})
}

// Me returns the authenticated user's snapshot.
// GET /api/users/me
func (h *Handler) Me(c *fiber.Ctx) error {
	if _, err := middleware.UserID(c); err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	user := h.store.Session.User()
	if user == nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "No active session"})
	}
	return c.JSON(fiber.Map{"success": true, "user": user, "is_admin": h.store.Session.IsAdmin()})
}

// UpdateMe merges profile fields onto the session user.
// PUT /api/users/me
func (h *Handler) UpdateMe(c *fiber.Ctx) error {
	if _, err := middleware.UserID(c); err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	var req struct {
		Name   string `json:"name"`
		Email  string `json:"email"`
		Avatar string `json:"avatar"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	h.store.Session.UpdateProfile(req.Name, req.Email, req.Avatar)
	return c.JSON(fiber.Map{"success": true, "user": h.store.Session.User()})
}
