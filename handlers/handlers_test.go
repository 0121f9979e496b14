package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"teamboard/backend"
	"teamboard/database"
	"teamboard/middleware"
	"teamboard/store"
)

const testSecret = "handlers-test-secret-0123456789abcdef"

// newTestApp wires the handlers into a fiber app the way main does, minus
// the rate limiter and websocket upgrade.
func newTestApp(t *testing.T) (*fiber.App, *store.Store) {
	t.Helper()
	t.Setenv("JWT_SECRET", testSecret)

	kv, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })

	st := store.New(store.Options{
		Backend:  backend.NewInstant(),
		Verifier: backend.DefaultAllowList(),
		KV:       kv,
		Secret:   []byte(testSecret),
		Seed:     true,
	})
	h := New(st)

	app := fiber.New()
	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/login", h.Login)
	authGroup.Post("/signup", h.Signup)
	authGroup.Post("/logout", middleware.Auth, h.Logout)
	authGroup.Get("/session", h.Session)

	userGroup := api.Group("/users", middleware.Auth)
	userGroup.Get("/me", h.Me)
	userGroup.Put("/me", h.UpdateMe)

	taskGroup := api.Group("/tasks", middleware.Auth)
	taskGroup.Get("/", h.ListTasks)
	taskGroup.Post("/", h.CreateTask)
	taskGroup.Get("/board", h.Board)
	taskGroup.Delete("/filters", h.ClearTaskFilters)
	taskGroup.Put("/:id", h.UpdateTask)
	taskGroup.Put("/:id/move", h.MoveTask)
	taskGroup.Delete("/:id", h.DeleteTask)
	taskGroup.Post("/:id/comments", h.AddComment)

	chatGroup := api.Group("/chat", middleware.Auth)
	chatGroup.Get("/conversations", h.ListConversations)
	chatGroup.Post("/conversations", h.CreateConversation)
	chatGroup.Get("/conversations/:id/messages", h.ConversationMessages)
	chatGroup.Put("/conversations/:id/read", h.MarkConversationRead)
	chatGroup.Put("/conversations/:id/select", h.SelectConversation)
	chatGroup.Post("/messages", h.SendMessage)
	chatGroup.Post("/typing", h.Typing)

	notificationGroup := api.Group("/notifications", middleware.Auth)
	notificationGroup.Get("/", h.ListNotifications)
	notificationGroup.Put("/read-all", h.MarkAllNotificationsRead)
	notificationGroup.Put("/:id/read", h.MarkNotificationRead)

	api.Get("/stats/dashboard", middleware.Auth, h.Dashboard)

	prefGroup := api.Group("/preferences", middleware.Auth)
	prefGroup.Get("/", h.GetPreferences)
	prefGroup.Put("/theme", h.SetTheme)

	return app, st
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var parsed map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed))
	}
	return resp, parsed
}

// login returns a valid bearer token for one of the allow-list accounts.
func login(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()

	resp, body := doJSON(t, app, "POST", "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, 200, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}
