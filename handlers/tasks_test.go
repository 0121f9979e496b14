package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamboard/models"
)

func TestCreateTaskEndpoint_NotifiesAssignee(t *testing.T) {
	app, st := newTestApp(t)
	token := login(t, app, "admin@example.com", "admin123")
	before := st.Notifications.UnreadCount()

	resp, body := doJSON(t, app, "POST", "/api/tasks/", token, map[string]any{
		"title":      "Review release notes",
		"project_id": "1",
		"team_id":    "1",
		"assignee":   "2",
	})
	require.Equal(t, 201, resp.StatusCode)
	task := body["task"].(map[string]any)
	assert.Equal(t, "todo", task["status"])
	assert.Equal(t, "1", task["created_by"], "creator comes from the token, not the body")

	// Assigning someone else drops a notification in their feed.
	assert.Equal(t, before+1, st.Notifications.UnreadCount())
	latest := st.Notifications.ForUser("2")[0]
	assert.Equal(t, models.NotifyTaskAssigned, latest.Type)
}

func TestCreateTaskEndpoint_SelfAssignSkipsNotification(t *testing.T) {
	app, st := newTestApp(t)
	token := login(t, app, "admin@example.com", "admin123")
	before := st.Notifications.UnreadCount()

	resp, _ := doJSON(t, app, "POST", "/api/tasks/", token, map[string]any{
		"title":      "Self-assigned chore",
		"project_id": "1",
		"team_id":    "1",
		"assignee":   "1",
	})
	require.Equal(t, 201, resp.StatusCode)
	assert.Equal(t, before, st.Notifications.UnreadCount())
}

func TestCreateTaskEndpoint_Validation(t *testing.T) {
	app, _ := newTestApp(t)
	token := login(t, app, "admin@example.com", "admin123")

	resp, body := doJSON(t, app, "POST", "/api/tasks/", token, map[string]any{"project_id": "1", "team_id": "1"})
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, false, body["success"])
}

func TestMoveTaskEndpoint(t *testing.T) {
	app, st := newTestApp(t)
	token := login(t, app, "member@example.com", "member123")

	// Seed task "2" is assigned to user "1"; the member moving it triggers
	// a status-change notification for the assignee.
	before := len(st.Notifications.ForUser("1"))
	resp, body := doJSON(t, app, "PUT", "/api/tasks/2/move", token, map[string]string{"status": "done"})
	require.Equal(t, 200, resp.StatusCode)
	task := body["task"].(map[string]any)
	assert.Equal(t, "done", task["status"])
	require.Len(t, st.Notifications.ForUser("1"), before+1)
	assert.Equal(t, models.NotifyTaskStatusChanged, st.Notifications.ForUser("1")[0].Type)

	// Same-column move succeeds without a second notification.
	resp, _ = doJSON(t, app, "PUT", "/api/tasks/2/move", token, map[string]string{"status": "done"})
	require.Equal(t, 200, resp.StatusCode)
	assert.Len(t, st.Notifications.ForUser("1"), before+1)
}

func TestMoveTaskEndpoint_Missing(t *testing.T) {
	app, _ := newTestApp(t)
	token := login(t, app, "admin@example.com", "admin123")

	resp, _ := doJSON(t, app, "PUT", "/api/tasks/missing/move", token, map[string]string{"status": "done"})
	assert.Equal(t, 404, resp.StatusCode)
}

func TestBoardEndpoint(t *testing.T) {
	app, _ := newTestApp(t)
	token := login(t, app, "admin@example.com", "admin123")

	resp, body := doJSON(t, app, "GET", "/api/tasks/board", token, nil)
	require.Equal(t, 200, resp.StatusCode)

	counts := body["counts"].(map[string]any)
	assert.Equal(t, float64(1), counts["todo"])
	assert.Equal(t, float64(1), counts["in-progress"])
	assert.Equal(t, float64(1), counts["done"])
	assert.Equal(t, float64(33), body["completion_rate"])
}

func TestListTasksEndpoint_QueryFilters(t *testing.T) {
	app, _ := newTestApp(t)
	token := login(t, app, "admin@example.com", "admin123")

	resp, body := doJSON(t, app, "GET", "/api/tasks/?project_id=1", token, nil)
	require.Equal(t, 200, resp.StatusCode)
	assert.Len(t, body["tasks"].([]any), 2)

	// Filters persist until cleared.
	_, body = doJSON(t, app, "GET", "/api/tasks/", token, nil)
	assert.Len(t, body["tasks"].([]any), 2)

	resp, _ = doJSON(t, app, "DELETE", "/api/tasks/filters", token, nil)
	require.Equal(t, 200, resp.StatusCode)
	_, body = doJSON(t, app, "GET", "/api/tasks/", token, nil)
	assert.Len(t, body["tasks"].([]any), 3)
}

func TestAddCommentEndpoint(t *testing.T) {
	app, st := newTestApp(t)
	token := login(t, app, "member@example.com", "member123")

	resp, body := doJSON(t, app, "POST", "/api/tasks/2/comments", token, map[string]string{"text": "on it"})
	require.Equal(t, 201, resp.StatusCode)
	comment := body["comment"].(map[string]any)
	assert.Equal(t, "2", comment["user_id"])

	task, _ := st.Tasks.Get("2")
	require.Len(t, task.Comments, 1)
}

func TestDashboardEndpoint(t *testing.T) {
	app, _ := newTestApp(t)
	token := login(t, app, "admin@example.com", "admin123")

	resp, body := doJSON(t, app, "GET", "/api/stats/dashboard", token, nil)
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, float64(2), body["teams"])
	assert.Equal(t, float64(2), body["projects"])
	assert.Equal(t, float64(3), body["tasks"])
	assert.Equal(t, float64(33), body["completion_rate"])
	assert.Equal(t, float64(1), body["unread_messages"])
}
