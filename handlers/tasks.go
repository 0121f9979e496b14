// handlers/tasks.go - kanban endpoints
package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"teamboard/middleware"
	"teamboard/models"
	"teamboard/store"
)

// ListTasks returns tasks, filtered by any of the status/priority/assignee/
// project query parameters.
// GET /api/tasks
func (h *Handler) ListTasks(c *fiber.Ctx) error {
	filters := store.TaskFilters{
		Status:    c.Query("status"),
		Priority:  c.Query("priority"),
		Assignee:  c.Query("assignee"),
		ProjectID: c.Query("project_id"),
	}
	if filters != (store.TaskFilters{}) {
		h.store.Tasks.SetFilters(filters)
	}
	return c.JSON(fiber.Map{"success": true, "tasks": h.store.Tasks.Filtered(), "filters": h.store.Tasks.Filters()})
}

// CreateTask creates a task and, when it lands assigned to someone other
// than its creator, drops a task_assigned notification in their feed.
// POST /api/tasks
func (h *Handler) CreateTask(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	var draft store.TaskDraft
	if err := c.BodyParser(&draft); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	draft.CreatedBy = userID

	task, err := h.store.Tasks.Create(draft)
	if err != nil {
		var ve *store.ValidationError
		if errors.As(err, &ve) {
			return c.Status(400).JSON(fiber.Map{"success": false, "error": ve.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	if task.Assignee != "" && task.Assignee != userID {
		h.store.Notifications.Add(store.NotificationDraft{
			Type:    models.NotifyTaskAssigned,
			Title:   "Task Assigned",
			Message: fmt.Sprintf("You have been assigned to %q", task.Title),
			UserID:  task.Assignee,
			Data:    map[string]string{"task_id": task.ID, "project_id": task.ProjectID},
		})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "task": task})
}

// UpdateTask merges a partial patch onto a task.
// PUT /api/tasks/:id
func (h *Handler) UpdateTask(c *fiber.Ctx) error {
	var patch models.TaskPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	task, err := h.store.Tasks.Update(c.Params("id"), patch)
	if err != nil {
		return taskError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "task": task})
}

// MoveTask sets a task's board column. All six directed transitions are
// legal; moving onto the current column succeeds and changes nothing.
// PUT /api/tasks/:id/move
func (h *Handler) MoveTask(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	var req struct {
		Status models.TaskStatus `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	before, _ := h.store.Tasks.Get(c.Params("id"))
	task, err := h.store.Tasks.Move(c.Params("id"), req.Status)
	if err != nil {
		return taskError(c, err)
	}

	if task.Assignee != "" && task.Assignee != userID && before.Status != task.Status {
		h.store.Notifications.Add(store.NotificationDraft{
			Type:    models.NotifyTaskStatusChanged,
			Title:   "Task Status Updated",
			Message: fmt.Sprintf("Task %q moved to %s", task.Title, task.Status),
			UserID:  task.Assignee,
			Data: map[string]string{
				"task_id":    task.ID,
				"old_status": string(before.Status),
				"new_status": string(task.Status),
			},
		})
	}

	return c.JSON(fiber.Map{"success": true, "task": task})
}

// DeleteTask removes a task. References elsewhere are left dangling; there
// is no cascade.
// DELETE /api/tasks/:id
func (h *Handler) DeleteTask(c *fiber.Ctx) error {
	if err := h.store.Tasks.Delete(c.Params("id")); err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true})
}

// AddComment appends a comment to a task.
// POST /api/tasks/:id/comments
func (h *Handler) AddComment(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	comment, err := h.store.Tasks.AddComment(c.Params("id"), req.Text, userID)
	if err != nil {
		return taskError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "comment": comment})
}

// Board returns the kanban projection: per-column tasks and counts plus the
// completion rate, all recomputed from the live collection.
// GET /api/tasks/board
func (h *Handler) Board(c *fiber.Ctx) error {
	tasks := h.store.Tasks.Tasks()
	columns := map[models.TaskStatus][]models.Task{
		models.TaskTodo:       {},
		models.TaskInProgress: {},
		models.TaskDone:       {},
	}
	for _, t := range tasks {
		columns[t.Status] = append(columns[t.Status], t)
	}

	return c.JSON(fiber.Map{
		"success":         true,
		"columns":         columns,
		"counts":          h.store.Tasks.StatusCounts(),
		"completion_rate": h.store.Tasks.CompletionRate(),
	})
}

// ClearTaskFilters resets the board filters.
// DELETE /api/tasks/filters
func (h *Handler) ClearTaskFilters(c *fiber.Ctx) error {
	h.store.Tasks.ClearFilters()
	return c.JSON(fiber.Map{"success": true, "filters": h.store.Tasks.Filters()})
}

func taskError(c *fiber.Ctx, err error) error {
	var ve *store.ValidationError
	if errors.As(err, &ve) {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": ve.Error()})
	}
	if store.IsNotFound(err) {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return c.Status(500).JSON(fiber.Map{"success": false, "error": err.Error()})
}
