// models/notification.go
package models

import "time"

type NotificationType string

const (
	NotifyTaskAssigned      NotificationType = "task_assigned"
	NotifyTaskStatusChanged NotificationType = "task_status_changed"
	NotifyNewMessage        NotificationType = "new_message"
	NotifyTeamInvite        NotificationType = "team_invite"
)

type Notification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	UserID    string           `json:"user_id"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
	// Data is a free-form payload keyed to Type (task id, conversation id...).
	Data map[string]string `json:"data,omitempty"`
}
