// models/chat.go
package models

import "time"

type ConversationType string

const (
	ConversationTeam    ConversationType = "team"
	ConversationProject ConversationType = "project"
)

// Message carries a denormalized snapshot of its sender (name, avatar) taken
// at send time. It does not store a conversation id; the owning conversation
// is derived from the (TeamID, ProjectID) pair, ProjectID being empty for
// team-scoped messages.
type Message struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	UserID     string    `json:"user_id"`
	UserName   string    `json:"user_name"`
	UserAvatar string    `json:"user_avatar"`
	TeamID     string    `json:"team_id"`
	ProjectID  string    `json:"project_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type Conversation struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Type         ConversationType `json:"type"`
	TeamID       string           `json:"team_id"`
	ProjectID    string           `json:"project_id,omitempty"`
	LastMessage  *Message         `json:"last_message"`
	UnreadCount  int              `json:"unread_count"`
	Participants []string         `json:"participants"`
}

// Matches reports whether a message keyed by (teamID, projectID) belongs to
// this conversation.
func (c *Conversation) Matches(teamID, projectID string) bool {
	return c.TeamID == teamID && c.ProjectID == projectID
}
