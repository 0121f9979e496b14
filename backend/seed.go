// backend/seed.go - canned data returned by the mock layer on first load
package backend

import (
	"time"

	"teamboard/models"
)

// SeedUsers returns the two allow-list identities. Index 0 is the admin.
func SeedUsers() []models.User {
	return []models.User{
		{
			ID:        "1",
			Email:     "admin@example.com",
			Name:      "Admin User",
			Role:      models.RoleAdmin,
			Avatar:    "https://via.placeholder.com/40",
			CreatedAt: time.Now(),
		},
		{
			ID:        "2",
			Email:     "member@example.com",
			Name:      "Team Member",
			Role:      models.RoleMember,
			Avatar:    "https://via.placeholder.com/40",
			CreatedAt: time.Now(),
		},
	}
}

func SeedTeams() []models.Team {
	now := time.Now()
	return []models.Team{
		{
			ID:          "1",
			Name:        "Development Team",
			Description: "Main development team for web applications",
			CreatedBy:   "1",
			CreatedAt:   now,
			Members: []models.TeamMember{
				{UserID: "1", Role: models.RoleAdmin, JoinedAt: now},
				{UserID: "2", Role: models.RoleMember, JoinedAt: now},
			},
		},
		{
			ID:          "2",
			Name:        "Design Team",
			Description: "UI/UX design and creative team",
			CreatedBy:   "1",
			CreatedAt:   now,
			Members: []models.TeamMember{
				{UserID: "1", Role: models.RoleAdmin, JoinedAt: now},
			},
		},
	}
}

func SeedProjects() []models.Project {
	now := time.Now()
	return []models.Project{
		{
			ID:          "1",
			Name:        "E-commerce Website",
			Description: "Build a modern e-commerce platform",
			TeamID:      "1",
			Status:      models.ProjectActive,
			Members:     []string{"1", "2"},
			DueDate:     now.Add(30 * 24 * time.Hour),
			CreatedBy:   "1",
			CreatedAt:   now,
		},
		{
			ID:          "2",
			Name:        "Mobile App Design",
			Description: "Design UI/UX for mobile application",
			TeamID:      "2",
			Status:      models.ProjectActive,
			Members:     []string{"1"},
			DueDate:     now.Add(20 * 24 * time.Hour),
			CreatedBy:   "1",
			CreatedAt:   now,
		},
	}
}

func SeedTasks() []models.Task {
	now := time.Now()
	return []models.Task{
		{
			ID:          "1",
			Title:       "Design Homepage Layout",
			Description: "Create wireframes and mockups for the homepage",
			Status:      models.TaskTodo,
			Priority:    models.PriorityHigh,
			Assignee:    "2",
			ProjectID:   "1",
			TeamID:      "1",
			DueDate:     now.Add(7 * 24 * time.Hour),
			CreatedBy:   "1",
			CreatedAt:   now,
			Comments: []models.Comment{
				{ID: "1", Text: "Should we use a hero section?", UserID: "1", CreatedAt: now},
			},
		},
		{
			ID:          "2",
			Title:       "Implement User Authentication",
			Description: "Set up JWT authentication and user management",
			Status:      models.TaskInProgress,
			Priority:    models.PriorityHigh,
			Assignee:    "1",
			ProjectID:   "1",
			TeamID:      "1",
			DueDate:     now.Add(5 * 24 * time.Hour),
			CreatedBy:   "1",
			CreatedAt:   now,
			Comments:    []models.Comment{},
		},
		{
			ID:          "3",
			Title:       "Create Mobile App Mockups",
			Description: "Design mobile app screens and user flows",
			Status:      models.TaskDone,
			Priority:    models.PriorityMedium,
			Assignee:    "1",
			ProjectID:   "2",
			TeamID:      "2",
			DueDate:     now.Add(-2 * 24 * time.Hour),
			CreatedBy:   "1",
			CreatedAt:   now,
			Comments:    []models.Comment{},
		},
	}
}

func SeedMessages() []models.Message {
	now := time.Now()
	return []models.Message{
		{
			ID:         "1",
			Text:       "Hey team! How's the project going?",
			UserID:     "1",
			UserName:   "Admin User",
			UserAvatar: "https://via.placeholder.com/40",
			TeamID:     "1",
			CreatedAt:  now.Add(-2 * time.Hour),
		},
		{
			ID:         "2",
			Text:       "Great! I just finished the authentication system",
			UserID:     "2",
			UserName:   "Team Member",
			UserAvatar: "https://via.placeholder.com/40",
			TeamID:     "1",
			ProjectID:  "1",
			CreatedAt:  now.Add(-1 * time.Hour),
		},
		{
			ID:         "3",
			Text:       "Awesome! Can you show me the code?",
			UserID:     "1",
			UserName:   "Admin User",
			UserAvatar: "https://via.placeholder.com/40",
			TeamID:     "1",
			ProjectID:  "1",
			CreatedAt:  now.Add(-30 * time.Minute),
		},
	}
}

func SeedConversations() []models.Conversation {
	msgs := SeedMessages()
	return []models.Conversation{
		{
			ID:           "1",
			Name:         "Development Team Chat",
			Type:         models.ConversationTeam,
			TeamID:       "1",
			LastMessage:  &msgs[0],
			UnreadCount:  0,
			Participants: []string{"1", "2"},
		},
		{
			ID:           "2",
			Name:         "E-commerce Website",
			Type:         models.ConversationProject,
			TeamID:       "1",
			ProjectID:    "1",
			LastMessage:  &msgs[2],
			UnreadCount:  1,
			Participants: []string{"1", "2"},
		},
	}
}

func SeedNotifications() []models.Notification {
	now := time.Now()
	return []models.Notification{
		{
			ID:        "1",
			Type:      models.NotifyTaskAssigned,
			Title:     "Task Assigned",
			Message:   `You have been assigned to "Design Homepage Layout"`,
			UserID:    "2",
			Read:      false,
			CreatedAt: now.Add(-2 * time.Hour),
			Data:      map[string]string{"task_id": "1", "project_id": "1"},
		},
		{
			ID:        "2",
			Type:      models.NotifyTaskStatusChanged,
			Title:     "Task Status Updated",
			Message:   `Task "Implement User Authentication" moved to In Progress`,
			UserID:    "1",
			Read:      true,
			CreatedAt: now.Add(-1 * time.Hour),
			Data:      map[string]string{"task_id": "2", "old_status": "todo", "new_status": "in-progress"},
		},
		{
			ID:        "3",
			Type:      models.NotifyNewMessage,
			Title:     "New Message",
			Message:   `New message in "E-commerce Website" chat`,
			UserID:    "1",
			Read:      false,
			CreatedAt: now.Add(-30 * time.Minute),
			Data:      map[string]string{"conversation_id": "2"},
		},
	}
}
