// store/notifications.go - Notification Store
package store

import (
	"sync"

	"teamboard/backend"
	"teamboard/models"
)

// NotificationDraft is a client-generated notification; unlike the other
// entities its id and timestamp are assigned locally, not by the backend.
type NotificationDraft struct {
	Type    models.NotificationType `json:"type"`
	Title   string                  `json:"title"`
	Message string                  `json:"message"`
	UserID  string                  `json:"user_id"`
	Data    map[string]string       `json:"data"`
}

type NotificationStore struct {
	mu      sync.Mutex
	backend *backend.Adapter

	notifications []models.Notification
	unread        int
	loading       bool
	err           string
}

func NewNotificationStore(a *backend.Adapter, seed []models.Notification) *NotificationStore {
	s := &NotificationStore{backend: a, notifications: seed}
	for _, n := range seed {
		if !n.Read {
			s.unread++
		}
	}
	return s
}

// cloneNotification detaches the data payload so snapshots do not alias the
// store's map.
func cloneNotification(n models.Notification) models.Notification {
	if n.Data != nil {
		data := make(map[string]string, len(n.Data))
		for k, v := range n.Data {
			data[k] = v
		}
		n.Data = data
	}
	return n
}

// Add prepends the notification: the collection is ordered newest-first.
func (s *NotificationStore) Add(draft NotificationDraft) models.Notification {
	n := models.Notification{
		ID:        s.backend.NewID(),
		Type:      draft.Type,
		Title:     draft.Title,
		Message:   draft.Message,
		UserID:    draft.UserID,
		Read:      false,
		CreatedAt: s.backend.Now(),
		Data:      draft.Data,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// The store keeps its own copy of the payload map; the caller keeps
	// theirs.
	s.notifications = append([]models.Notification{cloneNotification(n)}, s.notifications...)
	s.unread++
	return n
}

// MarkAsRead flips the notification to read and decrements the unread count
// by exactly one. Marking an already-read notification changes nothing.
func (s *NotificationStore) MarkAsRead(id string) error {
	s.begin()

	if err := s.backend.Do(backend.ClassQuick, "notifications.read"); err != nil {
		return s.failWith(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	for i := range s.notifications {
		if s.notifications[i].ID != id {
			continue
		}
		if !s.notifications[i].Read {
			s.notifications[i].Read = true
			if s.unread > 0 {
				s.unread--
			}
		}
		return nil
	}
	return &NotFoundError{Entity: "notification", ID: id}
}

// MarkAllAsRead flips every unread notification owned by the user and resets
// the unread count to zero.
func (s *NotificationStore) MarkAllAsRead(userID string) error {
	s.begin()

	if err := s.backend.Do(backend.ClassCreate, "notifications.readAll"); err != nil {
		return s.failWith(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	for i := range s.notifications {
		if s.notifications[i].UserID == userID {
			s.notifications[i].Read = true
		}
	}
	s.unread = 0
	return nil
}

// Delete removes the notification regardless of read state and decrements
// the unread count only when it was unread.
func (s *NotificationStore) Delete(id string) error {
	s.begin()

	if err := s.backend.Do(backend.ClassQuick, "notifications.delete"); err != nil {
		return s.failWith(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	kept := make([]models.Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if n.ID == id {
			if !n.Read && s.unread > 0 {
				s.unread--
			}
			continue
		}
		kept = append(kept, n)
	}
	s.notifications = kept
	return nil
}

func (s *NotificationStore) Notifications() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Notification, len(s.notifications))
	for i, n := range s.notifications {
		out[i] = cloneNotification(n)
	}
	return out
}

// ForUser returns the user's notifications, preserving newest-first order.
func (s *NotificationStore) ForUser(userID string) []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Notification
	for _, n := range s.notifications {
		if n.UserID == userID {
			out = append(out, cloneNotification(n))
		}
	}
	return out
}

func (s *NotificationStore) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unread
}

func (s *NotificationStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *NotificationStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}

func (s *NotificationStore) begin() {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()
}

func (s *NotificationStore) failWith(err error) error {
	s.mu.Lock()
	s.loading = false
	s.err = err.Error()
	s.mu.Unlock()
	return err
}
