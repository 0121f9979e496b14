package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamboard/models"
)

func TestNotifications_SeedUnreadCount(t *testing.T) {
	s, _ := newTestStore(t)

	// Seed carries three notifications, one of them already read.
	assert.Equal(t, 2, s.Notifications.UnreadCount())
	assert.Len(t, s.Notifications.Notifications(), 3)
}

func TestAddNotification_PrependsNewestFirst(t *testing.T) {
	s, _ := newTestStore(t)

	n := s.Notifications.Add(NotificationDraft{
		Type:    models.NotifyTeamInvite,
		Title:   "Team Invite",
		Message: "You were invited to Design Team",
		UserID:  "2",
	})
	assert.NotEmpty(t, n.ID)
	assert.False(t, n.Read)
	assert.False(t, n.CreatedAt.IsZero())

	all := s.Notifications.Notifications()
	require.NotEmpty(t, all)
	assert.Equal(t, n.ID, all[0].ID)
	assert.Equal(t, 3, s.Notifications.UnreadCount())
}

func TestMarkAsRead_DecrementsExactlyOnce(t *testing.T) {
	s, _ := newTestStore(t)
	require.Equal(t, 2, s.Notifications.UnreadCount())

	require.NoError(t, s.Notifications.MarkAsRead("1"))
	assert.Equal(t, 1, s.Notifications.UnreadCount())

	// Marking it again must not decrement a second time.
	require.NoError(t, s.Notifications.MarkAsRead("1"))
	assert.Equal(t, 1, s.Notifications.UnreadCount())

	// Seed notification "2" is already read.
	require.NoError(t, s.Notifications.MarkAsRead("2"))
	assert.Equal(t, 1, s.Notifications.UnreadCount())
}

func TestMarkAsRead_Missing(t *testing.T) {
	s, _ := newTestStore(t)

	err := s.Notifications.MarkAsRead("missing")
	assert.True(t, IsNotFound(err))
	assert.Equal(t, 2, s.Notifications.UnreadCount())
}

func TestMarkAllAsRead_ScopedToUser(t *testing.T) {
	s, _ := newTestStore(t)

	require.NoError(t, s.Notifications.MarkAllAsRead("1"))
	assert.Equal(t, 0, s.Notifications.UnreadCount())

	for _, n := range s.Notifications.ForUser("1") {
		assert.True(t, n.Read)
	}
	// User 2's unread notification keeps its flag even though the counter
	// resets; the counter tracks the session's badge, not a per-user tally.
	for _, n := range s.Notifications.ForUser("2") {
		assert.False(t, n.Read)
	}
}

func TestDeleteNotification(t *testing.T) {
	s, _ := newTestStore(t)

	// Deleting an unread notification drops the counter.
	require.NoError(t, s.Notifications.Delete("1"))
	assert.Equal(t, 1, s.Notifications.UnreadCount())
	assert.Len(t, s.Notifications.Notifications(), 2)

	// Deleting a read one does not.
	require.NoError(t, s.Notifications.Delete("2"))
	assert.Equal(t, 1, s.Notifications.UnreadCount())

	// Deleting a missing id changes nothing.
	require.NoError(t, s.Notifications.Delete("missing"))
	assert.Equal(t, 1, s.Notifications.UnreadCount())
	assert.Len(t, s.Notifications.Notifications(), 1)
}

func TestUnreadCount_FloorsAtZero(t *testing.T) {
	s, _ := newEmptyStore(t)

	n := s.Notifications.Add(NotificationDraft{Type: models.NotifyNewMessage, Title: "m", UserID: "1"})
	require.NoError(t, s.Notifications.MarkAsRead(n.ID))
	assert.Equal(t, 0, s.Notifications.UnreadCount())

	require.NoError(t, s.Notifications.Delete(n.ID))
	assert.Equal(t, 0, s.Notifications.UnreadCount())
}

func TestNotificationsForUser_PreservesOrder(t *testing.T) {
	s, _ := newEmptyStore(t)

	first := s.Notifications.Add(NotificationDraft{Type: models.NotifyNewMessage, Title: "a", UserID: "1"})
	s.Notifications.Add(NotificationDraft{Type: models.NotifyNewMessage, Title: "b", UserID: "2"})
	second := s.Notifications.Add(NotificationDraft{Type: models.NotifyNewMessage, Title: "c", UserID: "1"})

	mine := s.Notifications.ForUser("1")
	require.Len(t, mine, 2)
	assert.Equal(t, second.ID, mine[0].ID)
	assert.Equal(t, first.ID, mine[1].ID)
}

func TestMarkAsRead_BackendFailure(t *testing.T) {
	s, a := newTestStore(t)

	a.FailNext("notifications.read", assert.AnError)
	err := s.Notifications.MarkAsRead("1")
	require.Error(t, err)
	assert.Equal(t, assert.AnError.Error(), s.Notifications.Err())
	assert.Equal(t, 2, s.Notifications.UnreadCount())

	// The next attempt succeeds and clears the recorded error.
	require.NoError(t, s.Notifications.MarkAsRead("1"))
	assert.Empty(t, s.Notifications.Err())
	assert.Equal(t, 1, s.Notifications.UnreadCount())
}

func TestNotificationSnapshots_DetachedFromStore(t *testing.T) {
	s, _ := newTestStore(t)

	var snap models.Notification
	for _, n := range s.Notifications.Notifications() {
		if n.ID == "1" {
			snap = n
		}
	}
	require.NotNil(t, snap.Data)

	// Writing through a snapshot's payload map must not reach the store.
	snap.Data["task_id"] = "tampered"
	for _, n := range s.Notifications.Notifications() {
		if n.ID == "1" {
			assert.Equal(t, "1", n.Data["task_id"])
		}
	}
}
