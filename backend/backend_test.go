package backend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo_NoFailureByDefault(t *testing.T) {
	a := NewInstant()
	assert.NoError(t, a.Do(ClassAuth, "auth.login"))
	assert.NoError(t, a.Do(ClassQuick, "tasks.move"))
}

func TestFailNext_ConsumedOnce(t *testing.T) {
	a := NewInstant()

	a.FailNext("tasks.create", assert.AnError)
	assert.ErrorIs(t, a.Do(ClassCreate, "tasks.create"), assert.AnError)
	assert.NoError(t, a.Do(ClassCreate, "tasks.create"), "injected failure fires once")
}

func TestFailNext_ScopedToOperation(t *testing.T) {
	a := NewInstant()

	a.FailNext("tasks.create", assert.AnError)
	assert.NoError(t, a.Do(ClassCreate, "tasks.update"))
	assert.ErrorIs(t, a.Do(ClassCreate, "tasks.create"), assert.AnError)
}

func TestNewID_Unique(t *testing.T) {
	a := NewInstant()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := a.NewID()
		require.NotEmpty(t, id)
		require.False(t, seen[id])
		seen[id] = true
	}
}

func TestSetClock(t *testing.T) {
	a := NewInstant()
	frozen := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	a.SetClock(func() time.Time { return frozen })
	assert.Equal(t, frozen, a.Now())
}

func TestDelays(t *testing.T) {
	a := New()
	start := time.Now()
	require.NoError(t, a.Do(ClassQuick, "chat.send"))
	assert.GreaterOrEqual(t, time.Since(start), 300*time.Millisecond)
}

func TestAllowList_Verify(t *testing.T) {
	v := DefaultAllowList()

	user, err := v.Verify(Credentials{Email: "admin@example.com", Password: "admin123"})
	require.NoError(t, err)
	assert.Equal(t, "1", user.ID)

	_, err = v.Verify(Credentials{Email: "admin@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = v.Verify(Credentials{Email: "ghost@example.com", Password: "admin123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
