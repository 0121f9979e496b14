package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamboard/models"
)

func draftTask(title string) TaskDraft {
	return TaskDraft{
		Title:     title,
		ProjectID: "1",
		TeamID:    "1",
		CreatedBy: "1",
	}
}

func TestCreateTask_Defaults(t *testing.T) {
	s, _ := newEmptyStore(t)

	task, err := s.Tasks.Create(draftTask("Write docs"))
	require.NoError(t, err)

	assert.NotEmpty(t, task.ID)
	assert.False(t, task.CreatedAt.IsZero())
	assert.Equal(t, models.TaskTodo, task.Status)
	assert.Equal(t, models.PriorityMedium, task.Priority)
	assert.NotNil(t, task.Comments)
	assert.Empty(t, task.Comments)
	assert.Len(t, s.Tasks.Tasks(), 1)
}

func TestCreateTask_Validation(t *testing.T) {
	tests := []struct {
		name  string
		draft TaskDraft
	}{
		{"missing title", TaskDraft{ProjectID: "1", TeamID: "1", CreatedBy: "1"}},
		{"missing project", TaskDraft{Title: "x", TeamID: "1", CreatedBy: "1"}},
		{"missing team", TaskDraft{Title: "x", ProjectID: "1", CreatedBy: "1"}},
		{"missing creator", TaskDraft{Title: "x", ProjectID: "1", TeamID: "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newEmptyStore(t)

			_, err := s.Tasks.Create(tt.draft)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Empty(t, s.Tasks.Tasks(), "failed create must not mutate the collection")
			assert.NotEmpty(t, s.Tasks.Err())
		})
	}
}

func TestMoveTask_AllTransitions(t *testing.T) {
	statuses := []models.TaskStatus{models.TaskTodo, models.TaskInProgress, models.TaskDone}

	for _, from := range statuses {
		for _, to := range statuses {
			if from == to {
				continue
			}
			t.Run(string(from)+"_to_"+string(to), func(t *testing.T) {
				s, _ := newEmptyStore(t)
				d := draftTask("t")
				d.Status = from
				task, err := s.Tasks.Create(d)
				require.NoError(t, err)

				moved, err := s.Tasks.Move(task.ID, to)
				require.NoError(t, err)
				assert.Equal(t, to, moved.Status)

				got, ok := s.Tasks.Get(task.ID)
				require.True(t, ok)
				assert.Equal(t, to, got.Status)
			})
		}
	}
}

func TestMoveTask_SameStatusIdempotent(t *testing.T) {
	s, _ := newEmptyStore(t)
	task, err := s.Tasks.Create(draftTask("t"))
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		moved, err := s.Tasks.Move(task.ID, models.TaskTodo)
		require.NoError(t, err)
		assert.Equal(t, models.TaskTodo, moved.Status)
	}
}

func TestMoveTask_MissingID(t *testing.T) {
	s, _ := newEmptyStore(t)

	_, err := s.Tasks.Move("missing", models.TaskDone)
	assert.True(t, IsNotFound(err))
	assert.Empty(t, s.Tasks.Tasks())
}

func TestUpdateTask_MergesPartialFields(t *testing.T) {
	s, _ := newEmptyStore(t)
	task, err := s.Tasks.Create(draftTask("original"))
	require.NoError(t, err)

	title := "renamed"
	prio := models.PriorityHigh
	updated, err := s.Tasks.Update(task.ID, models.TaskPatch{Title: &title, Priority: &prio})
	require.NoError(t, err)

	assert.Equal(t, "renamed", updated.Title)
	assert.Equal(t, models.PriorityHigh, updated.Priority)
	assert.Equal(t, models.TaskTodo, updated.Status, "untouched fields survive the merge")
	assert.Equal(t, task.ProjectID, updated.ProjectID)
}

func TestUpdateTask_MissingIDLeavesCollectionAlone(t *testing.T) {
	s, _ := newEmptyStore(t)
	task, err := s.Tasks.Create(draftTask("keep"))
	require.NoError(t, err)

	title := "x"
	_, err = s.Tasks.Update("missing", models.TaskPatch{Title: &title})
	assert.True(t, IsNotFound(err))

	got, ok := s.Tasks.Get(task.ID)
	require.True(t, ok)
	assert.Equal(t, "keep", got.Title)
}

func TestDeleteTask_NoCascade(t *testing.T) {
	s, _ := newTestStore(t)

	// Seed task "1" is referenced by seed notification "1"; deleting the
	// task leaves the notification dangling on purpose.
	require.NoError(t, s.Tasks.Delete("1"))

	_, ok := s.Tasks.Get("1")
	assert.False(t, ok)

	var found bool
	for _, n := range s.Notifications.Notifications() {
		if n.Data["task_id"] == "1" {
			found = true
		}
	}
	assert.True(t, found, "notification referencing the deleted task must remain")
}

func TestAddComment(t *testing.T) {
	s, _ := newEmptyStore(t)
	task, err := s.Tasks.Create(draftTask("t"))
	require.NoError(t, err)

	comment, err := s.Tasks.AddComment(task.ID, "looks good", "2")
	require.NoError(t, err)
	assert.NotEmpty(t, comment.ID)
	assert.False(t, comment.CreatedAt.IsZero())

	got, _ := s.Tasks.Get(task.ID)
	require.Len(t, got.Comments, 1)
	assert.Equal(t, "looks good", got.Comments[0].Text)
}

func TestAddComment_MissingTask(t *testing.T) {
	s, _ := newEmptyStore(t)

	_, err := s.Tasks.AddComment("missing", "hello", "1")
	assert.True(t, IsNotFound(err))
}

func TestCompletionRate(t *testing.T) {
	tests := []struct {
		name  string
		total int
		done  int
		want  int
	}{
		{"empty collection", 0, 0, 0},
		{"one of four done", 4, 1, 25},
		{"one of three done", 3, 1, 33},
		{"two of three done", 3, 2, 67},
		{"all done", 2, 2, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newEmptyStore(t)
			for i := 0; i < tt.total; i++ {
				d := draftTask("t")
				if i < tt.done {
					d.Status = models.TaskDone
				}
				_, err := s.Tasks.Create(d)
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, s.Tasks.CompletionRate())
		})
	}
}

func TestCompletionRate_RecomputedNotCached(t *testing.T) {
	s, _ := newEmptyStore(t)
	task, err := s.Tasks.Create(draftTask("t"))
	require.NoError(t, err)
	require.Equal(t, 0, s.Tasks.CompletionRate())

	_, err = s.Tasks.Move(task.ID, models.TaskDone)
	require.NoError(t, err)
	assert.Equal(t, 100, s.Tasks.CompletionRate())

	_, err = s.Tasks.Move(task.ID, models.TaskTodo)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Tasks.CompletionRate())
}

func TestStatusCounts(t *testing.T) {
	s, _ := newTestStore(t)

	counts := s.Tasks.StatusCounts()
	assert.Equal(t, 1, counts[models.TaskTodo])
	assert.Equal(t, 1, counts[models.TaskInProgress])
	assert.Equal(t, 1, counts[models.TaskDone])
}

func TestTaskFilters(t *testing.T) {
	s, _ := newTestStore(t)

	s.Tasks.SetFilters(TaskFilters{ProjectID: "1"})
	assert.Len(t, s.Tasks.Filtered(), 2)

	s.Tasks.SetFilters(TaskFilters{Status: string(models.TaskTodo)})
	assert.Len(t, s.Tasks.Filtered(), 1, "filters merge, they do not replace")

	s.Tasks.ClearFilters()
	assert.Len(t, s.Tasks.Filtered(), 3)
	assert.Equal(t, FilterAll, s.Tasks.Filters().Status)
}

func TestTaskSnapshots_DetachedFromStore(t *testing.T) {
	s, _ := newTestStore(t)

	// Seed task "1" carries one comment.
	before, ok := s.Tasks.Get("1")
	require.True(t, ok)
	require.Len(t, before.Comments, 1)

	_, err := s.Tasks.AddComment("1", "second", "1")
	require.NoError(t, err)
	assert.Len(t, before.Comments, 1, "earlier snapshot keeps its comment list")

	// Writing through a snapshot must not reach the store.
	before.Comments[0].Text = "scribbled over"
	after, _ := s.Tasks.Get("1")
	assert.NotEqual(t, "scribbled over", after.Comments[0].Text)
}

func TestMoveTask_ErrorClearedOnRetry(t *testing.T) {
	s, a := newTestStore(t)

	a.FailNext("tasks.move", assert.AnError)
	_, err := s.Tasks.Move("1", models.TaskInProgress)
	require.Error(t, err)
	assert.Equal(t, assert.AnError.Error(), s.Tasks.Err())

	_, err = s.Tasks.Move("1", models.TaskInProgress)
	require.NoError(t, err)
	assert.Empty(t, s.Tasks.Err())
}

func TestTaskBackendFailure_Terminal(t *testing.T) {
	s, a := newEmptyStore(t)

	a.FailNext("tasks.create", assert.AnError)
	_, err := s.Tasks.Create(draftTask("t"))
	require.Error(t, err)
	assert.Empty(t, s.Tasks.Tasks())
	assert.Equal(t, assert.AnError.Error(), s.Tasks.Err())

	// No retry happens on its own; the next explicit attempt succeeds and
	// clears the recorded error.
	_, err = s.Tasks.Create(draftTask("t"))
	require.NoError(t, err)
	assert.Empty(t, s.Tasks.Err())
	assert.Len(t, s.Tasks.Tasks(), 1)
}
