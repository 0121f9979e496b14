// store/tasks.go - Task Store (kanban)
package store

import (
	"math"
	"sync"
	"time"

	"teamboard/backend"
	"teamboard/models"
)

// FilterAll is the sentinel meaning "no filtering on this dimension".
const FilterAll = "all"

type TaskFilters struct {
	Status    string `json:"status"`
	Priority  string `json:"priority"`
	Assignee  string `json:"assignee"`
	ProjectID string `json:"project_id"`
}

func defaultTaskFilters() TaskFilters {
	return TaskFilters{Status: FilterAll, Priority: FilterAll, Assignee: FilterAll, ProjectID: FilterAll}
}

// TaskDraft is the payload for creating a task. Status and Priority fall back
// to todo/medium when empty.
type TaskDraft struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      models.TaskStatus   `json:"status"`
	Priority    models.TaskPriority `json:"priority"`
	Assignee    string              `json:"assignee"`
	ProjectID   string              `json:"project_id"`
	TeamID      string              `json:"team_id"`
	DueDate     time.Time           `json:"due_date"`
	CreatedBy   string              `json:"created_by"`
}

// TaskStore owns the task collection. Status counts and the completion rate
// are derived from the live collection on every read, never cached.
type TaskStore struct {
	mu      sync.Mutex
	backend *backend.Adapter

	tasks   []models.Task
	filters TaskFilters
	loading bool
	err     string
}

func NewTaskStore(a *backend.Adapter, seed []models.Task) *TaskStore {
	return &TaskStore{backend: a, tasks: seed, filters: defaultTaskFilters()}
}

// cloneTask detaches the comment list so snapshots do not alias the store's
// backing array.
func cloneTask(t models.Task) models.Task {
	if t.Comments != nil {
		t.Comments = append([]models.Comment{}, t.Comments...)
	}
	return t
}

// Create validates the draft, round-trips through the mock backend for the
// server-assigned id and timestamp, and appends the task.
func (s *TaskStore) Create(draft TaskDraft) (models.Task, error) {
	s.begin()

	if draft.Title == "" {
		return models.Task{}, s.failWith(&ValidationError{Field: "title", Reason: "is required"})
	}
	if draft.ProjectID == "" {
		return models.Task{}, s.failWith(&ValidationError{Field: "project_id", Reason: "is required"})
	}
	if draft.TeamID == "" {
		return models.Task{}, s.failWith(&ValidationError{Field: "team_id", Reason: "is required"})
	}
	if draft.CreatedBy == "" {
		return models.Task{}, s.failWith(&ValidationError{Field: "created_by", Reason: "is required"})
	}
	if draft.Status == "" {
		draft.Status = models.TaskTodo
	}
	if !draft.Status.Valid() {
		return models.Task{}, s.failWith(&ValidationError{Field: "status", Reason: "unknown status"})
	}
	if draft.Priority == "" {
		draft.Priority = models.PriorityMedium
	}
	if !draft.Priority.Valid() {
		return models.Task{}, s.failWith(&ValidationError{Field: "priority", Reason: "unknown priority"})
	}

	if err := s.backend.Do(backend.ClassCreate, "tasks.create"); err != nil {
		return models.Task{}, s.failWith(err)
	}

	task := models.Task{
		ID:          s.backend.NewID(),
		Title:       draft.Title,
		Description: draft.Description,
		Status:      draft.Status,
		Priority:    draft.Priority,
		Assignee:    draft.Assignee,
		ProjectID:   draft.ProjectID,
		TeamID:      draft.TeamID,
		DueDate:     draft.DueDate,
		CreatedBy:   draft.CreatedBy,
		CreatedAt:   s.backend.Now(),
		Comments:    []models.Comment{},
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.tasks = append(s.tasks, task)
	return cloneTask(task), nil
}

// Update merges the patch onto the task. A missing id leaves the collection
// untouched and reports NotFoundError.
func (s *TaskStore) Update(id string, patch models.TaskPatch) (models.Task, error) {
	s.begin()

	if patch.Status != nil && !patch.Status.Valid() {
		return models.Task{}, s.failWith(&ValidationError{Field: "status", Reason: "unknown status"})
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		return models.Task{}, s.failWith(&ValidationError{Field: "priority", Reason: "unknown priority"})
	}

	if err := s.backend.Do(backend.ClassCreate, "tasks.update"); err != nil {
		return models.Task{}, s.failWith(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	for i := range s.tasks {
		if s.tasks[i].ID != id {
			continue
		}
		t := &s.tasks[i]
		if patch.Title != nil {
			t.Title = *patch.Title
		}
		if patch.Description != nil {
			t.Description = *patch.Description
		}
		if patch.Status != nil {
			t.Status = *patch.Status
		}
		if patch.Priority != nil {
			t.Priority = *patch.Priority
		}
		if patch.Assignee != nil {
			t.Assignee = *patch.Assignee
		}
		if patch.DueDate != nil {
			t.DueDate = *patch.DueDate
		}
		return cloneTask(*t), nil
	}
	return models.Task{}, &NotFoundError{Entity: "task", ID: id}
}

// Move sets the task status. Any of the six directed transitions is legal,
// and moving to the current status is a no-op that still succeeds. The board
// treats drag-and-drop as distinct from form edits, hence the named
// operation; the store-level effect equals Update with only a status.
func (s *TaskStore) Move(id string, status models.TaskStatus) (models.Task, error) {
	s.begin()

	if !status.Valid() {
		return models.Task{}, s.failWith(&ValidationError{Field: "status", Reason: "unknown status"})
	}

	if err := s.backend.Do(backend.ClassQuick, "tasks.move"); err != nil {
		return models.Task{}, s.failWith(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Status = status
			return cloneTask(s.tasks[i]), nil
		}
	}
	return models.Task{}, &NotFoundError{Entity: "task", ID: id}
}

// Delete removes the task from the collection. Conversations and
// notifications referencing it are left alone; there is no cascade.
func (s *TaskStore) Delete(id string) error {
	s.begin()

	if err := s.backend.Do(backend.ClassCreate, "tasks.delete"); err != nil {
		return s.failWith(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	kept := make([]models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
	return nil
}

// AddComment appends a comment with a server-assigned id and timestamp.
func (s *TaskStore) AddComment(taskID, text, userID string) (models.Comment, error) {
	s.begin()

	if err := s.backend.Do(backend.ClassQuick, "tasks.comment"); err != nil {
		return models.Comment{}, s.failWith(err)
	}

	comment := models.Comment{
		ID:        s.backend.NewID(),
		Text:      text,
		UserID:    userID,
		CreatedAt: s.backend.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	for i := range s.tasks {
		if s.tasks[i].ID == taskID {
			s.tasks[i].Comments = append(s.tasks[i].Comments, comment)
			return comment, nil
		}
	}
	return models.Comment{}, &NotFoundError{Entity: "task", ID: taskID}
}

// SetFilters merges non-empty fields onto the current filters.
func (s *TaskStore) SetFilters(f TaskFilters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f.Status != "" {
		s.filters.Status = f.Status
	}
	if f.Priority != "" {
		s.filters.Priority = f.Priority
	}
	if f.Assignee != "" {
		s.filters.Assignee = f.Assignee
	}
	if f.ProjectID != "" {
		s.filters.ProjectID = f.ProjectID
	}
}

func (s *TaskStore) ClearFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = defaultTaskFilters()
}

func (s *TaskStore) Filters() TaskFilters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// Tasks returns a copy of the whole collection.
func (s *TaskStore) Tasks() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = cloneTask(t)
	}
	return out
}

// Filtered returns the tasks passing the current filters.
func (s *TaskStore) Filtered() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Task
	for _, t := range s.tasks {
		if s.filters.Status != FilterAll && string(t.Status) != s.filters.Status {
			continue
		}
		if s.filters.Priority != FilterAll && string(t.Priority) != s.filters.Priority {
			continue
		}
		if s.filters.Assignee != FilterAll && t.Assignee != s.filters.Assignee {
			continue
		}
		if s.filters.ProjectID != FilterAll && t.ProjectID != s.filters.ProjectID {
			continue
		}
		out = append(out, cloneTask(t))
	}
	return out
}

func (s *TaskStore) Get(id string) (models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return cloneTask(t), true
		}
	}
	return models.Task{}, false
}

// StatusCounts recomputes the per-column counts from the live collection.
func (s *TaskStore) StatusCounts() map[models.TaskStatus]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := map[models.TaskStatus]int{
		models.TaskTodo:       0,
		models.TaskInProgress: 0,
		models.TaskDone:       0,
	}
	for _, t := range s.tasks {
		counts[t.Status]++
	}
	return counts
}

// CompletionRate is round(100 * done/total), 0 for an empty collection.
func (s *TaskStore) CompletionRate() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := len(s.tasks)
	if total == 0 {
		return 0
	}
	done := 0
	for _, t := range s.tasks {
		if t.Status == models.TaskDone {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(total) * 100))
}

func (s *TaskStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *TaskStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *TaskStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}

func (s *TaskStore) begin() {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()
}

func (s *TaskStore) failWith(err error) error {
	s.mu.Lock()
	s.loading = false
	s.err = err.Error()
	s.mu.Unlock()
	return err
}
