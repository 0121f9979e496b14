// store/projects.go - Project Store
package store

import (
	"sync"
	"time"

	"teamboard/backend"
	"teamboard/models"
)

type ProjectDraft struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	TeamID      string    `json:"team_id"`
	DueDate     time.Time `json:"due_date"`
	CreatedBy   string    `json:"created_by"`
}

// ProjectPatch carries partial updates, nil meaning "leave alone".
type ProjectPatch struct {
	Name        *string               `json:"name,omitempty"`
	Description *string               `json:"description,omitempty"`
	Status      *models.ProjectStatus `json:"status,omitempty"`
	DueDate     *time.Time            `json:"due_date,omitempty"`
}

type ProjectStore struct {
	mu      sync.Mutex
	backend *backend.Adapter

	projects []models.Project
	current  string
	loading  bool
	err      string
}

func NewProjectStore(a *backend.Adapter, seed []models.Project) *ProjectStore {
	return &ProjectStore{backend: a, projects: seed}
}

// cloneProject detaches the member list so snapshots do not alias the
// store's backing array.
func cloneProject(p models.Project) models.Project {
	if p.Members != nil {
		p.Members = append([]string{}, p.Members...)
	}
	return p
}

// Create creates an active project whose member set starts as its creator.
// The team reference is taken on faith: nothing checks it points at a live
// team.
func (s *ProjectStore) Create(draft ProjectDraft) (models.Project, error) {
	s.begin()

	if draft.Name == "" {
		return models.Project{}, s.failWith(&ValidationError{Field: "name", Reason: "is required"})
	}
	if draft.TeamID == "" {
		return models.Project{}, s.failWith(&ValidationError{Field: "team_id", Reason: "is required"})
	}
	if draft.CreatedBy == "" {
		return models.Project{}, s.failWith(&ValidationError{Field: "created_by", Reason: "is required"})
	}

	if err := s.backend.Do(backend.ClassCreate, "projects.create"); err != nil {
		return models.Project{}, s.failWith(err)
	}

	project := models.Project{
		ID:          s.backend.NewID(),
		Name:        draft.Name,
		Description: draft.Description,
		TeamID:      draft.TeamID,
		Status:      models.ProjectActive,
		Members:     []string{draft.CreatedBy},
		DueDate:     draft.DueDate,
		CreatedBy:   draft.CreatedBy,
		CreatedAt:   s.backend.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.projects = append(s.projects, project)
	return cloneProject(project), nil
}

// Update merges the patch onto the project.
func (s *ProjectStore) Update(id string, patch ProjectPatch) (models.Project, error) {
	s.begin()

	if patch.Status != nil {
		switch *patch.Status {
		case models.ProjectActive, models.ProjectCompleted, models.ProjectOnHold:
		default:
			return models.Project{}, s.failWith(&ValidationError{Field: "status", Reason: "unknown status"})
		}
	}

	if err := s.backend.Do(backend.ClassCreate, "projects.update"); err != nil {
		return models.Project{}, s.failWith(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	for i := range s.projects {
		if s.projects[i].ID != id {
			continue
		}
		p := &s.projects[i]
		if patch.Name != nil {
			p.Name = *patch.Name
		}
		if patch.Description != nil {
			p.Description = *patch.Description
		}
		if patch.Status != nil {
			p.Status = *patch.Status
		}
		if patch.DueDate != nil {
			p.DueDate = *patch.DueDate
		}
		return cloneProject(*p), nil
	}
	return models.Project{}, &NotFoundError{Entity: "project", ID: id}
}

// Delete removes the project and clears the current selection if it pointed
// at it. Tasks and conversations keyed to the project stay behind.
func (s *ProjectStore) Delete(id string) error {
	s.begin()

	if err := s.backend.Do(backend.ClassCreate, "projects.delete"); err != nil {
		return s.failWith(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	kept := make([]models.Project, 0, len(s.projects))
	for _, p := range s.projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.projects = kept
	if s.current == id {
		s.current = ""
	}
	return nil
}

// AddMember adds the user to the project's member set. Adding an existing
// member is a no-op.
func (s *ProjectStore) AddMember(projectID, userID string) error {
	s.begin()

	if err := s.backend.Do(backend.ClassCreate, "projects.addMember"); err != nil {
		return s.failWith(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	for i := range s.projects {
		if s.projects[i].ID != projectID {
			continue
		}
		if !s.projects[i].HasMember(userID) {
			s.projects[i].Members = append(s.projects[i].Members, userID)
		}
		return nil
	}
	return &NotFoundError{Entity: "project", ID: projectID}
}

func (s *ProjectStore) RemoveMember(projectID, userID string) error {
	s.begin()

	if err := s.backend.Do(backend.ClassCreate, "projects.removeMember"); err != nil {
		return s.failWith(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	for i := range s.projects {
		if s.projects[i].ID != projectID {
			continue
		}
		members := make([]string, 0, len(s.projects[i].Members))
		for _, id := range s.projects[i].Members {
			if id != userID {
				members = append(members, id)
			}
		}
		s.projects[i].Members = members
		return nil
	}
	return &NotFoundError{Entity: "project", ID: projectID}
}

func (s *ProjectStore) SetCurrentProject(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = id
}

func (s *ProjectStore) CurrentProject() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *ProjectStore) Projects() []models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Project, len(s.projects))
	for i, p := range s.projects {
		out[i] = cloneProject(p)
	}
	return out
}

func (s *ProjectStore) Get(id string) (models.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.projects {
		if p.ID == id {
			return cloneProject(p), true
		}
	}
	return models.Project{}, false
}

func (s *ProjectStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *ProjectStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *ProjectStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}

func (s *ProjectStore) begin() {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()
}

func (s *ProjectStore) failWith(err error) error {
	s.mu.Lock()
	s.loading = false
	s.err = err.Error()
	s.mu.Unlock()
	return err
}
