// store/teams.go - Team Store
package store

import (
	"sync"

	"teamboard/backend"
	"teamboard/models"
)

type TeamDraft struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedBy   string `json:"created_by"`
}

type InviteDraft struct {
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

type TeamStore struct {
	mu      sync.Mutex
	backend *backend.Adapter

	teams       []models.Team
	invitations []models.Invitation
	current     string
	loading     bool
	err         string
}

func NewTeamStore(a *backend.Adapter, seed []models.Team) *TeamStore {
	return &TeamStore{backend: a, teams: seed}
}

// cloneTeam detaches the member list so snapshots do not alias the store's
// backing array.
func cloneTeam(t models.Team) models.Team {
	if t.Members != nil {
		t.Members = append([]models.TeamMember{}, t.Members...)
	}
	return t
}

// Create creates a team whose sole member is its creator, as admin.
func (s *TeamStore) Create(draft TeamDraft) (models.Team, error) {
	s.begin()

	if draft.Name == "" {
		return models.Team{}, s.failWith(&ValidationError{Field: "name", Reason: "is required"})
	}
	if draft.CreatedBy == "" {
		return models.Team{}, s.failWith(&ValidationError{Field: "created_by", Reason: "is required"})
	}

	if err := s.backend.Do(backend.ClassCreate, "teams.create"); err != nil {
		return models.Team{}, s.failWith(err)
	}

	now := s.backend.Now()
	team := models.Team{
		ID:          s.backend.NewID(),
		Name:        draft.Name,
		Description: draft.Description,
		CreatedBy:   draft.CreatedBy,
		CreatedAt:   now,
		Members: []models.TeamMember{
			{UserID: draft.CreatedBy, Role: models.RoleAdmin, JoinedAt: now},
		},
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.teams = append(s.teams, team)
	return cloneTeam(team), nil
}

// InviteMember records a pending invitation. It does not add a member; the
// invite sits in the invitations list until acted on.
func (s *TeamStore) InviteMember(teamID string, draft InviteDraft) (models.Invitation, error) {
	s.begin()

	if draft.Email == "" {
		return models.Invitation{}, s.failWith(&ValidationError{Field: "email", Reason: "is required"})
	}
	role := draft.Role
	if role == "" {
		role = models.RoleMember
	}
	if !role.Valid() {
		return models.Invitation{}, s.failWith(&ValidationError{Field: "role", Reason: "unknown role"})
	}

	if err := s.backend.Do(backend.ClassCreate, "teams.invite"); err != nil {
		return models.Invitation{}, s.failWith(err)
	}

	inv := models.Invitation{
		ID:        s.backend.NewID(),
		TeamID:    teamID,
		Email:     draft.Email,
		Role:      role,
		Status:    "pending",
		InvitedAt: s.backend.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.invitations = append(s.invitations, inv)
	return inv, nil
}

// UpdateMemberRole sets a member's role.
func (s *TeamStore) UpdateMemberRole(teamID, userID string, role models.Role) error {
	s.begin()

	if !role.Valid() {
		return s.failWith(&ValidationError{Field: "role", Reason: "unknown role"})
	}

	if err := s.backend.Do(backend.ClassCreate, "teams.role"); err != nil {
		return s.failWith(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	for i := range s.teams {
		if s.teams[i].ID != teamID {
			continue
		}
		if m := s.teams[i].Member(userID); m != nil {
			m.Role = role
			return nil
		}
		return &NotFoundError{Entity: "member", ID: userID}
	}
	return &NotFoundError{Entity: "team", ID: teamID}
}

// RemoveMember drops a member from the team. Nothing stops the last admin
// from being removed; callers get exactly what they asked for.
func (s *TeamStore) RemoveMember(teamID, userID string) error {
	s.begin()

	if err := s.backend.Do(backend.ClassCreate, "teams.remove"); err != nil {
		return s.failWith(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	for i := range s.teams {
		if s.teams[i].ID != teamID {
			continue
		}
		// A fresh slice, not an in-place filter: returned snapshots may
		// still alias the old array.
		members := make([]models.TeamMember, 0, len(s.teams[i].Members))
		for _, m := range s.teams[i].Members {
			if m.UserID != userID {
				members = append(members, m)
			}
		}
		s.teams[i].Members = members
		return nil
	}
	return &NotFoundError{Entity: "team", ID: teamID}
}

// RemoveInvitation drops a pending invitation.
func (s *TeamStore) RemoveInvitation(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := make([]models.Invitation, 0, len(s.invitations))
	for _, inv := range s.invitations {
		if inv.ID != id {
			kept = append(kept, inv)
		}
	}
	s.invitations = kept
}

func (s *TeamStore) SetCurrentTeam(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = id
}

func (s *TeamStore) CurrentTeam() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *TeamStore) Teams() []models.Team {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Team, len(s.teams))
	for i, t := range s.teams {
		out[i] = cloneTeam(t)
	}
	return out
}

func (s *TeamStore) Get(id string) (models.Team, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.teams {
		if t.ID == id {
			return cloneTeam(t), true
		}
	}
	return models.Team{}, false
}

func (s *TeamStore) Invitations() []models.Invitation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Invitation, len(s.invitations))
	copy(out, s.invitations)
	return out
}

func (s *TeamStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *TeamStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *TeamStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}

func (s *TeamStore) begin() {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()
}

func (s *TeamStore) failWith(err error) error {
	s.mu.Lock()
	s.loading = false
	s.err = err.Error()
	s.mu.Unlock()
	return err
}
