// store/ui.go - UI Preference Store
package store

import (
	"sync"

	"teamboard/database"
	"teamboard/models"
)

// Modal names the view layer toggles.
var knownModals = []string{"createTeam", "createProject", "createTask", "inviteMember", "taskDetails"}

// UIStore is pure presentation state. Only the theme survives a restart.
type UIStore struct {
	mu    sync.Mutex
	kv    *database.KV
	prefs models.Preferences
}

func NewUIStore(kv *database.KV) *UIStore {
	s := &UIStore{
		kv: kv,
		prefs: models.Preferences{
			Theme:        "light",
			SidebarOpen:  true,
			SidebarWidth: 280,
			CurrentView:  "dashboard",
			Breadcrumbs:  []string{},
			Modals:       make(map[string]bool),
		},
	}
	for _, m := range knownModals {
		s.prefs.Modals[m] = false
	}
	if theme, err := kv.Get(database.KeyTheme); err == nil {
		s.prefs.Theme = theme
	}
	return s
}

func (s *UIStore) Preferences() models.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.prefs
	p.Modals = make(map[string]bool, len(s.prefs.Modals))
	for k, v := range s.prefs.Modals {
		p.Modals[k] = v
	}
	p.Breadcrumbs = append([]string(nil), s.prefs.Breadcrumbs...)
	return p
}

func (s *UIStore) SetTheme(theme string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs.Theme = theme
	s.kv.Put(database.KeyTheme, theme)
}

func (s *UIStore) ToggleTheme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.prefs.Theme == "light" {
		s.prefs.Theme = "dark"
	} else {
		s.prefs.Theme = "light"
	}
	s.kv.Put(database.KeyTheme, s.prefs.Theme)
	return s.prefs.Theme
}

func (s *UIStore) ToggleSidebar() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs.SidebarOpen = !s.prefs.SidebarOpen
}

func (s *UIStore) SetSidebarOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs.SidebarOpen = open
}

func (s *UIStore) SetSidebarWidth(width int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs.SidebarWidth = width
}

func (s *UIStore) ToggleMobileSidebar() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs.MobileSidebarOpen = !s.prefs.MobileSidebarOpen
}

func (s *UIStore) SetCurrentView(view string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs.CurrentView = view
}

func (s *UIStore) SetBreadcrumbs(crumbs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs.Breadcrumbs = append([]string(nil), crumbs...)
}

// OpenModal flips a known modal on. Unknown names are ignored.
func (s *UIStore) OpenModal(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.prefs.Modals[name]; ok {
		s.prefs.Modals[name] = true
	}
}

func (s *UIStore) CloseModal(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.prefs.Modals[name]; ok {
		s.prefs.Modals[name] = false
	}
}

func (s *UIStore) CloseAllModals() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name := range s.prefs.Modals {
		s.prefs.Modals[name] = false
	}
}
