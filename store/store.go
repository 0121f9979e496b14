// store/store.go - application state
//
// Store is the explicit application-state object: one sub-store per slice,
// all sharing the same mock backend adapter. Handlers receive it by
// reference; there are no package-level globals. Each mutation is a
// synchronous reducer step applied under the owning store's lock, while the
// simulated latency elapses outside it, so two in-flight dispatches against
// the same entity resolve last-write-wins.
package store

import (
	"teamboard/backend"
	"teamboard/database"
)

type Store struct {
	Session       *SessionStore
	Teams         *TeamStore
	Projects      *ProjectStore
	Tasks         *TaskStore
	Chat          *ChatStore
	Notifications *NotificationStore
	UI            *UIStore
}

type Options struct {
	Backend  *backend.Adapter
	Verifier backend.CredentialVerifier
	KV       *database.KV
	Secret   []byte
	// Seed controls whether the stores start with the canned mock data.
	Seed bool
}

func New(opts Options) *Store {
	a := opts.Backend
	if a == nil {
		a = backend.New()
	}
	verifier := opts.Verifier
	if verifier == nil {
		verifier = backend.DefaultAllowList()
	}
	kv := opts.KV
	if kv == nil {
		// Session and UI persistence need a live KV; without one the
		// store falls back to an in-memory database.
		kv = database.MustOpen(":memory:")
	}

	s := &Store{
		Session: NewSessionStore(a, verifier, kv, opts.Secret),
		UI:      NewUIStore(kv),
	}
	if opts.Seed {
		s.Teams = NewTeamStore(a, backend.SeedTeams())
		s.Projects = NewProjectStore(a, backend.SeedProjects())
		s.Tasks = NewTaskStore(a, backend.SeedTasks())
		s.Chat = NewChatStore(a, backend.SeedConversations(), backend.SeedMessages())
		s.Notifications = NewNotificationStore(a, backend.SeedNotifications())
	} else {
		s.Teams = NewTeamStore(a, nil)
		s.Projects = NewProjectStore(a, nil)
		s.Tasks = NewTaskStore(a, nil)
		s.Chat = NewChatStore(a, nil, nil)
		s.Notifications = NewNotificationStore(a, nil)
	}
	return s
}
