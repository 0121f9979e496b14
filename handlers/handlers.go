// handlers/handlers.go
package handlers

import (
	"teamboard/store"
)

// Handler carries the application state into the route handlers. The store
// is passed by reference; nothing here is package-global.
type Handler struct {
	store *store.Store
	hub   *Hub
}

func New(s *store.Store) *Handler {
	return &Handler{store: s, hub: NewHub()}
}
