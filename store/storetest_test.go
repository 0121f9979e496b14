package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"teamboard/backend"
	"teamboard/database"
)

// newTestStore builds a seeded store with zero mock latency and a throwaway
// kv database.
func newTestStore(t *testing.T) (*Store, *backend.Adapter) {
	t.Helper()

	kv, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })

	a := backend.NewInstant()
	s := New(Options{
		Backend:  a,
		Verifier: backend.DefaultAllowList(),
		KV:       kv,
		Secret:   []byte("test-secret-0123456789-0123456789"),
		Seed:     true,
	})
	return s, a
}

// newEmptyStore is newTestStore without the canned seed data.
func newEmptyStore(t *testing.T) (*Store, *backend.Adapter) {
	t.Helper()

	kv, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })

	a := backend.NewInstant()
	s := New(Options{
		Backend:  a,
		Verifier: backend.DefaultAllowList(),
		KV:       kv,
		Secret:   []byte("test-secret-0123456789-0123456789"),
		Seed:     false,
	})
	return s, a
}
