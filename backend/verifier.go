// backend/verifier.go
package backend

import (
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"

	"teamboard/models"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CredentialVerifier checks a credentials pair and returns the matching user.
// The session store depends on this interface only, so a real authentication
// backend can be swapped in without touching the store contract.
type CredentialVerifier interface {
	Verify(creds Credentials) (models.User, error)
}

type allowEntry struct {
	user models.User
	hash []byte
}

// AllowList is the default verifier: a fixed set of accounts with
// bcrypt-hashed passwords.
type AllowList struct {
	entries []allowEntry
}

// NewAllowList hashes the given passwords and builds the verifier.
func NewAllowList(accounts map[string]models.User, passwords map[string]string) *AllowList {
	al := &AllowList{}
	for email, user := range accounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(passwords[email]), bcrypt.MinCost)
		if err != nil {
			log.Fatalf("Failed to hash allow-list password: %v", err)
		}
		al.entries = append(al.entries, allowEntry{user: user, hash: hash})
	}
	return al
}

func (al *AllowList) Verify(creds Credentials) (models.User, error) {
	for _, e := range al.entries {
		if e.user.Email != creds.Email {
			continue
		}
		if err := bcrypt.CompareHashAndPassword(e.hash, []byte(creds.Password)); err != nil {
			return models.User{}, ErrInvalidCredentials
		}
		return e.user, nil
	}
	return models.User{}, ErrInvalidCredentials
}

// DefaultAllowList returns the stock two-account verifier: one admin, one
// member.
func DefaultAllowList() *AllowList {
	users := SeedUsers()
	return NewAllowList(
		map[string]models.User{
			"admin@example.com":  users[0],
			"member@example.com": users[1],
		},
		map[string]string{
			"admin@example.com":  "admin123",
			"member@example.com": "member123",
		},
	)
}
