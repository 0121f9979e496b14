// store/session.go - Session Store
package store

import (
	"encoding/json"
	"errors"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"teamboard/backend"
	"teamboard/database"
	"teamboard/models"
)

// SessionStore owns the active user's credentials. The token and serialized
// user are the only entity state persisted across restarts.
type SessionStore struct {
	mu       sync.Mutex
	backend  *backend.Adapter
	verifier backend.CredentialVerifier
	kv       *database.KV
	secret   []byte

	user          *models.User
	token         string
	authenticated bool
	admin         bool
	loading       bool
	err           string
}

func NewSessionStore(a *backend.Adapter, verifier backend.CredentialVerifier, kv *database.KV, secret []byte) *SessionStore {
	return &SessionStore{backend: a, verifier: verifier, kv: kv, secret: secret}
}

// Login validates the credentials against the verifier. On success the token
// and user are persisted and the store flips to authenticated; on mismatch
// the store records the error and stays unauthenticated.
func (s *SessionStore) Login(creds backend.Credentials) (models.User, string, error) {
	s.begin()

	if err := s.backend.Do(backend.ClassAuth, "auth.login"); err != nil {
		return models.User{}, "", s.fail(err)
	}

	user, err := s.verifier.Verify(creds)
	if err != nil {
		s.fail(err)
		return models.User{}, "", ErrInvalidCredentials
	}

	token, err := s.mintToken(user)
	if err != nil {
		return models.User{}, "", s.fail(err)
	}
	if err := s.persist(user, token); err != nil {
		return models.User{}, "", s.fail(err)
	}

	s.apply(user, token)
	return user, token, nil
}

// Signup creates a new account. The mock layer never rejects and performs no
// uniqueness check against existing accounts; the id is derived from the
// current time, the role defaults to member.
func (s *SessionStore) Signup(name, email, password string) (models.User, string, error) {
	s.begin()

	if err := s.backend.Do(backend.ClassAuth, "auth.signup"); err != nil {
		return models.User{}, "", s.fail(err)
	}

	user := models.User{
		ID:        strconv.FormatInt(s.backend.Now().UnixMilli(), 10),
		Email:     email,
		Name:      name,
		Role:      models.RoleMember,
		Avatar:    "https://via.placeholder.com/40",
		CreatedAt: s.backend.Now(),
	}

	token, err := s.mintToken(user)
	if err != nil {
		return models.User{}, "", s.fail(err)
	}
	if err := s.persist(user, token); err != nil {
		return models.User{}, "", s.fail(err)
	}

	s.apply(user, token)
	return user, token, nil
}

// Logout clears the persisted session and resets every field to the
// unauthenticated defaults.
func (s *SessionStore) Logout() error {
	if err := s.kv.Delete(database.KeyToken); err != nil {
		return err
	}
	if err := s.kv.Delete(database.KeyUser); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.token = ""
	s.authenticated = false
	s.admin = false
	s.err = ""
	return nil
}

// Restore reads the persisted token and user. If either is absent it returns
// ErrNoSession and the store stays unauthenticated; this is a silent fallback
// to login, so no error message is recorded.
func (s *SessionStore) Restore() error {
	token, err := s.kv.Get(database.KeyToken)
	if err != nil {
		if errors.Is(err, database.ErrKeyNotFound) {
			return ErrNoSession
		}
		return err
	}

	raw, err := s.kv.Get(database.KeyUser)
	if err != nil {
		if errors.Is(err, database.ErrKeyNotFound) {
			return ErrNoSession
		}
		return err
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return ErrNoSession
	}

	s.apply(user, token)
	return nil
}

// UpdateProfile shallow-merges profile fields onto the current user.
func (s *SessionStore) UpdateProfile(name, email, avatar string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return
	}
	if name != "" {
		s.user.Name = name
	}
	if email != "" {
		s.user.Email = email
	}
	if avatar != "" {
		s.user.Avatar = avatar
	}
}

func (s *SessionStore) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *SessionStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *SessionStore) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

func (s *SessionStore) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.admin
}

func (s *SessionStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *SessionStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *SessionStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}

// ParseToken validates a session token and returns its claims.
func (s *SessionStore) ParseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrNoSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrNoSession
	}
	return claims, nil
}

func (s *SessionStore) begin() {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()
}

func (s *SessionStore) fail(err error) error {
	s.mu.Lock()
	s.loading = false
	s.err = err.Error()
	s.mu.Unlock()
	return err
}

func (s *SessionStore) apply(user models.User, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.user = &user
	s.token = token
	s.authenticated = true
	s.admin = user.Role == models.RoleAdmin
	s.err = ""
}

func (s *SessionStore) persist(user models.User, token string) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := s.kv.Put(database.KeyToken, token); err != nil {
		return err
	}
	return s.kv.Put(database.KeyUser, string(raw))
}

func (s *SessionStore) mintToken(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    string(user.Role),
		"exp":     time.Now().Add(time.Hour * 720).Unix(), // 30 days
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// SecretFromEnv returns the JWT secret, with a development fallback.
func SecretFromEnv() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "teamboard-secret-change-in-production"
	}
	return []byte(secret)
}
