// store/chat.go - Chat Store
package store

import (
	"sort"
	"sync"
	"time"

	"teamboard/backend"
	"teamboard/models"
)

// DefaultTypingTTL is how long a typing signal stays alive without a refresh.
const DefaultTypingTTL = 2 * time.Second

type MessageDraft struct {
	Text       string `json:"text"`
	UserID     string `json:"user_id"`
	UserName   string `json:"user_name"`
	UserAvatar string `json:"user_avatar"`
	TeamID     string `json:"team_id"`
	ProjectID  string `json:"project_id"`
}

type ConversationDraft struct {
	Name      string                  `json:"name"`
	Type      models.ConversationType `json:"type"`
	TeamID    string                  `json:"team_id"`
	ProjectID string                  `json:"project_id"`
	CreatedBy string                  `json:"created_by"`
}

// ChatStore owns messages and conversations. A message carries no
// conversation id; its conversation is derived by matching the
// (team, project) key pair at query time.
type ChatStore struct {
	mu      sync.Mutex
	backend *backend.Adapter

	messages      []models.Message
	conversations []models.Conversation
	current       string
	typing        map[string]map[string]*time.Timer
	typingTTL     time.Duration
	loading       bool
	err           string
}

func NewChatStore(a *backend.Adapter, conversations []models.Conversation, messages []models.Message) *ChatStore {
	return &ChatStore{
		backend:       a,
		messages:      messages,
		conversations: conversations,
		typing:        make(map[string]map[string]*time.Timer),
		typingTTL:     DefaultTypingTTL,
	}
}

// SetTypingTTL overrides the typing expiry, mainly for tests.
func (s *ChatStore) SetTypingTTL(ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.typingTTL = ttl
}

// SendMessage appends the message and, when a conversation with the same
// (team, project) key exists, repoints its lastMessage and bumps its unread
// count unless that conversation is currently selected.
func (s *ChatStore) SendMessage(draft MessageDraft) (models.Message, error) {
	s.begin()

	if err := s.backend.Do(backend.ClassQuick, "chat.send"); err != nil {
		return models.Message{}, s.failWith(err)
	}

	msg := models.Message{
		ID:         s.backend.NewID(),
		Text:       draft.Text,
		UserID:     draft.UserID,
		UserName:   draft.UserName,
		UserAvatar: draft.UserAvatar,
		TeamID:     draft.TeamID,
		ProjectID:  draft.ProjectID,
		CreatedAt:  s.backend.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.messages = append(s.messages, msg)

	for i := range s.conversations {
		c := &s.conversations[i]
		if !c.Matches(msg.TeamID, msg.ProjectID) {
			continue
		}
		last := msg
		c.LastMessage = &last
		if c.ID != s.current {
			c.UnreadCount++
		}
		break
	}
	return msg, nil
}

// CreateConversation creates an empty conversation with the creator as sole
// participant.
func (s *ChatStore) CreateConversation(draft ConversationDraft) (models.Conversation, error) {
	s.begin()

	if err := s.backend.Do(backend.ClassCreate, "chat.conversation"); err != nil {
		return models.Conversation{}, s.failWith(err)
	}

	conv := models.Conversation{
		ID:           s.backend.NewID(),
		Name:         draft.Name,
		Type:         draft.Type,
		TeamID:       draft.TeamID,
		ProjectID:    draft.ProjectID,
		LastMessage:  nil,
		UnreadCount:  0,
		Participants: []string{draft.CreatedBy},
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.conversations = append(s.conversations, conv)
	return cloneConversation(conv), nil
}

func (s *ChatStore) SetCurrentConversation(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = id
}

func (s *ChatStore) CurrentConversation() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// SetTypingUser records or clears a typing signal. A recorded signal expires
// on its own after the typing TTL if not refreshed. The signal is local
// state: it is never persisted.
func (s *ChatStore) SetTypingUser(conversationID, userID string, isTyping bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.typing[conversationID]
	if !isTyping {
		if timer, ok := users[userID]; ok {
			timer.Stop()
			delete(users, userID)
		}
		return
	}

	if users == nil {
		users = make(map[string]*time.Timer)
		s.typing[conversationID] = users
	}
	if timer, ok := users[userID]; ok {
		timer.Stop()
	}
	var timer *time.Timer
	timer = time.AfterFunc(s.typingTTL, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		// A refresh may have replaced the timer between the fire and
		// this callback taking the lock. Only the timer that still owns
		// the signal may clear it.
		if m := s.typing[conversationID]; m[userID] == timer {
			delete(m, userID)
		}
	})
	users[userID] = timer
}

// TypingUsers returns the user ids currently typing in a conversation.
func (s *ChatStore) TypingUsers(conversationID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for userID := range s.typing[conversationID] {
		out = append(out, userID)
	}
	sort.Strings(out)
	return out
}

// MarkConversationAsRead resets the unread count to zero. Idempotent.
func (s *ChatStore) MarkConversationAsRead(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.conversations {
		if s.conversations[i].ID == id {
			s.conversations[i].UnreadCount = 0
			return
		}
	}
}

// cloneConversation detaches the participant list and the lastMessage
// pointer so snapshots do not alias the store's state.
func cloneConversation(c models.Conversation) models.Conversation {
	if c.Participants != nil {
		c.Participants = append([]string{}, c.Participants...)
	}
	if c.LastMessage != nil {
		last := *c.LastMessage
		c.LastMessage = &last
	}
	return c
}

func (s *ChatStore) Conversations() []models.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Conversation, len(s.conversations))
	for i, c := range s.conversations {
		out[i] = cloneConversation(c)
	}
	return out
}

func (s *ChatStore) Conversation(id string) (models.Conversation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.conversations {
		if c.ID == id {
			return cloneConversation(c), true
		}
	}
	return models.Conversation{}, false
}

// ConversationMessages returns the conversation's messages in
// creation-timestamp order. Ordering across conversations is not defined.
func (s *ChatStore) ConversationMessages(id string) []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	var conv *models.Conversation
	for i := range s.conversations {
		if s.conversations[i].ID == id {
			conv = &s.conversations[i]
			break
		}
	}
	if conv == nil {
		return nil
	}

	var out []models.Message
	for _, m := range s.messages {
		if conv.Matches(m.TeamID, m.ProjectID) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (s *ChatStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *ChatStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *ChatStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}

func (s *ChatStore) begin() {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()
}

func (s *ChatStore) failWith(err error) error {
	s.mu.Lock()
	s.loading = false
	s.err = err.Error()
	s.mu.Unlock()
	return err
}
