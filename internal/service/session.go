package service

import (
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pantrio/backend/internal/gemini"
	"github.com/pantrio/backend/internal/prompt"
	"github.com/pantrio/backend/internal/types"
)

// SessionService issues and validates the signed tokens that tie a browser
// to its server-side session state.
type SessionService struct {
	secret string
	ttl    time.Duration
}

// NewSessionService creates a token service signing with secret.
func NewSessionService(secret string) *SessionService {
	return &SessionService{secret: secret, ttl: 24 * time.Hour}
}

// IssueToken signs a token carrying the session id.
func (s *SessionService) IssueToken(sessionID uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"session_id": sessionID.String(),
		"exp":        time.Now().Add(s.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

// ValidateToken verifies signature and expiry and extracts the session id.
func (s *SessionService) ValidateToken(tokenString string) (*types.SessionClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	idStr, ok := claims["session_id"].(string)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, err
	}
	return &types.SessionClaims{SessionID: id}, nil
}

// UserSession is the isolated state of one browser session: its own
// conversation-backed generation session, its rating tracker, and the
// recipes generated so far. Sessions never share any of it.
type UserSession struct {
	ID         uuid.UUID
	Generation *GenerationSession
	Ratings    *RatingTracker

	mu         sync.RWMutex
	recipes    map[string]types.Recipe
	lastResult *types.GenerationResult
}

// NewUserSession builds an empty session around gen.
func NewUserSession(id uuid.UUID, gen *GenerationSession) *UserSession {
	return &UserSession{
		ID:         id,
		Generation: gen,
		Ratings:    NewRatingTracker(),
		recipes:    make(map[string]types.Recipe),
	}
}

// RememberResult stores a generation outcome so later rating and export
// calls can reference its recipes by id.
func (u *UserSession) RememberResult(res *types.GenerationResult) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.lastResult = res
	for _, r := range res.Recipes {
		u.recipes[r.ID] = r
	}
}

// Recipe looks up a recipe generated earlier in this session.
func (u *UserSession) Recipe(id string) (types.Recipe, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	r, ok := u.recipes[id]
	return r, ok
}

// LastResult returns the most recent generation outcome, or ErrNoGeneration
// when the session has not generated anything yet.
func (u *UserSession) LastResult() (*types.GenerationResult, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	if u.lastResult == nil {
		return nil, ErrNoGeneration
	}
	return u.lastResult, nil
}

// SessionFactory builds the isolated state for a new session id.
type SessionFactory func(id uuid.UUID) *UserSession

// NewGeminiSessionFactory returns a factory wiring each new session to its
// own conversation on the shared client, carrying the fixed system
// instruction.
func NewGeminiSessionFactory(client *gemini.Client, opts ...GenerationOption) SessionFactory {
	return func(id uuid.UUID) *UserSession {
		gen := NewGenerationSession(func() Converser {
			return client.NewConversation(prompt.SystemInstruction)
		}, opts...)
		return NewUserSession(id, gen)
	}
}

// SessionManager maps session ids to their isolated state. All state is
// in-memory; a restart forgets every session.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*UserSession
	factory  SessionFactory
}

// NewSessionManager creates a manager producing sessions via factory.
func NewSessionManager(factory SessionFactory) *SessionManager {
	return &SessionManager{
		sessions: make(map[uuid.UUID]*UserSession),
		factory:  factory,
	}
}

// Create opens a brand new session under a fresh id.
func (m *SessionManager) Create() *UserSession {
	s := m.factory(uuid.New())
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// GetOrCreate returns the session for id, lazily building an empty one when
// the id is unknown. A valid token presented after a restart simply gets a
// fresh session.
func (m *SessionManager) GetOrCreate(id uuid.UUID) *UserSession {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		return s
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		return s
	}
	s = m.factory(id)
	m.sessions[id] = s
	return s
}

// Count reports how many sessions are live.
func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
