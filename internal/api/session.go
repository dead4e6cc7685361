package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pantrio/backend/internal/service"
)

// SessionHandler opens sessions and hands out the tokens that identify them.
type SessionHandler struct {
	sessions *service.SessionManager
	tokens   *service.SessionService
}

// NewSessionHandler creates a new SessionHandler instance
func NewSessionHandler(sessions *service.SessionManager, tokens *service.SessionService) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		tokens:   tokens,
	}
}

// RegisterRoutes registers the session routes on the public group
func (h *SessionHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/sessions", h.CreateSession)
}

// CreateSession opens a fresh session and returns its bearer token.
func (h *SessionHandler) CreateSession(c *gin.Context) {
	sess := h.sessions.Create()

	token, err := h.tokens.IssueToken(sess.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.JSON(http.StatusCreated, CreateSessionResponse{
		Token:     token,
		SessionID: sess.ID.String(),
	})
}

// sessionFromContext resolves the session state for the authenticated request.
// The auth middleware guarantees session_id is set on protected routes.
func sessionFromContext(c *gin.Context, sessions *service.SessionManager) (*service.UserSession, bool) {
	val, exists := c.Get("session_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session not authenticated"})
		return nil, false
	}

	id, ok := val.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session not authenticated"})
		return nil, false
	}

	return sessions.GetOrCreate(id), true
}
