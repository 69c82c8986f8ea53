package services

import (
	"context"

	"roundtable/internal/models"
	"roundtable/internal/repositories"
)

// ConversationService is the read side of the history browser.
type ConversationService interface {
	Startup(ctx context.Context)
	List() ([]models.Conversation, error)
	Load(sessionID string) (*models.ConversationBundle, error)
	Archive(sessionID string) error
}

type conversationService struct {
	conversations repositories.ConversationRepository
	ctx           context.Context
}

func NewConversationService(conversations repositories.ConversationRepository) ConversationService {
	return &conversationService{conversations: conversations}
}

func (s *conversationService) Startup(ctx context.Context) {
	s.ctx = ctx
}

func (s *conversationService) List() ([]models.Conversation, error) {
	return s.conversations.List(context.Background())
}

// Load returns the full bundle for one session, nil when unknown.
func (s *conversationService) Load(sessionID string) (*models.ConversationBundle, error) {
	if sessionID == "" {
		return nil, NewValidationError("sessionId", "a session id is required")
	}
	return s.conversations.LoadBySession(context.Background(), sessionID)
}

// Archive marks a conversation cancelled without touching its transcript.
func (s *conversationService) Archive(sessionID string) error {
	if sessionID == "" {
		return NewValidationError("sessionId", "a session id is required")
	}
	return s.conversations.SetStatus(context.Background(), sessionID, models.StatusCancelled)
}
