package services

import (
	"context"
	"fmt"
	"time"

	"roundtable/internal/docgen"
	"roundtable/internal/events"
	"roundtable/internal/models"
	"roundtable/internal/repositories"
)

// DocumentService renders the three deliverables from a completed
// discussion and records them against the conversation.
type DocumentService interface {
	Startup(ctx context.Context)
	GenerateAll(ctx context.Context, session models.Session) ([]docgen.Document, error)
	ListGenerated(ctx context.Context, sessionID string) ([]models.GeneratedFile, error)
}

type documentService struct {
	conversations repositories.ConversationRepository
	now           func() time.Time
	ctx           context.Context
}

func NewDocumentService(conversations repositories.ConversationRepository) DocumentService {
	return &documentService{conversations: conversations, now: time.Now}
}

// NewDocumentServiceWithClock injects a fixed clock for deterministic output.
func NewDocumentServiceWithClock(conversations repositories.ConversationRepository, now func() time.Time) DocumentService {
	return &documentService{conversations: conversations, now: now}
}

func (s *documentService) Startup(ctx context.Context) {
	s.ctx = ctx
}

// GenerateAll renders the specification, IDE guide and manager summary for
// a finished session and appends them to the conversation's generated
// files. Generation is refused while the discussion is still running.
func (s *documentService) GenerateAll(ctx context.Context, session models.Session) ([]docgen.Document, error) {
	if session.Phase != models.PhaseComplete {
		return nil, NewValidationError("session", "documents are generated after the discussion completes")
	}
	if session.ConversationID == 0 {
		return nil, NewValidationError("session", "session has no stored conversation")
	}

	docs := docgen.RenderAll(session.Title, session.Teams, session.Messages, s.now())
	for _, doc := range docs {
		if err := s.conversations.AppendGeneratedFile(ctx, &models.GeneratedFile{
			ConversationID: session.ConversationID,
			Kind:           doc.Kind,
			Name:           doc.Name,
			Content:        doc.Content,
		}); err != nil {
			return nil, fmt.Errorf("persist %s document: %w", doc.Kind, err)
		}
	}

	events.Emit(ctx, events.DocsGenerated, events.NewSuccess(fmt.Sprintf("generated %d documents", len(docs))))
	return docs, nil
}

func (s *documentService) ListGenerated(ctx context.Context, sessionID string) ([]models.GeneratedFile, error) {
	bundle, err := s.conversations.LoadBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if bundle == nil {
		return nil, nil
	}
	return bundle.Files, nil
}
