package mocks

import (
	"context"

	"roundtable/internal/models"
)

type ConversationRepositoryMock struct {
	CreateFunc              func(ctx context.Context, conversation *models.Conversation) error
	AppendMessageFunc       func(ctx context.Context, message *models.Message) error
	AppendGeneratedFileFunc func(ctx context.Context, file *models.GeneratedFile) error
	ListFunc                func(ctx context.Context) ([]models.Conversation, error)
	LoadBySessionFunc       func(ctx context.Context, sessionID string) (*models.ConversationBundle, error)
	SetStatusFunc           func(ctx context.Context, sessionID, status string) error
}

func (m *ConversationRepositoryMock) Create(ctx context.Context, conversation *models.Conversation) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, conversation)
	}
	return nil
}

func (m *ConversationRepositoryMock) AppendMessage(ctx context.Context, message *models.Message) error {
	if m.AppendMessageFunc != nil {
		return m.AppendMessageFunc(ctx, message)
	}
	return nil
}

func (m *ConversationRepositoryMock) AppendGeneratedFile(ctx context.Context, file *models.GeneratedFile) error {
	if m.AppendGeneratedFileFunc != nil {
		return m.AppendGeneratedFileFunc(ctx, file)
	}
	return nil
}

func (m *ConversationRepositoryMock) List(ctx context.Context) ([]models.Conversation, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []models.Conversation{}, nil
}

func (m *ConversationRepositoryMock) LoadBySession(ctx context.Context, sessionID string) (*models.ConversationBundle, error) {
	if m.LoadBySessionFunc != nil {
		return m.LoadBySessionFunc(ctx, sessionID)
	}
	return nil, nil
}

func (m *ConversationRepositoryMock) SetStatus(ctx context.Context, sessionID, status string) error {
	if m.SetStatusFunc != nil {
		return m.SetStatusFunc(ctx, sessionID, status)
	}
	return nil
}
