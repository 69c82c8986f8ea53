package unit_tests

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"roundtable/internal/models"
	"roundtable/internal/services"
	"roundtable/internal/tests/mocks"
)

func TestConversationService_List(t *testing.T) {
	expected := []models.Conversation{
		{ID: 2, SessionID: "b", Title: "Second"},
		{ID: 1, SessionID: "a", Title: "First"},
	}
	repo := &mocks.ConversationRepositoryMock{
		ListFunc: func(ctx context.Context) ([]models.Conversation, error) {
			return expected, nil
		},
	}
	svc := services.NewConversationService(repo)

	conversations, err := svc.List()
	assert.NoError(t, err)
	assert.Equal(t, expected, conversations)
}

func TestConversationService_Load(t *testing.T) {
	repo := &mocks.ConversationRepositoryMock{
		LoadBySessionFunc: func(ctx context.Context, sessionID string) (*models.ConversationBundle, error) {
			if sessionID != "known" {
				return nil, nil
			}
			return &models.ConversationBundle{
				Conversation: models.Conversation{ID: 1, SessionID: "known"},
				Messages:     []models.Message{{ID: 1, Role: models.RoleUser, Content: "hello"}},
			}, nil
		},
	}
	svc := services.NewConversationService(repo)

	bundle, err := svc.Load("known")
	assert.NoError(t, err)
	assert.NotNil(t, bundle)
	assert.Len(t, bundle.Messages, 1)

	missing, err := svc.Load("unknown")
	assert.NoError(t, err)
	assert.Nil(t, missing)

	_, err = svc.Load("")
	assert.True(t, services.IsValidationError(err))
}

func TestConversationService_Archive(t *testing.T) {
	var gotSession, gotStatus string
	repo := &mocks.ConversationRepositoryMock{
		SetStatusFunc: func(ctx context.Context, sessionID, status string) error {
			gotSession, gotStatus = sessionID, status
			return nil
		},
	}
	svc := services.NewConversationService(repo)

	assert.NoError(t, svc.Archive("known"))
	assert.Equal(t, "known", gotSession)
	assert.Equal(t, models.StatusCancelled, gotStatus)

	assert.True(t, services.IsValidationError(svc.Archive("")))
}

func TestConversationService_RepositoryError(t *testing.T) {
	repo := &mocks.ConversationRepositoryMock{
		ListFunc: func(ctx context.Context) ([]models.Conversation, error) {
			return nil, errors.New("database error")
		},
	}
	svc := services.NewConversationService(repo)

	_, err := svc.List()
	assert.EqualError(t, err, "database error")
}
