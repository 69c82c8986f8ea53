package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"roundtable/internal/models"
)

type ConversationRepository interface {
	Create(ctx context.Context, conversation *models.Conversation) error
	AppendMessage(ctx context.Context, message *models.Message) error
	AppendGeneratedFile(ctx context.Context, file *models.GeneratedFile) error
	List(ctx context.Context) ([]models.Conversation, error)
	LoadBySession(ctx context.Context, sessionID string) (*models.ConversationBundle, error)
	SetStatus(ctx context.Context, sessionID, status string) error
}

type conversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) Create(ctx context.Context, conversation *models.Conversation) error {
	if conversation.SessionID == "" {
		return fmt.Errorf("session id is required")
	}
	return r.db.WithContext(ctx).Create(conversation).Error
}

func (r *conversationRepository) AppendMessage(ctx context.Context, message *models.Message) error {
	if message.ConversationID == 0 {
		return fmt.Errorf("conversation id is required")
	}
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *conversationRepository) AppendGeneratedFile(ctx context.Context, file *models.GeneratedFile) error {
	if file.ConversationID == 0 {
		return fmt.Errorf("conversation id is required")
	}
	return r.db.WithContext(ctx).Create(file).Error
}

func (r *conversationRepository) List(ctx context.Context) ([]models.Conversation, error) {
	var conversations []models.Conversation
	res := r.db.WithContext(ctx).Order("created_at desc").Find(&conversations)
	if res.Error != nil {
		return nil, res.Error
	}
	return conversations, nil
}

// LoadBySession returns the conversation with its messages in chronological
// order and generated files newest first. Returns nil, nil when no
// conversation exists for the session.
func (r *conversationRepository) LoadBySession(ctx context.Context, sessionID string) (*models.ConversationBundle, error) {
	var conversation models.Conversation
	res := r.db.WithContext(ctx).Where("session_id = ?", sessionID).Take(&conversation)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, res.Error
	}

	var messages []models.Message
	if err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversation.ID).
		Order("id asc").
		Find(&messages).Error; err != nil {
		return nil, err
	}

	var files []models.GeneratedFile
	if err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversation.ID).
		Order("created_at desc").
		Find(&files).Error; err != nil {
		return nil, err
	}

	return &models.ConversationBundle{
		Conversation: conversation,
		Messages:     messages,
		Files:        files,
	}, nil
}

func (r *conversationRepository) SetStatus(ctx context.Context, sessionID, status string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Conversation{}).
		Where("session_id = ?", sessionID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("no conversation for session %s", sessionID)
	}
	return nil
}
