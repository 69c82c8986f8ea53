package services

import (
	"context"

	"gorm.io/gorm"

	"roundtable/internal/repositories"
)

// DbServices aggregates all domain services backed by the database.
// Fields use plural names (e.g., Conversations) to align with Go
// conventions seen in service/store containers.
type DbServices struct {
	Conversations ConversationService
	AppSettings   AppSettingsService
	ModelConfigs  ModelConfigService

	// ConversationRepo is shared with the discussion and document services
	// so the whole app runs on one repository instance.
	ConversationRepo repositories.ConversationRepository
}

// NewDbServices constructs the service container using repositories backed by db.
func NewDbServices(db *gorm.DB) *DbServices {
	conversationRepo := repositories.NewConversationRepository(db)
	appSettingsRepo := repositories.NewAppSettingsRepository(db)
	modelSettingRepo := repositories.NewModelSettingRepository(db)

	return &DbServices{
		Conversations:    NewConversationService(conversationRepo),
		AppSettings:      NewAppSettingsService(appSettingsRepo),
		ModelConfigs:     NewModelConfigService(modelSettingRepo),
		ConversationRepo: conversationRepo,
	}
}

// StartDbServices runs the startup hooks that need a live context.
func StartDbServices(ctx context.Context, s *DbServices) error {
	s.Conversations.Startup(ctx)
	s.AppSettings.Startup(ctx)
	return s.ModelConfigs.Startup(ctx)
}
