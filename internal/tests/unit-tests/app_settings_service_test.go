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

func TestAppSettingsService_Get_Success(t *testing.T) {
	expected := &models.AppSettings{
		ID:      1,
		Version: 1,
		Theme:   "dark",
		Locale:  "fr",
	}
	repo := &mocks.AppSettingsRepositoryMock{
		GetFunc: func(ctx context.Context) (*models.AppSettings, error) {
			return expected, nil
		},
	}
	svc := services.NewAppSettingsService(repo)

	settings, err := svc.Get()
	assert.NoError(t, err)
	assert.Equal(t, expected.Theme, settings.Theme)
	assert.Equal(t, expected.Locale, settings.Locale)
}

func TestAppSettingsService_Update_Success(t *testing.T) {
	current := &models.AppSettings{ID: 1, Version: 1, Theme: "light", Locale: "en"}
	var saved *models.AppSettings
	repo := &mocks.AppSettingsRepositoryMock{
		GetFunc: func(ctx context.Context) (*models.AppSettings, error) {
			return current, nil
		},
		UpdateFunc: func(ctx context.Context, settings *models.AppSettings) error {
			saved = settings
			return nil
		},
	}
	svc := services.NewAppSettingsService(repo)

	updated, err := svc.Update("modern", "fr")
	assert.NoError(t, err)
	assert.Equal(t, "modern", updated.Theme)
	assert.Equal(t, "fr", updated.Locale)
	assert.NotNil(t, saved)
	assert.Equal(t, uint(1), saved.ID)
	assert.False(t, saved.UpdatedAt.IsZero())
}

func TestAppSettingsService_Update_InvalidTheme(t *testing.T) {
	svc := services.NewAppSettingsService(&mocks.AppSettingsRepositoryMock{})

	for _, theme := range []string{"system", "neon", ""} {
		_, err := svc.Update(theme, "en")
		assert.Error(t, err, theme)
	}

	_, err := svc.Update("dark", "")
	assert.Error(t, err)
}

func TestAppSettingsService_SetDefaultModel(t *testing.T) {
	current := &models.AppSettings{ID: 1, Version: 1, Theme: "light", Locale: "en"}
	repo := &mocks.AppSettingsRepositoryMock{
		GetFunc: func(ctx context.Context) (*models.AppSettings, error) {
			return current, nil
		},
	}
	svc := services.NewAppSettingsService(repo)

	updated, err := svc.SetDefaultModel("openai|gpt-4o-mini")
	assert.NoError(t, err)
	assert.Equal(t, "openai|gpt-4o-mini", updated.DefaultModelKey)
}

func TestAppSettingsService_Get_RepositoryError(t *testing.T) {
	repo := &mocks.AppSettingsRepositoryMock{
		GetFunc: func(ctx context.Context) (*models.AppSettings, error) {
			return nil, errors.New("database error")
		},
	}
	svc := services.NewAppSettingsService(repo)

	_, err := svc.Get()
	assert.EqualError(t, err, "database error")
}
