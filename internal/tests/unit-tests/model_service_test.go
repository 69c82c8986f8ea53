package unit_tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"roundtable/internal/models"
	"roundtable/internal/services"
	"roundtable/internal/tests/mocks"
)

func startedModelService(t *testing.T, repo *mocks.ModelSettingRepositoryMock) services.ModelConfigService {
	t.Helper()
	svc := services.NewModelConfigService(repo)
	assert.NoError(t, svc.Startup(context.Background()))
	return svc
}

func TestModelService_CatalogGroups(t *testing.T) {
	svc := startedModelService(t, &mocks.ModelSettingRepositoryMock{})

	groups, err := svc.ListModelGroups()
	assert.NoError(t, err)
	assert.Len(t, groups, 3)
	assert.Equal(t, "openai", groups[0].ProviderID)
	assert.Equal(t, "anthropic", groups[1].ProviderID)
	assert.Equal(t, "gemini", groups[2].ProviderID)
	for _, group := range groups {
		assert.NotEmpty(t, group.Models)
		for _, mdl := range group.Models {
			// Fresh catalog entries are seeded enabled.
			assert.True(t, mdl.Enabled)
		}
	}
}

func TestModelService_SetModelEnabled(t *testing.T) {
	var upserts []string
	repo := &mocks.ModelSettingRepositoryMock{
		UpsertFunc: func(modelKey, provider string, enabled bool) (*models.ModelSetting, error) {
			upserts = append(upserts, modelKey)
			return &models.ModelSetting{ModelKey: modelKey, Provider: provider, Enabled: enabled}, nil
		},
	}
	svc := startedModelService(t, repo)

	mdl, err := svc.SetModelEnabled("openai|gpt-4o-mini", false)
	assert.NoError(t, err)
	assert.False(t, mdl.Enabled)
	assert.Contains(t, upserts, "openai|gpt-4o-mini")

	_, err = svc.SetModelEnabled("openai|no-such-model", false)
	assert.Error(t, err)
	_, err = svc.SetModelEnabled("", true)
	assert.Error(t, err)
}

func TestModelService_SetProviderEnabled(t *testing.T) {
	svc := startedModelService(t, &mocks.ModelSettingRepositoryMock{})

	updated, err := svc.SetProviderEnabled("gemini", false)
	assert.NoError(t, err)
	assert.NotEmpty(t, updated)
	for _, mdl := range updated {
		assert.Equal(t, "gemini", mdl.ProviderID)
		assert.False(t, mdl.Enabled)
	}
}

func TestModelService_GetModel(t *testing.T) {
	svc := startedModelService(t, &mocks.ModelSettingRepositoryMock{})

	mdl, err := svc.GetModel("anthropic|claude-sonnet-4-20250514")
	assert.NoError(t, err)
	assert.Equal(t, "anthropic", mdl.ProviderID)
	assert.Equal(t, "claude-sonnet-4-20250514", mdl.APIName)

	_, err = svc.GetModel("unknown|model")
	assert.Error(t, err)
}

func TestModelService_StartupSeedsExistingSettings(t *testing.T) {
	repo := &mocks.ModelSettingRepositoryMock{
		ListFunc: func() ([]models.ModelSetting, error) {
			return []models.ModelSetting{
				{ModelKey: "openai|gpt-4o-mini", Provider: "openai", Enabled: false},
			}, nil
		},
	}
	svc := startedModelService(t, repo)

	mdl, err := svc.GetModel("openai|gpt-4o-mini")
	assert.NoError(t, err)
	assert.False(t, mdl.Enabled)
}
