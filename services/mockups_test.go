package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/pagepilot-ai/backend/errs"
	"github.com/pagepilot-ai/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateMarketingMockups(t *testing.T) {
	store := newFakeStore()
	engine := &fakeEngine{}
	project := store.seedProject(models.ModeAutopilot, models.ProjectStatusCompleted, "en")

	cover := "https://images.test/chapter-0.png"
	require.NoError(t, store.AddChapter(&models.Chapter{
		ProjectID: project.ID,
		Number:    1,
		Language:  "en",
		Title:     "Getting Started",
		Content:   "<p>Welcome.</p>",
		ImageURL:  &cover,
	}))

	orchestrator := NewOrchestrator(store, engine, nil, nil)
	require.NoError(t, orchestrator.GenerateMarketingMockups(context.Background(), project.ID, project.UserID))

	require.Len(t, store.mockups, 3)
	byType := map[string]string{}
	for _, mockup := range store.mockups {
		byType[mockup.Type] = mockup.ImageURL

		var metadata models.MockupMetadata
		require.NoError(t, json.Unmarshal(mockup.Metadata, &metadata))
		assert.Equal(t, project.Title, metadata.Title)
		assert.Equal(t, project.Style, metadata.Style)
	}
	assert.Equal(t, "https://mockups.test/tablet_office.png", byType[models.MockupTypeTabletOffice])
	assert.Equal(t, "https://mockups.test/book_3d.png", byType[models.MockupTypeBook3D])
	assert.Equal(t, "https://mockups.test/multi_device.png", byType[models.MockupTypeMultiDevice])
}

func TestGenerateMarketingMockups_NoCoverImage(t *testing.T) {
	store := newFakeStore()
	project := store.seedProject(models.ModeAutopilot, models.ProjectStatusCompleted, "en")
	require.NoError(t, store.AddChapter(&models.Chapter{
		ProjectID: project.ID,
		Number:    1,
		Language:  "en",
		Title:     "Getting Started",
		Content:   "<p>Welcome.</p>",
	}))

	orchestrator := NewOrchestrator(store, &fakeEngine{}, nil, nil)
	err := orchestrator.GenerateMarketingMockups(context.Background(), project.ID, project.UserID)
	require.Error(t, err)
	assert.True(t, errs.IsBadRequest(err))
	assert.Empty(t, store.mockups)
}
