package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/pagepilot-ai/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunAutopilot_CompletesProject(t *testing.T) {
	store := newFakeStore()
	engine := &fakeEngine{title: "The Weeknight Kitchen", outline: threeChapterOutline()}
	project := store.seedProject(models.ModeAutopilot, models.ProjectStatusPending, "en")

	orchestrator := NewOrchestrator(store, engine, nil, nil)
	err := orchestrator.RunAutopilot(context.Background(), project.ID, project.UserID, models.StyleRecipeBook, "en", nil)
	require.NoError(t, err)

	assert.Equal(t, models.ProjectStatusCompleted, project.Status)
	assert.Equal(t, 100, project.GenerationProgress)
	assert.Equal(t, "The Weeknight Kitchen", project.Title)

	chapters, err := store.ChaptersByProject(project.ID, "en")
	require.NoError(t, err)
	require.Len(t, chapters, 3)
	assert.Equal(t, 1, chapters[0].Number)
	assert.Equal(t, "Getting Started", chapters[0].Title)
	assert.Contains(t, chapters[0].Content, "Getting Started body")
	require.NotNil(t, chapters[0].ImageURL)
	assert.Equal(t, "https://images.test/chapter-0.png", *chapters[0].ImageURL)

	assert.Empty(t, store.translations)
	assert.Len(t, store.exports, 3)
	assert.Len(t, store.mockups, 3)

	var outline []models.OutlineChapter
	require.NoError(t, json.Unmarshal(project.Outline, &outline))
	assert.Len(t, outline, 3)

	var snapshot []models.ContentSnapshot
	require.NoError(t, json.Unmarshal(project.Content, &snapshot))
	require.Len(t, snapshot, 3)
	assert.Equal(t, "Mastery", snapshot[2].Title)

	assert.Len(t, []string(project.Images), 3)
}

func TestRunAutopilot_TranslationFanOut(t *testing.T) {
	store := newFakeStore()
	engine := &fakeEngine{title: "The Weeknight Kitchen", outline: threeChapterOutline()}
	project := store.seedProject(models.ModeAutopilot, models.ProjectStatusPending, "en")

	orchestrator := NewOrchestrator(store, engine, nil, nil)
	err := orchestrator.RunAutopilot(context.Background(), project.ID, project.UserID, models.StyleRecipeBook, "en", []string{"es", "fr"})
	require.NoError(t, err)

	// One record per (chapter, target language).
	require.Len(t, store.translations, 6)
	perLanguage := map[string]int{}
	seen := map[string]bool{}
	for _, translation := range store.translations {
		perLanguage[translation.Language]++
		key := translation.ChapterID.String() + "/" + translation.Language
		assert.False(t, seen[key], "duplicate translation for %s", key)
		seen[key] = true
		assert.Contains(t, translation.TranslatedContent, "["+translation.Language+"]")
	}
	assert.Equal(t, map[string]int{"es": 3, "fr": 3}, perLanguage)

	// Three exports per language, primary included.
	assert.Len(t, store.exports, 9)
	exportLanguages := map[string]int{}
	for _, export := range store.exports {
		exportLanguages[export.Language]++
	}
	assert.Equal(t, map[string]int{"en": 3, "es": 3, "fr": 3}, exportLanguages)
}

func TestRunAutopilot_ChapterFailureFreezesProgress(t *testing.T) {
	store := newFakeStore()
	engine := &fakeEngine{title: "The Weeknight Kitchen", outline: threeChapterOutline(), failChapter: 2}
	project := store.seedProject(models.ModeAutopilot, models.ProjectStatusPending, "en")

	orchestrator := NewOrchestrator(store, engine, nil, nil)
	err := orchestrator.RunAutopilot(context.Background(), project.ID, project.UserID, models.StyleRecipeBook, "en", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chapter 2")

	orchestrator.Fail(project.ID, err)

	assert.Equal(t, models.ProjectStatusFailed, project.Status)
	// Progress stays at the chapter 1 checkpoint: 35 + 1/3 of the 25-point band.
	assert.Equal(t, 43, project.GenerationProgress)
	require.NotNil(t, project.CurrentStep)
	assert.Contains(t, *project.CurrentStep, "model overloaded")

	chapters, err := store.ChaptersByProject(project.ID, "en")
	require.NoError(t, err)
	assert.Len(t, chapters, 1)
	assert.Empty(t, store.exports)
	assert.Empty(t, store.mockups)
}

func TestRunAutopilot_OutlineFailure(t *testing.T) {
	store := newFakeStore()
	engine := &fakeEngine{title: "The Weeknight Kitchen", outline: nil}
	project := store.seedProject(models.ModeAutopilot, models.ProjectStatusPending, "en")

	orchestrator := NewOrchestrator(store, engine, nil, nil)
	err := orchestrator.RunAutopilot(context.Background(), project.ID, project.UserID, models.StyleRecipeBook, "en", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outline generation")
}

func TestRunAutopilot_ProgressIsMonotonic(t *testing.T) {
	store := newFakeStore()
	engine := &fakeEngine{title: "The Weeknight Kitchen", outline: threeChapterOutline()}
	project := store.seedProject(models.ModeAutopilot, models.ProjectStatusPending, "en")

	orchestrator := NewOrchestrator(store, engine, nil, nil)
	err := orchestrator.RunAutopilot(context.Background(), project.ID, project.UserID, models.StyleRecipeBook, "en", []string{"es"})
	require.NoError(t, err)

	// The log includes the poll surface observed after every title, outline
	// and content save, not just the explicit checkpoints, so a write-back
	// from a stale project snapshot would show up as a regression here.
	require.NotEmpty(t, store.statusWrites)
	previous := 0
	for _, write := range store.statusWrites {
		assert.GreaterOrEqual(t, write.progress, previous, "progress regressed at step %q", write.step)
		previous = write.progress
	}
	last := store.statusWrites[len(store.statusWrites)-1]
	assert.Equal(t, models.ProjectStatusCompleted, last.status)
	assert.Equal(t, 100, last.progress)
}

func TestRunAutopilot_ContentSaveKeepsChapterCheckpoint(t *testing.T) {
	store := newFakeStore()
	engine := &fakeEngine{title: "The Weeknight Kitchen", outline: threeChapterOutline()}
	project := store.seedProject(models.ModeAutopilot, models.ProjectStatusPending, "en")

	orchestrator := NewOrchestrator(store, engine, nil, nil)
	err := orchestrator.RunAutopilot(context.Background(), project.ID, project.UserID, models.StyleRecipeBook, "en", nil)
	require.NoError(t, err)

	// The content snapshot is persisted between the final chapter checkpoint
	// (60) and the "Content generated" checkpoint; a poll in that window must
	// still see the chapter checkpoint, not an earlier stage.
	contentIdx := -1
	for i, write := range store.statusWrites {
		if write.step == "Content generated" {
			contentIdx = i
			break
		}
	}
	require.Greater(t, contentIdx, 0)
	observed := store.statusWrites[contentIdx-1]
	assert.Equal(t, 60, observed.progress)
	assert.Equal(t, "Chapter 3/3", observed.step)
	assert.Equal(t, models.ProjectStatusGenerating, observed.status)
}

func TestRunAutopilot_NoImagePromptSkipsImage(t *testing.T) {
	store := newFakeStore()
	engine := &fakeEngine{title: "The Weeknight Kitchen", outline: threeChapterOutline(), noImages: true}
	project := store.seedProject(models.ModeAutopilot, models.ProjectStatusPending, "en")

	orchestrator := NewOrchestrator(store, engine, nil, nil)
	err := orchestrator.RunAutopilot(context.Background(), project.ID, project.UserID, models.StyleRecipeBook, "en", nil)
	require.NoError(t, err)

	chapters, err := store.ChaptersByProject(project.ID, "en")
	require.NoError(t, err)
	for _, chapter := range chapters {
		assert.Nil(t, chapter.ImageURL)
	}
	// Product mockups still get written, from placeholders.
	require.Len(t, store.mockups, 3)
	for _, mockup := range store.mockups {
		assert.Contains(t, mockup.ImageURL, "/placeholder-")
	}
}
