package services

import (
	"context"
	"errors"
	"testing"

	"github.com/pagepilot-ai/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunManualChapter_PartialProgress(t *testing.T) {
	store := newFakeStore()
	engine := &fakeEngine{}
	project := store.seedProject(models.ModeManual, models.ProjectStatusDraft, "en")
	store.seedInstruction(project.ID, 1, "Knife Skills", "Cover the essential cuts")
	second := store.seedInstruction(project.ID, 2, "Stocks and Sauces", "")

	orchestrator := NewOrchestrator(store, engine, nil, nil)
	err := orchestrator.RunManualChapter(context.Background(), project.ID, project.UserID, second, models.StyleRecipeBook, "en")
	require.NoError(t, err)

	assert.Equal(t, models.InstructionStatusGenerated, second.Status)
	assert.Equal(t, models.ProjectStatusGenerating, project.Status)
	assert.Equal(t, 50, project.GenerationProgress)
	require.NotNil(t, project.CurrentStep)
	assert.Equal(t, "Generated 1/2 chapters", *project.CurrentStep)

	chapters, err := store.ChaptersByProject(project.ID, "en")
	require.NoError(t, err)
	require.Len(t, chapters, 1)
	assert.Equal(t, 2, chapters[0].Number)
	assert.Equal(t, "Stocks and Sauces", chapters[0].Title)

	// Packaging waits for the remaining chapter.
	assert.Empty(t, store.exports)
	assert.Empty(t, store.mockups)
}

func TestRunManualChapter_LastChapterFinalizes(t *testing.T) {
	store := newFakeStore()
	engine := &fakeEngine{}
	project := store.seedProject(models.ModeManual, models.ProjectStatusDraft, "en")
	first := store.seedInstruction(project.ID, 1, "Knife Skills", "Cover the essential cuts")
	second := store.seedInstruction(project.ID, 2, "Stocks and Sauces", "Build from scratch")

	orchestrator := NewOrchestrator(store, engine, nil, nil)
	require.NoError(t, orchestrator.RunManualChapter(context.Background(), project.ID, project.UserID, second, models.StyleRecipeBook, "en"))
	require.NoError(t, orchestrator.RunManualChapter(context.Background(), project.ID, project.UserID, first, models.StyleRecipeBook, "en"))

	assert.Equal(t, models.ProjectStatusCompleted, project.Status)
	assert.Equal(t, 100, project.GenerationProgress)
	require.NotNil(t, project.CurrentStep)
	assert.Equal(t, "All chapters generated", *project.CurrentStep)

	chapters, err := store.ChaptersByProject(project.ID, "en")
	require.NoError(t, err)
	require.Len(t, chapters, 2)
	assert.Equal(t, "Knife Skills", chapters[0].Title)
	assert.Equal(t, "Stocks and Sauces", chapters[1].Title)

	assert.Len(t, store.exports, 3)
	assert.Len(t, store.mockups, 3)
}

func TestRunManualChapter_EmptyInstructionsGetDefaultBrief(t *testing.T) {
	store := newFakeStore()
	engine := &fakeEngine{}
	project := store.seedProject(models.ModeManual, models.ProjectStatusDraft, "en")
	instruction := store.seedInstruction(project.ID, 1, "Fermentation", "")

	orchestrator := NewOrchestrator(store, engine, nil, nil)
	require.NoError(t, orchestrator.RunManualChapter(context.Background(), project.ID, project.UserID, instruction, models.StyleRecipeBook, "en"))

	chapters, err := store.ChaptersByProject(project.ID, "en")
	require.NoError(t, err)
	require.Len(t, chapters, 1)
	assert.Equal(t, "Fermentation", chapters[0].Title)
}

func TestFinalize_PackagesAtMostOnce(t *testing.T) {
	store := newFakeStore()
	engine := &fakeEngine{}
	project := store.seedProject(models.ModeManual, models.ProjectStatusDraft, "en")
	instruction := store.seedInstruction(project.ID, 1, "Knife Skills", "Cover the essential cuts")

	orchestrator := NewOrchestrator(store, engine, nil, nil)
	require.NoError(t, orchestrator.RunManualChapter(context.Background(), project.ID, project.UserID, instruction, models.StyleRecipeBook, "en"))
	require.Len(t, store.exports, 3)

	// A second finisher loses the completion claim and must not re-package.
	require.NoError(t, orchestrator.finalizeManualProject(context.Background(), project.ID, "en"))
	assert.Len(t, store.exports, 3)
	assert.Len(t, store.mockups, 3)
}

func TestFailInstruction_LeavesProjectUntouched(t *testing.T) {
	store := newFakeStore()
	engine := &fakeEngine{failChapter: 1}
	project := store.seedProject(models.ModeManual, models.ProjectStatusDraft, "en")
	instruction := store.seedInstruction(project.ID, 1, "Knife Skills", "Cover the essential cuts")
	sibling := store.seedInstruction(project.ID, 2, "Stocks and Sauces", "Build from scratch")

	orchestrator := NewOrchestrator(store, engine, nil, nil)
	err := orchestrator.RunManualChapter(context.Background(), project.ID, project.UserID, instruction, models.StyleRecipeBook, "en")
	require.Error(t, err)

	orchestrator.FailInstruction(instruction.ID, err)

	assert.Equal(t, models.InstructionStatusFailed, instruction.Status)
	assert.Equal(t, models.InstructionStatusDraft, sibling.Status)
	assert.Equal(t, models.ProjectStatusDraft, project.Status)
	assert.Equal(t, 0, project.GenerationProgress)
}

func TestFailInstruction_UnknownInstruction(t *testing.T) {
	store := newFakeStore()
	orchestrator := NewOrchestrator(store, &fakeEngine{}, nil, nil)

	// Must not panic; the failure is only logged.
	orchestrator.FailInstruction(store.seedProject(models.ModeManual, models.ProjectStatusDraft, "en").ID, errors.New("boom"))
}
