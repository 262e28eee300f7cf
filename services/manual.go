package services

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/pagepilot-ai/backend/models"
	"github.com/rs/zerolog/log"
)

// RunManualChapter generates a single chapter from a user-authored
// instruction. Once every instruction of the project has been generated, the
// caller that finishes last packages exports and mockups and completes the
// project; out-of-order generation is fine.
func (o *Orchestrator) RunManualChapter(ctx context.Context, projectID, userID uuid.UUID, instruction *models.ChapterInstruction, style, language string) error {
	logger := log.With().
		Str("pipeline", "manual").
		Str("projectId", projectID.String()).
		Int("chapter", instruction.Number).
		Logger()
	logger.Info().Str("title", instruction.Title).Msg("Generating chapter from instructions")

	description := instruction.Instructions
	if description == "" {
		description = fmt.Sprintf("Write a comprehensive chapter about %s", instruction.Title)
	}

	generated, err := o.engine.GenerateChapterContent(ctx, userID, instruction.Title, description, style, language)
	if err != nil {
		return fmt.Errorf("chapter %d: %w", instruction.Number, err)
	}

	content := o.engine.CheckGrammar(ctx, userID, generated.Content, language)
	content = o.engine.HumanizeContent(ctx, userID, content, language)

	var imageURL *string
	if generated.ImagePrompt != "" {
		url := o.engine.GenerateImage(ctx, userID, generated.ImagePrompt, instruction.Number)
		if url != "" {
			imageURL = &url
		}
	}

	if err := o.store.AddChapter(&models.Chapter{
		ProjectID: projectID,
		Number:    instruction.Number,
		Language:  language,
		Title:     instruction.Title,
		Content:   content,
		ImageURL:  imageURL,
	}); err != nil {
		return fmt.Errorf("chapter %d: %w", instruction.Number, err)
	}

	if err := o.store.UpdateInstructionStatus(instruction.ID, models.InstructionStatusGenerated); err != nil {
		return err
	}
	logger.Info().Msg("Chapter generated")

	return o.finalizeManualProject(ctx, projectID, language)
}

// finalizeManualProject checks whether every instruction has been generated
// and, exactly once, packages the finished book.
func (o *Orchestrator) finalizeManualProject(ctx context.Context, projectID uuid.UUID, language string) error {
	instructions, err := o.store.InstructionsByProject(projectID)
	if err != nil {
		return err
	}

	generatedCount := 0
	for _, instruction := range instructions {
		if instruction.Status == models.InstructionStatusGenerated {
			generatedCount++
		}
	}

	if generatedCount < len(instructions) {
		progress := int(math.Round(float64(generatedCount) / float64(len(instructions)) * 100))
		step := fmt.Sprintf("Generated %d/%d chapters", generatedCount, len(instructions))
		return o.store.UpdateProjectStatus(projectID, models.ProjectStatusGenerating, progress, step)
	}

	// Claim completion first so concurrent finishers package at most once.
	won, err := o.store.CompleteProject(projectID)
	if err != nil {
		return err
	}
	if !won {
		return nil
	}

	project, err := o.store.GetProject(projectID)
	if err != nil {
		return err
	}

	chapters, err := o.store.ChaptersByProject(projectID, language)
	if err != nil {
		return err
	}

	bookChapters := make([]BookChapter, len(chapters))
	images := make([]string, 0, len(chapters))
	for i, chapter := range chapters {
		bookChapters[i] = BookChapter{Title: chapter.Title, Content: chapter.Content}
		if chapter.ImageURL != nil && *chapter.ImageURL != "" {
			images = append(images, *chapter.ImageURL)
		}
	}

	if err := createExports(ctx, o.store, o.artifacts, projectID, project.Title, language, bookChapters); err != nil {
		return fmt.Errorf("exports: %w", err)
	}
	if err := createProductMockups(o.store, projectID, project.Title, project.Style, images); err != nil {
		return fmt.Errorf("mockups: %w", err)
	}

	if err := o.store.UpdateProjectStatus(projectID, models.ProjectStatusCompleted, 100, "All chapters generated"); err != nil {
		return err
	}

	log.Info().
		Str("projectId", projectID.String()).
		Int("chapters", len(chapters)).
		Msg("Manual project completed")

	if o.notifier != nil {
		o.notifier.ProjectCompleted(project.UserID, project.Title)
	}
	return nil
}

// FailInstruction is the error boundary for detached manual runs: the
// instruction becomes failed, sibling instructions and the project are left
// untouched.
func (o *Orchestrator) FailInstruction(instructionID uuid.UUID, runErr error) {
	log.Error().
		Err(runErr).
		Str("instructionId", instructionID.String()).
		Msg("Manual chapter generation failed")

	if err := o.store.UpdateInstructionStatus(instructionID, models.InstructionStatusFailed); err != nil {
		log.Error().Err(err).Str("instructionId", instructionID.String()).Msg("Failed to record instruction failure")
	}
}
