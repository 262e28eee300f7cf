package services

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/pagepilot-ai/backend/models"
	"github.com/rs/zerolog/log"
)

// Orchestrator drives the generation pipelines. It is constructed with its
// collaborators so tests can substitute fakes for both.
type Orchestrator struct {
	store     Store
	engine    Engine
	notifier  *Notifier
	artifacts *ArtifactStore
}

func NewOrchestrator(store Store, engine Engine, notifier *Notifier, artifacts *ArtifactStore) *Orchestrator {
	return &Orchestrator{store: store, engine: engine, notifier: notifier, artifacts: artifacts}
}

// RunAutopilot takes a freshly created project from pending to completed,
// checkpointing status and progress after every stage. It is designed to run
// detached; the caller owns the error boundary that writes the terminal
// failed state (see Fail).
func (o *Orchestrator) RunAutopilot(ctx context.Context, projectID, userID uuid.UUID, style, primaryLanguage string, targetLanguages []string) error {
	logger := log.With().
		Str("pipeline", "autopilot").
		Str("projectId", projectID.String()).
		Logger()

	if err := o.store.UpdateProjectStatus(projectID, models.ProjectStatusGenerating, 5, "Analyzing market trends..."); err != nil {
		return err
	}
	title, err := o.engine.AnalyzeTrends(ctx, userID, style)
	if err != nil {
		return fmt.Errorf("trend analysis: %w", err)
	}
	logger.Info().Str("title", title).Msg("Topic selected")

	if err := o.store.SetProjectTitle(projectID, title); err != nil {
		return err
	}
	if err := o.store.UpdateProjectStatus(projectID, models.ProjectStatusGenerating, 15, "Topic selected"); err != nil {
		return err
	}

	if err := o.store.UpdateProjectStatus(projectID, models.ProjectStatusGenerating, 20, "Creating outline..."); err != nil {
		return err
	}
	outline, err := o.engine.GenerateOutline(ctx, userID, title, style, primaryLanguage)
	if err != nil {
		return fmt.Errorf("outline generation: %w", err)
	}
	if len(outline) == 0 {
		return fmt.Errorf("outline generation: no chapters returned")
	}

	if err := o.store.SetProjectOutline(projectID, outline); err != nil {
		return err
	}
	if err := o.store.UpdateProjectStatus(projectID, models.ProjectStatusGenerating, 30, "Outline complete"); err != nil {
		return err
	}

	if err := o.store.UpdateProjectStatus(projectID, models.ProjectStatusGenerating, 35, "Generating content..."); err != nil {
		return err
	}

	chapters := make([]*models.Chapter, 0, len(outline))
	images := make([]string, 0, len(outline))

	for i, stub := range outline {
		generated, err := o.engine.GenerateChapterContent(ctx, userID, stub.Title, stub.Description, style, primaryLanguage)
		if err != nil {
			return fmt.Errorf("chapter %d: %w", i+1, err)
		}

		content := o.engine.CheckGrammar(ctx, userID, generated.Content, primaryLanguage)
		content = o.engine.HumanizeContent(ctx, userID, content, primaryLanguage)

		var imageURL *string
		if generated.ImagePrompt != "" {
			url := o.engine.GenerateImage(ctx, userID, generated.ImagePrompt, i)
			if url != "" {
				imageURL = &url
				images = append(images, url)
			}
		}

		chapter := &models.Chapter{
			ProjectID: projectID,
			Number:    i + 1,
			Language:  primaryLanguage,
			Title:     stub.Title,
			Content:   content,
			ImageURL:  imageURL,
		}
		if err := o.store.AddChapter(chapter); err != nil {
			return fmt.Errorf("chapter %d: %w", i+1, err)
		}
		chapters = append(chapters, chapter)

		progress := int(math.Round(35 + float64(i+1)/float64(len(outline))*25))
		step := fmt.Sprintf("Chapter %d/%d", i+1, len(outline))
		if err := o.store.UpdateProjectStatus(projectID, models.ProjectStatusGenerating, progress, step); err != nil {
			return err
		}
	}

	snapshot := make([]models.ContentSnapshot, len(chapters))
	for i, chapter := range chapters {
		snapshot[i] = models.ContentSnapshot{Title: chapter.Title, Content: chapter.Content}
	}
	if err := o.store.SetProjectContent(projectID, snapshot, images); err != nil {
		return err
	}
	if err := o.store.UpdateProjectStatus(projectID, models.ProjectStatusGenerating, 60, "Content generated"); err != nil {
		return err
	}

	translated := map[string][]BookChapter{}
	if len(targetLanguages) > 0 {
		if err := o.store.UpdateProjectStatus(projectID, models.ProjectStatusGenerating, 65, "Translating..."); err != nil {
			return err
		}

		for i, language := range targetLanguages {
			languageChapters := make([]BookChapter, 0, len(chapters))
			for _, chapter := range chapters {
				translatedContent, err := o.engine.TranslateContent(ctx, userID, chapter.Content, language)
				if err != nil {
					return fmt.Errorf("translation to %s: %w", language, err)
				}
				if err := o.store.AddTranslation(&models.Translation{
					ProjectID:         projectID,
					ChapterID:         chapter.ID,
					Language:          language,
					Title:             chapter.Title,
					TranslatedContent: translatedContent,
				}); err != nil {
					return fmt.Errorf("translation to %s: %w", language, err)
				}
				languageChapters = append(languageChapters, BookChapter{Title: chapter.Title, Content: translatedContent})
			}
			translated[language] = languageChapters

			progress := int(math.Round(65 + float64(i+1)/float64(len(targetLanguages))*15))
			step := fmt.Sprintf("Translated to %s", language)
			if err := o.store.UpdateProjectStatus(projectID, models.ProjectStatusGenerating, progress, step); err != nil {
				return err
			}
		}
	}

	if err := o.store.UpdateProjectStatus(projectID, models.ProjectStatusGenerating, 80, "Translation complete"); err != nil {
		return err
	}
	if err := o.store.UpdateProjectStatus(projectID, models.ProjectStatusGenerating, 85, "Creating mockups & exports..."); err != nil {
		return err
	}

	primaryChapters := make([]BookChapter, len(chapters))
	for i, chapter := range chapters {
		primaryChapters[i] = BookChapter{Title: chapter.Title, Content: chapter.Content}
	}
	if err := createExports(ctx, o.store, o.artifacts, projectID, title, primaryLanguage, primaryChapters); err != nil {
		return fmt.Errorf("exports: %w", err)
	}
	for _, language := range targetLanguages {
		if err := createExports(ctx, o.store, o.artifacts, projectID, title, language, translated[language]); err != nil {
			return fmt.Errorf("exports: %w", err)
		}
	}

	if err := createProductMockups(o.store, projectID, title, style, images); err != nil {
		return fmt.Errorf("mockups: %w", err)
	}

	if _, err := o.store.CompleteProject(projectID); err != nil {
		return err
	}
	logger.Info().Int("chapters", len(chapters)).Msg("Generation complete")

	if o.notifier != nil {
		o.notifier.ProjectCompleted(userID, title)
	}
	return nil
}

// Fail is the error boundary for detached runs: it records the terminal
// failed state with progress frozen at its last checkpoint.
func (o *Orchestrator) Fail(projectID uuid.UUID, runErr error) {
	log.Error().
		Err(runErr).
		Str("projectId", projectID.String()).
		Msg("Generation failed")

	if err := o.store.FailProject(projectID, runErr.Error()); err != nil {
		log.Error().Err(err).Str("projectId", projectID.String()).Msg("Failed to record failure state")
	}
}
