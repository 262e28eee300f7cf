package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pagepilot-ai/backend/models"
	"github.com/rs/zerolog/log"
)

// GeneratedChapter is the model output for one chapter: formatted HTML plus
// an optional photography prompt for its illustration.
type GeneratedChapter struct {
	Title       string
	Content     string
	ImagePrompt string
}

// Engine is the AI surface the generation pipelines run against.
type Engine interface {
	AnalyzeTrends(ctx context.Context, userID uuid.UUID, style string) (string, error)
	GenerateOutline(ctx context.Context, userID uuid.UUID, title, style, language string) ([]models.OutlineChapter, error)
	GenerateChapterContent(ctx context.Context, userID uuid.UUID, chapterTitle, chapterDescription, style, language string) (*GeneratedChapter, error)
	GenerateImage(ctx context.Context, userID uuid.UUID, prompt string, ordinal int) string
	GenerateMarketingMockup(ctx context.Context, userID uuid.UUID, bookTitle, coverImageURL, mockupType string) string
	CheckGrammar(ctx context.Context, userID uuid.UUID, content, language string) string
	HumanizeContent(ctx context.Context, userID uuid.UUID, content, language string) string
	TranslateContent(ctx context.Context, userID uuid.UUID, content, targetLanguage string) (string, error)
}

// AIEngine implements Engine against per-user resolved provider clients.
type AIEngine struct {
	resolver *CapabilityResolver

	retryAttempts int
	retryInitial  time.Duration
	retryMax      time.Duration
}

func NewAIEngine(resolver *CapabilityResolver) *AIEngine {
	return &AIEngine{
		resolver:      resolver,
		retryAttempts: imageMaxAttempts,
		retryInitial:  imageInitialBackoff,
		retryMax:      imageMaxBackoff,
	}
}

// AnalyzeTrends selects one commercial topic for the given style.
func (e *AIEngine) AnalyzeTrends(ctx context.Context, userID uuid.UUID, style string) (string, error) {
	generator, err := e.resolver.TextGenerator(userID, models.CapabilityReasoning, defaultReasoningModel)
	if err != nil {
		return "", err
	}

	completion, err := generator.Generate(ctx, trendAnalysisPrompt(style), 0.8, false)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(completion), nil
}

// GenerateOutline produces the chapter stubs for a book.
func (e *AIEngine) GenerateOutline(ctx context.Context, userID uuid.UUID, title, style, language string) ([]models.OutlineChapter, error) {
	generator, err := e.resolver.TextGenerator(userID, models.CapabilityTextGeneration, defaultOutlineModel)
	if err != nil {
		return nil, err
	}

	completion, err := generator.Generate(ctx, outlinePrompt(title, style, language), 0.7, true)
	if err != nil {
		return nil, err
	}

	var result struct {
		Chapters []models.OutlineChapter `json:"chapters"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(completion)), &result); err != nil {
		return nil, err
	}
	return result.Chapters, nil
}

// GenerateChapterContent writes one chapter worth of formatted HTML.
func (e *AIEngine) GenerateChapterContent(ctx context.Context, userID uuid.UUID, chapterTitle, chapterDescription, style, language string) (*GeneratedChapter, error) {
	generator, err := e.resolver.TextGenerator(userID, models.CapabilityTextGeneration, defaultChapterModel)
	if err != nil {
		return nil, err
	}

	completion, err := generator.Generate(ctx, chapterPrompt(chapterTitle, chapterDescription, style, language), 0.8, true)
	if err != nil {
		return nil, err
	}

	var result struct {
		Content     string `json:"content"`
		ImagePrompt string `json:"imagePrompt"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(completion)), &result); err != nil {
		return nil, err
	}

	return &GeneratedChapter{
		Title:       chapterTitle,
		Content:     result.Content,
		ImagePrompt: result.ImagePrompt,
	}, nil
}

// GenerateImage renders a chapter illustration. The ordinal picks a
// deterministic style variation, and after exhausting retries the curated
// stock image for that ordinal is returned instead of an error.
func (e *AIEngine) GenerateImage(ctx context.Context, userID uuid.UUID, prompt string, ordinal int) string {
	logger := log.With().Str("service", "imageGeneration").Int("ordinal", ordinal).Logger()

	generator, err := e.resolver.ImageGenerator(userID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to resolve image generator, using stock image")
		return stockImageURL(ordinal)
	}

	enhanced := enhanceImagePrompt(prompt, ordinal)
	imageURL, err := withRetry(ctx, e.retryAttempts, e.retryInitial, e.retryMax, func() (string, error) {
		return generator.Generate(ctx, enhanced)
	})
	if err != nil {
		logger.Error().Err(err).Msg("Image generation failed after retries, using stock image")
		return stockImageURL(ordinal)
	}

	return imageURL
}

// GenerateMarketingMockup renders the finished cover into a sales scene.
// Failures fall back to the cover image itself so mockup generation never
// blocks a project.
func (e *AIEngine) GenerateMarketingMockup(ctx context.Context, userID uuid.UUID, bookTitle, coverImageURL, mockupType string) string {
	logger := log.With().Str("service", "marketingMockup").Str("type", mockupType).Logger()

	if !strings.HasPrefix(coverImageURL, "data:") {
		logger.Warn().Msg("Cover image is not a data URL, returning cover as-is")
		return coverImageURL
	}

	generator, err := e.resolver.ImageGenerator(userID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to resolve image generator, returning cover as-is")
		return coverImageURL
	}

	prompt := mockupPrompt(mockupType, bookTitle)
	mockupURL, err := withRetry(ctx, e.retryAttempts, e.retryInitial, e.retryMax, func() (string, error) {
		return generator.GenerateWithReference(ctx, prompt, coverImageURL)
	})
	if err != nil {
		logger.Error().Err(err).Msg("Mockup generation failed after retries, returning cover as-is")
		return coverImageURL
	}

	return mockupURL
}

// CheckGrammar corrects the prose inside the HTML. Best effort: any failure
// or a reply that lost its markup returns the input unchanged.
func (e *AIEngine) CheckGrammar(ctx context.Context, userID uuid.UUID, content, language string) string {
	logger := log.With().Str("service", "grammarCheck").Logger()

	generator, err := e.resolver.TextGenerator(userID, models.CapabilityTextGeneration, defaultGrammarModel)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to resolve text generator, keeping original content")
		return content
	}

	corrected, err := generator.Generate(ctx, grammarPrompt(content, language), 0.2, false)
	if err != nil {
		logger.Warn().Err(err).Msg("Grammar check failed, keeping original content")
		return content
	}

	if !keepsMarkup(corrected) {
		logger.Warn().Msg("Grammar check stripped markup, keeping original content")
		return content
	}
	return corrected
}

// HumanizeContent rewrites the prose to sound natural. Same best-effort
// contract as CheckGrammar.
func (e *AIEngine) HumanizeContent(ctx context.Context, userID uuid.UUID, content, language string) string {
	logger := log.With().Str("service", "humanize").Logger()

	generator, err := e.resolver.TextGenerator(userID, models.CapabilityTextGeneration, defaultHumanizeModel)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to resolve text generator, keeping original content")
		return content
	}

	humanized, err := generator.Generate(ctx, humanizePrompt(content, language), 0.8, false)
	if err != nil {
		logger.Warn().Err(err).Msg("Humanization failed, keeping original content")
		return content
	}

	if !keepsMarkup(humanized) {
		logger.Warn().Msg("Humanization stripped markup, keeping original content")
		return content
	}
	return humanized
}

// TranslateContent renders the HTML content in the target language.
func (e *AIEngine) TranslateContent(ctx context.Context, userID uuid.UUID, content, targetLanguage string) (string, error) {
	generator, err := e.resolver.TextGenerator(userID, models.CapabilityTranslation, defaultTranslationModel)
	if err != nil {
		return "", err
	}
	return generator.Generate(ctx, translationPrompt(content, targetLanguage), 0.3, false)
}

// keepsMarkup is the cheap sanity check that a rewritten reply still carries
// HTML tags.
func keepsMarkup(content string) bool {
	return strings.Contains(content, "<") && strings.Contains(content, ">")
}

// stripCodeFence removes a wrapping markdown code fence some models add
// around JSON replies despite instructions.
func stripCodeFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
