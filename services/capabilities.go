package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/pagepilot-ai/backend/models"
)

// TextGenerator produces a completion for a single prompt.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, temperature float64, jsonMode bool) (string, error)
}

// ImageGenerator renders an image for a prompt and returns it as a data URL.
// GenerateWithReference additionally conditions the render on a reference
// image supplied as a data URL.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	GenerateWithReference(ctx context.Context, prompt, referenceDataURL string) (string, error)
}

// PlatformDefaults are the fallback credentials used when a user has no
// active configuration for a capability.
type PlatformDefaults struct {
	OpenAIAPIKey  string
	OpenAIBaseURL string
	GeminiAPIKey  string
	GeminiBaseURL string
}

// CapabilityResolver picks the right provider client per user and capability:
// the user's active configuration when one exists, platform defaults
// otherwise.
type CapabilityResolver struct {
	store    Store
	defaults PlatformDefaults
}

func NewCapabilityResolver(store Store, defaults PlatformDefaults) *CapabilityResolver {
	return &CapabilityResolver{store: store, defaults: defaults}
}

// TextGenerator resolves a text capability for a user. The user's configured
// model wins over defaultModel when set.
func (r *CapabilityResolver) TextGenerator(userID uuid.UUID, capability, defaultModel string) (TextGenerator, error) {
	config, err := r.store.ActiveAPIConfig(userID, capability)
	if err != nil {
		return nil, err
	}

	apiKey := r.defaults.OpenAIAPIKey
	baseURL := r.defaults.OpenAIBaseURL
	model := defaultModel

	if config != nil {
		apiKey = config.APIKey
		if config.BaseURL != nil && *config.BaseURL != "" {
			baseURL = *config.BaseURL
		}
		if config.Model != nil && *config.Model != "" {
			model = *config.Model
		}
	}

	return newLLMTextGenerator(apiKey, baseURL, model)
}

// ImageGenerator resolves the image capability for a user.
func (r *CapabilityResolver) ImageGenerator(userID uuid.UUID) (ImageGenerator, error) {
	config, err := r.store.ActiveAPIConfig(userID, models.CapabilityImage)
	if err != nil {
		return nil, err
	}

	apiKey := r.defaults.GeminiAPIKey
	baseURL := r.defaults.GeminiBaseURL
	model := defaultImageModel

	if config != nil {
		apiKey = config.APIKey
		if config.BaseURL != nil && *config.BaseURL != "" {
			baseURL = *config.BaseURL
		}
		if config.Model != nil && *config.Model != "" {
			model = *config.Model
		}
	}

	return newGeminiImageClient(apiKey, baseURL, model), nil
}
