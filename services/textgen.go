package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/pagepilot-ai/backend/errs"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// llmTextGenerator backs the text capabilities with an OpenAI-compatible
// chat model.
type llmTextGenerator struct {
	llm *openai.LLM
}

func newLLMTextGenerator(apiKey, baseURL, model string) (*llmTextGenerator, error) {
	if apiKey == "" {
		return nil, errs.NewInvalidAPIKeyError("text generation")
	}

	opts := []openai.Option{
		openai.WithToken(apiKey),
		openai.WithModel(model),
	}
	if baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, errs.NewServiceUnavailableError("text generation", err)
	}
	return &llmTextGenerator{llm: llm}, nil
}

func (g *llmTextGenerator) Generate(ctx context.Context, prompt string, temperature float64, jsonMode bool) (string, error) {
	callOpts := []llms.CallOption{llms.WithTemperature(temperature)}
	if jsonMode {
		callOpts = append(callOpts, llms.WithJSONMode())
	}

	completion, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt, callOpts...)
	if err != nil {
		return "", classifyLLMError(err)
	}

	completion = strings.TrimSpace(completion)
	if completion == "" {
		return "", fmt.Errorf("text generation: %w", errs.ErrEmptyCompletion)
	}
	return completion, nil
}

// classifyLLMError maps provider failures onto the sentinel errors callers
// branch on.
func classifyLLMError(err error) error {
	message := strings.ToLower(err.Error())
	switch {
	case strings.Contains(message, "rate limit") || strings.Contains(message, "429"):
		return errs.NewRateLimitError("text generation")
	case strings.Contains(message, "overloaded") || strings.Contains(message, "503"):
		return errs.NewModelOverloadedError("text generation")
	case strings.Contains(message, "context length") || strings.Contains(message, "maximum context"):
		return errs.NewContextLengthError("text generation", 0)
	case strings.Contains(message, "invalid api key") || strings.Contains(message, "401"):
		return errs.NewInvalidAPIKeyError("text generation")
	default:
		return errs.NewServiceUnavailableError("text generation", err)
	}
}
