package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/pagepilot-ai/backend/errs"
)

const (
	defaultImageModel   = "gemini-2.5-flash-image"
	defaultGeminiAPIURL = "https://generativelanguage.googleapis.com/v1beta"
	imageHTTPTimeout    = 120 * time.Second
)

var dataURLPattern = regexp.MustCompile(`^data:([^;]+);base64,(.+)$`)

// geminiImageClient renders images through the Gemini generateContent API
// and returns them as base64 data URLs.
type geminiImageClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

func newGeminiImageClient(apiKey, baseURL, model string) *geminiImageClient {
	if baseURL == "" {
		baseURL = defaultGeminiAPIURL
	}
	if model == "" {
		model = defaultImageModel
	}
	return &geminiImageClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: imageHTTPTimeout},
	}
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig struct {
		ResponseModalities []string `json:"responseModalities"`
	} `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (c *geminiImageClient) Generate(ctx context.Context, prompt string) (string, error) {
	return c.generateContent(ctx, []geminiPart{{Text: prompt}})
}

func (c *geminiImageClient) GenerateWithReference(ctx context.Context, prompt, referenceDataURL string) (string, error) {
	matches := dataURLPattern.FindStringSubmatch(referenceDataURL)
	if matches == nil {
		return "", errs.NewBadRequestError("reference image must be a base64 data URL")
	}

	parts := []geminiPart{
		{InlineData: &geminiInlineData{MimeType: matches[1], Data: matches[2]}},
		{Text: prompt},
	}
	return c.generateContent(ctx, parts)
}

func (c *geminiImageClient) generateContent(ctx context.Context, parts []geminiPart) (string, error) {
	if c.apiKey == "" {
		return "", errs.NewInvalidAPIKeyError("image generation")
	}

	reqBody := geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: parts}},
	}
	reqBody.GenerationConfig.ResponseModalities = []string{"TEXT", "IMAGE"}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("image request encode: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("image request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", errs.NewServiceUnavailableError("image generation", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("image response read: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		return "", errs.NewRateLimitError("image generation")
	case http.StatusUnauthorized, http.StatusForbidden:
		return "", errs.NewInvalidAPIKeyError("image generation")
	default:
		return "", errs.NewServiceUnavailableError("image generation",
			fmt.Errorf("status %d: %s", resp.StatusCode, truncate(string(body), 200)))
	}

	var result geminiResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("image response decode: %w", err)
	}

	for _, candidate := range result.Candidates {
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && part.InlineData.Data != "" {
				mimeType := part.InlineData.MimeType
				if mimeType == "" {
					mimeType = "image/png"
				}
				return fmt.Sprintf("data:%s;base64,%s", mimeType, part.InlineData.Data), nil
			}
		}
	}

	return "", fmt.Errorf("image generation: %w", errs.ErrEmptyCompletion)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
