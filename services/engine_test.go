package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain json", `{"a":1}`, `{"a":1}`},
		{"fenced", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"fenced with language", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  {\"a\":1}\n", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, stripCodeFence(tt.input))
		})
	}
}

func TestGenerateImage_FallsBackToStockImage(t *testing.T) {
	// No credentials anywhere: every render attempt fails, and once the
	// retries are spent the deterministic stock image for the ordinal wins.
	resolver := NewCapabilityResolver(newFakeStore(), PlatformDefaults{})
	engine := NewAIEngine(resolver)
	engine.retryAttempts = 2
	engine.retryInitial = time.Millisecond
	engine.retryMax = time.Millisecond

	got := engine.GenerateImage(context.Background(), uuid.New(), "a bowl of ramen", 7)
	assert.Equal(t, stockImageURL(7), got)

	// Repeated failures for the same ordinal keep yielding the same image,
	// and ordinals wrap around the curated set.
	assert.Equal(t, got, engine.GenerateImage(context.Background(), uuid.New(), "a bowl of ramen", 7))
	assert.Equal(t, got, engine.GenerateImage(context.Background(), uuid.New(), "a bowl of ramen", 7+len(stockImageIDs)))
}

func TestGenerateImage_ResolverFailureFallsBackToStockImage(t *testing.T) {
	store := newFakeStore()
	store.apiConfigErr = errors.New("config lookup failed")
	resolver := NewCapabilityResolver(store, PlatformDefaults{GeminiAPIKey: "key"})
	engine := NewAIEngine(resolver)

	got := engine.GenerateImage(context.Background(), uuid.New(), "a bowl of ramen", 3)
	assert.Equal(t, stockImageURL(3), got)
}

func TestKeepsMarkup(t *testing.T) {
	assert.True(t, keepsMarkup("<p>hello</p>"))
	assert.False(t, keepsMarkup("hello"))
	assert.False(t, keepsMarkup("a < b"))
}
