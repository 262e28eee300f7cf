package services

import (
	"testing"

	"github.com/pagepilot-ai/backend/models"
	"github.com/stretchr/testify/assert"
)

func TestStockImageURLIsDeterministic(t *testing.T) {
	assert.Equal(t, stockImageURL(2), stockImageURL(2))
	// Ordinals wrap around the curated set.
	assert.Equal(t, stockImageURL(2), stockImageURL(2+len(stockImageIDs)))
	assert.Contains(t, stockImageURL(0), stockImageIDs[0])
	assert.Contains(t, stockImageURL(0), "images.pexels.com")
}

func TestEnhanceImagePromptVariesByOrdinal(t *testing.T) {
	first := enhanceImagePrompt("a bowl of ramen", 0)
	second := enhanceImagePrompt("a bowl of ramen", 1)
	assert.Contains(t, first, "a bowl of ramen")
	assert.NotEqual(t, first, second)
	// Same ordinal always yields the same styling.
	assert.Equal(t, first, enhanceImagePrompt("a bowl of ramen", len(imageStyleVariations)*len(imageColorPalettes)))
}

func TestLanguageName(t *testing.T) {
	assert.Equal(t, "Spanish", languageName("es"))
	assert.Equal(t, "nl", languageName("nl"))
}

func TestPromptsCoverEveryStyle(t *testing.T) {
	for _, style := range []string{models.StyleModernMag, models.StyleRecipeBook, models.StyleMinimalist, models.StyleVibrant} {
		assert.NotEmpty(t, trendAnalysisPrompt(style), "style %s", style)
		assert.Contains(t, outlinePrompt("My Book", style, "en"), "My Book")
	}
}

func TestMarketingMockupPromptsCoverEveryType(t *testing.T) {
	for _, mockupType := range []string{models.MockupTypeTabletOffice, models.MockupTypeBook3D, models.MockupTypeMultiDevice} {
		assert.NotEmpty(t, marketingMockupPrompts[mockupType], "type %s", mockupType)
	}
}
