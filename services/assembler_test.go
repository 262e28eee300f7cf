package services

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/pagepilot-ai/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "the-weeknight-kitchen", slugify("The Weeknight Kitchen"))
	assert.Equal(t, "one-two", slugify("One\t \nTwo"))
	assert.Equal(t, "plain", slugify("plain"))
}

func TestBuildBookHTML(t *testing.T) {
	chapters := []BookChapter{
		{Title: "Getting Started", Content: "<p>Welcome.</p>"},
		{Title: "Going Deeper", Content: "<p>More.</p>"},
	}
	document := buildBookHTML("My Book", "es", chapters)

	assert.True(t, strings.HasPrefix(document, "<!DOCTYPE html>"))
	assert.Contains(t, document, `<html lang="es">`)
	assert.Contains(t, document, "<title>My Book</title>")
	assert.Contains(t, document, "<h1>My Book</h1>")
	assert.Equal(t, 2, strings.Count(document, `<div class="chapter">`))
	assert.Contains(t, document, "<h2>Getting Started</h2>")
	// Chapter content passes through the inline styler.
	assert.Contains(t, document, `<p style="text-align: justify; margin: 1em 0">Welcome.</p>`)
}

func TestHTMLDataURL(t *testing.T) {
	dataURL := htmlDataURL("<html><body>hi</body></html>")
	assert.True(t, strings.HasPrefix(dataURL, "data:text/html;charset=utf-8,"))
	assert.NotContains(t, dataURL, " ")
}

func TestCreateExports_InlineFallback(t *testing.T) {
	store := newFakeStore()
	project := store.seedProject(models.ModeAutopilot, models.ProjectStatusGenerating, "en")
	chapters := []BookChapter{{Title: "Getting Started", Content: "<p>Welcome.</p>"}}

	err := createExports(context.Background(), store, nil, project.ID, "The Weeknight Kitchen", "en", chapters)
	require.NoError(t, err)
	require.Len(t, store.exports, 3)

	byFormat := map[string]*models.Export{}
	for _, export := range store.exports {
		byFormat[export.Format] = export
	}
	require.Len(t, byFormat, 3)

	assert.Equal(t, "the-weeknight-kitchen-en.html", byFormat[models.ExportFormatEPUB].FileName)
	assert.Equal(t, "the-weeknight-kitchen-en-print.html", byFormat[models.ExportFormatPDF].FileName)
	assert.Equal(t, "the-weeknight-kitchen-en-complete.html", byFormat[models.ExportFormatZIP].FileName)

	// All three share one rendered document.
	size := byFormat[models.ExportFormatEPUB].FileSize
	assert.Positive(t, size)
	for _, export := range store.exports {
		assert.Equal(t, "en", export.Language)
		assert.Equal(t, size, export.FileSize)
		assert.True(t, strings.HasPrefix(export.FileURL, "data:text/html;charset=utf-8,"))
	}
}

func TestCreateProductMockups_FallsBackToPlaceholders(t *testing.T) {
	store := newFakeStore()
	project := store.seedProject(models.ModeAutopilot, models.ProjectStatusGenerating, "en")

	err := createProductMockups(store, project.ID, "The Weeknight Kitchen", models.StyleRecipeBook,
		[]string{"https://images.test/chapter-0.png", "https://images.test/chapter-1.png"})
	require.NoError(t, err)
	require.Len(t, store.mockups, 3)

	byType := map[string]string{}
	for _, mockup := range store.mockups {
		byType[mockup.Type] = mockup.ImageURL

		var metadata models.MockupMetadata
		require.NoError(t, json.Unmarshal(mockup.Metadata, &metadata))
		assert.Equal(t, "The Weeknight Kitchen", metadata.Title)
		assert.Equal(t, models.StyleRecipeBook, metadata.Style)
		assert.False(t, metadata.GeneratedAt.IsZero())
	}
	assert.Equal(t, "https://images.test/chapter-0.png", byType[models.MockupType3D])
	assert.Equal(t, "https://images.test/chapter-1.png", byType[models.MockupTypeMobile])
	assert.Equal(t, "/placeholder-desktop.jpg", byType[models.MockupTypeDesktop])
}
