package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pagepilot-ai/backend/models"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

// BookChapter is one rendered chapter fed into the export document.
type BookChapter struct {
	Title   string
	Content string
}

const bookStylesheet = `    * { margin: 0; padding: 0; box-sizing: border-box; }
    body { font-family: 'Georgia', 'Times New Roman', serif; max-width: 800px; margin: 40px auto; padding: 20px; line-height: 1.8; color: #333; background: #fff; }
    h1 { font-size: 2.5em; margin-bottom: 0.5em; color: #000; border-bottom: 3px solid #333; padding-bottom: 0.3em; }
    h2 { font-size: 1.8em; margin-top: 2em; margin-bottom: 0.5em; color: #222; }
    h3 { font-size: 1.3em; margin-top: 1.5em; margin-bottom: 0.3em; color: #333; }
    p { margin: 1em 0; text-align: justify; }
    strong { color: #000; font-weight: 600; }
    em { font-style: italic; color: #444; }
    ul, ol { margin: 1em 0; padding-left: 2em; }
    li { margin: 0.5em 0; }
    blockquote { border-left: 4px solid #ddd; margin: 1.5em 0; padding-left: 1em; color: #666; font-style: italic; background: #f9f9f9; padding: 1em; }
    .chapter { page-break-after: always; margin-bottom: 3em; }
    .content { margin-top: 1em; }
    .tip-box { background: #fff3cd; border-left: 4px solid #ffc107; padding: 1em; margin: 1.5em 0; }
    @media print { body { margin: 0; padding: 20mm; } .chapter { page-break-after: always; } }`

var whitespacePattern = regexp.MustCompile(`\s+`)

// slugify turns a book title into the file name base used for exports.
func slugify(title string) string {
	return whitespacePattern.ReplaceAllString(strings.ToLower(title), "-")
}

// buildBookHTML assembles the chapters into one standalone, printable HTML
// document.
func buildBookHTML(title, language string, chapters []BookChapter) string {
	var body strings.Builder
	for _, chapter := range chapters {
		body.WriteString(fmt.Sprintf(`<div class="chapter"><h2>%s</h2><div class="content">%s</div></div>`,
			chapter.Title, FormatHTML(chapter.Content)))
		body.WriteString("\n")
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="%s">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>%s</title>
  <style>
%s
  </style>
</head>
<body>
  <h1>%s</h1>
  %s
</body>
</html>`, language, title, bookStylesheet, title, body.String())
}

// htmlDataURL packs a document into a self-contained data URL the client can
// download directly.
func htmlDataURL(document string) string {
	return "data:text/html;charset=utf-8," + url.PathEscape(document)
}

// createExports writes the three per-language exports. All three share one
// rendered document; only the file names differ. When an artifact store is
// configured the document is uploaded there, otherwise exports are
// self-contained data URLs.
func createExports(ctx context.Context, store Store, artifacts *ArtifactStore, projectID uuid.UUID, title, language string, chapters []BookChapter) error {
	document := buildBookHTML(title, language, chapters)
	base := slugify(title)

	exports := []struct {
		format   string
		fileName string
	}{
		{models.ExportFormatEPUB, fmt.Sprintf("%s-%s.html", base, language)},
		{models.ExportFormatPDF, fmt.Sprintf("%s-%s-print.html", base, language)},
		{models.ExportFormatZIP, fmt.Sprintf("%s-%s-complete.html", base, language)},
	}

	for _, export := range exports {
		fileURL := ""
		if artifacts != nil {
			key := fmt.Sprintf("projects/%s/%s", projectID, export.fileName)
			uploaded, err := artifacts.Upload(ctx, key, "text/html; charset=utf-8", []byte(document))
			if err != nil {
				log.Warn().Err(err).Str("key", key).Msg("Artifact upload failed, falling back to inline export")
			} else {
				fileURL = uploaded
			}
		}
		if fileURL == "" {
			fileURL = htmlDataURL(document)
		}

		err := store.AddExport(&models.Export{
			ProjectID: projectID,
			Format:    export.format,
			Language:  language,
			FileName:  export.fileName,
			FileURL:   fileURL,
			FileSize:  int64(len(document)),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// mockupMetadata packs the book context stored alongside every mockup.
func mockupMetadata(title, style string) datatypes.JSON {
	payload, err := json.Marshal(models.MockupMetadata{
		Title:       title,
		Style:       style,
		GeneratedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil
	}
	return datatypes.JSON(payload)
}

// createProductMockups writes the 3d/mobile/desktop mockups from the first
// three chapter images, falling back to placeholders when fewer exist.
func createProductMockups(store Store, projectID uuid.UUID, title, style string, images []string) error {
	mockups := []struct {
		mockupType  string
		placeholder string
	}{
		{models.MockupType3D, "/placeholder-3d.jpg"},
		{models.MockupTypeMobile, "/placeholder-mobile.jpg"},
		{models.MockupTypeDesktop, "/placeholder-desktop.jpg"},
	}

	for i, mockup := range mockups {
		imageURL := mockup.placeholder
		if i < len(images) && images[i] != "" {
			imageURL = images[i]
		}
		err := store.AddMockup(&models.Mockup{
			ProjectID: projectID,
			Type:      mockup.mockupType,
			ImageURL:  imageURL,
			Metadata:  mockupMetadata(title, style),
		})
		if err != nil {
			return err
		}
	}
	return nil
}
