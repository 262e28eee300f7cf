package services

import (
	"fmt"

	"github.com/pagepilot-ai/backend/models"
)

// Default models per capability when neither the user configuration nor the
// environment overrides them.
const (
	defaultReasoningModel   = "gpt-4o-mini"
	defaultOutlineModel     = "gpt-4o-mini"
	defaultChapterModel     = "gpt-4o"
	defaultGrammarModel     = "gpt-4o-mini"
	defaultHumanizeModel    = "gpt-4o"
	defaultTranslationModel = "gpt-4o"
)

// trendPrompts steer topic selection per visual style.
var trendPrompts = map[string]string{
	models.StyleModernMag:  "trending lifestyle and wellness topics with high visual appeal",
	models.StyleRecipeBook: "viral food trends and popular cuisines (keto, vegan, etc.)",
	models.StyleMinimalist: "productivity hacks and minimalist living guides",
	models.StyleVibrant:    "pop culture and social media trending topics",
}

// outlineContexts describe the chapter structure expected per style.
var outlineContexts = map[string]string{
	models.StyleModernMag:  "magazine-style layout with 8-10 short visual sections",
	models.StyleRecipeBook: "6-8 recipes with step-by-step instructions and ingredient lists",
	models.StyleMinimalist: "10-12 minimalist tips with clean, simple structure",
	models.StyleVibrant:    "8-10 colorful, engaging chapters with bold visuals",
}

// styleInstructions set the prose voice per style for chapter generation.
var styleInstructions = map[string]string{
	models.StyleModernMag:  "Magazine style with BOLD headlines, punchy paragraphs, dramatic callouts. Use energy words like 'stunning', 'revolutionary', 'game-changing'. Add quotes and expert tips.",
	models.StyleRecipeBook: "Complete recipe with vivid descriptions. Paint sensory details: 'crispy golden edges', 'silky smooth texture', 'aromatic spices'. Include pro chef tips and flavor variations.",
	models.StyleMinimalist: "Clean, powerful prose. Short sentences. Bold verbs. No fluff. Each word earns its place. Actionable, transformative advice.",
	models.StyleVibrant:    "HIGH ENERGY writing! Use enthusiasm, exclamation points, power words. Social media-ready hooks. Make readers EXCITED to try this!",
}

// imageStyleVariations and imageColorPalettes give each chapter image a
// distinct look, selected deterministically by chapter ordinal.
var imageStyleVariations = []string{
	"overhead flat lay shot with natural morning light",
	"close-up macro photography with shallow depth of field",
	"45-degree angle hero shot with styled background",
	"rustic wooden table setting with soft shadows",
	"bright minimalist composition with negative space",
	"cozy lifestyle shot with warm ambient lighting",
	"editorial food photography with dramatic lighting",
	"fresh ingredients scattered artfully around the dish",
}

var imageColorPalettes = []string{
	"vibrant greens and warm earth tones",
	"bright rainbow colors with white accents",
	"rich jewel tones with gold highlights",
	"soft pastels with natural wood textures",
	"deep burgundy and forest green palette",
	"sunny yellow and orange gradient",
	"cool blues and purples with silver touches",
	"warm amber and cream tones",
}

// stockImageIDs are curated copyright-free fallbacks used when image
// generation exhausts its retries.
var stockImageIDs = []string{
	"1640777", "1640774", "1640772", "1640770", "1640768",
	"1092730", "1095550", "1082343", "1640764", "1092883",
	"1600711", "1640766", "1640767", "1640769", "1640773",
}

// stockImageURL returns the deterministic fallback image for a chapter
// ordinal.
func stockImageURL(ordinal int) string {
	id := stockImageIDs[ordinal%len(stockImageIDs)]
	return fmt.Sprintf("https://images.pexels.com/photos/%s/pexels-photo-%s.jpeg?auto=compress&cs=tinysrgb&w=1200&h=800&fit=crop", id, id)
}

// enhanceImagePrompt decorates a raw image prompt with per-chapter style and
// palette so consecutive chapters never look alike.
func enhanceImagePrompt(prompt string, ordinal int) string {
	style := imageStyleVariations[ordinal%len(imageStyleVariations)]
	palette := imageColorPalettes[ordinal%len(imageColorPalettes)]
	return fmt.Sprintf("Professional commercial food photography: %s. %s, %s. Magazine-quality, studio lighting, high resolution, appetizing presentation, editorial style. Sharp focus, rich textures, vivid details.", prompt, style, palette)
}

// marketingMockupPrompts render the finished cover onto device and print
// scenes for sales pages.
var marketingMockupPrompts = map[string]string{
	models.MockupTypeTabletOffice: `Create a professional product photography scene: A modern sleek tablet device placed on a clean minimalist office desk at a slight angle. The tablet screen must display the EXACT ebook cover image provided. Scene includes: white ceramic coffee cup with saucer on the right, a spiral notebook with a luxury pen on the left, and soft natural window lighting creating gentle shadows on the desk surface. Background is a bright, airy office with blurred windows showing daylight. The tablet bezel is thin and modern (iPad Pro style). Photorealistic, commercial product photography, shallow depth of field focusing on the tablet screen, warm natural tones, elegant professional composition, 4K quality, lifestyle marketing shot.`,

	models.MockupTypeBook3D: `Create an ultra-realistic 3D physical book mockup: A premium hardcover book standing upright at a 20-degree angle showing the front cover prominently. The book cover must display the EXACT cover image provided - preserve all text, colors, and design elements perfectly. The book has a glossy laminated finish with realistic paper texture visible on the page edges (showing it's a thick, quality book). Placed on a pure white reflective surface creating a subtle mirror reflection below. Studio lighting with soft shadows from upper right, creating professional depth. Clean white background (pure white, no gradients). Premium publishing quality, photorealistic 3D rendering, commercial product shot for online bookstore, high resolution, professional book photography.`,

	models.MockupTypeMultiDevice: `Create a professional multi-device responsive mockup scene: An iMac desktop computer (center, largest device), iPad tablet (positioned to the left, medium size), and iPhone (right side, smallest) all displaying the EXACT same ebook cover image provided on their screens - the cover must be identical on all three devices. Devices are arranged on a clean light wooden desk in a modern minimalist office setting at slight angles for visual interest. Scene includes tasteful props: a small potted succulent plant (back left), wireless Apple keyboard (front), and a white ceramic coffee mug (right). Soft natural lighting from a window (left side) creating gentle shadows, clean professional composition, all device screens in sharp focus showing the cover clearly, commercial technology photography, realistic and professional, warm neutral tones, marketing shot for responsive ebook platform.`,
}

// languageNames maps ISO codes onto the names used in translation prompts.
var languageNames = map[string]string{
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"it": "Italian",
	"pt": "Portuguese",
}

func languageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return code
}

func trendAnalysisPrompt(style string) string {
	styleHint, ok := trendPrompts[style]
	if !ok {
		styleHint = trendPrompts[models.StyleModernMag]
	}
	return fmt.Sprintf(`You are a market analyst. Based on current trends, suggest ONE high-commercial-potential topic for a %s ebook.

Requirements:
- Short, punchy titles (30-50 pages max)
- High social media shareability
- Visual-heavy potential
- Broad appeal

Return ONLY the topic title (e.g., "The Viral Keto Breakfast Bowl Guide 2025")`, styleHint)
}

func outlinePrompt(title, style, language string) string {
	styleContext, ok := outlineContexts[style]
	if !ok {
		styleContext = outlineContexts[models.StyleModernMag]
	}
	return fmt.Sprintf(`Create an outline for a commercial ebook titled "%s".

Style: %s
Language: %s
Target: 35-50 pages total

Return a JSON object with this structure:
{
  "chapters": [
    {
      "title": "Chapter title",
      "description": "2-sentence description",
      "keywords": ["keyword1", "keyword2", "keyword3"]
    }
  ]
}

Keep it commercial, punchy, and visual-friendly.`, title, styleContext, language)
}

func chapterPrompt(chapterTitle, chapterDescription, style, language string) string {
	instructions, ok := styleInstructions[style]
	if !ok {
		instructions = styleInstructions[models.StyleRecipeBook]
	}
	return fmt.Sprintf(`Write DYNAMIC, ENGAGING, PERFECTLY FORMATTED content for this chapter - make it magazine-quality!

**Chapter:** %s
**Description:** %s
**Style:** %s
**Language:** %s
**Length:** 600-900 words

**MANDATORY FORMATTING RULES - FOLLOW EXACTLY:**
1. EVERY PARAGRAPH must use <p> tags (no other tags for body text)
2. Use <strong> for AT LEAST 8-12 key words, measurements, concepts
3. Use <em> for emphasis and sensory descriptions
4. MUST include at least ONE <ul> list with 4-8 items
5. MUST include at least ONE <blockquote> with a pro tip
6. Use <h3> for 2-3 sub-sections
7. Make text DYNAMIC with varied sentence lengths
8. Add personality - conversational yet professional

**CRITICAL:** Your output must be PURE HTML content ONLY - no markdown, no code blocks, no explanations.

**Image Prompt:**
Create a detailed, specific prompt for commercial photography:
- Exact angle (overhead, 45 degrees, close-up macro)
- Lighting (natural window light, studio, dramatic, soft)
- Color palette (warm earth tones, vibrant rainbow, moody dark, bright pastels)
- Specific props and styling
- The exact dish/scene

Return ONLY this JSON (no markdown, no code blocks):
{
  "content": "YOUR FORMATTED HTML HERE",
  "imagePrompt": "DETAILED PHOTOGRAPHY PROMPT HERE"
}`, chapterTitle, chapterDescription, instructions, language)
}

func grammarPrompt(content, language string) string {
	return fmt.Sprintf(`Fix grammar, spelling, and punctuation errors in this HTML content.

CRITICAL RULES:
1. Preserve ALL HTML tags EXACTLY (<p>, <strong>, <em>, <ul>, <li>, <blockquote>, <h3>, etc.)
2. Only fix text content between tags
3. Do NOT convert to markdown
4. Do NOT remove or alter any HTML structure
5. Return ONLY the corrected HTML with NO additional text

Language: %s

HTML Content:
%s`, language, content)
}

func humanizePrompt(content, language string) string {
	return fmt.Sprintf(`Make this AI-generated text sound MORE HUMAN and NATURAL while preserving ALL HTML structure.

**CRITICAL HTML PRESERVATION RULES:**
1. PRESERVE ALL HTML tags EXACTLY: <p>, <strong>, <em>, <ul>, <li>, <blockquote>, <h3>, etc.
2. Do NOT convert to markdown
3. Do NOT remove or alter HTML structure
4. Only modify TEXT CONTENT between tags

**Humanization Rules:**
1. Vary sentence structure (mix short and long)
2. Add contractions where natural ("it's", "you'll", "we're")
3. Use conversational transitions ("however", "meanwhile", "in fact")
4. Remove overly formal AI phrases ("it is important to note", "furthermore")
5. Keep enthusiasm but make it authentic
6. Add subtle personality without being cheesy

Language: %s

HTML Content:
%s

Return ONLY the humanized HTML with ALL tags preserved. No markdown, no explanations.`, language, content)
}

func translationPrompt(content, targetLanguage string) string {
	return fmt.Sprintf(`Translate the following content to %s. Maintain HTML formatting and structure. Keep the tone commercial and engaging.

Content:
%s`, languageName(targetLanguage), content)
}

func mockupPrompt(mockupType, bookTitle string) string {
	base := marketingMockupPrompts[mockupType]
	return fmt.Sprintf("%s\n\nIMPORTANT: Use the provided cover image EXACTLY as shown - this is the actual ebook cover for %q. Display it on the device screen(s) in the mockup scene. Preserve all text, colors, and design elements from the cover perfectly. Do not modify or recreate the cover design.", base, bookTitle)
}
