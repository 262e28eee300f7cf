package services

import (
	"fmt"
	"regexp"
	"strings"
)

// Inline styles applied to chapter HTML before export. Keys are processed in
// a fixed order so output is deterministic.
var elementStyles = []struct {
	tag   string
	style string
}{
	{"p", "text-align: justify; margin: 1em 0"},
	{"ul", "margin: 1em 0; padding-left: 2em; list-style: disc"},
	{"ol", "margin: 1em 0; padding-left: 2em"},
	{"li", "margin: 0.5em 0"},
	{"blockquote", "border-left: 4px solid #ddd; margin: 1.5em 0; padding: 1em; background: #f9f9f9; font-style: italic; color: #666"},
	{"h3", "font-size: 1.3em; margin-top: 1.5em; margin-bottom: 0.5em; color: #333"},
}

var (
	styleAttrPattern     = regexp.MustCompile(`(?i)style\s*=\s*["']([^"']*)["']`)
	repeatedSemiPattern  = regexp.MustCompile(`;+`)
	openTagPatternCache  = map[string]*regexp.Regexp{}
)

func init() {
	for _, es := range elementStyles {
		openTagPatternCache[es.tag] = regexp.MustCompile(fmt.Sprintf(`(?i)<%s([^>]*)>`, es.tag))
	}
}

// FormatHTML applies the export stylesheet as inline styles on each known
// element. Existing style attributes are merged into, never overwritten.
func FormatHTML(html string) string {
	formatted := html
	for _, es := range elementStyles {
		formatted = addStyles(formatted, es.tag, es.style)
	}
	return formatted
}

func addStyles(html, tag, newStyles string) string {
	pattern := openTagPatternCache[tag]
	return pattern.ReplaceAllStringFunc(html, func(match string) string {
		attrs := match[1+len(tag) : len(match)-1]

		styleMatch := styleAttrPattern.FindStringSubmatch(attrs)
		if styleMatch != nil {
			merged := repeatedSemiPattern.ReplaceAllString(styleMatch[1]+"; "+newStyles, ";")
			merged = strings.TrimSpace(merged)
			updatedAttrs := styleAttrPattern.ReplaceAllString(attrs, fmt.Sprintf(`style="%s"`, merged))
			return fmt.Sprintf("<%s%s>", tag, updatedAttrs)
		}
		return fmt.Sprintf(`<%s%s style="%s">`, tag, attrs, newStyles)
	})
}
