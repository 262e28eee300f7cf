package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatHTML_AddsInlineStyles(t *testing.T) {
	got := FormatHTML("<p>First.</p><h3>Heading</h3>")
	assert.Contains(t, got, `<p style="text-align: justify; margin: 1em 0">`)
	assert.Contains(t, got, `<h3 style="font-size: 1.3em; margin-top: 1.5em; margin-bottom: 0.5em; color: #333">`)
	assert.Contains(t, got, "First.</p>")
}

func TestFormatHTML_MergesExistingStyle(t *testing.T) {
	got := FormatHTML(`<p style="color: red">Warning</p>`)
	assert.Contains(t, got, `style="color: red; text-align: justify; margin: 1em 0"`)
	assert.Equal(t, 1, strings.Count(got, "style="))
}

func TestFormatHTML_KeepsOtherAttributes(t *testing.T) {
	got := FormatHTML(`<ul class="steps"><li>Chop</li></ul>`)
	assert.Contains(t, got, `class="steps"`)
	assert.Contains(t, got, `<li style="margin: 0.5em 0">`)
	assert.Contains(t, got, `list-style: disc`)
}

func TestFormatHTML_LeavesUnknownTagsAlone(t *testing.T) {
	got := FormatHTML("<h2>Chapter</h2><strong>bold</strong>")
	assert.Equal(t, "<h2>Chapter</h2><strong>bold</strong>", got)
}
