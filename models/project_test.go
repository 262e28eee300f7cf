package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidStyle(t *testing.T) {
	for _, style := range []string{StyleModernMag, StyleRecipeBook, StyleMinimalist, StyleVibrant} {
		assert.True(t, ValidStyle(style), style)
	}
	assert.False(t, ValidStyle("comic"))
	assert.False(t, ValidStyle(""))
}
