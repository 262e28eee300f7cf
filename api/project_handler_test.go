package api

import (
	"testing"

	"github.com/pagepilot-ai/backend/models"
	"github.com/stretchr/testify/assert"
)

func TestNewProjectDetailManualKeepsInstructions(t *testing.T) {
	project := &models.Project{Title: "The Weeknight Kitchen", Mode: models.ModeManual}
	instructions := []*models.ChapterInstruction{
		{Number: 1, Title: "Pantry Staples", Status: models.InstructionStatusGenerating},
	}
	chapters := []*models.Chapter{{Number: 1, Title: "Pantry Staples"}}

	detail := newProjectDetail(project, chapters, instructions, nil, nil, nil)

	assert.Equal(t, "The Weeknight Kitchen", detail.Title)
	assert.Equal(t, chapters, detail.Chapters)
	assert.Equal(t, instructions, detail.ChapterInstructions)
	assert.Equal(t, models.InstructionStatusGenerating, detail.ChapterInstructions[0].Status)
}

func TestNewProjectDetailAutopilotHasNoInstructions(t *testing.T) {
	project := &models.Project{Mode: models.ModeAutopilot}

	detail := newProjectDetail(project, nil, []*models.ChapterInstruction{{Number: 1}}, nil, nil, nil)

	assert.NotNil(t, detail.ChapterInstructions)
	assert.Empty(t, detail.ChapterInstructions)
}

func TestNewProjectDetailManualWithoutInstructions(t *testing.T) {
	project := &models.Project{Mode: models.ModeManual}

	detail := newProjectDetail(project, nil, nil, nil, nil, nil)

	assert.NotNil(t, detail.ChapterInstructions)
	assert.Empty(t, detail.ChapterInstructions)
}
