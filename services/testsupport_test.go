package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/pagepilot-ai/backend/models"
	"gorm.io/datatypes"
)

// fakeStore is an in-memory Store for pipeline tests. It records every
// status write so tests can assert on checkpoint ordering.
type fakeStore struct {
	mu           sync.Mutex
	projects     map[uuid.UUID]*models.Project
	chapters     []*models.Chapter
	instructions []*models.ChapterInstruction
	translations []*models.Translation
	mockups      []*models.Mockup
	exports      []*models.Export
	statusWrites []statusWrite
	apiConfigErr error
}

type statusWrite struct {
	status   string
	progress int
	step     string
}

func newFakeStore() *fakeStore {
	return &fakeStore{projects: map[uuid.UUID]*models.Project{}}
}

func (s *fakeStore) seedProject(mode, status, primaryLanguage string) *models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	project := &models.Project{
		ID:              uuid.New(),
		UserID:          uuid.New(),
		Title:           "Generating...",
		Style:           models.StyleRecipeBook,
		Mode:            mode,
		Status:          status,
		PrimaryLanguage: primaryLanguage,
	}
	s.projects[project.ID] = project
	return project
}

func (s *fakeStore) seedInstruction(projectID uuid.UUID, number int, title, instructions string) *models.ChapterInstruction {
	s.mu.Lock()
	defer s.mu.Unlock()
	instruction := &models.ChapterInstruction{
		ID:           uuid.New(),
		ProjectID:    projectID,
		Number:       number,
		Title:        title,
		Instructions: instructions,
		Status:       models.InstructionStatusDraft,
	}
	s.instructions = append(s.instructions, instruction)
	return instruction
}

// GetProject hands out a detached copy, the way a real row read does, so a
// caller holding a stale snapshot cannot mutate the stored record.
func (s *fakeStore) GetProject(id uuid.UUID) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	project, ok := s.projects[id]
	if !ok {
		return nil, errors.New("project not found")
	}
	detached := *project
	return &detached, nil
}

func (s *fakeStore) SetProjectTitle(id uuid.UUID, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	project, ok := s.projects[id]
	if !ok {
		return errors.New("project not found")
	}
	project.Title = title
	s.recordPollSurface(project)
	return nil
}

func (s *fakeStore) SetProjectOutline(id uuid.UUID, outline []models.OutlineChapter) error {
	payload, err := json.Marshal(outline)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	project, ok := s.projects[id]
	if !ok {
		return errors.New("project not found")
	}
	project.Outline = datatypes.JSON(payload)
	s.recordPollSurface(project)
	return nil
}

func (s *fakeStore) SetProjectContent(id uuid.UUID, snapshot []models.ContentSnapshot, images []string) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	project, ok := s.projects[id]
	if !ok {
		return errors.New("project not found")
	}
	project.Content = datatypes.JSON(payload)
	project.Images = datatypes.NewJSONSlice(images)
	s.recordPollSurface(project)
	return nil
}

// recordPollSurface logs what a concurrent status poll would observe right
// after a write, so tests can assert the surface never moves backward.
// Callers must hold s.mu.
func (s *fakeStore) recordPollSurface(project *models.Project) {
	step := ""
	if project.CurrentStep != nil {
		step = *project.CurrentStep
	}
	s.statusWrites = append(s.statusWrites, statusWrite{
		status:   project.Status,
		progress: project.GenerationProgress,
		step:     step,
	})
}

func (s *fakeStore) UpdateProjectStatus(id uuid.UUID, status string, progress int, step string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	project, ok := s.projects[id]
	if !ok {
		return errors.New("project not found")
	}
	project.Status = status
	project.GenerationProgress = progress
	project.CurrentStep = &step
	s.statusWrites = append(s.statusWrites, statusWrite{status: status, progress: progress, step: step})
	return nil
}

func (s *fakeStore) FailProject(id uuid.UUID, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	project, ok := s.projects[id]
	if !ok {
		return errors.New("project not found")
	}
	project.Status = models.ProjectStatusFailed
	project.CurrentStep = &reason
	return nil
}

func (s *fakeStore) CompleteProject(id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	project, ok := s.projects[id]
	if !ok {
		return false, errors.New("project not found")
	}
	if project.Status == models.ProjectStatusCompleted {
		return false, nil
	}
	step := "completed"
	project.Status = models.ProjectStatusCompleted
	project.GenerationProgress = 100
	project.CurrentStep = &step
	s.statusWrites = append(s.statusWrites, statusWrite{status: project.Status, progress: 100, step: step})
	return true, nil
}

func (s *fakeStore) AddChapter(chapter *models.Chapter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if chapter.ID == uuid.Nil {
		chapter.ID = uuid.New()
	}
	s.chapters = append(s.chapters, chapter)
	return nil
}

func (s *fakeStore) ChaptersByProject(projectID uuid.UUID, language string) ([]*models.Chapter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var chapters []*models.Chapter
	for _, chapter := range s.chapters {
		if chapter.ProjectID != projectID {
			continue
		}
		if language != "" && chapter.Language != language {
			continue
		}
		chapters = append(chapters, chapter)
	}
	sort.Slice(chapters, func(i, j int) bool { return chapters[i].Number < chapters[j].Number })
	return chapters, nil
}

func (s *fakeStore) InstructionsByProject(projectID uuid.UUID) ([]*models.ChapterInstruction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var instructions []*models.ChapterInstruction
	for _, instruction := range s.instructions {
		if instruction.ProjectID == projectID {
			instructions = append(instructions, instruction)
		}
	}
	sort.Slice(instructions, func(i, j int) bool { return instructions[i].Number < instructions[j].Number })
	return instructions, nil
}

func (s *fakeStore) UpdateInstructionStatus(id uuid.UUID, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, instruction := range s.instructions {
		if instruction.ID == id {
			instruction.Status = status
			return nil
		}
	}
	return errors.New("instruction not found")
}

func (s *fakeStore) AddTranslation(translation *models.Translation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if translation.ID == uuid.Nil {
		translation.ID = uuid.New()
	}
	s.translations = append(s.translations, translation)
	return nil
}

func (s *fakeStore) TranslationsByProject(projectID uuid.UUID) ([]*models.Translation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var translations []*models.Translation
	for _, translation := range s.translations {
		if translation.ProjectID == projectID {
			translations = append(translations, translation)
		}
	}
	return translations, nil
}

func (s *fakeStore) AddMockup(mockup *models.Mockup) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if mockup.ID == uuid.Nil {
		mockup.ID = uuid.New()
	}
	s.mockups = append(s.mockups, mockup)
	return nil
}

func (s *fakeStore) AddExport(export *models.Export) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if export.ID == uuid.Nil {
		export.ID = uuid.New()
	}
	s.exports = append(s.exports, export)
	return nil
}

func (s *fakeStore) ActiveAPIConfig(userID uuid.UUID, capability string) (*models.APIConfig, error) {
	return nil, s.apiConfigErr
}

// fakeEngine is a scriptable Engine. Chapter generation can be made to fail
// on the nth call; everything else succeeds deterministically.
type fakeEngine struct {
	mu           sync.Mutex
	title        string
	titleErr     error
	outline      []models.OutlineChapter
	outlineErr   error
	failChapter  int
	chapterCalls int
	noImages     bool
	translateErr error
}

func (e *fakeEngine) AnalyzeTrends(ctx context.Context, userID uuid.UUID, style string) (string, error) {
	return e.title, e.titleErr
}

func (e *fakeEngine) GenerateOutline(ctx context.Context, userID uuid.UUID, title, style, language string) ([]models.OutlineChapter, error) {
	return e.outline, e.outlineErr
}

func (e *fakeEngine) GenerateChapterContent(ctx context.Context, userID uuid.UUID, chapterTitle, chapterDescription, style, language string) (*GeneratedChapter, error) {
	e.mu.Lock()
	e.chapterCalls++
	call := e.chapterCalls
	e.mu.Unlock()

	if e.failChapter != 0 && call == e.failChapter {
		return nil, errors.New("model overloaded")
	}
	imagePrompt := fmt.Sprintf("illustration for %s", chapterTitle)
	if e.noImages {
		imagePrompt = ""
	}
	return &GeneratedChapter{
		Title:       chapterTitle,
		Content:     fmt.Sprintf("<p>%s body</p>", chapterTitle),
		ImagePrompt: imagePrompt,
	}, nil
}

func (e *fakeEngine) GenerateImage(ctx context.Context, userID uuid.UUID, prompt string, ordinal int) string {
	return fmt.Sprintf("https://images.test/chapter-%d.png", ordinal)
}

func (e *fakeEngine) GenerateMarketingMockup(ctx context.Context, userID uuid.UUID, bookTitle, coverImageURL, mockupType string) string {
	return "https://mockups.test/" + mockupType + ".png"
}

func (e *fakeEngine) CheckGrammar(ctx context.Context, userID uuid.UUID, content, language string) string {
	return content
}

func (e *fakeEngine) HumanizeContent(ctx context.Context, userID uuid.UUID, content, language string) string {
	return content
}

func (e *fakeEngine) TranslateContent(ctx context.Context, userID uuid.UUID, content, targetLanguage string) (string, error) {
	if e.translateErr != nil {
		return "", e.translateErr
	}
	return fmt.Sprintf("[%s] %s", targetLanguage, content), nil
}

func threeChapterOutline() []models.OutlineChapter {
	return []models.OutlineChapter{
		{Title: "Getting Started", Description: "The foundations", Keywords: []string{"basics"}},
		{Title: "Going Deeper", Description: "Intermediate techniques", Keywords: []string{"technique"}},
		{Title: "Mastery", Description: "Advanced material", Keywords: []string{"advanced"}},
	}
}
