package database

import (
	"gorm.io/gorm"
)

type Database struct {
	userRepo        *UserRepo
	apiConfigRepo   *APIConfigRepo
	projectRepo     *ProjectRepo
	chapterRepo     *ChapterRepo
	instructionRepo *InstructionRepo
	translationRepo *TranslationRepo
	mockupRepo      *MockupRepo
	exportRepo      *ExportRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		userRepo:        NewUserRepo(db),
		apiConfigRepo:   NewAPIConfigRepo(db),
		projectRepo:     NewProjectRepo(db),
		chapterRepo:     NewChapterRepo(db),
		instructionRepo: NewInstructionRepo(db),
		translationRepo: NewTranslationRepo(db),
		mockupRepo:      NewMockupRepo(db),
		exportRepo:      NewExportRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) APIConfigRepo() *APIConfigRepo {
	return d.apiConfigRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) ChapterRepo() *ChapterRepo {
	return d.chapterRepo
}

func (d Database) InstructionRepo() *InstructionRepo {
	return d.instructionRepo
}

func (d Database) TranslationRepo() *TranslationRepo {
	return d.translationRepo
}

func (d Database) MockupRepo() *MockupRepo {
	return d.mockupRepo
}

func (d Database) ExportRepo() *ExportRepo {
	return d.exportRepo
}
