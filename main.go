package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pagepilot-ai/backend/api"
	appconfig "github.com/pagepilot-ai/backend/config"
	"github.com/pagepilot-ai/backend/database"
	"github.com/pagepilot-ai/backend/models"
	"github.com/pagepilot-ai/backend/services"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	cfg := appconfig.New()

	// Human-readable console output for local development; JSON otherwise
	if appconfig.GetBool(cfg, "LOG_PRETTY", false) {
		zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	connStr := appconfig.GetString(cfg, "DATABASE_URL", "")
	if connStr == "" {
		connStr = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			appconfig.GetString(cfg, "DB_HOST", "localhost"),
			appconfig.GetString(cfg, "DB_USER", "postgres"),
			appconfig.GetString(cfg, "DB_PASSWORD", ""),
			appconfig.GetString(cfg, "DB_NAME", "pagepilot"),
			appconfig.GetString(cfg, "DB_PORT", "5432"),
			appconfig.GetString(cfg, "DB_SSLMODE", "disable"),
		)
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  connStr,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt: false,
		Logger:      newLogger,
	})
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}

	// gen_random_uuid() needs pgcrypto on older PostgreSQL versions
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"pgcrypto\"").Error; err != nil {
		fmt.Printf("Error enabling pgcrypto extension: %v\n", err)
		os.Exit(1)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.APIConfig{},
		&models.Project{},
		&models.Chapter{},
		&models.ChapterInstruction{},
		&models.Translation{},
		&models.Mockup{},
		&models.Export{},
	); err != nil {
		fmt.Printf("Error migrating database schema: %v\n", err)
		os.Exit(1)
	}

	currentDB := database.New(db)

	defaults := services.PlatformDefaults{
		OpenAIAPIKey:  appconfig.GetString(cfg, "OPENAI_API_KEY", ""),
		OpenAIBaseURL: appconfig.GetString(cfg, "OPENAI_BASE_URL", ""),
		GeminiAPIKey:  appconfig.GetString(cfg, "GEMINI_API_KEY", ""),
		GeminiBaseURL: appconfig.GetString(cfg, "GEMINI_BASE_URL", ""),
	}

	resolver := services.NewCapabilityResolver(currentDB, defaults)
	engine := services.NewAIEngine(resolver)

	notifier := services.NewNotifier(
		appconfig.GetString(cfg, "RESEND_API_KEY", ""),
		appconfig.GetString(cfg, "RESEND_FROM_EMAIL", "PagePilot <[email protected]>"),
		func(id uuid.UUID) (*models.User, error) { return currentDB.UserRepo().FindByID(id) },
	)

	artifacts, err := services.NewArtifactStore(context.Background(),
		appconfig.GetString(cfg, "ARTIFACT_BUCKET", ""),
		appconfig.GetString(cfg, "AWS_REGION", "us-east-1"),
	)
	if err != nil {
		fmt.Printf("Error initializing artifact store: %v\n", err)
		os.Exit(1)
	}

	orchestrator := services.NewOrchestrator(currentDB, engine, notifier, artifacts)

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(currentDB, orchestrator)
	if err != nil {
		fmt.Printf("Error initializing server: %v\n", err)
		os.Exit(1)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
