package config

import (
	"fmt"
	"os"
	"time"

	"backend/models"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DB is the shared handle used by the simple CRUD services.
// Batch services receive their own *gorm.DB through constructors.
var DB *gorm.DB

// Config is parsed once from the environment and passed to constructors,
// so tests can build services from a literal instead of ambient state.
type Config struct {
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD" default:""`
	DBName     string `envconfig:"DB_NAME" default:"wellness"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`

	HTTPAddr  string `envconfig:"HTTP_ADDR" default:":8080"`
	JWTSecret string `envconfig:"JWT_SECRET" default:""`

	OpenAIAPIKey  string `envconfig:"OPENAI_API_KEY" default:""`
	OpenAIBaseURL string `envconfig:"OPENAI_BASE_URL" default:""`

	// Preferred model first; fallbacks in the order they should be tried.
	AIModel          string        `envconfig:"AI_MODEL" default:"gpt-4o-mini"`
	AIFallbackModels []string      `envconfig:"AI_FALLBACK_MODELS" default:"gpt-4o,gpt-3.5-turbo"`
	AIMaxTurns       int           `envconfig:"AI_MAX_TURNS" default:"12"`
	AIMaxChars       int           `envconfig:"AI_MAX_CHARS" default:"8000"`
	AIRetryDelay     time.Duration `envconfig:"AI_RETRY_DELAY" default:"500ms"`
	AIRequestTimeout time.Duration `envconfig:"AI_REQUEST_TIMEOUT" default:"30s"`

	AggregationTime   string        `envconfig:"AGGREGATION_TIME" default:"00:15"`
	SuggestionTime    string        `envconfig:"SUGGESTION_TIME" default:"06:00"`
	SuggestionWorkers int           `envconfig:"SUGGESTION_WORKERS" default:"4"`
	SuggestionTTL     time.Duration `envconfig:"SUGGESTION_TTL" default:"24h"`

	AWSRegion string `envconfig:"AWS_REGION" default:"ap-south-1"`
	SNSFCMArn string `envconfig:"SNS_FCM_ARN" default:""`
}

// Load reads .env when present, then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// NewLogger returns the service-wide zerolog logger.
func NewLogger(service string) zerolog.Logger {
	return zerolog.New(os.Stdout).With().
		Str("service", service).
		Timestamp().
		Logger()
}

func InitDB(cfg Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Log{},
		&models.NutritionLog{},
		&models.NutritionItem{},
		&models.DailySummary{},
		&models.Suggestion{},
		&models.DailyGoal{},
		&models.Alert{},
		&models.UserDevice{},
	); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}

	DB = db
	return db, nil
}
