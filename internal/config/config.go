package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config defines all configurable parameters for the service, sourced from
// environment variables (loaded from .env for local runs).
type Config struct {
	Environment string `envconfig:"APP_ENV" default:"development"`

	Server  ServerConfig
	Dataset DatasetConfig
	Analyst AnalystConfig
	Session SessionConfig
}

type ServerConfig struct {
	Addr            string `envconfig:"SERVER_ADDR" default:":8080"`
	RequestTimeout  int    `envconfig:"SERVER_REQUEST_TIMEOUT_SECONDS" default:"90"`
	ShutdownTimeout int    `envconfig:"SERVER_SHUTDOWN_TIMEOUT_SECONDS" default:"10"`
}

type DatasetConfig struct {
	// Path points at the natality extract; .csv and .xlsx are supported.
	Path string `envconfig:"DATASET_PATH" default:"Provisional_Natality_2025_CDC.csv"`
}

// AnalystConfig selects and configures the chat model behind the AI analyst.
// The credential is only ever read from the environment.
type AnalystConfig struct {
	Backend     string  `envconfig:"ANALYST_BACKEND" default:"openai"`
	APIKey      string  `envconfig:"ANALYST_API_KEY"`
	BaseURL     string  `envconfig:"ANALYST_BASE_URL" default:"https://api.groq.com/openai/v1"`
	Model       string  `envconfig:"ANALYST_MODEL" default:"llama3-8b-8192"`
	Temperature float32 `envconfig:"ANALYST_TEMPERATURE" default:"0.2"`
	MaxTokens   int     `envconfig:"ANALYST_MAX_TOKENS" default:"1024"`
	Timeout     int     `envconfig:"ANALYST_TIMEOUT_SECONDS" default:"60"`
}

// SessionConfig selects the conversation store. The default in-memory store
// keeps transcripts for the process lifetime only; the redis backend is for
// deployments that need transcripts to survive restarts.
type SessionConfig struct {
	Backend string `envconfig:"SESSION_BACKEND" default:"memory"`
	TTL     string `envconfig:"SESSION_TTL" default:"12h"`

	RedisURL          string `envconfig:"SESSION_REDIS_URL"`
	RedisReadTimeout  int    `envconfig:"SESSION_REDIS_READ_TIMEOUT" default:"3"`
	RedisWriteTimeout int    `envconfig:"SESSION_REDIS_WRITE_TIMEOUT" default:"3"`
	RedisDialTimeout  int    `envconfig:"SESSION_REDIS_DIAL_TIMEOUT" default:"5"`
}

// ParseTTL returns the configured session TTL as a duration.
func (s SessionConfig) ParseTTL() (time.Duration, error) {
	return time.ParseDuration(s.TTL)
}

// Load reads .env (best effort) and populates Config from the environment.
func Load() (*Config, error) {
	// Missing .env is fine outside local development.
	_ = godotenv.Load(".env")

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
