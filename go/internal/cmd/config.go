package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/mcdev12/footyleague/go/internal/dbconfig"
	"github.com/mcdev12/footyleague/go/internal/models"
	"github.com/mcdev12/footyleague/go/internal/seasons"
)

// Env holds settings that come from the environment
type Env struct {
	ConfigPath string `envconfig:"CONFIG_PATH" default:"config.yaml"`
	Port       string `envconfig:"PORT"`
	NatsURL    string `envconfig:"NATS_URL" default:"nats://127.0.0.1:4222"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
	LogPretty  bool   `envconfig:"LOG_PRETTY" default:"false"`
}

type Config struct {
	Server struct {
		Port           string   `yaml:"port"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`

	// Regulation is applied to seasons created without one
	Regulation models.Regulation `yaml:"regulation"`

	Kickoff struct {
		Interval       time.Duration `yaml:"interval"`
		PlayedInterval time.Duration `yaml:"played_interval"`
	} `yaml:"kickoff"`

	Outbox struct {
		FallbackInterval time.Duration `yaml:"fallback_interval"`
		MaxRetries       int           `yaml:"max_retries"`
		BatchSize        int           `yaml:"batch_size"`
		MaxPending       int           `yaml:"max_pending"`
	} `yaml:"outbox"`
}

// Settings is everything the process is configured with
type Settings struct {
	Env    Env
	Config *Config
	DB     dbconfig.Config
}

func loadSettings() (*Settings, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	var env Env
	if err := envconfig.Process("", &env); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	setupLogger(env.LogLevel, env.LogPretty)

	cfg, err := loadConfig(env.ConfigPath)
	if err != nil {
		return nil, err
	}
	if env.Port != "" {
		cfg.Server.Port = env.Port
	}
	db, err := dbconfig.NewConfigFromEnv()
	if err != nil {
		return nil, err
	}
	return &Settings{Env: env, Config: cfg, DB: db}, nil
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := defaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := seasons.ValidateRegulation(config.Regulation); err != nil {
		return nil, fmt.Errorf("invalid default regulation: %w", err)
	}
	return config, nil
}

func defaultConfig() *Config {
	c := &Config{Regulation: models.DefaultRegulation()}
	c.Server.Port = "8080"
	c.Server.AllowedOrigins = []string{"*"}
	c.Kickoff.Interval = time.Hour
	c.Kickoff.PlayedInterval = time.Minute
	c.Outbox.FallbackInterval = 30 * time.Second
	c.Outbox.MaxRetries = 5
	c.Outbox.BatchSize = 100
	c.Outbox.MaxPending = 1000
	return c
}
