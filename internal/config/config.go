package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/godilite/team-scoring/internal/scoring"
)

// Config holds all configuration for the application.
type Config struct {
	AppEnv                string
	DBPath                string
	DBDriver              string
	RedisAddr             string
	RedisPassword         string
	RedisDB               int
	GRPCPort              int
	GRPCReflectionEnabled bool
	MetricsPort           int
	NATSURL               string
	CacheTTL              time.Duration

	ScoringProfilePath string
	Scoring            scoring.Config
}

// LoadFromEnv loads configuration from environment variables. The scoring
// profile, when SCORING_PROFILE_PATH is set, is read on top of the default
// scoring configuration and the result is validated.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		AppEnv:                getEnv("APP_ENV", "development"),
		DBPath:                getEnv("DB_PATH", "./data/database.db"),
		DBDriver:              getEnv("DB_DRIVER", "sqlite3"),
		RedisAddr:             getEnv("REDIS_ADDR", ""),
		RedisPassword:         getEnv("REDIS_PASSWORD", ""),
		RedisDB:               getInt("REDIS_DB", 0),
		GRPCPort:              getInt("GRPC_PORT", 50051),
		GRPCReflectionEnabled: getBool("GRPC_REFLECTION_ENABLED", false),
		MetricsPort:           getInt("METRICS_PORT", 9090),
		NATSURL:               getEnv("NATS_URL", ""),
		CacheTTL:              getDuration("CACHE_TTL", 10*time.Minute),
		ScoringProfilePath:    getEnv("SCORING_PROFILE_PATH", ""),
	}

	profile, err := LoadScoringProfile(cfg.ScoringProfilePath)
	if err != nil {
		return nil, err
	}
	if v := os.Getenv("SCORING_SLA_MINUTES"); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("parse SCORING_SLA_MINUTES: %w", err)
		}
		profile.SLAThresholdMinutes = n
	}
	if v := os.Getenv("SCORING_WINDOW_DAYS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse SCORING_WINDOW_DAYS: %w", err)
		}
		profile.WindowDays = n
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	cfg.Scoring = profile

	return cfg, nil
}

// LoadScoringProfile reads a YAML scoring profile. Keys missing from the file
// keep their default values; an empty path returns the defaults.
func LoadScoringProfile(path string) (scoring.Config, error) {
	profile := scoring.DefaultConfig()
	if path == "" {
		return profile, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return scoring.Config{}, fmt.Errorf("read scoring profile: %w", err)
	}
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return scoring.Config{}, fmt.Errorf("parse scoring profile: %w", err)
	}
	return profile, nil
}

// NewLogger creates a new Zap logger based on the config.
func NewLogger(cfg *Config) (*zap.Logger, error) {
	if cfg.AppEnv == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return n
}

func getBool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
