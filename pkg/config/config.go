package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	CORS       CORSConfig
	Log        LogConfig
	Solver     SolverConfig
	Suggestion SuggestionConfig
	Elective   ElectiveConfig
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// SolverConfig carries the engine defaults a request may override.
type SolverConfig struct {
	DefaultTimeout     time.Duration
	DefaultMaxPatterns int
	PatternTTL         time.Duration
	MaxLessonBlocks    int
}

// SuggestionConfig bounds the suggestion panels.
type SuggestionConfig struct {
	TopK int
}

// ElectiveConfig tunes the grouping optimiser.
type ElectiveConfig struct {
	SwapPasses        int
	UnassignedPenalty float64
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Solver = SolverConfig{
		DefaultTimeout:     parseDuration(v.GetString("SOLVER_DEFAULT_TIMEOUT"), 10*time.Second),
		DefaultMaxPatterns: v.GetInt("SOLVER_DEFAULT_MAX_PATTERNS"),
		PatternTTL:         parseDuration(v.GetString("SOLVER_PATTERN_TTL"), 30*time.Minute),
		MaxLessonBlocks:    v.GetInt("SOLVER_MAX_LESSON_BLOCKS"),
	}

	cfg.Suggestion = SuggestionConfig{
		TopK: v.GetInt("SUGGESTION_TOP_K"),
	}

	cfg.Elective = ElectiveConfig{
		SwapPasses:        v.GetInt("ELECTIVE_SWAP_PASSES"),
		UnassignedPenalty: v.GetFloat64("ELECTIVE_UNASSIGNED_PENALTY"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("SOLVER_DEFAULT_TIMEOUT", "10s")
	v.SetDefault("SOLVER_DEFAULT_MAX_PATTERNS", 5)
	v.SetDefault("SOLVER_PATTERN_TTL", "30m")
	v.SetDefault("SOLVER_MAX_LESSON_BLOCKS", 512)

	v.SetDefault("SUGGESTION_TOP_K", 10)

	v.SetDefault("ELECTIVE_SWAP_PASSES", 3)
	v.SetDefault("ELECTIVE_UNASSIGNED_PENALTY", 1.0)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
