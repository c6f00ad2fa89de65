// Package config loads service configuration from defaults, an
// optional YAML file and MOODREC_-prefixed environment variables, in
// ascending priority.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "MOODREC_"

// Scoring holds the recommendation scoring knobs.
type Scoring struct {
	EmotionWeight   float64 `koanf:"emotion_weight" validate:"gte=0,lte=1"`
	IntensityWeight float64 `koanf:"intensity_weight" validate:"gte=0,lte=1"`
	ComfortWeight   float64 `koanf:"comfort_weight" validate:"gte=0,lte=1"`
	NLPBlend        float64 `koanf:"nlp_blend" validate:"gte=0,lte=1"`
	GenreBlend      float64 `koanf:"genre_blend" validate:"gte=0,lte=1"`
}

// Config is the full service configuration.
type Config struct {
	Addr            string        `koanf:"addr" validate:"required"`
	DatabaseURL     string        `koanf:"database_url" validate:"required"`
	RedisAddr       string        `koanf:"redis_addr"`
	RedisPassword   string        `koanf:"redis_password"`
	CacheTTL        time.Duration `koanf:"cache_ttl"`
	TMDBAPIKey      string        `koanf:"tmdb_api_key"`
	ClassifierURL   string        `koanf:"classifier_url"`
	ClassifierToken string        `koanf:"classifier_token"`
	LogLevel        string        `koanf:"log_level" validate:"oneof=trace debug info warn error"`
	LogFormat       string        `koanf:"log_format" validate:"oneof=json console"`
	Scoring         Scoring       `koanf:"scoring"`
}

func defaultConfig() Config {
	return Config{
		Addr:      ":8080",
		CacheTTL:  5 * time.Minute,
		LogLevel:  "info",
		LogFormat: "json",
		Scoring: Scoring{
			EmotionWeight:   0.4,
			IntensityWeight: 0.3,
			ComfortWeight:   0.3,
			NLPBlend:        0.6,
			GenreBlend:      0.4,
		},
	}
}

// Load builds the configuration. The config file path comes from
// MOODREC_CONFIG_FILE and is optional; environment variables override
// everything.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path := os.Getenv(envPrefix + "CONFIG_FILE"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	// MOODREC_SCORING_EMOTION_WEIGHT -> scoring.emotion_weight
	envProvider := env.Provider(envPrefix, ".", envTransform)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling configuration: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}
	return cfg, nil
}

// envTransform maps env var names onto koanf paths. Only the scoring
// section nests, so its prefix becomes a path segment and the rest of
// the name keeps its underscores.
func envTransform(name string) string {
	name = strings.ToLower(strings.TrimPrefix(name, envPrefix))
	if rest, ok := strings.CutPrefix(name, "scoring_"); ok {
		return "scoring." + rest
	}
	return name
}
