// Package config loads settings from the environment (with .env support).
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	OpenAIKey string
	Port      string

	// Model names per stage. The vision stage needs an image-capable model.
	VisionModel string
	TextModel   string

	// CriticalSeverity is the score at or above which a report is critical.
	CriticalSeverity int
	// SchemaRetries is how many extra attempts a stage gets when the model
	// returns non-conforming output.
	SchemaRetries int
	// MaxConcurrent bounds simultaneous analyze invocations.
	MaxConcurrent int
}

// Load reads .env (if present) and the process environment. The OpenAI key
// is the only hard requirement.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using process environment")
	}

	cfg := Config{
		OpenAIKey:        os.Getenv("OPENAI_API_KEY"),
		Port:             envString("PORT", "8080"),
		VisionModel:      envString("AIDRA_VISION_MODEL", ""),
		TextModel:        envString("AIDRA_TEXT_MODEL", ""),
		CriticalSeverity: envInt("AIDRA_CRITICAL_SEVERITY", 85),
		SchemaRetries:    envInt("AIDRA_SCHEMA_RETRIES", 1),
		MaxConcurrent:    envInt("AIDRA_MAX_CONCURRENT", 4),
	}

	if cfg.OpenAIKey == "" {
		return Config{}, fmt.Errorf("OPENAI_API_KEY is not set")
	}
	return cfg, nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}
