package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// AIProvider holds everything the recommendation client needs to reach the
// chat-completion endpoint. It is passed explicitly at construction; there is
// no shared global client.
type AIProvider struct {
	Endpoint    string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	TopP        float64
	// AppReferer and AppTitle identify the calling application to the
	// provider. Informational only.
	AppReferer string
	AppTitle   string
}

// Config is the process configuration, read from the environment.
type Config struct {
	Env            string
	Port           string
	AllowedOrigins []string

	MongoURI string
	MongoDB  string

	AI AIProvider
}

// Load reads .env.local if present, then the environment.
func Load() Config {
	godotenv.Load(".env.local")

	cfg := Config{
		Env:      getenv("ENV", "development"),
		Port:     getenv("PORT", "8080"),
		MongoURI: os.Getenv("MONGO_URI"),
		MongoDB:  getenv("MONGO_DB", "shelfmate"),
		AI: AIProvider{
			Endpoint:    getenv("AI_ENDPOINT", "https://openrouter.ai/api/v1"),
			APIKey:      os.Getenv("AI_API_KEY"),
			Model:       getenv("AI_MODEL", "openai/gpt-4o-mini"),
			Temperature: getenvFloat("AI_TEMPERATURE", 0.3),
			MaxTokens:   getenvInt("AI_MAX_TOKENS", 1500),
			TopP:        getenvFloat("AI_TOP_P", 0.9),
			AppReferer:  getenv("APP_REFERER", "https://shelfmate.app"),
			AppTitle:    getenv("APP_TITLE", "ShelfMate"),
		},
	}

	if extra := os.Getenv("ALLOWED_ORIGINS"); extra != "" {
		cfg.AllowedOrigins = append(cfg.AllowedOrigins, strings.Split(extra, ",")...)
	}

	return cfg
}

// IsProduction reports whether the service runs in production mode.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
