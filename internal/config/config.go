package config

import (
	"strings"

	"github.com/joho/godotenv"

	"github.com/anarkulova/maktab-monitor/internal/utils"
)

// Config is the env-backed service configuration. A .env file in the
// working directory is honored for local runs.
type Config struct {
	Addr           string
	StoreDriver    string // "sqlite" or "postgres"
	SQLitePath     string
	PostgresDSN    string
	GeminiAPIKey   string
	GeminiModel    string
	AdminPassword  string
	JWTSecret      string
	AllowedOrigins []string
}

func Load() Config {
	_ = godotenv.Load()

	origins := []string{}
	if raw := utils.SafeEnv("MONITOR_ALLOWED_ORIGINS", "*"); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	return Config{
		Addr:           utils.SafeEnv("MONITOR_ADDR", ":8080"),
		StoreDriver:    utils.SafeEnv("MONITOR_DB_DRIVER", "sqlite"),
		SQLitePath:     utils.SafeEnv("MONITOR_SQLITE_PATH", "monitor.db"),
		PostgresDSN:    utils.SafeEnv("DATABASE_URL", ""),
		GeminiAPIKey:   utils.SafeEnv("GEMINI_API_KEY", ""),
		GeminiModel:    utils.SafeEnv("GEMINI_MODEL", ""),
		AdminPassword:  utils.SafeEnv("ADMIN_PASSWORD", ""),
		JWTSecret:      utils.SafeEnv("MONITOR_JWT_SECRET", ""),
		AllowedOrigins: origins,
	}
}
