// internal/config/config.go
package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Cache      CacheConfig
	Completion CompletionConfig
	Forecast   ForecastConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type CacheConfig struct {
	Enabled            bool
	RedisURL           string
	RedisHost          string
	RedisPort          string
	RedisPassword      string
	RedisDB            int
	QuadrantTTLSeconds int
}

// CompletionConfig configures the external text-completion collaborator used
// to phrase forecast recommendations. An empty APIKey disables the client and
// every recommendation falls back to the deterministic template.
type CompletionConfig struct {
	BaseURL        string
	APIKey         string
	Model          string
	TimeoutSeconds int
}

type ForecastConfig struct {
	// ExposureThresholdDays is the near-term-risk window: exposure is only
	// estimated when the projected days remaining fall below it.
	ExposureThresholdDays float64
	// ItemTimeoutSeconds bounds the completion call of a single item so one
	// slow collaborator response cannot stall the whole tenant run.
	ItemTimeoutSeconds int
	RunTimeoutSeconds  int
	PreviewSize        int
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		// Set default values
		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 15)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 15)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("DB_HOST", "localhost")
		viper.SetDefault("DB_PORT", "5432")
		viper.SetDefault("DB_USER", "postgres")
		viper.SetDefault("DB_PASSWORD", "postgres")
		viper.SetDefault("DB_NAME", "gestio")
		viper.SetDefault("DB_SSLMODE", "disable")
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_QUADRANT_TTL_SECONDS", 60)
		viper.SetDefault("COMPLETION_BASE_URL", "https://api.openai.com")
		viper.SetDefault("COMPLETION_API_KEY", "")
		viper.SetDefault("COMPLETION_MODEL", "gpt-4o-mini")
		viper.SetDefault("COMPLETION_TIMEOUT_SECONDS", 20)
		viper.SetDefault("FORECAST_EXPOSURE_THRESHOLD_DAYS", 10)
		viper.SetDefault("FORECAST_ITEM_TIMEOUT_SECONDS", 30)
		viper.SetDefault("FORECAST_RUN_TIMEOUT_SECONDS", 600)
		viper.SetDefault("FORECAST_PREVIEW_SIZE", 5)

		// Read from environment variables
		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Database: DatabaseConfig{
				Host:     viper.GetString("DB_HOST"),
				Port:     viper.GetString("DB_PORT"),
				User:     viper.GetString("DB_USER"),
				Password: viper.GetString("DB_PASSWORD"),
				DBName:   viper.GetString("DB_NAME"),
				SSLMode:  viper.GetString("DB_SSLMODE"),
			},
			Cache: CacheConfig{
				Enabled:            viper.GetBool("CACHE_ENABLED"),
				RedisURL:           viper.GetString("REDIS_URL"),
				RedisHost:          viper.GetString("REDIS_HOST"),
				RedisPort:          viper.GetString("REDIS_PORT"),
				RedisPassword:      viper.GetString("REDIS_PASSWORD"),
				RedisDB:            viper.GetInt("REDIS_DB"),
				QuadrantTTLSeconds: viper.GetInt("CACHE_QUADRANT_TTL_SECONDS"),
			},
			Completion: CompletionConfig{
				BaseURL:        viper.GetString("COMPLETION_BASE_URL"),
				APIKey:         viper.GetString("COMPLETION_API_KEY"),
				Model:          viper.GetString("COMPLETION_MODEL"),
				TimeoutSeconds: viper.GetInt("COMPLETION_TIMEOUT_SECONDS"),
			},
			Forecast: ForecastConfig{
				ExposureThresholdDays: viper.GetFloat64("FORECAST_EXPOSURE_THRESHOLD_DAYS"),
				ItemTimeoutSeconds:    viper.GetInt("FORECAST_ITEM_TIMEOUT_SECONDS"),
				RunTimeoutSeconds:     viper.GetInt("FORECAST_RUN_TIMEOUT_SECONDS"),
				PreviewSize:           viper.GetInt("FORECAST_PREVIEW_SIZE"),
			},
		}
	})

	return instance
}
