package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Redis      RedisConfig
	Scraper    ScraperConfig
	Enrichment EnrichmentConfig
	YouTube    YouTubeConfig
	Gemini     GeminiConfig
	OpenAI     OpenAIConfig
	Mail       MailConfig
	Recommend  RecommendConfig
	Logging    LoggingConfig
}

type ServerConfig struct {
	Addr            string
	AllowedOrigins  []string
	RateLimit       int
	RateWindow      time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type ScraperConfig struct {
	ScraperAPIKey string
	Timeout       time.Duration
	TotalTimeout  time.Duration
	CacheTTL      time.Duration
}

type EnrichmentConfig struct {
	SerpAPIKey     string
	NumbeoAPIKey   string
	AmadeusKey     string
	AmadeusSecret  string
	AmadeusBaseURL string
	Origin         string
	LeadDays       int
	StayNights     int
	Timeout        time.Duration
	Concurrency    int
}

type YouTubeConfig struct {
	APIKey string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey         string
	Model          string
	EnableFallback bool
}

type MailConfig struct {
	Provider     string
	From         string
	AWSRegion    string
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
}

type RecommendConfig struct {
	TopK int
}

type LoggingConfig struct {
	Level string
	File  string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Addr:            getEnv("SERVER_ADDR", ":8080"),
			AllowedOrigins:  parseCommaSeparated(getEnv("CORS_ALLOWED_ORIGINS", "*")),
			RateLimit:       getEnvInt("RATE_LIMIT_REQUESTS", 60),
			RateWindow:      time.Duration(getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second,
			ReadTimeout:     time.Duration(getEnvInt("SERVER_READ_TIMEOUT_SECONDS", 15)) * time.Second,
			WriteTimeout:    time.Duration(getEnvInt("SERVER_WRITE_TIMEOUT_SECONDS", 60)) * time.Second,
			ShutdownTimeout: time.Duration(getEnvInt("SERVER_SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", true),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Scraper: ScraperConfig{
			ScraperAPIKey: getEnv("SCRAPERAPI_KEY", ""),
			Timeout:       time.Duration(getEnvInt("SCRAPER_TIMEOUT_SECONDS", 15)) * time.Second,
			TotalTimeout:  time.Duration(getEnvInt("SCRAPER_TOTAL_TIMEOUT_SECONDS", 25)) * time.Second,
			CacheTTL:      time.Duration(getEnvInt("SCRAPER_CACHE_TTL_MINUTES", 30)) * time.Minute,
		},
		Enrichment: EnrichmentConfig{
			SerpAPIKey:     getEnv("SERPAPI_KEY", ""),
			NumbeoAPIKey:   getEnv("NUMBEO_API_KEY", ""),
			AmadeusKey:     getEnv("AMADEUS_API_KEY", ""),
			AmadeusSecret:  getEnv("AMADEUS_API_SECRET", ""),
			AmadeusBaseURL: getEnv("AMADEUS_BASE_URL", "https://test.api.amadeus.com"),
			Origin:         getEnv("ENRICH_ORIGIN", "JFK"),
			LeadDays:       getEnvInt("ENRICH_LEAD_DAYS", 30),
			StayNights:     getEnvInt("ENRICH_STAY_NIGHTS", 7),
			Timeout:        time.Duration(getEnvInt("ENRICH_TIMEOUT_SECONDS", 8)) * time.Second,
			Concurrency:    getEnvInt("ENRICH_CONCURRENCY", 8),
		},
		YouTube: YouTubeConfig{
			APIKey: getEnv("YOUTUBE_API_KEY", ""),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		OpenAI: OpenAIConfig{
			APIKey:         getEnv("OPENAI_API_KEY", ""),
			Model:          getEnv("OPENAI_MODEL", "gpt-5-mini"),
			EnableFallback: getEnvBool("OPENAI_ENABLE_FALLBACK", true),
		},
		Mail: MailConfig{
			Provider:     strings.ToLower(getEnv("MAIL_PROVIDER", "smtp")),
			From:         getEnv("MAIL_FROM", ""),
			AWSRegion:    getEnv("AWS_REGION", "us-east-1"),
			SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
			SMTPPort:     getEnvInt("SMTP_PORT", 587),
			SMTPUser:     getEnv("SMTP_USER", ""),
			SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		},
		Recommend: RecommendConfig{
			TopK: getEnvInt("RECOMMEND_TOP_K", 3),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("SERVER_ADDR is required")
	}
	if c.Recommend.TopK <= 0 {
		return fmt.Errorf("RECOMMEND_TOP_K must be positive")
	}
	if c.Enrichment.Concurrency <= 0 {
		return fmt.Errorf("ENRICH_CONCURRENCY must be positive")
	}
	if c.Enrichment.Timeout <= 0 {
		return fmt.Errorf("ENRICH_TIMEOUT_SECONDS must be positive")
	}
	// A journey request scrapes and then enriches, both inside one response.
	if c.Server.WriteTimeout > 0 && c.Scraper.TotalTimeout+c.Enrichment.Timeout >= c.Server.WriteTimeout {
		return fmt.Errorf("SCRAPER_TOTAL_TIMEOUT_SECONDS plus ENRICH_TIMEOUT_SECONDS must stay below SERVER_WRITE_TIMEOUT_SECONDS")
	}
	if (c.Enrichment.AmadeusKey == "") != (c.Enrichment.AmadeusSecret == "") {
		return fmt.Errorf("AMADEUS_API_KEY and AMADEUS_API_SECRET must be set together")
	}
	switch c.Mail.Provider {
	case "smtp", "ses", "none":
	default:
		return fmt.Errorf("MAIL_PROVIDER must be one of smtp, ses, none (got %q)", c.Mail.Provider)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func parseCommaSeparated(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
