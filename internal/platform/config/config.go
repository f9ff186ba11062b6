package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	CORSOrigins []string

	// Gemini chat backend
	GeminiAPIKey  string
	GeminiBaseURL string
	GeminiModel   string

	// Chat session store
	RedisAddr         string
	ChatSessionTTL    time.Duration
	ChatSessionMax    int
	ChatHistoryTurns  int
	ChatRateLimit     string

	// Optional ledger event stream
	KafkaBrokers []string
	KafkaTopic   string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "168h")
	viper.SetDefault("JWT_ISSUER", "studio4-dance")
	viper.SetDefault("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173,http://localhost:8080")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com")
	viper.SetDefault("GEMINI_MODEL", "gemini-pro")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("CHAT_SESSION_TTL", "30m")
	viper.SetDefault("CHAT_SESSION_MAX", 1000)
	viper.SetDefault("CHAT_HISTORY_TURNS", 20)
	viper.SetDefault("CHAT_RATE_LIMIT", "30-M")
	viper.SetDefault("KAFKA_BROKERS", "")
	viper.SetDefault("KAFKA_TOPIC", "transaction_recorded")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour * 24 * 7
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.CORSOrigins = splitAndTrim(viper.GetString("CORS_ORIGINS"))

	cfg.GeminiAPIKey = viper.GetString("GEMINI_API_KEY")
	if cfg.GeminiAPIKey == "" {
		log.Println("Warning: GEMINI_API_KEY not set. AI chat will report upstream failures.")
	}
	cfg.GeminiBaseURL = viper.GetString("GEMINI_BASE_URL")
	cfg.GeminiModel = viper.GetString("GEMINI_MODEL")

	cfg.RedisAddr = viper.GetString("REDIS_ADDR")

	sessionTTLStr := viper.GetString("CHAT_SESSION_TTL")
	sessionTTL, err := time.ParseDuration(sessionTTLStr)
	if err != nil {
		sessionTTL = 30 * time.Minute
		log.Printf("Warning: Invalid value for CHAT_SESSION_TTL ('%s'). Defaulting to %s.\n", sessionTTLStr, sessionTTL.String())
	}
	cfg.ChatSessionTTL = sessionTTL
	cfg.ChatSessionMax = viper.GetInt("CHAT_SESSION_MAX")
	cfg.ChatHistoryTurns = viper.GetInt("CHAT_HISTORY_TURNS")
	cfg.ChatRateLimit = viper.GetString("CHAT_RATE_LIMIT")

	cfg.KafkaBrokers = splitAndTrim(viper.GetString("KAFKA_BROKERS"))
	cfg.KafkaTopic = viper.GetString("KAFKA_TOPIC")

	return cfg, nil
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
