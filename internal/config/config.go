package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	LLM      LLMConfig
	Venue    VenueConfig
	Auth     AuthConfig
	Storage  StorageConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
	AutoMigrate  bool
}

type RedisConfig struct {
	Addr       string
	SessionTTL time.Duration
}

type KafkaConfig struct {
	Brokers []string
	Enabled bool
	Topics  TopicConfig
}

type TopicConfig struct {
	ReservationCreated string
	ChatMessages       string
}

// LLMConfig drives the chat assistant's completion calls. Models is an
// ordered candidate list: the first entry is the primary model, the rest are
// fallbacks tried in order when the primary is unavailable.
type LLMConfig struct {
	APIKey      string
	BaseURL     string
	Models      []string
	MaxAttempts int
	Temperature float64
	MaxTokens   int
}

// VenueConfig carries the club's civil-calendar timezone and the public menu
// PDF location used by the QR endpoint.
type VenueConfig struct {
	Timezone   string
	MenuPDFURL string
}

type AuthConfig struct {
	JWTSecret string
}

// StorageConfig points at the hosted object-storage service that keeps event
// and menu imagery.
type StorageConfig struct {
	BaseURL    string
	Bucket     string
	ServiceKey string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", ":8080"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Database: DatabaseConfig{
			DSN:          getEnv("POSTGRES_DSN", ""),
			MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:  time.Duration(getEnvInt("DB_MAX_LIFETIME_MINUTES", 5)) * time.Minute,
			AutoMigrate:  getEnvBool("AUTO_MIGRATE", false),
		},
		Redis: RedisConfig{
			Addr:       getEnv("REDIS_ADDR", "localhost:6379"),
			SessionTTL: time.Duration(getEnvInt("CHAT_SESSION_TTL_HOURS", 24)) * time.Hour,
		},
		Kafka: KafkaConfig{
			Brokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			Enabled: getEnvBool("KAFKA_ENABLED", true),
			Topics: TopicConfig{
				ReservationCreated: getEnv("KAFKA_TOPIC_RESERVATIONS", "club.reservations.created"),
				ChatMessages:       getEnv("KAFKA_TOPIC_CHAT", "club.chat.messages"),
			},
		},
		LLM: LLMConfig{
			APIKey:      getEnv("GROQ_API_KEY", ""),
			BaseURL:     getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
			Models:      strings.Split(getEnv("GROQ_MODELS", "llama-3.3-70b-versatile,llama-3.1-8b-instant"), ","),
			MaxAttempts: getEnvInt("LLM_MAX_ATTEMPTS", 3),
			Temperature: 0.7,
			MaxTokens:   1024,
		},
		Venue: VenueConfig{
			Timezone:   getEnv("VENUE_TIMEZONE", "America/Mexico_City"),
			MenuPDFURL: getEnv("MENU_PDF_URL", "https://obsidianmva.club/menu.pdf"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("AUTH_JWT_SECRET", ""),
		},
		Storage: StorageConfig{
			BaseURL:    getEnv("STORAGE_URL", ""),
			Bucket:     getEnv("STORAGE_BUCKET", "imgs"),
			ServiceKey: getEnv("STORAGE_SERVICE_KEY", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
