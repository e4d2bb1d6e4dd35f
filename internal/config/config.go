package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App        AppConfig
	Logger     LoggerConfig
	SLA        SLAConfig
	Matcher    MatcherConfig
	Classifier ClassifierConfig
	Email      EmailConfig
	Notify     NotifyConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// SLAConfig holds the service-level countdown parameters. Defaults mirror
// the operating agreement: a 15-minute answer window with a 5-minute
// high-alert boundary, rescanned every minute.
type SLAConfig struct {
	WindowMinutes    int
	HighAlertMinutes int
	TickSeconds      int
}

// MatcherConfig configures the FAQ corpus and fuzzy matching.
type MatcherConfig struct {
	CorpusPath string
	Threshold  float64
}

// ClassifierConfig points at the external AI classification service.
type ClassifierConfig struct {
	Enabled        bool
	URL            string
	TimeoutSeconds int
}

// EmailConfig holds SMTP parameters. An empty host disables sending.
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	FromEmail    string
	FromName     string
}

// NotifyConfig configures the notification fan-out: the TCP listener for
// operator clients and an optional Redis channel mirror.
type NotifyConfig struct {
	TCPAddr             string
	WriteTimeoutSeconds int
	RedisAddr           string
	RedisPassword       string
	RedisDB             int
	RedisChannel        string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("NOTIFY_REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid NOTIFY_REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "question-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		SLA: SLAConfig{
			WindowMinutes:    getEnvAsInt("SLA_WINDOW_MINUTES", 15),
			HighAlertMinutes: getEnvAsInt("SLA_HIGH_ALERT_MINUTES", 5),
			TickSeconds:      getEnvAsInt("SLA_TICK_SECONDS", 60),
		},
		Matcher: MatcherConfig{
			CorpusPath: getEnv("FAQ_CORPUS_PATH", "data/faq_export.json"),
			Threshold:  getEnvAsFloat("MATCH_THRESHOLD", 0.55),
		},
		Classifier: ClassifierConfig{
			Enabled:        getEnvAsBool("CLASSIFIER_ENABLED", false),
			URL:            getEnv("CLASSIFIER_URL", "http://localhost:5001/api/process-question"),
			TimeoutSeconds: getEnvAsInt("CLASSIFIER_TIMEOUT_SECONDS", 10),
		},
		Email: EmailConfig{
			SMTPHost:     os.Getenv("EMAIL_SMTP_HOST"),
			SMTPPort:     getEnvAsInt("EMAIL_SMTP_PORT", 587),
			SMTPUser:     os.Getenv("EMAIL_SMTP_USER"),
			SMTPPassword: os.Getenv("EMAIL_SMTP_PASSWORD"),
			FromEmail:    getEnv("EMAIL_FROM", "office@mfbanka.com"),
			FromName:     getEnv("EMAIL_FROM_NAME", "MF Banka"),
		},
		Notify: NotifyConfig{
			TCPAddr:             getEnv("NOTIFY_TCP_ADDR", "0.0.0.0:9000"),
			WriteTimeoutSeconds: getEnvAsInt("NOTIFY_WRITE_TIMEOUT_SECONDS", 5),
			RedisAddr:           os.Getenv("NOTIFY_REDIS_ADDR"),
			RedisPassword:       os.Getenv("NOTIFY_REDIS_PASSWORD"),
			RedisDB:             redisDB,
			RedisChannel:        getEnv("NOTIFY_REDIS_CHANNEL", "question-notifications"),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Tick returns the scheduler period.
func (s SLAConfig) Tick() time.Duration {
	if s.TickSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(s.TickSeconds) * time.Second
}

// Timeout returns the classifier request timeout.
func (c ClassifierConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// WriteTimeout returns the per-sink delivery timeout.
func (n NotifyConfig) WriteTimeout() time.Duration {
	if n.WriteTimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(n.WriteTimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsFloat(key string, fallback float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
