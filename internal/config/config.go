package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var ErrEmptyEnvironmentVariable = errors.New("empty environment variable")

// Config holds all application configuration
type Config struct {
	LiveKit       LiveKitConfig
	SIP           SIPConfig
	Storage       StorageConfig
	Transcription TranscriptionConfig
	Webhook       WebhookConfig
	Agent         AgentConfig
	Pipeline      PipelineConfig
	Database      DatabaseConfig
	Redis         RedisConfig
	Kafka         KafkaConfig
	Mail          MailConfig
	Twilio        TwilioConfig
	Server        ServerConfig
}

// LiveKitConfig holds voice platform connection settings
type LiveKitConfig struct {
	URL               string
	PublicURL         string
	APIKey            string
	APISecret         string
	MeetURL           string
	SkipWebhookVerify bool
}

// SIPConfig holds outbound telephony settings
type SIPConfig struct {
	OutboundTrunkID string
	CallerIDNumber  string
	// InboundHost is the LiveKit SIP endpoint host used when bridging Twilio calls.
	InboundHost string
}

// StorageConfig holds S3-compatible recording storage settings
type StorageConfig struct {
	AccessKey     string
	Secret        string
	Bucket        string
	Endpoint      string
	Region        string
	PublicBaseURL string
	ScratchDir    string
}

// TranscriptionConfig selects and configures the transcription provider
type TranscriptionConfig struct {
	Provider string // "openai" or "assemblyai"
	APIKey   string
	Model    string
	BaseURL  string
	Language string
}

// WebhookConfig holds downstream notification settings
type WebhookConfig struct {
	URL           string
	Secret        string
	Timeout       time.Duration
	MaxAttempts   int
	RetryInterval time.Duration
	// PendingGrace is how long a never-attempted notification may sit before
	// the retry worker picks it up
	PendingGrace time.Duration
}

// AgentConfig holds settings handed to the voice agent
type AgentConfig struct {
	Name       string
	Timezone   string
	PromptPath string
}

// PipelineConfig holds post-call processing settings
type PipelineConfig struct {
	Workers       int
	QueueSize     int
	Timeout       time.Duration
	HTTPTimeout   time.Duration
	RetryMax      uint64
	RetryBase     time.Duration
	DedupeTTL     time.Duration
	FFmpegPath    string
	TranscriptLog string
}

// DatabaseConfig holds optional database connection settings
type DatabaseConfig struct {
	Host     string
	Username string
	Password string
	Name     string
	SSLMode  string
}

// RedisConfig holds optional Redis settings used for cross-instance dedupe
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// KafkaConfig holds optional call event streaming configuration
type KafkaConfig struct {
	Brokers string
	Topic   string
}

// MailConfig holds optional operator alert settings
type MailConfig struct {
	ResendAPIKey string
	Sender       string
	AlertEmail   string
}

// TwilioConfig holds optional inbound bridge settings
type TwilioConfig struct {
	AuthToken string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port        int
	CORSOrigins []string
	// OperatorAPIKey guards the call placement and transcript endpoints (X-API-Key)
	OperatorAPIKey string
}

// Load reads and validates all required environment variables
func Load() (*Config, error) {
	// Load env.local in non-production environments
	if os.Getenv("GO_ENV") != "production" {
		if err := godotenv.Load("env.local"); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env.local: %w", err)
		}
	}
	return FromEnv()
}

// FromEnv builds the configuration from the current process environment.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	var err error

	// LiveKit configuration
	if cfg.LiveKit.URL, err = requireEnv("LIVEKIT_URL"); err != nil {
		return nil, err
	}
	if cfg.LiveKit.APIKey, err = requireEnv("LIVEKIT_API_KEY"); err != nil {
		return nil, err
	}
	if cfg.LiveKit.APISecret, err = requireEnv("LIVEKIT_API_SECRET"); err != nil {
		return nil, err
	}
	cfg.LiveKit.PublicURL = getEnvWithDefault("LIVEKIT_PUBLIC_URL", cfg.LiveKit.URL)
	cfg.LiveKit.MeetURL = getEnvWithDefault("LIVEKIT_MEET_URL", "http://localhost:3000")
	if cfg.LiveKit.SkipWebhookVerify, err = parseBool("LIVEKIT_WEBHOOK_SKIP_VERIFY", "false"); err != nil {
		return nil, err
	}

	// SIP configuration
	if cfg.SIP.OutboundTrunkID, err = requireEnv("SIP_OUTBOUND_TRUNK_ID"); err != nil {
		return nil, err
	}
	if cfg.SIP.CallerIDNumber, err = requireEnv("SIP_CALLER_ID_NUMBER"); err != nil {
		return nil, err
	}
	cfg.SIP.InboundHost = os.Getenv("LIVEKIT_SIP_HOST")

	// Storage configuration
	if cfg.Storage.AccessKey, err = requireEnv("STORAGE_ACCESS_KEY"); err != nil {
		return nil, err
	}
	if cfg.Storage.Secret, err = requireEnv("STORAGE_SECRET"); err != nil {
		return nil, err
	}
	if cfg.Storage.Endpoint, err = requireEnv("STORAGE_ENDPOINT"); err != nil {
		return nil, err
	}
	cfg.Storage.Bucket = getEnvWithDefault("STORAGE_BUCKET", "Recordings")
	cfg.Storage.Region = getEnvWithDefault("STORAGE_REGION", "eu-north-1")
	cfg.Storage.PublicBaseURL = os.Getenv("STORAGE_PUBLIC_BASE_URL")
	cfg.Storage.ScratchDir = getEnvWithDefault("STORAGE_SCRATCH_DIR", os.TempDir())

	// Transcription configuration
	cfg.Transcription.Provider = strings.ToLower(getEnvWithDefault("TRANSCRIPTION_PROVIDER", "openai"))
	switch cfg.Transcription.Provider {
	case "openai":
		cfg.Transcription.Model = getEnvWithDefault("TRANSCRIPTION_MODEL", "whisper-1")
	case "assemblyai":
		cfg.Transcription.Model = getEnvWithDefault("TRANSCRIPTION_MODEL", "best")
	default:
		return nil, fmt.Errorf("unsupported TRANSCRIPTION_PROVIDER %q", cfg.Transcription.Provider)
	}
	if cfg.Transcription.APIKey, err = requireEnv("TRANSCRIPTION_API_KEY"); err != nil {
		return nil, err
	}
	cfg.Transcription.BaseURL = os.Getenv("TRANSCRIPTION_BASE_URL")
	cfg.Transcription.Language = os.Getenv("TRANSCRIPTION_LANGUAGE")

	// Webhook configuration
	if cfg.Webhook.URL, err = requireEnv("WEBHOOK_URL"); err != nil {
		return nil, err
	}
	cfg.Webhook.Secret = os.Getenv("WEBHOOK_SECRET")
	if cfg.Webhook.Timeout, err = parseDuration("WEBHOOK_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.Webhook.MaxAttempts, err = parseInt("WEBHOOK_MAX_ATTEMPTS", "5"); err != nil {
		return nil, err
	}
	if cfg.Webhook.RetryInterval, err = parseDuration("WEBHOOK_RETRY_INTERVAL", "30s"); err != nil {
		return nil, err
	}
	if cfg.Webhook.PendingGrace, err = parseDuration("WEBHOOK_PENDING_GRACE", "5m"); err != nil {
		return nil, err
	}

	// Agent configuration
	cfg.Agent.Name = getEnvWithDefault("LIVEKIT_AGENT_NAME", "test_agent")
	cfg.Agent.Timezone = getEnvWithDefault("AGENT_TIMEZONE", "UTC")
	cfg.Agent.PromptPath = getEnvWithDefault("AGENT_PROMPT_PATH", "prompts/Agent_prompt.md")

	// Pipeline configuration
	if cfg.Pipeline.Workers, err = parseInt("PIPELINE_WORKERS", "4"); err != nil {
		return nil, err
	}
	if cfg.Pipeline.QueueSize, err = parseInt("PIPELINE_QUEUE_SIZE", "100"); err != nil {
		return nil, err
	}
	if cfg.Pipeline.Timeout, err = parseDuration("PIPELINE_TIMEOUT", "15m"); err != nil {
		return nil, err
	}
	if cfg.Pipeline.HTTPTimeout, err = parseDuration("PIPELINE_HTTP_TIMEOUT", "2m"); err != nil {
		return nil, err
	}
	retryMax, err := parseInt("PIPELINE_RETRY_MAX", "3")
	if err != nil {
		return nil, err
	}
	cfg.Pipeline.RetryMax = uint64(retryMax)
	if cfg.Pipeline.RetryBase, err = parseDuration("PIPELINE_RETRY_BASE", "1s"); err != nil {
		return nil, err
	}
	if cfg.Pipeline.DedupeTTL, err = parseDuration("DEDUPE_TTL", "24h"); err != nil {
		return nil, err
	}
	cfg.Pipeline.FFmpegPath = getEnvWithDefault("FFMPEG_PATH", "ffmpeg")
	cfg.Pipeline.TranscriptLog = getEnvWithDefault("TRANSCRIPT_LOG_PATH", "data/transcripts.jsonl")

	// Database configuration (optional, all-or-nothing)
	cfg.Database.Host = os.Getenv("DB_HOST")
	if cfg.Database.Host != "" {
		if cfg.Database.Username, err = requireEnv("DB_USERNAME"); err != nil {
			return nil, err
		}
		if cfg.Database.Password, err = requireEnv("DB_PASSWORD"); err != nil {
			return nil, err
		}
		if cfg.Database.Name, err = requireEnv("DB_NAME"); err != nil {
			return nil, err
		}
		cfg.Database.SSLMode = getEnvWithDefault("DB_SSLMODE", "disable")
	}

	// Redis configuration (optional)
	cfg.Redis.Host = os.Getenv("REDIS_HOST")
	cfg.Redis.Enabled = cfg.Redis.Host != ""
	if cfg.Redis.Port, err = parseInt("REDIS_PORT", "6379"); err != nil {
		return nil, err
	}
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	if cfg.Redis.DB, err = parseInt("REDIS_DB", "0"); err != nil {
		return nil, err
	}

	// Kafka configuration (optional)
	cfg.Kafka.Brokers = os.Getenv("KAFKA_BROKERS")
	cfg.Kafka.Topic = getEnvWithDefault("KAFKA_TOPIC", "call-events")

	// Mail configuration (optional)
	cfg.Mail.ResendAPIKey = os.Getenv("RESEND_API_KEY")
	cfg.Mail.Sender = getEnvWithDefault("DEFAULT_EMAIL_SENDER_ADDRESS", "alerts@example.com")
	cfg.Mail.AlertEmail = os.Getenv("ALERT_EMAIL")

	cfg.Twilio.AuthToken = os.Getenv("TWILIO_AUTH_TOKEN")

	// Server configuration
	if cfg.Server.Port, err = parseInt("SERVER_PORT", "9000"); err != nil {
		return nil, err
	}
	cfg.Server.CORSOrigins = splitList(getEnvWithDefault("CORS_ORIGINS", cfg.LiveKit.MeetURL))
	if cfg.Server.OperatorAPIKey, err = requireEnv("OPERATOR_API_KEY"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ConnectionString returns a PostgreSQL connection string
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		c.Username, c.Password, c.Host, c.Name, c.SSLMode)
}

// Enabled reports whether a database is configured
func (c *DatabaseConfig) Enabled() bool {
	return c.Host != ""
}

// BrokerList returns the configured brokers, or nil when Kafka is disabled
func (c *KafkaConfig) BrokerList() []string {
	return splitList(c.Brokers)
}

// requireEnv retrieves an environment variable or returns an error if empty
func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set: %w", key, ErrEmptyEnvironmentVariable)
	}
	return value, nil
}

// getEnvWithDefault retrieves an environment variable or returns a default value
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func parseInt(key, defaultValue string) (int, error) {
	v, err := strconv.Atoi(getEnvWithDefault(key, defaultValue))
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return v, nil
}

func parseBool(key, defaultValue string) (bool, error) {
	v, err := strconv.ParseBool(getEnvWithDefault(key, defaultValue))
	if err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return v, nil
}

func parseDuration(key, defaultValue string) (time.Duration, error) {
	v, err := time.ParseDuration(getEnvWithDefault(key, defaultValue))
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return v, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
