package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	Authoring AuthoringConfig `yaml:"authoring"`
	Translate TranslateConfig `yaml:"translate"`
	Media     MediaConfig     `yaml:"media"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds access-token validation settings.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"deck-authoring"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"15m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// AuthoringConfig holds authoring session settings.
type AuthoringConfig struct {
	SessionTTL              time.Duration `yaml:"session_ttl"                env:"AUTHORING_SESSION_TTL"                env-default:"2h"`
	SweepInterval           time.Duration `yaml:"sweep_interval"             env:"AUTHORING_SWEEP_INTERVAL"             env-default:"5m"`
	UploadConcurrency       int           `yaml:"upload_concurrency"         env:"AUTHORING_UPLOAD_CONCURRENCY"         env-default:"4"`
	MaxUploadBytes          int64         `yaml:"max_upload_bytes"           env:"AUTHORING_MAX_UPLOAD_BYTES"           env-default:"10485760"`
	EnrichmentRatePerMinute int           `yaml:"enrichment_rate_per_minute" env:"AUTHORING_ENRICHMENT_RATE_PER_MINUTE" env-default:"60"`
}

// Translation provider names.
const (
	TranslateProviderHTTP = "http"
	TranslateProviderLLM  = "llm"
	TranslateProviderStub = "stub"
)

// TranslateConfig selects and configures the translation backend.
type TranslateConfig struct {
	Provider string        `yaml:"provider"  env:"TRANSLATE_PROVIDER"  env-default:"stub"`
	BaseURL  string        `yaml:"base_url"  env:"TRANSLATE_BASE_URL"`
	APIKey   string        `yaml:"api_key"   env:"TRANSLATE_API_KEY"`
	Timeout  time.Duration `yaml:"timeout"   env:"TRANSLATE_TIMEOUT"   env-default:"10s"`
	LLMModel string        `yaml:"llm_model" env:"TRANSLATE_LLM_MODEL" env-default:"claude-3-5-haiku-latest"`

	// CacheSize bounds the translation cache in front of remote backends.
	// Zero disables caching.
	CacheSize int64 `yaml:"cache_size" env:"TRANSLATE_CACHE_SIZE" env-default:"10000"`
}

// MediaConfig holds the media upload endpoints.
type MediaConfig struct {
	ImageUploadURL string        `yaml:"image_upload_url" env:"MEDIA_IMAGE_UPLOAD_URL"`
	AudioUploadURL string        `yaml:"audio_upload_url" env:"MEDIA_AUDIO_UPLOAD_URL"`
	Timeout        time.Duration `yaml:"timeout"          env:"MEDIA_TIMEOUT"          env-default:"30s"`
}

// ProviderName returns the normalized provider name.
func (c TranslateConfig) ProviderName() string {
	return strings.ToLower(strings.TrimSpace(c.Provider))
}
