package config

import (
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultRossumBaseURL = "https://mktest.rossum.app/api/v1"
	DefaultPostbinURL    = "https://www.postb.in/1734582865900-7316913648974"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Auth    AuthConfig
	Rossum  RossumConfig
	Postbin PostbinConfig
	Archive ArchiveConfig
	Notify  NotifyConfig
	Log     LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Environment     string        `mapstructure:"environment"`
}

// AuthConfig holds the Basic Auth credentials guarding the export endpoint.
// When PasswordHash is set it takes precedence over Password.
type AuthConfig struct {
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	PasswordHash string `mapstructure:"password_hash"`
}

// RossumConfig holds upstream document-extraction API settings.
type RossumConfig struct {
	Username string        `mapstructure:"username"`
	Password string        `mapstructure:"password"`
	BaseURL  string        `mapstructure:"base_url"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// PostbinConfig holds downstream sink settings.
type PostbinConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ArchiveConfig holds optional S3 archival settings for exported documents.
type ArchiveConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

// NotifyConfig holds failure notification settings.
type NotifyConfig struct {
	Provider    string   `mapstructure:"provider"`
	Region      string   `mapstructure:"region"`
	FromAddress string   `mapstructure:"from_address"`
	FromName    string   `mapstructure:"from_name"`
	Recipients  []string `mapstructure:"recipients"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var (
	ErrMissingUsername = errors.New("auth username is required")
	ErrMissingPassword = errors.New("auth password or password hash is required")
	ErrMissingBucket   = errors.New("archive bucket is required when archival is enabled")
)

// Validate checks settings that have no usable default.
func (c *Config) Validate() error {
	if c.Auth.Username == "" {
		return ErrMissingUsername
	}
	if c.Auth.Password == "" && c.Auth.PasswordHash == "" {
		return ErrMissingPassword
	}
	if c.Archive.Enabled && c.Archive.Bucket == "" {
		return ErrMissingBucket
	}
	return nil
}

// Load reads configuration from a local .env file (if any) and environment
// variables with the EXPORTBRIDGE_ prefix. The unprefixed variable names used by
// earlier deployments (APP_USERNAME, ROSSUM_BASE_URL, POSTBIN_URL, ...) are
// accepted as aliases.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("config: ignoring .env file: %v", err)
	}

	v := viper.New()
	v.SetEnvPrefix("EXPORTBRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":5000")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.environment", "development")

	// Upstream and sink defaults
	v.SetDefault("rossum.base_url", DefaultRossumBaseURL)
	v.SetDefault("rossum.timeout", "60s")
	v.SetDefault("postbin.url", DefaultPostbinURL)
	v.SetDefault("postbin.timeout", "30s")

	// Archive defaults
	v.SetDefault("archive.enabled", false)
	v.SetDefault("archive.region", "us-east-1")
	v.SetDefault("archive.prefix", "exports")

	// Notify defaults
	v.SetDefault("notify.provider", "noop")
	v.SetDefault("notify.region", "us-east-1")
	v.SetDefault("notify.from_name", "Export Bridge")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Bind environment variables explicitly for nested keys; extra names are aliases.
	envBindings := map[string][]string{
		"server.port":             {"EXPORTBRIDGE_SERVER_PORT"},
		"server.read_timeout":     {"EXPORTBRIDGE_SERVER_READ_TIMEOUT"},
		"server.write_timeout":    {"EXPORTBRIDGE_SERVER_WRITE_TIMEOUT"},
		"server.shutdown_timeout": {"EXPORTBRIDGE_SERVER_SHUTDOWN_TIMEOUT"},
		"server.environment":      {"EXPORTBRIDGE_SERVER_ENVIRONMENT"},
		"auth.username":           {"EXPORTBRIDGE_AUTH_USERNAME", "APP_USERNAME"},
		"auth.password":           {"EXPORTBRIDGE_AUTH_PASSWORD", "APP_PASSWORD"},
		"auth.password_hash":      {"EXPORTBRIDGE_AUTH_PASSWORD_HASH"},
		"rossum.username":         {"EXPORTBRIDGE_ROSSUM_USERNAME", "ROSSUM_USERNAME"},
		"rossum.password":         {"EXPORTBRIDGE_ROSSUM_PASSWORD", "ROSSUM_PASSWORD"},
		"rossum.base_url":         {"EXPORTBRIDGE_ROSSUM_BASE_URL", "ROSSUM_BASE_URL"},
		"rossum.timeout":          {"EXPORTBRIDGE_ROSSUM_TIMEOUT"},
		"postbin.url":             {"EXPORTBRIDGE_POSTBIN_URL", "POSTBIN_URL"},
		"postbin.timeout":         {"EXPORTBRIDGE_POSTBIN_TIMEOUT"},
		"archive.enabled":         {"EXPORTBRIDGE_ARCHIVE_ENABLED"},
		"archive.region":          {"EXPORTBRIDGE_ARCHIVE_REGION"},
		"archive.bucket":          {"EXPORTBRIDGE_ARCHIVE_BUCKET"},
		"archive.endpoint":        {"EXPORTBRIDGE_ARCHIVE_ENDPOINT"},
		"archive.access_key":      {"EXPORTBRIDGE_ARCHIVE_ACCESS_KEY"},
		"archive.secret_key":      {"EXPORTBRIDGE_ARCHIVE_SECRET_KEY"},
		"archive.prefix":          {"EXPORTBRIDGE_ARCHIVE_PREFIX"},
		"notify.provider":         {"EXPORTBRIDGE_NOTIFY_PROVIDER"},
		"notify.region":           {"EXPORTBRIDGE_NOTIFY_REGION"},
		"notify.from_address":     {"EXPORTBRIDGE_NOTIFY_FROM_ADDRESS"},
		"notify.from_name":        {"EXPORTBRIDGE_NOTIFY_FROM_NAME"},
		"notify.recipients":       {"EXPORTBRIDGE_NOTIFY_RECIPIENTS"},
		"log.level":               {"EXPORTBRIDGE_LOG_LEVEL"},
		"log.format":              {"EXPORTBRIDGE_LOG_FORMAT"},
	}
	for key, envs := range envBindings {
		_ = v.BindEnv(append([]string{key}, envs...)...)
	}

	cfg := &Config{}

	// Hosting platforms set PORT. Use it if EXPORTBRIDGE_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("EXPORTBRIDGE_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:            serverPort,
		ReadTimeout:     v.GetDuration("server.read_timeout"),
		WriteTimeout:    v.GetDuration("server.write_timeout"),
		ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		Environment:     v.GetString("server.environment"),
	}
	cfg.Auth = AuthConfig{
		Username:     v.GetString("auth.username"),
		Password:     v.GetString("auth.password"),
		PasswordHash: v.GetString("auth.password_hash"),
	}
	cfg.Rossum = RossumConfig{
		Username: v.GetString("rossum.username"),
		Password: v.GetString("rossum.password"),
		BaseURL:  strings.TrimRight(v.GetString("rossum.base_url"), "/"),
		Timeout:  v.GetDuration("rossum.timeout"),
	}
	cfg.Postbin = PostbinConfig{
		URL:     v.GetString("postbin.url"),
		Timeout: v.GetDuration("postbin.timeout"),
	}
	cfg.Archive = ArchiveConfig{
		Enabled:   v.GetBool("archive.enabled"),
		Region:    v.GetString("archive.region"),
		Bucket:    v.GetString("archive.bucket"),
		Endpoint:  v.GetString("archive.endpoint"),
		AccessKey: v.GetString("archive.access_key"),
		SecretKey: v.GetString("archive.secret_key"),
		Prefix:    strings.Trim(v.GetString("archive.prefix"), "/"),
	}
	cfg.Notify = NotifyConfig{
		Provider:    v.GetString("notify.provider"),
		Region:      v.GetString("notify.region"),
		FromAddress: v.GetString("notify.from_address"),
		FromName:    v.GetString("notify.from_name"),
		Recipients:  splitList(v.GetString("notify.recipients")),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	return cfg, nil
}

// splitList parses a comma-separated list, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
