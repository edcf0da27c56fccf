package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full process configuration, read from the environment.
type Config struct {
	Server   Server
	Database Database
	Storage  Storage
	Kafka    Kafka
	Keycloak Keycloak
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr           string
	LogLevel       string
	AdminAPIToken  string
	MaxUploadBytes int64
}

// Database is optional: an empty URL selects the in-memory tenant store.
type Database struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Storage selects where uploaded tenant images are written.
type Storage struct {
	Type        string
	Dir         string
	S3Bucket    string
	S3Region    string
	S3Prefix    string
	Concurrency int
}

type Kafka struct {
	Brokers    string
	AuditTopic string
}

// Keycloak holds the identity-provider admin API settings. Paths are appended
// verbatim to BaseURL.
type Keycloak struct {
	BaseURL   string
	TokenPath string
	AdminPath string
	Username  string
	Password  string
	Timeout   time.Duration
}

const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

// FromEnv builds the configuration from environment variables so main stays lean.
func FromEnv() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := Config{
		Server: Server{
			Addr:           v.GetString("TENANT_ADMIN_ADDR"),
			LogLevel:       v.GetString("LOG_LEVEL"),
			AdminAPIToken:  v.GetString("ADMIN_API_TOKEN"),
			MaxUploadBytes: v.GetInt64("MAX_UPLOAD_BYTES"),
		},
		Database: Database{
			URL:             v.GetString("DATABASE_URL"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		},
		Storage: Storage{
			Type:        strings.ToLower(v.GetString("STORAGE_TYPE")),
			Dir:         v.GetString("STORAGE_DIR"),
			S3Bucket:    v.GetString("S3_BUCKET"),
			S3Region:    v.GetString("S3_REGION"),
			S3Prefix:    v.GetString("S3_PREFIX"),
			Concurrency: v.GetInt("UPLOAD_CONCURRENCY"),
		},
		Kafka: Kafka{
			Brokers:    v.GetString("KAFKA_BROKERS"),
			AuditTopic: v.GetString("KAFKA_AUDIT_TOPIC"),
		},
		Keycloak: Keycloak{
			BaseURL:   v.GetString("KEYCLOAK"),
			TokenPath: v.GetString("KEYCLOAK_ADMIN_TOKEN"),
			AdminPath: v.GetString("KEYCLOAK_ADMIN"),
			Username:  v.GetString("KEYCLOAK_USERNAME"),
			Password:  v.GetString("KEYCLOAK_PASSWORD"),
			Timeout:   v.GetDuration("KEYCLOAK_TIMEOUT"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("TENANT_ADMIN_ADDR", ":8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_UPLOAD_BYTES", 32<<20)

	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 2)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "5m")

	v.SetDefault("STORAGE_TYPE", StorageLocal)
	v.SetDefault("STORAGE_DIR", "./uploads")
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("UPLOAD_CONCURRENCY", 1)

	v.SetDefault("KAFKA_AUDIT_TOPIC", "tenant.audit")

	// Zero means transport defaults: wait indefinitely.
	v.SetDefault("KEYCLOAK_TIMEOUT", "0s")
}

// Validate rejects combinations the server cannot start with.
func (c Config) Validate() error {
	switch c.Storage.Type {
	case StorageLocal:
		if c.Storage.Dir == "" {
			return fmt.Errorf("STORAGE_DIR is required for local storage")
		}
	case StorageS3:
		if c.Storage.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required for s3 storage")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_TYPE %q", c.Storage.Type)
	}
	if c.Storage.Concurrency < 1 {
		return fmt.Errorf("UPLOAD_CONCURRENCY must be at least 1, got %d", c.Storage.Concurrency)
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	if c.Database.MaxOpenConns < 1 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be at least 1, got %d", c.Database.MaxOpenConns)
	}
	if c.Keycloak.Timeout < 0 {
		return fmt.Errorf("KEYCLOAK_TIMEOUT must not be negative")
	}
	return nil
}
