package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBDriver     string
	DBHost       string
	DBPort       string
	DBUser       string
	DBPassword   string
	DBName       string
	DBSSLMode    string
	DBSQLitePath string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string
	JWTTTL    time.Duration

	// Image storage
	StorageBackend  string
	UploadDir       string
	S3Bucket        string
	S3Endpoint      string
	AWSRegion       string
	ImageCacheTTL   time.Duration
	BreakerFailures uint32
	BreakerTimeout  time.Duration

	// HTTP
	CORSOrigins []string

	// Rate limiting
	RecipeCreateLimit int
	ReviewLimit       int
	RateLimitWindow   time.Duration

	// Logging
	LogLevel  string
	LogFormat string
}

// secretKeys are the Docker secret file names, which double as config keys
var secretKeys = []string{
	"db_user",
	"db_password",
	"jwt_secret",
	"redis_password",
	"redis_url",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server_port", "8080")
	v.SetDefault("server_host", "0.0.0.0")
	v.SetDefault("db_driver", "postgres")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_name", "recipebox")
	v.SetDefault("db_ssl_mode", "disable")
	v.SetDefault("db_sqlite_path", "recipebox.db")
	v.SetDefault("redis_host", "localhost")
	v.SetDefault("redis_port", "6379")
	v.SetDefault("redis_db", 0)
	v.SetDefault("jwt_ttl", 24*time.Hour)
	v.SetDefault("storage_backend", "local")
	v.SetDefault("upload_dir", "uploads")
	v.SetDefault("aws_region", "us-east-1")
	v.SetDefault("image_cache_ttl", 10*time.Minute)
	v.SetDefault("blob_breaker_failures", 5)
	v.SetDefault("blob_breaker_timeout", 30*time.Second)
	v.SetDefault("cors_origins", "http://localhost:5173,http://frontend:5173")
	v.SetDefault("recipe_create_limit", 20)
	v.SetDefault("review_limit", 30)
	v.SetDefault("rate_limit_window", time.Hour)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Load secrets based on environment
	switch env {
	case CI:
		// CI uses environment variables only
	case Development, Test:
		loadSecrets(v, false)
	case Production:
		if missing := loadSecrets(v, true); len(missing) > 0 {
			return nil, fmt.Errorf("failed to load production secrets: missing %s", strings.Join(missing, ", "))
		}
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	cfg := &Config{
		Environment:       env,
		ServerPort:        v.GetString("server_port"),
		ServerHost:        v.GetString("server_host"),
		DBDriver:          strings.ToLower(v.GetString("db_driver")),
		DBHost:            v.GetString("db_host"),
		DBPort:            v.GetString("db_port"),
		DBUser:            v.GetString("db_user"),
		DBPassword:        v.GetString("db_password"),
		DBName:            v.GetString("db_name"),
		DBSSLMode:         v.GetString("db_ssl_mode"),
		DBSQLitePath:      v.GetString("db_sqlite_path"),
		RedisHost:         v.GetString("redis_host"),
		RedisPort:         v.GetString("redis_port"),
		RedisPassword:     v.GetString("redis_password"),
		RedisDB:           v.GetInt("redis_db"),
		RedisURL:          v.GetString("redis_url"),
		JWTSecret:         v.GetString("jwt_secret"),
		JWTTTL:            v.GetDuration("jwt_ttl"),
		StorageBackend:    strings.ToLower(v.GetString("storage_backend")),
		UploadDir:         v.GetString("upload_dir"),
		S3Bucket:          v.GetString("s3_bucket_name"),
		S3Endpoint:        v.GetString("s3_endpoint"),
		AWSRegion:         v.GetString("aws_region"),
		ImageCacheTTL:     v.GetDuration("image_cache_ttl"),
		BreakerFailures:   v.GetUint32("blob_breaker_failures"),
		BreakerTimeout:    v.GetDuration("blob_breaker_timeout"),
		CORSOrigins:       splitList(v.GetString("cors_origins")),
		RecipeCreateLimit: v.GetInt("recipe_create_limit"),
		ReviewLimit:       v.GetInt("review_limit"),
		RateLimitWindow:   v.GetDuration("rate_limit_window"),
		LogLevel:          v.GetString("log_level"),
		LogFormat:         v.GetString("log_format"),
	}

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadSecrets overlays Docker secrets onto v. Returns the secrets that could not be read.
func loadSecrets(v *viper.Viper, required bool) []string {
	var missing []string
	for _, name := range secretKeys {
		value := readSecret(name)
		if value == "" {
			if required && isRequiredSecret(name) {
				missing = append(missing, name)
			}
			continue
		}
		v.Set(name, value)
	}
	return missing
}

func isRequiredSecret(name string) bool {
	return name == "db_password" || name == "jwt_secret"
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// ServerAddr returns the listen address for the HTTP server
func (c *Config) ServerAddr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// IsDevelopment returns true if the config was loaded for development
func (c *Config) IsDevelopment() bool {
	return c.Environment == Development
}
