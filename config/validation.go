package config

import (
	"fmt"
	"strings"
)

// defaultDevSecret is accepted outside production only
const defaultDevSecret = "dev-secret-change-me"

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks the configuration and fills development-only fallbacks.
// All problems are reported together.
func ValidateConfig(cfg *Config) error {
	var errs []string
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg}.Error())
	}

	if cfg.ServerPort == "" {
		add("SERVER_PORT", "is required")
	}

	switch cfg.DBDriver {
	case "postgres":
		for field, value := range map[string]string{
			"DB_HOST":     cfg.DBHost,
			"DB_PORT":     cfg.DBPort,
			"DB_NAME":     cfg.DBName,
			"DB_USER":     cfg.DBUser,
			"DB_PASSWORD": cfg.DBPassword,
		} {
			if value == "" {
				add(field, "is required for the postgres driver")
			}
		}
	case "sqlite":
		if cfg.DBSQLitePath == "" {
			add("DB_SQLITE_PATH", "is required for the sqlite driver")
		}
	default:
		add("DB_DRIVER", fmt.Sprintf("unsupported driver %q", cfg.DBDriver))
	}

	switch cfg.StorageBackend {
	case "local":
		if cfg.UploadDir == "" {
			add("UPLOAD_DIR", "is required for local image storage")
		}
	case "s3":
		if cfg.S3Bucket == "" {
			add("S3_BUCKET_NAME", "is required for s3 image storage")
		}
	default:
		add("STORAGE_BACKEND", fmt.Sprintf("unsupported backend %q", cfg.StorageBackend))
	}

	if cfg.JWTSecret == "" {
		if cfg.Environment == Production || cfg.Environment == CI {
			add("JWT_SECRET", "is required")
		} else {
			cfg.JWTSecret = defaultDevSecret
		}
	} else if cfg.Environment == Production && cfg.JWTSecret == defaultDevSecret {
		add("JWT_SECRET", "must not use the development default in production")
	}

	if cfg.RateLimitWindow <= 0 {
		add("RATE_LIMIT_WINDOW", "must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errs, "\n"))
	}

	return nil
}
