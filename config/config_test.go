package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{
		"DATABASE_URL", "DATABASE_DRIVER", "PORT", "LOG_LEVEL", "JWT_SECRET", "JWT_ISSUER",
		"JWT_AUDIENCE", "JWT_TTL_HOURS", "UPLOAD_DIR", "MAX_UPLOAD_BYTES", "IMAGE_STORAGE",
		"IMAGE_MAX_WIDTH", "AWS_REGION", "AWS_S3_BUCKET", "CORS_ALLOWED_ORIGINS",
		"ADMIN_USERNAME", "ADMIN_PASSWORD",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("GO_ENV", "test")

	cfg := FromEnv()

	assert.Equal(t, "postgres", cfg.DatabaseDriver)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "test", cfg.GoEnv)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, DefaultJWTSecret, cfg.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "./uploads", cfg.UploadDir)
	assert.Equal(t, int64(DefaultMaxUploadBytes), cfg.MaxUploadBytes)
	assert.Equal(t, "local", cfg.ImageStorage)
	assert.Equal(t, uint(0), cfg.ImageMaxWidth)
	assert.Equal(t, "us-east-1", cfg.AWSRegion)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.IsTest())
	assert.False(t, cfg.IsProduction())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "SQLite")
	t.Setenv("JWT_TTL_HOURS", "2")
	t.Setenv("MAX_UPLOAD_BYTES", "1024")
	t.Setenv("IMAGE_MAX_WIDTH", "800")
	t.Setenv("IMAGE_STORAGE", "S3")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")

	cfg := FromEnv()

	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, int64(1024), cfg.MaxUploadBytes)
	assert.Equal(t, uint(800), cfg.ImageMaxWidth)
	assert.Equal(t, "s3", cfg.ImageStorage)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestFromEnv_InvalidIntegerFallsBack(t *testing.T) {
	t.Setenv("JWT_TTL_HOURS", "soon")

	assert.Equal(t, 24*time.Hour, FromEnv().JWTTTL)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			DatabaseDriver: "sqlite",
			GoEnv:          "test",
			JWTSecret:      "secret",
			ImageStorage:   "local",
			MaxUploadBytes: DefaultMaxUploadBytes,
		}
	}

	require.NoError(t, valid().Validate())

	cfg := valid()
	cfg.DatabaseDriver = "postgres"
	assert.ErrorContains(t, cfg.Validate(), "DATABASE_URL is required")

	cfg = valid()
	cfg.DatabaseDriver = "oracle"
	assert.ErrorContains(t, cfg.Validate(), "unsupported DATABASE_DRIVER")

	cfg = valid()
	cfg.ImageStorage = "s3"
	assert.ErrorContains(t, cfg.Validate(), "AWS_S3_BUCKET")
	cfg.AWSS3Bucket = "bucket"
	assert.NoError(t, cfg.Validate())

	cfg = valid()
	cfg.ImageStorage = "ftp"
	assert.ErrorContains(t, cfg.Validate(), "unsupported IMAGE_STORAGE")

	cfg = valid()
	cfg.MaxUploadBytes = 0
	assert.ErrorContains(t, cfg.Validate(), "MAX_UPLOAD_BYTES")

	cfg = valid()
	cfg.GoEnv = "production"
	cfg.JWTSecret = DefaultJWTSecret
	assert.ErrorContains(t, cfg.Validate(), "JWT_SECRET must be set in production")
}

func TestGetDatabaseURL_SQLiteFallback(t *testing.T) {
	cfg := &Config{DatabaseDriver: "sqlite"}
	assert.Equal(t, "shower_quote.db", cfg.GetDatabaseURL())

	cfg.DatabaseURL = ":memory:"
	assert.Equal(t, ":memory:", cfg.GetDatabaseURL())
}

func TestSetConfig(t *testing.T) {
	original := GetConfig()
	defer SetConfig(original)

	cfg := &Config{Port: "9999"}
	SetConfig(cfg)
	assert.Same(t, cfg, GetConfig())
}
