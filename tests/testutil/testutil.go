package testutil

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/kendall-kelly/shower-configurator-api/config"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestJWTSecret signs every token used in tests
const TestJWTSecret = "test-secret-for-shower-configurator"

// RequireTestEnvironment ensures that tests are running in the test environment.
// This prevents accidental execution of tests against production or development databases.
// It will fail the test immediately if GO_ENV is not set to "test".
func RequireTestEnvironment(t *testing.T) {
	t.Helper()

	env := os.Getenv("GO_ENV")
	if env != "test" {
		t.Fatalf("SAFETY CHECK FAILED: Tests must run with GO_ENV=test to prevent data loss. Current GO_ENV=%q. Set GO_ENV=test before running tests.", env)
	}
}

// MustSetTestEnvironment sets GO_ENV to test and fails if it cannot be set.
// Use this in TestMain or suite setup functions.
func MustSetTestEnvironment(t *testing.T) {
	t.Helper()

	if err := os.Setenv("GO_ENV", "test"); err != nil {
		t.Fatalf("Failed to set GO_ENV=test: %v", err)
	}

	// Verify it was set
	if os.Getenv("GO_ENV") != "test" {
		t.Fatal("Failed to verify GO_ENV=test")
	}
}

// TestConfig returns a configuration for an in-memory sqlite database, local image storage
// under uploadDir and the shared test signing secret
func TestConfig(uploadDir string) *config.Config {
	return &config.Config{
		DatabaseDriver:     "sqlite",
		DatabaseURL:        ":memory:",
		Port:               "8080",
		GoEnv:              "test",
		LogLevel:           "error",
		JWTSecret:          TestJWTSecret,
		JWTIssuer:          "shower-configurator-api",
		JWTAudience:        "shower-configurator-admin",
		JWTTTL:             time.Hour,
		UploadDir:          uploadDir,
		MaxUploadBytes:     config.DefaultMaxUploadBytes,
		ImageStorage:       "local",
		AWSRegion:          "us-east-1",
		CORSAllowedOrigins: []string{"*"},
	}
}

// NewTestDB opens a fresh, migrated in-memory sqlite database. Every call returns an
// isolated database that is closed when the test ends.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := config.OpenDatabase("sqlite", ":memory:")
	require.NoError(t, err, "Failed to open test database")
	require.NoError(t, config.Migrate(db), "Failed to migrate test database")

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// SetupTestApp installs a test configuration and a fresh database as the process-wide
// instances and restores the previous ones when the test ends
func SetupTestApp(t *testing.T) (*config.Config, *gorm.DB) {
	t.Helper()

	previousCfg, previousDB := config.GetConfig(), config.GetDB()
	t.Cleanup(func() {
		config.SetConfig(previousCfg)
		config.SetDB(previousDB)
	})

	cfg := TestConfig(t.TempDir())
	db := NewTestDB(t)
	config.SetConfig(cfg)
	config.SetDB(db)
	return cfg, db
}

// PrintEnvironmentInfo prints the current test environment configuration.
// Useful for debugging test environment issues.
func PrintEnvironmentInfo() {
	fmt.Printf("Test Environment Info:\n")
	fmt.Printf("  GO_ENV: %s\n", os.Getenv("GO_ENV"))
	fmt.Printf("  DATABASE_DRIVER: %s\n", os.Getenv("DATABASE_DRIVER"))
	fmt.Printf("  IMAGE_STORAGE: %s\n", os.Getenv("IMAGE_STORAGE"))
}
