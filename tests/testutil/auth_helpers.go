package testutil

import (
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/kendall-kelly/shower-configurator-api/config"
	"github.com/kendall-kelly/shower-configurator-api/models"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TokenOptions overrides individual claims of a test token
type TokenOptions struct {
	Role      string
	Issuer    string
	Audience  string
	Secret    string
	ExpiresIn time.Duration
}

// AdminToken signs a valid admin token for adminID with the settings of cfg
func AdminToken(t *testing.T, cfg *config.Config, adminID uint) string {
	t.Helper()
	return SignToken(t, cfg, adminID, TokenOptions{})
}

// SignToken signs a token for adminID, applying any non-zero field of opts over the defaults
// derived from cfg
func SignToken(t *testing.T, cfg *config.Config, adminID uint, opts TokenOptions) string {
	t.Helper()

	if opts.Role == "" {
		opts.Role = "admin"
	}
	if opts.Issuer == "" {
		opts.Issuer = cfg.JWTIssuer
	}
	if opts.Audience == "" {
		opts.Audience = cfg.JWTAudience
	}
	if opts.Secret == "" {
		opts.Secret = cfg.JWTSecret
	}
	if opts.ExpiresIn == 0 {
		opts.ExpiresIn = time.Hour
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  strconv.FormatUint(uint64(adminID), 10),
		"iss":  opts.Issuer,
		"aud":  []string{opts.Audience},
		"role": opts.Role,
		"iat":  now.Unix(),
		"nbf":  now.Add(-time.Minute).Unix(),
		"exp":  now.Add(opts.ExpiresIn).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(opts.Secret))
	require.NoError(t, err, "Failed to sign test token")
	return signed
}

// CreateAdmin inserts an admin with a bcrypt hash of password
func CreateAdmin(t *testing.T, db *gorm.DB, username, password string) *models.Admin {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	admin := &models.Admin{Username: username, PasswordHash: string(hash)}
	require.NoError(t, db.Create(admin).Error, "Failed to create test admin")
	return admin
}

// BearerHeader formats token as an Authorization header value
func BearerHeader(token string) string {
	return "Bearer " + token
}
