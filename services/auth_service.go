package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/kendall-kelly/shower-configurator-api/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AdminRole is the only role a token can carry
const AdminRole = "admin"

// MinPasswordLength applies to newly created admins
const MinPasswordLength = 8

// TokenConfig describes how admin tokens are signed
type TokenConfig struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
}

// AdminClaims are the claims of an issued admin token. The subject is the admin id.
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// LoginResult is returned by a successful Authenticate
type LoginResult struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	Admin     *models.Admin `json:"admin"`
}

// AuthService verifies admin credentials and issues signed tokens
type AuthService struct {
	db     *gorm.DB
	tokens TokenConfig
	now    func() time.Time
}

// NewAuthService creates an auth service backed by db
func NewAuthService(db *gorm.DB, tokens TokenConfig) *AuthService {
	return &AuthService{db: db, tokens: tokens, now: time.Now}
}

// Authenticate checks a username and password and returns a fresh token
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, unauthorizedError("invalid credentials")
	}

	var admin models.Admin
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, unauthorizedError("invalid credentials")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, unauthorizedError("invalid credentials")
	}

	token, expiresAt, err := s.IssueToken(&admin)
	if err != nil {
		return nil, err
	}

	zap.L().Info("Admin logged in", zap.Uint("admin_id", admin.ID), zap.String("username", admin.Username))
	return &LoginResult{Token: token, ExpiresAt: expiresAt, Admin: &admin}, nil
}

// IssueToken signs an HS256 token for admin
func (s *AuthService) IssueToken(admin *models.Admin) (string, time.Time, error) {
	if s.tokens.Secret == "" {
		return "", time.Time{}, errors.New("token secret is not configured")
	}

	now := s.now()
	expiresAt := now.Add(s.tokens.TTL)
	claims := &AdminClaims{
		Role: AdminRole,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(admin.ID), 10),
			Issuer:    s.tokens.Issuer,
			Audience:  jwt.ClaimStrings{s.tokens.Audience},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.tokens.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// CreateAdmin stores a new admin with a bcrypt password hash
func (s *AuthService) CreateAdmin(ctx context.Context, username, password string) (*models.Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, validationError("username is required")
	}
	if len(password) < MinPasswordLength {
		return nil, validationError("password must be at least %d characters", MinPasswordLength)
	}
	if err := ensureUnique[models.Admin](ctx, s.db, "admin", "username", username, 0); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, validationError("password is too long")
		}
		return nil, err
	}

	admin := &models.Admin{Username: username, PasswordHash: string(hash)}
	if err := createRow(ctx, s.db, admin, "admin"); err != nil {
		return nil, err
	}
	return admin, nil
}

// EnsureAdmin creates the admin unless one with that username already exists.
// It reports whether a new admin was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	count, err := countWhere[models.Admin](ctx, s.db, "username = ?", strings.TrimSpace(username))
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	if _, err := s.CreateAdmin(ctx, username, password); err != nil {
		return false, err
	}
	return true, nil
}
