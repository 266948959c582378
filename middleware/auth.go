package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/shower-configurator-api/config"
	"go.uber.org/zap"
)

// AdminRole is the role claim every accepted token must carry
const AdminRole = "admin"

// CustomClaims contains custom data we want from the token.
type CustomClaims struct {
	Role string `json:"role"`
}

// Validate rejects tokens that were not issued to an admin
func (c CustomClaims) Validate(ctx context.Context) error {
	if c.Role != AdminRole {
		return errors.New("token does not carry the admin role")
	}
	return nil
}

// NewValidator builds the HS256 token validator for the configured secret, issuer and audience
func NewValidator(cfg *config.Config) (*validator.Validator, error) {
	secret := []byte(cfg.JWTSecret)
	keyFunc := func(ctx context.Context) (interface{}, error) {
		return secret, nil
	}

	return validator.New(
		keyFunc,
		validator.HS256,
		cfg.JWTIssuer,
		[]string{cfg.JWTAudience},
		validator.WithCustomClaims(
			func() validator.CustomClaims {
				return &CustomClaims{}
			},
		),
		validator.WithAllowedClockSkew(time.Minute),
	)
}

// EnsureValidToken is a middleware that will check the validity of our JWT.
// Requests without a valid admin token are answered with 401 and never reach the handler.
func EnsureValidToken(cfg *config.Config) gin.HandlerFunc {
	jwtValidator, err := NewValidator(cfg)
	if err != nil {
		zap.L().Fatal("Failed to set up the jwt validator", zap.Error(err))
	}

	errorHandler := func(w http.ResponseWriter, r *http.Request, err error) {
		zap.L().Info("Rejected request token",
			zap.String("path", r.URL.Path),
			zap.Error(err))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		if _, writeErr := w.Write([]byte(`{"success":false,"error":{"code":"UNAUTHORIZED","message":"Admin authentication required"}}`)); writeErr != nil {
			zap.L().Warn("Failed to write error response", zap.Error(writeErr))
		}
	}

	middleware := jwtmiddleware.New(
		jwtValidator.ValidateToken,
		jwtmiddleware.WithErrorHandler(errorHandler),
	)

	return func(c *gin.Context) {
		authorized := false
		var handler http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
			authorized = true

			// Store the validated claims in Gin context
			token := r.Context().Value(jwtmiddleware.ContextKey{}).(*validator.ValidatedClaims)
			c.Request = r
			c.Set("admin_id", token.RegisteredClaims.Subject)
			c.Set("validated_claims", token)
		}

		// Use the JWT middleware to check the token
		middleware.CheckJWT(handler).ServeHTTP(c.Writer, c.Request)

		if !authorized {
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetAdminID extracts the authenticated admin id from the Gin context
func GetAdminID(c *gin.Context) (uint, error) {
	adminID, exists := c.Get("admin_id")
	if !exists {
		return 0, &AuthError{Code: "MISSING_ADMIN_ID", Message: "Admin ID not found in context"}
	}

	adminIDStr, ok := adminID.(string)
	if !ok {
		return 0, &AuthError{Code: "INVALID_ADMIN_ID", Message: "Admin ID is not a string"}
	}

	id, err := strconv.ParseUint(adminIDStr, 10, 64)
	if err != nil || id == 0 {
		return 0, &AuthError{Code: "INVALID_ADMIN_ID", Message: "Admin ID is not a positive number"}
	}
	return uint(id), nil
}

// GetClaims extracts the validated JWT claims from the Gin context
func GetClaims(c *gin.Context) (*validator.ValidatedClaims, error) {
	claims, exists := c.Get("validated_claims")
	if !exists {
		return nil, &AuthError{Code: "MISSING_CLAIMS", Message: "Claims not found in context"}
	}

	validatedClaims, ok := claims.(*validator.ValidatedClaims)
	if !ok {
		return nil, &AuthError{Code: "INVALID_CLAIMS", Message: "Claims are not in the expected format"}
	}

	return validatedClaims, nil
}

// AuthError represents an authentication error
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}
