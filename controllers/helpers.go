package controllers

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/shower-configurator-api/config"
	"github.com/kendall-kelly/shower-configurator-api/services"
	"go.uber.org/zap"
)

func catalogService() *services.CatalogService {
	return services.NewCatalogService(config.GetDB())
}

func pricingService() *services.PricingService {
	return services.NewPricingService(config.GetDB())
}

func compositionService() *services.CompositionService {
	return services.NewCompositionService(config.GetDB())
}

func quoteService() *services.QuoteService {
	return services.NewQuoteService(config.GetDB())
}

func authService() *services.AuthService {
	return services.NewAuthService(config.GetDB(), TokenConfig(config.GetConfig()))
}

// TokenConfig derives the token signing settings from the application config
func TokenConfig(cfg *config.Config) services.TokenConfig {
	return services.TokenConfig{
		Secret:   cfg.JWTSecret,
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
		TTL:      cfg.JWTTTL,
	}
}

// respondError writes the failure envelope for err. Service errors map onto their status
// codes; anything else is logged and reported as a 500.
func respondError(c *gin.Context, err error, action string) {
	var svcErr *services.Error
	if errors.As(err, &svcErr) {
		c.JSON(statusForKind(svcErr.Kind), gin.H{
			"success": false,
			"error": gin.H{
				"code":    svcErr.Code,
				"message": svcErr.Message,
			},
		})
		return
	}

	zap.L().Error("Request failed",
		zap.String("action", action),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "DATABASE_ERROR",
			"message": "Failed to " + action,
		},
	})
}

func statusForKind(kind services.ErrorKind) int {
	switch kind {
	case services.KindValidation:
		return http.StatusBadRequest
	case services.KindUnauthorized:
		return http.StatusUnauthorized
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "VALIDATION_ERROR",
			"message": "Invalid request data",
			"details": err.Error(),
		},
	})
}

// parseID reads a positive integer path parameter, answering 400 when it is malformed
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": name + " must be a positive integer",
			},
		})
		return 0, false
	}
	return uint(id), true
}

// forceRequested reports whether ?force=true was passed
func forceRequested(c *gin.Context) bool {
	force, _ := strconv.ParseBool(c.DefaultQuery("force", "false"))
	return force
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// formImage returns the first uploaded file found under one of fields, or nil when none was sent
func formImage(c *gin.Context, fields ...string) (*multipart.FileHeader, error) {
	for _, field := range fields {
		fileHeader, err := c.FormFile(field)
		if err == nil {
			return fileHeader, nil
		}
		if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
			return nil, err
		}
	}
	return nil, nil
}

// storeFormImage uploads the optional image of a multipart request and returns its path
func storeFormImage(c *gin.Context, fields ...string) (*string, error) {
	fileHeader, err := formImage(c, fields...)
	if err != nil || fileHeader == nil {
		return nil, err
	}

	path, err := services.GetImageService().UploadImage(c.Request.Context(), fileHeader)
	if err != nil {
		return nil, err
	}
	return &path, nil
}

// discardImage removes an image stored earlier in the request once the write it belonged to failed
func discardImage(c *gin.Context, imagePath *string) {
	if imagePath == nil {
		return
	}
	if err := services.GetImageService().DeleteImage(c.Request.Context(), *imagePath); err != nil {
		zap.L().Warn("Failed to remove orphaned image",
			zap.String("image_path", *imagePath),
			zap.Error(err))
	}
}

func handleList[Out any](c *gin.Context, action string, list func(context.Context) (Out, error)) {
	data, err := list(c.Request.Context())
	if err != nil {
		respondError(c, err, action)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

func handleGet[Out any](c *gin.Context, action string, get func(context.Context, uint) (Out, error)) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	data, err := get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, action)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

func handleCreate[In any, Out any](c *gin.Context, action string, create func(context.Context, In) (Out, error)) {
	var req In
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	data, err := create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, action)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    data,
	})
}

func handleUpdate[P any, Out any](c *gin.Context, action string, update func(context.Context, uint, P) (Out, error)) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var patch P
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondBindError(c, err)
		return
	}

	data, err := update(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err, action)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

func handleDelete(c *gin.Context, action string, del func(context.Context, uint) error) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := del(c.Request.Context(), id); err != nil {
		respondError(c, err, action)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Deleted",
	})
}

// handleForceDelete is handleDelete for entities whose dependents only go with ?force=true
func handleForceDelete(c *gin.Context, action string, del func(context.Context, uint, bool) error) {
	force := forceRequested(c)
	handleDelete(c, action, func(ctx context.Context, id uint) error {
		return del(ctx, id, force)
	})
}
