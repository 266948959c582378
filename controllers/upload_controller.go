package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/shower-configurator-api/services"
)

// UploadImage handles POST /api/upload-image - stores a standalone image (field "file" or "image")
func UploadImage(c *gin.Context) {
	imagePath, err := storeFormImage(c, "file", "image")
	if err != nil {
		respondError(c, err, "upload image")
		return
	}
	if imagePath == nil {
		respondNoFile(c)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"image_path": *imagePath,
	})
}

// GetUploadedImage handles GET /uploads/:filename - serves a stored image from local disk,
// or redirects to a presigned URL when images live in S3
func GetUploadedImage(c *gin.Context) {
	filename := c.Param("filename")

	if filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Filename is required",
			},
		})
		return
	}

	stored, err := services.GetImageService().ResolveImage(c.Request.Context(), filename)
	if err != nil {
		respondError(c, err, "load image")
		return
	}

	if stored.RemoteURL != "" {
		c.Redirect(http.StatusFound, stored.RemoteURL)
		return
	}

	c.Header("Content-Type", stored.ContentType)
	c.Header("Cache-Control", "public, max-age=86400") // Cache for 24 hours
	c.File(stored.LocalPath)
}
