package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/shower-configurator-api/services"
)

// ListAddons handles GET /api/addons[?model_id=N]
func ListAddons(c *gin.Context) {
	var modelID *uint
	if raw := c.Query("model_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_ID",
					"message": "model_id must be a positive integer",
				},
			})
			return
		}
		v := uint(id)
		modelID = &v
	}

	addons, err := catalogService().ListAddons(c.Request.Context(), modelID)
	if err != nil {
		respondError(c, err, "list addons")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    addons,
	})
}

// GetAddon handles GET /api/addons/:id
func GetAddon(c *gin.Context) {
	handleGet(c, "load addon", catalogService().GetAddon)
}

// CreateAddon handles POST /api/addons
func CreateAddon(c *gin.Context) {
	handleCreate(c, "create addon", catalogService().CreateAddon)
}

// UpdateAddon handles PUT /api/addons/:id
func UpdateAddon(c *gin.Context) {
	handleUpdate(c, "update addon", catalogService().UpdateAddon)
}

// DeleteAddon handles DELETE /api/addons/:id
func DeleteAddon(c *gin.Context) {
	handleDelete(c, "delete addon", catalogService().DeleteAddon)
}

// ListGallery handles GET /api/gallery
func ListGallery(c *gin.Context) {
	handleList(c, "list gallery", catalogService().ListGallery)
}

// CreateGalleryImage handles POST /api/gallery. A multipart request may upload the
// image directly under the "image" field instead of passing image_path.
func CreateGalleryImage(c *gin.Context) {
	var req services.GalleryInput
	var uploaded *string
	if isMultipart(c) {
		if err := c.ShouldBind(&req); err != nil {
			respondBindError(c, err)
			return
		}
		imagePath, err := storeFormImage(c, "image")
		if err != nil {
			respondError(c, err, "upload image")
			return
		}
		if imagePath != nil {
			req.ImagePath = *imagePath
			uploaded = imagePath
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	image, err := catalogService().CreateGalleryImage(c.Request.Context(), req)
	if err != nil {
		discardImage(c, uploaded)
		respondError(c, err, "create gallery image")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    image,
	})
}

// UpdateGalleryImage handles PUT /api/gallery/:id
func UpdateGalleryImage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var patch services.GalleryPatch
	var uploaded *string
	if isMultipart(c) {
		if err := c.ShouldBind(&patch); err != nil {
			respondBindError(c, err)
			return
		}
		imagePath, err := storeFormImage(c, "image")
		if err != nil {
			respondError(c, err, "upload image")
			return
		}
		if imagePath != nil {
			patch.ImagePath = imagePath
			uploaded = imagePath
		}
	} else if err := c.ShouldBindJSON(&patch); err != nil {
		respondBindError(c, err)
		return
	}

	image, err := catalogService().UpdateGalleryImage(c.Request.Context(), id, patch)
	if err != nil {
		discardImage(c, uploaded)
		respondError(c, err, "update gallery image")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    image,
	})
}

// DeleteGalleryImage handles DELETE /api/gallery/:id
func DeleteGalleryImage(c *gin.Context) {
	handleDelete(c, "delete gallery image", catalogService().DeleteGalleryImage)
}
