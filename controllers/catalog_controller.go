package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/shower-configurator-api/services"
)

// ListShowerTypes handles GET /api/shower-types
func ListShowerTypes(c *gin.Context) {
	handleList(c, "list shower types", catalogService().ListShowerTypes)
}

// GetShowerType handles GET /api/shower-types/:id
func GetShowerType(c *gin.Context) {
	handleGet(c, "load shower type", catalogService().GetShowerType)
}

// CreateShowerType handles POST /api/shower-types
func CreateShowerType(c *gin.Context) {
	handleCreate(c, "create shower type", catalogService().CreateShowerType)
}

// UpdateShowerType handles PUT /api/shower-types/:id
func UpdateShowerType(c *gin.Context) {
	handleUpdate(c, "update shower type", catalogService().UpdateShowerType)
}

// DeleteShowerType handles DELETE /api/shower-types/:id[?force=true]
func DeleteShowerType(c *gin.Context) {
	handleForceDelete(c, "delete shower type", catalogService().DeleteShowerType)
}

// UploadShowerTypeImage handles POST /api/shower-types/:id/upload-image (multipart field "image")
func UploadShowerTypeImage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	svc := catalogService()
	if _, err := svc.GetShowerType(c.Request.Context(), id); err != nil {
		respondError(c, err, "load shower type")
		return
	}

	imagePath, err := storeFormImage(c, "image", "file")
	if err != nil {
		respondError(c, err, "upload image")
		return
	}
	if imagePath == nil {
		respondNoFile(c)
		return
	}

	showerType, err := svc.SetShowerTypeImage(c.Request.Context(), id, *imagePath)
	if err != nil {
		discardImage(c, imagePath)
		respondError(c, err, "update shower type")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"image_path": *imagePath,
		"data":       showerType,
	})
}

// ListModels handles GET /api/models
func ListModels(c *gin.Context) {
	handleList(c, "list models", catalogService().ListModels)
}

// GetModel handles GET /api/models/:id
func GetModel(c *gin.Context) {
	handleGet(c, "load model", catalogService().GetModel)
}

// CreateModel handles POST /api/models with either a JSON body or a multipart form
// carrying an optional "image" file
func CreateModel(c *gin.Context) {
	var req services.ModelInput
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
			req.ImagePath = imagePath
			uploaded = imagePath
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	model, err := catalogService().CreateModel(c.Request.Context(), req)
	if err != nil {
		discardImage(c, uploaded)
		respondError(c, err, "create model")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    model,
	})
}

// UpdateModel handles PUT /api/models/:id with either a JSON body or a multipart form
func UpdateModel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var patch services.ModelPatch
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

	model, err := catalogService().UpdateModel(c.Request.Context(), id, patch)
	if err != nil {
		discardImage(c, uploaded)
		respondError(c, err, "update model")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    model,
	})
}

// DeleteModel handles DELETE /api/models/:id - always removes the model's components and addons
func DeleteModel(c *gin.Context) {
	handleDelete(c, "delete model", catalogService().DeleteModel)
}

// QuoteModel handles GET /api/models/:id/quote?addon_id=1&addon_id=2
func QuoteModel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	addonIDs, err := parseIDList(c.QueryArray("addon_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "addon_id must be a list of positive integers",
			},
		})
		return
	}

	quote, err := quoteService().QuoteModel(c.Request.Context(), id, addonIDs)
	if err != nil {
		respondError(c, err, "build quote")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    quote,
	})
}

// parseIDList accepts repeated and comma separated ids
func parseIDList(values []string) ([]uint, error) {
	var ids []uint
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseUint(part, 10, 64)
			if err != nil || id == 0 {
				return nil, strconv.ErrSyntax
			}
			ids = append(ids, uint(id))
		}
	}
	return ids, nil
}

func respondNoFile(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "NO_FILE",
			"message": "No file uploaded",
		},
	})
}
