package controllers

import (
	"context"

	"github.com/gin-gonic/gin"
)

// listByModel answers GET .../:model_id with the components of that model
func listByModel[Out any](c *gin.Context, action string, list func(context.Context, uint) (Out, error)) {
	modelID, ok := parseID(c, "model_id")
	if !ok {
		return
	}
	handleList(c, action, func(ctx context.Context) (Out, error) {
		return list(ctx, modelID)
	})
}

// ListGlassComponents handles GET /api/model-glass-components/:model_id
func ListGlassComponents(c *gin.Context) {
	listByModel(c, "list glass components", compositionService().ListGlassComponents)
}

// AddGlassComponent handles POST /api/model-glass-components
func AddGlassComponent(c *gin.Context) {
	handleCreate(c, "add glass component", compositionService().AddGlassComponent)
}

// UpdateGlassComponent handles PUT /api/model-glass-components/:id
func UpdateGlassComponent(c *gin.Context) {
	handleUpdate(c, "update glass component", compositionService().UpdateGlassComponent)
}

// DeleteGlassComponent handles DELETE /api/model-glass-components/:id
func DeleteGlassComponent(c *gin.Context) {
	handleDelete(c, "delete glass component", compositionService().DeleteGlassComponent)
}

// ListHardwareComponents handles GET /api/model-hardware-components/:model_id
func ListHardwareComponents(c *gin.Context) {
	listByModel(c, "list hardware components", compositionService().ListHardwareComponents)
}

// AddHardwareComponent handles POST /api/model-hardware-components
func AddHardwareComponent(c *gin.Context) {
	handleCreate(c, "add hardware component", compositionService().AddHardwareComponent)
}

// UpdateHardwareComponent handles PUT /api/model-hardware-components/:id
func UpdateHardwareComponent(c *gin.Context) {
	handleUpdate(c, "update hardware component", compositionService().UpdateHardwareComponent)
}

// DeleteHardwareComponent handles DELETE /api/model-hardware-components/:id
func DeleteHardwareComponent(c *gin.Context) {
	handleDelete(c, "delete hardware component", compositionService().DeleteHardwareComponent)
}

// ListSealComponents handles GET /api/model-seal-components/:model_id
func ListSealComponents(c *gin.Context) {
	listByModel(c, "list seal components", compositionService().ListSealComponents)
}

// AddSealComponent handles POST /api/model-seal-components
func AddSealComponent(c *gin.Context) {
	handleCreate(c, "add seal component", compositionService().AddSealComponent)
}

// UpdateSealComponent handles PUT /api/model-seal-components/:id
func UpdateSealComponent(c *gin.Context) {
	handleUpdate(c, "update seal component", compositionService().UpdateSealComponent)
}

// DeleteSealComponent handles DELETE /api/model-seal-components/:id
func DeleteSealComponent(c *gin.Context) {
	handleDelete(c, "delete seal component", compositionService().DeleteSealComponent)
}
