package controllers

import "github.com/gin-gonic/gin"

// ListGlassTypes handles GET /api/glass-types
func ListGlassTypes(c *gin.Context) {
	handleList(c, "list glass types", catalogService().ListGlassTypes)
}

// CreateGlassType handles POST /api/glass-types
func CreateGlassType(c *gin.Context) {
	handleCreate(c, "create glass type", catalogService().CreateGlassType)
}

// UpdateGlassType handles PUT /api/glass-types/:id
func UpdateGlassType(c *gin.Context) {
	handleUpdate(c, "update glass type", catalogService().UpdateGlassType)
}

// DeleteGlassType handles DELETE /api/glass-types/:id[?force=true]
func DeleteGlassType(c *gin.Context) {
	handleForceDelete(c, "delete glass type", catalogService().DeleteGlassType)
}

// ListGlassThicknesses handles GET /api/glass-thickness and /api/glass-thicknesses
func ListGlassThicknesses(c *gin.Context) {
	handleList(c, "list glass thicknesses", catalogService().ListGlassThicknesses)
}

// CreateGlassThickness handles POST /api/glass-thickness
func CreateGlassThickness(c *gin.Context) {
	handleCreate(c, "create glass thickness", catalogService().CreateGlassThickness)
}

// UpdateGlassThickness handles PUT /api/glass-thickness/:id
func UpdateGlassThickness(c *gin.Context) {
	handleUpdate(c, "update glass thickness", catalogService().UpdateGlassThickness)
}

// DeleteGlassThickness handles DELETE /api/glass-thickness/:id[?force=true]
func DeleteGlassThickness(c *gin.Context) {
	handleForceDelete(c, "delete glass thickness", catalogService().DeleteGlassThickness)
}

// ListFinishes handles GET /api/finishes
func ListFinishes(c *gin.Context) {
	handleList(c, "list finishes", catalogService().ListFinishes)
}

// CreateFinish handles POST /api/finishes
func CreateFinish(c *gin.Context) {
	handleCreate(c, "create finish", catalogService().CreateFinish)
}

// UpdateFinish handles PUT /api/finishes/:id
func UpdateFinish(c *gin.Context) {
	handleUpdate(c, "update finish", catalogService().UpdateFinish)
}

// DeleteFinish handles DELETE /api/finishes/:id[?force=true]
func DeleteFinish(c *gin.Context) {
	handleForceDelete(c, "delete finish", catalogService().DeleteFinish)
}

// ListHardwareTypes handles GET /api/hardware-types
func ListHardwareTypes(c *gin.Context) {
	handleList(c, "list hardware types", catalogService().ListHardwareTypes)
}

// CreateHardwareType handles POST /api/hardware-types
func CreateHardwareType(c *gin.Context) {
	handleCreate(c, "create hardware type", catalogService().CreateHardwareType)
}

// UpdateHardwareType handles PUT /api/hardware-types/:id
func UpdateHardwareType(c *gin.Context) {
	handleUpdate(c, "update hardware type", catalogService().UpdateHardwareType)
}

// DeleteHardwareType handles DELETE /api/hardware-types/:id[?force=true]
func DeleteHardwareType(c *gin.Context) {
	handleForceDelete(c, "delete hardware type", catalogService().DeleteHardwareType)
}

// ListSealTypes handles GET /api/seal-types
func ListSealTypes(c *gin.Context) {
	handleList(c, "list seal types", catalogService().ListSealTypes)
}

// CreateSealType handles POST /api/seal-types
func CreateSealType(c *gin.Context) {
	handleCreate(c, "create seal type", catalogService().CreateSealType)
}

// UpdateSealType handles PUT /api/seal-types/:id
func UpdateSealType(c *gin.Context) {
	handleUpdate(c, "update seal type", catalogService().UpdateSealType)
}

// DeleteSealType handles DELETE /api/seal-types/:id[?force=true]
func DeleteSealType(c *gin.Context) {
	handleForceDelete(c, "delete seal type", catalogService().DeleteSealType)
}
