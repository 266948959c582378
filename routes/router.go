package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/shower-configurator-api/config"
	"github.com/kendall-kelly/shower-configurator-api/controllers"
	"github.com/kendall-kelly/shower-configurator-api/middleware"
	"go.uber.org/zap"
)

// NewRouter wires every endpoint of the API. Reads are public; anything that mutates the
// catalog sits behind the admin token check.
func NewRouter(cfg *config.Config, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(cors.New(corsConfig(cfg)))

	router.GET("/uploads/:filename", controllers.GetUploadedImage)

	api := router.Group("/api")
	{
		api.GET("/health", controllers.HealthCheck)
		api.GET("/database/status", controllers.DatabaseStatus)
		api.POST("/login", controllers.Login)

		api.GET("/prices", controllers.GetPrices)

		api.GET("/shower-types", controllers.ListShowerTypes)
		api.GET("/shower-types/:id", controllers.GetShowerType)

		api.GET("/models", controllers.ListModels)
		api.GET("/models/:id", controllers.GetModel)
		api.GET("/models/:id/quote", controllers.QuoteModel)

		api.GET("/glass-types", controllers.ListGlassTypes)
		api.GET("/glass-thickness", controllers.ListGlassThicknesses)
		api.GET("/glass-thicknesses", controllers.ListGlassThicknesses)
		api.GET("/finishes", controllers.ListFinishes)
		api.GET("/hardware-types", controllers.ListHardwareTypes)
		api.GET("/seal-types", controllers.ListSealTypes)

		api.GET("/glass-pricing", controllers.ListGlassPricing)
		api.GET("/hardware-pricing", controllers.ListHardwarePricing)
		api.GET("/seal-pricing", controllers.ListSealPricing)

		api.GET("/model-glass-components/:model_id", controllers.ListGlassComponents)
		api.GET("/model-hardware-components/:model_id", controllers.ListHardwareComponents)
		api.GET("/model-seal-components/:model_id", controllers.ListSealComponents)

		api.GET("/addons", controllers.ListAddons)
		api.GET("/addons/:id", controllers.GetAddon)
		api.GET("/gallery", controllers.ListGallery)
	}

	admin := api.Group("")
	admin.Use(middleware.EnsureValidToken(cfg))
	{
		admin.POST("/logout", controllers.Logout)
		admin.POST("/upload-image", controllers.UploadImage)

		admin.POST("/shower-types", controllers.CreateShowerType)
		admin.PUT("/shower-types/:id", controllers.UpdateShowerType)
		admin.DELETE("/shower-types/:id", controllers.DeleteShowerType)
		admin.POST("/shower-types/:id/upload-image", controllers.UploadShowerTypeImage)

		admin.POST("/models", controllers.CreateModel)
		admin.PUT("/models/:id", controllers.UpdateModel)
		admin.DELETE("/models/:id", controllers.DeleteModel)

		admin.POST("/glass-types", controllers.CreateGlassType)
		admin.PUT("/glass-types/:id", controllers.UpdateGlassType)
		admin.DELETE("/glass-types/:id", controllers.DeleteGlassType)

		admin.POST("/glass-thickness", controllers.CreateGlassThickness)
		admin.PUT("/glass-thickness/:id", controllers.UpdateGlassThickness)
		admin.DELETE("/glass-thickness/:id", controllers.DeleteGlassThickness)

		admin.POST("/finishes", controllers.CreateFinish)
		admin.PUT("/finishes/:id", controllers.UpdateFinish)
		admin.DELETE("/finishes/:id", controllers.DeleteFinish)

		admin.POST("/hardware-types", controllers.CreateHardwareType)
		admin.PUT("/hardware-types/:id", controllers.UpdateHardwareType)
		admin.DELETE("/hardware-types/:id", controllers.DeleteHardwareType)

		admin.POST("/seal-types", controllers.CreateSealType)
		admin.PUT("/seal-types/:id", controllers.UpdateSealType)
		admin.DELETE("/seal-types/:id", controllers.DeleteSealType)

		admin.POST("/glass-pricing", controllers.CreateGlassPricing)
		admin.PUT("/glass-pricing/:id", controllers.UpdateGlassPricing)
		admin.DELETE("/glass-pricing/:id", controllers.DeleteGlassPricing)

		admin.POST("/hardware-pricing", controllers.CreateHardwarePricing)
		admin.PUT("/hardware-pricing/:id", controllers.UpdateHardwarePricing)
		admin.DELETE("/hardware-pricing/:id", controllers.DeleteHardwarePricing)

		admin.POST("/seal-pricing", controllers.CreateSealPricing)
		admin.PUT("/seal-pricing/:id", controllers.UpdateSealPricing)
		admin.DELETE("/seal-pricing/:id", controllers.DeleteSealPricing)

		admin.POST("/model-glass-components", controllers.AddGlassComponent)
		admin.PUT("/model-glass-components/:id", controllers.UpdateGlassComponent)
		admin.DELETE("/model-glass-components/:id", controllers.DeleteGlassComponent)

		admin.POST("/model-hardware-components", controllers.AddHardwareComponent)
		admin.PUT("/model-hardware-components/:id", controllers.UpdateHardwareComponent)
		admin.DELETE("/model-hardware-components/:id", controllers.DeleteHardwareComponent)

		admin.POST("/model-seal-components", controllers.AddSealComponent)
		admin.PUT("/model-seal-components/:id", controllers.UpdateSealComponent)
		admin.DELETE("/model-seal-components/:id", controllers.DeleteSealComponent)

		admin.POST("/addons", controllers.CreateAddon)
		admin.PUT("/addons/:id", controllers.UpdateAddon)
		admin.DELETE("/addons/:id", controllers.DeleteAddon)

		admin.POST("/gallery", controllers.CreateGalleryImage)
		admin.PUT("/gallery/:id", controllers.UpdateGalleryImage)
		admin.DELETE("/gallery/:id", controllers.DeleteGalleryImage)
	}

	return router
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}

	if len(cfg.CORSAllowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
		return corsCfg
	}
	for _, origin := range cfg.CORSAllowedOrigins {
		if origin == "*" {
			corsCfg.AllowAllOrigins = true
			return corsCfg
		}
	}
	corsCfg.AllowOrigins = cfg.CORSAllowedOrigins
	return corsCfg
}
