package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/location-cleaner/app/controllers"
	"github.com/location-cleaner/helpers/utils"
)

// SetupAPIRoutes thiết lập tất cả API routes
func SetupAPIRoutes(router *gin.Engine, locationController *controllers.LocationController, adminController *controllers.AdminController) {
	// API v1 group
	v1 := router.Group("/v1")
	{
		regions := v1.Group("/regions")
		{
			regions.GET("", locationController.ListRegions)
			regions.POST("/identify", locationController.IdentifyRegion)
		}

		locations := v1.Group("/locations")
		{
			locations.POST("/clean", locationController.CleanLocation)
			locations.POST("/jobs", locationController.BatchClean)
			locations.GET("/jobs/:jobID/status", locationController.GetJobStatus)
			locations.GET("/jobs/:jobID/results", locationController.GetJobResults)
		}

		v1.POST("/dates/clean", locationController.CleanDate)

		// Admin routes
		admin := v1.Group("/admin")
		{
			admin.POST("/cache/invalidate", adminController.InvalidateCache)
			admin.GET("/stats", adminController.GetStats)
			admin.GET("/unmatched", adminController.ListUnmatched)
			admin.POST("/unmatched/resolve", adminController.ResolveUnmatched)
		}

		// Health check route
		v1.GET("/health", locationController.HealthCheck)
	}
}

// SetupHealthRoutes thiết lập health check routes
func SetupHealthRoutes(router *gin.Engine, locationController *controllers.LocationController) {
	router.GET("/health", locationController.HealthCheck)
	router.GET("/ready", locationController.HealthCheck)
	router.GET("/live", locationController.HealthCheck)
}

// SetupAllRoutes thiết lập tất cả routes
func SetupAllRoutes(router *gin.Engine, locationController *controllers.LocationController, adminController *controllers.AdminController) {
	setupMiddleware(router)

	SetupWebRoutes(router)
	SetupHealthRoutes(router, locationController)
	SetupAPIRoutes(router, locationController, adminController)

	// 404 handler
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error":  "Route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})
}

// setupMiddleware thiết lập middleware cho router
func setupMiddleware(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(requestID())
}

// requestID gắn X-Request-ID cho mỗi request (giữ nguyên nếu client gửi lên)
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = utils.GenerateShortID()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}
