package routes

import (
	"github.com/gin-gonic/gin"
)

// SetupWebRoutes thiết lập web routes
func SetupWebRoutes(router *gin.Engine) {
	web := router.Group("/")
	{
		web.GET("/", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"message": "Location Cleaner Service",
				"version": "1.0.0",
				"docs":    "/docs",
			})
		})

		// API documentation
		web.GET("/docs", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"api": "Location Cleaner API v1",
				"endpoints": map[string]string{
					"regions":     "GET /v1/regions",
					"identify":    "POST /v1/regions/identify",
					"clean":       "POST /v1/locations/clean",
					"batch":       "POST /v1/locations/jobs",
					"job_status":  "GET /v1/locations/jobs/:jobID/status",
					"job_results": "GET /v1/locations/jobs/:jobID/results",
					"dates":       "POST /v1/dates/clean",
					"health":      "GET /v1/health",
				},
			})
		})
	}
}
