package api

import (
	"snapbooth/service"
	"snapbooth/store"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, cs *service.CameraService, bs *service.BoothService, st *store.Store, wsHub *WebSocketHub) {
	// Enable CORS
	router.Use(CORSMiddleware())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		cameras := api.Group("/cameras")
		{
			cameras.GET("", func(c *gin.Context) {
				ListCameras(c, cs)
			})
			cameras.GET("/support", func(c *gin.Context) {
				CheckSupport(c, cs)
			})
			cameras.POST("/:index/capture", func(c *gin.Context) {
				Capture(c, cs)
			})
			cameras.POST("/:index/save", func(c *gin.Context) {
				CaptureAndSave(c, cs)
			})
		}

		events := api.Group("/events")
		{
			events.GET("", func(c *gin.Context) {
				ListEvents(c, st)
			})
			events.POST("", func(c *gin.Context) {
				CreateEvent(c, st, wsHub)
			})
			events.GET("/:id", func(c *gin.Context) {
				GetEvent(c, st)
			})
			events.PUT("/:id", func(c *gin.Context) {
				UpdateEvent(c, st, wsHub)
			})
			events.DELETE("/:id", func(c *gin.Context) {
				DeleteEvent(c, st, wsHub)
			})
			events.GET("/:id/photos", func(c *gin.Context) {
				ListEventPhotos(c, st)
			})
			events.POST("/:id/photos", func(c *gin.Context) {
				AddEventPhoto(c, st)
			})
			events.POST("/:id/capture", func(c *gin.Context) {
				CaptureToEvent(c, bs)
			})
			events.GET("/:id/shares", func(c *gin.Context) {
				ListEventShares(c, st)
			})
			events.GET("/:id/shares/stats", func(c *gin.Context) {
				EventShareStats(c, st)
			})
		}

		shares := api.Group("/shares")
		{
			shares.POST("", func(c *gin.Context) {
				CreateShare(c, st)
			})
			shares.PUT("/:id/status", func(c *gin.Context) {
				UpdateShareStatus(c, st)
			})
		}
	}

	// WebSocket route
	router.GET("/ws", func(c *gin.Context) {
		HandleWebSocket(wsHub, c)
	})
}

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
