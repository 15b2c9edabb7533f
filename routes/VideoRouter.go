package routes

import (
	"github.com/gin-gonic/gin"

	"reelhive/controllers"
	"reelhive/middlewares"
	"reelhive/realtime"
)

func VideoRouter(incomingRoutes *gin.Engine, hub *realtime.Hub) {
	vc := controllers.NewVideoController(hub)

	videos := incomingRoutes.Group("/api/videos")
	videos.GET("/feed", middlewares.OptionalAuth, vc.GetFeed)
	videos.GET("/trending", middlewares.OptionalAuth, vc.GetTrending)
	videos.POST("/upload", middlewares.RequireAuth, vc.UploadVideo)
	videos.GET("/:video_id", middlewares.OptionalAuth, vc.GetVideo)
	videos.POST("/:video_id/like", middlewares.RequireAuth, vc.ToggleLike)
	videos.POST("/:video_id/share", middlewares.RequireAuth, vc.ShareVideo)
	videos.DELETE("/:video_id", middlewares.RequireAuth, vc.DeleteVideo)
}
