package routes

import (
	"github.com/gin-gonic/gin"

	"reelhive/controllers"
	"reelhive/middlewares"
	"reelhive/realtime"
)

func CommentRouter(incomingRoutes *gin.Engine, hub *realtime.Hub) {
	cc := controllers.NewCommentController(hub)

	comments := incomingRoutes.Group("/api/comments")
	comments.GET("/video/:video_id", middlewares.OptionalAuth, cc.GetComments)
	comments.POST("/video/:video_id", middlewares.RequireAuth, cc.AddComment)
	comments.GET("/:comment_id/replies", middlewares.OptionalAuth, cc.GetReplies)
	comments.POST("/:comment_id/like", middlewares.RequireAuth, cc.ToggleCommentLike)
	comments.DELETE("/:comment_id", middlewares.RequireAuth, cc.DeleteComment)
}
