package routes

import (
	"github.com/gin-gonic/gin"

	"reelhive/controllers"
	"reelhive/middlewares"
	"reelhive/realtime"
)

func MessageRouter(incomingRoutes *gin.Engine, hub *realtime.Hub) {
	mc := controllers.NewMessageController(hub)

	messages := incomingRoutes.Group("/api/messages", middlewares.RequireAuth)
	messages.GET("/conversations", mc.GetConversations)
	messages.GET("/conversation/:user_id", mc.GetConversation)
	messages.POST("", mc.SendMessage)
	messages.POST("/media", mc.SendMediaMessage)
	messages.POST("/:message_id/react", mc.ReactToMessage)
	messages.PUT("/:message_id", mc.EditMessage)
	messages.DELETE("/:message_id", mc.DeleteMessage)
}
