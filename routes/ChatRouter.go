package routes

import (
	"github.com/gin-gonic/gin"

	"reelhive/controllers"
	"reelhive/middlewares"
	"reelhive/realtime"
)

func ChatRouter(incomingRoutes *gin.Engine, registry *realtime.Registry, hub *realtime.Hub) {
	s := controllers.NewChatServer(registry, hub)
	incomingRoutes.GET("/ws", middlewares.RequireAuth, s.HandleWS)
}
