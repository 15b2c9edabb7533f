package routes

import (
	"github.com/gin-gonic/gin"

	"reelhive/controllers"
	"reelhive/middlewares"
	"reelhive/realtime"
)

func UserRouter(incomingRoutes *gin.Engine, hub *realtime.Hub) {
	uc := controllers.NewUserController(hub)

	users := incomingRoutes.Group("/api/users")
	users.GET("/search", middlewares.RequireAuth, uc.SearchUsers)
	users.GET("/theme", middlewares.RequireAuth, uc.GetTheme)
	users.PUT("/theme", middlewares.RequireAuth, uc.UpdateTheme)
	users.PUT("/profile", middlewares.RequireAuth, uc.UpdateProfile)
	users.GET("/profile/:username", middlewares.OptionalAuth, uc.GetProfile)
	users.POST("/:user_id/follow", middlewares.RequireAuth, uc.ToggleFollow)
	users.GET("/:user_id/followers", middlewares.OptionalAuth, uc.GetFollowers)
	users.GET("/:user_id/following", middlewares.OptionalAuth, uc.GetFollowing)
}
