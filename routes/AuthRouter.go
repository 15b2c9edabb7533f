package routes

import (
	"github.com/gin-gonic/gin"

	"reelhive/controllers"
	"reelhive/middlewares"
)

func AuthRouter(incomingRoutes *gin.Engine) {
	auth := incomingRoutes.Group("/api/auth")
	auth.POST("/register", controllers.Register)
	auth.POST("/login", controllers.Login)
	auth.POST("/logout", middlewares.RequireAuth, controllers.Logout)
	auth.GET("/me", middlewares.RequireAuth, controllers.Me)
	auth.GET("/verify", middlewares.RequireAuth, controllers.VerifyToken)
}
