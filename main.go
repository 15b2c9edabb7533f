package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"reelhive/controllers"
	"reelhive/intializers"
	"reelhive/realtime"
	"reelhive/routes"
)

func init() {
	intializers.LoadEnvVariables()
}

func main() {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://127.0.0.1:5500", "http://localhost:3000"}, // Add allowed origins
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true, // Allow cookies if needed
	}))

	registry := realtime.NewRegistry()
	hub := realtime.NewHub(registry)

	routes.AuthRouter(router)
	routes.UserRouter(router, hub)
	routes.VideoRouter(router, hub)
	routes.CommentRouter(router, hub)
	routes.MessageRouter(router, hub)
	routes.StoryRouter(router, hub)
	routes.ChatRouter(router, registry, hub)

	router.GET("/uploads/:file_id", controllers.GetFile)
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	PORT := os.Getenv("PORT")

	if err := router.Run(":" + PORT); err != nil {
		log.Fatal(err)
	}
}
