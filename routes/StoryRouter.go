package routes

import (
	"github.com/gin-gonic/gin"

	"reelhive/controllers"
	"reelhive/middlewares"
	"reelhive/realtime"
)

func StoryRouter(incomingRoutes *gin.Engine, hub *realtime.Hub) {
	sc := controllers.NewStoryController(hub)

	stories := incomingRoutes.Group("/api/stories")
	stories.GET("/public", middlewares.OptionalAuth, sc.GetPublicStories)
	stories.POST("", middlewares.RequireAuth, sc.CreateStory)
	stories.GET("/me", middlewares.RequireAuth, sc.GetMyStories)
	stories.GET("/following", middlewares.RequireAuth, sc.GetFollowingStories)
	stories.POST("/:story_id/view", middlewares.RequireAuth, sc.ViewStory)
	stories.GET("/:story_id/viewers", middlewares.RequireAuth, sc.GetStoryViewers)
	stories.POST("/:story_id/highlight", middlewares.RequireAuth, sc.HighlightStory)
	stories.POST("/:story_id/react", middlewares.RequireAuth, sc.ReactToStory)
	stories.DELETE("/:story_id", middlewares.RequireAuth, sc.DeleteStory)
}
