package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nutridiary/backend/internal/api"
	"github.com/nutridiary/backend/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(
	foodHandler *api.FoodHandler,
	recipeHandler *api.RecipeHandler,
	diaryHandler *api.DiaryHandler,
) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	root := router.Group("/api")
	foodHandler.RegisterRoutes(root)
	recipeHandler.RegisterRoutes(root)
	diaryHandler.RegisterRoutes(root)

	return router
}
