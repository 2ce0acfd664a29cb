package http

import (
	"github.com/gin-gonic/gin"

	"github.com/nutrifactor/backend/config"
)

// SetupRouter creates and configures the Gin router.
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/foods/:fdcID", handler.GetFood)

		user := v1.Group("/users/:userID")
		{
			user.GET("/search", handler.SearchFoods)

			log := user.Group("/log")
			{
				log.GET("", handler.ListLog)
				log.POST("", handler.AddLogItem)
				log.PATCH("/:itemID", handler.ChangeAmount)
				log.DELETE("/:itemID", handler.RemoveLogItem)
				log.DELETE("", handler.ClearLog)
				log.GET("/totals", handler.LogTotals)
				log.GET("/export", handler.ExportLog)
			}

			user.POST("/custom-foods", handler.CreateCustomFood)
			user.GET("/custom-foods", handler.ListCustomFoods)
			user.DELETE("/custom-foods/:foodID", handler.DeleteCustomFood)

			user.PUT("/favorites", handler.SetFavorite)
			user.GET("/favorites", handler.ListFavorites)

			user.PUT("/profile", handler.SaveProfile)
			user.GET("/energy", handler.Energy)

			user.PUT("/draft", handler.SaveDraft)
			user.GET("/draft", handler.GetDraft)

			user.PUT("/credential", handler.SaveCredential)
			user.GET("/credential", handler.GetCredential)
		}
	}

	return router
}
