package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/HarshwardhanZalte/AIDRA/handlers"
	"github.com/HarshwardhanZalte/AIDRA/orchestrator"
	"github.com/HarshwardhanZalte/AIDRA/sessions"
)

func SetupRouter(orc *orchestrator.Orchestrator, store sessions.Store) *gin.Engine {
	r := gin.Default()

	r.GET("/health", handlers.Health)

	// Inject the orchestrator and store into handlers
	api := r.Group("/api/aidra")
	{
		api.POST("/analyze", func(c *gin.Context) {
			handlers.AnalyzeImage(c, orc)
		})
		api.GET("/session/:id", func(c *gin.Context) {
			handlers.GetSession(c, store)
		})
	}

	return r
}
