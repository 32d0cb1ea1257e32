package router

import (
	"net/http"

	"communication-service/src/config"
	"communication-service/src/controller"
	"communication-service/src/middleware"
	"communication-service/src/service"

	_ "communication-service/src/docs"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter wires the HTTP surface. Routes fall into two groups: the
// authenticated app surface (create/end/list, activation) and the public
// surface used by pollers, the unload beacon (which cannot set headers)
// and external sweep schedulers.
func NewRouter(cfg *config.GlobalConfig, sessions *service.SessionService, visitors *service.VisitorService) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.CORSMiddleware())

	sessionController := controller.NewSessionController(sessions)
	visitorController := controller.NewVisitorController(visitors)

	authorized := r.Group("/", middleware.AuthRequiredMiddleware(cfg.JWTSecret))
	authorized.POST("/sessions", sessionController.CreateSession)
	authorized.POST("/sessions/:id/activate", sessionController.ActivateSession)
	authorized.POST("/sessions/:id/end", sessionController.EndSession)
	authorized.GET("/cases/:caseId/sessions", sessionController.ListCaseSessions)

	r.GET("/sessions/:id/status", sessionController.GetSessionStatus)
	r.POST("/session-cleanup", sessionController.EmergencyCleanup)
	r.GET("/session-reclaim", sessionController.ReclaimStaleSessions)
	r.POST("/session-reclaim", sessionController.ReclaimStaleSessions)

	r.POST("/visitors/track", visitorController.Track)
	r.POST("/visitors/end", visitorController.End)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
