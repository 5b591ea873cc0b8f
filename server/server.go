// Package server assembles the HTTP router of the changelog API.
package server

import (
	"net/http"

	"changelog-api/config"
	"changelog-api/handlers"
	"changelog-api/helper"
	"changelog-api/logger"
	"changelog-api/metrics"
	"changelog-api/middleware"
	"changelog-api/repositories"
	"changelog-api/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// Deps are the shared resources the router is built from.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Logger   *logger.Logger
	Registry *prometheus.Registry
}

// New wires repositories, services and handlers into a gin engine.
func New(deps Deps) *gin.Engine {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	registry := deps.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	m := metrics.New(registry)
	httpHelper := helper.NewHTTPHelper()

	// Initialize repositories
	projectRepo := repositories.NewProjectRepository(deps.DB)
	versionRepo := repositories.NewVersionRepository(deps.DB)
	changeRepo := repositories.NewChangeRepository(deps.DB)

	// Initialize services
	projectService := services.NewProjectService(projectRepo, deps.Config.JWT)
	versionService := services.NewVersionService(versionRepo, m)
	changeService := services.NewChangeService(changeRepo)

	// Initialize handlers
	projectHandler := handlers.NewProjectHandler(projectService, httpHelper)
	versionHandler := handlers.NewVersionHandler(versionService, deps.Config.Pagination, httpHelper)
	changeHandler := handlers.NewChangeHandler(changeService, httpHelper)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log.Component("http"), m))
	router.Use(middleware.CORS())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	v1 := router.Group("/api/v1")
	{
		// Project routes (public)
		projects := v1.Group("/projects")
		{
			projects.POST("", projectHandler.Register)
			projects.POST("/login", projectHandler.Login)
		}

		// Protected routes
		protected := v1.Group("/")
		protected.Use(middleware.AuthMiddleware(deps.Config.JWT, httpHelper))
		{
			protected.GET("/project", projectHandler.GetProject)
			protected.DELETE("/project", projectHandler.DeleteProject)

			versions := protected.Group("/versions")
			{
				versions.POST("", versionHandler.CreateVersion)
				versions.GET("", versionHandler.GetVersions)
				versions.DELETE("/:number", versionHandler.DeleteVersion)
				versions.PATCH("/:number", versionHandler.ReleaseVersion)
				versions.GET("/:number/changes", changeHandler.GetChanges)
				versions.POST("/:number/changes", changeHandler.CreateChange)
				versions.DELETE("/:number/changes/:change_id", changeHandler.DeleteChange)
				versions.PATCH("/:number/changes/:change_id", changeHandler.MoveChange)
			}
		}
	}

	return router
}
