package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	v1 "github.com/nulzo/project-tracker-api/internal/server/v1"
	"github.com/nulzo/project-tracker-api/pkg/api"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) SetupRoutes() {
	health := v1.NewHealthHandler(s.repo, s.version, s.logger)
	s.router.GET("/health", health.Health)
	s.router.GET("/readyz", health.Ready)

	if s.config.Metrics.Enabled {
		s.router.GET(s.config.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	// static sub-paths are registered ahead of :id
	clients := v1.NewClientHandler(s.repo.Clients(), s.logger)
	{
		g := s.router.Group("/clients")
		g.GET("", clients.List)
		g.GET("/count", clients.Count)
		g.GET("/:id", clients.Get)
		g.POST("", clients.Create)
		g.PUT("/:id", clients.Update)
		g.DELETE("/:id", clients.Delete)
	}

	projects := v1.NewProjectHandler(s.repo.Projects(), s.logger)
	{
		g := s.router.Group("/projects")
		g.GET("", projects.List)
		g.GET("/count", projects.Count)
		g.GET("/recent", projects.Recent)
		g.GET("/client/:client_id", projects.ListByClient)
		g.GET("/:id", projects.Get)
		g.POST("", projects.Create)
		g.PUT("/:id", projects.Update)
		g.DELETE("/:id", projects.Delete)
	}

	tasks := v1.NewTaskHandler(s.repo.Tasks(), s.logger)
	{
		g := s.router.Group("/tasks")
		g.GET("", tasks.List)
		g.GET("/count", tasks.Count)
		g.GET("/overview", tasks.Overview)
		g.GET("/project/:project_id", tasks.ListByProject)
		g.GET("/:id", tasks.Get)
		g.POST("", tasks.Create)
		g.PUT("/:id", tasks.Update)
		g.DELETE("/:id", tasks.Delete)
	}

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Not Found"})
	})
}
