package server

import (
	"github.com/agentbridge/portal/internal/server/middleware"
	"github.com/agentbridge/portal/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api", middleware.AuthMiddleware)

	// Workflow routes
	apiRoutes.GET("/workflows", routes.GetWorkflowsHandler, middleware.RequireAnyPermission("workflow.view", "workflow.view:all"))
	apiRoutes.POST("/workflows", routes.CreateWorkflowHandler, middleware.RequirePermission("workflow.create"))
	apiRoutes.GET("/workflows/node-options", routes.GetNodeOptionsHandler, middleware.RequireAnyPermission("workflow.view", "workflow.list:options"))
	apiRoutes.GET("/workflows/:id", routes.GetWorkflowHandler, middleware.RequireAnyPermission("workflow.view", "workflow.view:all"))
	apiRoutes.PUT("/workflows/:id", routes.UpdateWorkflowHandler, middleware.RequirePermission("workflow.update"))
	apiRoutes.DELETE("/workflows/:id", routes.DeleteWorkflowHandler, middleware.RequirePermission("workflow.delete"))
	apiRoutes.POST("/workflows/:agent_id/test", routes.TestWorkflowHandler, middleware.RequirePermission("workflow.test"))
}
