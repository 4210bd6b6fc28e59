package component

import (
	"go-payroll/internal/middleware"
	"go-payroll/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	components := r.Group("/payroll-components")
	components.Use(middleware.AuthMiddleware())
	{
		components.GET("", middleware.RBACAuthorize(rbacService, "payroll_component", "read"), handler.GetAll)
		components.GET("/:id", middleware.RBACAuthorize(rbacService, "payroll_component", "read"), handler.GetByID)
		components.POST("", middleware.RBACAuthorize(rbacService, "payroll_component", "create"), handler.Create)
		components.PUT("/:id", middleware.RBACAuthorize(rbacService, "payroll_component", "update"), handler.Update)
		components.DELETE("/:id", middleware.RBACAuthorize(rbacService, "payroll_component", "delete"), handler.Delete)
	}
}
