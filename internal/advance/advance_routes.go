package advance

import (
	"go-payroll/internal/middleware"
	"go-payroll/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	advances := r.Group("/salary-advances")
	advances.Use(middleware.AuthMiddleware())
	{
		advances.GET("", middleware.RBACAuthorize(rbacService, "salary_advance", "read"), handler.GetAll)
		advances.GET("/:id", middleware.RBACAuthorize(rbacService, "salary_advance", "read"), handler.GetByID)
		advances.POST("", middleware.RBACAuthorize(rbacService, "salary_advance", "create"), handler.Create)
		advances.POST("/:id/cancel", middleware.RBACAuthorize(rbacService, "salary_advance", "update"), handler.Cancel)
	}
}
