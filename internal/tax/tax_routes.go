package tax

import (
	"go-payroll/internal/middleware"
	"go-payroll/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	taxes := r.Group("/tax")
	taxes.Use(middleware.AuthMiddleware())
	{
		taxes.GET("/slabs", middleware.RBACAuthorize(rbacService, "tax_config", "read"), handler.GetSlabs)
		taxes.POST("/slabs", middleware.RBACAuthorize(rbacService, "tax_config", "create"), handler.CreateSlab)
		taxes.PUT("/slabs/:id", middleware.RBACAuthorize(rbacService, "tax_config", "update"), handler.UpdateSlab)
		taxes.DELETE("/slabs/:id", middleware.RBACAuthorize(rbacService, "tax_config", "delete"), handler.DeleteSlab)

		taxes.GET("/exemptions", middleware.RBACAuthorize(rbacService, "tax_config", "read"), handler.GetExemptions)
		taxes.POST("/exemptions", middleware.RBACAuthorize(rbacService, "tax_config", "create"), handler.CreateExemption)
		taxes.DELETE("/exemptions/:id", middleware.RBACAuthorize(rbacService, "tax_config", "delete"), handler.DeleteExemption)

		taxes.GET("/minimum-limit", middleware.RBACAuthorize(rbacService, "tax_config", "read"), handler.GetMinimumLimit)
		taxes.PUT("/minimum-limit", middleware.RBACAuthorize(rbacService, "tax_config", "update"), handler.SetMinimumLimit)
	}
}
