package payroll

import (
	"go-payroll/internal/middleware"
	"go-payroll/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	slips := r.Group("/salary-slips")
	slips.Use(middleware.AuthMiddleware(), middleware.RateLimitByUser(rate.Limit(10), 20))
	{
		slips.GET("", middleware.RBACAuthorize(rbacService, "salary_slip", "read"), handler.GetAll)
		slips.GET("/:id", middleware.RBACAuthorize(rbacService, "salary_slip", "read"), handler.GetByID)
		slips.GET("/:id/verify", middleware.RBACAuthorize(rbacService, "salary_slip", "read"), handler.Verify)
		slips.GET("/:id/payslip", middleware.RBACAuthorize(rbacService, "salary_slip", "read"), handler.DownloadPayslip)
		if redisClient != nil {
			slips.POST(
				"",
				middleware.Idempotency(redisClient),
				middleware.RBACAuthorize(rbacService, "salary_slip", "create"),
				handler.Generate,
			)
		} else {
			slips.POST("", middleware.RBACAuthorize(rbacService, "salary_slip", "create"), handler.Generate)
		}
		slips.POST("/bulk", middleware.RBACAuthorize(rbacService, "salary_slip", "create"), handler.BulkGenerate)
		slips.POST("/:id/mark-paid", middleware.RBACAuthorize(rbacService, "salary_slip", "pay"), handler.MarkPaid)
		slips.DELETE("/:id", middleware.RBACAuthorize(rbacService, "salary_slip", "delete"), handler.Delete)
	}
}
