package middleware

import (
	"go-payroll/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextLogger memasang logger per request (request_id) ke context standar
// agar service bisa mengambilnya lewat contextutil tanpa tahu Gin.
// Dipasang setelah RequestID.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := contextutil.GetRequestID(c.Request.Context())

		reqLogger := logger.With(zap.String("request_id", rid))

		ctx := contextutil.WithLogger(c.Request.Context(), reqLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// enrichLogger menambahkan identitas pemanggil ke logger request setelah autentikasi.
func enrichLogger(c *gin.Context, userID, companyID string) {
	ctx := c.Request.Context()
	l := contextutil.GetLogger(ctx, zap.L()).With(
		zap.String("user_id", userID),
		zap.String("company_id", companyID),
	)
	c.Request = c.Request.WithContext(contextutil.WithLogger(ctx, l))
}
