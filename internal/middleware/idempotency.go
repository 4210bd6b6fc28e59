package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const idempotencyLockTTL = 30 * time.Second

func IdempotencyCacheKey(path, userID, key string) string {
	return fmt.Sprintf("idemp:%s:%s:%s", path, userID, key)
}

// Idempotency memutar ulang respons yang sudah di-cache untuk Idempotency-Key yang sama,
// dan menolak request kembar selama request pertama masih diproses.
// Handler bertanggung jawab menyimpan respons ke idempotency_cache_key dan
// menghapus idempotency_lock_key.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		userID := c.GetString("user_id")
		cacheKey := IdempotencyCacheKey(c.FullPath(), userID, idempKey)
		lockKey := cacheKey + ":lock"
		ctx := c.Request.Context()

		val, err := rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var cached json.RawMessage = []byte(val)
			response.Success(c, http.StatusOK, cached, nil)
			c.Abort()
			return
		}
		if err != redis.Nil {
			// Redis bermasalah: request tetap diproses, unique index slip yang menjaga.
			zap.L().Named("middleware.idempotency").Warn("idempotency cache unavailable", zap.Error(err))
			c.Next()
			return
		}

		isNew, err := rdb.SetNX(ctx, lockKey, "locked", idempotencyLockTTL).Result()
		if err == nil && !isNew {
			response.Error(c, http.StatusConflict, apperror.CodeConflict, "Transaksi Anda sedang diproses, mohon tunggu sebentar.", nil)
			c.Abort()
			return
		}

		c.Set("idempotency_cache_key", cacheKey)
		if err == nil {
			c.Set("idempotency_lock_key", lockKey)
		}

		c.Next()
	}
}
