package middleware

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const idempotencyTTL = 24 * time.Hour

type bodyCaptureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyCaptureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency guards POST endpoints against duplicate submissions. A repeated
// Idempotency-Key replays the cached response; a key whose first request is
// still in flight gets a 409 instead of a second execution.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		userID := c.GetString("user_id")

		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), userID, idempKey)
		lockKey := cacheKey + ":lock"

		if cached, err := rdb.Get(c.Request.Context(), cacheKey).Bytes(); err == nil {
			c.Data(http.StatusOK, "application/json; charset=utf-8", cached)
			c.Abort()
			return
		}

		// Short expiry so a crashed server releases the lock on its own.
		isNew, _ := rdb.SetNX(c.Request.Context(), lockKey, "locked", 30*time.Second).Result()
		if !isNew {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"ok": false,
				"error": gin.H{
					"code":    "CONFLICT",
					"message": "a request with this idempotency key is still being processed",
				},
			})
			return
		}

		writer := &bodyCaptureWriter{ResponseWriter: c.Writer}
		c.Writer = writer

		c.Next()

		if writer.Status() >= http.StatusOK && writer.Status() < http.StatusMultipleChoices {
			_ = rdb.Set(c.Request.Context(), cacheKey, writer.body.Bytes(), idempotencyTTL).Err()
		}
		_ = rdb.Del(c.Request.Context(), lockKey).Err()
	}
}
