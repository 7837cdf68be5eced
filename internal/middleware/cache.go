package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/campusworks/student-records-api/internal/service"
)

const cacheKeyPrefix = "records:cache:"

type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// Cache returns middleware that serves GET responses from Redis with a TTL.
// Entries expire rather than being invalidated on writes, so cached reads
// may lag a mutation by at most the TTL.
func Cache(client *redis.Client, ttl time.Duration, metrics *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := cacheKeyPrefix + c.Request.URL.RequestURI()
		start := time.Now()
		raw, err := client.Get(c.Request.Context(), key).Bytes()
		if err == nil {
			var cached cachedResponse
			if json.Unmarshal(raw, &cached) == nil {
				metrics.RecordCacheOperation(true, time.Since(start))
				c.Header("X-Cache", "HIT")
				c.Data(cached.Status, cached.ContentType, cached.Body)
				c.Abort()
				return
			}
		}
		metrics.RecordCacheOperation(false, time.Since(start))

		writer := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = writer
		c.Next()

		if writer.Status() != http.StatusOK {
			return
		}
		payload, err := json.Marshal(cachedResponse{
			Status:      writer.Status(),
			ContentType: writer.Header().Get("Content-Type"),
			Body:        writer.body.Bytes(),
		})
		if err != nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = client.Set(ctx, key, payload, ttl).Err()
	}
}

type captureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
