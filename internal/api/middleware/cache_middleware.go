package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/netslayer67/mws-backend/internal/infrastructure/cache"
)

type CacheMiddleware struct {
	cache  *cache.RedisClient
	prefix string
	ttl    time.Duration
}

func NewCacheMiddleware(cache *cache.RedisClient, prefix string, ttl time.Duration) *CacheMiddleware {
	return &CacheMiddleware{
		cache:  cache,
		prefix: prefix,
		ttl:    ttl,
	}
}

// responseBuffer is a custom ResponseWriter that stores the response
type responseBuffer struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func newResponseBuffer(original gin.ResponseWriter) *responseBuffer {
	return &responseBuffer{
		ResponseWriter: original,
		body:           bytes.NewBufferString(""),
	}
}

func (r *responseBuffer) Write(b []byte) (int, error) {
	r.ResponseWriter.Write(b)
	return r.body.Write(b)
}

func (r *responseBuffer) WriteString(s string) (int, error) {
	r.ResponseWriter.WriteString(s)
	return r.body.WriteString(s)
}

// CacheResponse caches successful GET responses. Requests carrying
// force=true bypass the cached copy and refresh it.
func (m *CacheMiddleware) CacheResponse() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := m.generateCacheKey(c)
		force := c.Query("force") == "true"

		if !force {
			if cached, err := m.cache.Get(c.Request.Context(), key); err == nil && cached != "" {
				var response map[string]interface{}
				if err := json.Unmarshal([]byte(cached), &response); err == nil {
					c.JSON(http.StatusOK, response)
					c.Abort()
					return
				}
			}
		}

		writer := c.Writer
		buff := newResponseBuffer(writer)
		c.Writer = buff

		c.Next()

		if c.Writer.Status() == http.StatusOK {
			if err := m.cache.Set(c.Request.Context(), key, buff.body.String(), m.ttl); err != nil {
				log.Error("Failed to cache response", zap.Error(err))
			}
		}

		c.Writer = writer
	}
}

func (m *CacheMiddleware) generateCacheKey(c *gin.Context) string {
	key := fmt.Sprintf("%s:%s", m.prefix, c.Request.URL.Path)
	if period := c.Query("period"); period != "" {
		key = fmt.Sprintf("%s:%s", key, period)
	}
	if date := c.Query("date"); date != "" {
		key = fmt.Sprintf("%s:%s", key, date)
	}
	if userID, exists := GetUserID(c); exists {
		key = fmt.Sprintf("%s:%s", key, userID.String())
	}
	return key
}
