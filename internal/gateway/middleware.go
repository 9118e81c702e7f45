package gateway

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/phuchau23/CarS/internal/common/auth"
	"github.com/phuchau23/CarS/internal/common/config"
	"github.com/phuchau23/CarS/internal/common/logger"
	"github.com/phuchau23/CarS/internal/common/middleware"
)

const authContextKey = "cars.auth"

// AuthInfo thông tin người dùng sau khi xác thực JWT.
type AuthInfo struct {
	Subject string
	Roles   []string
}

// CurrentUser lấy thông tin xác thực từ gin context.
func CurrentUser(c *gin.Context) (AuthInfo, bool) {
	v, ok := c.Get(authContextKey)
	if !ok {
		return AuthInfo{}, false
	}
	ai, ok := v.(AuthInfo)
	return ai, ok
}

// AuthMiddleware đọc `Authorization: Bearer <token>`, xác thực và
// gắn AuthInfo vào context. Thiếu/sai token thì trả 401.
func AuthMiddleware(cfg config.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cfg.Enabled {
			c.Next()
			return
		}

		raw := strings.TrimSpace(c.GetHeader("Authorization"))
		if raw == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "thiếu token"})
			c.Abort()
			return
		}
		if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
			raw = strings.TrimSpace(raw[len("bearer "):])
		}

		claims, err := auth.ParseAccessToken(cfg, raw)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "token không hợp lệ"})
			c.Abort()
			return
		}

		c.Set(authContextKey, AuthInfo{
			Subject: claims.Subject,
			Roles:   claims.Roles,
		})
		c.Next()
	}
}

// RequireRoles chặn request nếu người dùng không có bất kỳ role nào
// trong danh sách yêu cầu. Phải đặt sau AuthMiddleware.
func RequireRoles(cfg config.AuthConfig, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cfg.Enabled || len(roles) == 0 {
			c.Next()
			return
		}

		ai, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "chưa xác thực"})
			c.Abort()
			return
		}

		got := make(map[string]struct{}, len(ai.Roles))
		for _, r := range ai.Roles {
			got[strings.ToLower(strings.TrimSpace(r))] = struct{}{}
		}
		for _, r := range roles {
			if _, ok := got[strings.ToLower(strings.TrimSpace(r))]; ok {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "không đủ quyền"})
		c.Abort()
	}
}

// RateLimitMiddleware giới hạn lưu lượng toàn cục bằng token bucket.
func RateLimitMiddleware(tb *middleware.TokenBucket) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tb != nil && !tb.Allow(c.Request.Context()) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "quá nhiều request, thử lại sau"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// AccessLogMiddleware log mỗi request HTTP (method, path, status, thời gian).
func AccessLogMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if log == nil {
			return
		}
		log.WithFields(map[string]interface{}{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"status": c.Writer.Status(),
			"cost":   time.Since(start).String(),
		}).Info("http request")
	}
}
