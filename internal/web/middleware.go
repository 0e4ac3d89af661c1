package web

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"ai-school/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Authenticate кладет пользователя в контекст по Bearer JWT или cookie-сессии.
// Битые или устаревшие учетные данные не блокируют запрос: он идет дальше анонимно,
// а 401 отдают RequireAuth и RequireAdmin
func (h *Handler) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			userID      int64
			fromSession bool
		)

		if header := c.GetHeader("Authorization"); header != "" {
			if token, err := bearerToken(header); err == nil {
				userID, _ = h.tokens.Validate(token)
			}
		}
		if userID == 0 {
			userID = h.sessions.UserID(c)
			fromSession = userID != 0
		}

		if userID == 0 {
			c.Next()
			return
		}

		user, err := h.userService.GetByID(c.Request.Context(), userID)
		if errors.Is(err, service.ErrNotFound) {
			// удаленный пользователь с еще живым токеном или cookie
			if fromSession {
				if err := h.sessions.Clear(c); err != nil {
					h.log.Warn("⚠️ Не удалось очистить сессию", zap.Error(err))
				}
			}
			c.Next()
			return
		}
		if err != nil {
			h.fail(c, err)
			return
		}
		c.Set(ctxUserKey, user)
		c.Next()
	}
}

func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentUser(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}
		if !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin rights required"})
			return
		}
		c.Next()
	}
}

// RequestLogger пишет в zap каждый запрос
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
		}
		switch {
		case status >= http.StatusInternalServerError:
			log.Error("HTTP", fields...)
		case status >= http.StatusBadRequest:
			log.Warn("HTTP", fields...)
		default:
			log.Info("HTTP", fields...)
		}
	}
}

// RateLimiter - счетчик запросов по IP в Redis. Без Redis лимиты не действуют
type RateLimiter struct {
	redisClient *redis.Client
	log         *zap.Logger
}

func NewRateLimiter(client *redis.Client, log *zap.Logger) *RateLimiter {
	return &RateLimiter{redisClient: client, log: log}
}

func (rl *RateLimiter) Limit(keySuffix string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl == nil || rl.redisClient == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s:%s", keySuffix, c.ClientIP())

		count, err := rl.redisClient.Incr(c, key).Result()
		if err != nil {
			rl.log.Warn("⚠️ Rate limiter недоступен", zap.Error(err))
			c.Next()
			return
		}

		// первый запрос в окне ставит TTL, ключ без TTL не оставляем
		if count == 1 {
			if err := rl.redisClient.Expire(c, key, window).Err(); err != nil {
				rl.log.Warn("⚠️ Не удалось выставить TTL лимита", zap.Error(err))
				rl.redisClient.Del(c, key)
				c.Next()
				return
			}
		}

		if count > int64(limit) {
			ttl, _ := rl.redisClient.TTL(c, key).Result()
			c.Header("Retry-After", fmt.Sprintf("%.0f", ttl.Seconds()))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "too many requests",
				"retry_after": fmt.Sprintf("%.0f seconds", ttl.Seconds()),
			})
			return
		}
		c.Next()
	}
}
