package web

import (
	"errors"
	"net/http"

	"ai-school/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// клиенту уходит текст сентинела, подробности только в лог
var authErrors = []error{
	service.ErrTokenNotFound,
	service.ErrTokenUsed,
	service.ErrTokenExpired,
	service.ErrInitDataInvalid,
	service.ErrInitDataExpired,
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case service.IsAuthError(err):
		msg := "unauthorized"
		for _, target := range authErrors {
			if errors.Is(err, target) {
				msg = target.Error()
				break
			}
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
	case errors.Is(err, service.ErrForbidden):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, service.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		h.log.Error("❌ Ошибка обработки запроса",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func (h *Handler) badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
}
