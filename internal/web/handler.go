package web

import (
	"context"
	"net/http"

	"ai-school/internal/models"
	"ai-school/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const ctxUserKey = "user"

// Pinger - проверка живости хранилища для /healthz
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Services - сервисы, нужные HTTP слою
type Services struct {
	Users    service.UserService
	Auth     service.AuthService
	Courses  service.CourseService
	Topics   service.TopicService
	Progress service.ProgressService
}

type Handler struct {
	userService     service.UserService
	authService     service.AuthService
	courseService   service.CourseService
	topicService    service.TopicService
	progressService service.ProgressService

	tokens   *TokenManager
	sessions *SessionStore
	health   Pinger
	log      *zap.Logger
}

func NewHandler(svc Services, tokens *TokenManager, sessions *SessionStore, health Pinger, log *zap.Logger) *Handler {
	return &Handler{
		userService:     svc.Users,
		authService:     svc.Auth,
		courseService:   svc.Courses,
		topicService:    svc.Topics,
		progressService: svc.Progress,
		tokens:          tokens,
		sessions:        sessions,
		health:          health,
		log:             log,
	}
}

// GET /healthz
func (h *Handler) Health(c *gin.Context) {
	if h.health != nil {
		if err := h.health.PingContext(c.Request.Context()); err != nil {
			h.log.Error("❌ База недоступна", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// currentUser - пользователь, положенный в контекст middleware Authenticate
func currentUser(c *gin.Context) *models.TelegramUser {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.TelegramUser)
	return user
}

func (h *Handler) paramID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.fail(c, service.Validationf("invalid %s", name))
		return uuid.Nil, false
	}
	return id, true
}
