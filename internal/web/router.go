package web

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// лимиты на вход по одноразовому токену
const (
	loginLimit  = 10
	loginWindow = time.Minute
)

func NewRouter(h *Handler, limiter *RateLimiter, allowedOrigins []string, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(log))

	// без списка origin фронт живет на том же домене, CORS не нужен
	if len(allowedOrigins) > 0 {
		config := cors.DefaultConfig()
		config.AllowOrigins = allowedOrigins
		config.AllowCredentials = true
		config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
		config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
		r.Use(cors.New(config))
	}

	r.Use(h.Authenticate())

	r.GET("/healthz", h.Health)
	r.GET("/auth", limiter.Limit("auth_link", loginLimit, loginWindow), h.TokenLink)

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/token", limiter.Limit("auth_token", loginLimit, loginWindow), h.TokenLogin)
			auth.POST("/telegram", h.TelegramLogin)
			auth.POST("/logout", h.Logout)
		}

		api.GET("/courses", h.ListCourses)
		api.GET("/courses/:id", h.GetCourse)
		api.GET("/courses/:id/lessons", h.ListCourseLessons)
		api.GET("/lessons/:id", h.GetLesson)
		api.GET("/topics", h.ListTopics)
		api.GET("/topics/:id/subtopics", h.ListSubtopics)

		user := api.Group("")
		user.Use(RequireAuth())
		{
			user.GET("/me", h.Me)
			user.PUT("/me", h.UpdateMe)

			user.GET("/progress", h.GetProgress)
			user.GET("/progress/courses/:id", h.GetCourseProgress)
			user.POST("/progress/lessons/:id", h.SetLessonProgress)
			user.POST("/progress/lessons/:id/complete", h.CompleteLesson)
			user.DELETE("/progress/lessons/:id", h.ResetLessonProgress)
		}

		admin := api.Group("/admin")
		admin.Use(RequireAdmin())
		{
			admin.GET("/courses", h.AdminListCourses)
			admin.POST("/courses", h.AdminCreateCourse)
			admin.PUT("/courses/:id", h.AdminUpdateCourse)
			admin.DELETE("/courses/:id", h.AdminDeleteCourse)

			admin.GET("/courses/:id/lessons", h.AdminListLessons)
			admin.POST("/courses/:id/lessons", h.AdminCreateLesson)
			admin.PUT("/lessons/:id", h.AdminUpdateLesson)
			admin.DELETE("/lessons/:id", h.AdminDeleteLesson)

			admin.GET("/topics", h.AdminListTopics)
			admin.POST("/topics", h.AdminCreateTopic)
			admin.PUT("/topics/:id", h.AdminUpdateTopic)
			admin.DELETE("/topics/:id", h.AdminDeleteTopic)

			admin.GET("/topics/:id/subtopics", h.AdminListSubtopics)
			admin.POST("/topics/:id/subtopics", h.AdminCreateSubtopic)
			admin.PUT("/subtopics/:id", h.AdminUpdateSubtopic)
			admin.DELETE("/subtopics/:id", h.AdminDeleteSubtopic)

			admin.GET("/users", h.AdminListUsers)
			admin.PUT("/users/:id/admin", h.AdminSetAdmin)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	return r
}
