package web

import (
	"net/http"
	"strconv"

	"ai-school/internal/models"
	"ai-school/internal/service"

	"github.com/gin-gonic/gin"
)

type setAdminRequest struct {
	IsAdmin *bool `json:"is_admin" binding:"required"`
}

// Курсы

func (h *Handler) AdminListCourses(c *gin.Context) {
	courses, err := h.courseService.ListCourses(c.Request.Context(), models.CourseFilter{Search: c.Query("search")})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"courses": nonNil(courses)})
}

func (h *Handler) AdminCreateCourse(c *gin.Context) {
	var in models.CourseInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.badRequest(c, err)
		return
	}

	course, err := h.courseService.CreateCourse(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, course)
}

func (h *Handler) AdminUpdateCourse(c *gin.Context) {
	id, ok := h.paramID(c, "id")
	if !ok {
		return
	}
	var in models.CourseInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.badRequest(c, err)
		return
	}

	course, err := h.courseService.UpdateCourse(c.Request.Context(), id, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

func (h *Handler) AdminDeleteCourse(c *gin.Context) {
	id, ok := h.paramID(c, "id")
	if !ok {
		return
	}
	if err := h.courseService.DeleteCourse(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Уроки

// админ видит и скрытые уроки
func (h *Handler) AdminListLessons(c *gin.Context) {
	courseID, ok := h.paramID(c, "id")
	if !ok {
		return
	}

	lessons, err := h.courseService.ListLessons(c.Request.Context(), courseID, models.LessonFilter{
		Track: models.LessonTrack(c.Query("track")),
		Type:  models.LessonType(c.Query("type")),
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lessons": nonNil(lessons)})
}

func (h *Handler) AdminCreateLesson(c *gin.Context) {
	courseID, ok := h.paramID(c, "id")
	if !ok {
		return
	}
	var in models.LessonInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.badRequest(c, err)
		return
	}

	lesson, err := h.courseService.CreateLesson(c.Request.Context(), courseID, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, lesson)
}

func (h *Handler) AdminUpdateLesson(c *gin.Context) {
	id, ok := h.paramID(c, "id")
	if !ok {
		return
	}
	var in models.LessonInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.badRequest(c, err)
		return
	}

	lesson, err := h.courseService.UpdateLesson(c.Request.Context(), id, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, lesson)
}

func (h *Handler) AdminDeleteLesson(c *gin.Context) {
	id, ok := h.paramID(c, "id")
	if !ok {
		return
	}
	if err := h.courseService.DeleteLesson(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Темы

func (h *Handler) AdminListTopics(c *gin.Context) {
	topics, err := h.topicService.ListTopics(c.Request.Context(), false)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"topics": nonNil(topics)})
}

func (h *Handler) AdminCreateTopic(c *gin.Context) {
	var in models.TopicInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.badRequest(c, err)
		return
	}

	topic, err := h.topicService.CreateTopic(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, topic)
}

func (h *Handler) AdminUpdateTopic(c *gin.Context) {
	id, ok := h.paramID(c, "id")
	if !ok {
		return
	}
	var in models.TopicInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.badRequest(c, err)
		return
	}

	topic, err := h.topicService.UpdateTopic(c.Request.Context(), id, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, topic)
}

func (h *Handler) AdminDeleteTopic(c *gin.Context) {
	id, ok := h.paramID(c, "id")
	if !ok {
		return
	}
	if err := h.topicService.DeleteTopic(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Подтемы

func (h *Handler) AdminListSubtopics(c *gin.Context) {
	topicID, ok := h.paramID(c, "id")
	if !ok {
		return
	}

	subtopics, err := h.topicService.ListSubtopics(c.Request.Context(), topicID, false)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subtopics": nonNil(subtopics)})
}

func (h *Handler) AdminCreateSubtopic(c *gin.Context) {
	topicID, ok := h.paramID(c, "id")
	if !ok {
		return
	}
	var in models.SubtopicInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.badRequest(c, err)
		return
	}

	subtopic, err := h.topicService.CreateSubtopic(c.Request.Context(), topicID, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, subtopic)
}

func (h *Handler) AdminUpdateSubtopic(c *gin.Context) {
	id, ok := h.paramID(c, "id")
	if !ok {
		return
	}
	var in models.SubtopicInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.badRequest(c, err)
		return
	}

	subtopic, err := h.topicService.UpdateSubtopic(c.Request.Context(), id, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, subtopic)
}

func (h *Handler) AdminDeleteSubtopic(c *gin.Context) {
	id, ok := h.paramID(c, "id")
	if !ok {
		return
	}
	if err := h.topicService.DeleteSubtopic(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Пользователи

func (h *Handler) AdminListUsers(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": nonNil(users)})
}

func (h *Handler) AdminSetAdmin(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.fail(c, service.Validationf("invalid id"))
		return
	}
	var req setAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	user, err := h.userService.SetAdmin(c.Request.Context(), id, *req.IsAdmin)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
