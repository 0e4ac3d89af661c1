package web

import (
	"net/http"

	"ai-school/internal/models"
	"ai-school/internal/service"

	"github.com/gin-gonic/gin"
)

// GET /api/v1/courses?search=
func (h *Handler) ListCourses(c *gin.Context) {
	courses, err := h.courseService.ListCourses(c.Request.Context(), models.CourseFilter{
		Search:     c.Query("search"),
		OnlyActive: true,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"courses": nonNil(courses)})
}

// GET /api/v1/courses/:id
func (h *Handler) GetCourse(c *gin.Context) {
	course, ok := h.activeCourse(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, course)
}

// GET /api/v1/courses/:id/lessons?track=&type=
func (h *Handler) ListCourseLessons(c *gin.Context) {
	course, ok := h.activeCourse(c)
	if !ok {
		return
	}

	lessons, err := h.courseService.ListLessons(c.Request.Context(), course.ID, models.LessonFilter{
		Track:      models.LessonTrack(c.Query("track")),
		Type:       models.LessonType(c.Query("type")),
		OnlyActive: true,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lessons": nonNil(lessons)})
}

// GET /api/v1/lessons/:id
func (h *Handler) GetLesson(c *gin.Context) {
	id, ok := h.paramID(c, "id")
	if !ok {
		return
	}

	lesson, err := h.courseService.GetLesson(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !lesson.IsActive {
		h.fail(c, service.ErrNotFound)
		return
	}
	// урок скрытого курса тоже скрыт
	course, err := h.courseService.GetCourse(c.Request.Context(), lesson.CourseID)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !course.IsActive {
		h.fail(c, service.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, lesson)
}

// GET /api/v1/topics
func (h *Handler) ListTopics(c *gin.Context) {
	topics, err := h.topicService.ListTopics(c.Request.Context(), true)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"topics": nonNil(topics)})
}

// GET /api/v1/topics/:id/subtopics
func (h *Handler) ListSubtopics(c *gin.Context) {
	id, ok := h.paramID(c, "id")
	if !ok {
		return
	}

	subtopics, err := h.topicService.ListSubtopics(c.Request.Context(), id, true)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subtopics": nonNil(subtopics)})
}

// activeCourse - курс из :id, скрытые курсы снаружи не видны
func (h *Handler) activeCourse(c *gin.Context) (*models.Course, bool) {
	id, ok := h.paramID(c, "id")
	if !ok {
		return nil, false
	}

	course, err := h.courseService.GetCourse(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return nil, false
	}
	if !course.IsActive {
		h.fail(c, service.ErrNotFound)
		return nil, false
	}
	return course, true
}

// nonNil - пустой список отдаем как [], а не null
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
