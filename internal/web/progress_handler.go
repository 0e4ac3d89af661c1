package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type percentageRequest struct {
	Percentage *int `json:"percentage" binding:"required"`
}

// GET /api/v1/progress
func (h *Handler) GetProgress(c *gin.Context) {
	ctx := c.Request.Context()
	user := currentUser(c)

	stats, err := h.progressService.GetStats(ctx, user.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	lessons, err := h.progressService.ListProgress(ctx, user.ID)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":   stats,
		"lessons": nonNil(lessons),
	})
}

// GET /api/v1/progress/courses/:id
func (h *Handler) GetCourseProgress(c *gin.Context) {
	courseID, ok := h.paramID(c, "id")
	if !ok {
		return
	}

	stats, err := h.progressService.GetCourseStats(c.Request.Context(), currentUser(c).ID, courseID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// POST /api/v1/progress/lessons/:id
func (h *Handler) SetLessonProgress(c *gin.Context) {
	lessonID, ok := h.paramID(c, "id")
	if !ok {
		return
	}
	var req percentageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	p, err := h.progressService.SetPercentage(c.Request.Context(), currentUser(c).ID, lessonID, *req.Percentage)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// POST /api/v1/progress/lessons/:id/complete
func (h *Handler) CompleteLesson(c *gin.Context) {
	lessonID, ok := h.paramID(c, "id")
	if !ok {
		return
	}

	p, err := h.progressService.CompleteLesson(c.Request.Context(), currentUser(c).ID, lessonID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DELETE /api/v1/progress/lessons/:id
func (h *Handler) ResetLessonProgress(c *gin.Context) {
	lessonID, ok := h.paramID(c, "id")
	if !ok {
		return
	}

	if err := h.progressService.ResetLesson(c.Request.Context(), currentUser(c).ID, lessonID); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
