package web

import (
	"net/http"

	"ai-school/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type tokenLoginRequest struct {
	Token string `json:"token" binding:"required"`
}

type telegramLoginRequest struct {
	InitData string `json:"init_data" binding:"required"`
}

type loginResponse struct {
	User        *models.TelegramUser `json:"user"`
	AccessToken string               `json:"access_token"`
	ExpiresIn   int64                `json:"expires_in"`
}

// GET /auth?token=... - ссылка из бота: гасим токен, ставим cookie-сессию и уводим на главную
func (h *Handler) TokenLink(c *gin.Context) {
	user, err := h.authService.RedeemToken(c.Request.Context(), c.Query("token"))
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.sessions.Save(c, user.ID); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// POST /api/v1/auth/token
func (h *Handler) TokenLogin(c *gin.Context) {
	var req tokenLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	user, err := h.authService.RedeemToken(c.Request.Context(), req.Token)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.respondLogin(c, user)
}

// POST /api/v1/auth/telegram - вход из Telegram Web App по initData
func (h *Handler) TelegramLogin(c *gin.Context) {
	var req telegramLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	user, err := h.authService.LoginWebApp(c.Request.Context(), req.InitData)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.respondLogin(c, user)
}

// POST /api/v1/auth/logout
func (h *Handler) Logout(c *gin.Context) {
	if err := h.sessions.Clear(c); err != nil {
		h.log.Warn("⚠️ Не удалось очистить сессию", zap.Error(err))
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) respondLogin(c *gin.Context, user *models.TelegramUser) {
	token, err := h.tokens.Generate(user.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, loginResponse{
		User:        user,
		AccessToken: token,
		ExpiresIn:   int64(h.tokens.TTL().Seconds()),
	})
}

// GET /api/v1/me
func (h *Handler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

// PUT /api/v1/me
func (h *Handler) UpdateMe(c *gin.Context) {
	var upd models.ProfileUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		h.badRequest(c, err)
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), currentUser(c).ID, upd)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
