package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
)

const (
	sessionName   = "ai-school-session"
	sessionUserID = "user_id"
)

// SessionStore - подписанная cookie-сессия для входа по ссылке из бота
type SessionStore struct {
	store *sessions.CookieStore
}

func NewSessionStore(secret string, ttl time.Duration, secure bool) *SessionStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &SessionStore{store: store}
}

func (s *SessionStore) Save(c *gin.Context, userID int64) error {
	session, _ := s.store.Get(c.Request, sessionName)
	session.Values[sessionUserID] = userID
	return session.Save(c.Request, c.Writer)
}

// UserID - id пользователя из сессии, 0 если сессии нет
func (s *SessionStore) UserID(c *gin.Context) int64 {
	session, err := s.store.Get(c.Request, sessionName)
	if err != nil {
		return 0
	}
	userID, _ := session.Values[sessionUserID].(int64)
	return userID
}

func (s *SessionStore) Clear(c *gin.Context) error {
	session, _ := s.store.Get(c.Request, sessionName)
	session.Values = map[any]any{}
	session.Options.MaxAge = -1
	return session.Save(c.Request, c.Writer)
}
