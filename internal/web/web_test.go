package web_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"ai-school/internal/cache"
	"ai-school/internal/models"
	"ai-school/internal/models/config"
	courserepo "ai-school/internal/repository/course"
	lessonrepo "ai-school/internal/repository/lesson"
	progressrepo "ai-school/internal/repository/progress"
	"ai-school/internal/repository/repotest"
	tokenrepo "ai-school/internal/repository/token"
	topicrepo "ai-school/internal/repository/topic"
	userrepo "ai-school/internal/repository/user"
	"ai-school/internal/service"
	auth_service "ai-school/internal/service/auth"
	course_service "ai-school/internal/service/course"
	progress_service "ai-school/internal/service/progress"
	topic_service "ai-school/internal/service/topic"
	user_service "ai-school/internal/service/user"
	"ai-school/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testBotToken = "123456:TEST-bot-token"

type testApp struct {
	router http.Handler
	db     *sqlx.DB
	auth   service.AuthService
	tokens *web.TokenManager
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := repotest.NewDB(t)
	log := zap.NewNop()

	users := userrepo.NewUserRepository(db)
	courses := courserepo.NewCourseRepository(db)
	lessons := lessonrepo.NewLessonRepository(db)

	userService := user_service.NewUserService(users, nil, log)
	authService := auth_service.NewAuthService(
		users,
		tokenrepo.NewTokenRepository(db),
		userService,
		config.AuthConfig{TokenTTL: 24 * time.Hour, InitDataMaxAge: 24 * time.Hour},
		testBotToken,
		log,
	)

	tokens := web.NewTokenManager("jwt-secret", time.Hour)
	h := web.NewHandler(web.Services{
		Users:    userService,
		Auth:     authService,
		Courses:  course_service.NewCourseService(courses, lessons, cache.NoopCache{}, nil, log),
		Topics:   topic_service.NewTopicService(topicrepo.NewTopicRepository(db)),
		Progress: progress_service.NewProgressService(progressrepo.NewProgressRepository(db), lessons, courses, log),
	}, tokens, web.NewSessionStore("session-secret-0123456789abcdef", time.Hour, false), db, log)

	return &testApp{
		router: web.NewRouter(h, web.NewRateLimiter(nil, log), nil, log),
		db:     db,
		auth:   authService,
		tokens: tokens,
	}
}

func (a *testApp) do(t *testing.T, method, path string, body any, token string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) tokenFor(t *testing.T, user *models.TelegramUser) string {
	t.Helper()
	token, err := a.tokens.Generate(user.ID)
	require.NoError(t, err)
	return token
}

func (a *testApp) admin(t *testing.T) string {
	t.Helper()
	u := repotest.InsertUser(t, a.db, 1, "Admin")
	_, err := a.db.Exec(a.db.Rebind(`UPDATE telegram_users SET is_admin = ? WHERE id = ?`), true, u.ID)
	require.NoError(t, err)
	return a.tokenFor(t, u)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type loginBody struct {
	User        models.TelegramUser `json:"user"`
	AccessToken string              `json:"access_token"`
	ExpiresIn   int64               `json:"expires_in"`
}

type errorBody struct {
	Error string `json:"error"`
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/healthz", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTokenLogin(t *testing.T) {
	app := newTestApp(t)
	u := repotest.InsertUser(t, app.db, 100, "Anna")

	issued, err := app.auth.IssueToken(context.Background(), u.ID)
	require.NoError(t, err)

	rec := app.do(t, http.MethodPost, "/api/v1/auth/token", gin.H{"token": issued.Token}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode[loginBody](t, rec)
	assert.Equal(t, u.ID, body.User.ID)
	assert.NotEmpty(t, body.AccessToken)
	assert.Equal(t, int64(3600), body.ExpiresIn)

	// выданный JWT открывает профиль
	rec = app.do(t, http.MethodGet, "/api/v1/me", nil, body.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Anna", decode[models.TelegramUser](t, rec).FirstName)

	t.Run("повторное использование", func(t *testing.T) {
		rec := app.do(t, http.MethodPost, "/api/v1/auth/token", gin.H{"token": issued.Token}, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, service.ErrTokenUsed.Error(), decode[errorBody](t, rec).Error)
	})

	t.Run("неизвестный токен", func(t *testing.T) {
		rec := app.do(t, http.MethodPost, "/api/v1/auth/token", gin.H{"token": "nope"}, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, service.ErrTokenNotFound.Error(), decode[errorBody](t, rec).Error)
	})

	t.Run("без токена", func(t *testing.T) {
		rec := app.do(t, http.MethodPost, "/api/v1/auth/token", gin.H{}, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestTokenLinkSetsSession(t *testing.T) {
	app := newTestApp(t)
	u := repotest.InsertUser(t, app.db, 100, "Anna")

	issued, err := app.auth.IssueToken(context.Background(), u.ID)
	require.NoError(t, err)

	rec := app.do(t, http.MethodGet, "/auth?token="+issued.Token, nil, "")
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	rec = app.do(t, http.MethodGet, "/api/v1/me", nil, "", cookies...)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, u.ID, decode[models.TelegramUser](t, rec).ID)

	// после выхода cookie сброшена
	rec = app.do(t, http.MethodPost, "/api/v1/auth/logout", nil, "", cookies...)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	cleared := rec.Result().Cookies()
	require.NotEmpty(t, cleared)
	assert.Less(t, cleared[0].MaxAge, 0)

	t.Run("ссылка одноразовая", func(t *testing.T) {
		rec := app.do(t, http.MethodGet, "/auth?token="+issued.Token, nil, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestTelegramLogin(t *testing.T) {
	app := newTestApp(t)

	values := url.Values{}
	values.Set("auth_date", strconv.FormatInt(time.Now().Unix(), 10))
	values.Set("query_id", "AAH")
	values.Set("user", `{"id":555,"first_name":"Ivan","username":"ivan","language_code":"ru"}`)
	initData := auth_service.SignInitData(values, testBotToken)

	rec := app.do(t, http.MethodPost, "/api/v1/auth/telegram", gin.H{"init_data": initData}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode[loginBody](t, rec)
	assert.Equal(t, int64(555), body.User.TelegramUserID)
	assert.Equal(t, "Ivan", body.User.FirstName)
	assert.NotEmpty(t, body.AccessToken)

	t.Run("подмененные данные", func(t *testing.T) {
		tampered, err := url.ParseQuery(initData)
		require.NoError(t, err)
		tampered.Set("user", `{"id":1,"first_name":"Mallory"}`)

		rec := app.do(t, http.MethodPost, "/api/v1/auth/telegram", gin.H{"init_data": tampered.Encode()}, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, service.ErrInitDataInvalid.Error(), decode[errorBody](t, rec).Error)
	})
}

func TestAuthentication(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name   string
		header string
	}{
		{name: "без авторизации", header: ""},
		{name: "не Bearer", header: "Basic abc"},
		{name: "мусорный JWT", header: "Bearer not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			app.router.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}

	t.Run("токен удаленного пользователя", func(t *testing.T) {
		token, err := app.tokens.Generate(9999)
		require.NoError(t, err)
		rec := app.do(t, http.MethodGet, "/api/v1/me", nil, token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestUpdateMe(t *testing.T) {
	app := newTestApp(t)
	token := app.tokenFor(t, repotest.InsertUser(t, app.db, 100, "Anna"))

	rec := app.do(t, http.MethodPut, "/api/v1/me", gin.H{"last_name": "Petrova", "language_code": "en"}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got := decode[models.TelegramUser](t, rec)
	assert.Equal(t, "Petrova", got.LastName)
	assert.Equal(t, "en", got.LanguageCode)

	rec = app.do(t, http.MethodPut, "/api/v1/me", gin.H{"first_name": ""}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminAccess(t *testing.T) {
	app := newTestApp(t)
	userToken := app.tokenFor(t, repotest.InsertUser(t, app.db, 100, "Anna"))
	adminToken := app.admin(t)

	rec := app.do(t, http.MethodGet, "/api/v1/admin/users", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = app.do(t, http.MethodGet, "/api/v1/admin/users", nil, userToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = app.do(t, http.MethodGet, "/api/v1/admin/users", nil, adminToken)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[struct {
		Users []models.TelegramUser `json:"users"`
	}](t, rec)
	assert.Len(t, body.Users, 2)
}

func TestAdminSetAdmin(t *testing.T) {
	app := newTestApp(t)
	u := repotest.InsertUser(t, app.db, 100, "Anna")
	adminToken := app.admin(t)
	path := "/api/v1/admin/users/" + strconv.FormatInt(u.ID, 10) + "/admin"

	rec := app.do(t, http.MethodPut, path, gin.H{"is_admin": true}, adminToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, decode[models.TelegramUser](t, rec).IsAdmin)

	// новый админ сразу получает доступ
	rec = app.do(t, http.MethodGet, "/api/v1/admin/users", nil, app.tokenFor(t, u))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(t, http.MethodPut, "/api/v1/admin/users/9999/admin", gin.H{"is_admin": true}, adminToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.do(t, http.MethodPut, "/api/v1/admin/users/abc/admin", gin.H{"is_admin": true}, adminToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(t, http.MethodPut, path, gin.H{}, adminToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCourseCatalogFlow(t *testing.T) {
	app := newTestApp(t)
	adminToken := app.admin(t)

	rec := app.do(t, http.MethodPost, "/api/v1/admin/courses", gin.H{"title": "Go для начинающих", "icon": "🐹"}, adminToken)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	course := decode[models.Course](t, rec)
	assert.True(t, course.IsActive)

	rec = app.do(t, http.MethodPost, "/api/v1/admin/courses", gin.H{"title": ""}, adminToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	lessonsPath := "/api/v1/admin/courses/" + course.ID.String() + "/lessons"
	rec = app.do(t, http.MethodPost, lessonsPath, gin.H{"title": "Введение", "duration": 15, "type": "reading"}, adminToken)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	lesson := decode[models.Lesson](t, rec)

	rec = app.do(t, http.MethodPost, lessonsPath, gin.H{"title": "Плохой тип", "type": "podcast"}, adminToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// скрытый урок не виден в каталоге, но есть в админке
	rec = app.do(t, http.MethodPost, lessonsPath, gin.H{"title": "Черновик", "is_active": false}, adminToken)
	require.Equal(t, http.StatusCreated, rec.Code)
	draft := decode[models.Lesson](t, rec)

	rec = app.do(t, http.MethodGet, "/api/v1/courses/"+course.ID.String(), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[models.Course](t, rec).LessonsCount)

	type lessonList struct {
		Lessons []models.Lesson `json:"lessons"`
	}
	rec = app.do(t, http.MethodGet, "/api/v1/courses/"+course.ID.String()+"/lessons", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[lessonList](t, rec).Lessons, 1)

	rec = app.do(t, http.MethodGet, "/api/v1/courses/"+course.ID.String()+"/lessons?type=video", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[lessonList](t, rec).Lessons)

	rec = app.do(t, http.MethodGet, lessonsPath, nil, adminToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[lessonList](t, rec).Lessons, 2)

	rec = app.do(t, http.MethodGet, "/api/v1/lessons/"+draft.ID.String(), nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = app.do(t, http.MethodGet, "/api/v1/lessons/"+lesson.ID.String(), nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(t, http.MethodGet, "/api/v1/courses?search=go", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[struct {
		Courses []models.Course `json:"courses"`
	}](t, rec).Courses, 1)

	rec = app.do(t, http.MethodDelete, "/api/v1/admin/lessons/"+lesson.ID.String(), nil, adminToken)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = app.do(t, http.MethodGet, "/api/v1/courses/"+course.ID.String(), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, decode[models.Course](t, rec).LessonsCount)

	// скрытый курс снаружи не существует
	rec = app.do(t, http.MethodPut, "/api/v1/admin/courses/"+course.ID.String(), gin.H{"is_active": false}, adminToken)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = app.do(t, http.MethodGet, "/api/v1/courses/"+course.ID.String(), nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.do(t, http.MethodDelete, "/api/v1/admin/courses/"+course.ID.String(), nil, adminToken)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = app.do(t, http.MethodDelete, "/api/v1/admin/courses/"+course.ID.String(), nil, adminToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.do(t, http.MethodGet, "/api/v1/courses/not-a-uuid", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTopicsFlow(t *testing.T) {
	app := newTestApp(t)
	adminToken := app.admin(t)

	rec := app.do(t, http.MethodPost, "/api/v1/admin/topics", gin.H{"title": "Промпты", "order_index": 1}, adminToken)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	topic := decode[models.Topic](t, rec)

	subPath := "/api/v1/admin/topics/" + topic.ID.String() + "/subtopics"
	rec = app.do(t, http.MethodPost, subPath, gin.H{"title": "Роли", "content": "..."}, adminToken)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	sub := decode[models.Subtopic](t, rec)

	rec = app.do(t, http.MethodPut, "/api/v1/admin/subtopics/"+sub.ID.String(), gin.H{"is_active": false}, adminToken)
	require.Equal(t, http.StatusOK, rec.Code)

	type subtopicList struct {
		Subtopics []models.Subtopic `json:"subtopics"`
	}
	rec = app.do(t, http.MethodGet, "/api/v1/topics/"+topic.ID.String()+"/subtopics", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[subtopicList](t, rec).Subtopics)
	assert.Contains(t, rec.Body.String(), `"subtopics":[]`)

	rec = app.do(t, http.MethodGet, subPath, nil, adminToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[subtopicList](t, rec).Subtopics, 1)

	rec = app.do(t, http.MethodGet, "/api/v1/topics", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[struct {
		Topics []models.Topic `json:"topics"`
	}](t, rec).Topics, 1)

	rec = app.do(t, http.MethodDelete, "/api/v1/admin/topics/"+topic.ID.String(), nil, adminToken)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = app.do(t, http.MethodDelete, "/api/v1/admin/subtopics/"+sub.ID.String(), nil, adminToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProgressFlow(t *testing.T) {
	app := newTestApp(t)
	token := app.tokenFor(t, repotest.InsertUser(t, app.db, 100, "Anna"))

	course := repotest.InsertCourse(t, app.db, "Go", repotest.Now)
	first := repotest.InsertLesson(t, app.db, course.ID, "Первый", 1, 10)
	repotest.InsertLesson(t, app.db, course.ID, "Второй", 2, 20)
	lessonPath := "/api/v1/progress/lessons/" + first.ID.String()

	rec := app.do(t, http.MethodPost, lessonPath, gin.H{"percentage": 40}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = app.do(t, http.MethodPost, lessonPath, gin.H{"percentage": 40}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	p := decode[models.UserProgress](t, rec)
	assert.Equal(t, 40, p.Percentage)
	assert.False(t, p.IsCompleted)

	rec = app.do(t, http.MethodPost, lessonPath, gin.H{"percentage": 150}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = app.do(t, http.MethodPost, lessonPath, gin.H{}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(t, http.MethodPost, lessonPath+"/complete", nil, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, decode[models.UserProgress](t, rec).IsCompleted)

	rec = app.do(t, http.MethodGet, "/api/v1/progress", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[struct {
		Stats   models.ProgressStats  `json:"stats"`
		Lessons []models.UserProgress `json:"lessons"`
	}](t, rec)
	assert.Equal(t, 2, body.Stats.TotalLessons)
	assert.Equal(t, 1, body.Stats.CompletedLessons)
	assert.Equal(t, 50, body.Stats.Percentage)
	assert.Equal(t, 10, body.Stats.CompletedMinutes)
	assert.Len(t, body.Lessons, 1)

	rec = app.do(t, http.MethodGet, "/api/v1/progress/courses/"+course.ID.String(), nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 30, decode[models.ProgressStats](t, rec).TotalMinutes)

	rec = app.do(t, http.MethodDelete, lessonPath, nil, token)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = app.do(t, http.MethodDelete, lessonPath, nil, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStaleCredentialsDoNotBlockPublicRoutes(t *testing.T) {
	app := newTestApp(t)
	u := repotest.InsertUser(t, app.db, 100, "Anna")

	t.Run("вход по токену с протухшим Bearer", func(t *testing.T) {
		issued, err := app.auth.IssueToken(context.Background(), u.ID)
		require.NoError(t, err)

		rec := app.do(t, http.MethodPost, "/api/v1/auth/token", gin.H{"token": issued.Token}, "garbage.jwt.value")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, u.ID, decode[loginBody](t, rec).User.ID)
	})

	t.Run("каталог с битым Bearer", func(t *testing.T) {
		rec := app.do(t, http.MethodGet, "/api/v1/courses", nil, "garbage.jwt.value")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("cookie удаленного пользователя", func(t *testing.T) {
		issued, err := app.auth.IssueToken(context.Background(), u.ID)
		require.NoError(t, err)
		rec := app.do(t, http.MethodGet, "/auth?token="+issued.Token, nil, "")
		require.Equal(t, http.StatusFound, rec.Code)
		cookies := rec.Result().Cookies()
		require.NotEmpty(t, cookies)

		_, err = app.db.Exec(app.db.Rebind(`DELETE FROM telegram_users WHERE id = ?`), u.ID)
		require.NoError(t, err)

		rec = app.do(t, http.MethodGet, "/api/v1/courses", nil, "", cookies...)
		assert.Equal(t, http.StatusOK, rec.Code)
		// неживая сессия сбрасывается
		cleared := rec.Result().Cookies()
		require.NotEmpty(t, cleared)
		assert.Less(t, cleared[0].MaxAge, 0)

		rec = app.do(t, http.MethodPost, "/api/v1/auth/logout", nil, "", cookies...)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		rec = app.do(t, http.MethodGet, "/api/v1/me", nil, "", cookies...)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestBearerSchemeIsCaseInsensitive(t *testing.T) {
	app := newTestApp(t)
	token := app.tokenFor(t, repotest.InsertUser(t, app.db, 100, "Anna"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "bearer "+token)
	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Anna", decode[models.TelegramUser](t, rec).FirstName)
}

func TestLessonOfHiddenCourse(t *testing.T) {
	app := newTestApp(t)
	token := app.tokenFor(t, repotest.InsertUser(t, app.db, 100, "Anna"))

	course := repotest.InsertCourse(t, app.db, "Скрытый", repotest.Now)
	lesson := repotest.InsertLesson(t, app.db, course.ID, "Урок", 1, 10)

	rec := app.do(t, http.MethodGet, "/api/v1/lessons/"+lesson.ID.String(), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	_, err := app.db.Exec(app.db.Rebind(`UPDATE courses SET is_active = ? WHERE id = ?`), false, course.ID)
	require.NoError(t, err)

	rec = app.do(t, http.MethodGet, "/api/v1/lessons/"+lesson.ID.String(), nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.do(t, http.MethodPost, "/api/v1/progress/lessons/"+lesson.ID.String(), gin.H{"percentage": 30}, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = app.do(t, http.MethodPost, "/api/v1/progress/lessons/"+lesson.ID.String()+"/complete", nil, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
