package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskboard/backend/internal/db/memory"
	"github.com/taskboard/backend/internal/model"
	"github.com/taskboard/backend/internal/seed"
	"github.com/taskboard/backend/internal/service"
	"golang.org/x/crypto/bcrypt"
)

type testServer struct {
	router *gin.Engine
	store  *memory.Store
	demo   *model.User
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.New()
	log := zerolog.Nop()
	hasher, err := service.NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)
	tokens, err := service.NewTokenCodec("test-secret", time.Hour)
	require.NoError(t, err)

	demo, err := seed.EnsureDemo(context.Background(), store, hasher, log)
	require.NoError(t, err)

	router := NewRouter(RouterConfig{APIPrefix: "/api"}, Services{
		Auth:     service.NewAuthService(store, store, hasher, tokens, log),
		Users:    service.NewUserService(store, store, hasher, log),
		Projects: service.NewProjectService(store),
		Todos:    service.NewTodoService(store, store),
	}, log)

	return &testServer{router: router, store: store, demo: demo}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) login(t *testing.T, email, password string) model.LoginResponse {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": email, "password": password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res model.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestLogin_DemoAccount(t *testing.T) {
	s := newTestServer(t)

	res := s.login(t, seed.DemoEmail, seed.DemoPassword)
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, s.demo.ID, res.User.ID)
	assert.Equal(t, seed.DemoEmail, res.User.Email)
	assert.Equal(t, model.ThemeLight, res.User.Theme)
	assert.Equal(t, model.SortPriority, res.User.DefaultSort)

	w := s.do(t, http.MethodGet, "/api/auth/profile", res.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	payload := decode[model.TokenPayload](t, w)
	assert.Equal(t, s.demo.ID, payload.Sub)
	assert.Equal(t, seed.DemoEmail, payload.Email)

	sessions := s.store.SessionsFor(s.demo.ID)
	require.Len(t, sessions, 1)
	assert.Equal(t, sessions[0].ID, payload.SessionID)
}

func TestLogin_RejectionsLookTheSame(t *testing.T) {
	s := newTestServer(t)

	wrong := s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": seed.DemoEmail, "password": "nope"})
	unknown := s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "ghost@example.com", "password": "nope"})

	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.JSONEq(t, `{"error":"Invalid credentials"}`, wrong.Body.String())
	assert.Equal(t, wrong.Body.String(), unknown.Body.String())
	assert.Empty(t, s.store.SessionsFor(s.demo.ID))
}

func TestLogin_InvalidBody(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": seed.DemoEmail})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogout_InvalidatesOnlyThatSession(t *testing.T) {
	s := newTestServer(t)

	first := s.login(t, seed.DemoEmail, seed.DemoPassword)
	second := s.login(t, seed.DemoEmail, seed.DemoPassword)
	require.Len(t, s.store.SessionsFor(s.demo.ID), 2)

	w := s.do(t, http.MethodPost, "/api/auth/logout", first.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	session := decode[model.Session](t, w)
	assert.True(t, session.IsRevoked)
	assert.Equal(t, s.demo.ID, session.UserID)

	w = s.do(t, http.MethodGet, "/api/auth/profile", first.AccessToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"invalid or expired session"}`, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/auth/profile", second.AccessToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_RejectsBadHeaders(t *testing.T) {
	s := newTestServer(t)
	res := s.login(t, seed.DemoEmail, seed.DemoPassword)

	tests := map[string]string{
		"missing":       "",
		"wrong scheme":  "Basic " + res.AccessToken,
		"empty bearer":  "Bearer ",
		"garbage token": "Bearer not-a-jwt",
	}
	for name, header := range tests {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			w := httptest.NewRecorder()
			s.router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestAuthMiddleware_SchemeIsCaseInsensitive(t *testing.T) {
	s := newTestServer(t)
	res := s.login(t, seed.DemoEmail, seed.DemoPassword)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	req.Header.Set("Authorization", "bearer "+res.AccessToken)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUsers_RegisterAndConflict(t *testing.T) {
	s := newTestServer(t)

	body := gin.H{"email": "new@example.com", "name": "New User", "password": "hunter22"}
	w := s.do(t, http.MethodPost, "/api/users", "", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "password")
	created := decode[model.UserResponse](t, w)
	assert.Equal(t, model.AccountActive, created.AccountStatus)

	w = s.do(t, http.MethodPost, "/api/users", "", body)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodPost, "/api/users", "", gin.H{"email": "short@example.com", "name": "x", "password": "123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	res := s.login(t, "new@example.com", "hunter22")
	assert.Equal(t, created.ID, res.User.ID)
}

func TestUsers_MeLifecycle(t *testing.T) {
	s := newTestServer(t)
	res := s.login(t, seed.DemoEmail, seed.DemoPassword)

	w := s.do(t, http.MethodGet, "/api/users/me", res.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode[model.UserResponse](t, w)
	require.NotNil(t, me.LastLoginAt)

	w = s.do(t, http.MethodPatch, "/api/users/me", res.AccessToken, gin.H{"theme": "dark", "defaultSort": "name"})
	require.Equal(t, http.StatusOK, w.Code)
	me = decode[model.UserResponse](t, w)
	assert.Equal(t, model.ThemeDark, me.Theme)
	assert.Equal(t, model.SortName, me.DefaultSort)

	w = s.do(t, http.MethodPatch, "/api/users/me", res.AccessToken, gin.H{"theme": "neon"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodDelete, "/api/users/me", res.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.AccountDeleted, decode[model.UserResponse](t, w).AccountStatus)

	w = s.do(t, http.MethodGet, "/api/users/me", res.AccessToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": seed.DemoEmail, "password": seed.DemoPassword})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTodos_CrossAccountIsNotFound(t *testing.T) {
	s := newTestServer(t)
	demo := s.login(t, seed.DemoEmail, seed.DemoPassword)

	w := s.do(t, http.MethodPost, "/api/users", "", gin.H{"email": "other@example.com", "name": "Other", "password": "secret99"})
	require.Equal(t, http.StatusCreated, w.Code)
	other := s.login(t, "other@example.com", "secret99")

	w = s.do(t, http.MethodPost, "/api/todos", demo.AccessToken, gin.H{"title": "demo task", "priority": "HIGH"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	todo := decode[model.Todo](t, w)
	path := "/api/todos/" + todo.ID.String()

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		w = s.do(t, method, path, other.AccessToken, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, method)
	}
	w = s.do(t, http.MethodPatch, path, other.AccessToken, gin.H{"title": "hijacked"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = s.do(t, http.MethodDelete, path+"/hard", other.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, path, demo.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "demo task", decode[model.Todo](t, w).Title)
}

func TestTodos_Lifecycle(t *testing.T) {
	s := newTestServer(t)
	res := s.login(t, seed.DemoEmail, seed.DemoPassword)

	w := s.do(t, http.MethodPost, "/api/todos", res.AccessToken, gin.H{"title": "write report"})
	require.Equal(t, http.StatusCreated, w.Code)
	todo := decode[model.Todo](t, w)
	path := "/api/todos/" + todo.ID.String()

	w = s.do(t, http.MethodGet, "/api/projects/"+todo.ProjectID.String(), res.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.DefaultProjectName, decode[model.ProjectWithStats](t, w).Name)

	w = s.do(t, http.MethodPatch, path, res.AccessToken, gin.H{"status": "DONE"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, decode[model.Todo](t, w).CompletedAt)

	w = s.do(t, http.MethodGet, "/api/todos?projectId="+todo.ProjectID.String(), res.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]model.Todo](t, w), 1)

	w = s.do(t, http.MethodDelete, path, res.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[model.Todo](t, w).IsArchived)

	w = s.do(t, http.MethodGet, "/api/todos", res.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]model.Todo](t, w))

	w = s.do(t, http.MethodDelete, path+"/hard", res.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodGet, path, res.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/api/todos/not-a-uuid", res.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = s.do(t, http.MethodGet, "/api/todos?projectId=nope", res.AccessToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProjects_ListAndDelete(t *testing.T) {
	s := newTestServer(t)
	res := s.login(t, seed.DemoEmail, seed.DemoPassword)

	w := s.do(t, http.MethodGet, "/api/projects", res.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]model.ProjectWithStats](t, w), 2)

	w = s.do(t, http.MethodPost, "/api/projects", res.AccessToken, gin.H{"name": "Garden"})
	require.Equal(t, http.StatusCreated, w.Code)
	project := decode[model.Project](t, w)

	w = s.do(t, http.MethodGet, "/api/projects", res.AccessToken, nil)
	list := decode[[]model.ProjectWithStats](t, w)
	require.Len(t, list, 3)
	assert.Equal(t, project.ID, list[0].ID)

	w = s.do(t, http.MethodPost, "/api/projects", res.AccessToken, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodDelete, "/api/projects/"+project.ID.String(), res.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodGet, "/api/projects/"+project.ID.String(), res.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthAndDocs(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())

	w = s.do(t, http.MethodGet, "/openapi.json", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/auth/login")
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware([]string{"http://localhost:4200"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://localhost:4200")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:4200", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
