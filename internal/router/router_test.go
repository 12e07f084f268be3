package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-movie-catalog/config"
	"github.com/oksasatya/go-movie-catalog/internal/domain/entity"
	"github.com/oksasatya/go-movie-catalog/internal/infrastructure/memory"
	"github.com/oksasatya/go-movie-catalog/internal/interface/middleware"
	"github.com/oksasatya/go-movie-catalog/pkg/helpers"
	"github.com/oksasatya/go-movie-catalog/pkg/mailer"
	"github.com/oksasatya/go-movie-catalog/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	validation.Init()
}

type captureMailer struct {
	mu   sync.Mutex
	sent []mailer.Message
}

func (m *captureMailer) Send(_ context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

type testAPI struct {
	t      *testing.T
	engine *gin.Engine
	users  *memory.UserRepository
	mail   *captureMailer
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := helpers.NewRedisClient(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = rdb.Close() })

	jm, err := helpers.NewJWTManager("session-secret", "reset-secret", 0, 0)
	require.NoError(t, err)

	users := memory.NewUserRepository()
	mail := &captureMailer{}
	d := Deps{
		Cfg:      &config.Config{AppName: "movies", ClientURL: "http://client.test", DebugMetricsEnabled: true},
		Logger:   helpers.NewDiscardLogger(),
		JWT:      jm,
		Hasher:   helpers.NewPasswordHasher(bcrypt.MinCost),
		Mailer:   mail,
		Users:    users,
		Movies:   memory.NewMovieRepository(),
		Comments: memory.NewCommentRepository(),
		Redis:    rdb,
		CacheTTL: time.Minute,
	}

	engine := gin.New()
	engine.Use(middleware.RequestIDMiddleware())
	reg := NewRegistry(engine)
	InitModules(reg, d)
	reg.RegisterAll()

	return &testAPI{t: t, engine: engine, users: users, mail: mail}
}

func (a *testAPI) call(method, path string, body any, token string) (int, map[string]any) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(middleware.TokenHeader, token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") != "" {
		_ = json.Unmarshal(w.Body.Bytes(), &out)
	}
	return w.Code, out
}

func (a *testAPI) login(email, password string) string {
	a.t.Helper()
	code, body := a.call(http.MethodPost, "/api/user/login", gin.H{"email": email, "password": password}, "")
	require.Equal(a.t, http.StatusOK, code, body)
	return body["data"].(map[string]any)["token"].(string)
}

func (a *testAPI) signup(username, email, password string) string {
	a.t.Helper()
	code, body := a.call(http.MethodPost, "/api/user/createUser", gin.H{
		"username": username, "email": email, "password": password, "confirm_password": password,
	}, "")
	require.Equal(a.t, http.StatusOK, code, body)
	return body["data"].(map[string]any)["_id"].(string)
}

func (a *testAPI) admin() string {
	a.t.Helper()
	id := a.signup("root", "root@x.com", "rootpass")
	require.NoError(a.t, a.users.SetRole(context.Background(), id, entity.RoleAdmin))
	return a.login("root@x.com", "rootpass")
}

func TestRegisterAndLogin(t *testing.T) {
	api := newTestAPI(t)

	tests := []struct {
		name    string
		body    gin.H
		wantMsg string
	}{
		{"bad email", gin.H{"username": "alice", "email": "nope", "password": "secret1", "confirm_password": "secret1"}, "Invalid email address"},
		{"short password", gin.H{"username": "alice", "email": "a@x.com", "password": "123", "confirm_password": "123"}, "Password must be between 6 and 30 characters"},
		{"short username", gin.H{"username": "al", "email": "a@x.com", "password": "secret1", "confirm_password": "secret1"}, "Username must be between 3 and 30 characters"},
		{"no confirmation", gin.H{"username": "alice", "email": "a@x.com", "password": "secret1"}, "Confirm password is required"},
		{"mismatch", gin.H{"username": "alice", "email": "a@x.com", "password": "secret1", "confirm_password": "secret2"}, "Passwords do not match!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := api.call(http.MethodPost, "/api/user/createUser", tt.body, "")
			assert.Equal(t, http.StatusBadRequest, code)
			assert.Equal(t, tt.wantMsg, body["error"])
		})
	}

	code, body := api.call(http.MethodPost, "/api/user/createUser", gin.H{
		"username": "alice", "email": "a@x.com", "password": "secret1", "confirm_password": "secret1", "role": "admin",
	}, "")
	require.Equal(t, http.StatusOK, code)
	user := body["data"].(map[string]any)
	assert.Equal(t, "user", user["role"])
	assert.NotContains(t, user, "password")

	code, body = api.call(http.MethodPost, "/api/user/createUser", gin.H{
		"username": "alice2", "email": "a@x.com", "password": "secret1", "confirm_password": "secret1",
	}, "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "User already exists!", body["error"])

	code, body = api.call(http.MethodPost, "/api/user/login", gin.H{"email": "b@x.com", "password": "secret1"}, "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "User does not exist!", body["error"])

	code, body = api.call(http.MethodPost, "/api/user/login", gin.H{"email": "a@x.com", "password": "wrong12"}, "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Your credentials are invalid", body["error"])

	token := api.login("a@x.com", "secret1")
	code, body = api.call(http.MethodGet, "/api/user/me", nil, token)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "a@x.com", body["data"].(map[string]any)["email"])
}

func TestGates(t *testing.T) {
	api := newTestAPI(t)
	api.signup("alice", "a@x.com", "secret1")
	userToken := api.login("a@x.com", "secret1")
	adminToken := api.admin()

	code, body := api.call(http.MethodGet, "/api/movies", nil, "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "No token found!", body["error"])

	code, body = api.call(http.MethodGet, "/api/movies", nil, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "The token is not valid!", body["error"])

	code, _ = api.call(http.MethodGet, "/api/movies", nil, userToken)
	assert.Equal(t, http.StatusOK, code)

	movie := gin.H{"name": "Alien", "description": "space", "runningTime": 117, "thumbnail": "http://img/alien.png", "rating": 8.5, "duration": 117}
	code, body = api.call(http.MethodPost, "/api/movies", movie, userToken)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "You are not authorized to access this route!", body["error"])

	code, body = api.call(http.MethodPost, "/api/movies", gin.H{"description": "x"}, adminToken)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Name is required", body["error"])

	code, body = api.call(http.MethodPost, "/api/movies", gin.H{"name": "x", "description": "x", "runningTime": "long"}, adminToken)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Running time must be a number", body["error"])

	code, body = api.call(http.MethodPost, "/api/movies", movie, adminToken)
	require.Equal(t, http.StatusCreated, code)
	id := body["data"].(map[string]any)["_id"].(string)

	code, body = api.call(http.MethodGet, "/api/movies/"+id, nil, userToken)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Alien", body["data"].(map[string]any)["name"])

	code, body = api.call(http.MethodGet, "/api/movies/search?q=ali", nil, userToken)
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, body["data"], 1)

	code, _ = api.call(http.MethodGet, "/api/debug/vars", nil, userToken)
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = api.call(http.MethodGet, "/api/debug/vars", nil, adminToken)
	assert.Equal(t, http.StatusOK, code)

	code, _ = api.call(http.MethodDelete, "/api/movies/"+id, nil, userToken)
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = api.call(http.MethodDelete, "/api/movies/"+id, nil, adminToken)
	assert.Equal(t, http.StatusOK, code)
	code, body = api.call(http.MethodGet, "/api/movies/"+id, nil, userToken)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Movie not found", body["error"])
}

func TestFavoritesAndComments(t *testing.T) {
	api := newTestAPI(t)
	api.signup("alice", "a@x.com", "secret1")
	userToken := api.login("a@x.com", "secret1")
	adminToken := api.admin()

	_, body := api.call(http.MethodPost, "/api/movies", gin.H{
		"name": "Heat", "description": "LA", "runningTime": 170, "thumbnail": "t", "rating": 8.3, "duration": 170,
	}, adminToken)
	id := body["data"].(map[string]any)["_id"].(string)

	code, body := api.call(http.MethodPost, "/api/user/favorites/"+id, nil, userToken)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Movie added to favorites", body["message"])

	code, body = api.call(http.MethodPost, "/api/user/favorites/"+id, nil, userToken)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Movie already in favorites", body["error"])

	code, body = api.call(http.MethodGet, "/api/user/favorites", nil, userToken)
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, body["data"], 1)

	code, body = api.call(http.MethodDelete, "/api/user/favorites/"+id, nil, userToken)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Movie removed from favorites", body["message"])

	code, body = api.call(http.MethodDelete, "/api/user/favorites/"+id, nil, userToken)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Movie not in favorites", body["error"])

	code, body = api.call(http.MethodPost, "/api/comments/"+id+"/create-comment", gin.H{}, userToken)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Content is required", body["error"])

	code, body = api.call(http.MethodPost, "/api/comments/"+id+"/create-comment", gin.H{"content": "classic"}, userToken)
	require.Equal(t, http.StatusCreated, code)
	comment := body["data"].(map[string]any)
	assert.Equal(t, id, comment["movieId"])

	code, body = api.call(http.MethodGet, "/api/comments/"+id, nil, userToken)
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, body["data"], 1)

	commentID := comment["_id"].(string)
	code, _ = api.call(http.MethodDelete, "/api/comments/"+commentID, nil, userToken)
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = api.call(http.MethodDelete, "/api/comments/"+commentID, nil, adminToken)
	assert.Equal(t, http.StatusOK, code)
	code, body = api.call(http.MethodDelete, "/api/comments/"+commentID, nil, adminToken)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Comment not found", body["error"])
}

func TestPasswordResetFlow(t *testing.T) {
	api := newTestAPI(t)
	id := api.signup("alice", "a@x.com", "secret1")

	code, body := api.call(http.MethodPut, "/api/user/forgot-password", gin.H{}, "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Email is empty!!", body["error"])

	code, body = api.call(http.MethodPut, "/api/user/forgot-password", gin.H{"email": "nope"}, "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid email!!", body["error"])

	code, body = api.call(http.MethodPut, "/api/user/forgot-password", gin.H{"email": "b@x.com"}, "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "User doesn't Exist", body["error"])

	code, body = api.call(http.MethodPut, "/api/user/forgot-password", gin.H{"email": "a@x.com"}, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "email has been sent to a@x.com", body["message"])
	require.Len(t, api.mail.sent, 1)

	u, err := api.users.GetByID(context.Background(), id)
	require.NoError(t, err)
	token := u.ResetPasswordLink
	assert.Contains(t, api.mail.sent[0].HTML, "http://client.test/users/password/reset/"+token)

	code, body = api.call(http.MethodPut, "/api/user/password/reset", gin.H{"newPassword": "newsecret"}, "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid reset password link", body["error"])

	code, body = api.call(http.MethodPut, "/api/user/password/reset", gin.H{"resetPasswordLink": "garbage", "newPassword": "newsecret"}, "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "The token is not valid!", body["error"])

	code, body = api.call(http.MethodPut, "/api/user/password/reset", gin.H{"resetPasswordLink": token, "newPassword": "newsecret"}, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "You have successfully Reset the password !", body["message"])

	code, body = api.call(http.MethodPut, "/api/user/password/reset", gin.H{"resetPasswordLink": token, "newPassword": "another1"}, "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "The token is not valid!", body["error"])

	api.login("a@x.com", "newsecret")
}
