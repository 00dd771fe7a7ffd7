package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/testutil"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testPassword = "correct-horse"

type envelope struct {
	Status  int             `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

type server struct {
	app *fiber.App
	db  *gorm.DB
}

func newServer(t *testing.T) *server {
	t.Helper()
	db := testutil.NewDB(t)
	relay := &testutil.Relay{Duration: 30}
	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: time.Hour,
		UploadTempDir:    t.TempDir(),
	}

	users := services.NewUserService(db, cfg, relay)
	h := Handlers{
		Health:        handlers.NewHealthHandler(db),
		Users:         handlers.NewUserHandler(users, cfg),
		Videos:        handlers.NewVideoHandler(services.NewVideoService(db, relay), cfg),
		Comments:      handlers.NewCommentHandler(services.NewCommentService(db)),
		Tweets:        handlers.NewTweetHandler(services.NewTweetService(db)),
		Likes:         handlers.NewLikeHandler(services.NewLikeService(db)),
		Subscriptions: handlers.NewSubscriptionHandler(services.NewSubscriptionService(db)),
		Playlists:     handlers.NewPlaylistHandler(services.NewPlaylistService(db, relay), cfg),
		Dashboard:     handlers.NewDashboardHandler(services.NewDashboardService(db)),
	}

	app := fiber.New()
	Setup(app, cfg, users, h, nil)
	return &server{app: app, db: db}
}

func (s *server) user(t *testing.T, username string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	u := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		FullName:     "Full " + username,
		Avatar:       "https://media.test/" + username + ".png",
		PasswordHash: string(hash),
	}
	if err := s.db.Create(u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func (s *server) video(t *testing.T, owner *models.User, title string) *models.Video {
	t.Helper()
	v := &models.Video{
		VideoFile:   "https://media.test/" + title + ".mp4",
		Thumbnail:   "https://media.test/" + title + ".jpg",
		OwnerID:     owner.ID,
		Title:       title,
		Description: "about " + title,
		Duration:    3,
		IsPublished: true,
	}
	if err := s.db.Create(v).Error; err != nil {
		t.Fatalf("create video: %v", err)
	}
	return v
}

func (s *server) login(t *testing.T, username string) services.Session {
	t.Helper()
	env := s.do(t, "POST", "/api/v1/users/login", "", map[string]string{
		"username": username,
		"password": testPassword,
	}, fiber.StatusOK)
	var session services.Session
	if err := json.Unmarshal(env.Data, &session); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	return session
}

func (s *server) do(t *testing.T, method, path, token string, body interface{}, wantStatus int) envelope {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != wantStatus {
		t.Fatalf("%s %s: status = %d, want %d (body %s)", method, path, resp.StatusCode, wantStatus, raw)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("decode body %s: %v", raw, err)
	}
	if env.Status != wantStatus {
		t.Errorf("envelope status = %d, want %d", env.Status, wantStatus)
	}
	return env
}

func TestHealth(t *testing.T) {
	s := newServer(t)

	req := httptest.NewRequest("GET", "/api/health", nil)
	resp, err := s.app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newServer(t)

	env := s.do(t, "GET", "/api/v1/users/current-user", "", nil, fiber.StatusUnauthorized)
	if env.Message == "" {
		t.Error("expected an error message")
	}
	s.do(t, "GET", "/api/v1/videos/", "not-a-jwt", nil, fiber.StatusUnauthorized)
}

func TestRegisterWithoutAvatar(t *testing.T) {
	s := newServer(t)

	env := s.do(t, "POST", "/api/v1/users/register", "", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"fullName": "Alice",
		"password": "long-enough-password",
	}, fiber.StatusBadRequest)
	if env.Message != "Avatar file is required" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestLoginThenCurrentUser(t *testing.T) {
	s := newServer(t)
	s.user(t, "alice")

	session := s.login(t, "alice")
	if session.AccessToken == "" || session.RefreshToken == "" {
		t.Fatal("expected both tokens")
	}

	env := s.do(t, "GET", "/api/v1/users/current-user", session.AccessToken, nil, fiber.StatusOK)
	var me struct {
		Username string `json:"username"`
	}
	if err := json.Unmarshal(env.Data, &me); err != nil {
		t.Fatal(err)
	}
	if me.Username != "alice" {
		t.Errorf("username = %q, want alice", me.Username)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	s := newServer(t)
	s.user(t, "alice")

	s.do(t, "POST", "/api/v1/users/login", "", map[string]string{
		"username": "alice",
		"password": "wrong-password",
	}, fiber.StatusUnauthorized)
	s.do(t, "POST", "/api/v1/users/login", "", map[string]string{
		"username": "nobody",
		"password": testPassword,
	}, fiber.StatusNotFound)
}

func TestRefreshTokenIsNotAnAccessToken(t *testing.T) {
	s := newServer(t)
	s.user(t, "alice")
	session := s.login(t, "alice")

	s.do(t, "GET", "/api/v1/users/current-user", session.RefreshToken, nil, fiber.StatusUnauthorized)

	env := s.do(t, "POST", "/api/v1/users/refresh-token", "", map[string]string{
		"refreshToken": session.RefreshToken,
	}, fiber.StatusOK)
	var rotated services.Session
	if err := json.Unmarshal(env.Data, &rotated); err != nil {
		t.Fatal(err)
	}
	if rotated.RefreshToken == session.RefreshToken {
		t.Error("refresh token was not rotated")
	}

	// The old refresh token is no longer accepted.
	s.do(t, "POST", "/api/v1/users/refresh-token", "", map[string]string{
		"refreshToken": session.RefreshToken,
	}, fiber.StatusUnauthorized)
}

func TestLogoutInvalidatesRefreshToken(t *testing.T) {
	s := newServer(t)
	s.user(t, "alice")
	session := s.login(t, "alice")

	s.do(t, "POST", "/api/v1/users/logout", session.AccessToken, nil, fiber.StatusOK)
	s.do(t, "POST", "/api/v1/users/refresh-token", "", map[string]string{
		"refreshToken": session.RefreshToken,
	}, fiber.StatusUnauthorized)
}

func TestMalformedIDs(t *testing.T) {
	s := newServer(t)
	s.user(t, "alice")
	token := s.login(t, "alice").AccessToken

	s.do(t, "GET", "/api/v1/comments/not-a-uuid", token, nil, fiber.StatusNotFound)
	s.do(t, "GET", "/api/v1/videos/not-a-uuid", token, nil, fiber.StatusBadRequest)
	s.do(t, "PATCH", "/api/v1/tweets/not-a-uuid", token, map[string]string{"content": "x"}, fiber.StatusBadRequest)
}

func TestOwnershipAndExistence(t *testing.T) {
	s := newServer(t)
	owner := s.user(t, "owner")
	s.user(t, "mallory")
	video := s.video(t, owner, "clip")
	token := s.login(t, "mallory").AccessToken

	s.do(t, "PATCH", "/api/v1/videos/"+video.ID.String(), token,
		map[string]string{"title": "stolen"}, fiber.StatusForbidden)
	s.do(t, "DELETE", "/api/v1/videos/"+video.ID.String(), token, nil, fiber.StatusForbidden)
	s.do(t, "DELETE", "/api/v1/videos/00000000-0000-0000-0000-000000000001", token, nil, fiber.StatusNotFound)

	var stored models.Video
	if err := s.db.First(&stored, "id = ?", video.ID).Error; err != nil {
		t.Fatal(err)
	}
	if stored.Title != "clip" {
		t.Errorf("title = %q, want unchanged", stored.Title)
	}
}

func TestToggleVideoLike(t *testing.T) {
	s := newServer(t)
	owner := s.user(t, "owner")
	s.user(t, "fan")
	video := s.video(t, owner, "clip")
	token := s.login(t, "fan").AccessToken
	path := "/api/v1/likes/toggle/v/" + video.ID.String()

	if env := s.do(t, "POST", path, token, nil, fiber.StatusOK); env.Message != "Liked the video successfully" {
		t.Errorf("first toggle message = %q", env.Message)
	}
	if env := s.do(t, "POST", path, token, nil, fiber.StatusOK); env.Message != "Unliked the video successfully" {
		t.Errorf("second toggle message = %q", env.Message)
	}
}

func TestCommentFlow(t *testing.T) {
	s := newServer(t)
	owner := s.user(t, "owner")
	s.user(t, "viewer")
	video := s.video(t, owner, "clip")
	token := s.login(t, "viewer").AccessToken

	s.do(t, "POST", "/api/v1/comments/"+video.ID.String(), token,
		map[string]string{"content": ""}, fiber.StatusBadRequest)
	s.do(t, "POST", "/api/v1/comments/"+video.ID.String(), token,
		map[string]string{"content": "nice"}, fiber.StatusCreated)

	env := s.do(t, "GET", "/api/v1/comments/"+video.ID.String()+"?page=1&limit=5", token, nil, fiber.StatusOK)
	var page struct {
		Docs      []json.RawMessage `json:"docs"`
		TotalDocs int64             `json:"totalDocs"`
		Limit     int               `json:"limit"`
	}
	if err := json.Unmarshal(env.Data, &page); err != nil {
		t.Fatal(err)
	}
	if page.TotalDocs != 1 || len(page.Docs) != 1 || page.Limit != 5 {
		t.Errorf("page = %+v", page)
	}
}

func TestEmptyDataIsAnObject(t *testing.T) {
	s := newServer(t)
	s.user(t, "alice")
	token := s.login(t, "alice").AccessToken

	env := s.do(t, "POST", "/api/v1/users/logout", token, nil, fiber.StatusOK)
	if string(env.Data) != "{}" {
		t.Errorf("data = %s, want {}", env.Data)
	}
}
