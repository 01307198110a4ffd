package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"quill/internal/cache"
	"quill/internal/config"
	"quill/internal/database"
	"quill/internal/models"
	"quill/internal/seed"
	"quill/internal/session"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestServer builds a server over an in-memory SQLite database and an
// in-process session store. Redis is disabled so cache-aside reads go
// straight to the database.
func newTestServer(t *testing.T) (*Server, *session.MemoryStore, *gorm.DB) {
	t.Helper()
	t.Setenv("APP_ENV", "test")
	cache.SetClient(nil)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps every query on the same :memory: database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		Host:            "127.0.0.1",
		Port:            "5000",
		SessionTTLHours: 24,
		Env:             "test",
	}
	store := session.NewMemoryStore(24 * time.Hour)
	srv := NewServerWithDeps(cfg, db, nil, store)
	return srv, store, db
}

// loginAs opens a session for the user directly in the store and returns
// the cookie token.
func loginAs(t *testing.T, store session.Store, user *models.User) string {
	t.Helper()
	token, err := store.Create(context.Background(), session.Session{
		UserID:      user.ID,
		DisplayName: user.DisplayName(),
	})
	require.NoError(t, err)
	return token
}

// seedUser persists a user whose password is seed.DefaultPassword.
func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user, err := seed.NewFactory(db).CreateUser(func(u *models.User) {
		u.Email = email
	})
	require.NoError(t, err)
	return user
}

func seedPost(t *testing.T, db *gorm.DB, owner *models.User, title string) *models.Post {
	t.Helper()
	post, err := seed.NewFactory(db).CreatePost(owner, func(p *models.Post) {
		p.Title = title
	})
	require.NoError(t, err)
	return post
}

// formRequest builds a form-encoded request, optionally with a session
// cookie.
func formRequest(method, target string, values url.Values, token string) *http.Request {
	var body io.Reader
	if values != nil {
		body = strings.NewReader(values.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if values != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	}
	return req
}

func getRequest(target, token string) *http.Request {
	return formRequest("GET", target, nil, token)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return string(b)
}

func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(readBody(t, resp)), dest))
}

// sessionCookie extracts the session cookie value from a response, failing
// the test if none was set.
func sessionCookie(t *testing.T, resp *http.Response) string {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == session.CookieName {
			return c.Value
		}
	}
	t.Fatal("session cookie not set")
	return ""
}
