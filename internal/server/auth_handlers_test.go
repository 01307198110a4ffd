package server

import (
	"net/url"
	"testing"

	"quill/internal/seed"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerValues(email string) url.Values {
	return url.Values{
		"first_name":       {"Alice"},
		"last_name":        {"Walker"},
		"email":            {email},
		"password":         {"secret1"},
		"confirm_password": {"secret1"},
	}
}

func TestRegisterOpensSessionAndRedirects(t *testing.T) {
	srv, store, _ := newTestServer(t)

	resp, err := srv.App().Test(formRequest("POST", "/register", registerValues("alice@example.com"), ""))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/index", resp.Header.Get("Location"))
	assert.Equal(t, 1, store.Len())

	// The fresh cookie grants access to gated pages.
	token := sessionCookie(t, resp)
	resp, err = srv.App().Test(getRequest("/index", token))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Alice Walker")
}

func TestRegisterValidationFailureKeepsValues(t *testing.T) {
	srv, store, _ := newTestServer(t)

	values := registerValues("not-an-email")
	values.Set("confirm_password", "different")

	resp, err := srv.App().Test(formRequest("POST", "/register", values, ""))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, store.Len())

	var view struct {
		Values struct {
			FirstName string `json:"first_name"`
			Email     string `json:"email"`
		} `json:"values"`
		Errors map[string]string `json:"errors"`
	}
	decodeBody(t, resp, &view)
	assert.Equal(t, "Alice", view.Values.FirstName)
	assert.Equal(t, "not-an-email", view.Values.Email)
	assert.Contains(t, view.Errors, "email")
	assert.Contains(t, view.Errors, "confirm_password")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	srv, store, db := newTestServer(t)
	seedUser(t, db, "alice@example.com")

	resp, err := srv.App().Test(formRequest("POST", "/register", registerValues("alice@example.com"), ""))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, store.Len())
	assert.Contains(t, readBody(t, resp), "already exists")
}

func TestLoginSuccess(t *testing.T) {
	srv, store, db := newTestServer(t)
	seedUser(t, db, "alice@example.com")

	resp, err := srv.App().Test(formRequest("POST", "/login", url.Values{
		"email":    {"alice@example.com"},
		"password": {seed.DefaultPassword},
	}, ""))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/index", resp.Header.Get("Location"))
	assert.Equal(t, 1, store.Len())
}

func TestLoginFailuresAreGenericAndOpenNoSession(t *testing.T) {
	srv, store, db := newTestServer(t)
	seedUser(t, db, "alice@example.com")

	attempts := []url.Values{
		{"email": {"alice@example.com"}, "password": {"wrong"}},
		{"email": {"alice@example.com"}, "password": {"stillwrong"}},
		{"email": {"nobody@example.com"}, "password": {seed.DefaultPassword}},
	}
	for _, values := range attempts {
		resp, err := srv.App().Test(formRequest("POST", "/login", values, ""))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Contains(t, readBody(t, resp), "Incorrect username or password")
	}
	assert.Equal(t, 0, store.Len())
}

func TestLogoutDestroysSession(t *testing.T) {
	srv, store, db := newTestServer(t)
	user := seedUser(t, db, "alice@example.com")
	token := loginAs(t, store, user)

	resp, err := srv.App().Test(getRequest("/logout", token))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	assert.Equal(t, 0, store.Len())

	// The stale cookie no longer grants access.
	resp, err = srv.App().Test(getRequest("/posts", token))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestUnauthenticatedRequestsRedirectToLogin(t *testing.T) {
	srv, _, _ := newTestServer(t)

	for _, target := range []string{"/index", "/posts", "/new", "/posts/1"} {
		resp, err := srv.App().Test(getRequest(target, ""))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusFound, resp.StatusCode, "GET %s", target)
		assert.Equal(t, "/login", resp.Header.Get("Location"), "GET %s", target)
	}
}

func TestLoginAndRegisterPagesArePublic(t *testing.T) {
	srv, _, _ := newTestServer(t)

	for _, target := range []string{"/", "/login", "/register"} {
		resp, err := srv.App().Test(getRequest(target, ""))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, "GET %s", target)
	}
}
