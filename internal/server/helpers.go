package server

import (
	"errors"
	"strconv"
	"time"

	"quill/internal/models"
	"quill/internal/session"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten signals that the helper already wrote the response and
// the handler should return nil.
var errResponseWritten = errors.New("response already written")

// currentUserID returns the authenticated user's ID set by SessionRequired.
func (s *Server) currentUserID(c *fiber.Ctx) uint {
	uid, _ := c.Locals("userID").(uint)
	return uid
}

// parseID extracts the :id route parameter. A non-numeric ID gets the same
// 404 a missing record would.
func parseID(c *fiber.Ctx) (uint, error) {
	raw := c.Params("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		_ = models.RespondWithError(c, fiber.StatusNotFound, models.NewNotFoundError("Post", raw))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// respondServiceError maps the error taxonomy to HTTP statuses.
func respondServiceError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case "NOT_FOUND":
			return models.RespondWithError(c, fiber.StatusNotFound, appErr)
		case "VALIDATION_ERROR":
			return models.RespondWithError(c, fiber.StatusBadRequest, appErr)
		case "UNAUTHORIZED":
			return models.RespondWithError(c, fiber.StatusUnauthorized, appErr)
		}
	}
	return models.RespondWithError(c, fiber.StatusInternalServerError, err)
}

// startSession creates a server-side session for the user, sets the cookie
// and redirects to the post feed.
func (s *Server) startSession(c *fiber.Ctx, user *models.User) error {
	token, err := s.sessions.Create(c.UserContext(), session.Session{
		UserID:      user.ID,
		DisplayName: user.DisplayName(),
	})
	if err != nil {
		return respondServiceError(c, models.NewInternalError(err))
	}

	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Expires:  time.Now().Add(time.Duration(s.config.SessionTTLHours) * time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return c.Redirect("/index", fiber.StatusFound)
}

// clearSessionCookie expires the session cookie on the client.
func clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}
