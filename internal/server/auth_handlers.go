package server

import (
	"context"
	"errors"
	"log/slog"

	"quill/internal/forms"
	"quill/internal/middleware"
	"quill/internal/models"
	"quill/internal/service"
	"quill/internal/session"

	"github.com/gofiber/fiber/v2"
)

// SessionRequired gates a route group on a live session. Requests without
// one are redirected to the login page.
func (s *Server) SessionRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(session.CookieName)
		sess, err := s.sessions.Get(c.UserContext(), token)
		if err != nil {
			if !errors.Is(err, session.ErrNotFound) {
				middleware.Logger.WarnContext(c.UserContext(), "session lookup failed",
					slog.String("error", err.Error()))
			}
			clearSessionCookie(c)
			return c.Redirect("/login", fiber.StatusFound)
		}

		c.Locals("userID", sess.UserID)
		c.Locals("displayName", sess.DisplayName)
		c.SetUserContext(context.WithValue(c.UserContext(), middleware.UserIDKey, sess.UserID))
		return c.Next()
	}
}

// LoginPage renders the login view model.
func (s *Server) LoginPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "login", "errors": forms.Errors{}})
}

// Login verifies credentials and opens a session. A failed attempt
// re-renders the login page with one generic message regardless of whether
// the email or the password was wrong.
func (s *Server) Login(c *fiber.Ctx) error {
	var form forms.LoginForm
	if err := c.BodyParser(&form); err != nil {
		return respondServiceError(c, models.NewValidationError("Malformed form submission"))
	}

	if errs := form.Validate(); len(errs) > 0 {
		return c.JSON(fiber.Map{"page": "login", "values": form, "errors": errs})
	}

	user, err := s.authService.Login(c.UserContext(), form.Email, form.Password)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "UNAUTHORIZED" {
			return c.JSON(fiber.Map{
				"page":   "login",
				"values": form,
				"errors": forms.Errors{"form": appErr.Message},
			})
		}
		return respondServiceError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "user logged in", slog.Any("user_id", user.ID))
	return s.startSession(c, user)
}

// RegisterPage renders the registration view model.
func (s *Server) RegisterPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "register", "errors": forms.Errors{}})
}

// Register creates an account and logs the new user straight in. Validation
// failures re-render the form with the submitted values preserved.
func (s *Server) Register(c *fiber.Ctx) error {
	var form forms.RegisterForm
	if err := c.BodyParser(&form); err != nil {
		return respondServiceError(c, models.NewValidationError("Malformed form submission"))
	}

	if errs := form.Validate(); len(errs) > 0 {
		return c.JSON(fiber.Map{"page": "register", "values": form, "errors": errs})
	}

	user, err := s.authService.Register(c.UserContext(), service.RegisterInput{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Password:  form.Password,
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "VALIDATION_ERROR" {
			return c.JSON(fiber.Map{
				"page":   "register",
				"values": form,
				"errors": forms.Errors{"email": appErr.Message},
			})
		}
		return respondServiceError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "user registered", slog.Any("user_id", user.ID))
	return s.startSession(c, user)
}

// Logout destroys the server-side session and clears the cookie. Always
// lands on the login page, even without a live session.
func (s *Server) Logout(c *fiber.Ctx) error {
	if token := c.Cookies(session.CookieName); token != "" {
		if err := s.sessions.Destroy(c.UserContext(), token); err != nil {
			middleware.Logger.WarnContext(c.UserContext(), "session destroy failed",
				slog.String("error", err.Error()))
		}
	}
	clearSessionCookie(c)
	return c.Redirect("/login", fiber.StatusFound)
}
