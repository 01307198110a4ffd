package server

import (
	"fmt"

	"quill/internal/forms"
	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateComment attaches a comment to an owned post and redirects back to
// its detail page. A rejected comment re-renders the detail page with the
// submitted text and the field error.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return nil
	}

	var form forms.CommentForm
	if err := c.BodyParser(&form); err != nil {
		return respondServiceError(c, models.NewValidationError("Malformed form submission"))
	}

	if errs := form.Validate(); len(errs) > 0 {
		return s.renderPostDetail(c, id, &form, errs)
	}

	if _, err := s.commentService.Create(c.UserContext(), service.CreateCommentInput{
		UserID: s.currentUserID(c),
		PostID: id,
		Text:   form.Text,
	}); err != nil {
		return respondServiceError(c, err)
	}

	return c.Redirect(fmt.Sprintf("/posts/%d", id), fiber.StatusFound)
}
