package server

import (
	"fmt"

	"quill/internal/forms"
	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListPosts renders the authenticated user's posts, newest first. Backs the
// landing page, /index and /posts alike.
func (s *Server) ListPosts(c *fiber.Ctx) error {
	userID := s.currentUserID(c)

	posts, err := s.postService.ListByOwner(c.UserContext(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"page":  "posts",
		"user":  c.Locals("displayName"),
		"posts": posts,
	})
}

// GetPost renders the detail view of one owned post with its comments.
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return nil
	}
	return s.renderPostDetail(c, id, nil, nil)
}

// renderPostDetail builds the detail view model. The comment form state is
// threaded through so a rejected comment re-renders the same page.
func (s *Server) renderPostDetail(c *fiber.Ctx, id uint, commentValues *forms.CommentForm, commentErrors forms.Errors) error {
	userID := s.currentUserID(c)

	post, err := s.postService.GetOwned(c.UserContext(), id, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	comments, err := s.commentService.ListByPost(c.UserContext(), id, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	view := fiber.Map{
		"page":     "post_detail",
		"post":     post,
		"comments": comments,
	}
	if commentValues != nil {
		view["comment_values"] = commentValues
	}
	if len(commentErrors) > 0 {
		view["comment_errors"] = commentErrors
	}
	return c.JSON(view)
}

// NewPostPage renders the empty new-post form view model.
func (s *Server) NewPostPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "new_post", "errors": forms.Errors{}})
}

// CreatePost persists a new post for the current user and redirects to the
// feed.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var form forms.PostForm
	if err := c.BodyParser(&form); err != nil {
		return respondServiceError(c, models.NewValidationError("Malformed form submission"))
	}

	if errs := form.Validate(); len(errs) > 0 {
		return c.JSON(fiber.Map{"page": "new_post", "values": form, "errors": errs})
	}

	if _, err := s.postService.Create(c.UserContext(), service.CreatePostInput{
		OwnerID: s.currentUserID(c),
		Title:   form.Title,
		Text:    form.Text,
	}); err != nil {
		return respondServiceError(c, err)
	}

	return c.Redirect("/posts", fiber.StatusFound)
}

// EditPostPage renders the edit form prefilled with the post's current
// title and text.
func (s *Server) EditPostPage(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return nil
	}

	post, err := s.postService.GetOwned(c.UserContext(), id, s.currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"page":   "edit_post",
		"post":   post,
		"values": forms.PostForm{Title: post.Title, Text: post.Text},
		"errors": forms.Errors{},
	})
}

// UpdatePost applies an edit to an owned post and redirects to the feed.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return nil
	}

	var form forms.PostForm
	if err := c.BodyParser(&form); err != nil {
		return respondServiceError(c, models.NewValidationError("Malformed form submission"))
	}

	if errs := form.Validate(); len(errs) > 0 {
		return c.JSON(fiber.Map{"page": "edit_post", "values": form, "errors": errs})
	}

	if _, err := s.postService.Update(c.UserContext(), service.UpdatePostInput{
		OwnerID: s.currentUserID(c),
		PostID:  id,
		Title:   form.Title,
		Text:    form.Text,
	}); err != nil {
		return respondServiceError(c, err)
	}

	return c.Redirect("/posts", fiber.StatusFound)
}

// DeletePost removes an owned post and redirects to the feed.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return nil
	}

	if err := s.postService.Delete(c.UserContext(), id, s.currentUserID(c)); err != nil {
		return respondServiceError(c, err)
	}
	return c.Redirect("/posts", fiber.StatusFound)
}

// LikePost adds one like and redirects back to the post's detail page.
func (s *Server) LikePost(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return nil
	}

	if _, err := s.postService.Like(c.UserContext(), id, s.currentUserID(c)); err != nil {
		return respondServiceError(c, err)
	}
	return c.Redirect(fmt.Sprintf("/posts/%d", id), fiber.StatusFound)
}
