// Package forms provides structural validation for submitted form data.
// Validation runs only on submission; on failure the handler re-renders the
// page with the submitted values and one message per invalid field.
package forms

import (
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

const minPasswordLen = 6

// Errors maps a field name to its validation message.
type Errors map[string]string

// RegisterForm carries a registration submission.
type RegisterForm struct {
	FirstName       string `form:"first_name" json:"first_name"`
	LastName        string `form:"last_name" json:"last_name"`
	Email           string `form:"email" json:"email"`
	Password        string `form:"password" json:"-"`
	ConfirmPassword string `form:"confirm_password" json:"-"`
}

// Validate checks field presence, email shape, password length and confirmation.
func (f *RegisterForm) Validate() Errors {
	errs := Errors{}

	if strings.TrimSpace(f.FirstName) == "" {
		errs["first_name"] = "First name is required"
	}
	if strings.TrimSpace(f.LastName) == "" {
		errs["last_name"] = "Last name is required"
	}

	email := strings.TrimSpace(f.Email)
	switch {
	case email == "":
		errs["email"] = "Email is required"
	case !emailRegex.MatchString(email) || len(email) > 254:
		errs["email"] = "Invalid email format"
	}

	switch {
	case f.Password == "":
		errs["password"] = "Password is required"
	case len(f.Password) < minPasswordLen:
		errs["password"] = "Password must be at least 6 characters"
	}

	if f.Password != "" && f.Password != f.ConfirmPassword {
		errs["confirm_password"] = "Passwords do not match"
	}

	return errs
}

// LoginForm carries a login submission.
type LoginForm struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"-"`
}

// Validate checks field presence only; credential checking is the
// authentication layer's job.
func (f *LoginForm) Validate() Errors {
	errs := Errors{}
	if strings.TrimSpace(f.Email) == "" {
		errs["email"] = "Email is required"
	}
	if f.Password == "" {
		errs["password"] = "Password is required"
	}
	return errs
}

// PostForm carries a new-post or edit-post submission.
type PostForm struct {
	Title string `form:"title" json:"title"`
	Text  string `form:"text" json:"text"`
}

func (f *PostForm) Validate() Errors {
	errs := Errors{}
	if strings.TrimSpace(f.Title) == "" {
		errs["title"] = "Title is required"
	}
	if strings.TrimSpace(f.Text) == "" {
		errs["text"] = "Post text is required"
	}
	return errs
}

// CommentForm carries a comment submission on a post detail page.
type CommentForm struct {
	Text string `form:"text" json:"text"`
}

func (f *CommentForm) Validate() Errors {
	errs := Errors{}
	if strings.TrimSpace(f.Text) == "" {
		errs["text"] = "Comment text is required"
	}
	return errs
}
