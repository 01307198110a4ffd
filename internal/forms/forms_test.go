package forms

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validRegisterForm() RegisterForm {
	return RegisterForm{
		FirstName:       "Alice",
		LastName:        "Walker",
		Email:           "alice@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
}

func TestRegisterFormValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RegisterForm)
		wantKey string
	}{
		{"valid", func(f *RegisterForm) {}, ""},
		{"missing first name", func(f *RegisterForm) { f.FirstName = "  " }, "first_name"},
		{"missing last name", func(f *RegisterForm) { f.LastName = "" }, "last_name"},
		{"missing email", func(f *RegisterForm) { f.Email = "" }, "email"},
		{"malformed email", func(f *RegisterForm) { f.Email = "not-an-email" }, "email"},
		{"email missing tld", func(f *RegisterForm) { f.Email = "alice@example" }, "email"},
		{"email too long", func(f *RegisterForm) {
			f.Email = strings.Repeat("a", 250) + "@example.com"
		}, "email"},
		{"missing password", func(f *RegisterForm) {
			f.Password = ""
			f.ConfirmPassword = ""
		}, "password"},
		{"short password", func(f *RegisterForm) {
			f.Password = "abc"
			f.ConfirmPassword = "abc"
		}, "password"},
		{"mismatched confirmation", func(f *RegisterForm) { f.ConfirmPassword = "different" }, "confirm_password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validRegisterForm()
			tt.mutate(&form)
			errs := form.Validate()

			if tt.wantKey == "" {
				assert.Empty(t, errs)
			} else {
				assert.Contains(t, errs, tt.wantKey)
			}
		})
	}
}

func TestRegisterFormReportsAllInvalidFields(t *testing.T) {
	form := RegisterForm{}
	errs := form.Validate()

	assert.Contains(t, errs, "first_name")
	assert.Contains(t, errs, "last_name")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
	// No confirmation mismatch reported when the password itself is missing.
	assert.NotContains(t, errs, "confirm_password")
}

func TestLoginFormValidate(t *testing.T) {
	form := LoginForm{Email: "alice@example.com", Password: "secret1"}
	assert.Empty(t, form.Validate())

	// Presence only; shape errors are indistinguishable from bad credentials.
	form = LoginForm{Email: "whatever", Password: "x"}
	assert.Empty(t, form.Validate())

	form = LoginForm{}
	errs := form.Validate()
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
}

func TestPostFormValidate(t *testing.T) {
	form := PostForm{Title: "Hello", Text: "First post"}
	assert.Empty(t, form.Validate())

	form = PostForm{Title: " ", Text: ""}
	errs := form.Validate()
	assert.Contains(t, errs, "title")
	assert.Contains(t, errs, "text")
}

func TestCommentFormValidate(t *testing.T) {
	form := CommentForm{Text: "nice post"}
	assert.Empty(t, form.Validate())

	form = CommentForm{Text: "   "}
	assert.Contains(t, form.Validate(), "text")
}
