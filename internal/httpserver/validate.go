// internal/httpserver/validate.go
//
// Field-level request validation. Failures collect into a
// {errors: [{field, error}]} payload rendered with status 400.

package httpserver

import (
	"encoding/json"
	"net/http"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/render"
)

// FieldError is a single {field, error} validation entry.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// validationErrors renders the collected field errors with status 400.
type validationErrors struct {
	Errors []FieldError `json:"errors"`
}

func (v *validationErrors) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, http.StatusBadRequest)
	return nil
}

func (v *validationErrors) add(field, msg string) {
	v.Errors = append(v.Errors, FieldError{Field: field, Error: msg})
}

func (v *validationErrors) any() bool { return len(v.Errors) > 0 }

// credentials is the decoded, validated register/login payload.
type credentials struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// validEmail accepts a single bare RFC 5322 address with a dotted domain.
func validEmail(s string) bool {
	a, err := mail.ParseAddress(s)
	if err != nil || a.Address != s {
		return false
	}
	at := strings.LastIndex(s, "@")
	return strings.Contains(s[at+1:], ".")
}

// validateCredentials checks the shared register/login rules: email
// required, a string, and well-formed; password required, a string,
// with at least 8 characters; firstName/lastName strings when present.
func validateCredentials(body credentialsReq) (credentials, *validationErrors) {
	v := &validationErrors{}
	var c credentials
	var ok bool

	c.Email, ok = optionalString(body.Email)
	if !ok {
		v.add("email", "Email address is not valid")
	} else if c.Email == "" {
		v.add("email", "Email address is missing")
	} else if !validEmail(c.Email) {
		v.add("email", "Email address is not valid")
	}

	c.Password, ok = optionalString(body.Password)
	if !ok {
		v.add("password", "password must be a string")
	} else if c.Password == "" {
		v.add("password", "password is missing")
	} else if utf8.RuneCountInString(c.Password) < 8 {
		v.add("password", "password length should be at least 8 characters")
	}

	if c.FirstName, ok = optionalString(body.FirstName); !ok {
		v.add("firstName", "Invalid first name")
	}
	if c.LastName, ok = optionalString(body.LastName); !ok {
		v.add("lastName", "Invalid last name")
	}
	return c, v
}

// validateContent checks the article content rule: required string,
// 1–700 characters after trimming. Returns the trimmed content.
func validateContent(raw json.RawMessage) (string, *validationErrors) {
	v := &validationErrors{}
	content, ok := optionalString(raw)
	if len(raw) == 0 || !ok {
		v.add("content", "Content is missing or must be a string")
		return "", v
	}
	trimmed := strings.TrimSpace(content)
	if n := utf8.RuneCountInString(trimmed); n < 1 || n > 700 {
		v.add("content", "Content must be between 1 and 700 characters")
		return "", v
	}
	return trimmed, v
}

// optionalString decodes a raw JSON value that must be a string (or
// null/absent). ok is false when the value is present but not a string.
func optionalString(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}
