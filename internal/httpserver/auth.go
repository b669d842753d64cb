// internal/httpserver/auth.go
//
// Registration, login, and profile handlers.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"github.com/rs/zerolog/log"

	"github.com/sonalijain20/blog-app/internal/token"
	"github.com/sonalijain20/blog-app/internal/user"
)

// credentialsReq is the request payload for /register and /login.
// Every field stays raw so a non-string value surfaces as a field
// error instead of a decode failure.
type credentialsReq struct {
	Email     json.RawMessage `json:"email"`
	Password  json.RawMessage `json:"password"`
	FirstName json.RawMessage `json:"firstName"`
	LastName  json.RawMessage `json:"lastName"`
}

// handleRegister validates the payload, rejects duplicate emails, and
// inserts a new user with a bcrypt-hashed password. No token is issued
// on registration.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body credentialsReq
	if err := render.DecodeJSON(r.Body, &body); err != nil {
		_ = render.Render(w, r, errBadRequest("invalid JSON body"))
		return
	}

	creds, v := validateCredentials(body)
	if v.any() {
		_ = render.Render(w, r, v)
		return
	}

	exists, err := s.users.ExistsByEmail(r.Context(), creds.Email)
	if err != nil {
		log.Error().Err(err).Msg("check existing user")
		_ = render.Render(w, r, errInternal(err))
		return
	}
	if exists {
		_ = render.Render(w, r, errBadRequest("User already exists with provided email"))
		return
	}

	hash, err := user.HashPassword(creds.Password)
	if err != nil {
		log.Error().Err(err).Msg("hash password")
		_ = render.Render(w, r, errInternal(err))
		return
	}
	if _, err := s.users.Create(r.Context(), creds.Email, creds.FirstName, creds.LastName, hash); err != nil {
		log.Error().Err(err).Str("email", creds.Email).Msg("create user")
		_ = render.Render(w, r, errInternal(err))
		return
	}

	_ = render.Render(w, r, msgOK("Registered successfully! Please Login to continue"))
}

// handleLogin authenticates the user and issues an 8-hour access token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body credentialsReq
	if err := render.DecodeJSON(r.Body, &body); err != nil {
		_ = render.Render(w, r, errBadRequest("invalid JSON body"))
		return
	}

	creds, v := validateCredentials(body)
	if v.any() {
		_ = render.Render(w, r, v)
		return
	}

	u, err := s.users.FindByEmail(r.Context(), creds.Email)
	if errors.Is(err, user.ErrNotFound) {
		_ = render.Render(w, r, errBadRequest("User does not exists"))
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("find user by email")
		_ = render.Render(w, r, errInternal(err))
		return
	}

	if !user.CheckPassword(u.PasswordHash, creds.Password) {
		_ = render.Render(w, r, errWrongPassword())
		return
	}

	accessToken, issuedAt, err := s.tokens.Issue(token.Identity{ID: u.ID, Email: u.Email})
	if err != nil {
		log.Error().Err(err).Int64("user", u.ID).Msg("sign token")
		_ = render.Render(w, r, errInternal(err))
		return
	}

	_ = render.Render(w, r, &loginResponse{
		Message:    "Login Successful!",
		StatusCode: 200,
		User: loginUser{
			Email:       u.Email,
			ID:          u.ID,
			AccessToken: accessToken,
			IssuedAt:    issuedAt,
		},
	})
}

// handleProfile returns the acting user's email and name.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	me := currentUser(r)
	u, err := s.users.FindByID(r.Context(), me.ID)
	if err != nil {
		log.Error().Err(err).Int64("user", me.ID).Msg("fetch profile")
		_ = render.Render(w, r, errInternal(err))
		return
	}
	_ = render.Render(w, r, &profileResponse{
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	})
}
