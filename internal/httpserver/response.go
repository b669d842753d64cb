// internal/httpserver/response.go
//
// Response payloads and renderers for the REST api.
// Renderers set their HTTP status via render.Status, following the
// chi/render pattern; the wire shapes keep the statusCode-in-body
// convention used by API clients.

package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/render"
)

// statusResponse is the generic {statusCode, message} payload used by
// most success and error responses.
type statusResponse struct {
	HTTPStatusCode int `json:"-"` // http response status code

	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

func (e *statusResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func msgOK(message string) render.Renderer {
	return &statusResponse{HTTPStatusCode: 200, StatusCode: 200, Message: message}
}

func errBadRequest(message string) render.Renderer {
	return &statusResponse{HTTPStatusCode: 400, StatusCode: 400, Message: message}
}

func errWrongPassword() render.Renderer {
	return &statusResponse{HTTPStatusCode: 401, StatusCode: 401, Message: "Incorrect password"}
}

func errTokenMissing() render.Renderer {
	return &statusResponse{HTTPStatusCode: 403, StatusCode: 403, Message: "Authorization token missing"}
}

func errUnauthorized() render.Renderer {
	return &statusResponse{HTTPStatusCode: 401, StatusCode: 401, Message: "Unauthorized"}
}

func errArticleNotFound() render.Renderer {
	return &statusResponse{HTTPStatusCode: 404, StatusCode: 404, Message: "Article not found or you don't have access to it."}
}

func errRouteNotFound() render.Renderer {
	return &statusResponse{HTTPStatusCode: 404, StatusCode: 404, Message: "Not Found"}
}

func errInternal(err error) render.Renderer {
	msg := "Something went wrong"
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return &statusResponse{HTTPStatusCode: 500, StatusCode: 500, Message: msg}
}

// dataResponse wraps a created record as {statusCode, data}.
type dataResponse struct {
	StatusCode int `json:"statusCode"`
	Data       any `json:"data"`
}

func (d *dataResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, http.StatusOK)
	return nil
}

// loginResponse is the /login success payload.
type loginResponse struct {
	Message    string    `json:"message"`
	StatusCode int       `json:"statusCode"`
	User       loginUser `json:"user"`
}

type loginUser struct {
	Email       string    `json:"email"`
	ID          int64     `json:"id"`
	AccessToken string    `json:"accessToken"`
	IssuedAt    time.Time `json:"issuedAt"`
}

func (l *loginResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, http.StatusOK)
	return nil
}

// profileResponse is the /get-profile success payload.
type profileResponse struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (p *profileResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, http.StatusOK)
	return nil
}

// pagingErrResponse is the {success, message} payload returned for bad
// pagination parameters on the public article listing.
type pagingErrResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (p *pagingErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, http.StatusBadRequest)
	return nil
}

func errBadPaging() render.Renderer {
	return &pagingErrResponse{Success: false, Message: "Page size and page no should be greater than 1"}
}
