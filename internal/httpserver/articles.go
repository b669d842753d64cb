// internal/httpserver/articles.go
//
// Article listing and CRUD handlers. Mutations go through
// owner-filtered single statements in the article store, so a row that
// exists but belongs to someone else is indistinguishable from a
// missing one (both answer 404).

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/rs/zerolog/log"

	"github.com/sonalijain20/blog-app/internal/article"
)

// articleReq is the request payload for article create/update.
// Content stays raw so a non-string value surfaces as a field error.
type articleReq struct {
	Content json.RawMessage `json:"content"`
}

// pageMax bounds pageNo and pageSize; (pageMax-1)*pageMax still fits
// in an int64 offset.
const pageMax = 1 << 31

// handleListArticles returns a page of articles in creation order.
// Public; pageNo defaults to 1 and pageSize to 20, both must be >= 1.
func (s *Server) handleListArticles(w http.ResponseWriter, r *http.Request) {
	pageNo, okNo := queryInt(r, "pageNo", 1)
	pageSize, okSize := queryInt(r, "pageSize", 20)
	if !okNo || !okSize || pageNo < 1 || pageSize < 1 {
		_ = render.Render(w, r, errBadPaging())
		return
	}
	// Cap so the store's offset arithmetic cannot overflow; pages this
	// far past the data answer an empty list either way.
	pageNo = min(pageNo, pageMax)
	pageSize = min(pageSize, pageMax)

	articles, err := s.articles.List(r.Context(), pageNo, pageSize)
	if err != nil {
		log.Error().Err(err).Msg("list articles")
		_ = render.Render(w, r, errInternal(err))
		return
	}
	render.JSON(w, r, articles)
}

// handleCreateArticle inserts a trimmed article owned by the acting user.
func (s *Server) handleCreateArticle(w http.ResponseWriter, r *http.Request) {
	var body articleReq
	if err := render.DecodeJSON(r.Body, &body); err != nil {
		_ = render.Render(w, r, errBadRequest("invalid JSON body"))
		return
	}
	content, v := validateContent(body.Content)
	if v.any() {
		_ = render.Render(w, r, v)
		return
	}

	me := currentUser(r)
	a, err := s.articles.Create(r.Context(), me.ID, content)
	if err != nil {
		log.Error().Err(err).Int64("user", me.ID).Msg("create article")
		_ = render.Render(w, r, errInternal(err))
		return
	}
	_ = render.Render(w, r, &dataResponse{StatusCode: 200, Data: a})
}

// handleUpdateArticle replaces the content of an article owned by the
// acting user. The owner filter is part of the UPDATE itself.
func (s *Server) handleUpdateArticle(w http.ResponseWriter, r *http.Request) {
	var body articleReq
	if err := render.DecodeJSON(r.Body, &body); err != nil {
		_ = render.Render(w, r, errBadRequest("invalid JSON body"))
		return
	}
	content, v := validateContent(body.Content)
	if v.any() {
		_ = render.Render(w, r, v)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "articleId"), 10, 64)
	if err != nil {
		_ = render.Render(w, r, errArticleNotFound())
		return
	}

	me := currentUser(r)
	err = s.articles.UpdateOwned(r.Context(), id, me.ID, content)
	if errors.Is(err, article.ErrNotFound) {
		_ = render.Render(w, r, errArticleNotFound())
		return
	}
	if err != nil {
		log.Error().Err(err).Int64("article", id).Msg("update article")
		_ = render.Render(w, r, errInternal(err))
		return
	}
	_ = render.Render(w, r, msgOK("Article updated!"))
}

// handleDeleteArticle removes an article owned by the acting user.
func (s *Server) handleDeleteArticle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "articleId"), 10, 64)
	if err != nil {
		_ = render.Render(w, r, errArticleNotFound())
		return
	}

	me := currentUser(r)
	err = s.articles.DeleteOwned(r.Context(), id, me.ID)
	if errors.Is(err, article.ErrNotFound) {
		_ = render.Render(w, r, errArticleNotFound())
		return
	}
	if err != nil {
		log.Error().Err(err).Int64("article", id).Msg("delete article")
		_ = render.Render(w, r, errInternal(err))
		return
	}
	_ = render.Render(w, r, msgOK("Articles deleted!"))
}

// queryInt parses an integer query parameter, returning def when the
// parameter is absent. ok is false for non-numeric values.
func queryInt(r *http.Request, key string, def int) (int, bool) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, true
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
