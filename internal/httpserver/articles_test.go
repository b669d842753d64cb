package httpserver

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/sonalijain20/blog-app/internal/article"
)

func TestCreateArticleContentBounds(t *testing.T) {
	s, _ := newTestServer(t)
	tok, id := registerAndLogin(t, s, "author@example.com", "longenough")

	// Exactly 700 characters is accepted.
	w := do(t, s, http.MethodPost, "/api/v1/article", tok, map[string]any{
		"content": strings.Repeat("x", 700),
	})
	if w.Code != http.StatusOK {
		t.Fatalf("700 chars: status %d body %s", w.Code, w.Body.String())
	}
	var res struct {
		StatusCode int             `json:"statusCode"`
		Data       article.Article `json:"data"`
	}
	decode(t, w, &res)
	if res.Data.ID == 0 || res.Data.UserID != id || len(res.Data.Content) != 700 {
		t.Errorf("unexpected created record %+v", res.Data)
	}

	// 701 characters fails validation.
	w = do(t, s, http.MethodPost, "/api/v1/article", tok, map[string]any{
		"content": strings.Repeat("x", 701),
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("701 chars: status %d, want 400", w.Code)
	}

	// Bounds count characters, not bytes: 700 two-byte runes are fine.
	w = do(t, s, http.MethodPost, "/api/v1/article", tok, map[string]any{
		"content": strings.Repeat("é", 700),
	})
	if w.Code != http.StatusOK {
		t.Errorf("700 multibyte chars: status %d body %s", w.Code, w.Body.String())
	}
	w = do(t, s, http.MethodPost, "/api/v1/article", tok, map[string]any{
		"content": strings.Repeat("é", 701),
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("701 multibyte chars: status %d, want 400", w.Code)
	}
}

func TestCreateArticleValidation(t *testing.T) {
	s, _ := newTestServer(t)
	tok, _ := registerAndLogin(t, s, "author@example.com", "longenough")

	cases := []struct {
		name string
		body []byte
	}{
		{"missing content", []byte(`{}`)},
		{"non-string content", []byte(`{"content": 42}`)},
		{"whitespace only", []byte(`{"content": "   "}`)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(t, s, http.MethodPost, "/api/v1/article", tok, tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status %d, want 400: %s", w.Code, w.Body.String())
			}
			var res validationErrors
			decode(t, w, &res)
			if len(res.Errors) == 0 || res.Errors[0].Field != "content" {
				t.Errorf("expected content field error in %s", w.Body.String())
			}
		})
	}
}

func TestCreateArticleTrimsContent(t *testing.T) {
	s, _ := newTestServer(t)
	tok, _ := registerAndLogin(t, s, "author@example.com", "longenough")

	w := do(t, s, http.MethodPost, "/api/v1/article", tok, map[string]any{
		"content": "  hello world  ",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status %d body %s", w.Code, w.Body.String())
	}
	var res struct {
		Data article.Article `json:"data"`
	}
	decode(t, w, &res)
	if res.Data.Content != "hello world" {
		t.Errorf("content not trimmed: %q", res.Data.Content)
	}
}

func TestArticleMutationsRequireAuth(t *testing.T) {
	s, _ := newTestServer(t)
	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/v1/article"},
		{http.MethodPut, "/api/v1/article/1"},
		{http.MethodDelete, "/api/v1/article/1"},
	} {
		w := do(t, s, tc.method, tc.path, "", []byte(`{"content":"hi"}`))
		if w.Code != http.StatusForbidden {
			t.Errorf("%s %s: status %d, want 403", tc.method, tc.path, w.Code)
		}
	}
}

func TestArticleOwnership(t *testing.T) {
	s, conn := newTestServer(t)
	tokA, _ := registerAndLogin(t, s, "alice@example.com", "longenough")
	tokB, _ := registerAndLogin(t, s, "bob@example.com", "longenough")

	w := do(t, s, http.MethodPost, "/api/v1/article", tokA, map[string]any{"content": "alice's post"})
	if w.Code != http.StatusOK {
		t.Fatalf("create: status %d", w.Code)
	}
	var created struct {
		Data article.Article `json:"data"`
	}
	decode(t, w, &created)
	path := fmt.Sprintf("/api/v1/article/%d", created.Data.ID)

	// Bob cannot update Alice's article.
	w = do(t, s, http.MethodPut, path, tokB, map[string]any{"content": "bob was here"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("foreign update: status %d, want 404", w.Code)
	}
	var res statusResponse
	decode(t, w, &res)
	if res.Message != "Article not found or you don't have access to it." {
		t.Errorf("unexpected message %q", res.Message)
	}

	// The row is untouched.
	var content string
	if err := conn.QueryRow(`SELECT content FROM articles WHERE id=?`, created.Data.ID).Scan(&content); err != nil {
		t.Fatalf("select: %v", err)
	}
	if content != "alice's post" {
		t.Errorf("content changed by foreign user: %q", content)
	}

	// Bob cannot delete it either.
	w = do(t, s, http.MethodDelete, path, tokB, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("foreign delete: status %d, want 404", w.Code)
	}

	// Alice can.
	w = do(t, s, http.MethodDelete, path, tokA, nil)
	if w.Code != http.StatusOK {
		t.Errorf("owner delete: status %d body %s", w.Code, w.Body.String())
	}
}

func TestListArticlesPagination(t *testing.T) {
	s, _ := newTestServer(t)
	tok, _ := registerAndLogin(t, s, "author@example.com", "longenough")

	for i := 0; i < 3; i++ {
		w := do(t, s, http.MethodPost, "/api/v1/article", tok, map[string]any{
			"content": fmt.Sprintf("post %d", i),
		})
		if w.Code != http.StatusOK {
			t.Fatalf("create %d: status %d", i, w.Code)
		}
	}

	w := do(t, s, http.MethodGet, "/api/v1/articles?pageNo=1&pageSize=2", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: status %d", w.Code)
	}
	var page []article.Article
	decode(t, w, &page)
	if len(page) != 2 {
		t.Errorf("pageSize=2 returned %d rows", len(page))
	}

	for _, q := range []string{"pageNo=0", "pageSize=0", "pageNo=abc"} {
		w := do(t, s, http.MethodGet, "/api/v1/articles?"+q, "", nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status %d, want 400", q, w.Code)
		}
		var res pagingErrResponse
		decode(t, w, &res)
		if res.Success {
			t.Errorf("%s: expected success=false", q)
		}
	}
}

func TestListArticlesHugePage(t *testing.T) {
	s, _ := newTestServer(t)
	tok, _ := registerAndLogin(t, s, "author@example.com", "longenough")
	w := do(t, s, http.MethodPost, "/api/v1/article", tok, map[string]any{"content": "hi"})
	if w.Code != http.StatusOK {
		t.Fatalf("create: status %d", w.Code)
	}

	// Page inputs near max int must not overflow into a negative
	// OFFSET; a page far past the data is just empty.
	huge := fmt.Sprintf("%d", int64(1)<<62)
	w = do(t, s, http.MethodGet, "/api/v1/articles?pageNo="+huge+"&pageSize="+huge, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("huge page: status %d body %s", w.Code, w.Body.String())
	}
	var page []article.Article
	decode(t, w, &page)
	if len(page) != 0 {
		t.Errorf("expected empty page, got %d rows", len(page))
	}
}

func TestListArticlesDefaults(t *testing.T) {
	s, _ := newTestServer(t)
	w := do(t, s, http.MethodGet, "/api/v1/articles", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	var page []article.Article
	decode(t, w, &page)
	if page == nil {
		t.Error("expected empty array, got null")
	}
}

func TestEndToEndFlow(t *testing.T) {
	s, _ := newTestServer(t)
	tok, id := registerAndLogin(t, s, "alice@example.com", "longenough")

	// Create.
	w := do(t, s, http.MethodPost, "/api/v1/article", tok, map[string]any{"content": "hello"})
	if w.Code != http.StatusOK {
		t.Fatalf("create: status %d", w.Code)
	}
	var created struct {
		Data article.Article `json:"data"`
	}
	decode(t, w, &created)
	if created.Data.Content != "hello" || created.Data.UserID != id {
		t.Fatalf("unexpected created record %+v", created.Data)
	}
	path := fmt.Sprintf("/api/v1/article/%d", created.Data.ID)

	// List includes it.
	w = do(t, s, http.MethodGet, "/api/v1/articles", "", nil)
	var page []article.Article
	decode(t, w, &page)
	if len(page) != 1 || page[0].ID != created.Data.ID {
		t.Fatalf("created article not listed: %+v", page)
	}

	// Update.
	w = do(t, s, http.MethodPut, path, tok, map[string]any{"content": "hello world"})
	if w.Code != http.StatusOK {
		t.Fatalf("update: status %d body %s", w.Code, w.Body.String())
	}

	// List reflects the change.
	w = do(t, s, http.MethodGet, "/api/v1/articles", "", nil)
	page = nil
	decode(t, w, &page)
	if len(page) != 1 || page[0].Content != "hello world" {
		t.Fatalf("update not reflected: %+v", page)
	}

	// Delete.
	w = do(t, s, http.MethodDelete, path, tok, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: status %d", w.Code)
	}

	// Subsequent update and delete answer 404.
	w = do(t, s, http.MethodPut, path, tok, map[string]any{"content": "again"})
	if w.Code != http.StatusNotFound {
		t.Errorf("update after delete: status %d, want 404", w.Code)
	}
	w = do(t, s, http.MethodDelete, path, tok, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("delete after delete: status %d, want 404", w.Code)
	}
}
