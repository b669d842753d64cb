// internal/article/article.go
//
// Article model and SQL store.
// Mutations are owner-filtered in the statement itself (WHERE id AND
// user_id), so the existence check and the mutation cannot race.

package article

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Article matches the articles table shape.
type Article struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	UserID    int64     `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// ErrNotFound is returned when no article row matches the id and
// owner filter. Callers cannot distinguish a missing row from a row
// owned by someone else.
var ErrNotFound = errors.New("article not found")

// Store runs single-statement queries against the articles table.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Create inserts an article for the owner and returns it with the
// generated id.
func (s *Store) Create(ctx context.Context, userID int64, content string) (*Article, error) {
	a := &Article{
		Content:   content,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO articles (content, user_id, created_at) VALUES (?,?,?)`,
		a.Content, a.UserID, a.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	a.ID, err = res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return a, nil
}

// List returns a page of articles in creation order (id breaks ties
// within the same second).
func (s *Store) List(ctx context.Context, pageNo, pageSize int) ([]Article, error) {
	offset := (int64(pageNo) - 1) * int64(pageSize)
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, content, user_id, created_at
		 FROM articles
		 ORDER BY created_at ASC, id ASC
		 LIMIT ? OFFSET ?`, pageSize, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Article, 0, min(pageSize, 20))
	for rows.Next() {
		var a Article
		var created string
		if err := rows.Scan(&a.ID, &a.Content, &a.UserID, &created); err != nil {
			return nil, err
		}
		a.CreatedAt, _ = time.Parse(time.RFC3339, created)
		out = append(out, a)
	}
	return out, rows.Err()
}

// Get loads an article by id or returns ErrNotFound.
func (s *Store) Get(ctx context.Context, id int64) (*Article, error) {
	var a Article
	var created string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, content, user_id, created_at FROM articles WHERE id=?`, id).
		Scan(&a.ID, &a.Content, &a.UserID, &created)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	a.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return &a, nil
}

// UpdateOwned replaces the content of an article owned by userID.
// Returns ErrNotFound if no row matched both filters.
func (s *Store) UpdateOwned(ctx context.Context, id, userID int64, content string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE articles SET content=? WHERE id=? AND user_id=?`, content, id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteOwned removes an article owned by userID.
// Returns ErrNotFound if no row matched both filters.
func (s *Store) DeleteOwned(ctx context.Context, id, userID int64) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM articles WHERE id=? AND user_id=?`, id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
