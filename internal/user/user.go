// internal/user/user.go
//
// User model and SQL store.
// Passwords are stored as bcrypt hashes only; email lookups are
// case-sensitive exact matches on the stored value.

package user

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User matches the users table shape.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ErrNotFound is returned when no user row matches.
var ErrNotFound = errors.New("user not found")

// ErrExists is returned on insert when the email is already taken.
var ErrExists = errors.New("user already exists")

// Store runs single-statement queries against the users table.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// HashPassword bcrypt-hashes a plaintext password. cost=10
func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

// CheckPassword is a bcrypt verifier.
func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// Create inserts a new user and returns it with the generated id.
// The password must already be hashed.
func (s *Store) Create(ctx context.Context, email, firstName, lastName, passwordHash string) (*User, error) {
	u := &User{
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (email, first_name, last_name, password_hash, created_at) VALUES (?,?,?,?,?)`,
		u.Email, u.FirstName, u.LastName, u.PasswordHash, u.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	u.ID, err = res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return u, nil
}

// ExistsByEmail reports whether a user row with exactly this email exists.
func (s *Store) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE email=?`, email).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// FindByEmail loads a user row or returns ErrNotFound.
func (s *Store) FindByEmail(ctx context.Context, email string) (*User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, email, first_name, last_name, password_hash, created_at
		 FROM users WHERE email=?`, email)
	return scanUser(row)
}

// FindByID loads a user row or returns ErrNotFound.
func (s *Store) FindByID(ctx context.Context, id int64) (*User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, email, first_name, last_name, password_hash, created_at
		 FROM users WHERE id=?`, id)
	return scanUser(row)
}

// scanUser converts a *sql.Row into a User.
func scanUser(row *sql.Row) (*User, error) {
	var u User
	var created string
	if err := row.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash, &created); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	t, _ := time.Parse(time.RFC3339, created)
	u.CreatedAt = t
	return &u, nil
}
