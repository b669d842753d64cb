// internal/token/token.go
//
// Access token issue/verify for the blog-app API.
// The Issuer interface keeps handlers independent of the signing
// scheme; the default implementation signs HS256 JWTs with the
// user's identity embedded under a "userInfo" claim.

package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the user payload embedded in an access token.
type Identity struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// Issuer issues and verifies access tokens.
type Issuer interface {
	// Issue signs a token for the identity and returns it with the issue time.
	Issue(id Identity) (string, time.Time, error)

	// Verify checks signature and expiry and returns the embedded identity.
	Verify(token string) (*Identity, error)
}

// ErrInvalidToken is returned by Verify for any token that fails
// signature, expiry, or payload checks.
var ErrInvalidToken = errors.New("invalid token")

// jwtIssuer signs HS256 JWTs with a shared secret.
type jwtIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewJWT returns an Issuer backed by HS256 with the given secret and
// token lifetime.
func NewJWT(secret string, ttl time.Duration) Issuer {
	return &jwtIssuer{secret: []byte(secret), ttl: ttl}
}

func (j *jwtIssuer) Issue(id Identity) (string, time.Time, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userInfo": map[string]any{
			"id":    id.ID,
			"email": id.Email,
		},
		"exp": now.Add(j.ttl).Unix(),
		"iat": now.Unix(),
	})
	ss, err := t.SignedString(j.secret)
	return ss, now, err
}

func (j *jwtIssuer) Verify(tokenStr string) (*Identity, error) {
	claims := jwt.MapClaims{}
	t, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return j.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !t.Valid {
		return nil, ErrInvalidToken
	}
	info, _ := claims["userInfo"].(map[string]any)
	if info == nil {
		return nil, ErrInvalidToken
	}
	// JSON numbers decode as float64 in map claims.
	idNum, _ := info["id"].(float64)
	email, _ := info["email"].(string)
	if idNum <= 0 || email == "" {
		return nil, ErrInvalidToken
	}
	return &Identity{ID: int64(idNum), Email: email}, nil
}
