package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// CookieName carries the signed admin session token.
const CookieName = "admin_session"

var (
	// ErrInvalidPassword indicates a failed admin login.
	ErrInvalidPassword = errors.New("invalid password")
	// ErrUnauthorized indicates a missing or invalid admin session.
	ErrUnauthorized = errors.New("unauthorized")
)

// Gate is the single shared-credential admin check. There is exactly one
// privileged actor, so sessions carry no identity beyond "admin".
type Gate struct {
	passwordHash []byte
	secret       []byte
	ttl          time.Duration
}

// New builds a Gate from a precomputed bcrypt hash of the admin password.
func New(passwordHash, secret []byte, ttl time.Duration) *Gate {
	return &Gate{passwordHash: passwordHash, secret: secret, ttl: ttl}
}

// NewFromPassword hashes a plaintext password at startup. Intended for
// development setups where only ADMIN_PASSWORD is configured.
func NewFromPassword(password string, secret []byte, ttl time.Duration) (*Gate, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	return New(hash, secret, ttl), nil
}

// Login checks the shared password and returns a signed session token.
func (g *Gate) Login(password string) (string, error) {
	if err := bcrypt.CompareHashAndPassword(g.passwordHash, []byte(password)); err != nil {
		return "", ErrInvalidPassword
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return token, nil
}

// Verify validates a session token. Expired, malformed, or foreign-signed
// tokens all map to ErrUnauthorized.
func (g *Gate) Verify(token string) error {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return g.secret, nil
	})
	if err != nil || !parsed.Valid {
		return ErrUnauthorized
	}
	return nil
}

// Authenticated reports whether the request carries a valid admin session.
func (g *Gate) Authenticated(r *http.Request) bool {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return false
	}
	return g.Verify(cookie.Value) == nil
}

// Cookie wraps a session token for the Set-Cookie header.
func (g *Gate) Cookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(g.ttl / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearCookie expires the session cookie.
func (g *Gate) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
